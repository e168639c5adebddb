package mime

type MIME = string

const (
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	CSS         MIME = "text/css"
	JAVASCRIPT  MIME = "application/javascript"
	JSON        MIME = "application/json"
	XML         MIME = "application/xml"
	PDF         MIME = "application/pdf"
	JPEG        MIME = "image/jpeg"
	PNG         MIME = "image/png"
	GIF         MIME = "image/gif"
	ZIP         MIME = "application/zip"
	RAR         MIME = "application/x-rar-compressed"
	DOC         MIME = "application/msword"
	DOCX        MIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	OctetStream MIME = "application/octet-stream"
)

var Extension = map[string]MIME{
	".css":  CSS,
	".doc":  DOC,
	".docx": DOCX,
	".gif":  GIF,
	".htm":  HTML,
	".html": HTML,
	".jpeg": JPEG,
	".jpg":  JPEG,
	".js":   JAVASCRIPT,
	".json": JSON,
	".pdf":  PDF,
	".png":  PNG,
	".rar":  RAR,
	".txt":  Plain,
	".xml":  XML,
	".zip":  ZIP,
	".bin":  OctetStream,
}
