package tcp

import (
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// Listen opens a TCP listener with an explicit accept backlog, which the
// net package doesn't expose. With reuseport set, SO_REUSEPORT is applied so
// several processes can bind the same address and let the kernel distribute
// accepted connections among them.
func Listen(addr string, backlog int, reuseport bool) (net.Listener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	domain, sa := sockaddr(tcpAddr)

	fd, err := unix.Socket(domain, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}

	if err = setup(fd, sa, backlog, reuseport); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	file := os.NewFile(uintptr(fd), "listener")
	defer file.Close()

	return net.FileListener(file)
}

func setup(fd int, sa unix.Sockaddr, backlog int, reuseport bool) error {
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return err
	}

	if reuseport {
		if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
			return err
		}
	}

	if err := unix.Bind(fd, sa); err != nil {
		return err
	}

	if err := unix.Listen(fd, backlog); err != nil {
		return err
	}

	// the runtime netpoller expects a non-blocking descriptor
	return unix.SetNonblock(fd, true)
}

func sockaddr(addr *net.TCPAddr) (domain int, sa unix.Sockaddr) {
	if ip4 := addr.IP.To4(); ip4 != nil || addr.IP == nil {
		v4 := &unix.SockaddrInet4{Port: addr.Port}
		if ip4 != nil {
			copy(v4.Addr[:], ip4)
		}

		return unix.AF_INET, v4
	}

	v6 := &unix.SockaddrInet6{Port: addr.Port}
	copy(v6.Addr[:], addr.IP.To16())

	return unix.AF_INET6, v6
}
