package common

import (
	"fmt"
	"net"
	"os/exec"
	"runtime"
	"time"
)

// portScanRange is how many ports above the requested one are tried.
const portScanRange = 100

// FindAvailablePort finds an available port starting from startPort
func FindAvailablePort(startPort int) int {
	for port := startPort; port < startPort+portScanRange; port++ {
		if isPortAvailable(port) {
			return port
		}
	}
	return startPort
}

func isPortAvailable(port int) bool {
	ln, err := net.Listen("tcp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	ln.Close()

	conn, err := net.DialTimeout("tcp4", fmt.Sprintf("127.0.0.1:%d", port), 100*time.Millisecond)
	if err == nil {
		conn.Close()
		return false
	}
	return true
}

// OpenBrowser opens the default browser with the given URL
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch runtime.GOOS {
	case "windows":
		name, args = "cmd", []string{"/c", "start", url}
	case "darwin":
		name, args = "open", []string{url}
	default:
		name, args = "xdg-open", []string{url}
	}

	return exec.Command(name, args...).Start()
}
