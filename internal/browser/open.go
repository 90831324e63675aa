package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// command returns the argv that opens url on the given OS, or nil when
// the OS has no known opener.
func command(goos, url string) []string {
	switch goos {
	case "darwin":
		return []string{"open", url}
	case "linux":
		return []string{"xdg-open", url}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}
	}
	return nil
}

// Open opens the specified URL in the user's default browser.
func Open(url string) error {
	argv := command(runtime.GOOS, url)
	if argv == nil {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return exec.Command(argv[0], argv[1:]...).Start()
}
