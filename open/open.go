// Package open launches anime detail pages in the system browser.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/anitrack-cli/anitrack/constant"
)

// Run opens the page and waits for the handler to exit.
func Run(page string) error {
	cmd, err := browser(page)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Start opens the page without waiting.
func Start(page string) error {
	cmd, err := browser(page)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Check rejects anything but an absolute http or https URL, so a bad api.web_url never reaches a shell handler.
func Check(page string) error {
	u, err := url.Parse(page)
	if err != nil {
		return fmt.Errorf("invalid page url %q: %w", page, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) url", page)
	}

	return nil
}

func browser(page string) (*exec.Cmd, error) {
	if err := Check(page); err != nil {
		return nil, err
	}

	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", page), nil
	case constant.Darwin:
		return exec.Command("open", page), nil
	case constant.Linux:
		return exec.Command("xdg-open", page), nil
	case constant.Android:
		return exec.Command("termux-open", page), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
