// Package system opens preview links with the operating system's handler.
package system

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/linkcard/internal/core/ports/driven"
	"github.com/custodia-labs/linkcard/internal/logger"
)

// Ensure Opener implements the interface.
var _ driven.URLOpener = (*Opener)(nil)

// Opener launches the default browser for http(s) links.
type Opener struct {
	goos  string
	start func(cmd *exec.Cmd) error
}

// NewOpener creates an opener for the current platform.
func NewOpener() *Opener {
	return &Opener{
		goos:  runtime.GOOS,
		start: func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// Open launches the link. Failures are logged, not returned.
func (o *Opener) Open(link string) {
	if err := o.OpenURL(link); err != nil {
		logger.Warn("Failed to open %s: %v", link, err)
	}
}

// OpenURL launches the link and reports failures.
func (o *Opener) OpenURL(link string) error {
	if err := validateLink(link); err != nil {
		return err
	}

	cmd, err := o.command(link)
	if err != nil {
		return err
	}

	logger.Debug("Opening %s with %s", link, cmd.Path)
	return o.start(cmd)
}

func (o *Opener) command(link string) (*exec.Cmd, error) {
	switch o.goos {
	case "darwin":
		return exec.Command("open", link), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", link), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", o.goos)
	}
}

// validateLink only lets web links through to the OS handler.
func validateLink(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("invalid link %q: %w", link, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("refusing to open %q: scheme must be http or https", link)
	}
	if u.Host == "" {
		return fmt.Errorf("refusing to open %q: missing host", link)
	}
	return nil
}
