package app

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/logger"
)

// ErrUnsupportedScheme is returned for URLs the system opener refuses to hand on.
var ErrUnsupportedScheme = errors.New("unsupported url scheme")

// SystemOpener hands URLs to the operating system's default handler.
type SystemOpener struct {
	goos  string
	start func(name string, args ...string) error
	log   *zap.Logger
}

// NewSystemOpener creates an opener for the running OS.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{
		goos: runtime.GOOS,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
		log: logger.Named("opener"),
	}
}

// Open shows url in the default browser.
func (o *SystemOpener) Open(url string) error {
	return o.launch(url)
}

// Assign hands url to its handler in place of the current page. On the desktop that is
// the same as Open: mailto: links start the mail client.
func (o *SystemOpener) Assign(url string) error {
	return o.launch(url)
}

func (o *SystemOpener) launch(url string) error {
	if !allowedScheme(url) {
		return ErrUnsupportedScheme
	}
	name, args := openCommand(o.goos, url)
	o.log.Info("opening url", zap.String("url", url), zap.String("command", name))
	return o.start(name, args...)
}

func allowedScheme(url string) bool {
	for _, scheme := range []string{"http://", "https://", "mailto:"} {
		if strings.HasPrefix(url, scheme) {
			return true
		}
	}
	return false
}

func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
