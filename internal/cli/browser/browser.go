package browser

import (
	"io"
	"net/url"

	appErr "wan/pkg/errors"

	pkgbrowser "github.com/pkg/browser"
)

// Opener launches a URL in the user's browser.
type Opener func(rawURL string) error

// Open validates rawURL and hands it unchanged to the platform browser.
// The launcher's own chatter is discarded so stdout only carries results.
func Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard
	if err := pkgbrowser.OpenURL(rawURL); err != nil {
		return appErr.Wrapf(err, appErr.BrowserError, "open %s failed: %v", rawURL, err)
	}
	return nil
}

// Validate accepts absolute http(s) URLs only.
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return appErr.Wrapf(err, appErr.BrowserError, "invalid url %q: %v", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return appErr.Newf(appErr.BrowserError, "refusing to open %q: not an http(s) url", rawURL)
	}
	return nil
}
