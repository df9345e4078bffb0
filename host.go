package chatlens

import (
	"net/url"
	"strings"
)

// HostFromURL returns the lowercase hostname of rawURL, without port.
func HostFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL: %v", err)
	}
	if u.Hostname() == "" {
		return "", Errorf(EINVALID, "URL %q has no host", rawURL)
	}
	return strings.ToLower(u.Hostname()), nil
}
