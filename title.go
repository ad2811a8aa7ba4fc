package pagedoc

import (
	"net/url"
	"strings"
)

// TitleFromURL derives a document title from a page URL: the host part,
// including any port. Unparseable input falls back to the text between
// the scheme and the first slash.
func TitleFromURL(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}
