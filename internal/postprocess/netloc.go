// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postprocess

import (
	"net/url"
	"strings"
)

// Netloc returns the host[:port] component of raw, without any userinfo.
// Values that are empty or have no authority component (such as
// "example.com/path", which has no scheme) yield "". When raw does not parse
// as a URL, for example because of a bad percent escape in the path or a
// non-numeric port, the authority is still split out of it.
func Netloc(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil {
		return u.Host
	}
	return splitAuthority(raw)
}

// splitAuthority cuts the text between "scheme://" (or a leading "//") and
// the first '/', '?' or '#', dropping userinfo. An unbalanced IPv6 bracket
// yields "".
func splitAuthority(raw string) string {
	rest := raw
	if i := strings.IndexByte(rest, ':'); i > 0 && isScheme(rest[:i]) {
		rest = rest[i+1:]
	}
	auth, ok := strings.CutPrefix(rest, "//")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(auth, "/?#"); i >= 0 {
		auth = auth[:i]
	}
	if i := strings.LastIndexByte(auth, '@'); i >= 0 {
		auth = auth[i+1:]
	}
	if strings.Contains(auth, "[") != strings.Contains(auth, "]") {
		return ""
	}
	return auth
}

func isScheme(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return s != ""
}
