// Package urlnorm canonicalizes absolute URLs for the generation pipeline.
// Normalization is idempotent: feeding a normalized URL back through with the
// same options returns it unchanged.
package urlnorm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// TrailingSlash is the policy applied to the path's trailing slash.
type TrailingSlash string

const (
	TrailingAlways   TrailingSlash = "always"
	TrailingNever    TrailingSlash = "never"
	TrailingPreserve TrailingSlash = "preserve"
)

// ErrInvalidBaseURL is returned when the base URL does not parse as an
// absolute http(s) URL. This aborts the whole generation run.
var ErrInvalidBaseURL = errors.New("invalid base url")

// Options controls normalization behavior.
type Options struct {
	TrailingSlash TrailingSlash
	KeepQuery     bool
	KeepFragment  bool
}

// Normalize joins path onto baseURL and canonicalizes the result:
// repeated slashes collapse, "." segments drop, ".." segments pop (never
// above root), the host is lowercased, default ports are stripped, and the
// trailing-slash policy is applied. Query and fragment are stripped unless
// kept via Options.
func Normalize(baseURL, path string, opts Options) (string, error) {
	base, err := ParseBase(baseURL)
	if err != nil {
		return "", err
	}

	rel, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}

	joined := joinPaths(base.Path, rel.Path)
	hadTrailing := strings.HasSuffix(joined, "/") && joined != "/"
	cleaned := cleanPath(joined)
	cleaned = applyTrailing(cleaned, hadTrailing, opts.TrailingSlash)

	out := url.URL{
		Scheme: base.Scheme,
		Host:   base.Host,
		Path:   cleaned,
	}
	if opts.KeepQuery {
		out.RawQuery = rel.RawQuery
	}
	if opts.KeepFragment {
		out.Fragment = rel.Fragment
	}
	return out.String(), nil
}

// ParseBase validates and canonicalizes a base URL: absolute http(s) only,
// host lowercased, default port stripped, path reduced to its directory role.
func ParseBase(baseURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidBaseURL, baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q: scheme must be http or https", ErrInvalidBaseURL, baseURL)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q: missing host", ErrInvalidBaseURL, baseURL)
	}

	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port != "" && !isDefaultPort(u.Scheme, port) {
		host = host + ":" + port
	}
	u.Host = host
	u.Path = cleanPath(u.Path)
	if u.Path == "/" {
		u.Path = ""
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "http" && port == "80") || (scheme == "https" && port == "443")
}

func joinPaths(basePath, p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if basePath == "" || basePath == "/" {
		return p
	}
	return basePath + p
}

// cleanPath collapses repeated slashes and resolves "." and ".." segments.
// ".." never climbs above root. The result always starts with "/" and never
// ends with one (root excepted).
func cleanPath(p string) string {
	segs := strings.Split(p, "/")
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		switch s {
		case "", ".":
			// collapsed
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/")
}

func applyTrailing(p string, hadTrailing bool, policy TrailingSlash) string {
	if p == "/" {
		return p
	}
	switch policy {
	case TrailingAlways:
		return p + "/"
	case TrailingNever:
		return p
	case TrailingPreserve:
		if hadTrailing {
			return p + "/"
		}
		return p
	default:
		return p
	}
}
