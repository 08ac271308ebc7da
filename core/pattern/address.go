package pattern

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Address is a parsed input URL such as "app://section/42?query=1".
// The host part is treated as the first path segment.
type Address struct {
	Raw         string
	Scheme      string
	Segments    []string // URL-decoded
	RawSegments []string // as they appeared in the address
	Query       url.Values
	Fragment    string
}

// ParseAddress splits an address into scheme, path segments, query and fragment.
// Empty path segments are dropped, so "app://a//b/" has the segments [a b]
// and a rest wildcard matching them captures "a/b".
// Segments with invalid percent escapes are kept verbatim.
func ParseAddress(raw string) (Address, error) {
	a := Address{Raw: raw, Query: url.Values{}}

	rest, fragment, _ := strings.Cut(raw, "#")
	a.Fragment = fragment

	rest, rawQuery, hasQuery := strings.Cut(rest, "?")
	if hasQuery && rawQuery != "" {
		// ParseQuery keeps every well-formed pair even when it reports an error
		q, _ := url.ParseQuery(rawQuery)
		a.Query = q
	}

	if scheme, path, ok := strings.Cut(rest, schemeSeparator); ok {
		if !ValidScheme(scheme) {
			return Address{}, fmt.Errorf("%w: '%s' has invalid scheme '%s'", ErrInvalidAddress, raw, scheme)
		}
		a.Scheme = strings.ToLower(scheme)
		rest = path
	}

	for _, seg := range strings.Split(rest, "/") {
		if seg == "" {
			continue
		}
		a.RawSegments = append(a.RawSegments, seg)
		a.Segments = append(a.Segments, Unescape(seg))
	}

	return a, nil
}

// Unescape decodes a percent-encoded path value, returning the input
// unchanged when it is not a valid escape sequence.
func Unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	v, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return v
}

// Escape percent-encodes a single path value. It is the inverse of Unescape.
func Escape(s string) string {
	return url.PathEscape(s)
}

// Canonical returns the identity form of an address: lower-case scheme,
// NFC-normalised path segments, no empty segments, no query or fragment.
// Two addresses that only differ in those respects share one identity.
func Canonical(raw string) string {
	a, err := ParseAddress(raw)
	if err != nil {
		return raw
	}

	parts := make([]string, len(a.Segments))
	for i, seg := range a.Segments {
		parts[i] = Escape(norm.NFC.String(seg))
	}
	path := strings.Join(parts, "/")

	if a.Scheme == "" {
		return path
	}
	return a.Scheme + schemeSeparator + path
}
