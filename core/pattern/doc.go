// Package pattern compiles route templates into typed segments, parses
// input addresses and generates addresses back from templates.
//
// A pattern has an optional scheme followed by slash separated segments:
//
//	app://beauty/:id        literal "beauty", variable "id"
//	app://files/*           literal "files", rest wildcard
//	user/:uid/posts/:pid    scheme-less pattern
//
// A segment starting with ":" is a variable named by the remainder.
// A segment equal to the wildcard token ("*" unless changed with
// WithWildcard) captures everything that follows and must come last.
// Anything else is a case-sensitive literal.
//
// # Generation
//
// Generate is the reverse operation. Parameters fill the non-literal
// segments in order and are percent-encoded, so matching the result
// against the same pattern yields the original values:
//
//	p := pattern.MustCompile("app://user/:uid/posts/:pid")
//	u, _ := p.Generate("ann", 42) // "app://user/ann/posts/42"
//
// # Identity
//
// Canonical reduces an address to the form used as a navigation identity:
// lower-case scheme, NFC-normalised segments and no query or fragment.
package pattern
