package pattern

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultWildcard is the segment token that captures the rest of a path.
const DefaultWildcard = "*"

// schemeSeparator splits the scheme from the rest of a pattern or address.
const schemeSeparator = "://"

// Kind classifies a pattern segment.
type Kind uint8

const (
	Literal  Kind = iota // beauty
	Variable             // :id
	Rest                 // *
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Variable:
		return "variable"
	case Rest:
		return "rest"
	default:
		return "unknown"
	}
}

// Segment is a single compiled path segment.
// Value holds the literal text for literals and the name for variables.
type Segment struct {
	Kind  Kind
	Value string
}

// Pattern is a compiled route template. It is immutable once compiled.
type Pattern struct {
	raw      string
	scheme   string
	segments []Segment
	wildcard string
}

// Option configures pattern compilation.
type Option func(*options)

type options struct {
	wildcard string
}

// WithWildcard sets the token that marks a rest wildcard segment.
// Empty values are ignored.
func WithWildcard(token string) Option {
	return func(o *options) {
		if token != "" {
			o.wildcard = token
		}
	}
}

// Compile parses a pattern such as "app://beauty/:id" or "files/*".
// It returns an error wrapping ErrMalformedPattern when the pattern
// has an empty segment, a misplaced or repeated rest wildcard,
// an invalid token or a duplicate variable name. Literals are written
// decoded ("café", not "caf%C3%A9") since addresses are matched after
// percent-decoding.
func Compile(raw string, opts ...Option) (*Pattern, error) {
	o := options{wildcard: DefaultWildcard}
	for _, opt := range opts {
		opt(&o)
	}

	if raw == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrMalformedPattern)
	}

	scheme, rest, hasScheme := strings.Cut(raw, schemeSeparator)
	if !hasScheme {
		scheme, rest = "", raw
		// scheme-less patterns may be written as absolute paths
		rest = strings.TrimPrefix(rest, "/")
	} else if !ValidScheme(scheme) {
		return nil, fmt.Errorf("%w: '%s' has invalid scheme '%s'", ErrMalformedPattern, raw, scheme)
	}

	p := &Pattern{
		raw:      raw,
		scheme:   strings.ToLower(scheme),
		wildcard: o.wildcard,
	}

	if rest == "" {
		return p, nil
	}

	tokens := strings.Split(rest, "/")
	seen := make(map[string]struct{}, len(tokens))
	p.segments = make([]Segment, 0, len(tokens))

	for i, tok := range tokens {
		seg, err := classify(tok, o.wildcard)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s' segment %d: %s", ErrMalformedPattern, raw, i, err.Error())
		}

		switch seg.Kind {
		case Rest:
			if i != len(tokens)-1 {
				return nil, fmt.Errorf("%w: '%s' wildcard '%s' must be the last segment", ErrMalformedPattern, raw, o.wildcard)
			}
		case Variable:
			if _, dup := seen[seg.Value]; dup {
				return nil, fmt.Errorf("%w: '%s' has duplicate variable '%s'", ErrMalformedPattern, raw, seg.Value)
			}
			seen[seg.Value] = struct{}{}
		}

		p.segments = append(p.segments, seg)
	}

	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(raw string, opts ...Option) *Pattern {
	p, err := Compile(raw, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// classify turns a raw token into a segment.
func classify(tok, wildcard string) (Segment, error) {
	switch {
	case tok == "":
		return Segment{}, fmt.Errorf("empty segment")
	case tok == wildcard:
		return Segment{Kind: Rest}, nil
	case strings.HasPrefix(tok, ":"):
		name := tok[1:]
		if !validName(name) {
			return Segment{}, fmt.Errorf("invalid variable name '%s'", name)
		}
		return Segment{Kind: Variable, Value: name}, nil
	}

	if strings.Contains(tok, wildcard) {
		return Segment{}, fmt.Errorf("literal '%s' contains wildcard '%s'", tok, wildcard)
	}
	for _, r := range tok {
		if r == '?' || r == '#' || r == '%' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return Segment{}, fmt.Errorf("literal '%s' contains invalid character %q", tok, r)
		}
	}
	return Segment{Kind: Literal, Value: tok}, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

// ValidScheme reports whether s is a scheme per RFC 3986: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func ValidScheme(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r < 0x80 && unicode.IsLetter(r):
		case i > 0 && (r < 0x80 && unicode.IsDigit(r) || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// String returns the pattern exactly as it was registered.
func (p *Pattern) String() string { return p.raw }

// Scheme returns the lower-cased scheme, or "" for scheme-less patterns.
func (p *Pattern) Scheme() string { return p.scheme }

// Segments returns a copy of the compiled segments.
func (p *Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Len returns the number of segments.
func (p *Pattern) Len() int { return len(p.segments) }

// Segment returns the i-th segment.
func (p *Pattern) Segment(i int) Segment { return p.segments[i] }

// HasRest reports whether the pattern ends with a rest wildcard.
func (p *Pattern) HasRest() bool {
	return len(p.segments) > 0 && p.segments[len(p.segments)-1].Kind == Rest
}

// Variables returns the variable names in left-to-right order.
func (p *Pattern) Variables() []string {
	var names []string
	for _, s := range p.segments {
		if s.Kind == Variable {
			names = append(names, s.Value)
		}
	}
	return names
}

// Arity is the number of non-literal segments.
func (p *Pattern) Arity() int {
	n := 0
	for _, s := range p.segments {
		if s.Kind != Literal {
			n++
		}
	}
	return n
}

// LeadingLiterals counts the literal segments before the first non-literal.
func (p *Pattern) LeadingLiterals() int {
	n := 0
	for _, s := range p.segments {
		if s.Kind != Literal {
			break
		}
		n++
	}
	return n
}

// Path returns the scheme-less form of the pattern, e.g. "beauty/:id".
func (p *Pattern) Path() string {
	parts := make([]string, len(p.segments))
	for i, s := range p.segments {
		switch s.Kind {
		case Variable:
			parts[i] = ":" + s.Value
		case Rest:
			parts[i] = p.wildcard
		default:
			parts[i] = s.Value
		}
	}
	return strings.Join(parts, "/")
}
