package pattern

import (
	"fmt"
	"strings"
)

// Generate substitutes params positionally into the variable and rest
// segments of p, left to right. Every value is formatted with fmt.Sprint
// and percent-encoded; literal segments pass through unchanged.
// It returns an error wrapping ErrArityMismatch when the number of params
// differs from the number of non-literal segments, and one wrapping
// ErrEmptyParam when a variable gets an empty value. A rest wildcard may be
// empty.
//
// The result is not checked against any registered route.
func (p *Pattern) Generate(params ...any) (string, error) {
	if want := p.Arity(); want != len(params) {
		return "", fmt.Errorf("%w: '%s' expects %d, got %d", ErrArityMismatch, p.raw, want, len(params))
	}

	parts := make([]string, len(p.segments))
	next := 0
	for i, s := range p.segments {
		if s.Kind == Literal {
			parts[i] = s.Value
			continue
		}
		v := fmt.Sprint(params[next])
		if v == "" && s.Kind == Variable {
			return "", fmt.Errorf("%w: '%s' variable '%s'", ErrEmptyParam, p.raw, s.Value)
		}
		parts[i] = Escape(v)
		next++
	}

	path := strings.Join(parts, "/")
	if p.scheme == "" {
		return path, nil
	}
	return p.scheme + schemeSeparator + path, nil
}

// Generate compiles raw and fills it with params.
//
//	url, err := pattern.Generate("app://beauty/:id", 13) // "app://beauty/13"
func Generate(raw string, params ...any) (string, error) {
	p, err := Compile(raw)
	if err != nil {
		return "", err
	}
	return p.Generate(params...)
}
