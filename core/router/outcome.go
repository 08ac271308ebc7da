package router

import "strconv"

// Outcome is the result of resolving an address. Failures are values,
// so callers branch on the outcome instead of handling errors.
type Outcome uint8

const (
	// Dispatched means a registered handler ran.
	Dispatched Outcome = iota
	// SpecialHandled means the special-scheme handler accepted the address.
	SpecialHandled
	// SpecialRefused means the special-scheme handler owned but refused the address.
	SpecialRefused
	// Intercepted means the global interceptor refused the address.
	Intercepted
	// SchemeRejected means the address scheme is not the app scheme,
	// or the address could not be parsed.
	SchemeRejected
	// NotFoundHandled means no route matched and the not-found handler accepted it.
	NotFoundHandled
	// NotFound means no route matched and nothing handled the miss.
	NotFound
	// KindMismatch means Object resolved to an action route.
	KindMismatch
)

var outcomeNames = [...]string{
	Dispatched:      "dispatched",
	SpecialHandled:  "special_handled",
	SpecialRefused:  "special_refused",
	Intercepted:     "intercepted",
	SchemeRejected:  "scheme_rejected",
	NotFoundHandled: "not_found_handled",
	NotFound:        "not_found",
	KindMismatch:    "kind_mismatch",
}

// String returns the snake_case outcome name used in logs, metrics and spans.
func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "outcome(" + strconv.Itoa(int(o)) + ")"
}

// OK reports whether the address was handled by someone.
func (o Outcome) OK() bool {
	switch o {
	case Dispatched, SpecialHandled, NotFoundHandled:
		return true
	default:
		return false
	}
}
