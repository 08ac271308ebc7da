package router

import (
	"net/url"

	"github.com/dmitrymomot/linkrouter/core/taskstack"
)

// Reserved parameter keys. They overwrite query items and path variables
// that share the same name.
const (
	KeyPreferPath     = "preferPath"
	KeyPathToEnd      = "path-to-end"
	KeyURL            = "url"
	KeyCompletion     = "completion"
	KeyUserInfo       = "userInfo"
	KeyQuery          = "query"
	KeyTaskMode       = "task_mode"
	KeyContainerStyle = "container_style"
)

// Params is the mapping handed to a handler. A fresh map is built for every
// invocation from query items, path variables and reserved keys, in that
// order of precedence (later wins).
type Params map[string]any

// String returns the value under key when it is a string.
func (p Params) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Var is an alias for String, reading a decoded path variable.
func (p Params) Var(name string) string { return p.String(name) }

// URL returns the address that was opened.
func (p Params) URL() string { return p.String(KeyURL) }

// PreferPath returns the pattern of the matched route.
func (p Params) PreferPath() string { return p.String(KeyPreferPath) }

// PathToEnd returns the decoded tail captured by a rest wildcard and whether
// the matched pattern had one.
func (p Params) PathToEnd() (string, bool) {
	s, ok := p[KeyPathToEnd].(string)
	return s, ok
}

// UserInfo returns the caller-supplied context, or nil.
func (p Params) UserInfo() map[string]any {
	u, _ := p[KeyUserInfo].(map[string]any)
	return u
}

// Query returns every query item of the address.
func (p Params) Query() url.Values {
	q, _ := p[KeyQuery].(url.Values)
	return q
}

// TaskMode returns the effective navigation mode of the invocation.
func (p Params) TaskMode() (taskstack.Mode, bool) {
	m, ok := p[KeyTaskMode].(taskstack.Mode)
	return m, ok
}

// ContainerStyle returns the container_style hint for presenters.
func (p Params) ContainerStyle() string { return p.String(KeyContainerStyle) }

// Completion returns the completion callback supplied to Open, unmodified.
func (p Params) Completion() (func(any), bool) {
	fn, ok := p[KeyCompletion].(func(any))
	return fn, ok && fn != nil
}

// Complete invokes the completion callback with v. It reports whether a
// callback was present. Delivery timing and count are up to the handler.
func (p Params) Complete(v any) bool {
	fn, ok := p.Completion()
	if !ok {
		return false
	}
	fn(v)
	return true
}
