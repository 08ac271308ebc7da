package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/linkrouter/core/pattern"
	"github.com/dmitrymomot/linkrouter/core/router"
	"github.com/dmitrymomot/linkrouter/core/taskstack"
)

var errManifest = errors.New("invalid route manifest")

// manifest declares the routes the CLI registers. Handlers are echo handlers:
// they print what they received and reply with Reply.
//
//	scheme: app
//	routes:
//	  - pattern: app://item/:id
//	    destination: url
//	    reply: item shown
//	  - pattern: app://files/*
//	    kind: object
type manifest struct {
	Scheme          string          `yaml:"scheme"`
	Wildcard        string          `yaml:"wildcard"`
	DefaultTaskMode string          `yaml:"default_task_mode"`
	Routes          []manifestRoute `yaml:"routes"`
}

type manifestRoute struct {
	Pattern     string `yaml:"pattern"`
	Kind        string `yaml:"kind"`        // action (default) or object
	Destination string `yaml:"destination"` // "", pattern or url
	Reply       string `yaml:"reply"`
}

func loadManifest(path string) (*manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return decodeManifest(f)
}

func decodeManifest(r io.Reader) (*manifest, error) {
	var m manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", errManifest, err)
	}

	if m.DefaultTaskMode != "" {
		if _, err := taskstack.ParseMode(m.DefaultTaskMode); err != nil {
			return nil, fmt.Errorf("%w: %w", errManifest, err)
		}
	}
	if m.Scheme != "" && !pattern.ValidScheme(strings.TrimSuffix(strings.ToLower(m.Scheme), "://")) {
		return nil, fmt.Errorf("%w: invalid scheme '%s'", errManifest, m.Scheme)
	}

	for i, rt := range m.Routes {
		if rt.Pattern == "" {
			return nil, fmt.Errorf("%w: route %d has no pattern", errManifest, i)
		}
		switch rt.Kind {
		case "", "action", "object":
		default:
			return nil, fmt.Errorf("%w: route '%s' has unknown kind '%s'", errManifest, rt.Pattern, rt.Kind)
		}
		switch rt.Destination {
		case "", "pattern", "url":
		default:
			return nil, fmt.Errorf("%w: route '%s' has unknown destination '%s'", errManifest, rt.Pattern, rt.Destination)
		}
	}
	return &m, nil
}

// options turns manifest settings into router options. Empty values keep
// whatever the environment configured.
func (m *manifest) options() []router.Option {
	var opts []router.Option
	if m.Scheme != "" {
		opts = append(opts, router.WithAppScheme(m.Scheme))
	}
	if m.Wildcard != "" {
		opts = append(opts, router.WithWildcard(m.Wildcard))
	}
	if mode, err := taskstack.ParseMode(m.DefaultTaskMode); err == nil && m.DefaultTaskMode != "" {
		opts = append(opts, router.WithDefaultTaskMode(mode))
	}
	return opts
}

// register binds an echo handler for every route, writing to out.
func (m *manifest) register(r *router.Router, out io.Writer) error {
	for _, mr := range m.Routes {
		var opts []router.RouteOption
		switch mr.Destination {
		case "pattern":
			opts = append(opts, router.AsDestination())
		case "url":
			opts = append(opts, router.AsURLDestination())
		}

		reply := mr.Reply
		var err error
		if mr.Kind == "object" {
			err = r.RegisterObject(mr.Pattern, func(_ context.Context, p router.Params) any {
				echo(out, p)
				if reply == "" {
					return p.PreferPath()
				}
				return reply
			}, opts...)
		} else {
			err = r.Register(mr.Pattern, func(_ context.Context, p router.Params) {
				echo(out, p)
				p.Complete(reply)
			}, opts...)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// echo prints the route and its parameters, reserved keys excluded.
func echo(out io.Writer, p router.Params) {
	keys := make([]string, 0, len(p))
	for k := range p {
		switch k {
		case router.KeyURL, router.KeyPreferPath, router.KeyQuery, router.KeyCompletion,
			router.KeyUserInfo, router.KeyTaskMode, router.KeyPathToEnd:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "-> %s", p.PreferPath())
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, p[k])
	}
	if tail, ok := p.PathToEnd(); ok {
		fmt.Fprintf(&b, " %s=%s", router.KeyPathToEnd, tail)
	}
	if info := p.UserInfo(); len(info) > 0 {
		fmt.Fprintf(&b, " %s=%v", router.KeyUserInfo, info)
	}
	fmt.Fprintln(out, b.String())
}
