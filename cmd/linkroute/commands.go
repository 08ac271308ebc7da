package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/linkrouter/core/router"
	"github.com/dmitrymomot/linkrouter/core/taskstack"
	"github.com/dmitrymomot/linkrouter/pkg/async"
	"github.com/dmitrymomot/linkrouter/pkg/qrcode"
)

type setupFunc func(cmd *cobra.Command) error

func matchCmd(a *app, setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "match <url>",
		Short: "Show which route an address resolves to",
		Long:  `Match resolves the address against the manifest without running interceptors or handlers.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(cmd); err != nil {
				return err
			}
			m, ok := a.router.Match(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errUnresolved, args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pattern: %s\n", m.Pattern)
			names := make([]string, 0, len(m.Variables))
			for name := range m.Variables {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s = %s\n", name, m.Variables[name])
			}
			if m.HasTail {
				fmt.Fprintf(out, "  path-to-end = %s\n", m.PathToEnd)
			}
			return nil
		},
	}
}

func openCmd(a *app, setup setupFunc) *cobra.Command {
	var (
		mode  string
		user  []string
		wait  time.Duration
		stats bool
	)

	cmd := &cobra.Command{
		Use:   "open <url>...",
		Short: "Dispatch addresses in order and print the navigation stack",
		Long: `Open dispatches each address through the full pipeline. Navigable routes
are pushed onto one shared stack, so a sequence of addresses shows how task
modes reshape it.`,
		Example: `  linkroute open app://item/1 app://cart "app://item/1?task_mode=single"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(cmd); err != nil {
				return err
			}

			info, err := parseUserInfo(user)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, raw := range args {
				opts := []router.OpenOption{router.WithUserInfo(info)}
				if mode != "" {
					m, err := taskstack.ParseMode(mode)
					if err != nil {
						return err
					}
					opts = append(opts, router.WithTaskMode(m))
				}

				var reply *async.Promise[string]
				if wait > 0 {
					reply = async.NewPromise[string]()
					opts = append(opts, router.WithCompletion(reply.Callback()))
				}

				outcome := a.router.Open(cmd.Context(), raw, opts...)
				fmt.Fprintf(out, "%s: %s\n", raw, outcome)
				if !outcome.OK() {
					failed++
					continue
				}

				if reply != nil {
					v, err := reply.AwaitWithTimeout(wait)
					if err != nil {
						fmt.Fprintf(out, "  completion: %v\n", err)
					} else {
						fmt.Fprintf(out, "  completion: %q\n", v)
					}
				}
			}

			fmt.Fprintf(out, "stack: %s\n", strings.Join(a.stack.Identities(), " > "))
			if stats {
				if err := a.writeStats(out); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errUnresolved, failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "task-mode", "m", "", "task mode for every address: top, replace_top, single or clear")
	cmd.Flags().StringSliceVarP(&user, "user", "u", nil, "user info entry as key=value (repeatable)")
	cmd.Flags().DurationVarP(&wait, "wait", "w", 0, "wait this long for each handler to report completion")
	cmd.Flags().BoolVar(&stats, "stats", false, "print resolution counters after dispatching")

	return cmd
}

func objectCmd(a *app, setup setupFunc) *cobra.Command {
	var user []string

	cmd := &cobra.Command{
		Use:   "object <url>",
		Short: "Resolve an address to the value its object handler returns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(cmd); err != nil {
				return err
			}
			info, err := parseUserInfo(user)
			if err != nil {
				return err
			}

			v, outcome := a.router.Object(cmd.Context(), args[0], router.WithUserInfo(info))
			if !outcome.OK() {
				return fmt.Errorf("%w: %s: %s", errUnresolved, args[0], outcome)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", v)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&user, "user", "u", nil, "user info entry as key=value (repeatable)")
	return cmd
}

func routesCmd(a *app, setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List registered routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(cmd); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, rt := range a.router.Routes() {
				nav := ""
				if rt.Navigable {
					nav = " navigable"
				}
				fmt.Fprintf(out, "%-8s %s%s\n", rt.Kind, rt.Pattern, nav)
			}
			return nil
		},
	}
}

func generateCmd(a *app, setup setupFunc) *cobra.Command {
	var (
		qrFile     string
		qrTerminal bool
		qrSize     int
	)

	cmd := &cobra.Command{
		Use:   "generate <pattern> [value...]",
		Short: "Fill a pattern with values, in variable order",
		Example: `  linkroute generate "app://item/:id" 42
  linkroute generate "app://files/*" docs/a.txt --qr link.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(cmd); err != nil {
				return err
			}

			values := make([]any, 0, len(args)-1)
			for _, v := range args[1:] {
				values = append(values, v)
			}
			link, err := a.router.Generate(args[0], values...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, link)

			if qrFile != "" {
				png, err := qrcode.Generate(link, qrSize)
				if err != nil {
					return err
				}
				if err := os.WriteFile(qrFile, png, 0o644); err != nil {
					return fmt.Errorf("write qr code: %w", err)
				}
			}
			if qrTerminal {
				art, err := qrcode.Terminal(link, false)
				if err != nil {
					return err
				}
				fmt.Fprint(out, art)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&qrFile, "qr", "", "write the link as a PNG QR code to this file")
	cmd.Flags().BoolVar(&qrTerminal, "qr-terminal", false, "print the link as a QR code")
	cmd.Flags().IntVar(&qrSize, "qr-size", qrcode.DefaultSize, "PNG QR code size in pixels")

	return cmd
}

// reconcileCmd works on identities only and needs no manifest.
func reconcileCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "reconcile <stack> <destination>",
		Short: "Show how a task mode merges a destination into a stack",
		Long: `Reconcile takes a comma separated stack of identities, bottom first,
and prints the stack after merging the destination.`,
		Example: `  linkroute reconcile a,b,c,a b --mode single`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := taskstack.ParseMode(mode)
			if err != nil {
				return err
			}

			var stack []taskstack.Destination
			for _, id := range strings.Split(args[0], ",") {
				if id = strings.TrimSpace(id); id != "" {
					stack = append(stack, taskstack.NewDestination(id, nil))
				}
			}

			t := taskstack.Reconcile(stack, taskstack.NewDestination(args[1], nil), m)

			ids := make([]string, len(t.Stack))
			for i, d := range t.Stack {
				ids[i] = d.Identity
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", m, strings.Join(ids, ","))
			if len(t.Removed) > 0 {
				removed := make([]string, len(t.Removed))
				for i, d := range t.Removed {
					removed[i] = d.Identity
				}
				fmt.Fprintf(out, "removed: %s\n", strings.Join(removed, ","))
			}
			if t.Reused {
				fmt.Fprintln(out, "reused existing instance")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "top", "task mode: top, replace_top, single or clear")
	return cmd
}

func parseUserInfo(entries []string) (map[string]any, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	info := make(map[string]any, len(entries))
	for _, e := range entries {
		k, v, ok := strings.Cut(e, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid user info entry '%s', want key=value", e)
		}
		info[k] = v
	}
	return info, nil
}
