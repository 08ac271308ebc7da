package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `scheme: app
routes:
  - pattern: app://item/:id
    destination: pattern
    reply: item shown
  - pattern: app://cart
    destination: pattern
  - pattern: app://files/*
    kind: object
  - pattern: app://size/:w/:h
    kind: object
    reply: sized
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, testManifest)

	out, err := run(t, "match", "app://item/7", "--routes", path)
	require.NoError(t, err)
	assert.Equal(t, "pattern: app://item/:id\n  id = 7\n", out)

	out, err = run(t, "match", "app://files/a/b", "--routes", path)
	require.NoError(t, err)
	assert.Contains(t, out, "path-to-end = a/b")

	_, err = run(t, "match", "app://nowhere/1/2/3", "--routes", path)
	assert.ErrorIs(t, err, errUnresolved)
}

func TestOpenCommand(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, testManifest)

	t.Run("task mode reshapes the stack", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "open", "app://item/1", "app://cart", "app://item/2?task_mode=single", "--routes", path)
		require.NoError(t, err)
		assert.Contains(t, out, "-> app://item/:id id=1\n")
		assert.Contains(t, out, "app://cart: dispatched\n")
		assert.Contains(t, out, "stack: app://item/:id\n")
	})

	t.Run("flag overrides the query", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "open", "app://item/1", "app://cart?task_mode=single", "-m", "top", "--routes", path)
		require.NoError(t, err)
		assert.Contains(t, out, "stack: app://item/:id > app://cart\n")
	})

	t.Run("wait for completion", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "open", "app://item/1", "--wait", "1s", "-u", "source=cli", "--routes", path)
		require.NoError(t, err)
		assert.Contains(t, out, `completion: "item shown"`)
		assert.Contains(t, out, "userInfo=map[source:cli]")
	})

	t.Run("stats", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "open", "app://item/1", "--stats", "--routes", path)
		require.NoError(t, err)
		assert.Contains(t, out, "linkrouter_resolutions_total op=open outcome=dispatched 1\n")
	})

	t.Run("unresolved addresses fail", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "open", "app://missing", "web://item/1", "--routes", path)
		assert.ErrorIs(t, err, errUnresolved)
		assert.Contains(t, out, "app://missing: not_found\n")
		assert.Contains(t, out, "web://item/1: scheme_rejected\n")
	})

	t.Run("bad user info", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, "open", "app://item/1", "-u", "nokey", "--routes", path)
		assert.Error(t, err)
	})
}

func TestObjectCommand(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, testManifest)

	out, err := run(t, "object", "app://size/1/2", "--routes", path)
	require.NoError(t, err)
	assert.Contains(t, out, "-> app://size/:w/:h h=2 w=1\n")
	assert.Contains(t, out, "sized\n")

	out, err = run(t, "object", "app://files/docs/a.txt", "--routes", path)
	require.NoError(t, err)
	assert.Contains(t, out, "path-to-end=docs/a.txt")

	_, err = run(t, "object", "app://item/1", "--routes", path)
	assert.ErrorIs(t, err, errUnresolved)
}

func TestRoutesCommand(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, testManifest)

	out, err := run(t, "routes", "--routes", path)
	require.NoError(t, err)
	assert.Equal(t, "action   app://cart navigable\n"+
		"object   app://files/*\n"+
		"action   app://item/:id navigable\n"+
		"object   app://size/:w/:h\n", out)
}

func TestGenerateCommand(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, testManifest)

	out, err := run(t, "generate", "app://item/:id", "42", "--routes", path)
	require.NoError(t, err)
	assert.Equal(t, "app://item/42\n", out)

	_, err = run(t, "generate", "app://item/:id", "--routes", path)
	assert.Error(t, err, "arity mismatch")

	qr := filepath.Join(t.TempDir(), "link.png")
	_, err = run(t, "generate", "app://item/:id", "42", "--qr", qr, "--routes", path)
	require.NoError(t, err)
	data, err := os.ReadFile(qr)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	out, err = run(t, "generate", "app://item/:id", "42", "--qr-terminal", "--routes", path)
	require.NoError(t, err)
	assert.Greater(t, len(out), len("app://item/42\n"))
}

func TestReconcileCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"top", []string{"a,b,c,a", "b"}, "top: a,b,c,a,b\n"},
		{"replace top", []string{"a,b,c", "x", "-m", "replace_top"}, "replace_top: a,b,x\nremoved: c\n"},
		{"single", []string{"a,b,c,a", "b", "-m", "single"}, "single: a,b\nremoved: a,c\nreused existing instance\n"},
		{"clear", []string{"a,b,c,a", "b", "-m", "3"}, "clear: a,b\nremoved: a,c,b\n"},
		{"empty stack", []string{"", "a", "-m", "clear"}, "clear: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, append([]string{"reconcile"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, err := run(t, "reconcile", "a", "b", "-m", "sideways")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestMissingManifest(t *testing.T) {
	t.Parallel()

	_, err := run(t, "routes", "--routes", filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
