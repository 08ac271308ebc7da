package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/linkrouter/core/logger"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithProduction("linkroute"),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("env", "test")),
	)

	log.Debug("dropped")
	log.Info("resolved", logger.URL("app://item/42"), logger.Outcome(stringer("dispatched")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "resolved", rec["msg"])
	assert.Equal(t, "linkroute", rec["service"])
	assert.Equal(t, "test", rec["env"])
	assert.Equal(t, "app://item/42", rec["url"])
	assert.Equal(t, "dispatched", rec["outcome"])
}

func TestNewDevelopmentText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment(""), logger.WithOutput(&buf))

	log.Debug("matched", logger.Pattern("app://item/:id"))
	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "pattern=app://item/:id")
	assert.Contains(t, out, "source=")
}

func TestWithFormatIgnoresUnknown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithJSONFormatter(), logger.WithFormat("yaml"), logger.WithOutput(&buf))
	log.Info("x")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("loud"))
}

func TestErrorAttrs(t *testing.T) {
	t.Parallel()

	err1 := errors.New("first")

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, err1, logger.Error(err1).Value.Any())
}

func TestDomainAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.URL("").Equal(slog.Attr{}))
	assert.True(t, logger.Pattern("").Equal(slog.Attr{}))
	assert.True(t, logger.Outcome(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Key("k", nil).Equal(slog.Attr{}))

	assert.Equal(t, "scheme", logger.Scheme("app").Key)
	assert.Equal(t, "single", logger.TaskMode(stringer("single")).Value.String())
	assert.Equal(t, 3, int(logger.Count("routes", 3).Value.Int64()))
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())

	grp := logger.Group("route", logger.Component("router"), logger.Action("open"))
	assert.Len(t, grp.Value.Group(), 2)
}
