package logger

import (
	"bytes"
	"testing"

	"github.com/beka-birhanu/penguin-maze/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("plain output", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("app", "", &buf)
		require.NoError(t, err)

		l.Info("started")
		l.Warning("slow")
		l.Error("failed")

		assert.Equal(t, "[APP] [INFO] started\n[APP] [WARNING] slow\n[APP] [ERROR] failed\n", buf.String())
	})

	t.Run("colored output", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("SESSION-MANAGER", config.ColorCyan, &buf)
		require.NoError(t, err)

		l.Error("boom")

		assert.Contains(t, buf.String(), config.ColorCyan+"[SESSION-MANAGER]")
		assert.Contains(t, buf.String(), config.LogErrorColor+"[ERROR]")
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("fields are sorted", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("app", "", &buf)
		require.NoError(t, err)

		l.WithFields(map[string]interface{}{"size": 9, "level": 1}, "maze")

		assert.Equal(t, "[APP] [INFO] maze level=1 size=9\n", buf.String())
	})

	t.Run("nil writer", func(t *testing.T) {
		_, err := New("app", "", nil)
		assert.ErrorIs(t, err, ErrNilWriter)
	})
}
