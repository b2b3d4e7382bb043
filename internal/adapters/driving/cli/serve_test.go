package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calypso-labs/contexta/internal/logger"
	"github.com/calypso-labs/contexta/internal/watcher"
)

func TestWatchAndWarn(t *testing.T) {
	t.Run("startup failure is surfaced", func(t *testing.T) {
		var buf bytes.Buffer
		logger.SetOutput(&buf)
		defer logger.SetOutput(os.Stderr)

		w := watcher.New(filepath.Join(t.TempDir(), "absent"), func(context.Context) error { return nil })
		watchAndWarn(context.Background(), w)

		assert.Contains(t, buf.String(), "[WARN] Document watcher stopped")
	})

	t.Run("cancellation is quiet", func(t *testing.T) {
		var buf bytes.Buffer
		logger.SetOutput(&buf)
		defer logger.SetOutput(os.Stderr)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		w := watcher.New(t.TempDir(), func(context.Context) error { return nil })
		watchAndWarn(ctx, w)

		assert.NotContains(t, buf.String(), "[WARN]")
	})
}
