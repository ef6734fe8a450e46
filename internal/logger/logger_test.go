package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("returns logger stored in ctx", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		log := zap.New(core).Sugar()

		ctx := WithLogger(context.Background(), log)
		FromContext(ctx).Infow("spin", "pocket", 7)

		require.Equal(t, 1, logs.Len())
		require.Equal(t, "spin", logs.All()[0].Message)
		require.Equal(t, int64(7), logs.All()[0].ContextMap()["pocket"])
	})

	t.Run("falls back to new logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}
