package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitAndNamed(t *testing.T) {
	require.NoError(t, Init(Config{Level: "debug", Environment: "test", Service: "estate-backoffice"}))
	assert.True(t, Root().Core().Enabled(zap.DebugLevel))

	l, err := Named("http")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = Named("")
	assert.Error(t, err)
	assert.Panics(t, func() { MustNamed("") })
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	require.NoError(t, Init(Config{Level: "loud", Environment: "production"}))
	assert.False(t, Root().Core().Enabled(zap.DebugLevel))
	assert.True(t, Root().Core().Enabled(zap.InfoLevel))
}

func TestFromContext(t *testing.T) {
	l := zap.NewNop().Sugar().With("request_id", "abc")
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}
