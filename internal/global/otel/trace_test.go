package otel

import (
	"context"
	"testing"

	"campus-notifier/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndShutdown(t *testing.T) {
	prev := config.Get()
	defer config.Set(prev)
	cfg := *prev
	cfg.OTel.AgentHost, cfg.OTel.AgentPort = "127.0.0.1", "4318"
	config.Set(&cfg)

	assert.NoError(t, Shutdown(context.Background()))

	// 导出器惰性连接，Init 不需要真实的 collector
	require.NoError(t, Init(context.Background()))
	assert.NotNil(t, tracerProvider)
	assert.NoError(t, Shutdown(context.Background()))
}
