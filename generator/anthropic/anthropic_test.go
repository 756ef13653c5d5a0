package anthropic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/aicore/generator"
)

// Interface compliance (compile-time assertion)
var _ generator.Generator = (*Generator)(nil)

func TestGenerator_Info(t *testing.T) {
	g := NewGenerator(func(o *Options) { o.APIKey = "test-key" })
	info := g.Info()
	assert.Equal(t, "anthropic", info.Provider)
	assert.True(t, info.Remote)
	assert.NotEmpty(t, info.Name)
}

func TestGenerator_PingCancelledContext(t *testing.T) {
	g := NewGenerator(func(o *Options) { o.APIKey = "test-key" })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := g.Ping(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic endpoint unreachable")
}

func TestGenerator_GenerateCancelledContext(t *testing.T) {
	g := NewGenerator(func(o *Options) { o.APIKey = "test-key" })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, generator.Request{Input: "halo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic api error")
}
