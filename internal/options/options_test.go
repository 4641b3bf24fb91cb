package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type config struct {
	bits    int
	enabled bool
}

func TestApply_InOrder(t *testing.T) {
	cfg := &config{}

	err := Apply(cfg,
		NoError(func(c *config) { c.bits = 10 }),
		NoError(func(c *config) { c.enabled = true }),
		NoError(func(c *config) { c.bits = 12 }),
	)

	require.NoError(t, err)
	require.Equal(t, 12, cfg.bits)
	require.True(t, cfg.enabled)
}

func TestApply_StopsOnError(t *testing.T) {
	cfg := &config{}
	sentinel := errors.New("bad option")

	err := Apply(cfg,
		NoError(func(c *config) { c.bits = 8 }),
		New(func(c *config) error { return sentinel }),
		NoError(func(c *config) { c.bits = 16 }),
	)

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 8, cfg.bits, "options after a failing one must not run")
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &config{}
	require.NoError(t, Apply(cfg))
}
