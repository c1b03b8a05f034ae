package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestForTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "debug", false)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	logger := For("network")
	logger.Info().Msg("connected")

	assert.Contains(t, buf.String(), `"component":"network"`)
	assert.Contains(t, buf.String(), `"message":"connected"`)
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "loud", false)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	logger := For("engine")
	logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}
