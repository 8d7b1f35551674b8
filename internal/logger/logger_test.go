package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
)

func TestNew(t *testing.T) {
	l, err := New(&config.LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = New(&config.LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}
