package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, debug := range []bool{true, false} {
		log, err := New(debug)
		require.NoError(t, err)
		assert.NotNil(t, log)
		assert.Equal(t, debug, log.Core().Enabled(zap.DebugLevel))
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	log := zap.NewExample()
	assert.Same(t, log, OrNop(log))
}
