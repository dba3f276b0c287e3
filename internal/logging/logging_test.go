package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lugat-go/internal/config"
)

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lugat.log")
	logger, closeFn, err := New(config.LogConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	logger.WithField("category", "verbs").Info("quiz started")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"verbs"`)
	assert.Contains(t, string(data), `"msg":"quiz started"`)
}

func TestNew_BadLevelFallsBack(t *testing.T) {
	logger, closeFn, err := New(config.LogConfig{Level: "loud", File: ""})
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
