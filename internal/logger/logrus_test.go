package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusLogger_FileOutput(t *testing.T) {
	location := filepath.Join(t.TempDir(), "kubeview.log")

	l := NewLogrusLogger(LogrusConfig{
		EnableFile:   true,
		Structured:   true,
		Level:        logrus.DebugLevel,
		FileLocation: location,
	})
	l.Errorf("API error: %s", "boom")

	contents, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `"msg":"API error: boom"`)
	assert.Contains(t, string(contents), `"level":"error"`)
}

func TestNewLogrusLogger_RespectsLevel(t *testing.T) {
	location := filepath.Join(t.TempDir(), "kubeview.log")

	l := NewLogrusLogger(LogrusConfig{
		EnableFile:   true,
		Level:        logrus.ErrorLevel,
		FileLocation: location,
	})
	l.Debugf("hidden %d", 1)
	l.Infof("hidden %d", 2)

	contents, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Empty(t, contents)
}
