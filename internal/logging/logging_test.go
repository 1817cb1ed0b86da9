package logging_test

import (
	"bytes"
	"testing"

	"stopwatch/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity string
		debug     bool
		info      bool
		errors    bool
	}{
		{verbosity: "silent"},
		{verbosity: "0"},
		{verbosity: "error", errors: true},
		{verbosity: "2", errors: true},
		{verbosity: "info", info: true, errors: true},
		{verbosity: "DEBUG", debug: true, info: true, errors: true},
		{verbosity: "5", debug: true, info: true, errors: true},
	}

	for _, test := range tests {
		t.Run(test.verbosity, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := logging.NewFromVerbosity(&buf, test.verbosity)
			require.NoError(t, err)

			buf.Reset()
			logger.Debugf("debug %d", 1)
			assert.Equal(t, test.debug, bytes.Contains(buf.Bytes(), []byte("debug 1")))

			buf.Reset()
			logger.Infof("info %d", 2)
			assert.Equal(t, test.info, bytes.Contains(buf.Bytes(), []byte("info 2")))

			buf.Reset()
			logger.Errorf("error %d", 3)
			assert.Equal(t, test.errors, bytes.Contains(buf.Bytes(), []byte("error 3")))
		})
	}
}

func TestNewFromVerbosityUnknown(t *testing.T) {
	_, err := logging.NewFromVerbosity(&bytes.Buffer{}, "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"loud"`)
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewFromVerbosity(&buf, "info")
	require.NoError(t, err)

	logger.WithField("state", "started").Info("transition")
	assert.Contains(t, buf.String(), "state=started")
	assert.Contains(t, buf.String(), "transition")
}
