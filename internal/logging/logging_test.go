package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerbosity(t *testing.T) {
	for _, tc := range []struct {
		verbosity string
		debug     bool
		warn      bool
	}{
		{verbosity: "silent"},
		{verbosity: "0"},
		{verbosity: "error"},
		{verbosity: "warn", warn: true},
		{verbosity: "3", warn: true},
		{verbosity: "debug", debug: true, warn: true},
		{verbosity: "trace", debug: true, warn: true},
	} {
		t.Run(tc.verbosity, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := NewVerbosity(&buf, tc.verbosity)
			require.NoError(t, err)

			l.Debugf("debug line")
			assert.Equal(t, tc.debug, bytes.Contains(buf.Bytes(), []byte("debug line")))

			l.Warningf("warn line")
			assert.Equal(t, tc.warn, bytes.Contains(buf.Bytes(), []byte("warn line")))
		})
	}

	_, err := NewVerbosity(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewVerbosity(&buf, "info")
	require.NoError(t, err)

	l.WithField("file", "a.txt").Info("hashed")
	assert.Contains(t, buf.String(), "file=a.txt")
	assert.Contains(t, buf.String(), "msg=hashed")
}
