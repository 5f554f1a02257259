package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"Error", LevelError, false},
		{"off", LevelNone, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debugf("d %d", 1)
	l.Infof("i %d", 2)
	l.Warnf("w %d", 3)
	l.Errorf("e %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "DEBUG: d 1")
	assert.NotContains(t, out, "INFO: i 2")
	assert.Contains(t, out, "WARN: w 3")
	assert.Contains(t, out, "ERROR: e 4")

	buf.Reset()
	l.SetLevel(LevelDebug)
	l.Debugf("now visible")
	assert.Contains(t, buf.String(), "DEBUG: now visible")
	assert.True(t, l.Enabled(LevelDebug))
}

func TestDiscardAndNil(t *testing.T) {
	l := Discard()
	assert.Equal(t, LevelNone, l.Level())
	assert.False(t, l.Enabled(LevelError))
	l.Errorf("dropped")

	var nilLogger *Logger
	assert.NotPanics(t, func() { nilLogger.Infof("ignored") })
	assert.False(t, nilLogger.Enabled(LevelError))
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.log")

	l, closer, err := OpenFile(path, LevelInfo)
	require.NoError(t, err)
	l.Infof("hello %s", "file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO: hello file")

	_, _, err = OpenFile(filepath.Join(t.TempDir(), "missing", "x.log"), LevelInfo)
	assert.Error(t, err)
}
