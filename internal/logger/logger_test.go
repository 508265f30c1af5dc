package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"json", Config{Level: "info", ServiceName: "svc"}, nil},
		{"console", Config{Level: "debug", Format: "console", ServiceName: "svc"}, nil},
		{"empty level defaults to info", Config{ServiceName: "svc"}, nil},
		{"missing service", Config{Level: "info"}, ErrServiceNameIsEmpty},
		{"bad format", Config{Level: "info", Format: "xml", ServiceName: "svc"}, ErrUnknownFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Out = &bytes.Buffer{}
			err := Init(tc.cfg)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Error(t, Init(Config{Level: "loud", ServiceName: "svc"}))
}

func TestInitWritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Config{Level: "info", ServiceName: "preferences-service", Out: &buf}))

	log.Debug().Msg("hidden")
	log.Info().Str("user_id", "u1").Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), buf.String())
	assert.Equal(t, "preferences-service", line["service"])
	assert.Equal(t, "u1", line["user_id"])
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestInitRollingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Init(Config{
		Level:       "info",
		ServiceName: "svc",
		Out:         &bytes.Buffer{},
		File:        File{Enabled: true, Path: dir, Name: "test.log", MaxSize: 1},
	}))

	log.Info().Msg("to file")

	content, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "to file")
}
