package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThemeMode(t *testing.T) {
	testCases := []struct {
		in      string
		want    ThemeMode
		wantErr bool
	}{
		{"light", ThemeModeLight, false},
		{"dark", ThemeModeDark, false},
		{"system", ThemeModeSystem, false},
		{"purple", "", true},
		{"Dark", "", true},
		{"", "", true},
		{" light", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseThemeMode(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestThemeModeScan(t *testing.T) {
	var m ThemeMode

	require.NoError(t, m.Scan("dark"))
	assert.Equal(t, ThemeModeDark, m)

	require.NoError(t, m.Scan([]byte("light")))
	assert.Equal(t, ThemeModeLight, m)

	require.NoError(t, m.Scan(nil))
	assert.Equal(t, ThemeModeSystem, m)

	assert.Error(t, m.Scan(42))
}

func TestThemeModeJSONIsPlainString(t *testing.T) {
	b, err := json.Marshal(ThemeModeDark)
	require.NoError(t, err)
	assert.JSONEq(t, `"dark"`, string(b))

	var m ThemeMode
	assert.Error(t, json.Unmarshal([]byte(`1`), &m))
}
