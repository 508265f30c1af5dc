package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ThemeMode represents the colour scheme a user has picked
type ThemeMode string

const (
	ThemeModeLight  ThemeMode = "light"
	ThemeModeDark   ThemeMode = "dark"
	ThemeModeSystem ThemeMode = "system"
)

// ThemeModes lists every accepted mode
var ThemeModes = []ThemeMode{ThemeModeLight, ThemeModeDark, ThemeModeSystem}

func (m ThemeMode) String() string {
	return string(m)
}

// IsValid reports whether m is one of light, dark or system
func (m ThemeMode) IsValid() bool {
	switch m {
	case ThemeModeLight, ThemeModeDark, ThemeModeSystem:
		return true
	}
	return false
}

// ParseThemeMode converts s to a ThemeMode. Matching is exact.
func ParseThemeMode(s string) (ThemeMode, error) {
	m := ThemeMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid theme mode %q", s)
	}
	return m, nil
}

func (m ThemeMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *ThemeMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = ThemeMode(str)
	return nil
}

func (m ThemeMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *ThemeMode) Scan(value interface{}) error {
	if value == nil {
		*m = ThemeModeSystem
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = ThemeMode(v)
	case []byte:
		*m = ThemeMode(v)
	default:
		return fmt.Errorf("cannot scan %T into ThemeMode", value)
	}
	return nil
}
