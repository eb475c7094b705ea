package domain

// Theme is the app-wide color scheme. The only states are light and dark.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether the theme is dark.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// ParseTheme interprets a client-supplied theme string. Anything other than
// the two known states reports false.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// ResolveTheme picks the effective theme: the persisted choice wins, then the
// device preference hint, then light.
func ResolveTheme(persistedDark *bool, deviceHint string) Theme {
	if persistedDark != nil {
		if *persistedDark {
			return ThemeDark
		}
		return ThemeLight
	}
	if hint, ok := ParseTheme(deviceHint); ok {
		return hint
	}
	return ThemeLight
}
