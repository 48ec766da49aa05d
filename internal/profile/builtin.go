package profile

// Builtin returns the fixed fallback profile: a dark palette with a
// MesloLGS Nerd Font and a 120x35 window. Each call returns a fresh copy.
func Builtin() Profile {
	rgb := func(r, g, b float64) map[string]any {
		return map[string]any{"Red": r, "Green": g, "Blue": b}
	}

	return Profile{
		"Colors": map[string]any{
			"Ansi 0 Color":      rgb(0.118, 0.122, 0.149),
			"Ansi 1 Color":      rgb(0.937, 0.325, 0.314),
			"Ansi 2 Color":      rgb(0.596, 0.765, 0.475),
			"Ansi 3 Color":      rgb(0.898, 0.753, 0.482),
			"Ansi 4 Color":      rgb(0.380, 0.686, 0.937),
			"Ansi 5 Color":      rgb(0.776, 0.471, 0.867),
			"Ansi 6 Color":      rgb(0.337, 0.714, 0.761),
			"Ansi 7 Color":      rgb(0.671, 0.698, 0.749),
			"Ansi 8 Color":      rgb(0.361, 0.388, 0.439),
			"Ansi 9 Color":      rgb(0.937, 0.325, 0.314),
			"Ansi 10 Color":     rgb(0.596, 0.765, 0.475),
			"Ansi 11 Color":     rgb(0.898, 0.753, 0.482),
			"Ansi 12 Color":     rgb(0.380, 0.686, 0.937),
			"Ansi 13 Color":     rgb(0.776, 0.471, 0.867),
			"Ansi 14 Color":     rgb(0.337, 0.714, 0.761),
			"Ansi 15 Color":     rgb(1.0, 1.0, 1.0),
			"Background Color":  rgb(0.118, 0.122, 0.149),
			"Foreground Color":  rgb(0.671, 0.698, 0.749),
			"Cursor Color":      rgb(0.380, 0.686, 0.937),
			"Cursor Text Color": rgb(0.118, 0.122, 0.149),
		},
		"Font": map[string]any{
			"Normal Font":        "MesloLGS-NF-Regular 13",
			"Non Ascii Font":     "MesloLGS-NF-Regular 13",
			"Use Non-ASCII Font": false,
			"Horizontal Spacing": 1.0,
			"Vertical Spacing":   1.0,
			"Use Bold Font":      true,
			"Use Italic Font":    true,
			"ASCII Anti Aliased": true,
		},
		"Window": map[string]any{
			"Transparency": 0.0,
			"Blur":         false,
			"Blur Radius":  2.0,
			"Columns":      120,
			"Rows":         35,
		},
		"Terminal": map[string]any{
			"Scrollback Lines":     10000,
			"Unlimited Scrollback": false,
			"Terminal Type":        "xterm-256color",
			"Silence Bell":         true,
			"Visual Bell":          true,
		},
		"Cursor": map[string]any{
			"Cursor Type":     1,
			"Blinking Cursor": false,
		},
		"Keyboard": map[string]any{
			"Option Key Sends":       2,
			"Right Option Key Sends": 2,
		},
		"Session": map[string]any{
			"Close Sessions On End":   true,
			"Prompt Before Closing 2": 0,
		},
	}
}
