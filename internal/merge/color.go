package merge

import "fmt"

// ColorSpaceSRGB is the color space tag written for every expanded color.
const ColorSpaceSRGB = "sRGB"

var channels = []struct {
	compact  string
	expanded string
}{
	{compact: "Red", expanded: "Red Component"},
	{compact: "Green", expanded: "Green Component"},
	{compact: "Blue", expanded: "Blue Component"},
}

// ExpandColor converts a compact {Red, Green, Blue[, Alpha]} color into
// iTerm2's component form. Channel values are not range checked.
func ExpandColor(compact map[string]any) (map[string]any, error) {
	expanded := make(map[string]any, len(channels)+2)
	for _, ch := range channels {
		raw, ok := compact[ch.compact]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidColor, ch.compact)
		}
		v, ok := toFloat(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T, not a number", ErrInvalidColor, ch.compact, raw)
		}
		expanded[ch.expanded] = v
	}

	alpha := 1.0
	if raw, ok := compact["Alpha"]; ok {
		v, ok := toFloat(raw)
		if !ok {
			return nil, fmt.Errorf("%w: Alpha is %T, not a number", ErrInvalidColor, raw)
		}
		alpha = v
	}
	expanded["Alpha Component"] = alpha
	expanded["Color Space"] = ColorSpaceSRGB

	return expanded, nil
}

func expandColorValue(v any) (map[string]any, error) {
	compact, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a mapping, got %T", ErrInvalidColor, v)
	}
	return ExpandColor(compact)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
