package colors

import "strconv"

// TextColorFor picks a readable foreground for the given background
// color using perceived luminance. Light backgrounds get near-black
// text, dark backgrounds get white.
func TextColorFor(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "#ffffff"
	}

	luminance := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if luminance > 150 {
		return "#111827"
	}
	return "#ffffff"
}

func parseHex(hex string) (r, g, b int64, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}

	var err error
	if r, err = strconv.ParseInt(hex[1:3], 16, 0); err != nil {
		return 0, 0, 0, false
	}
	if g, err = strconv.ParseInt(hex[3:5], 16, 0); err != nil {
		return 0, 0, 0, false
	}
	if b, err = strconv.ParseInt(hex[5:7], 16, 0); err != nil {
		return 0, 0, 0, false
	}

	return r, g, b, true
}
