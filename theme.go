package main

// ThemeColors is the fixed palette for one dashboard theme.
type ThemeColors struct {
	Text       string
	Background string
	Grid       string
	MainLine   string
}

// HoverColors styles the hover box for one theme.
type HoverColors struct {
	BgColor     string
	BorderColor string
}

var darkTheme = ThemeColors{
	Text:       "#FFFFFF",
	Background: "rgba(0,0,0,0)",
	Grid:       "rgba(128,128,128,0.2)",
	MainLine:   "#3B82F6",
}

var lightTheme = ThemeColors{
	Text:       "#333333",
	Background: "rgba(255,255,255,0)",
	Grid:       "rgba(128,128,128,0.3)",
	MainLine:   "#2563EB",
}

var darkHover = HoverColors{BgColor: "#1F2937", BorderColor: "#374151"}
var lightHover = HoverColors{BgColor: "#FFFFFF", BorderColor: "#E5E7EB"}

// pieColors is the fixed slice palette for donut charts, assigned in rank
// order.
var pieColors = []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"}

// resolveTheme maps a theme identifier to its palette. Anything other than
// "light" resolves to the dark palette.
func resolveTheme(theme string) ThemeColors {
	if theme == "light" {
		return lightTheme
	}
	return darkTheme
}

// resolveHoverColors maps a theme identifier to its hover-box palette, with
// the same dark fallback as resolveTheme.
func resolveHoverColors(theme string) HoverColors {
	if theme == "light" {
		return lightHover
	}
	return darkHover
}

// securityTypeColor is the fixed trace color per security type.
func securityTypeColor(securityType string) string {
	switch securityType {
	case "Equity":
		return "#3B82F6"
	case "Debt":
		return "#F59E0B"
	case "Fund":
		return "#10B981"
	default:
		return "#6B7280"
	}
}
