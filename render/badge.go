package render

import (
	"fmt"
	"strings"

	"github.com/AlexAkulov/reportfox"
	"github.com/AlexAkulov/reportfox/risk"
)

// Badge builds a shields.io badge in markdown.
func Badge(label, message, color string) string {
	return fmt.Sprintf("![%s](https://img.shields.io/badge/%s-%s-%s)",
		label, badgeEscape(label), badgeEscape(message), color)
}

func RiskBadge(level reportfox.RiskLevel) string {
	display := risk.DisplayFor(level)
	return Badge("risk", level.String(), display.Color)
}

func CountBadge(label string, count int) string {
	color := "green"
	if count > 0 {
		color = "red"
	}
	return Badge(label, fmt.Sprintf("%d", count), color)
}

// shields.io path escaping: dashes double, spaces and underscores become
// underscores.
func badgeEscape(s string) string {
	s = strings.Replace(s, "-", "--", -1)
	s = strings.Replace(s, "_", "__", -1)
	s = strings.Replace(s, " ", "_", -1)
	return s
}
