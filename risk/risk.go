package risk

import (
	"github.com/AlexAkulov/reportfox"
)

// Classify maps critical/high counts to a risk level. Medium and low counts
// never move the badge: the level tracks exploitability tiers while the
// action list (ActionItems) tracks the remediation backlog.
func Classify(critical, high int) reportfox.RiskLevel {
	switch {
	case critical > 0:
		return reportfox.RiskCritical
	case high > 5:
		return reportfox.RiskHigh
	case high > 0:
		return reportfox.RiskModerate
	}
	return reportfox.RiskLow
}

// Display holds the presentation attributes of a risk level.
type Display struct {
	Emoji string
	Color string
	Label string
}

// DisplayFor is total over the RiskLevel enum. Extending the enum without
// extending this switch is a programming error, caught by the empty-string
// sentinel in tests rather than papered over with an UNKNOWN fallback.
func DisplayFor(level reportfox.RiskLevel) Display {
	switch level {
	case reportfox.RiskCritical:
		return Display{Emoji: "🚨", Color: "red", Label: "CRITICAL RISK"}
	case reportfox.RiskHigh:
		return Display{Emoji: "⚠️", Color: "orange", Label: "HIGH RISK"}
	case reportfox.RiskModerate:
		return Display{Emoji: "🟡", Color: "yellow", Label: "MODERATE RISK"}
	case reportfox.RiskLow:
		return Display{Emoji: "✅", Color: "green", Label: "LOW RISK"}
	}
	return Display{}
}
