package risk

import "fmt"

// NoIssuesItem is the single line emitted when nothing is actionable.
const NoIssuesItem = "✅ No immediate security actions required"

// ActionItems produces the prioritized advisory lines for a scan. Order is
// fixed: critical, then high, then medium. All-zero input yields exactly the
// affirmative line.
func ActionItems(critical, high, medium int) []string {
	items := []string{}
	if critical > 0 {
		items = append(items, fmt.Sprintf("🚨 **URGENT**: %d critical vulnerabilities require immediate attention", critical))
	}
	if high > 0 {
		items = append(items, fmt.Sprintf("⚠️ **HIGH**: %d high-severity issues should be fixed within 24 hours", high))
	}
	if medium > 0 {
		items = append(items, fmt.Sprintf("🟡 **MEDIUM**: %d medium-severity issues to schedule for the next sprint", medium))
	}
	if len(items) == 0 {
		items = append(items, NoIssuesItem)
	}
	return items
}
