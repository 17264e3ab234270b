package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AlexAkulov/reportfox"
)

var (
	scannedRe  = regexp.MustCompile(`Scanned files: (\d+)`)
	infectedRe = regexp.MustCompile(`Infected files: (\d+)`)
)

// ParseClamAV extracts the summary counters and FOUND detail lines from a
// clamscan log.
func ParseClamAV(text string) reportfox.MalwareSummary {
	summary := reportfox.MalwareSummary{}
	if m := scannedRe.FindStringSubmatch(text); m != nil {
		summary.TotalFiles, _ = strconv.Atoi(m[1])
	}
	if m := infectedRe.FindStringSubmatch(text); m != nil {
		summary.InfectedFiles, _ = strconv.Atoi(m[1])
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "FOUND") {
			summary.Infections = append(summary.Infections, strings.TrimSpace(line))
		}
	}
	summary.CleanFiles = summary.TotalFiles - summary.InfectedFiles
	if summary.CleanFiles < 0 {
		summary.CleanFiles = 0
	}
	return summary
}
