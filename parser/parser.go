package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AlexAkulov/reportfox"
)

var severityColumns = []string{"tool", "critical", "high", "medium", "low", "total", "status"}

var separatorRe = regexp.MustCompile(`^[-: ]+$`)

// ParseReport extracts per-tool vulnerability counts from a markdown
// document. It recognizes a severity table headed by
// "| Tool | Critical | High | Medium | Low | Total | Status |" or, failing
// that, a bold aggregate row "| **TOTAL** | **n** | ... |". Malformed cells
// degrade to zero, a document without any recognized table yields an empty
// report with ParseOK=false. Never returns an error.
func ParseReport(text string) reportfox.ScanReport {
	report := reportfox.ScanReport{}
	lines := strings.Split(text, "\n")
	if tools, ok := parseSeverityTable(lines); ok {
		report.Tools = tools
		report.ParseOK = true
		for _, tool := range tools {
			report.Aggregate.Add(tool.Counts)
		}
		return report
	}
	if counts, ok := parseTotalRow(lines); ok {
		report.Aggregate = counts
		report.ParseOK = true
		return report
	}
	return report
}

func parseSeverityTable(lines []string) ([]reportfox.ToolResult, bool) {
	headerAt := -1
	for i, line := range lines {
		if isSeverityHeader(splitRow(line)) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, false
	}
	tools := []reportfox.ToolResult{}
	for _, line := range lines[headerAt+1:] {
		cells := splitRow(line)
		if len(cells) == 0 {
			break
		}
		if isSeparatorRow(cells) {
			continue
		}
		if len(cells) < 5 || cells[0] == "" {
			continue
		}
		if isTotalCell(cells[0]) {
			continue
		}
		tools = append(tools, reportfox.ToolResult{
			Name: unbold(cells[0]),
			Counts: reportfox.VulnerabilityCounts{
				Critical: parseCount(cells[1]),
				High:     parseCount(cells[2]),
				Medium:   parseCount(cells[3]),
				Low:      parseCount(cells[4]),
			},
			Status: parseStatus(cells),
		})
	}
	return tools, true
}

func parseTotalRow(lines []string) (reportfox.VulnerabilityCounts, bool) {
	for _, line := range lines {
		cells := splitRow(line)
		if len(cells) < 5 || !isTotalCell(cells[0]) {
			continue
		}
		return reportfox.VulnerabilityCounts{
			Critical: parseCount(cells[1]),
			High:     parseCount(cells[2]),
			Medium:   parseCount(cells[3]),
			Low:      parseCount(cells[4]),
		}, true
	}
	return reportfox.VulnerabilityCounts{}, false
}

// splitRow returns the trimmed cells of a pipe-delimited table row, or nil
// for a line that is not a table row.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "|") {
		return nil
	}
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i := range parts {
		cells[i] = strings.TrimSpace(parts[i])
	}
	return cells
}

func isSeverityHeader(cells []string) bool {
	if len(cells) < 5 {
		return false
	}
	for i, want := range severityColumns[:5] {
		if !strings.EqualFold(cells[i], want) {
			return false
		}
	}
	return true
}

func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		if !separatorRe.MatchString(cell) {
			return false
		}
	}
	return true
}

func isTotalCell(cell string) bool {
	return strings.EqualFold(unbold(cell), "total")
}

func unbold(cell string) string {
	return strings.TrimSpace(strings.Replace(cell, "*", "", -1))
}

// parseCount is deliberately lenient: anything that is not a non-negative
// integer counts as zero.
func parseCount(cell string) int {
	n, err := strconv.Atoi(unbold(cell))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseStatus(cells []string) reportfox.ToolStatus {
	if len(cells) < 7 {
		return reportfox.StatusSuccess
	}
	switch strings.ToLower(unbold(cells[6])) {
	case "failure", "failed", "error":
		return reportfox.StatusFailure
	case "skipped":
		return reportfox.StatusSkipped
	}
	return reportfox.StatusSuccess
}
