package parser

import (
	"testing"

	"github.com/AlexAkulov/reportfox"

	. "github.com/smartystreets/goconvey/convey"
)

const sastReport = `## Scan Results

| Tool | Critical | High | Medium | Low | Total | Status |
|------|----------|------|--------|-----|-------|--------|
| CodeQL | 0 | 0 | 0 | 0 | 0 | success |
| Bandit | 2 | 6 | 14 | 0 | 22 | success |
| Semgrep | 0 | 1 | 3 | 5 | 9 | failure |
| **TOTAL** | **2** | **7** | **17** | **5** | **31** | |
`

const containerReport = `### Container Scan Summary

| **TOTAL** | **1** | **4** | **9** | **12** | **26** |
`

func TestParseReport(t *testing.T) {
	Convey("parses severity table", t, func() {
		report := ParseReport(sastReport)

		So(report.ParseOK, ShouldBeTrue)
		So(report.Tools, ShouldHaveLength, 3)
		So(report.Tools[0].Name, ShouldEqual, "CodeQL")
		So(report.Tools[1].Counts, ShouldResemble, reportfox.VulnerabilityCounts{Critical: 2, High: 6, Medium: 14})
		So(report.Tools[2].Status, ShouldEqual, reportfox.StatusFailure)
	})
	Convey("aggregate is the elementwise sum of tool counts", t, func() {
		report := ParseReport(sastReport)

		want := reportfox.VulnerabilityCounts{}
		for _, tool := range report.Tools {
			want.Add(tool.Counts)
		}
		So(report.Aggregate, ShouldResemble, want)
		So(report.Aggregate, ShouldResemble, reportfox.VulnerabilityCounts{Critical: 2, High: 7, Medium: 17, Low: 5})
	})
	Convey("TOTAL row is not a tool", t, func() {
		report := ParseReport(sastReport)
		for _, tool := range report.Tools {
			So(tool.Name, ShouldNotEqual, "TOTAL")
		}
	})
	Convey("parses bold aggregate row without header", t, func() {
		report := ParseReport(containerReport)

		So(report.ParseOK, ShouldBeTrue)
		So(report.Tools, ShouldBeEmpty)
		So(report.Aggregate, ShouldResemble, reportfox.VulnerabilityCounts{Critical: 1, High: 4, Medium: 9, Low: 12})
	})
	Convey("no table yields empty report, not error", t, func() {
		report := ParseReport("nothing to see here\njust prose\n")

		So(report.ParseOK, ShouldBeFalse)
		So(report.Tools, ShouldBeEmpty)
		So(report.Aggregate.Total(), ShouldEqual, 0)
	})
	Convey("malformed cells degrade to zero", t, func() {
		report := ParseReport(`
| Tool | Critical | High | Medium | Low | Total | Status |
|------|----------|------|--------|-----|-------|--------|
| Trivy | n/a | -3 | 2 | | 2 | success |
`)
		So(report.ParseOK, ShouldBeTrue)
		So(report.Tools, ShouldHaveLength, 1)
		So(report.Tools[0].Counts, ShouldResemble, reportfox.VulnerabilityCounts{Medium: 2})
	})
	Convey("round-trips well-formed counts", t, func() {
		report := ParseReport(`
| Tool | Critical | High | Medium | Low | Total | Status |
|------|----------|------|--------|-----|-------|--------|
| Checkov | 3 | 2 | 1 | 0 | 6 | success |
`)
		So(report.Tools[0].Counts, ShouldResemble, reportfox.VulnerabilityCounts{Critical: 3, High: 2, Medium: 1, Low: 0})
		So(report.Tools[0].Counts.Total(), ShouldEqual, 6)
	})
}

func TestParseClamAV(t *testing.T) {
	clamLog := `Scanning /work...
/work/evil.bin: Eicar-Signature FOUND

----------- SCAN SUMMARY -----------
Known viruses: 8000000
Scanned files: 120
Infected files: 1
`
	Convey("extracts counters and FOUND lines", t, func() {
		summary := ParseClamAV(clamLog)

		So(summary.TotalFiles, ShouldEqual, 120)
		So(summary.InfectedFiles, ShouldEqual, 1)
		So(summary.CleanFiles, ShouldEqual, 119)
		So(summary.Infections, ShouldResemble, []string{"/work/evil.bin: Eicar-Signature FOUND"})
	})
	Convey("empty log yields zero summary", t, func() {
		summary := ParseClamAV("")

		So(summary.TotalFiles, ShouldEqual, 0)
		So(summary.InfectedFiles, ShouldEqual, 0)
		So(summary.Infections, ShouldBeEmpty)
	})
}
