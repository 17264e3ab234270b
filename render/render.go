package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/AlexAkulov/reportfox"
	"github.com/AlexAkulov/reportfox/risk"
)

type Variant int

const (
	SAST Variant = iota
	Container
	Overview
)

func (v Variant) String() string {
	switch v {
	case SAST:
		return "sast"
	case Container:
		return "container"
	case Overview:
		return "overview"
	}
	return ""
}

func (v Variant) title() string {
	switch v {
	case SAST:
		return "SAST Security Scan"
	case Container:
		return "Container Security Scan"
	case Overview:
		return "Security Overview"
	}
	return ""
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "sast":
		return SAST, nil
	case "container":
		return Container, nil
	case "overview":
		return Overview, nil
	}
	return SAST, fmt.Errorf("unknown variant '%s'", s)
}

// OverviewFormatter builds the Overview variant body. The default is the
// built-in template; callers may inject their own.
type OverviewFormatter interface {
	Format(*Data) (string, error)
}

// Data is everything a template needs, precomputed. No I/O happens past
// this point.
type Data struct {
	Title       string
	Variant     string
	Risk        risk.Display
	RiskName    string
	Report      reportfox.ScanReport
	Total       int
	ActionItems []string
	Badges      []string
	Trend       []string
	Malware     *reportfox.MalwareSummary
	Remediation []string
	ArtifactURL string
	SecurityURL string
	SettingsURL string
	Marker      string
}

type Renderer struct {
	Variant  Variant
	Context  reportfox.RunContext
	MaxSize  int
	Overview OverviewFormatter

	template *template.Template
}

// New builds a renderer for one variant. Unknown variants are a caller bug
// and are rejected here rather than at render time.
func New(variant Variant, context reportfox.RunContext, maxSize int) (*Renderer, error) {
	if variant.String() == "" {
		return nil, fmt.Errorf("unknown variant %d", int(variant))
	}
	if maxSize < 1 {
		maxSize = 65000
	}
	tmpl, err := template.New("comment").Parse(commentTemplate)
	if err != nil {
		return nil, fmt.Errorf("can't parse template with: %v", err)
	}
	return &Renderer{
		Variant:  variant,
		Context:  context,
		MaxSize:  maxSize,
		template: tmpl,
	}, nil
}

// Render builds the markdown comment for a parsed report. Pure string
// building; delivery belongs to senders.
func (r *Renderer) Render(report reportfox.ScanReport, level reportfox.RiskLevel, actionItems []string, malware *reportfox.MalwareSummary, trend *reportfox.Trend) (reportfox.Comment, error) {
	data := r.buildData(report, level, actionItems, malware, trend)
	var markdown string
	var err error
	if r.Variant == Overview && r.Overview != nil {
		markdown, err = r.Overview.Format(data)
	} else {
		markdown, err = r.format(data)
	}
	if err != nil {
		return reportfox.Comment{}, err
	}
	markdown = r.truncate(markdown)
	return reportfox.Comment{
		Variant:  r.Variant.String(),
		Risk:     level,
		RiskName: level.String(),
		Counts:   report.Aggregate,
		Markdown: markdown,
	}, nil
}

func (r *Renderer) buildData(report reportfox.ScanReport, level reportfox.RiskLevel, actionItems []string, malware *reportfox.MalwareSummary, trend *reportfox.Trend) *Data {
	display := risk.DisplayFor(level)
	repoURL := fmt.Sprintf("https://github.com/%s/%s", r.Context.Owner, r.Context.Repo)
	data := &Data{
		Title:       fmt.Sprintf("%s %s Results", display.Emoji, r.Variant.title()),
		Variant:     r.Variant.String(),
		Risk:        display,
		RiskName:    level.String(),
		Report:      report,
		Total:       report.Aggregate.Total(),
		ActionItems: actionItems,
		Badges: []string{
			RiskBadge(level),
			CountBadge("vulnerabilities", report.Aggregate.Total()),
		},
		Malware:     malware,
		Remediation: remediationFor(r.Variant),
		ArtifactURL: fmt.Sprintf("%s/actions/runs/%s", repoURL, r.Context.RunID),
		SecurityURL: repoURL + "/security",
		SettingsURL: repoURL + "/settings/security_analysis",
		Marker:      fmt.Sprintf("<!-- reportfox:%s -->", r.Variant),
	}
	if trend != nil {
		data.Trend = trendLines(*trend)
	}
	return data
}

func (r *Renderer) format(data *Data) (string, error) {
	buf := &bytes.Buffer{}
	if err := r.template.Execute(buf, data); err != nil {
		return "", fmt.Errorf("can't render with: %v", err)
	}
	return buf.String(), nil
}

// truncate enforces the platform comment-size ceiling. Cuts happen at a
// section boundary so <details> blocks stay balanced, and a link-out line
// replaces what was dropped.
func (r *Renderer) truncate(markdown string) string {
	if len(markdown) <= r.MaxSize {
		return markdown
	}
	notice := fmt.Sprintf("\n\n_Report truncated. Full results: %s/actions/runs/%s_\n",
		fmt.Sprintf("https://github.com/%s/%s", r.Context.Owner, r.Context.Repo), r.Context.RunID)
	limit := r.MaxSize - len(notice)
	if limit < 0 {
		limit = 0
	}
	cut := limit
	if i := lastBoundary(markdown[:limit]); i > 0 {
		cut = i
	}
	return markdown[:cut] + notice
}

func lastBoundary(s string) int {
	best := -1
	for _, marker := range []string{"\n<details>", "\n### ", "\n## "} {
		if i := strings.LastIndex(s, marker); i > best {
			best = i
		}
	}
	return best
}

func trendLines(trend reportfox.Trend) []string {
	lines := make([]string, 0, 4)
	for _, entry := range []struct {
		name  string
		delta int
	}{
		{"Critical", trend.Critical},
		{"High", trend.High},
		{"Medium", trend.Medium},
		{"Low", trend.Low},
	} {
		lines = append(lines, fmt.Sprintf("%s: %s", entry.name, arrow(entry.delta)))
	}
	return lines
}

func arrow(delta int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("▲ +%d", delta)
	case delta < 0:
		return fmt.Sprintf("▼ %d", delta)
	}
	return "— no change"
}

func remediationFor(variant Variant) []string {
	switch variant {
	case SAST:
		return []string{
			"Validate and sanitize all external input before use",
			"Use parameterized queries instead of string-built SQL",
			"Keep secrets out of source; load them from the environment or a vault",
		}
	case Container:
		return []string{
			"Rebuild images on a current base to pick up patched packages",
			"Pin base images by digest, not by floating tag",
			"Drop root privileges and unused capabilities in the runtime spec",
		}
	}
	return nil
}
