package reportfox

// VulnerabilityCounts holds per-severity finding counters for one tool
// or for a whole scan. All fields are non-negative.
type VulnerabilityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Total is always derived, never stored.
func (c VulnerabilityCounts) Total() int {
	return c.Critical + c.High + c.Medium + c.Low
}

func (c *VulnerabilityCounts) Add(other VulnerabilityCounts) {
	c.Critical += other.Critical
	c.High += other.High
	c.Medium += other.Medium
	c.Low += other.Low
}

type ToolStatus string

const (
	StatusSuccess ToolStatus = "success"
	StatusFailure ToolStatus = "failure"
	StatusSkipped ToolStatus = "skipped"
)

type ToolResult struct {
	Name   string              `json:"name"`
	Counts VulnerabilityCounts `json:"counts"`
	Status ToolStatus          `json:"status"`
}

// ScanReport is the parsed form of one tool-category's scan output for a
// single run. Aggregate is the elementwise sum of all tool counts. ParseOK
// is false when no recognized table was found, so callers can tell a clean
// scan from missing data.
type ScanReport struct {
	Tools     []ToolResult        `json:"tools"`
	Aggregate VulnerabilityCounts `json:"aggregate"`
	ParseOK   bool                `json:"parse_ok"`
}

// MalwareSummary is the parsed form of a clamscan log.
type MalwareSummary struct {
	TotalFiles    int      `json:"total_files"`
	InfectedFiles int      `json:"infected_files"`
	CleanFiles    int      `json:"clean_files"`
	Infections    []string `json:"infections"`
}

// RiskLevel is the ordinal classification derived from critical/high counts.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskModerate
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskModerate:
		return "MODERATE"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	}
	return ""
}

// Trend holds per-severity deltas against the previous stored run.
type Trend struct {
	Critical int
	High     int
	Medium   int
	Low      int
}

// RunContext identifies the CI run being reported on. It is supplied by the
// caller and only used to build deep links.
type RunContext struct {
	RunID string
	Owner string
	Repo  string
}

// Comment is a rendered report ready for delivery.
type Comment struct {
	Variant  string              `json:"variant"`
	Risk     RiskLevel           `json:"-"`
	RiskName string              `json:"risk"`
	Counts   VulnerabilityCounts `json:"counts"`
	Markdown string              `json:"markdown"`
}

type ICommentSender interface {
	Start() error
	Send(Comment) error
	Stop() error
}
