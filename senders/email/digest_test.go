package email

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/AlexAkulov/reportfox"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDigestBatch(t *testing.T) {
	Convey("accumulates totals and the highest risk", t, func() {
		batch := &digestBatch{}
		batch.Add(reportfox.Comment{
			Variant: "sast",
			Risk:    reportfox.RiskModerate,
			Counts:  reportfox.VulnerabilityCounts{High: 2, Low: 1},
		})
		batch.Add(reportfox.Comment{
			Variant: "container",
			Risk:    reportfox.RiskCritical,
			Counts:  reportfox.VulnerabilityCounts{Critical: 1},
		})
		batch.Add("not a comment")

		So(batch.Comments, ShouldHaveLength, 2)
		So(batch.Total, ShouldEqual, 4)
		So(batch.Highest, ShouldEqual, reportfox.RiskCritical)
	})
}

func TestDigestSubject(t *testing.T) {
	Convey("single report subject", t, func() {
		subject := getDigestSubject(digestData{
			Comments: make([]reportfox.Comment, 1),
			Total:    22,
			Highest:  "CRITICAL",
		})
		So(subject, ShouldEqual, "Security scan: CRITICAL risk, 22 findings")
	})
	Convey("multi report subject", t, func() {
		subject := getDigestSubject(digestData{
			Comments: make([]reportfox.Comment, 3),
			Total:    9,
			Highest:  "HIGH",
		})
		So(subject, ShouldEqual, "Security scan: HIGH risk, 9 findings in 3 reports")
	})
}

func TestDigestTemplate(t *testing.T) {
	Convey("template renders a row per comment", t, func() {
		tmpl, err := template.New("digestmail").Parse(digestTemplate)
		So(err, ShouldBeNil)

		buf := &bytes.Buffer{}
		err = tmpl.Execute(buf, digestData{
			Comments: []reportfox.Comment{
				{Variant: "sast", RiskName: "HIGH", Counts: reportfox.VulnerabilityCounts{High: 6}},
				{Variant: "container", RiskName: "LOW"},
			},
			Total:   6,
			Highest: "HIGH",
		})
		So(err, ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "<td>sast</td>")
		So(buf.String(), ShouldContainSubstring, "<td>container</td>")
		So(buf.String(), ShouldContainSubstring, "<b>HIGH</b>")
	})
}

func TestRecipientFilter(t *testing.T) {
	Convey("empty filter accepts everyone", t, func() {
		s := &Sender{Config: &Config{}}
		So(s.isOkRecipient("anyone@example.com"), ShouldBeTrue)
	})
	Convey("regex filter applies", t, func() {
		s := &Sender{Config: &Config{RecipientRegex: `@example\.com$`}}
		So(s.isOkRecipient("security@example.com"), ShouldBeTrue)
		So(s.isOkRecipient("someone@other.org"), ShouldBeFalse)
	})
}
