package file

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexAkulov/reportfox"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFileSender(t *testing.T) {
	dir, err := ioutil.TempDir("", "reportfox-file")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	Convey("writes markdown and json sidecar per variant", t, func() {
		sender := &Sender{CommentFile: filepath.Join(dir, "comment.md")}
		So(sender.Start(), ShouldBeNil)
		defer sender.Stop()

		err := sender.Send(reportfox.Comment{
			Variant:  "sast",
			RiskName: "HIGH",
			Counts:   reportfox.VulnerabilityCounts{High: 6},
			Markdown: "## report body",
		})
		So(err, ShouldBeNil)

		body, err := ioutil.ReadFile(filepath.Join(dir, "comment-sast.md"))
		So(err, ShouldBeNil)
		So(string(body), ShouldEqual, "## report body")

		summary, err := ioutil.ReadFile(filepath.Join(dir, "comment-sast.json"))
		So(err, ShouldBeNil)
		So(string(summary), ShouldContainSubstring, `"risk": "HIGH"`)
		So(string(summary), ShouldContainSubstring, `"high": 6`)
	})
}

func TestVariantPath(t *testing.T) {
	Convey("inserts variant before the extension", t, func() {
		So(variantPath("out/comment.md", "container"), ShouldEqual, "out/comment-container.md")
		So(variantPath("comment.md", ""), ShouldEqual, "comment.md")
		So(variantPath("comment", "sast"), ShouldEqual, "comment-sast")
	})
}
