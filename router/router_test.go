package router

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexAkulov/reportfox"
	"github.com/AlexAkulov/reportfox/config"

	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommentRouter(t *testing.T) {
	dir, err := ioutil.TempDir("", "reportfox-router")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	Convey("delivers comments to the file sender", t, func() {
		commentChannel := make(chan *reportfox.Comment)
		commentRouter := &CommentRouter{
			CommentChannel: commentChannel,
			Config: &config.Config{
				Common:  &config.Common{CommentFile: filepath.Join(dir, "comment.md")},
				GitHub:  &config.GitHub{},
				Webhook: &config.Webhook{},
				SMTP:    &config.SMTP{},
			},
			Log: zerolog.Nop(),
		}
		So(commentRouter.Start(), ShouldBeNil)

		commentChannel <- &reportfox.Comment{
			Variant:  "overview",
			RiskName: "LOW",
			Markdown: "all clear",
		}
		So(commentRouter.Stop(), ShouldBeNil)

		body, err := ioutil.ReadFile(filepath.Join(dir, "comment-overview.md"))
		So(err, ShouldBeNil)
		So(string(body), ShouldEqual, "all clear")
	})
	Convey("no senders is still a valid setup", t, func() {
		commentRouter := &CommentRouter{
			CommentChannel: make(chan *reportfox.Comment),
			Config: &config.Config{
				Common:  &config.Common{},
				GitHub:  &config.GitHub{},
				Webhook: &config.Webhook{},
				SMTP:    &config.SMTP{},
			},
			Log: zerolog.Nop(),
		}
		So(commentRouter.Start(), ShouldBeNil)
		So(commentRouter.Stop(), ShouldBeNil)
	})
}
