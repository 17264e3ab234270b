package history

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexAkulov/reportfox"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStore(t *testing.T) {
	dir, err := ioutil.TempDir("", "reportfox-history")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	store := &Store{Location: filepath.Join(dir, "history.ql")}
	if err := store.Start(); err != nil {
		t.Fatalf("can't start store: %v", err)
	}
	defer store.Stop()

	Convey("no history means no trend", t, func() {
		trend, err := store.TrendFor("overview", reportfox.VulnerabilityCounts{Critical: 1})
		So(err, ShouldBeNil)
		So(trend, ShouldBeNil)
	})
	Convey("trend is the delta against the previous run", t, func() {
		err := store.SaveRun("overview", reportfox.RunContext{RunID: "1"}, reportfox.VulnerabilityCounts{Critical: 1, High: 4, Medium: 2})
		So(err, ShouldBeNil)

		trend, err := store.TrendFor("overview", reportfox.VulnerabilityCounts{Critical: 3, High: 2, Medium: 2, Low: 5})
		So(err, ShouldBeNil)
		So(trend, ShouldNotBeNil)
		So(trend.Critical, ShouldEqual, 2)
		So(trend.High, ShouldEqual, -2)
		So(trend.Medium, ShouldEqual, 0)
		So(trend.Low, ShouldEqual, 5)
	})
	Convey("variants keep separate histories", t, func() {
		trend, err := store.TrendFor("sast", reportfox.VulnerabilityCounts{})
		So(err, ShouldBeNil)
		So(trend, ShouldBeNil)
	})
}
