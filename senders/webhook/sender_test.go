package webhook

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexAkulov/reportfox"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWebhookSender(t *testing.T) {
	Convey("posts the comment envelope with headers", t, func() {
		var gotBody []byte
		var gotAuth, gotMethod string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = ioutil.ReadAll(r.Body)
			gotAuth = r.Header.Get("Authorization")
			gotMethod = r.Method
		}))
		defer server.Close()

		sender := &Sender{
			URL:     server.URL,
			Method:  "PUT",
			Headers: map[string]string{"Authorization": "Bearer token"},
		}
		So(sender.Start(), ShouldBeNil)
		err := sender.Send(reportfox.Comment{
			Variant:  "container",
			RiskName: "MODERATE",
			Counts:   reportfox.VulnerabilityCounts{High: 2},
			Markdown: "body",
		})
		So(err, ShouldBeNil)

		So(gotMethod, ShouldEqual, "PUT")
		So(gotAuth, ShouldEqual, "Bearer token")

		var envelope map[string]interface{}
		So(json.Unmarshal(gotBody, &envelope), ShouldBeNil)
		So(envelope["variant"], ShouldEqual, "container")
		So(envelope["risk"], ShouldEqual, "MODERATE")
		So(envelope["markdown"], ShouldEqual, "body")
	})
	Convey("server errors surface", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		sender := &Sender{URL: server.URL}
		So(sender.Start(), ShouldBeNil)
		So(sender.Send(reportfox.Comment{}), ShouldNotBeNil)
	})
	Convey("empty url fails at start", t, func() {
		sender := &Sender{}
		So(sender.Start(), ShouldNotBeNil)
	})
}
