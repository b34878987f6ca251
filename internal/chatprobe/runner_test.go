package chatprobe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phoenixborealis/bimagent/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// fakeAgent stands in for a running carbon agent instance.
func fakeAgent(t *testing.T, chatStatus int, reply string) (*httptest.Server, *int64) {
	t.Helper()
	var chats int64
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	mux.HandleFunc("/api/dashboard", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"active_scenario_id":     "baseline_current_design",
			"total_emissions_kgco2e": 58936.4,
		})
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&chats, 1)
		w.WriteHeader(chatStatus)
		_ = json.NewEncoder(w).Encode(ChatResponse{Reply: reply})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &chats
}

func probeConfig(url string) *Config {
	return &Config{
		BaseURL: url,
		Rounds:  1,
		Workers: 2,
		Timeout: 5 * time.Second,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a healthy agent instance", t, func() {
		ctx := context.Background()

		Convey("When every question gets a reply", func() {
			srv, chats := fakeAgent(t, http.StatusOK, "resposta com **números exatos**")
			err := Run(ctx, probeConfig(srv.URL))

			Convey("Then the probe passes and covers the full question set", func() {
				So(err, ShouldBeNil)
				So(atomic.LoadInt64(chats), ShouldEqual, int64(len(Questions)))
			})
		})

		Convey("When multiple rounds are requested", func() {
			srv, chats := fakeAgent(t, http.StatusOK, "ok")
			cfg := probeConfig(srv.URL)
			cfg.Rounds = 3
			So(Run(ctx, cfg), ShouldBeNil)
			So(atomic.LoadInt64(chats), ShouldEqual, int64(3*len(Questions)))
		})

		Convey("When the service replies with structured error messages", func() {
			srv, _ := fakeAgent(t, http.StatusInternalServerError, "Erro Técnico (500): engine unavailable")
			err := Run(ctx, probeConfig(srv.URL))

			Convey("Then error replies count separately and do not fail the probe", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When the chat endpoint returns empty bodies", func() {
			srv, _ := fakeAgent(t, http.StatusOK, "")
			err := Run(ctx, probeConfig(srv.URL))

			Convey("Then the probe reports failure", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "failed questions")
			})
		})
	})

	Convey("Given no service at the target address", t, func() {
		err := Run(context.Background(), probeConfig("http://127.0.0.1:1"))

		Convey("Then the health check fails first", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})
}
