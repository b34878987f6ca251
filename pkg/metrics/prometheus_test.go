package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func gatheredNames(t *testing.T, reg *prometheus.Registry) map[string]bool {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestNewManager(t *testing.T) {
	Convey("Given the metrics manager", t, func() {
		Convey("When created with a fresh registry", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(WithPrometheusRegistry(reg))
			So(m, ShouldNotBeNil)

			Convey("Then observed metric families are gatherable", func() {
				// Vec metrics only appear after first observation.
				m.promptSize.Observe(2048)
				m.engineLatency.Observe(1500)
				m.chatTopics.WithLabelValues("total_carbon").Inc()
				names := gatheredNames(t, reg)
				So(names["bimagent_carbon_prompt_size_bytes"], ShouldBeTrue)
				So(names["bimagent_carbon_engine_call_latency_milliseconds"], ShouldBeTrue)
				So(names["bimagent_carbon_chat_questions_total"], ShouldBeTrue)
			})
		})

		Convey("When created with a custom namespace and subsystem", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(
				WithPrometheusRegistry(reg),
				WithNamespace("custom"),
				WithSubsystem("probe"),
			)
			m.promptSize.Observe(1)
			names := gatheredNames(t, reg)
			So(names["custom_probe_prompt_size_bytes"], ShouldBeTrue)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		Convey("When recording through every helper", func() {
			So(func() {
				RecordHTTPRequest("chat", "POST", 200)
				RecordHTTPRequestDuration("chat", "POST", 12.5)
				RecordChatTopic("scenario_low_clinker")
				RecordPromptSize(4096)
				RecordEngineCall(1800, true)
				RecordEngineCall(60000, false)
				SetContextInfo("ac20-fzk-haus", 3)
				RecordErrorByEndpoint("chat", "POST", "server_error")
			}, ShouldNotPanic)

			Convey("Then the shared registry exposes them", func() {
				names := gatheredNames(t, GetRegistry())
				So(names["bimagent_carbon_http_requests_total"], ShouldBeTrue)
				So(names["bimagent_carbon_engine_calls_total"], ShouldBeTrue)
				So(names["bimagent_carbon_context_info"], ShouldBeTrue)
				So(names["bimagent_carbon_errors_total"], ShouldBeTrue)
			})
		})
	})
}
