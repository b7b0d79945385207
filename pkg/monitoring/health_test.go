package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func pingFunc(err error) func(context.Context) error {
	return func(context.Context) error { return err }
}

func TestHealthCheckerAggregatesStatuses(t *testing.T) {
	hc := NewHealthChecker("mindcave", "v1")
	hc.AddCheck("ok", func() CheckResult { return CheckResult{Status: StatusHealthy} })
	if got := hc.CheckHealth().Status; got != StatusHealthy {
		t.Fatalf("expected healthy, got %s", got)
	}

	hc.AddCheck("slow", func() CheckResult { return CheckResult{Status: StatusDegraded} })
	if got := hc.CheckHealth().Status; got != StatusDegraded {
		t.Fatalf("expected degraded, got %s", got)
	}

	hc.AddCheck("down", func() CheckResult { return CheckResult{Status: StatusUnhealthy} })
	if got := hc.CheckHealth().Status; got != StatusUnhealthy {
		t.Fatalf("expected unhealthy, got %s", got)
	}
}

func TestHTTPServiceHealthCheck(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) }))
	defer s.Close()
	if res := HTTPServiceHealthCheck("favicon-service", s.URL)(); res.Status != StatusHealthy {
		t.Fatalf("expected healthy, got %s: %s", res.Status, res.Message)
	}

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(502) }))
	defer bad.Close()
	if res := HTTPServiceHealthCheck("favicon-service", bad.URL)(); res.Status != StatusUnhealthy {
		t.Fatalf("expected unhealthy on 502, got %s", res.Status)
	}
}

func TestConfigurationHealthCheck(t *testing.T) {
	res := ConfigurationHealthCheck(map[string]string{"DATABASE_URL": ""})()
	if res.Status != StatusUnhealthy {
		t.Fatalf("expected unhealthy for missing config, got %s", res.Status)
	}
	res = ConfigurationHealthCheck(map[string]string{"DATABASE_URL": "postgres://x"})()
	if res.Status != StatusHealthy {
		t.Fatalf("expected healthy, got %s", res.Status)
	}
}

func TestPingHealthCheck(t *testing.T) {
	if res := PingHealthCheck("redis", pingFunc(nil))(); res.Status != StatusHealthy {
		t.Fatalf("expected healthy, got %s", res.Status)
	}
	if res := PingHealthCheck("redis", pingFunc(errors.New("refused")))(); res.Status != StatusUnhealthy {
		t.Fatalf("expected unhealthy, got %s", res.Status)
	}
}
