package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/agenthub/internal/platform/otel"
)

func setTraceEnv(t *testing.T, endpoint, enabled, ratio string) {
	t.Helper()
	t.Setenv(otel.EndpointEnv, endpoint)
	t.Setenv(otel.EnabledEnv, enabled)
	t.Setenv(otel.SampleRatioEnv, ratio)
}

func TestLoadSettingsDefaults(t *testing.T) {
	setTraceEnv(t, "", "", "")

	settings, err := otel.LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if !settings.Enabled || settings.SampleRatio != 1 {
		t.Fatalf("settings = %+v", settings)
	}
	if settings.Active() {
		t.Fatal("expected inactive without endpoint")
	}
}

func TestLoadSettingsRejectsBadRatio(t *testing.T) {
	for _, ratio := range []string{"1.5", "-0.1", "half"} {
		t.Run(ratio, func(t *testing.T) {
			setTraceEnv(t, "http://localhost:4318", "", ratio)
			if _, err := otel.LoadSettings(); err == nil {
				t.Fatal("expected sample ratio error")
			}
			shutdown, err := otel.Setup(context.Background(), "gateway")
			if err == nil {
				t.Fatal("expected setup error")
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("noop shutdown: %v", err)
			}
		})
	}
}

func TestSettingsActive(t *testing.T) {
	cases := []struct {
		name     string
		settings otel.Settings
		want     bool
	}{
		{name: "no endpoint", settings: otel.Settings{Enabled: true}, want: false},
		{name: "blank endpoint", settings: otel.Settings{Endpoint: "  ", Enabled: true}, want: false},
		{name: "disabled", settings: otel.Settings{Endpoint: "http://localhost:4318"}, want: false},
		{name: "active", settings: otel.Settings{Endpoint: "http://localhost:4318", Enabled: true}, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.settings.Active(); got != tc.want {
				t.Fatalf("Active() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSetupNoopWhenDisabled(t *testing.T) {
	setTraceEnv(t, "http://localhost:4318", "false", "")

	shutdown, err := otel.Setup(context.Background(), "gateway")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestSetupWithInstallsProvider(t *testing.T) {
	// Non-routable address so nothing is exported.
	shutdown, err := otel.SetupWith(context.Background(), "gateway", otel.Settings{
		Endpoint:    "http://192.0.2.1:4318",
		Enabled:     true,
		SampleRatio: 0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
