package logger

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func captureStdOut(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestInit_DevStd_TextOutput(t *testing.T) {
	cfg := Config{
		Service: "demo",
		Version: "v0.0.1",
		Env:     EnvDev,
		Backend: BackendStd,
		Level:   slog.LevelDebug,
	}

	out := captureStdOut(t, func() {
		Init(cfg)
		slog.Info("Hello world")
	})

	if strings.Contains(out, "{") && strings.Contains(out, "}") {
		t.Fatalf("expected text output in dev/std, got JSON: %s", out)
	}
	if !strings.Contains(out, "Hello world") {
		t.Fatalf("message missing: %s", out)
	}
	if !strings.Contains(out, "service=demo") {
		t.Fatalf("service attr missing: %s", out)
	}
	if !strings.Contains(out, "env=dev") {
		t.Fatalf("env attr missing: %s", out)
	}
}

func TestInit_ProdZap_JSONOutput(t *testing.T) {
	cfg := Config{
		Service: "demo",
		Version: "v0.0.1",
		Env:     EnvProd,
		Backend: BackendZap,
	}

	out := captureStdOut(t, func() {
		Init(cfg)
		slog.Info("Hello world")
	})

	if !strings.Contains(out, "{") {
		t.Fatalf("expected JSON output in prod/zap: %s", out)
	}
	if !strings.Contains(out, "Hello world") {
		t.Fatalf("message missing: %s", out)
	}
	if !strings.Contains(out, `"service"`) {
		t.Fatalf("service attr missing: %s", out)
	}
}

func TestDetectEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	if got := DetectEnv(); got != EnvProd {
		t.Fatalf("want prod, got %s", got)
	}

	t.Setenv("APP_ENV", "anything-else")
	if got := DetectEnv(); got != EnvDev {
		t.Fatalf("want dev, got %s", got)
	}
}

func TestL_InitializesLazily(t *testing.T) {
	def = nil
	if L() == nil {
		t.Fatal("L returned nil")
	}
}

func TestDebugEnablesDebugLevel(t *testing.T) {
	cfg := Config{Env: EnvDev, Backend: BackendStd, Debug: true}

	out := captureStdOut(t, func() {
		Init(cfg)
		slog.Debug("noisy detail")
	})

	if !strings.Contains(out, "noisy detail") {
		t.Fatalf("debug record missing: %s", out)
	}
}
