package logger

import (
	"bytes"
	"context"
	"testing"

	kit "juryduty/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"trace":   "trace",
		"DEBUG":   "debug",
		"warning": "warn",
		"error":   "error",
		"":        "info",
		" junk ":  "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitAndChildren(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "juryduty",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Named("disputes").Info().Msg("named-line")

	ctx := WithSession(WithRequest(context.Background(), "req-9"), "sess-1")
	C(ctx).Info().Msg("ctx-line")
	C(context.Background()).Debug().Msg("bare-line")

	out := buf.String()
	kit.MustContain(t, out, `"component":"disputes"`)
	kit.MustContain(t, out, `"request_id":"req-9"`)
	kit.MustContain(t, out, `"session_id":"sess-1"`)
	kit.MustContain(t, out, `"service":"juryduty"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, "bare-line")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv = %+v", opt)
	}
}
