package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_WithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewZerologAdapterWithLogger(zerolog.New(&buf))

	l := base.With(String("resource", "h5_extract"))
	l.Warn("container read failed", String("id", "TRAAAGR128F425B14B"), Err(errors.New("boom")))

	out := buf.String()
	for _, want := range []string{`"resource":"h5_extract"`, `"id":"TRAAAGR128F425B14B"`, `"error":"boom"`, `"level":"warn"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestZerologAdapter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapterWithWriter(&buf, zerolog.WarnLevel)

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	l.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected error message in output, got %q", buf.String())
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Errorf("OrNoop(nil) should return NoopLogger")
	}
	z := NewZerologAdapter()
	if OrNoop(z) != Logger(z) {
		t.Errorf("OrNoop should return a non-nil logger unchanged")
	}
}
