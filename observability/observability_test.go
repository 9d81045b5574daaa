package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()
	ctx := context.Background()
	ctx2, span := tracer.StartSpan(ctx, SpanWrite)
	if ctx2 != ctx {
		t.Fatalf("nop tracer should return same context")
	}
	span.SetTag(TagPageCount, 1)
	span.SetError(nil)
	span.Finish()
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(zerolog.New(&buf)).With(String("doc", "report"))
	log.Info("page added", Int("page", 2), Float64("y", 12.5), Bool("break", true))
	log.Error("write failed", Error("err", errors.New("boom")))
	out := buf.String()
	for _, want := range []string{`"doc":"report"`, `"page":2`, `"y":12.5`, `"break":true`, `"message":"page added"`, `"err":"boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %s: %s", want, out)
		}
	}
}

func TestZerologLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(zerolog.New(&buf).Level(zerolog.WarnLevel))
	log.Debug("hidden")
	log.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected level filtering: %s", buf.String())
	}
}
