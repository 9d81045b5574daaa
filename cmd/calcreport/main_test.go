package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/laurentmuller/calculation-sub010/config"
)

const calculation = `
id: 7
customer: Test
groups:
  - code: Labour
    margin: 1.2
    categories:
      - code: Hours
        items:
          - {description: Work, unit: h, price: 80, quantity: 10}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWritesFile(t *testing.T) {
	in := writeFile(t, "calc.yaml", calculation)
	out := filepath.Join(t.TempDir(), "calc.pdf")
	var stderr bytes.Buffer
	if err := run(context.Background(), []string{"-in", in, "-out", out, "-index", "-log-level", "info"}, nil, nil, &stderr); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output starts with %q", data[:8])
	}
	if !strings.Contains(stderr.String(), "report written") {
		t.Fatalf("log = %q", stderr.String())
	}
}

func TestRunStdinToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := writeFile(t, "config.yaml", "locale: fr\ncompress: false\nlog:\n  level: error\n")
	err := run(context.Background(), []string{"-config", cfg, "-in", "-"}, strings.NewReader(calculation), &stdout, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(stdout.Bytes(), []byte("%PDF-")) {
		t.Fatal("no pdf on stdout")
	}
	if !strings.Contains(stdout.String(), "/Title (Groupes)") {
		t.Fatal("locale from the configuration not used")
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected log output %q", stderr.String())
	}
}

func TestRunErrors(t *testing.T) {
	var stderr bytes.Buffer
	ctx := context.Background()
	if err := run(ctx, nil, nil, nil, &stderr); !errors.Is(err, errUsage) {
		t.Fatalf("missing -in: got %v", err)
	}
	in := writeFile(t, "calc.yaml", calculation)
	if err := run(ctx, []string{"-in", in, "-log-level", "loud"}, nil, nil, &stderr); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("bad level: got %v", err)
	}
	bad := writeFile(t, "config.yaml", "chart:\n  axis_script: \"(\"\n")
	if err := run(ctx, []string{"-config", bad, "-in", in}, nil, nil, &stderr); err == nil {
		t.Fatal("invalid axis script accepted")
	}
	if err := run(ctx, []string{"-in", filepath.Join(t.TempDir(), "missing.yaml")}, nil, nil, &stderr); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing input: got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := validatePDF([]byte("not a pdf")); err == nil {
		t.Fatal("garbage validated")
	}
}
