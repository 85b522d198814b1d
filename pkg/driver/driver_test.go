package driver

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWellFormedProgram(t *testing.T) {
	var out bytes.Buffer
	result := Run("print 1 + 2 * 3;", DefaultConfig(), &out, nil, nil)
	if result.Failed() {
		t.Fatalf("unexpected failure: %v", result.Diagnostics)
	}
	if out.String() != "7\n" {
		t.Fatalf("got output %q", out.String())
	}
	if result.Phase != PhaseNone {
		t.Fatalf("successful run should carry no phase, got %v", result.Phase)
	}
}

func TestRunAppendsMissingNewline(t *testing.T) {
	var out bytes.Buffer
	result := Run("print 1;", DefaultConfig(), &out, nil, nil)
	if result.Failed() {
		t.Fatalf("unexpected failure: %v", result.Diagnostics)
	}
}

func TestRunBlankInputIsNoOp(t *testing.T) {
	var out bytes.Buffer
	result := Run("// just a comment\n", DefaultConfig(), &out, nil, nil)
	if result.Failed() {
		t.Fatalf("unexpected failure: %v", result.Diagnostics)
	}
	if out.Len() != 0 {
		t.Fatalf("blank input should produce no output, got %q", out.String())
	}
}

func TestRunTagsSyntaxPhase(t *testing.T) {
	result := Run("print @;\n", DefaultConfig(), io.Discard, nil, nil)
	if !result.Failed() || result.Phase != PhaseSyntax {
		t.Fatalf("expected syntax failure, got %+v", result)
	}
	if result.Phase.Header() != "LOX: SYNTAX ERROR" {
		t.Fatalf("unexpected header %q", result.Phase.Header())
	}
}

func TestRunTagsGrammarPhase(t *testing.T) {
	result := Run("print 1\n", DefaultConfig(), io.Discard, nil, nil)
	if !result.Failed() || result.Phase != PhaseGrammar {
		t.Fatalf("expected grammar failure, got %+v", result)
	}
	if result.Phase.Header() != "LOX: GRAMMAR ERROR" {
		t.Fatalf("unexpected header %q", result.Phase.Header())
	}
}

func TestRunTagsRuntimePhase(t *testing.T) {
	result := Run("print ghost;\n", DefaultConfig(), io.Discard, nil, nil)
	if !result.Failed() || result.Phase != PhaseRuntime {
		t.Fatalf("expected runtime failure, got %+v", result)
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("runtime failures are fail-fast, got %v", result.Diagnostics)
	}
}

func TestRunCarriesEnvironmentForward(t *testing.T) {
	var out bytes.Buffer
	first := Run("var x = 1;\n", DefaultConfig(), &out, nil, nil)
	if first.Failed() {
		t.Fatalf("first run failed: %v", first.Diagnostics)
	}

	second := Run("print x;\n", DefaultConfig(), &out, nil, first.Env)
	if second.Failed() {
		t.Fatalf("second run failed: %v", second.Diagnostics)
	}
	if out.String() != "1\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestRunEnvironmentSurvivesRuntimeFailure(t *testing.T) {
	var out bytes.Buffer
	first := Run("var x = 7; print ghost;\n", DefaultConfig(), &out, nil, nil)
	if !first.Failed() {
		t.Fatalf("expected failure")
	}

	second := Run("print x;\n", DefaultConfig(), &out, nil, first.Env)
	if second.Failed() {
		t.Fatalf("second run failed: %v", second.Diagnostics)
	}
	if out.String() != "7\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestTokenDebugDump(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TokenDebug = true
	var debug bytes.Buffer
	Run("print 1;\n", cfg, io.Discard, &debug, nil)
	if !strings.Contains(debug.String(), "PRINT") || !strings.Contains(debug.String(), "NUMBER") {
		t.Fatalf("expected token dump, got %q", debug.String())
	}
}

func TestParseDebugDump(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParseDebug = true
	var debug bytes.Buffer
	Run("print 1 + 2;\n", cfg, io.Discard, &debug, nil)
	if !strings.Contains(debug.String(), "(print (+ 1 2))") {
		t.Fatalf("expected tree dump, got %q", debug.String())
	}
}

func TestEnvDebugDump(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnvDebug = true
	var debug bytes.Buffer
	Run("var x = 3.5;\n", cfg, io.Discard, &debug, nil)
	if !strings.Contains(debug.String(), "x = 3.5") {
		t.Fatalf("expected environment dump, got %q", debug.String())
	}
}

func TestScanPragmasSetsFlags(t *testing.T) {
	src, cfg := ScanPragmas("#pragma tok_debug on\nprint 1;\n", DefaultConfig())
	if !cfg.TokenDebug {
		t.Fatalf("tok_debug pragma should enable token dumps")
	}
	if strings.Contains(src, "#pragma") {
		t.Fatalf("directives must be stripped from the source: %q", src)
	}
}

func TestScanPragmasOffWinsOverOn(t *testing.T) {
	src := "#pragma parse_debug on\nprint 1;\n#pragma parse_debug off\n"
	_, cfg := ScanPragmas(src, DefaultConfig())
	if cfg.ParseDebug {
		t.Fatalf("off directive should take precedence regardless of order")
	}
}

func TestScanPragmasLeavesUnrelatedSourceAlone(t *testing.T) {
	src, cfg := ScanPragmas("print \"pragma free\";\n", DefaultConfig())
	if src != "print \"pragma free\";\n" {
		t.Fatalf("source without directives must be untouched: %q", src)
	}
	if cfg.TokenDebug || cfg.ParseDebug || cfg.EnvDebug {
		t.Fatalf("no directives should mean no flag changes")
	}
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("missing config must not be an error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfigReadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := "tok_debug: true\nenv_debug: true\nparser_error_limit: 4\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.TokenDebug || cfg.ParseDebug || !cfg.EnvDebug {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
	if cfg.ParserErrorLimit != 4 {
		t.Fatalf("expected limit 4, got %d", cfg.ParserErrorLimit)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(":\n\t- nope"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Fatalf("malformed config should be an error")
	}
}

func TestLoadConfigNormalizesLimit(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("parser_error_limit: -5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ParserErrorLimit != DefaultConfig().ParserErrorLimit {
		t.Fatalf("non-positive limits fall back to the default, got %d", cfg.ParserErrorLimit)
	}
}
