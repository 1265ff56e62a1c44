package flexgen

import (
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KromDaniel/flexgen/syntax"
)

const sampleConfig = `{
  "package": "lexer",
  "type": "Kind",
  "tokens": [
    {"name": "Number", "regex": "\\d+", "examples": ["42"]},
    {"name": "Ident", "regex": "(a|b|c)+"}
  ]
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tokens.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"valid config", Options{ConfigFile: "t.json", OutputFile: "t.go"}, ""},
		{"valid tokens", Options{Tokens: []Token{{Name: "A", Regex: "a"}}, OutputFile: "t.go"}, ""},
		{"no input", Options{OutputFile: "t.go"}, "config file or tokens"},
		{"no output", Options{ConfigFile: "t.json"}, "output file cannot be empty"},
		{"not go", Options{ConfigFile: "t.json", OutputFile: "t.txt"}, ".go extension"},
		{"negative limit", Options{ConfigFile: "t.json", OutputFile: "t.go", MaxNodes: -1}, "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package != "lexer" || cfg.Type != "Kind" || len(cfg.Tokens) != 2 {
		t.Fatalf("config = %+v", cfg)
	}
	if cfg.Tokens[0].Regex != `\d+` || cfg.Tokens[0].Examples[0] != "42" {
		t.Errorf("first token = %+v", cfg.Tokens[0])
	}

	if _, err := ParseConfig([]byte(`{"tokens": [], "extra": 1}`)); err == nil {
		t.Error("unknown field accepted")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestGenerate(t *testing.T) {
	cfgPath := writeConfig(t, sampleConfig)
	out := filepath.Join(t.TempDir(), "kind.go")

	err := Generate(Options{
		ConfigFile:       cfgPath,
		Tokens:           []Token{{Name: "Dot", Regex: `\.`}},
		OutputFile:       out,
		GenerateTestFile: true,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parser.ParseFile(token.NewFileSet(), out, src, 0); err != nil {
		t.Fatalf("generated code does not parse: %v", err)
	}
	for _, want := range []string{
		"package lexer",
		"// Source: tokens.json",
		"Number Kind = iota",
		"Ident\n",
		"Dot\n",
		"func NewKindSet(",
	} {
		if !strings.Contains(string(src), want) {
			t.Errorf("generated code missing %q:\n%s", want, src)
		}
	}

	if _, err := os.Stat(TestFilePath(out)); err != nil {
		t.Errorf("test file: %v", err)
	}
}

func TestGenerateOverrides(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tok.go")
	err := Generate(Options{
		Tokens:     []Token{{Name: "A", Regex: "a"}},
		OutputFile: out,
		Package:    "custom",
	})
	if err != nil {
		t.Fatal(err)
	}
	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), "package custom") || !strings.Contains(string(src), "type Token int") {
		t.Errorf("defaults not applied:\n%s", src)
	}
	if _, err := os.Stat(TestFilePath(out)); !os.IsNotExist(err) {
		t.Error("test file written without GenerateTestFile")
	}
}

func TestGenerateErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tok.go")

	err := Generate(Options{Tokens: []Token{{Name: "Bad", Regex: "a{3,2}"}}, OutputFile: out})
	if !errors.Is(err, syntax.ErrInvalidRepeatRange) {
		t.Errorf("bad regex: error = %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "token Bad") {
		t.Errorf("error %q does not name the token", err)
	}

	err = Generate(Options{Tokens: []Token{{Name: "A", Regex: "a", Examples: []string{"b"}}}, OutputFile: out})
	if err == nil || !strings.Contains(err.Error(), `example "b" does not match`) {
		t.Errorf("bad example: error = %v", err)
	}

	err = Generate(Options{Tokens: []Token{{Name: "A", Regex: "a"}, {Name: "A", Regex: "b"}}, OutputFile: out})
	if err == nil || !strings.Contains(err.Error(), "duplicate token name") {
		t.Errorf("duplicate: error = %v", err)
	}

	err = Generate(Options{Tokens: []Token{{Name: "A", Regex: "a{50}"}}, OutputFile: out, MaxNodes: 10})
	if !errors.Is(err, syntax.ErrTooLarge) {
		t.Errorf("max nodes: error = %v", err)
	}

	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output written despite errors")
	}
}

func TestAnalyze(t *testing.T) {
	res, err := Analyze("(a*)*b")
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasCatastrophicRisk {
		t.Error("nested quantifier not flagged")
	}
	if strings.Join(res.FeatureLabels, ",") != "Group,Quantifiers,Unbounded" {
		t.Errorf("FeatureLabels = %v", res.FeatureLabels)
	}

	if _, err := AnalyzeWithMaxNodes("a{100}", 10); !errors.Is(err, syntax.ErrTooLarge) {
		t.Errorf("error = %v", err)
	}
}
