package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArrayFlagsString(t *testing.T) {
	tests := []struct {
		name     string
		flags    arrayFlags
		expected string
	}{
		{
			name:     "empty",
			flags:    arrayFlags{},
			expected: "",
		},
		{
			name:     "single",
			flags:    arrayFlags{`Number=\d+`},
			expected: `Number=\d+`,
		},
		{
			name:     "multiple",
			flags:    arrayFlags{`Number=\d+`, "If=if", "Dot=."},
			expected: `Number=\d+, If=if, Dot=.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.flags.String()
			if result != tt.expected {
				t.Errorf("String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestArrayFlagsSet(t *testing.T) {
	var flags arrayFlags

	if err := flags.Set(`Number=\d+`); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 1 || flags[0] != `Number=\d+` {
		t.Errorf("Set() = %v, want [\"Number=\\d+\"]", flags)
	}

	if err := flags.Set("If=if"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 2 || flags[1] != "If=if" {
		t.Errorf("Set() = %v, want second value \"If=if\"", flags)
	}
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		raw       string
		wantName  string
		wantRegex string
		wantErr   bool
	}{
		{raw: `Number=\d+`, wantName: "Number", wantRegex: `\d+`},
		{raw: "Eq==", wantName: "Eq", wantRegex: "="},
		{raw: "Empty=", wantName: "Empty", wantRegex: ""},
		{raw: "NoRegex", wantErr: true},
		{raw: "=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tok, err := parseToken(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseToken(%q) succeeded", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tok.Name != tt.wantName || tok.Regex != tt.wantRegex {
				t.Errorf("parseToken(%q) = %+v", tt.raw, tok)
			}
		})
	}
}

func TestRunGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tokens.go")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-token", "If=if", "-token", `Number=\d+`, "-output", out, "-package", "lexer"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Generated "+out) {
		t.Errorf("stdout = %q", stdout.String())
	}

	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"package lexer", "If Token = iota", "func NewTokenSet("} {
		if !strings.Contains(string(src), want) {
			t.Errorf("generated code missing %q", want)
		}
	}
}

func TestRunAnalyze(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-analyze", "ab*"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}

	var result struct {
		Nodes         int    `json:"nodes"`
		LiteralPrefix string `json:"literal_prefix"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if result.Nodes != 4 || result.LiteralPrefix != "a" {
		t.Errorf("result = %+v", result)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		code    int
		wantErr string
	}{
		{"no input", []string{"-output", "x.go"}, 1, "-config or -token is required"},
		{"bad token flag", []string{"-token", "nope", "-output", "x.go"}, 1, "expected Name=regex"},
		{"bad pattern", []string{"-analyze", "a{3,2}"}, 1, "invalid repetition range"},
		{"bad output", []string{"-token", "A=a", "-output", "x.txt"}, 1, ".go extension"},
		{"unknown flag", []string{"-bogus"}, 2, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d", code, tt.code)
			}
			if !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantErr)
			}
		})
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if stdout.String() != "flexgen version "+appVersion+"\n" {
		t.Errorf("version output = %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"-help"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"Usage:", "-config", "-token", "-max-nodes"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("help missing %q", want)
		}
	}
}
