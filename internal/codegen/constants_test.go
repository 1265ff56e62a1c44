package codegen

import "testing"

func TestGeneratedNames(t *testing.T) {
	tests := []struct {
		typ      string
		names    string
		patterns string
		ctor     string
	}{
		{"Token", "tokenNames", "TokenPatterns", "NewTokenSet"},
		{"HTTPVerb", "hTTPVerbNames", "HTTPVerbPatterns", "NewHTTPVerbSet"},
		{"Ä", "äNames", "ÄPatterns", "NewÄSet"},
	}

	for _, tt := range tests {
		if got := NamesVar(tt.typ); got != tt.names {
			t.Errorf("NamesVar(%q) = %q, want %q", tt.typ, got, tt.names)
		}
		if got := PatternsVar(tt.typ); got != tt.patterns {
			t.Errorf("PatternsVar(%q) = %q, want %q", tt.typ, got, tt.patterns)
		}
		if got := SetConstructor(tt.typ); got != tt.ctor {
			t.Errorf("SetConstructor(%q) = %q, want %q", tt.typ, got, tt.ctor)
		}
	}
}

func TestLowerFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"A", "a"},
		{"ABC", "aBC"},
		{"Hello", "hello"},
		{"hello", "hello"},
		{"Éclair", "éclair"},
	}

	for _, tt := range tests {
		got := LowerFirst(tt.input)
		if got != tt.want {
			t.Errorf("LowerFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "A"},
		{"abc", "Abc"},
		{"Hello", "Hello"},
		{"éclair", "Éclair"},
	}

	for _, tt := range tests {
		got := UpperFirst(tt.input)
		if got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsExported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Ident", true},
		{"Number2", true},
		{"ident", false},
		{"2Ident", false},
		{"Has Space", false},
		{"", false},
		{"_Ident", false},
	}

	for _, tt := range tests {
		if got := IsExported(tt.name); got != tt.want {
			t.Errorf("IsExported(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
