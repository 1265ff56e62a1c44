// Package flexgen generates Go token enumerations from tables of named
// regular expressions.
//
// The generated file declares an integer type with one constant per token,
// a String method, the table of patterns and a constructor returning a
// flexgen Set that reports the matching token for an input.
package flexgen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KromDaniel/flexgen/internal/codegen"
	"github.com/KromDaniel/flexgen/internal/compiler"
)

// Default names used when neither the options nor the config set them.
const (
	DefaultPackage = "tokens"
	DefaultType    = "Token"
)

// Options configures the generation process.
type Options struct {
	// ConfigFile is the JSON token table to read (optional when Tokens is set)
	ConfigFile string

	// Tokens are appended after the tokens of ConfigFile
	Tokens []Token

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code (overrides the config)
	Package string

	// Type is the name of the generated enumeration type (overrides the config)
	Type string

	// GenerateTestFile writes <output>_test.go checking every token example
	GenerateTestFile bool

	// MaxNodes limits the automaton size of each pattern (0 = use the default limit)
	MaxNodes int

	// Verbose enables logging of parse decisions to stderr
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.ConfigFile == "" && len(o.Tokens) == 0 {
		return fmt.Errorf("config file or tokens must be provided")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if !strings.HasSuffix(o.OutputFile, ".go") {
		return fmt.Errorf("output file must have a .go extension")
	}
	if o.MaxNodes < 0 {
		return fmt.Errorf("max nodes cannot be negative")
	}
	return nil
}

// TestFilePath returns the path of the test file generated next to output.
func TestFilePath(output string) string {
	return strings.TrimSuffix(output, ".go") + "_test.go"
}

// Generate compiles every token pattern and writes the enumeration.
// It fails on the first pattern that does not compile or example that
// does not match, naming the token.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	enum, err := buildEnum(opts)
	if err != nil {
		return err
	}

	g := codegen.NewGenerator(enum)
	testPath := ""
	if opts.GenerateTestFile {
		testPath = TestFilePath(opts.OutputFile)
	}
	if err := g.Save(opts.OutputFile, testPath); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}

func buildEnum(opts Options) (codegen.Enum, error) {
	logger := compiler.NewLogger(opts.Verbose)

	var cfg Config
	if opts.ConfigFile != "" {
		loaded, err := LoadConfig(opts.ConfigFile)
		if err != nil {
			return codegen.Enum{}, err
		}
		cfg = *loaded
	}
	cfg.Tokens = append(cfg.Tokens, opts.Tokens...)

	enum := codegen.Enum{
		Package: firstNonEmpty(opts.Package, cfg.Package, DefaultPackage),
		Type:    firstNonEmpty(opts.Type, cfg.Type, DefaultType),
	}
	if opts.ConfigFile != "" {
		enum.Source = filepath.Base(opts.ConfigFile)
	}

	logger.Section("Tokens")
	for _, tok := range cfg.Tokens {
		nfa, err := compiler.Compile(compiler.Config{
			Pattern:  tok.Regex,
			MaxNodes: opts.MaxNodes,
			Logger:   logger,
		}, tok.Name)
		if err != nil {
			return codegen.Enum{}, fmt.Errorf("token %s: %w", tok.Name, err)
		}
		for _, ex := range tok.Examples {
			if len(nfa.Run(ex)) == 0 {
				return codegen.Enum{}, fmt.Errorf("token %s: example %q does not match %q", tok.Name, ex, tok.Regex)
			}
		}
		logger.Log("Token %s: %q, %d nodes", tok.Name, tok.Regex, nfa.Len())

		enum.Entries = append(enum.Entries, codegen.Entry{
			Name:     tok.Name,
			Pattern:  tok.Regex,
			Examples: tok.Examples,
		})
	}

	if err := enum.Validate(); err != nil {
		return codegen.Enum{}, fmt.Errorf("invalid token table: %w", err)
	}
	return enum, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
