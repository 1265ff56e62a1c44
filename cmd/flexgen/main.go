package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KromDaniel/flexgen/pkg/flexgen"
)

const (
	appVersion = "0.1.0"
	appName    = "flexgen"
)

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var tokens arrayFlags
	configFile := fs.String("config", "", "JSON token table to generate from")
	output := fs.String("output", "", "Output file path (must end in .go)")
	pkg := fs.String("package", "", "Package name of the generated code (default: from config, else \""+flexgen.DefaultPackage+"\")")
	typ := fs.String("type", "", "Name of the generated enumeration type (default: from config, else \""+flexgen.DefaultType+"\")")
	fs.Var(&tokens, "token", "Token as Name=regex (repeatable, appended after the config tokens)")
	testFile := fs.Bool("test", false, "Also generate <output>_test.go checking every token example")
	maxNodes := fs.Int("max-nodes", 0, "Automaton size limit per pattern (0 = default)")
	analyze := fs.String("analyze", "", "Analyze a single pattern and print the result as JSON")
	verbose := fs.Bool("verbose", false, "Log parse decisions to stderr")
	version := fs.Bool("version", false, "Print version information")
	help := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		printHelp(fs, stdout)
		return 0
	}

	if *version {
		fmt.Fprintf(stdout, "%s version %s\n", appName, appVersion)
		return 0
	}

	if *analyze != "" {
		result, err := flexgen.AnalyzeWithMaxNodes(*analyze, *maxNodes)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
		return 0
	}

	opts := flexgen.Options{
		ConfigFile:       *configFile,
		OutputFile:       *output,
		Package:          *pkg,
		Type:             *typ,
		GenerateTestFile: *testFile,
		MaxNodes:         *maxNodes,
		Verbose:          *verbose,
	}
	for _, raw := range tokens {
		tok, err := parseToken(raw)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		opts.Tokens = append(opts.Tokens, tok)
	}

	if opts.ConfigFile == "" && len(opts.Tokens) == 0 {
		fmt.Fprintf(stderr, "Error: -config or -token is required\n\n")
		printHelp(fs, stderr)
		return 1
	}

	if err := flexgen.Generate(opts); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Generated %s\n", opts.OutputFile)
	if opts.GenerateTestFile {
		fmt.Fprintf(stdout, "Generated %s\n", flexgen.TestFilePath(opts.OutputFile))
	}
	return 0
}

// parseToken splits a Name=regex flag value. The regex may itself contain '='.
func parseToken(raw string) (flexgen.Token, error) {
	name, regex, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return flexgen.Token{}, fmt.Errorf("invalid token %q, expected Name=regex", raw)
	}
	return flexgen.Token{Name: name, Regex: regex}, nil
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `%s - Token enumeration generator

Usage:
  %s -config tokens.json -output tokens.go [options]
  %s -token Number='\d+' -token Ident='(a|b|c)+' -output tokens.go
  %s -analyze '(a*)*b'

Options:
`, appName, appName, appName, appName)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
Examples:
  # Generate from a token table with a test file
  %s -config tokens.json -output lexer/tokens.go -package lexer -test

  # Inspect the automaton built for a pattern
  %s -analyze 'ab{2,3}'
`, appName, appName)
}
