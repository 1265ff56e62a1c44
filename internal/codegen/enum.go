package codegen

import (
	"fmt"
	"go/format"
	"go/token"
	"io"
	"os"

	"github.com/dave/jennifer/jen"
)

// Entry is one token of a generated enumeration.
type Entry struct {
	Name    string
	Pattern string
	// Examples are inputs the pattern must match. They feed the generated test file.
	Examples []string
}

// Enum describes a token enumeration to generate.
type Enum struct {
	Package string
	Type    string
	Entries []Entry
	// Source names the config the enum was generated from, for the header comment.
	Source string
}

// Validate checks that the enum can be rendered as Go code.
func (e Enum) Validate() error {
	if !token.IsIdentifier(e.Package) {
		return fmt.Errorf("invalid package name %q", e.Package)
	}
	if !IsExported(e.Type) {
		return fmt.Errorf("type name %q is not an exported identifier", e.Type)
	}
	if len(e.Entries) == 0 {
		return fmt.Errorf("no tokens")
	}
	reserved := map[string]bool{
		e.Type:                 true,
		PatternsVar(e.Type):    true,
		SetConstructor(e.Type): true,
	}
	seen := make(map[string]bool, len(e.Entries))
	for _, entry := range e.Entries {
		if !IsExported(entry.Name) {
			return fmt.Errorf("token name %q is not an exported identifier", entry.Name)
		}
		if reserved[entry.Name] {
			return fmt.Errorf("token name %q collides with a generated identifier", entry.Name)
		}
		if seen[entry.Name] {
			return fmt.Errorf("duplicate token name %q", entry.Name)
		}
		seen[entry.Name] = true
	}
	return nil
}

// Generator renders an Enum with jennifer.
type Generator struct {
	enum Enum
}

// NewGenerator creates a generator for e. e must be valid.
func NewGenerator(e Enum) *Generator {
	return &Generator{enum: e}
}

// File builds the enumeration source file.
func (g *Generator) File() *jen.File {
	e := g.enum
	f := jen.NewFile(e.Package)
	f.ImportName(FlexgenPath, "flexgen")
	f.HeaderComment("Code generated by flexgen. DO NOT EDIT.")
	if e.Source != "" {
		f.HeaderComment("Source: " + e.Source)
	}

	f.Commentf("%s enumerates the tokens recognized by %s.", e.Type, SetConstructor(e.Type))
	f.Type().Id(e.Type).Int()
	f.Line()

	f.Const().DefsFunc(func(grp *jen.Group) {
		for i, entry := range e.Entries {
			if i == 0 {
				grp.Id(entry.Name).Id(e.Type).Op("=").Iota()
				continue
			}
			grp.Id(entry.Name)
		}
	})
	f.Line()

	names := NamesVar(e.Type)
	f.Var().Id(names).Op("=").Index(jen.Op("...")).String().Values(jen.DictFunc(func(d jen.Dict) {
		for _, entry := range e.Entries {
			d[jen.Id(entry.Name)] = jen.Lit(entry.Name)
		}
	}))
	f.Line()

	f.Comment("String returns the name of the token.")
	f.Func().Params(jen.Id(ReceiverName).Id(e.Type)).Id("String").Params().String().Block(
		jen.If(
			jen.Id(ReceiverName).Op(">=").Lit(0).Op("&&").
				Int().Call(jen.Id(ReceiverName)).Op("<").Len(jen.Id(names)),
		).Block(
			jen.Return(jen.Id(names).Index(jen.Id(ReceiverName))),
		),
		jen.Return(
			jen.Lit(e.Type+"(").Op("+").
				Qual("strconv", "Itoa").Call(jen.Int().Call(jen.Id(ReceiverName))).
				Op("+").Lit(")"),
		),
	)
	f.Line()

	patterns := PatternsVar(e.Type)
	f.Commentf("%s holds the pattern of every token, indexed by %s.", patterns, e.Type)
	f.Var().Id(patterns).Op("=").Index(jen.Op("...")).String().Values(jen.DictFunc(func(d jen.Dict) {
		for _, entry := range e.Entries {
			d[jen.Id(entry.Name)] = jen.Lit(entry.Pattern)
		}
	}))
	f.Line()

	ctor := SetConstructor(e.Type)
	f.Commentf("%s compiles every token pattern into a set reporting the matching %s.", ctor, e.Type)
	f.Func().Id(ctor).
		Params(jen.Id(OptsName).Op("...").Qual(FlexgenPath, "Option")).
		Params(jen.Op("*").Qual(FlexgenPath, "Set").Types(jen.Id(e.Type)), jen.Error()).
		Block(
			jen.Id(SetName).Op(":=").Qual(FlexgenPath, "NewSet").Types(jen.Id(e.Type)).Call(jen.Id(OptsName).Op("...")),
			jen.For(jen.List(jen.Id(IndexName), jen.Id(PatternName)).Op(":=").Range().Id(patterns)).Block(
				jen.If(
					jen.Err().Op(":=").Id(SetName).Dot("Add").Call(jen.Id(PatternName), jen.Id(e.Type).Call(jen.Id(IndexName))),
					jen.Err().Op("!=").Nil(),
				).Block(
					jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
						jen.Lit("%s: %w"), jen.Id(e.Type).Call(jen.Id(IndexName)), jen.Err(),
					)),
				),
			),
			jen.Return(jen.Id(SetName), jen.Nil()),
		)

	return f
}

// HasExamples reports whether any entry carries example inputs.
func (g *Generator) HasExamples() bool {
	for _, entry := range g.enum.Entries {
		if len(entry.Examples) > 0 {
			return true
		}
	}
	return false
}

// TestFile builds a test file checking that every example input is
// matched by its token.
func (g *Generator) TestFile() *jen.File {
	e := g.enum
	f := jen.NewFile(e.Package)
	f.HeaderComment("Code generated by flexgen. DO NOT EDIT.")

	f.Func().Id("Test"+e.Type+"Patterns").Params(jen.Id("t").Op("*").Qual("testing", "T")).Block(
		jen.List(jen.Id(SetName), jen.Err()).Op(":=").Id(SetConstructor(e.Type)).Call(),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Id("t").Dot("Fatal").Call(jen.Err()),
		),
		jen.Line(),
		jen.Id("tests").Op(":=").Index().Struct(
			jen.Id("input").String(),
			jen.Id("want").Id(e.Type),
		).ValuesFunc(func(grp *jen.Group) {
			for _, entry := range e.Entries {
				for _, ex := range entry.Examples {
					grp.Values(jen.Lit(ex), jen.Id(entry.Name))
				}
			}
		}),
		jen.Line(),
		jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id("tests")).Block(
			jen.If(jen.Op("!").Qual("slices", "Contains").Call(
				jen.Id(SetName).Dot("Run").Call(jen.Id("tt").Dot("input")),
				jen.Id("tt").Dot("want"),
			)).Block(
				jen.Id("t").Dot("Errorf").Call(
					jen.Lit("%q is not matched as %v"), jen.Id("tt").Dot("input"), jen.Id("tt").Dot("want"),
				),
			),
		),
	)
	return f
}

// Render writes the enumeration source to w.
func (g *Generator) Render(w io.Writer) error {
	return g.File().Render(w)
}

// Save writes the enumeration to path and, when examples are present,
// its test file to testPath. An empty testPath skips the test file.
func (g *Generator) Save(path, testPath string) error {
	if err := g.File().Save(path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := formatFile(path); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}

	if testPath == "" || !g.HasExamples() {
		return nil
	}
	if err := g.TestFile().Save(testPath); err != nil {
		return fmt.Errorf("failed to save test file: %w", err)
	}
	if err := formatFile(testPath); err != nil {
		return fmt.Errorf("failed to format test file: %w", err)
	}
	return nil
}

// formatFile reads a file, formats it with go/format, and writes it back.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
