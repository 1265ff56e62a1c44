package flexgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Token is one named pattern of a token table.
type Token struct {
	// Name becomes the exported constant of the generated enumeration
	Name string `json:"name"`

	// Regex is the pattern recognizing the token
	Regex string `json:"regex"`

	// Examples are inputs the pattern must match; they are checked at generation time
	// and become the cases of the generated test file
	Examples []string `json:"examples,omitempty"`
}

// Config is the token table file format:
//
//	{
//	  "package": "lexer",
//	  "type": "Token",
//	  "tokens": [
//	    {"name": "Number", "regex": "\\d+", "examples": ["42"]},
//	    {"name": "Ident", "regex": "(a|b|c)+"}
//	  ]
//	}
//
// Tokens keep the order they are listed in, which fixes their numeric values.
type Config struct {
	Package string  `json:"package,omitempty"`
	Type    string  `json:"type,omitempty"`
	Tokens  []Token `json:"tokens"`
}

// ParseConfig decodes a token table. Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads and decodes the token table at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}
