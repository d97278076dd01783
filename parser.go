// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ParserOption configures a [Parser].
type ParserOption func(*Parser)

// Logger sets the logger the parser reports its token handling to.
func Logger(logger *zap.Logger) ParserOption {
	return func(p *Parser) {
		p.log = logger
	}
}

// Parser turns options strings into instances of a schema.
type Parser struct {
	schema *Schema
	log    *zap.Logger
}

// NewParser returns a parser for instances of s.
func NewParser(s *Schema, opts ...ParserOption) *Parser {
	p := &Parser{
		schema: s,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns a new instance with the fields given by text applied
// to the schema defaults. Tokens are separated by whitespace.
func (p *Parser) Parse(text string) (*Instance, error) {
	return p.ParseArgs(strings.Fields(text))
}

// ParseArgs is like [Parser.Parse] for input which is already split into
// tokens, e.g. command line arguments.
func (p *Parser) ParseArgs(args []string) (*Instance, error) {
	inst, err := New(p.schema, nil)
	if err != nil {
		return nil, err
	}
	err = p.parseInto(inst, args)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// ParseInto applies the fields given by text to inst. Fields which do not
// appear in text keep their current values. On error inst is unchanged.
func (p *Parser) ParseInto(inst *Instance, text string) error {
	return p.parseInto(inst, strings.Fields(text))
}

// ParseArgsInto is like [Parser.ParseInto] for input which is already split into tokens.
func (p *Parser) ParseArgsInto(inst *Instance, args []string) error {
	return p.parseInto(inst, args)
}

func (p *Parser) parseInto(inst *Instance, tokens []string) error {
	s := inst.schema

	b, err := p.bridge(s, tokens)
	if err != nil {
		return err
	}

	e, err := newEngine(s, func(f *Field, text string) (any, error) {
		return p.decodeSuboption(s, f, text)
	})
	if err != nil {
		return SchemaDefinitionError{Schema: s.name, Cause: err}
	}

	seen, err := e.parse(b.forward)
	if err != nil {
		var serr SuboptionError
		if errors.As(err, &serr) {
			return err
		}
		return ParseError{
			Schema: s.name,
			Input:  strings.Join(tokens, " "),
			Cause:  err,
		}
	}

	// Only flags which appeared in the forwarded tokens are taken from the
	// engine, so values already held by inst are not reset to engine defaults.
	for name, v := range b.side {
		seen[name] = v
	}
	return inst.SetFields(seen)
}

// Parse returns a new instance of s with the fields given by text applied to its defaults.
func Parse(s *Schema, text string) (*Instance, error) {
	return NewParser(s).Parse(text)
}

// ParseArgs returns a new instance of s with the fields given by args applied to its defaults.
func ParseArgs(s *Schema, args []string) (*Instance, error) {
	return NewParser(s).ParseArgs(args)
}

// Parse applies the fields given by text to the instance.
func (i *Instance) Parse(text string) error {
	return NewParser(i.schema).ParseInto(i, text)
}

// ParseArgs applies the fields given by args to the instance.
func (i *Instance) ParseArgs(args []string) error {
	return NewParser(i.schema).ParseArgsInto(i, args)
}
