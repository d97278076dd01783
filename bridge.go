// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"errors"

	"go.uber.org/zap"
)

var errMissingValue = errors.New("expected one argument")

// presentValue is what the field's action stores when its flag is given
// without a value.
func (f *Field) presentValue() (any, error) {
	f.presentOnce.Do(func() {
		f.present, f.presentErr = probeAction(f, true)
	})
	return f.present, f.presentErr
}

// bridged is a token stream split between the flag engine and values
// which have to be assigned after the engine has run.
type bridged struct {
	forward []string
	side    Values
}

// bridge pairs each flag token with the token following it, unless that
// token is itself a flag or missing. Only action flags may stand alone.
// Pairs the flag engine can handle are forwarded as a single --name=value
// token so the engine never consumes a flag as a value. The literal None,
// and values an action flag cannot store on its own, are decoded here instead.
//
// When a field is given more than once, the last occurrence wins.
func (p *Parser) bridge(s *Schema, tokens []string) (bridged, error) {
	b := bridged{
		side: make(Values),
	}

	for idx := 0; idx < len(tokens); idx++ {
		tok := tokens[idx]
		if !isFlagToken(tok) {
			return b, ParseError{Schema: s.name, Input: tok, Cause: errUnexpectedArgs}
		}

		_, f, ok := s.fieldForToken(tok)
		if !ok {
			return b, UnknownFlagError{Schema: s.name, Flag: tok}
		}

		if idx == len(tokens)-1 || isFlagToken(tokens[idx+1]) {
			if f.action == ActionNone {
				return b, ParseError{Schema: s.name, Input: tok, Cause: errMissingValue}
			}
			b.forward = append(b.forward, tok)
			delete(b.side, f.name)
			continue
		}

		idx++
		val := tokens[idx]

		switch {
		case val == noneLiteral:
			p.log.Debug("storing None", zap.String("schema", s.name), zap.String("field", f.name))
			b.side[f.name] = nil

		case f.action != ActionNone:
			present, err := f.presentValue()
			if err != nil {
				return b, ParseError{Schema: s.name, Input: tok + " " + val, Cause: err}
			}
			if val == FormatValue(present) {
				p.log.Debug(
					"ignoring value equal to the value stored by the flag action",
					zap.String("schema", s.name),
					zap.String("flag", tok),
					zap.String("value", val),
				)
				b.forward = append(b.forward, tok)
				delete(b.side, f.name)
				continue
			}

			x, err := DecodeScalar(f.shape.(ScalarShape).Kind, val)
			if err != nil {
				return b, ParseError{Schema: s.name, Input: tok + " " + val, Cause: err}
			}
			p.log.Debug(
				"explicitly storing value which differs from the value stored by the flag action",
				zap.String("schema", s.name),
				zap.String("flag", tok),
				zap.String("value", val),
			)
			b.side[f.name] = x

		default:
			b.forward = append(b.forward, "--"+f.name+"="+val)
			delete(b.side, f.name)
		}
	}
	return b, nil
}
