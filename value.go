// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"fmt"
	"strconv"
	"strings"
)

// Values maps field names to values. Valid values are nil (absent),
// bool, int, float64, string and *Instance.
type Values map[string]any

const (
	noneLiteral  = "None"
	trueLiteral  = "True"
	falseLiteral = "False"
)

// FormatValue renders a single value the way it appears in an options string.
// Nested instances are rendered by [Instance.Label].
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return noneLiteral
	case bool:
		if x {
			return trueLiteral
		}
		return falseLiteral
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	case *Instance:
		if x == nil {
			return noneLiteral
		}
		return x.Label()
	default:
		return fmt.Sprint(v)
	}
}

// DecodeScalar decodes the textual form of a scalar value of kind k.
func DecodeScalar(k Kind, s string) (any, error) {
	switch k {
	case KindBool:
		switch s {
		case trueLiteral:
			return true, nil
		case falseLiteral:
			return false, nil
		}
		return nil, fmt.Errorf("cannot parse bool from %s", s)
	case KindInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		return n, nil
	case KindFloat:
		return strconv.ParseFloat(s, 64)
	case KindString:
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported kind: %s", k)
	}
}

func valuesEqual(a, b any) bool {
	ai, aok := a.(*Instance)
	bi, bok := b.(*Instance)
	if aok || bok {
		if ai == nil && bi == nil {
			return true
		}
		if ai == nil || bi == nil {
			return false
		}
		return ai.Equal(bi)
	}
	return a == b
}

// isFlagToken reports whether tok names a flag rather than a value.
// Negative numbers are values.
func isFlagToken(tok string) bool {
	if !strings.HasPrefix(tok, "-") {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err != nil
}
