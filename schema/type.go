// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	version "github.com/hashicorp/go-version"
)

// Type selects the coercion rule for a parameter: how raw document text
// parses into a Go value, and how a stored Go value stringifies into a
// query-string token. The rule set is a fixed table checked exhaustively
// when a schema is validated, not resolved dynamically at read time.
type Type int

const (
	TypeString Type = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeDate
	TypeVersion
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeDate:
		return "date"
	case TypeVersion:
		return "version"
	default:
		return fmt.Sprintf("unknown type %d", int(t))
	}
}

// DateFormat is the canonical rendering format for TypeDate values.
const DateFormat = time.RFC3339

type coercion struct {
	parse  func(raw string) (any, error)
	render func(v any) (string, error)
}

var coercions = map[Type]coercion{
	TypeString: {
		parse: func(raw string) (any, error) {
			return raw, nil
		},
		render: func(v any) (string, error) {
			s, ok := v.(string)
			if !ok {
				return "", fmt.Errorf("cannot render %T as string", v)
			}
			return s, nil
		},
	},
	TypeInt: {
		parse: func(raw string) (any, error) {
			return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		},
		render: func(v any) (string, error) {
			switch n := v.(type) {
			case int:
				return strconv.Itoa(n), nil
			case int32:
				return strconv.FormatInt(int64(n), 10), nil
			case int64:
				return strconv.FormatInt(n, 10), nil
			case uint:
				return strconv.FormatUint(uint64(n), 10), nil
			case uint64:
				return strconv.FormatUint(n, 10), nil
			case string:
				// A pre-stringified value is accepted for any type.
				return n, nil
			default:
				return "", fmt.Errorf("cannot render %T as int", v)
			}
		},
	},
	TypeFloat: {
		parse: func(raw string) (any, error) {
			return strconv.ParseFloat(strings.TrimSpace(raw), 64)
		},
		render: func(v any) (string, error) {
			switch n := v.(type) {
			case float64:
				return strconv.FormatFloat(n, 'f', -1, 64), nil
			case float32:
				return strconv.FormatFloat(float64(n), 'f', -1, 32), nil
			case int:
				return strconv.Itoa(n), nil
			case int64:
				return strconv.FormatInt(n, 10), nil
			case string:
				return n, nil
			default:
				return "", fmt.Errorf("cannot render %T as float", v)
			}
		},
	},
	TypeBool: {
		parse: func(raw string) (any, error) {
			switch strings.ToLower(strings.TrimSpace(raw)) {
			case "true", "1":
				return true, nil
			case "false", "0":
				return false, nil
			default:
				return nil, fmt.Errorf("invalid boolean token %q", raw)
			}
		},
		render: func(v any) (string, error) {
			switch b := v.(type) {
			case bool:
				return strconv.FormatBool(b), nil
			case string:
				return b, nil
			default:
				return "", fmt.Errorf("cannot render %T as bool", v)
			}
		},
	},
	TypeDate: {
		parse: func(raw string) (any, error) {
			raw = strings.TrimSpace(raw)
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				return t, nil
			}
			// Real-world XML APIs are inconsistent about date shapes, so
			// fall back to lenient-but-unambiguous parsing.
			return dateparse.ParseStrict(raw)
		},
		render: func(v any) (string, error) {
			switch t := v.(type) {
			case time.Time:
				return t.Format(DateFormat), nil
			case string:
				return t, nil
			default:
				return "", fmt.Errorf("cannot render %T as date", v)
			}
		},
	},
	TypeVersion: {
		parse: func(raw string) (any, error) {
			return version.NewVersion(strings.TrimSpace(raw))
		},
		render: func(v any) (string, error) {
			switch ver := v.(type) {
			case *version.Version:
				return ver.String(), nil
			case string:
				return ver, nil
			default:
				return "", fmt.Errorf("cannot render %T as version", v)
			}
		},
	},
}

func (t Type) known() bool {
	_, ok := coercions[t]
	return ok
}

// Parse coerces raw document text into the Go value for this type.
func (t Type) Parse(raw string) (any, error) {
	c, ok := coercions[t]
	if !ok {
		return nil, fmt.Errorf("no coercion rule for %s", t)
	}
	return c.parse(raw)
}

// Render stringifies a stored value per this type's rendering rule. A value
// whose dynamic type has no rule for the declared type is a configuration
// error, not something to coerce silently.
func (t Type) Render(v any) (string, error) {
	c, ok := coercions[t]
	if !ok {
		return "", fmt.Errorf("no coercion rule for %s", t)
	}
	return c.render(v)
}
