// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	version "github.com/hashicorp/go-version"
)

func TestTypeParse(t *testing.T) {
	mustVersion := func(s string) *version.Version {
		v, err := version.NewVersion(s)
		if err != nil {
			t.Fatalf("invalid wanted version %s in test case: %s", s, err)
		}
		return v
	}

	tests := []struct {
		typ  Type
		raw  string
		want any
		err  string
	}{
		{TypeString, "relax", "relax", ""},
		{TypeString, "", "", ""},
		{TypeInt, "42", int64(42), ""},
		{TypeInt, " 42 ", int64(42), ""},
		{TypeInt, "-7", int64(-7), ""},
		{TypeInt, "4.2", nil, "invalid syntax"},
		{TypeInt, "forty-two", nil, "invalid syntax"},
		{TypeFloat, "98.6", 98.6, ""},
		{TypeFloat, "1e3", 1000.0, ""},
		{TypeFloat, "warm", nil, "invalid syntax"},
		{TypeBool, "true", true, ""},
		{TypeBool, "TRUE", true, ""},
		{TypeBool, "1", true, ""},
		{TypeBool, "false", false, ""},
		{TypeBool, "0", false, ""},
		{TypeBool, "yep", nil, "invalid boolean token"},
		{TypeDate, "2024-05-01T10:30:00Z", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), ""},
		{TypeDate, "2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), ""},
		{TypeDate, "whenever", nil, "Could not find format"},
		{TypeVersion, "1.7.0", mustVersion("1.7.0"), ""},
		{TypeVersion, "not.a.version", nil, "Malformed version"},
	}

	for _, test := range tests {
		t.Run(test.typ.String()+"/"+test.raw, func(t *testing.T) {
			got, err := test.typ.Parse(test.raw)
			if test.err != "" {
				if err == nil || !strings.Contains(err.Error(), test.err) {
					t.Fatalf("wrong error %v; want substring %q", err, test.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Error("wrong result\n" + diff)
			}
		})
	}
}

func TestTypeRender(t *testing.T) {
	tests := []struct {
		typ  Type
		v    any
		want string
		err  string
	}{
		{TypeString, "relax", "relax", ""},
		{TypeString, 42, "", "cannot render int as string"},
		{TypeInt, 10, "10", ""},
		{TypeInt, int64(10), "10", ""},
		{TypeInt, "10", "10", ""},
		{TypeInt, 4.2, "", "cannot render float64 as int"},
		{TypeFloat, 98.6, "98.6", ""},
		{TypeFloat, 3, "3", ""},
		{TypeBool, true, "true", ""},
		{TypeBool, false, "false", ""},
		{TypeBool, 1, "", "cannot render int as bool"},
		{TypeDate, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), "2024-05-01T10:30:00Z", ""},
		{TypeDate, 20240501, "", "cannot render int as date"},
		{TypeVersion, "1.7.0", "1.7.0", ""},
	}

	for _, test := range tests {
		t.Run(test.typ.String()+"/"+test.want, func(t *testing.T) {
			got, err := test.typ.Render(test.v)
			if test.err != "" {
				if err == nil || !strings.Contains(err.Error(), test.err) {
					t.Fatalf("wrong error %v; want substring %q", err, test.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != test.want {
				t.Errorf("wrong result\ngot:  %s\nwant: %s", got, test.want)
			}
		})
	}
}

func TestTypeRenderParseRoundTrip(t *testing.T) {
	ver, _ := version.NewVersion("2.0.0-beta1")
	values := []struct {
		typ Type
		v   any
	}{
		{TypeInt, int64(42)},
		{TypeFloat, 98.6},
		{TypeBool, true},
		{TypeDate, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{TypeVersion, ver},
	}

	for _, test := range values {
		t.Run(test.typ.String(), func(t *testing.T) {
			text, err := test.typ.Render(test.v)
			if err != nil {
				t.Fatalf("render: %s", err)
			}
			got, err := test.typ.Parse(text)
			if err != nil {
				t.Fatalf("parse: %s", err)
			}
			if diff := cmp.Diff(test.v, got); diff != "" {
				t.Error("round trip changed the value\n" + diff)
			}
		})
	}
}
