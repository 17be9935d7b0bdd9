// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/restmap/restmap/schema"
)

func searchSchema() *schema.Schema {
	return schema.New("photos.search").
		Declare("method").
		Declare("api_key").
		Declare("tags").
		Declare("per_page", schema.OfType(schema.TypeInt))
}

func TestRenderPhotoSearch(t *testing.T) {
	sch := searchSchema()
	req := New(sch,
		WithValue("method", "flickr.photos.search"),
		WithValue("api_key", "KEY"),
		WithValue("tags", "relax"),
		WithValue("per_page", 10),
	)

	got, err := req.Render()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "method=flickr.photos.search&api_key=KEY&tags=relax&per_page=10"
	if got != want {
		t.Errorf("wrong result\ngot:  %s\nwant: %s", got, want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	sch := searchSchema()
	req := New(sch, WithValues(map[string]any{
		"method":   "flickr.photos.search",
		"tags":     "relax",
		"per_page": 10,
	}))

	first, err := req.Render()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	second, err := req.Render()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if first != second {
		t.Errorf("two renders differ:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestRenderSkipsAbsent(t *testing.T) {
	sch := searchSchema()
	req := New(sch, WithValue("tags", "relax"))

	got, err := req.Render()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != "tags=relax" {
		t.Errorf("wrong result: %s", got)
	}
}

func TestRenderEscaping(t *testing.T) {
	sch := schema.New("echo").Declare("text")
	req := New(sch, WithValue("text", "caffè & cake?"))

	got, err := req.Render()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "text=caff%C3%A8+%26+cake%3F"
	if got != want {
		t.Errorf("wrong result\ngot:  %s\nwant: %s", got, want)
	}
}

func TestRenderTypeAware(t *testing.T) {
	sch := schema.New("typed").
		Declare("extras"). // string
		Declare("safe", schema.OfType(schema.TypeBool))
	req := New(sch, WithValue("extras", "geo"), WithValue("safe", true))

	got, err := req.Render()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != "extras=geo&safe=true" {
		t.Errorf("wrong result: %s", got)
	}
}

func TestRenderUnrenderableValue(t *testing.T) {
	sch := schema.New("bad").Declare("tags")
	req := New(sch, WithValue("tags", []string{"a", "b"}))

	_, err := req.Render()
	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("wrong error %v; want *RenderError", err)
	}
	if renderErr.Param != "tags" {
		t.Errorf("error names parameter %q; want %q", renderErr.Param, "tags")
	}
}

func TestRenderNestedRequestFlattens(t *testing.T) {
	pagingSch := schema.New("paging").
		Declare("page", schema.OfType(schema.TypeInt)).
		Declare("per_page", schema.OfType(schema.TypeInt))
	outerSch := schema.New("outer").
		Declare("method").
		Declare("paging").
		Declare("tags")

	paging := New(pagingSch, WithValue("page", 2), WithValue("per_page", 10))
	outer := New(outerSch,
		WithValue("method", "flickr.photos.search"),
		WithValue("paging", paging),
		WithValue("tags", "relax"),
	)

	got, err := outer.Render()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// Nested pairs keep their own names, merged at the embedding position.
	want := "method=flickr.photos.search&page=2&per_page=10&tags=relax"
	if got != want {
		t.Errorf("wrong result\ngot:  %s\nwant: %s", got, want)
	}
}

func TestRenderNestedRequestCollision(t *testing.T) {
	innerSch := schema.New("inner").Declare("tags")
	outerSch := schema.New("outer").
		Declare("tags").
		Declare("extra")

	inner := New(innerSch, WithValue("tags", "inner"))
	outer := New(outerSch, WithValue("tags", "outer"), WithValue("extra", inner))

	_, err := outer.Render()
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("wrong error %v; want *DuplicateKeyError", err)
	}
	if dup.Key != "tags" {
		t.Errorf("error names key %q; want %q", dup.Key, "tags")
	}
}

func TestDefaultsSeedInstances(t *testing.T) {
	sch := searchSchema()
	sch.SetDefault("api_key", "KEY")

	before := New(sch, WithValue("method", "m"))

	sch.SetDefault("api_key", "ROTATED")
	after := New(sch, WithValue("method", "m"))

	gotBefore, _ := before.Render()
	gotAfter, _ := after.Render()
	if !strings.Contains(gotBefore, "api_key=KEY") {
		t.Errorf("instance built before rotation lost its value: %s", gotBefore)
	}
	if !strings.Contains(gotAfter, "api_key=ROTATED") {
		t.Errorf("instance built after rotation missing new value: %s", gotAfter)
	}
}

func TestOverridesWinOverDefaults(t *testing.T) {
	sch := searchSchema()
	sch.SetDefault("tags", "default")

	req := New(sch, WithValue("tags", "override"))
	v, ok := req.Get("tags")
	if !ok || v != "override" {
		t.Errorf("got %v, %v; want override, true", v, ok)
	}
}

func TestGetAbsent(t *testing.T) {
	req := New(searchSchema())
	if _, ok := req.Get("tags"); ok {
		t.Error("absent declared parameter unexpectedly present")
	}
	if _, ok := req.Get("undeclared"); ok {
		t.Error("undeclared parameter unexpectedly present")
	}
}

func TestValidateRequired(t *testing.T) {
	sch := schema.New("strict").
		Declare("api_key", schema.Required()).
		Declare("tags")

	req := New(sch, WithValue("tags", "relax"))
	err := req.Validate()
	if err == nil || !strings.Contains(err.Error(), `required parameter "api_key" has no value`) {
		t.Fatalf("wrong error: %v", err)
	}

	req.Set("api_key", "KEY")
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestValuesSnapshotIndependence(t *testing.T) {
	sch := searchSchema()
	a := New(sch, WithValue("tags", "a"))
	b := New(sch, WithValue("tags", "b"))

	av, _ := a.Get("tags")
	bv, _ := b.Get("tags")
	if diff := cmp.Diff([]any{"a", "b"}, []any{av, bv}); diff != "" {
		t.Error("instances share state\n" + diff)
	}
}
