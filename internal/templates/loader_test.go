package templates_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-composer/internal/templates"
	"github.com/goliatone/go-slug"
)

func TestLoadDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"b-hero.html": {Data: []byte(`---
id: hero
name: Hero Banner
category: headers
description: Large intro block
elements: [title, subtitle]
defaults:
  title: Welcome
---
<section><h1>{{title}}</h1><p>{{subtitle}}</p></section>
`)},
		"a-faq.html": {Data: []byte(`---
name: Frequently Asked
category: content
---
<dl>{{items}}</dl>
`)},
		"notes.txt": {Data: []byte("ignored")},
	}

	list, err := templates.LoadDirectory(fsys, "*.html")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(list))
	}

	wantID, err := slug.Normalize("Frequently Asked")
	if err != nil {
		t.Fatalf("slug: %v", err)
	}
	if list[0].ID != wantID {
		t.Fatalf("expected id derived from name %q, got %q", wantID, list[0].ID)
	}
	if list[0].Markup != "<dl>{{items}}</dl>" {
		t.Fatalf("unexpected markup %q", list[0].Markup)
	}

	hero := list[1]
	if hero.ID != "hero" || hero.Category != "headers" {
		t.Fatalf("unexpected hero template %+v", hero)
	}
	if hero.Defaults["title"] != "Welcome" || len(hero.Elements) != 2 {
		t.Fatalf("unexpected hero metadata %+v", hero)
	}

	catalog, err := templates.NewCatalog(list)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if _, ok := catalog.Get("hero"); !ok {
		t.Fatalf("expected hero in catalog")
	}
}

func TestLoadDirectoryUsesFileNameWhenNameMissing(t *testing.T) {
	fsys := fstest.MapFS{
		"divider.html": {Data: []byte("<hr>\n")},
	}
	list, err := templates.LoadDirectory(fsys, "")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(list) != 1 || list[0].Name != "divider" || list[0].ID != "divider" {
		t.Fatalf("unexpected templates %+v", list)
	}
}

func TestLoadManifest(t *testing.T) {
	doc := `{"templates":[
		{"id":"hero","name":"Hero","category":"headers","markup":"<h1>{{title}}</h1>","defaults":{"title":"Welcome"}},
		{"name":"cta","markup":"<a>{{label}}</a>"}
	]}`
	list, err := templates.LoadManifest(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(list))
	}
	if list[0].Defaults["title"] != "Welcome" {
		t.Fatalf("unexpected defaults %+v", list[0].Defaults)
	}
	if list[1].ID != "cta" {
		t.Fatalf("expected derived id cta, got %q", list[1].ID)
	}
}

func TestLoadManifestRejectsSchemaViolations(t *testing.T) {
	doc := `{"templates":[{"id":"hero","markup":"<h1></h1>","colour":"red"}]}`
	_, err := templates.LoadManifest(strings.NewReader(doc))
	if !errors.Is(err, templates.ErrManifestInvalid) {
		t.Fatalf("expected ErrManifestInvalid, got %v", err)
	}
}
