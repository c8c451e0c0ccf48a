package loader

import (
	"context"
	"testing"

	"github.com/goliatone/go-intake/pkg/model"
)

const briefYAML = `
title: Agency Brief
theme:
  mode: dark
  primary: "#FFFFFF"
  overlayOpacity: 0.35
slides:
  - id: company_intro
    kind: long_text
    label: Tell us about your company.
    required: true
  - id: kpis
    kind: multi_select
    label: Success KPIs.
    options: [Leads, Signups, Revenue]
    max: 3
    required: true
  - id: seo_priority
    kind: scale
    min: 1
    max: 7
    required: true
  - id: contact_consent
    kind: consent
    required: true
`

func TestFromBytesYAML(t *testing.T) {
	q, err := FromBytes([]byte(briefYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if q.Title() != "Agency Brief" {
		t.Fatalf("title mismatch: %q", q.Title())
	}
	if q.Theme().Mode != "dark" || q.Theme().Primary != "#FFFFFF" {
		t.Fatalf("theme mismatch: %+v", q.Theme())
	}
	if q.Len() != 4 {
		t.Fatalf("expected 4 fields, got %d", q.Len())
	}

	first, _ := q.At(0)
	if first.ID != "company_intro" || first.Kind != model.KindLongText {
		t.Fatalf("field order not preserved: %+v", first)
	}

	kpis, ok := q.ByID("kpis")
	if !ok || kpis.Max != 3 || len(kpis.Options) != 3 {
		t.Fatalf("kpis field mismatch: %+v", kpis)
	}
}

func TestFromBytesFieldsKeyAlias(t *testing.T) {
	doc := `
title: T
fields:
  - id: a
    kind: short_text
`
	q, err := FromBytes([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Len() != 1 {
		t.Fatalf("expected 1 field, got %d", q.Len())
	}
}

func TestFromBytesRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"no fields":    "title: T",
		"unknown kind": "slides:\n  - id: a\n    kind: hologram\n",
		"dup ids":      "slides:\n  - id: a\n    kind: short_text\n  - id: a\n    kind: yes_no\n",
	}
	for name, doc := range cases {
		if _, err := FromBytes([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

const briefOpenAPI = `{
  "openapi": "3.0.0",
  "info": {"title": "Intake", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Brief": {
        "type": "object",
        "title": "Agency Brief",
        "required": ["company_intro", "kpis", "contact_consent"],
        "x-intake-order": ["company_intro", "kpis", "seo_priority"],
        "properties": {
          "company_intro": {
            "type": "string",
            "format": "textarea",
            "title": "Tell us about your company."
          },
          "kpis": {
            "type": "array",
            "maxItems": 3,
            "items": {"type": "string", "enum": ["Leads", "Signups", "Revenue"]}
          },
          "seo_priority": {
            "type": "integer",
            "minimum": 1,
            "maximum": 7
          },
          "multilingual": {"type": "boolean"},
          "contact_email": {"type": "string", "format": "email"},
          "contact_consent": {
            "type": "boolean",
            "x-intake-kind": "consent"
          },
          "inspiration": {
            "type": "array",
            "items": {"type": "string"}
          }
        }
      }
    }
  }
}`

func TestFromOpenAPI(t *testing.T) {
	q, err := FromOpenAPI(context.Background(), []byte(briefOpenAPI), "Brief")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if q.Title() != "Agency Brief" {
		t.Fatalf("title mismatch: %q", q.Title())
	}

	// Extension order first, then the rest alphabetically.
	wantOrder := []string{
		"company_intro", "kpis", "seo_priority",
		"contact_consent", "contact_email", "inspiration", "multilingual",
	}
	if q.Len() != len(wantOrder) {
		t.Fatalf("expected %d fields, got %d", len(wantOrder), q.Len())
	}
	for i, id := range wantOrder {
		field, _ := q.At(i)
		if field.ID != id {
			t.Fatalf("position %d: want %s, got %s", i, id, field.ID)
		}
	}

	checks := map[string]model.FieldKind{
		"company_intro":   model.KindLongText,
		"kpis":            model.KindMultiSelect,
		"seo_priority":    model.KindScale,
		"multilingual":    model.KindYesNo,
		"contact_email":   model.KindEmail,
		"contact_consent": model.KindConsent,
		"inspiration":     model.KindLinks,
	}
	for id, want := range checks {
		field, ok := q.ByID(id)
		if !ok {
			t.Fatalf("missing field %s", id)
		}
		if field.Kind != want {
			t.Fatalf("%s: want kind %s, got %s", id, want, field.Kind)
		}
	}

	kpis, _ := q.ByID("kpis")
	if kpis.Max != 3 || len(kpis.Options) != 3 || !kpis.Required {
		t.Fatalf("kpis mapping wrong: %+v", kpis)
	}
	scale, _ := q.ByID("seo_priority")
	if scale.Min != 1 || scale.Max != 7 {
		t.Fatalf("scale bounds wrong: %+v", scale)
	}
	if multilingual, _ := q.ByID("multilingual"); multilingual.Required {
		t.Fatal("multilingual should be optional")
	}
}

func TestFromOpenAPIUnknownSchema(t *testing.T) {
	if _, err := FromOpenAPI(context.Background(), []byte(briefOpenAPI), "Nope"); err == nil {
		t.Fatal("expected unknown schema name to fail")
	}
}
