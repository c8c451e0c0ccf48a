package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewQuestionnaireValidation(t *testing.T) {
	if _, err := NewQuestionnaire("T", Theme{}, nil); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}

	_, err := NewQuestionnaire("T", Theme{}, []Field{
		{ID: "a", Kind: KindShortText},
		{ID: "a", Kind: KindYesNo},
	})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	if _, err := NewQuestionnaire("T", Theme{}, []Field{{ID: "a", Kind: "hologram"}}); err == nil {
		t.Fatal("unknown kind must be rejected")
	}

	if _, err := NewQuestionnaire("T", Theme{}, []Field{{Kind: KindShortText}}); err == nil {
		t.Fatal("blank id must be rejected")
	}
}

func TestQuestionnaireAccessors(t *testing.T) {
	q, err := NewQuestionnaire("T", Theme{Mode: "dark"}, []Field{
		{ID: "a", Kind: KindShortText},
		{ID: "b", Kind: KindYesNo},
	})
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	if q.Len() != 2 {
		t.Fatalf("len: %d", q.Len())
	}
	if field, ok := q.At(1); !ok || field.ID != "b" {
		t.Fatalf("At(1): %+v ok=%v", field, ok)
	}
	if _, ok := q.At(2); ok {
		t.Fatal("At out of range must report !ok")
	}
	if index, ok := q.Position("b"); !ok || index != 1 {
		t.Fatalf("Position(b): %d ok=%v", index, ok)
	}
	if _, ok := q.ByID("ghost"); ok {
		t.Fatal("ByID unknown must report !ok")
	}

	// Fields returns a copy; mutating it must not affect the schema.
	fields := q.Fields()
	fields[0].ID = "mutated"
	if field, _ := q.At(0); field.ID != "a" {
		t.Fatal("Fields() must return a defensive copy")
	}
}

func TestValueEmptiness(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		empty bool
	}{
		{"blank text", TextValue(KindShortText, "   "), true},
		{"text", TextValue(KindShortText, "x"), false},
		{"no selections", MultiValue(), true},
		{"selections", MultiValue("A"), false},
		{"blank links", LinksValue("", "  "), true},
		{"links", LinksValue("https://example.com"), false},
		{"yes_no false", YesNoValue(false), false},
		{"consent false", ConsentValue(false), false},
		{"scale zero", ScaleValue(0), false},
		{"empty contact", ContactValue(Contact{}), true},
		{"partial contact", ContactValue(Contact{Email: "a@b.co"}), false},
	}
	for _, tc := range cases {
		if got := tc.value.Empty(); got != tc.empty {
			t.Fatalf("%s: Empty() = %v, want %v", tc.name, got, tc.empty)
		}
	}
}

func TestContactComplete(t *testing.T) {
	full := Contact{FullName: "Ada", Email: "ada@example.com", Company: "Example", Phone: "1"}
	if !full.Complete() {
		t.Fatal("all four sub-fields present must be complete")
	}
	partial := Contact{FullName: "Ada", Email: "ada@example.com", Company: "Example", Phone: "  "}
	if partial.Complete() {
		t.Fatal("a blank sub-field must not count as complete")
	}
}

func TestQuestionnaireMarshalJSON(t *testing.T) {
	q, err := NewQuestionnaire("T", Theme{Mode: "dark", Primary: "#FFF"}, []Field{
		{ID: "a", Kind: KindShortText, Required: true},
	})
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	raw, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc struct {
		Title  string  `json:"title"`
		Theme  *Theme  `json:"theme"`
		Fields []Field `json:"fields"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Title != "T" || doc.Theme == nil || doc.Theme.Mode != "dark" {
		t.Fatalf("document shape wrong: %s", raw)
	}
	if len(doc.Fields) != 1 || doc.Fields[0].ID != "a" {
		t.Fatalf("fields wrong: %s", raw)
	}
}
