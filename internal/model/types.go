package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FieldKind is the enum for questionnaire field kinds. Each slide of the
// intake wizard presents exactly one field of one of these kinds.
type FieldKind string

const (
	KindShortText   FieldKind = "short_text"
	KindLongText    FieldKind = "long_text"
	KindEmail       FieldKind = "email"
	KindSelect      FieldKind = "single_select"
	KindMultiSelect FieldKind = "multi_select"
	KindScale       FieldKind = "scale"
	KindYesNo       FieldKind = "yes_no"
	KindConsent     FieldKind = "consent"
	KindContact     FieldKind = "contact_bundle"
	KindLinks       FieldKind = "link_list"
	KindDate        FieldKind = "date"
	KindUpload      FieldKind = "file_upload"
)

// Known reports whether the kind is one of the supported enum values.
func (k FieldKind) Known() bool {
	switch k {
	case KindShortText, KindLongText, KindEmail, KindSelect, KindMultiSelect,
		KindScale, KindYesNo, KindConsent, KindContact, KindLinks, KindDate,
		KindUpload:
		return true
	default:
		return false
	}
}

// Field models a single question. Struct fields are annotated so loaders and
// the HTTP surface can serialise them directly.
//
// Max doubles as the upper bound for scale fields and as the selection or
// item cap for multi_select and link_list fields, mirroring the slide
// configuration shape the intake form was designed around.
type Field struct {
	ID          string    `json:"id" yaml:"id"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool      `json:"required" yaml:"required"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	MaxLength   int       `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min         int       `json:"min,omitempty" yaml:"min,omitempty"`
	Max         int       `json:"max,omitempty" yaml:"max,omitempty"`
}

// HasOption reports whether value is one of the declared options.
func (f Field) HasOption(value string) bool {
	for _, option := range f.Options {
		if option == value {
			return true
		}
	}
	return false
}

// Contact is the record collected by contact_bundle fields.
type Contact struct {
	FullName string `json:"fullName" yaml:"fullName"`
	Email    string `json:"email" yaml:"email"`
	Company  string `json:"company" yaml:"company"`
	Phone    string `json:"phone" yaml:"phone"`
}

// Empty reports whether every sub-field is blank after trimming.
func (c Contact) Empty() bool {
	return strings.TrimSpace(c.FullName) == "" &&
		strings.TrimSpace(c.Email) == "" &&
		strings.TrimSpace(c.Company) == "" &&
		strings.TrimSpace(c.Phone) == ""
}

// Complete reports whether every sub-field is non-blank after trimming.
func (c Contact) Complete() bool {
	return strings.TrimSpace(c.FullName) != "" &&
		strings.TrimSpace(c.Email) != "" &&
		strings.TrimSpace(c.Company) != "" &&
		strings.TrimSpace(c.Phone) != ""
}

// Theme carries presentation hints for the questionnaire. The core never
// interprets it; front-ends and the brief email may.
type Theme struct {
	Mode           string  `json:"mode,omitempty" yaml:"mode,omitempty"`
	Primary        string  `json:"primary,omitempty" yaml:"primary,omitempty"`
	OverlayOpacity float64 `json:"overlayOpacity,omitempty" yaml:"overlayOpacity,omitempty"`
}

var (
	// ErrNoFields is returned when a questionnaire is built without fields.
	ErrNoFields = errors.New("model: questionnaire needs at least one field")
	// ErrDuplicateID is returned when two fields share an id.
	ErrDuplicateID = errors.New("model: duplicate field id")
)

// Questionnaire is the static, ordered form schema. It is immutable after
// construction; the declaration order of fields is the canonical navigation
// order of the wizard.
type Questionnaire struct {
	title  string
	theme  Theme
	fields []Field
	index  map[string]int
}

// NewQuestionnaire validates the field list (unique, non-empty ids with known
// kinds) and builds the lookup table.
func NewQuestionnaire(title string, theme Theme, fields []Field) (*Questionnaire, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	index := make(map[string]int, len(fields))
	for i, field := range fields {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return nil, fmt.Errorf("model: field at position %d has no id", i)
		}
		if !field.Kind.Known() {
			return nil, fmt.Errorf("model: field %q has unknown kind %q", id, field.Kind)
		}
		if _, exists := index[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		index[id] = i
	}

	return &Questionnaire{
		title:  title,
		theme:  theme,
		fields: append([]Field(nil), fields...),
		index:  index,
	}, nil
}

// Title returns the questionnaire title.
func (q *Questionnaire) Title() string {
	if q == nil {
		return ""
	}
	return q.title
}

// Theme returns the presentation hints.
func (q *Questionnaire) Theme() Theme {
	if q == nil {
		return Theme{}
	}
	return q.theme
}

// Len returns the number of fields.
func (q *Questionnaire) Len() int {
	if q == nil {
		return 0
	}
	return len(q.fields)
}

// At returns the field at the given navigation position.
func (q *Questionnaire) At(position int) (Field, bool) {
	if q == nil || position < 0 || position >= len(q.fields) {
		return Field{}, false
	}
	return q.fields[position], true
}

// ByID returns the field with the given id.
func (q *Questionnaire) ByID(id string) (Field, bool) {
	if q == nil {
		return Field{}, false
	}
	i, ok := q.index[id]
	if !ok {
		return Field{}, false
	}
	return q.fields[i], true
}

// Position returns the navigation position of the field with the given id.
func (q *Questionnaire) Position(id string) (int, bool) {
	if q == nil {
		return 0, false
	}
	i, ok := q.index[id]
	return i, ok
}

// Fields returns a copy of the ordered field list.
func (q *Questionnaire) Fields() []Field {
	if q == nil {
		return nil
	}
	return append([]Field(nil), q.fields...)
}

// MarshalJSON serialises the questionnaire in the same document shape the
// loaders accept.
func (q *Questionnaire) MarshalJSON() ([]byte, error) {
	doc := struct {
		Title  string  `json:"title,omitempty"`
		Theme  *Theme  `json:"theme,omitempty"`
		Fields []Field `json:"fields"`
	}{
		Title:  q.Title(),
		Fields: q.Fields(),
	}
	if theme := q.Theme(); theme != (Theme{}) {
		doc.Theme = &theme
	}
	return json.Marshal(doc)
}
