package model

import internalmodel "github.com/goliatone/go-intake/internal/model"

// FieldKind re-exports the internal FieldKind enumeration.
type FieldKind = internalmodel.FieldKind

const (
	KindShortText   = internalmodel.KindShortText
	KindLongText    = internalmodel.KindLongText
	KindEmail       = internalmodel.KindEmail
	KindSelect      = internalmodel.KindSelect
	KindMultiSelect = internalmodel.KindMultiSelect
	KindScale       = internalmodel.KindScale
	KindYesNo       = internalmodel.KindYesNo
	KindConsent     = internalmodel.KindConsent
	KindContact     = internalmodel.KindContact
	KindLinks       = internalmodel.KindLinks
	KindDate        = internalmodel.KindDate
	KindUpload      = internalmodel.KindUpload
)

type Field = internalmodel.Field
type Contact = internalmodel.Contact
type Theme = internalmodel.Theme
type Questionnaire = internalmodel.Questionnaire
type Value = internalmodel.Value

// NewQuestionnaire re-exports the internal constructor.
func NewQuestionnaire(title string, theme Theme, fields []Field) (*Questionnaire, error) {
	return internalmodel.NewQuestionnaire(title, theme, fields)
}

// Value constructors, re-exported for callers building answers by hand.
var (
	TextValue    = internalmodel.TextValue
	SelectValue  = internalmodel.SelectValue
	MultiValue   = internalmodel.MultiValue
	LinksValue   = internalmodel.LinksValue
	ScaleValue   = internalmodel.ScaleValue
	YesNoValue   = internalmodel.YesNoValue
	ConsentValue = internalmodel.ConsentValue
	ContactValue = internalmodel.ContactValue
	DateValue    = internalmodel.DateValue
	UploadValue  = internalmodel.UploadValue
)

var (
	ErrNoFields    = internalmodel.ErrNoFields
	ErrDuplicateID = internalmodel.ErrDuplicateID
)
