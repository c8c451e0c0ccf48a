package model

import (
	"fmt"
	"strings"
)

// Value is the tagged answer union. The Kind tag must match the kind of the
// field it is stored under; the wizard enforces this at the SetAnswer
// boundary so a mismatched shape is a construction-time error instead of a
// silent runtime inconsistency.
//
// Exactly one payload field is meaningful for a given kind:
//
//	short_text, long_text, email, single_select, date, file_upload -> Text
//	multi_select, link_list                                        -> List
//	scale                                                          -> Scale
//	yes_no, consent                                                -> Flag
//	contact_bundle                                                 -> Contact
type Value struct {
	Kind    FieldKind `json:"kind"`
	Text    string    `json:"text,omitempty"`
	List    []string  `json:"list,omitempty"`
	Scale   int       `json:"scale,omitempty"`
	Flag    bool      `json:"flag"`
	Contact *Contact  `json:"contact,omitempty"`
}

// TextValue builds a text-backed answer for the given kind.
func TextValue(kind FieldKind, text string) Value {
	return Value{Kind: kind, Text: text}
}

// SelectValue builds a single_select answer.
func SelectValue(option string) Value {
	return Value{Kind: KindSelect, Text: option}
}

// MultiValue builds a multi_select answer.
func MultiValue(options ...string) Value {
	return Value{Kind: KindMultiSelect, List: append([]string(nil), options...)}
}

// LinksValue builds a link_list answer.
func LinksValue(links ...string) Value {
	return Value{Kind: KindLinks, List: append([]string(nil), links...)}
}

// ScaleValue builds a scale answer.
func ScaleValue(n int) Value {
	return Value{Kind: KindScale, Scale: n}
}

// YesNoValue builds a yes_no answer. Both true and false count as answered.
func YesNoValue(answer bool) Value {
	return Value{Kind: KindYesNo, Flag: answer}
}

// ConsentValue builds a consent answer.
func ConsentValue(granted bool) Value {
	return Value{Kind: KindConsent, Flag: granted}
}

// ContactValue builds a contact_bundle answer.
func ContactValue(contact Contact) Value {
	return Value{Kind: KindContact, Contact: &contact}
}

// DateValue builds a date answer (ISO date string).
func DateValue(date string) Value {
	return Value{Kind: KindDate, Text: date}
}

// UploadValue builds a file_upload answer carrying a file name reference.
func UploadValue(name string) Value {
	return Value{Kind: KindUpload, Text: name}
}

// Empty reports whether the value counts as "no answer" under the emptiness
// rule shared by validators, progress tracking, and visited marking. Boolean
// and scale answers are never empty once the value exists; only absence of a
// Value counts as unanswered for those kinds.
func (v Value) Empty() bool {
	switch v.Kind {
	case KindShortText, KindLongText, KindEmail, KindSelect, KindDate, KindUpload:
		return strings.TrimSpace(v.Text) == ""
	case KindMultiSelect:
		return len(v.List) == 0
	case KindLinks:
		for _, link := range v.List {
			if strings.TrimSpace(link) != "" {
				return false
			}
		}
		return true
	case KindScale, KindYesNo, KindConsent:
		return false
	case KindContact:
		return v.Contact == nil || v.Contact.Empty()
	default:
		return true
	}
}

// Matches reports whether the value's tag is acceptable for a field of the
// given kind. Tags must match exactly; there is no coercion between the two
// boolean kinds or between text kinds.
func (v Value) Matches(kind FieldKind) bool {
	return v.Kind == kind
}

// String renders the payload for logs and plain-text summaries.
func (v Value) String() string {
	switch v.Kind {
	case KindMultiSelect, KindLinks:
		return strings.Join(v.List, ", ")
	case KindScale:
		return fmt.Sprintf("%d", v.Scale)
	case KindYesNo, KindConsent:
		if v.Flag {
			return "yes"
		}
		return "no"
	case KindContact:
		if v.Contact == nil {
			return ""
		}
		return fmt.Sprintf("%s <%s> %s %s", v.Contact.FullName, v.Contact.Email, v.Contact.Company, v.Contact.Phone)
	default:
		return v.Text
	}
}
