// Package validate implements the per-field requiredness contract. Everything
// here is a pure predicate over (field, answer); no I/O, no state.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
)

// emailPattern accepts the standard local@domain shape without attempting
// full RFC 5322 coverage.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether the string has a syntactically plausible
// local@domain shape.
func ValidEmail(address string) bool {
	return emailPattern.MatchString(strings.TrimSpace(address))
}

// Satisfied reports whether the answer satisfies the field's requiredness
// contract. A nil answer means the field has not been answered. Optional
// fields are always satisfied, regardless of value.
func Satisfied(field model.Field, answer *model.Value) bool {
	return Check(field, answer) == nil
}

// Check is Satisfied with a human-readable reason. The returned error is the
// message the wizard surfaces in its per-field error map; it never carries
// internal detail.
func Check(field model.Field, answer *model.Value) error {
	if !field.Required {
		return nil
	}
	if answer == nil {
		return errors.New("this field is required")
	}

	switch field.Kind {
	case model.KindShortText, model.KindLongText, model.KindDate, model.KindUpload:
		if strings.TrimSpace(answer.Text) == "" {
			return errors.New("this field is required")
		}
		if field.MaxLength > 0 && len(answer.Text) > field.MaxLength {
			return fmt.Errorf("maximum %d characters", field.MaxLength)
		}
	case model.KindEmail:
		if strings.TrimSpace(answer.Text) == "" {
			return errors.New("this field is required")
		}
		if !ValidEmail(answer.Text) {
			return errors.New("invalid email format")
		}
	case model.KindSelect:
		if answer.Text == "" {
			return errors.New("select an option")
		}
	case model.KindMultiSelect:
		if len(answer.List) == 0 {
			return errors.New("select at least one option")
		}
	case model.KindScale:
		// Presence is enough; range is enforced when the answer is set.
	case model.KindYesNo:
		// Both true and false count as answered.
	case model.KindConsent:
		if !answer.Flag {
			return errors.New("consent is required to continue")
		}
	case model.KindContact:
		if answer.Contact == nil || !answer.Contact.Complete() {
			return errors.New("all contact fields are required")
		}
	case model.KindLinks:
		if answer.Empty() {
			return errors.New("add at least one link")
		}
	}
	return nil
}
