package wizard

import (
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/validate"
)

// IsComplete is the stateless completion predicate: true iff every required
// field's current answer satisfies its validator. Position plays no part; a
// user may have answered everything while parked mid-way through the deck.
func IsComplete(schema *model.Questionnaire, answers map[string]model.Value) bool {
	for i := 0; i < schema.Len(); i++ {
		field, _ := schema.At(i)
		if !field.Required {
			continue
		}
		value, ok := answers[field.ID]
		if !ok {
			return false
		}
		if !validate.Satisfied(field, &value) {
			return false
		}
	}
	return true
}

// MissingFields returns the validation message for every required field whose
// answer does not satisfy its validator, keyed by field id. An empty map
// means the questionnaire is complete.
func MissingFields(schema *model.Questionnaire, answers map[string]model.Value) map[string]string {
	missing := make(map[string]string)
	for i := 0; i < schema.Len(); i++ {
		field, _ := schema.At(i)
		if !field.Required {
			continue
		}
		var ref *model.Value
		if value, ok := answers[field.ID]; ok {
			ref = &value
		}
		if err := validate.Check(field, ref); err != nil {
			missing[field.ID] = err.Error()
		}
	}
	return missing
}
