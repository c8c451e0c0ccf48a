package loader

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-intake/pkg/model"
)

// Extensions recognised on OpenAPI schemas and properties.
const (
	// orderExtensionKey lists property names in slide order. Properties not
	// listed are appended alphabetically after the listed ones.
	orderExtensionKey = "x-intake-order"
	// kindExtensionKey overrides the derived field kind for a property.
	kindExtensionKey = "x-intake-kind"
)

// FromOpenAPI derives a questionnaire from a named object schema inside an
// OpenAPI document. Property types map onto field kinds (string to text,
// enum to select, boolean to yes_no, bounded integer to scale, arrays to
// multi_select or link_list); the x-intake-kind extension overrides the
// mapping where the derivation is ambiguous, and x-intake-order fixes the
// slide order that OpenAPI's unordered property maps cannot express.
func FromOpenAPI(ctx context.Context, data []byte, schemaName string) (*model.Questionnaire, error) {
	specLoader := &openapi3.Loader{Context: ctx}
	spec, err := specLoader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("loader: load openapi document: %w", err)
	}

	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, fmt.Errorf("loader: document declares no component schemas")
	}
	ref, ok := spec.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("loader: schema %q not found", schemaName)
	}
	src := ref.Value
	if len(src.Properties) == 0 {
		return nil, fmt.Errorf("loader: schema %q has no properties", schemaName)
	}

	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	fields := make([]model.Field, 0, len(src.Properties))
	for _, name := range propertyOrder(src) {
		prop := src.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		field, err := mapProperty(name, prop.Value, required[name])
		if err != nil {
			return nil, fmt.Errorf("loader: property %q: %w", name, err)
		}
		fields = append(fields, field)
	}

	title := src.Title
	if title == "" {
		title = schemaName
	}
	q, err := model.NewQuestionnaire(title, model.Theme{}, fields)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return q, nil
}

// propertyOrder resolves slide order: the x-intake-order extension first,
// remaining properties alphabetically.
func propertyOrder(src *openapi3.Schema) []string {
	seen := make(map[string]bool, len(src.Properties))
	var order []string

	if raw, ok := src.Extensions[orderExtensionKey]; ok {
		if listed, ok := raw.([]any); ok {
			for _, item := range listed {
				name, ok := item.(string)
				if !ok || seen[name] {
					continue
				}
				if _, exists := src.Properties[name]; !exists {
					continue
				}
				seen[name] = true
				order = append(order, name)
			}
		}
	}

	rest := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func mapProperty(name string, prop *openapi3.Schema, required bool) (model.Field, error) {
	field := model.Field{
		ID:          name,
		Label:       prop.Title,
		Placeholder: prop.Description,
		Required:    required,
	}

	kind, err := deriveKind(prop)
	if err != nil {
		return model.Field{}, err
	}
	field.Kind = kind

	switch kind {
	case model.KindSelect, model.KindMultiSelect:
		field.Options = stringifyEnum(enumSource(prop))
		if kind == model.KindMultiSelect && prop.MaxItems != nil {
			field.Max = int(*prop.MaxItems)
		}
	case model.KindScale:
		if prop.Min != nil {
			field.Min = int(*prop.Min)
		}
		if prop.Max != nil {
			field.Max = int(*prop.Max)
		}
	case model.KindShortText, model.KindLongText, model.KindEmail:
		if prop.MaxLength != nil {
			field.MaxLength = int(*prop.MaxLength)
		}
	case model.KindLinks:
		if prop.MaxItems != nil {
			field.Max = int(*prop.MaxItems)
		}
	}

	return field, nil
}

// deriveKind maps an OpenAPI property schema onto a field kind. The
// x-intake-kind extension wins when present and valid.
func deriveKind(prop *openapi3.Schema) (model.FieldKind, error) {
	if raw, ok := prop.Extensions[kindExtensionKey]; ok {
		if name, ok := raw.(string); ok {
			kind := model.FieldKind(name)
			if !kind.Known() {
				return "", fmt.Errorf("unknown %s %q", kindExtensionKey, name)
			}
			return kind, nil
		}
	}

	switch schemaType(prop) {
	case "boolean":
		return model.KindYesNo, nil
	case "integer", "number":
		return model.KindScale, nil
	case "array":
		if prop.Items != nil && prop.Items.Value != nil && len(prop.Items.Value.Enum) > 0 {
			return model.KindMultiSelect, nil
		}
		return model.KindLinks, nil
	case "object":
		if isContactShape(prop) {
			return model.KindContact, nil
		}
		return "", fmt.Errorf("object schemas other than contact bundles are not supported")
	default:
		if len(prop.Enum) > 0 {
			return model.KindSelect, nil
		}
		switch prop.Format {
		case "email":
			return model.KindEmail, nil
		case "date", "date-time":
			return model.KindDate, nil
		case "binary":
			return model.KindUpload, nil
		case "textarea":
			return model.KindLongText, nil
		}
		return model.KindShortText, nil
	}
}

func schemaType(prop *openapi3.Schema) string {
	if prop.Type == nil {
		return ""
	}
	values := prop.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func isContactShape(prop *openapi3.Schema) bool {
	for _, sub := range []string{"fullName", "email", "company", "phone"} {
		if _, ok := prop.Properties[sub]; !ok {
			return false
		}
	}
	return true
}

func enumSource(prop *openapi3.Schema) []any {
	if len(prop.Enum) > 0 {
		return prop.Enum
	}
	if prop.Items != nil && prop.Items.Value != nil {
		return prop.Items.Value.Enum
	}
	return nil
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		text := strings.TrimSpace(fmt.Sprint(value))
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}
