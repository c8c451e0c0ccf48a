package mail

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-intake/pkg/model"
)

// briefTemplate renders a submitted brief as a simple label/answer table.
// Styling is inline because most mail clients strip stylesheets.
const briefTemplate = `<div style="font-family: Arial, sans-serif; padding: 24px; color: #1a1a1a;">
	<h2 style="border-bottom: 3px solid {{ brand }}; padding-bottom: 8px;">{{ title }}</h2>
	<p style="color: #666;">Submission {{ submission_id }}</p>
	<table style="border-collapse: collapse; width: 100%;">
	{% for row in rows %}
		<tr>
			<td style="padding: 8px 16px 8px 0; vertical-align: top; font-weight: bold; white-space: nowrap;">{{ row.Label }}</td>
			<td style="padding: 8px 0;">{{ row.Answer }}</td>
		</tr>
	{% endfor %}
	</table>
</div>`

type bodyRow struct {
	Label  string
	Answer string
}

// bodyRenderer turns a questionnaire plus its answers into the HTML mail
// body. Answer text is sanitized before templating since it is end-user
// input headed for an HTML context.
type bodyRenderer struct {
	template *pongo2.Template
	policy   *bluemonday.Policy
	selector theme.ThemeSelector
	themeID  string
}

func newBodyRenderer(selector theme.ThemeSelector, themeID string) (*bodyRenderer, error) {
	tpl, err := pongo2.FromString(briefTemplate)
	if err != nil {
		return nil, fmt.Errorf("mail: compile template: %w", err)
	}
	return &bodyRenderer{
		template: tpl,
		policy:   bluemonday.StrictPolicy(),
		selector: selector,
		themeID:  themeID,
	}, nil
}

// Render produces the HTML body. The brand color comes from the configured
// theme selector when one is wired; otherwise the schema's own theme wins.
func (r *bodyRenderer) Render(schema *model.Questionnaire, answers map[string]model.Value, submissionID string) (string, error) {
	rows := make([]bodyRow, 0, schema.Len())
	for _, field := range schema.Fields() {
		value, ok := answers[field.ID]
		if !ok || value.Empty() {
			continue
		}
		label := field.Label
		if label == "" {
			label = field.ID
		}
		rows = append(rows, bodyRow{
			Label:  r.policy.Sanitize(label),
			Answer: r.policy.Sanitize(value.String()),
		})
	}

	out, err := r.template.Execute(pongo2.Context{
		"title":         r.policy.Sanitize(schema.Title()),
		"brand":         r.brandColor(schema),
		"submission_id": submissionID,
		"rows":          rows,
	})
	if err != nil {
		return "", fmt.Errorf("mail: render body: %w", err)
	}
	return out, nil
}

func (r *bodyRenderer) brandColor(schema *model.Questionnaire) string {
	if r.selector != nil {
		if selection, err := r.selector.Select(r.themeID, ""); err == nil &&
			selection != nil && selection.Manifest != nil {
			if brand := strings.TrimSpace(selection.Manifest.Tokens["brand"]); brand != "" {
				return brand
			}
		}
	}
	if primary := strings.TrimSpace(schema.Theme().Primary); primary != "" {
		return primary
	}
	return "#4F46E5"
}
