// Package tui runs an intake questionnaire in the terminal, one slide per
// prompt, on top of a wizard.Session. Prompting goes through the PromptDriver
// seam so the flow is testable without a terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/wizard"
)

// Back navigation: past the first slide, text prompts accept backCommand as
// the whole answer and option prompts grow a trailing backLabel entry. Yes/no
// prompts stay binary; their slides are reachable again via the entries
// around them.
const (
	backCommand = "<"
	backLabel   = "< Back"
)

// errBack signals that the user asked to revisit the previous slide.
var errBack = errors.New("tui: back")

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) RunnerOption {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithSubmitter wires the submitter invoked once the questionnaire is
// complete. Without one, Run finishes by reporting completion and returning.
func WithSubmitter(submitter *wizard.Submitter) RunnerOption {
	return func(r *Runner) {
		r.submitter = submitter
	}
}

// WithProgress toggles the per-slide progress line.
func WithProgress(show bool) RunnerOption {
	return func(r *Runner) {
		r.showProgress = show
	}
}

// Runner walks a session from its current position to completion. Sessions
// resumed from a snapshot pick up where they left off, with stored answers
// offered as prompt defaults.
type Runner struct {
	driver       PromptDriver
	session      *wizard.Session
	submitter    *wizard.Submitter
	showProgress bool
}

// NewRunner constructs a runner with the survey driver by default.
func NewRunner(session *wizard.Session, options ...RunnerOption) (*Runner, error) {
	if session == nil {
		return nil, fmt.Errorf("tui: session is required")
	}
	r := &Runner{
		driver:       newSurveyDriver(),
		session:      session,
		showProgress: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Run prompts slide by slide until the questionnaire is complete, then hands
// off to the submitter. Persistence is handled by the session itself.
func (r *Runner) Run(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("tui: context is required")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		field := r.session.Field()
		if r.showProgress {
			_ = r.driver.Info(ctx, fmt.Sprintf("[%d/%d] %.0f%% complete",
				r.session.Position()+1, r.session.Schema().Len(), r.session.Progress()))
		}

		if err := r.promptField(ctx, field); err != nil {
			if errors.Is(err, errBack) {
				r.session.Retreat()
				continue
			}
			return err
		}

		if msg, blocked := r.session.FieldErrors()[field.ID]; blocked {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid answer: %s", msg))
			continue
		}

		if r.session.Position() >= r.session.Schema().Len()-1 {
			if r.session.Complete() {
				return r.finish(ctx)
			}
			// Last slide answered but earlier required fields are missing
			// (possible after a resumed or partially skipped session): jump
			// back to the first one.
			if !r.rewindToMissing(ctx) {
				continue
			}
			continue
		}

		r.session.Advance()
		if msg, blocked := r.session.FieldErrors()[field.ID]; blocked {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid answer: %s", msg))
		}
	}
}

func (r *Runner) rewindToMissing(ctx context.Context) bool {
	missing := wizard.MissingFields(r.session.Schema(), r.session.Answers())
	for i := 0; i < r.session.Schema().Len(); i++ {
		field, _ := r.session.Schema().At(i)
		if msg, ok := missing[field.ID]; ok {
			_ = r.driver.Info(ctx, fmt.Sprintf("Still needed - %s: %s", label(field), msg))
			r.session.JumpTo(i)
			return true
		}
	}
	return false
}

func (r *Runner) finish(ctx context.Context) error {
	if r.submitter == nil {
		return r.driver.Info(ctx, "Questionnaire complete.")
	}

	for {
		_ = r.driver.Info(ctx, "Submitting your brief...")
		err := r.submitter.Submit(ctx)
		if err == nil {
			return r.driver.Info(ctx, "Brief sent. Thank you!")
		}

		_ = r.driver.Info(ctx, fmt.Sprintf("Submission failed: %v", err))
		retry, confirmErr := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Try again?",
			Default: true,
		})
		if confirmErr != nil {
			return confirmErr
		}
		if !retry {
			return err
		}
	}
}

func (r *Runner) promptField(ctx context.Context, field model.Field) error {
	switch field.Kind {
	case model.KindShortText, model.KindEmail, model.KindDate, model.KindUpload:
		return r.promptText(ctx, field)
	case model.KindLongText:
		return r.promptLongText(ctx, field)
	case model.KindSelect:
		return r.promptSelect(ctx, field)
	case model.KindMultiSelect:
		return r.promptMultiSelect(ctx, field)
	case model.KindScale:
		return r.promptScale(ctx, field)
	case model.KindYesNo, model.KindConsent:
		return r.promptBool(ctx, field)
	case model.KindContact:
		return r.promptContact(ctx, field)
	case model.KindLinks:
		return r.promptLinks(ctx, field)
	default:
		return fmt.Errorf("tui: unsupported field kind %q", field.Kind)
	}
}

func (r *Runner) canGoBack() bool {
	return r.session.Position() > 0
}

func (r *Runner) backRequested(response string) bool {
	return r.canGoBack() && strings.TrimSpace(response) == backCommand
}

// withBackOption appends the back entry after the real options so their
// indices stay stable.
func (r *Runner) withBackOption(options []string) []string {
	if !r.canGoBack() {
		return options
	}
	return append(append([]string(nil), options...), backLabel)
}

func (r *Runner) backHint(help string) string {
	if !r.canGoBack() {
		return help
	}
	return strings.TrimSpace(help + " (type < to go back)")
}

func (r *Runner) promptText(ctx context.Context, field model.Field) error {
	existing, _ := r.session.Answer(field.ID)
	response, err := r.driver.Input(ctx, InputConfig{
		Message:     label(field),
		Default:     existing.Text,
		Help:        r.backHint(field.Placeholder),
		Placeholder: field.Placeholder,
	})
	if err != nil {
		return err
	}
	if r.backRequested(response) {
		return errBack
	}
	return r.session.SetAnswer(field.ID, model.TextValue(field.Kind, response))
}

func (r *Runner) promptLongText(ctx context.Context, field model.Field) error {
	existing, _ := r.session.Answer(field.ID)
	response, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message: label(field),
		Default: existing.Text,
		Help:    r.backHint(field.Placeholder),
	})
	if err != nil {
		return err
	}
	if r.backRequested(response) {
		return errBack
	}
	return r.session.SetAnswer(field.ID, model.TextValue(field.Kind, response))
}

func (r *Runner) promptSelect(ctx context.Context, field model.Field) error {
	existing, _ := r.session.Answer(field.ID)
	options := r.withBackOption(field.Options)
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label(field),
		Options:      options,
		DefaultIndex: indexOf(field.Options, existing.Text),
		Help:         field.Placeholder,
	})
	if err != nil {
		return err
	}
	if len(options) > len(field.Options) && idx == len(field.Options) {
		return errBack
	}
	if idx < 0 || idx >= len(field.Options) {
		return r.session.SetAnswer(field.ID, model.SelectValue(""))
	}
	return r.session.SetAnswer(field.ID, model.SelectValue(field.Options[idx]))
}

func (r *Runner) promptMultiSelect(ctx context.Context, field model.Field) error {
	existing, _ := r.session.Answer(field.ID)
	help := field.Placeholder
	if field.Max > 0 {
		help = strings.TrimSpace(fmt.Sprintf("%s (pick up to %d)", help, field.Max))
	}
	options := r.withBackOption(field.Options)
	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  label(field),
		Options:  options,
		Defaults: indicesOf(field.Options, existing.List),
		Help:     help,
	})
	if err != nil {
		return err
	}
	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if len(options) > len(field.Options) && idx == len(field.Options) {
			return errBack
		}
		if idx >= 0 && idx < len(field.Options) {
			selected = append(selected, field.Options[idx])
		}
	}
	return r.session.SetAnswer(field.ID, model.MultiValue(selected...))
}

func (r *Runner) promptScale(ctx context.Context, field model.Field) error {
	low, high := field.Min, field.Max
	if high <= low {
		low, high = 1, 7
	}
	options := make([]string, 0, high-low+1)
	for n := low; n <= high; n++ {
		options = append(options, strconv.Itoa(n))
	}

	existing, hasExisting := r.session.Answer(field.ID)
	defaultIdx := -1
	if hasExisting {
		defaultIdx = indexOf(options, strconv.Itoa(existing.Scale))
	}

	display := r.withBackOption(options)
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label(field),
		Options:      display,
		DefaultIndex: defaultIdx,
		Help:         field.Placeholder,
	})
	if err != nil {
		return err
	}
	if len(display) > len(options) && idx == len(options) {
		return errBack
	}
	if idx < 0 || idx >= len(options) {
		idx = 0
	}
	return r.session.SetAnswer(field.ID, model.ScaleValue(low+idx))
}

func (r *Runner) promptBool(ctx context.Context, field model.Field) error {
	existing, _ := r.session.Answer(field.ID)
	response, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: label(field),
		Default: existing.Flag,
		Help:    field.Placeholder,
	})
	if err != nil {
		return err
	}
	if field.Kind == model.KindConsent {
		return r.session.SetAnswer(field.ID, model.ConsentValue(response))
	}
	return r.session.SetAnswer(field.ID, model.YesNoValue(response))
}

func (r *Runner) promptContact(ctx context.Context, field model.Field) error {
	existing, _ := r.session.Answer(field.ID)
	var prior model.Contact
	if existing.Contact != nil {
		prior = *existing.Contact
	}

	contact := model.Contact{}
	prompts := []struct {
		message string
		prior   string
		dest    *string
	}{
		{"Full name", prior.FullName, &contact.FullName},
		{"Email", prior.Email, &contact.Email},
		{"Company", prior.Company, &contact.Company},
		{"Phone", prior.Phone, &contact.Phone},
	}
	for _, p := range prompts {
		response, err := r.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s - %s", label(field), p.message),
			Default: p.prior,
		})
		if err != nil {
			return err
		}
		if r.backRequested(response) {
			return errBack
		}
		*p.dest = response
	}
	return r.session.SetAnswer(field.ID, model.ContactValue(contact))
}

func (r *Runner) promptLinks(ctx context.Context, field model.Field) error {
	existing, _ := r.session.Answer(field.ID)
	links := append([]string(nil), existing.List...)

	for {
		if field.Max > 0 && len(links) >= field.Max {
			break
		}
		response, err := r.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s (link %d)", label(field), len(links)+1),
			Help:    r.backHint(field.Placeholder),
		})
		if err != nil {
			return err
		}
		if r.backRequested(response) {
			return errBack
		}
		if trimmed := strings.TrimSpace(response); trimmed != "" {
			links = append(links, trimmed)
		}

		more, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Add another?",
			Default: false,
		})
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return r.session.SetAnswer(field.ID, model.LinksValue(links...))
}

func label(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.ID
}
