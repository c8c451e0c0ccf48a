// Package intake bundles the questionnaire core behind a small root API:
// load a schema, open a session, walk it slide by slide, and submit the
// finished brief.
package intake

import (
	"context"

	"github.com/goliatone/go-intake/pkg/loader"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/persist"
	"github.com/goliatone/go-intake/pkg/wizard"
)

// Questionnaire aliases the immutable schema type for root-package callers.
type Questionnaire = model.Questionnaire

// Field describes one questionnaire slide.
type Field = model.Field

// Value is the tagged answer union.
type Value = model.Value

// Session is the slide-position state machine.
type Session = wizard.Session

// Snapshot is the persisted session state.
type Snapshot = wizard.Snapshot

// Gateway is the submission boundary.
type Gateway = wizard.Gateway

// GatewayFunc adapts a plain function to Gateway.
type GatewayFunc = wizard.GatewayFunc

// LoadFile parses a questionnaire document from a YAML file.
func LoadFile(path string) (*Questionnaire, error) {
	return loader.FromFile(path)
}

// LoadOpenAPI derives a questionnaire from a named schema inside an OpenAPI
// document.
func LoadOpenAPI(ctx context.Context, data []byte, schemaName string) (*Questionnaire, error) {
	return loader.FromOpenAPI(ctx, data, schemaName)
}

// NewSession opens a session over the schema, restoring saved progress when
// a saver is wired via wizard.WithSaver.
func NewSession(schema *Questionnaire, options ...wizard.Option) (*Session, error) {
	return wizard.NewSession(schema, options...)
}

// WithSaver forwards the wizard persistence option.
func WithSaver(saver wizard.Saver) wizard.Option {
	return wizard.WithSaver(saver)
}

// WithMemorySaver wires an in-memory persistence adapter, handy for tests
// and short-lived embeds.
func WithMemorySaver() wizard.Option {
	return wizard.WithSaver(persist.New(persist.NewMemory(0)))
}

// NewSubmitter wires a session to its submission gateway.
func NewSubmitter(session *Session, gateway Gateway) *wizard.Submitter {
	return wizard.NewSubmitter(session, gateway, nil)
}
