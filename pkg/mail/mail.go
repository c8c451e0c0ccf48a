// Package mail delivers completed briefs over SMTP. The Gateway type plugs
// into the wizard's submission boundary; each delivery gets a unique
// submission id and an HTML body summarizing every answered field.
package mail

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/wizard"
)

// Config holds the SMTP transport settings plus the envelope.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	To       string
	Subject  string
}

// sender is the transport seam; *gomail.Dialer satisfies it.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Gateway implements wizard.Gateway by mailing the answers to the configured
// recipient.
type Gateway struct {
	cfg      Config
	schema   *model.Questionnaire
	sender   sender
	renderer *bodyRenderer
	log      *zap.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.log = logger
		}
	}
}

// WithSender overrides the SMTP transport, mainly for tests.
func WithSender(s sender) Option {
	return func(g *Gateway) {
		if s != nil {
			g.sender = s
		}
	}
}

// WithThemeSelector resolves the mail's brand color from a theme manifest
// instead of the questionnaire's own theme.
func WithThemeSelector(selector theme.ThemeSelector, themeID string) Option {
	return func(g *Gateway) {
		g.renderer.selector = selector
		g.renderer.themeID = themeID
	}
}

// NewGateway builds an SMTP-backed submission gateway for the given schema.
func NewGateway(cfg Config, schema *model.Questionnaire, options ...Option) (*Gateway, error) {
	if schema == nil {
		return nil, fmt.Errorf("mail: schema is required")
	}
	if cfg.Host == "" || cfg.To == "" {
		return nil, fmt.Errorf("mail: host and recipient are required")
	}

	renderer, err := newBodyRenderer(nil, "")
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		cfg:      cfg,
		schema:   schema,
		sender:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		renderer: renderer,
		log:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

var _ wizard.Gateway = (*Gateway)(nil)

// Submit renders and mails the brief. The error is returned as-is so the
// caller decides whether to retry.
func (g *Gateway) Submit(ctx context.Context, answers map[string]model.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	submissionID, ok := wizard.SubmissionID(ctx)
	if !ok {
		submissionID = uuid.NewString()
	}
	body, err := g.renderer.Render(g.schema, answers, submissionID)
	if err != nil {
		return err
	}

	subject := g.cfg.Subject
	if subject == "" {
		subject = fmt.Sprintf("New brief: %s", g.schema.Title())
	}

	m := gomail.NewMessage()
	m.SetHeader("From", g.cfg.Sender)
	m.SetHeader("To", g.cfg.To)
	m.SetHeader("Subject", subject)
	m.SetHeader("X-Intake-Submission", submissionID)
	m.SetBody("text/html", body)

	if err := g.sender.DialAndSend(m); err != nil {
		g.log.Error("brief delivery failed",
			zap.String("submission", submissionID),
			zap.String("to", g.cfg.To),
			zap.Error(err))
		return fmt.Errorf("mail: send: %w", err)
	}

	g.log.Info("brief delivered",
		zap.String("submission", submissionID),
		zap.String("to", g.cfg.To),
		zap.Int("answers", len(answers)))
	return nil
}
