package wizard

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-intake/pkg/model"
)

// Gateway is the submission boundary. Implementations transmit a finished
// answer map once and report the outcome; the core never retries on its own.
type Gateway interface {
	Submit(ctx context.Context, answers map[string]model.Value) error
}

type submissionIDKey struct{}

// WithSubmissionID stamps a caller-chosen submission id on the context so
// gateway implementations can correlate their delivery with the caller's
// records instead of minting an unrelated id.
func WithSubmissionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, submissionIDKey{}, id)
}

// SubmissionID reports the id stamped with WithSubmissionID, if any.
func SubmissionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(submissionIDKey{}).(string)
	return id, ok && id != ""
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, answers map[string]model.Value) error

// Submit implements Gateway.
func (f GatewayFunc) Submit(ctx context.Context, answers map[string]model.Value) error {
	return f(ctx, answers)
}

// Submitter hands a completed session's answers to a Gateway, enforcing at
// most one attempt in flight. A failed attempt leaves the session in the
// "complete, not yet submitted" state; the caller retries by calling Submit
// again. Only a successful attempt clears the persisted snapshot.
type Submitter struct {
	session *Session
	gateway Gateway
	log     *zap.Logger

	mu       sync.Mutex
	inFlight bool
}

// NewSubmitter wires a session to its gateway.
func NewSubmitter(session *Session, gateway Gateway, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{
		session: session,
		gateway: gateway,
		log:     logger,
	}
}

// Submit transmits the session's answers. It fails fast with ErrNotComplete
// when required fields are still unsatisfied and with ErrSubmitInFlight when
// an attempt is already outstanding.
func (s *Submitter) Submit(ctx context.Context) error {
	if !s.session.Complete() {
		return ErrNotComplete
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	if err := s.gateway.Submit(ctx, s.session.Answers()); err != nil {
		s.log.Warn("submission failed", zap.Error(err))
		return fmt.Errorf("wizard: submit: %w", err)
	}

	s.session.markSubmitted()
	s.log.Info("submission delivered", zap.Int("answers", len(s.session.Answers())))
	return nil
}
