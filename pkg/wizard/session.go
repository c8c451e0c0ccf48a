// Package wizard owns the slide-based navigation state machine: the current
// position, the answer map, the per-field error map, and the set of visited
// slides. A Session is the only mutator of that state and is single-threaded
// from the caller's perspective; every mutation writes through to the
// configured Saver before returning.
package wizard

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/validate"
)

// CompletionObserver is invoked with a snapshot of the answer map when the
// questionnaire transitions from incomplete to complete. It fires at most
// once per completed session; Reset re-arms it.
type CompletionObserver func(answers map[string]model.Value)

// Option configures a Session at construction time.
type Option func(*Session)

// WithSaver wires the persistence adapter the session writes through. When
// a structurally valid snapshot is present, the session resumes from it.
func WithSaver(saver Saver) Option {
	return func(s *Session) {
		s.saver = saver
	}
}

// WithLogger replaces the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithCompletionObserver registers the callback fired on the incomplete to
// complete transition.
func WithCompletionObserver(observer CompletionObserver) Option {
	return func(s *Session) {
		s.observer = observer
	}
}

// Session is the wizard state machine. Construct it with NewSession and keep
// exactly one per running questionnaire; there is no ambient global.
type Session struct {
	schema    *model.Questionnaire
	position  int
	answers   map[string]model.Value
	fieldErrs map[string]string
	visited   map[int]struct{}

	saver    Saver
	log      *zap.Logger
	observer CompletionObserver
	notified bool
}

// NewSession builds a session for the given schema, starting empty or
// resuming from a persisted snapshot when a saver is configured and the
// snapshot is structurally valid.
func NewSession(schema *model.Questionnaire, options ...Option) (*Session, error) {
	if schema == nil || schema.Len() == 0 {
		return nil, fmt.Errorf("wizard: schema with at least one field is required")
	}

	s := &Session{
		schema:    schema,
		answers:   make(map[string]model.Value),
		fieldErrs: make(map[string]string),
		visited:   make(map[int]struct{}),
		log:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	s.restore()
	return s, nil
}

// restore resumes from a persisted snapshot. Corrupt or out-of-range
// snapshots are discarded; a broken store must never break session start.
func (s *Session) restore() {
	if s.saver == nil {
		return
	}
	snap, ok := s.saver.Load()
	if !ok {
		return
	}
	if snap.Answers == nil || snap.Position < 0 || snap.Position >= s.schema.Len() {
		s.log.Warn("discarding structurally invalid snapshot",
			zap.Int("position", snap.Position),
			zap.Int("schema_len", s.schema.Len()))
		return
	}

	for id, value := range snap.Answers {
		field, known := s.schema.ByID(id)
		if !known || !value.Matches(field.Kind) {
			s.log.Warn("dropping snapshot answer", zap.String("field", id))
			continue
		}
		s.answers[id] = value
	}
	s.position = snap.Position

	if len(snap.Visited) > 0 {
		for _, index := range snap.Visited {
			if index >= 0 && index < s.schema.Len() {
				s.visited[index] = struct{}{}
			}
		}
		return
	}
	// Older snapshots may lack visited; derive it from the answers.
	for id, value := range s.answers {
		if value.Empty() {
			continue
		}
		if index, ok := s.schema.Position(id); ok {
			s.visited[index] = struct{}{}
		}
	}
}

// Schema returns the form schema the session navigates.
func (s *Session) Schema() *model.Questionnaire {
	return s.schema
}

// Position returns the current slide index.
func (s *Session) Position() int {
	return s.position
}

// Field returns the field at the current position.
func (s *Session) Field() model.Field {
	field, _ := s.schema.At(s.position)
	return field
}

// Answers returns a copy of the answer map.
func (s *Session) Answers() map[string]model.Value {
	out := make(map[string]model.Value, len(s.answers))
	for id, value := range s.answers {
		out[id] = value
	}
	return out
}

// Answer returns the stored value for a field id.
func (s *Session) Answer(id string) (model.Value, bool) {
	value, ok := s.answers[id]
	return value, ok
}

// FieldErrors returns a copy of the per-field validation messages.
func (s *Session) FieldErrors() map[string]string {
	out := make(map[string]string, len(s.fieldErrs))
	for id, msg := range s.fieldErrs {
		out[id] = msg
	}
	return out
}

// Visited returns the sorted set of slide indices holding a non-empty answer.
func (s *Session) Visited() []int {
	out := make([]int, 0, len(s.visited))
	for index := range s.visited {
		out = append(out, index)
	}
	sort.Ints(out)
	return out
}

// Progress returns the completed share of the questionnaire in [0,100].
func (s *Session) Progress() float64 {
	if s.schema.Len() == 0 {
		return 0
	}
	return float64(len(s.visited)) / float64(s.schema.Len()) * 100
}

// SetAnswer stores the value for a field, clearing any prior error for it and
// marking the current position visited when the value is non-empty. Answers
// violating mutation-time constraints (selection caps, unknown options,
// out-of-range scales) are rejected: the prior value is retained and a
// per-field message is recorded. The only hard failures are an unknown field
// id and a kind/tag mismatch.
func (s *Session) SetAnswer(id string, value model.Value) error {
	field, ok := s.schema.ByID(id)
	if !ok {
		s.log.Error("set answer on unknown field", zap.String("field", id))
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	if !value.Matches(field.Kind) {
		s.log.Error("answer kind mismatch",
			zap.String("field", id),
			zap.String("field_kind", string(field.Kind)),
			zap.String("value_kind", string(value.Kind)))
		return fmt.Errorf("%w: field %q is %s, got %s", ErrKindMismatch, id, field.Kind, value.Kind)
	}

	if msg := mutationGuard(field, value); msg != "" {
		s.fieldErrs[id] = msg
		return nil
	}

	s.answers[id] = value
	delete(s.fieldErrs, id)
	if !value.Empty() {
		s.visited[s.position] = struct{}{}
	}

	s.persist()
	s.checkCompletion()
	return nil
}

// mutationGuard re-enforces the constraints callers are expected to have
// pre-filtered. A non-empty return is the message recorded for the field.
func mutationGuard(field model.Field, value model.Value) string {
	switch field.Kind {
	case model.KindSelect:
		if value.Text != "" && len(field.Options) > 0 && !field.HasOption(value.Text) {
			return "select one of the listed options"
		}
	case model.KindMultiSelect:
		if field.Max > 0 && len(value.List) > field.Max {
			return fmt.Sprintf("select at most %d options", field.Max)
		}
		if len(field.Options) > 0 {
			for _, item := range value.List {
				if !field.HasOption(item) {
					return "select one of the listed options"
				}
			}
		}
	case model.KindScale:
		if field.Max > 0 && (value.Scale < field.Min || value.Scale > field.Max) {
			return fmt.Sprintf("pick a value between %d and %d", field.Min, field.Max)
		}
	case model.KindLinks:
		if field.Max > 0 && len(value.List) > field.Max {
			return fmt.Sprintf("maximum %d links", field.Max)
		}
	}
	return ""
}

// CanAdvance reports whether the field at the current position is either
// optional or satisfied by its current answer. It never mutates state.
func (s *Session) CanAdvance() bool {
	field, ok := s.schema.At(s.position)
	if !ok {
		return false
	}
	return validate.Satisfied(field, s.answerRef(field.ID))
}

// Advance moves forward exactly one slide. Blocked advances (last slide, or
// current field not satisfied) are no-ops; a blocked required field gets its
// validation message recorded so the caller can surface it.
func (s *Session) Advance() {
	if s.position >= s.schema.Len()-1 {
		return
	}
	field, _ := s.schema.At(s.position)
	if err := validate.Check(field, s.answerRef(field.ID)); err != nil {
		s.fieldErrs[field.ID] = err.Error()
		return
	}
	s.position++
	s.persist()
}

// Retreat moves back exactly one slide; a no-op on the first slide.
func (s *Session) Retreat() {
	if s.position == 0 {
		return
	}
	s.position--
	s.persist()
}

// CanJumpTo reports whether JumpTo(index) would move: always backward, and
// forward only to slides that already hold a non-empty answer.
func (s *Session) CanJumpTo(index int) bool {
	if index < 0 || index >= s.schema.Len() {
		return false
	}
	if index <= s.position {
		return true
	}
	_, visited := s.visited[index]
	return visited
}

// JumpTo moves directly to a slide. Disallowed jumps are silently ignored;
// callers needing feedback should pre-check with CanJumpTo.
func (s *Session) JumpTo(index int) {
	if !s.CanJumpTo(index) {
		return
	}
	s.position = index
	s.persist()
}

// Reset clears the answers, errors, visited set, and position, deletes the
// persisted snapshot, and re-arms the completion observer.
func (s *Session) Reset() {
	s.answers = make(map[string]model.Value)
	s.fieldErrs = make(map[string]string)
	s.visited = make(map[int]struct{})
	s.position = 0
	s.notified = false
	if s.saver != nil {
		s.saver.Clear()
	}
}

// Complete reports whether every required field's answer passes validation,
// independent of the current position.
func (s *Session) Complete() bool {
	return IsComplete(s.schema, s.answers)
}

func (s *Session) answerRef(id string) *model.Value {
	if value, ok := s.answers[id]; ok {
		return &value
	}
	return nil
}

func (s *Session) persist() {
	if s.saver == nil {
		return
	}
	s.saver.Save(Snapshot{
		Answers:  s.Answers(),
		Position: s.position,
		Visited:  s.Visited(),
	})
}

func (s *Session) checkCompletion() {
	if s.notified || s.observer == nil {
		return
	}
	if !s.Complete() {
		return
	}
	s.notified = true
	s.observer(s.Answers())
}

// markSubmitted clears the persisted snapshot once a submission succeeded.
func (s *Session) markSubmitted() {
	if s.saver != nil {
		s.saver.Clear()
	}
}
