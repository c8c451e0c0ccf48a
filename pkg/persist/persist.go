// Package persist implements the write-through persistence adapter behind the
// wizard session. State is stored as two logical key/value entries, one for
// the answer map (plus derived visited indices) and one for the position, so
// a reload or crash resumes where the user left off.
package persist

import (
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/wizard"
)

// Default storage keys. Callers sharing one store between questionnaires
// should override them per form.
const (
	DefaultAnswersKey  = "intake.answers"
	DefaultPositionKey = "intake.position"
)

// KV is the minimal key/value contract the adapter needs. Set may fail (for
// example on quota); the adapter logs and carries on. Get reports absence via
// ok=false; Remove is idempotent.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string)
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithKeys overrides the storage keys for the answer map and the position.
func WithKeys(answersKey, positionKey string) Option {
	return func(a *Adapter) {
		if answersKey != "" {
			a.answersKey = answersKey
		}
		if positionKey != "" {
			a.positionKey = positionKey
		}
	}
}

// WithLogger replaces the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.log = logger
		}
	}
}

// Adapter turns a KV store into a wizard.Saver. Saves are best-effort:
// storage failures are logged and swallowed, never surfaced to the session.
type Adapter struct {
	kv          KV
	answersKey  string
	positionKey string
	log         *zap.Logger
}

var _ wizard.Saver = (*Adapter)(nil)

// New builds an adapter over the given store.
func New(kv KV, options ...Option) *Adapter {
	a := &Adapter{
		kv:          kv,
		answersKey:  DefaultAnswersKey,
		positionKey: DefaultPositionKey,
		log:         zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// answersRecord is the payload stored under the answers key.
type answersRecord struct {
	Answers map[string]model.Value `json:"answers"`
	Visited []int                  `json:"visited,omitempty"`
}

// Save serialises the snapshot synchronously. Failures degrade the session to
// in-memory-only operation; they are never fatal.
func (a *Adapter) Save(snapshot wizard.Snapshot) {
	payload, err := json.Marshal(answersRecord{
		Answers: snapshot.Answers,
		Visited: snapshot.Visited,
	})
	if err != nil {
		a.log.Warn("encode snapshot failed", zap.Error(err))
		return
	}
	if err := a.kv.Set(a.answersKey, string(payload)); err != nil {
		a.log.Warn("persist answers failed", zap.Error(err))
		return
	}
	if err := a.kv.Set(a.positionKey, strconv.Itoa(snapshot.Position)); err != nil {
		a.log.Warn("persist position failed", zap.Error(err))
	}
}

// Load reads and parses the stored snapshot. Absent or malformed payloads
// both yield ok=false; corrupt persisted state is discarded, never an error.
func (a *Adapter) Load() (wizard.Snapshot, bool) {
	raw, ok := a.kv.Get(a.answersKey)
	if !ok {
		return wizard.Snapshot{}, false
	}

	var record answersRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil || record.Answers == nil {
		a.log.Warn("discarding corrupt snapshot", zap.Error(err))
		return wizard.Snapshot{}, false
	}

	snapshot := wizard.Snapshot{
		Answers: record.Answers,
		Visited: record.Visited,
	}
	if rawPos, ok := a.kv.Get(a.positionKey); ok {
		if position, err := strconv.Atoi(rawPos); err == nil {
			snapshot.Position = position
		}
	}
	return snapshot, true
}

// Clear removes both keys.
func (a *Adapter) Clear() {
	a.kv.Remove(a.answersKey)
	a.kv.Remove(a.positionKey)
}
