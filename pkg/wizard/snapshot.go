package wizard

import "github.com/goliatone/go-intake/pkg/model"

// Snapshot is the durable subset of session state. Visited is derivable from
// the answers and the schema, but it is persisted anyway so a resumed session
// restores progress indicators without re-deriving them.
type Snapshot struct {
	Answers  map[string]model.Value `json:"answers"`
	Position int                    `json:"position"`
	Visited  []int                  `json:"visited,omitempty"`
}

// Saver is the persistence seam the session writes through. Save is
// best-effort: implementations swallow and log storage failures so
// persistence problems never break the in-memory session. Load reports
// ok=false both when no snapshot exists and when the stored payload is
// structurally invalid.
type Saver interface {
	Save(snapshot Snapshot)
	Load() (Snapshot, bool)
	Clear()
}
