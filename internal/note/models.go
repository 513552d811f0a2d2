package note

import "time"

// Note is the persisted note document. Ownership is fixed at creation: every
// repository operation filters by (id, userId) and reports a miss as not found.
type Note struct {
	ID        string     `json:"_id" bson:"_id,omitempty"`
	UserID    string     `json:"userId" bson:"userId"`
	Title     string     `json:"title" bson:"title"`
	Content   string     `json:"content" bson:"content"`
	Summary   string     `json:"summary" bson:"summary"`
	Tags      []string   `json:"tags" bson:"tags"`
	IsPinned  bool       `json:"isPinned" bson:"isPinned"`
	AIOutputs []AIOutput `json:"aiOutputs" bson:"aiOutputs"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// AIOutput is one history entry: the plain text an operation ran against and
// what came back. Entries are prepended (newest first) and never mutated.
type AIOutput struct {
	ID            string    `json:"_id" bson:"_id,omitempty"`
	OriginalInput string    `json:"originalInput" bson:"originalInput"`
	Feature       string    `json:"feature" bson:"feature"`
	Output        string    `json:"output" bson:"output"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Normalize repairs nil slices so callers always observe arrays, even for
// legacy records where storage omitted the fields. Applied at every
// repository read boundary.
func (n *Note) Normalize() *Note {
	if n == nil {
		return nil
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.AIOutputs == nil {
		n.AIOutputs = []AIOutput{}
	}
	return n
}

// Patch is a partial-field update. Nil fields are left untouched.
type Patch struct {
	Title     *string     `json:"title,omitempty"`
	Content   *string     `json:"content,omitempty"`
	Summary   *string     `json:"summary,omitempty"`
	Tags      *[]string   `json:"tags,omitempty"`
	IsPinned  *bool       `json:"isPinned,omitempty"`
	AIOutputs *[]AIOutput `json:"aiOutputs,omitempty"`
}
