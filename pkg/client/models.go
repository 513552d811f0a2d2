package client

import "time"

// Note is the wire shape of a note as served by the API.
type Note struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"userId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Summary   string     `json:"summary"`
	Tags      []string   `json:"tags"`
	IsPinned  bool       `json:"isPinned"`
	AIOutputs []AIOutput `json:"aiOutputs"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AIOutput is one AI-history entry on a note.
type AIOutput struct {
	ID            string    `json:"_id"`
	OriginalInput string    `json:"originalInput"`
	Feature       string    `json:"feature"`
	Output        string    `json:"output"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NotePatch is a partial note update; nil fields are not sent.
type NotePatch struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Summary  *string   `json:"summary,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	IsPinned *bool     `json:"isPinned,omitempty"`
}

// ProcessRequest is the payload for the generic transformation endpoint.
type ProcessRequest struct {
	Content  string `json:"content"`
	Feature  string `json:"feature"`
	Language string `json:"language,omitempty"`
	Format   string `json:"format,omitempty"`
	Question string `json:"question,omitempty"`
}

func (n *Note) normalize() *Note {
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
