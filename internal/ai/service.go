package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/inkling-notes/inkling-server/internal/note"
)

// NoteStore is the slice of note persistence the operation service needs for
// result folding and history.
type NoteStore interface {
	Update(ctx context.Context, userID, id string, patch note.Patch) (*note.Note, error)
	AppendHistory(ctx context.Context, userID, id string, entry note.AIOutput) (*note.Note, error)
}

// Minimum plain-text lengths per capability, enforced before any network
// call. The baseline capabilities expect more substantial input than the
// ad-hoc operations.
const (
	minProcessContent   = 5
	minImproveContent   = 10
	minTagsContent      = 10
	minSummarizeContent = 50
)

// Service orchestrates AI operations: parameter validation, prompt
// compilation, the provider call, and the note-level side effects.
type Service struct {
	completer Completer
	notes     NoteStore
}

func NewService(completer Completer, notes NoteStore) *Service {
	return &Service{completer: completer, notes: notes}
}

// RunResult is what a completed operation reports back. Note is nil when the
// run was not bound to a note.
type RunResult struct {
	Feature string
	Output  string
	Note    *note.Note
}

// Run executes one operation against the given plain text. When noteID is
// non-empty the result is folded into the note and recorded in its history:
// summarize overwrites the summary field, every other feature clears it (a
// summary is stale once any other transformation has been applied). The
// history entry is appended after the fold resolves, never in parallel, so
// history reflects the same state the fold produced. Nothing is persisted
// when the provider call fails.
func (s *Service) Run(ctx context.Context, userID, noteID, feature, content string, p Params) (*RunResult, error) {
	if err := validateParams(feature, p); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(content)) < minProcessContent {
		return nil, invalidParams("content must be at least %d characters", minProcessContent)
	}

	prompt, err := Compile(feature, content, p)
	if err != nil {
		return nil, err
	}
	output, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	res := &RunResult{Feature: feature, Output: output}
	if noteID == "" {
		return res, nil
	}

	summary := ""
	if feature == FeatureSummarize {
		summary = output
	}
	if _, err := s.notes.Update(ctx, userID, noteID, note.Patch{Summary: &summary}); err != nil {
		return nil, err
	}

	n, err := s.notes.AppendHistory(ctx, userID, noteID, note.AIOutput{
		OriginalInput: content,
		Feature:       feature,
		Output:        output,
	})
	if err != nil {
		return nil, err
	}
	res.Note = n
	return res, nil
}

// Summarize is the single-purpose variant with a stricter input gate.
func (s *Service) Summarize(ctx context.Context, content string) (string, error) {
	if len(strings.TrimSpace(content)) < minSummarizeContent {
		return "", invalidParams("content must be at least %d characters to summarize", minSummarizeContent)
	}
	prompt, err := Compile(FeatureSummarize, content, Params{})
	if err != nil {
		return "", err
	}
	return s.completer.Complete(ctx, prompt)
}

// Improve is the single-purpose variant of the improve feature.
func (s *Service) Improve(ctx context.Context, content string) (string, error) {
	if len(strings.TrimSpace(content)) < minImproveContent {
		return "", invalidParams("content must be at least %d characters to improve", minImproveContent)
	}
	prompt, err := Compile(FeatureImprove, content, Params{})
	if err != nil {
		return "", err
	}
	return s.completer.Complete(ctx, prompt)
}

// GenerateTags asks the provider for a JSON array of lowercase tags. Parsing
// is best-effort: malformed JSON or a non-array degrades to an empty list,
// not an error. With a noteID and a non-empty result the note's tags are
// replaced wholesale and a history entry (feature "tags") records the tags
// as a comma-joined #tag list.
func (s *Service) GenerateTags(ctx context.Context, userID, noteID, title, content string) ([]string, *note.Note, error) {
	if len(strings.TrimSpace(content)) < minTagsContent {
		return nil, nil, invalidParams("content must be at least %d characters to generate tags", minTagsContent)
	}

	raw, err := s.completer.Complete(ctx, TagPrompt(title, content))
	if err != nil {
		return nil, nil, err
	}
	tags := parseTags(raw)

	if noteID == "" || len(tags) == 0 {
		return tags, nil, nil
	}

	if _, err := s.notes.Update(ctx, userID, noteID, note.Patch{Tags: &tags}); err != nil {
		return nil, nil, err
	}

	joined := make([]string, len(tags))
	for i, t := range tags {
		joined[i] = "#" + t
	}
	n, err := s.notes.AppendHistory(ctx, userID, noteID, note.AIOutput{
		OriginalInput: content,
		Feature:       FeatureTags,
		Output:        strings.Join(joined, ", "),
	})
	if err != nil {
		return nil, nil, err
	}
	return tags, n, nil
}

func validateParams(feature string, p Params) error {
	switch feature {
	case FeatureTranslate:
		if len(strings.TrimSpace(p.Language)) < 2 {
			return invalidParams("Target language is required for translation")
		}
	case FeatureChangeFormat:
		if len(strings.TrimSpace(p.Format)) < 2 {
			return invalidParams("Target format is required for change_format")
		}
	case FeatureAnswerQuestion:
		if len(strings.TrimSpace(p.Question)) < 2 {
			return invalidParams("Question is required for answer_question")
		}
	}
	return nil
}

// parseTags tolerates markdown fences around the array and drops any
// non-string elements.
func parseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var parsed []interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return []string{}
	}
	tags := []string{}
	for _, v := range parsed {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}
