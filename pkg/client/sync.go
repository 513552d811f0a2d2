package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// SaveState is the autosave state machine: idle -> saving -> saved -> idle.
// Failures fall straight back to idle; they are reported through OnNotify,
// not held as state.
type SaveState string

const (
	StateIdle   SaveState = "idle"
	StateSaving SaveState = "saving"
	StateSaved  SaveState = "saved"
)

// ErrContentTooShort is returned when an AI run is requested against a plain
// text below the minimum operation length.
var ErrContentTooShort = errors.New("note content too short for AI operation")

const minRunLength = 5

// API is the slice of the notes API the sync controller drives. *Client
// satisfies it.
type API interface {
	GetNote(ctx context.Context, id string) (*Note, error)
	UpdateNote(ctx context.Context, id string, patch NotePatch) (*Note, error)
	AppendAIOutput(ctx context.Context, id, originalInput, feature, output string) (*Note, error)
	Process(ctx context.Context, req ProcessRequest) (string, error)
	GenerateTags(ctx context.Context, title, content string) ([]string, error)
}

// SyncOptions tunes the controller's timers. Zero values take the defaults.
type SyncOptions struct {
	Debounce  time.Duration // quiet period before an autosave fires
	SavedHold time.Duration // how long "saved" is shown before reverting to idle
}

// SyncController keeps one open note consistent with the server: it mirrors
// the editable title/content, debounces autosave, and sequences AI operations
// so their note-level side effects land before the history append. At most
// one save is in flight; edits during a save are flushed afterwards.
type SyncController struct {
	api  API
	opts SyncOptions

	// TextFunc supplies the editor's current plain-text projection. When nil
	// the content mirror is used as-is.
	TextFunc func() string

	// Optional observers; invoked outside the controller's lock.
	OnState   func(SaveState)
	OnNotify  func(msg string)
	OnHistory func(entry AIOutput)

	mu           sync.Mutex
	noteID       string
	note         *Note
	title        string
	content      string
	dirty        bool
	seedTitle    bool // first title population after load doesn't autosave
	seedContent  bool
	state        SaveState
	saving       bool
	pendingSave  bool
	timer        *time.Timer
}

func NewSyncController(api API, opts SyncOptions) *SyncController {
	if opts.Debounce <= 0 {
		opts.Debounce = 1500 * time.Millisecond
	}
	if opts.SavedHold <= 0 {
		opts.SavedHold = 900 * time.Millisecond
	}
	return &SyncController{api: api, opts: opts, state: StateIdle}
}

// Load fetches the note and seeds the local mirrors. The immediately
// following editor population must not trigger an autosave.
func (c *SyncController) Load(ctx context.Context, id string) (*Note, error) {
	n, err := c.api.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.noteID = id
	c.note = n
	c.title = n.Title
	c.content = n.Content
	c.dirty = false
	c.seedTitle = true
	c.seedContent = true
	c.saving = false
	c.pendingSave = false
	c.state = StateIdle
	c.mu.Unlock()

	c.emitState(StateIdle)
	return n, nil
}

// SetTitle records a title edit and (re)starts the debounce timer.
func (c *SyncController) SetTitle(title string) {
	c.mu.Lock()
	c.title = title
	if c.seedTitle {
		c.seedTitle = false
		c.mu.Unlock()
		return
	}
	c.markDirtyLocked()
	c.mu.Unlock()
}

// SetContent records a content edit and (re)starts the debounce timer.
func (c *SyncController) SetContent(content string) {
	c.mu.Lock()
	c.content = content
	if c.seedContent {
		c.seedContent = false
		c.mu.Unlock()
		return
	}
	c.markDirtyLocked()
	c.mu.Unlock()
}

func (c *SyncController) markDirtyLocked() {
	c.dirty = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.opts.Debounce, c.flush)
}

// flush performs one autosave cycle carrying the final title/content of the
// quiet period. If a save is already in flight the cycle is queued behind it.
func (c *SyncController) flush() {
	c.mu.Lock()
	if c.saving {
		c.pendingSave = true
		c.mu.Unlock()
		return
	}
	if !c.dirty || c.noteID == "" {
		c.mu.Unlock()
		return
	}
	c.saving = true
	c.dirty = false
	c.state = StateSaving
	id := c.noteID
	title := c.title
	content := c.content
	c.mu.Unlock()

	c.emitState(StateSaving)

	updated, err := c.api.UpdateNote(context.Background(), id, NotePatch{Title: &title, Content: &content})

	c.mu.Lock()
	c.saving = false
	rerun := c.pendingSave || c.dirty
	c.pendingSave = false
	if err != nil {
		c.state = StateIdle
		c.mu.Unlock()
		c.emitState(StateIdle)
		c.notify("Failed to save note")
	} else {
		c.mergeLocked(updated)
		c.state = StateSaved
		c.mu.Unlock()
		c.emitState(StateSaved)
		time.AfterFunc(c.opts.SavedHold, func() {
			c.mu.Lock()
			revert := c.state == StateSaved
			if revert {
				c.state = StateIdle
			}
			c.mu.Unlock()
			if revert {
				c.emitState(StateIdle)
			}
		})
	}
	if rerun {
		// edits arrived while saving; give them their own quiet period
		c.mu.Lock()
		c.dirty = true
		c.markDirtyLocked()
		c.mu.Unlock()
	}
}

// mergeLocked folds a server note into local state without regressing
// unsaved local edits to title/content.
func (c *SyncController) mergeLocked(n *Note) {
	if n == nil {
		return
	}
	n.normalize()
	c.note = n
	if !c.dirty {
		c.title = n.Title
		c.content = n.Content
	}
}

func (c *SyncController) plainText() string {
	if c.TextFunc != nil {
		return c.TextFunc()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

// RunFeature executes one AI operation against the editor's current plain
// text. Sequencing is strict: the completion response arrives first, then the
// summary fold (set for summarize, cleared for everything else), then the
// history append, so history reflects the same state the fold produced. The
// returned history entry is merged locally without a refetch.
func (c *SyncController) RunFeature(ctx context.Context, feature string, req ProcessRequest) (string, error) {
	text := strings.TrimSpace(c.plainText())
	if len(text) < minRunLength {
		return "", ErrContentTooShort
	}

	c.mu.Lock()
	id := c.noteID
	c.mu.Unlock()

	req.Feature = feature
	req.Content = text
	output, err := c.api.Process(ctx, req)
	if err != nil {
		c.notify(apiMessage(err, "Failed to process content"))
		return "", err
	}
	if output == "" {
		return "", nil
	}

	summary := ""
	if feature == "summarize" {
		summary = output
	}
	updated, err := c.api.UpdateNote(ctx, id, NotePatch{Summary: &summary})
	if err != nil {
		c.notify(apiMessage(err, "Failed to update note"))
		return output, err
	}
	c.mu.Lock()
	c.mergeLocked(updated)
	c.mu.Unlock()

	if err := c.appendHistory(ctx, id, text, feature, output); err != nil {
		return output, err
	}
	return output, nil
}

// GenerateTags asks the server for tags against the current text, replaces
// the note's tags wholesale and records a history entry. An empty tag result
// is a quiet no-op.
func (c *SyncController) GenerateTags(ctx context.Context) ([]string, error) {
	text := strings.TrimSpace(c.plainText())
	if len(text) < minRunLength {
		return nil, ErrContentTooShort
	}

	c.mu.Lock()
	id := c.noteID
	title := c.title
	c.mu.Unlock()

	tags, err := c.api.GenerateTags(ctx, title, text)
	if err != nil {
		c.notify(apiMessage(err, "Failed to generate tags"))
		return nil, err
	}
	if len(tags) == 0 {
		return tags, nil
	}

	updated, err := c.api.UpdateNote(ctx, id, NotePatch{Tags: &tags})
	if err != nil {
		c.notify(apiMessage(err, "Failed to update note"))
		return tags, err
	}
	c.mu.Lock()
	c.mergeLocked(updated)
	c.mu.Unlock()

	joined := make([]string, len(tags))
	for i, t := range tags {
		joined[i] = "#" + t
	}
	if err := c.appendHistory(ctx, id, text, "tags", strings.Join(joined, ", ")); err != nil {
		return tags, err
	}
	return tags, nil
}

func (c *SyncController) appendHistory(ctx context.Context, id, input, feature, output string) error {
	n, err := c.api.AppendAIOutput(ctx, id, input, feature, output)
	if err != nil {
		c.notify(apiMessage(err, "Failed to record AI output"))
		return err
	}
	c.mu.Lock()
	c.mergeLocked(n)
	c.mu.Unlock()
	if c.OnHistory != nil && len(n.AIOutputs) > 0 {
		c.OnHistory(n.AIOutputs[0])
	}
	return nil
}

// State reports the current autosave state.
func (c *SyncController) State() SaveState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Title returns the local title mirror.
func (c *SyncController) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

// Content returns the local content mirror.
func (c *SyncController) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

// Note returns the last server note merged into local state.
func (c *SyncController) Note() *Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.note
}

func (c *SyncController) emitState(s SaveState) {
	if c.OnState != nil {
		c.OnState(s)
	}
}

func (c *SyncController) notify(msg string) {
	if c.OnNotify != nil {
		c.OnNotify(msg)
	}
}

func apiMessage(err error, fallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
