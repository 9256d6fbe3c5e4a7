// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication: note resolutions feed the pagination
// and selection layers, and user-facing notifications feed the TUI.
package eventbus

import "sync"

// Event identifies an event type on the bus.
type Event string

// Known events.
const (
	EventNoteResolved     Event = "note.resolved"
	EventSelectionChanged Event = "selection.changed"
	EventNotification     Event = "notification.published"
)

// NotifyLevel grades user-facing notifications.
type NotifyLevel int

const (
	LevelInfo NotifyLevel = iota
	LevelWarning
	LevelError
)

// NoteResolvedPayload is emitted when a note-level action removes a note
// from the review view (publish, delete, removal accept/deny, or a bulk
// resolution).
type NoteResolvedPayload struct {
	CommitID int
	NoteID   int64
	Action   string
}

// SelectionChangedPayload is emitted when a commit's bulk selection set
// changes size.
type SelectionChangedPayload struct {
	CommitID int
	Size     int
}

// NotificationPayload is a user-facing message for the TUI toast layer.
type NotificationPayload struct {
	Level   NotifyLevel
	Message string
}

// EventBus dispatches typed events to subscribers. Dispatch is
// synchronous: a publisher's handler chain completes before Publish
// returns, which keeps selection reconciliation ordered with respect to
// the resolution that triggered it.
type EventBus struct {
	mu           sync.RWMutex
	noteResolved []func(NoteResolvedPayload)
	selection    []func(SelectionChangedPayload)
	notification []func(NotificationPayload)
}

// New creates an empty bus.
func New() *EventBus {
	return &EventBus{}
}

// SubscribeNoteResolved registers a handler for note resolutions.
func (b *EventBus) SubscribeNoteResolved(fn func(NoteResolvedPayload)) {
	b.mu.Lock()
	b.noteResolved = append(b.noteResolved, fn)
	b.mu.Unlock()
}

// PublishNoteResolved delivers a note resolution to all subscribers.
func (b *EventBus) PublishNoteResolved(p NoteResolvedPayload) {
	for _, fn := range b.snapshotNoteResolved() {
		fn(p)
	}
}

// SubscribeSelectionChanged registers a handler for selection changes.
func (b *EventBus) SubscribeSelectionChanged(fn func(SelectionChangedPayload)) {
	b.mu.Lock()
	b.selection = append(b.selection, fn)
	b.mu.Unlock()
}

// PublishSelectionChanged delivers a selection change to all subscribers.
func (b *EventBus) PublishSelectionChanged(p SelectionChangedPayload) {
	b.mu.RLock()
	handlers := make([]func(SelectionChangedPayload), len(b.selection))
	copy(handlers, b.selection)
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(p)
	}
}

// SubscribeNotification registers a handler for user-facing messages.
func (b *EventBus) SubscribeNotification(fn func(NotificationPayload)) {
	b.mu.Lock()
	b.notification = append(b.notification, fn)
	b.mu.Unlock()
}

// PublishNotification delivers a message to all subscribers.
func (b *EventBus) PublishNotification(p NotificationPayload) {
	b.mu.RLock()
	handlers := make([]func(NotificationPayload), len(b.notification))
	copy(handlers, b.notification)
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(p)
	}
}

func (b *EventBus) snapshotNoteResolved() []func(NoteResolvedPayload) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	handlers := make([]func(NoteResolvedPayload), len(b.noteResolved))
	copy(handlers, b.noteResolved)
	return handlers
}
