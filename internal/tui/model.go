// Package tui is the interactive review view: one commit's notes with
// word-level diffs, per-item accept/deny, bulk selection, media
// resolution, and the multi-field edit panel.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/deck"
	"github.com/deckrev/deckrev/internal/core/editpanel"
	"github.com/deckrev/deckrev/internal/core/eventbus"
	"github.com/deckrev/deckrev/internal/core/htmldiff"
	"github.com/deckrev/deckrev/internal/core/logging"
	"github.com/deckrev/deckrev/internal/core/media"
	"github.com/deckrev/deckrev/internal/core/pagination"
	"github.com/deckrev/deckrev/internal/core/review"
	"github.com/deckrev/deckrev/internal/deckrev"
)

const (
	toastLifetime = 4 * time.Second

	// bulkFlashDuration is how long a resolved note keeps its
	// confirmation badge before the card leaves the view.
	bulkFlashDuration = time.Second
)

// item is one actionable control within a note card.
type item struct {
	key   deck.ItemKey
	label string
}

type editState struct {
	form      *huh.Form
	values    []string
	positions []int
}

type confirmState struct {
	action api.BulkAction
}

// Model is the bubbletea model for one commit review session.
type Model struct {
	app      *deckrev.App
	commitID int

	session *review.Session
	pager   *pagination.Controller
	panel   *editpanel.Panel

	viewport viewport.Model
	keys     keyMap
	width    int
	height   int
	ready    bool

	cursor     int
	itemCursor int

	// renderings caches the diff view per suggestion so source toggles
	// survive re-renders.
	renderings map[int64]*htmldiff.Rendering

	selected      map[int64]bool
	selectionSize int

	// bulkFlash marks notes resolved by a bulk action that are still
	// showing their confirmation badge.
	bulkFlash       map[int64]bool
	bulkFlashAction api.BulkAction

	confirm *confirmState
	editing *editState

	toast      string
	toastLevel eventbus.NotifyLevel
	toastSetAt time.Time

	events chan tea.Msg
	log    zerolog.Logger

	rationale     string
	showRationale bool

	loading bool
	err     error
}

// SetRationale attaches the commit's rationale markdown, shown on demand.
func (m *Model) SetRationale(markdown string) {
	m.rationale = markdown
}

// NewModel builds the review model and wires it to the engine's event
// bus. Bus handlers only forward into the program's message loop; all
// model mutation happens in Update.
func NewModel(app *deckrev.App, commitID int) *Model {
	session := review.NewSession(commitID, app.Config.Failsafe(), app.Bus)

	m := &Model{
		app:        app,
		commitID:   commitID,
		session:    session,
		pager:      pagination.NewController(app.Client, session, app.Config.Review.PageSize),
		panel:      editpanel.NewPanel(app.Client),
		keys:       defaultKeyMap(),
		renderings: make(map[int64]*htmldiff.Rendering),
		selected:   make(map[int64]bool),
		bulkFlash:  make(map[int64]bool),
		events:     make(chan tea.Msg, 64),
		log:        logging.Component("tui"),
		loading:    true,
	}

	app.Bus.SubscribeNoteResolved(func(p eventbus.NoteResolvedPayload) {
		post(m.events, busEventMsg{noteResolved: &p})
	})
	app.Bus.SubscribeSelectionChanged(func(p eventbus.SelectionChangedPayload) {
		post(m.events, busEventMsg{selection: &p})
	})
	app.Bus.SubscribeNotification(func(p eventbus.NotificationPayload) {
		post(m.events, busEventMsg{notification: &p})
	})

	return m
}

// post forwards without blocking; a full buffer drops the event rather
// than deadlocking a publisher inside Update.
func post(ch chan tea.Msg, msg tea.Msg) {
	select {
	case ch <- msg:
	default:
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd(), m.waitEvent(), tickCmd())
}

func (m *Model) waitEvent() tea.Cmd {
	return func() tea.Msg { return <-m.events }
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// initCmd loads the first page and attempts snapshot restoration.
func (m *Model) initCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		snap, haveSnap, err := m.app.Snapshots.Take(ctx, m.commitID, time.Now())
		if err != nil {
			m.log.Warn().Err(err).Msg("snapshot load failed")
			haveSnap = false
		}

		if _, err := m.pager.LoadMore(ctx); err != nil {
			return initDoneMsg{err: err}
		}

		found := false
		if haveSnap {
			if found, err = m.pager.RestoreTarget(ctx, snap); err != nil {
				m.log.Warn().Err(err).Msg("restoration fetch failed")
			}
		}

		if err := m.app.Selection.Reconcile(ctx, m.commitID, m.session.NoteIDs()); err != nil {
			m.log.Warn().Err(err).Msg("selection reconcile failed")
		}

		return initDoneMsg{snap: snap, haveSnap: haveSnap, foundNote: found}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chrome := 4 // header, footer, toast, padding
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
		m.refresh()
		return m, nil

	case tickMsg:
		if reset := m.session.SweepStale(time.Now()); len(reset) > 0 {
			m.setToast("action timed out, control re-enabled", eventbus.LevelWarning)
			m.refresh()
		}
		if m.toast != "" && time.Since(m.toastSetAt) > toastLifetime {
			m.toast = ""
		}
		return m, tickCmd()

	case busEventMsg:
		return m.handleBusEvent(msg)

	case initDoneMsg:
		return m.handleInitDone(msg)

	case pageLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setToast(msg.err.Error(), eventbus.LevelError)
			return m, nil
		}
		m.setToast(fmt.Sprintf("loaded %d notes", msg.added), eventbus.LevelInfo)
		m.afterNotesLoaded()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.session.ApplyFailure(msg.key, msg.token, actionErrReason(msg.err))
			m.setToast(actionErrReason(msg.err), eventbus.LevelError)
		} else if err := m.session.ApplySuccess(msg.key, msg.token, msg.accepted); err != nil {
			m.log.Warn().Err(err).Stringer("item", msg.key).Msg("apply failed")
		}
		m.refresh()
		return m, nil

	case bulkDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.setToast(msg.err.Error(), eventbus.LevelError)
			m.refresh()
			return m, nil
		}
		m.setToast(fmt.Sprintf("%d resolved, %d failed", len(msg.result.Succeeded), len(msg.result.Failed)), eventbus.LevelInfo)
		if len(msg.result.Succeeded) == 0 {
			m.refresh()
			return m, nil
		}
		// Resolved cards keep a confirmation badge briefly before they
		// leave the view.
		for _, id := range msg.result.Succeeded {
			m.bulkFlash[id] = true
		}
		m.bulkFlashAction = msg.action
		m.refresh()
		ids, action := msg.result.Succeeded, msg.action
		return m, tea.Tick(bulkFlashDuration, func(time.Time) tea.Msg {
			return bulkFlashMsg{ids: ids, action: action}
		})

	case bulkFlashMsg:
		for _, id := range msg.ids {
			delete(m.bulkFlash, id)
			m.session.RemoveNote(id, "bulk-"+string(msg.action))
		}
		m.refresh()
		return m, nil

	case editOpenedMsg:
		if msg.err != nil {
			m.setToast(msg.err.Error(), eventbus.LevelError)
			return m, nil
		}
		return m, m.buildEditForm()

	case editSavedMsg:
		if msg.err != nil {
			m.setToast(msg.err.Error(), eventbus.LevelError)
			m.editing = nil
			return m, nil
		}
		m.editing = nil
		m.setToast("suggestions updated, reloading", eventbus.LevelInfo)
		return m, m.reloadCmd()

	case mediaResolvedMsg:
		if msg.err != nil {
			m.setToast(msg.err.Error(), eventbus.LevelError)
		}
		m.refresh()
		return m, nil
	}

	if m.editing != nil {
		return m.updateEditing(msg)
	}
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleBusEvent(msg busEventMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.noteResolved != nil:
		p := msg.noteResolved
		m.pager.OnNoteResolved()
		if err := m.app.Selection.Remove(context.Background(), m.commitID, p.NoteID); err != nil {
			m.log.Warn().Err(err).Int64("note", p.NoteID).Msg("selection prune failed")
		}
		delete(m.selected, p.NoteID)
		m.clampCursor()
		m.refresh()
	case msg.selection != nil:
		m.selectionSize = msg.selection.Size
	case msg.notification != nil:
		m.setToast(msg.notification.Message, msg.notification.Level)
	}
	return m, m.waitEvent()
}

func (m *Model) handleInitDone(msg initDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}

	m.syncSelection()
	m.afterNotesLoaded()

	if msg.haveSnap {
		if msg.foundNote {
			if idx := m.noteIndex(msg.snap.TargetNoteID); idx >= 0 {
				m.cursor = idx
			}
			m.refresh()
		} else {
			// Target gone: fall back to the remembered scroll offset.
			// Move the cursor to the note at that line first so the next
			// refresh does not snap the viewport back to the top.
			m.cursor = m.noteIndexAtLine(msg.snap.ScrollPosition)
			m.itemCursor = 0
			m.refresh()
			m.viewport.SetYOffset(msg.snap.ScrollPosition)
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	notes := m.session.Notes()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Sequence(m.saveSnapshotCmd(), tea.Quit)

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(notes)-1 {
			m.cursor++
			m.itemCursor = 0
			m.refresh()
		} else if m.pager.State().HasMore() {
			return m, m.loadMoreCmd()
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.itemCursor = 0
			m.refresh()
		}

	case key.Matches(msg, m.keys.NextItem):
		if items := m.currentItems(); len(items) > 0 {
			m.itemCursor = (m.itemCursor + 1) % len(items)
			m.refresh()
		}

	case key.Matches(msg, m.keys.PrevItem):
		if items := m.currentItems(); len(items) > 0 {
			m.itemCursor = (m.itemCursor - 1 + len(items)) % len(items)
			m.refresh()
		}

	case key.Matches(msg, m.keys.Accept):
		return m, m.beginAction(true)

	case key.Matches(msg, m.keys.Deny):
		return m, m.beginAction(false)

	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.currentItem(); ok && it.key.Kind == deck.ItemField {
			if r, exists := m.renderings[it.key.ID]; exists {
				r.Toggle()
				m.refresh()
			}
		}

	case key.Matches(msg, m.keys.Select):
		if note, ok := m.currentNote(); ok {
			on, err := m.app.Selection.Toggle(context.Background(), m.commitID, note.ID)
			if err != nil {
				m.setToast(err.Error(), eventbus.LevelError)
			} else {
				m.selected[note.ID] = on
				m.refresh()
			}
		}

	case key.Matches(msg, m.keys.SelectAll):
		if err := m.app.Selection.SelectAll(context.Background(), m.commitID, m.session.NoteIDs()); err != nil {
			m.setToast(err.Error(), eventbus.LevelError)
		} else {
			m.syncSelection()
			m.refresh()
		}

	case key.Matches(msg, m.keys.SelectNone):
		if err := m.app.Selection.Clear(context.Background(), m.commitID); err != nil {
			m.setToast(err.Error(), eventbus.LevelError)
		} else {
			m.selected = make(map[int64]bool)
			m.refresh()
		}

	case key.Matches(msg, m.keys.BulkOK), key.Matches(msg, m.keys.BulkDeny):
		if m.selectionSize == 0 {
			m.setToast("nothing selected", eventbus.LevelWarning)
			return m, nil
		}
		action := api.BulkApprove
		if key.Matches(msg, m.keys.BulkDeny) {
			action = api.BulkDeny
		}
		m.confirm = &confirmState{action: action}

	case key.Matches(msg, m.keys.Edit):
		if note, ok := m.currentNote(); ok {
			return m, m.openEditCmd(note.ID)
		}

	case key.Matches(msg, m.keys.Media):
		return m, m.resolveMediaCmds()

	case key.Matches(msg, m.keys.LoadMore):
		if m.pager.State().HasMore() {
			return m, m.loadMoreCmd()
		}
		m.setToast("all notes loaded", eventbus.LevelInfo)

	case key.Matches(msg, m.keys.Rationale):
		if m.rationale != "" {
			m.showRationale = !m.showRationale
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	action := m.confirm.action
	m.confirm = nil
	if keyMsg.String() == "y" {
		m.loading = true
		return m, m.bulkCmd(action)
	}
	m.setToast("bulk action cancelled", eventbus.LevelInfo)
	return m, nil
}

func (m *Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.panel.Cancel()
		m.editing = nil
		return m, nil
	}

	form, cmd := m.editing.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.editing.form = f
	}

	switch m.editing.form.State {
	case huh.StateCompleted:
		for i, pos := range m.editing.positions {
			if err := m.panel.SetContent(pos, m.editing.values[i]); err != nil {
				m.log.Warn().Err(err).Int("position", pos).Msg("edit rejected")
			}
		}
		return m, m.saveEditCmd()
	case huh.StateAborted:
		m.panel.Cancel()
		m.editing = nil
	}
	return m, cmd
}

// beginAction starts an accept/deny on the focused item. The pending
// guard makes repeat presses no-ops until the action settles.
func (m *Model) beginAction(accept bool) tea.Cmd {
	it, ok := m.currentItem()
	if !ok {
		return nil
	}

	token, started, err := m.session.Begin(it.key, time.Now())
	if err != nil {
		m.setToast(err.Error(), eventbus.LevelError)
		return nil
	}
	if !started {
		return nil
	}
	m.refresh()
	return m.resolveCmd(it, accept, token)
}

func (m *Model) resolveCmd(it item, accept bool, token uint64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch it.key.Kind {
		case deck.ItemField, deck.ItemTag, deck.ItemMove:
			err = m.app.Client.ResolveSuggestion(ctx, it.key, accept)
		case deck.ItemNotePublish:
			// Denying a first publish deletes the never-published note.
			kind := deck.ItemNotePublish
			if !accept {
				kind = deck.ItemNoteDelete
			}
			err = m.app.Client.ResolveNote(ctx, kind, it.key.ID)
		case deck.ItemNoteRemovalAccept:
			kind := deck.ItemNoteRemovalAccept
			if !accept {
				kind = deck.ItemNoteRemovalDeny
			}
			err = m.app.Client.ResolveNote(ctx, kind, it.key.ID)
		}
		return actionDoneMsg{key: it.key, token: token, accepted: accept, err: err}
	}
}

func (m *Model) loadMoreCmd() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		added, err := m.pager.LoadMore(context.Background())
		return pageLoadedMsg{added: added, err: err}
	}
}

func (m *Model) bulkCmd(action api.BulkAction) tea.Cmd {
	return func() tea.Msg {
		result, err := m.app.Bulk.Submit(context.Background(), m.commitID, action)
		return bulkDoneMsg{action: action, result: result, err: err}
	}
}

func (m *Model) openEditCmd(noteID int64) tea.Cmd {
	return func() tea.Msg {
		return editOpenedMsg{err: m.panel.Open(context.Background(), noteID, m.commitID)}
	}
}

func (m *Model) saveEditCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.panel.Save(context.Background())
		return editSavedMsg{err: err}
	}
}

// buildEditForm turns the open panel session into a huh form, one text
// area per editable field. Inherited fields are not shown; they cannot
// change.
func (m *Model) buildEditForm() tea.Cmd {
	fields := m.panel.Fields()

	var (
		inputs    []huh.Field
		values    []string
		positions []int
	)
	for _, f := range fields {
		if f.Inherited {
			continue
		}
		values = append(values, f.Content())
		positions = append(positions, f.Position)
	}
	for i := range values {
		idx := i
		inputs = append(inputs, huh.NewText().
			Title(fields[indexOfPosition(fields, positions[idx])].Name).
			Value(&values[idx]))
	}

	form := huh.NewForm(huh.NewGroup(inputs...))
	m.editing = &editState{form: form, values: values, positions: positions}
	return form.Init()
}

func indexOfPosition(fields []editpanel.Field, position int) int {
	for i, f := range fields {
		if f.Position == position {
			return i
		}
	}
	return 0
}

// resolveMediaCmds kicks off resolution for every unresolved media
// element of the focused note.
func (m *Model) resolveMediaCmds() tea.Cmd {
	note, ok := m.currentNote()
	if !ok {
		return nil
	}

	var cmds []tea.Cmd
	for _, el := range m.noteMedia(note) {
		current, known := m.app.Media.Element(el.ID)
		if !known || current.State != media.StateUnresolved {
			continue
		}
		id := el.ID
		cmds = append(cmds, func() tea.Msg {
			_, err := m.app.Media.Resolve(context.Background(), id)
			return mediaResolvedMsg{id: id, err: err}
		})
	}
	if len(cmds) == 0 {
		m.setToast("no unresolved media on this note", eventbus.LevelInfo)
		return nil
	}
	return tea.Batch(cmds...)
}

// reloadCmd tears the view down and refetches from scratch, preserving
// position through a restoration snapshot. Used after batch edits, which
// invalidate every rendered diff.
func (m *Model) reloadCmd() tea.Cmd {
	snap := m.snapshot()
	m.session = review.NewSession(m.commitID, m.app.Config.Failsafe(), m.app.Bus)
	m.pager = pagination.NewController(m.app.Client, m.session, m.app.Config.Review.PageSize)
	m.renderings = make(map[int64]*htmldiff.Rendering)
	m.cursor = 0
	m.itemCursor = 0
	m.loading = true

	return func() tea.Msg {
		if err := m.app.Snapshots.Save(context.Background(), snap); err != nil {
			m.log.Warn().Err(err).Msg("snapshot save failed")
		}
		return m.initCmd()()
	}
}

func (m *Model) snapshot() pagination.Snapshot {
	var target int64
	if note, ok := m.currentNote(); ok {
		target = note.ID
	}
	return pagination.Snapshot{
		CommitID:       m.commitID,
		ScrollPosition: m.viewport.YOffset,
		TargetNoteID:   target,
		LoadedCount:    m.pager.State().Loaded,
		Timestamp:      time.Now(),
	}
}

func (m *Model) saveSnapshotCmd() tea.Cmd {
	snap := m.snapshot()
	return func() tea.Msg {
		if err := m.app.Snapshots.Save(context.Background(), snap); err != nil {
			m.log.Warn().Err(err).Msg("snapshot save failed")
		}
		return nil
	}
}

// afterNotesLoaded refreshes caches that depend on the loaded note set.
func (m *Model) afterNotesLoaded() {
	for _, note := range m.session.Notes() {
		for _, f := range note.Fields {
			if f.Suggestion == nil {
				continue
			}
			if _, exists := m.renderings[f.Suggestion.ID]; !exists {
				m.renderings[f.Suggestion.ID] = htmldiff.NewRendering(f.Baseline, f.Suggestion.Content)
			}
		}
		m.app.Media.Register(m.noteMedia(note))
	}
	m.clampCursor()
	m.refresh()
}

// noteMedia extracts the media elements of a note's displayed content.
func (m *Model) noteMedia(note deck.Note) []media.Element {
	var combined string
	for _, f := range note.Fields {
		if f.Suggestion != nil {
			combined += f.Suggestion.Content
		} else {
			combined += f.Baseline
		}
		combined += "\n"
	}
	return media.ExtractElements(combined, "note", note.ID)
}

func (m *Model) syncSelection() {
	ids, err := m.app.Selection.Get(context.Background(), m.commitID)
	if err != nil {
		m.log.Warn().Err(err).Msg("selection load failed")
		return
	}
	m.selected = make(map[int64]bool, len(ids))
	for _, id := range ids {
		m.selected[id] = true
	}
	m.selectionSize = len(ids)
}

func (m *Model) currentNote() (deck.Note, bool) {
	notes := m.session.Notes()
	if m.cursor < 0 || m.cursor >= len(notes) {
		return deck.Note{}, false
	}
	return notes[m.cursor], true
}

func (m *Model) currentItems() []item {
	note, ok := m.currentNote()
	if !ok {
		return nil
	}
	return noteItems(note)
}

func (m *Model) currentItem() (item, bool) {
	items := m.currentItems()
	if len(items) == 0 || m.itemCursor >= len(items) {
		return item{}, false
	}
	return items[m.itemCursor], true
}

func (m *Model) noteIndex(noteID int64) int {
	for i, n := range m.session.Notes() {
		if n.ID == noteID {
			return i
		}
	}
	return -1
}

func (m *Model) clampCursor() {
	count := len(m.session.Notes())
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if items := m.currentItems(); m.itemCursor >= len(items) {
		m.itemCursor = 0
	}
}

func (m *Model) setToast(message string, level eventbus.NotifyLevel) {
	m.toast = message
	m.toastLevel = level
	m.toastSetAt = time.Now()
}

// noteItems enumerates the actionable controls of a note in display
// order: field suggestions, tag proposals, the move request, then the
// note-level control.
func noteItems(n deck.Note) []item {
	var items []item
	for _, f := range n.Fields {
		if f.Suggestion != nil {
			items = append(items, item{
				key:   deck.ItemKey{Kind: deck.ItemField, ID: f.Suggestion.ID},
				label: f.Name,
			})
		}
	}
	for _, t := range n.Tags {
		if t.Class == deck.TagNew || t.Class == deck.TagRemoved {
			items = append(items, item{
				key:   deck.ItemKey{Kind: deck.ItemTag, ID: t.ID},
				label: t.Content,
			})
		}
	}
	if n.MoveReq != nil {
		items = append(items, item{
			key:   deck.ItemKey{Kind: deck.ItemMove, ID: n.MoveReq.ID},
			label: n.MoveReq.TargetPath,
		})
	}
	switch {
	case n.DeleteReq:
		items = append(items, item{
			key:   deck.ItemKey{Kind: deck.ItemNoteRemovalAccept, ID: n.ID},
			label: "note removal",
		})
	case !n.Reviewed:
		items = append(items, item{
			key:   deck.ItemKey{Kind: deck.ItemNotePublish, ID: n.ID},
			label: "publish note",
		})
	}
	return items
}

func actionErrReason(err error) string {
	switch {
	case err == nil:
		return ""
	case api.IsNetworkFailure(err):
		return "network failure, try again"
	default:
		return err.Error()
	}
}
