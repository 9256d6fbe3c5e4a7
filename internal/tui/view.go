package tui

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/glamour"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/deck"
	"github.com/deckrev/deckrev/internal/core/eventbus"
	"github.com/deckrev/deckrev/internal/core/htmldiff"
	"github.com/deckrev/deckrev/internal/core/media"
	"github.com/deckrev/deckrev/internal/core/review"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("failed to load commit %d: %v", m.commitID, m.err)) + "\n\npress q to quit"
	}
	if m.editing != nil {
		return m.editing.form.View()
	}
	if m.showRationale {
		return m.rationaleView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

// rationaleView renders the commit's rationale markdown full screen.
func (m *Model) rationaleView() string {
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	rendered := m.rationale
	if r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(width)); err == nil {
		if out, err := r.Render(m.rationale); err == nil {
			rendered = out
		}
	}
	return headerStyle.Render(fmt.Sprintf("commit %d rationale", m.commitID)) + "\n" +
		rendered + "\n" +
		dimStyle.Render("press R to return")
}

func (m *Model) headerView() string {
	st := m.pager.State()
	header := headerStyle.Render(fmt.Sprintf("commit %d", m.commitID))
	progress := dimStyle.Render(fmt.Sprintf("%d/%d notes loaded", st.Loaded, st.Total))
	sel := ""
	if m.selectionSize > 0 {
		sel = selectedBadge + dimStyle.Render(fmt.Sprintf(" %d", m.selectionSize))
	}
	loading := ""
	if m.loading {
		loading = warnStyle.Render(" fetching...")
	}
	return fmt.Sprintf("%s  %s  %s%s", header, progress, sel, loading)
}

func (m *Model) footerView() string {
	if m.confirm != nil {
		return warnStyle.Render(fmt.Sprintf("bulk %s %d selected notes? (y/n)", m.confirm.action, m.selectionSize))
	}

	help := dimStyle.Render("j/k notes  h/l items  a/d accept/deny  t source  space select  B/X bulk  e edit  i media  m more  q quit")
	if m.toast == "" {
		return help
	}

	style := okStyle
	switch m.toastLevel {
	case eventbus.LevelWarning:
		style = warnStyle
	case eventbus.LevelError:
		style = errStyle
	}
	return style.Render(m.toast) + "\n" + help
}

// refresh re-renders the note list into the viewport and keeps the
// focused card visible.
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	notes := m.session.Notes()
	if len(notes) == 0 {
		m.viewport.SetContent(dimStyle.Render("no notes left in this commit"))
		return
	}

	var (
		cards      []string
		cursorLine int
		lineCount  int
	)
	for i, note := range notes {
		card := m.renderNote(note, i == m.cursor)
		if i == m.cursor {
			cursorLine = lineCount
		}
		lineCount += strings.Count(card, "\n") + 1
		cards = append(cards, card)
	}

	m.viewport.SetContent(strings.Join(cards, "\n"))
	if cursorLine < m.viewport.YOffset || cursorLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursorLine)
	}
}

// noteIndexAtLine maps a content line back to the note card covering it.
// Used when a restoration target is gone and only the scroll offset
// remains.
func (m *Model) noteIndexAtLine(line int) int {
	notes := m.session.Notes()
	lineCount := 0
	for i, note := range notes {
		card := m.renderNote(note, false)
		lineCount += strings.Count(card, "\n") + 1
		if line < lineCount {
			return i
		}
	}
	if len(notes) == 0 {
		return 0
	}
	return len(notes) - 1
}

func (m *Model) renderNote(note deck.Note, focused bool) string {
	items := noteItems(note)
	focusKey := deck.ItemKey{}
	if focused && m.itemCursor < len(items) {
		focusKey = items[m.itemCursor].key
	}

	var b strings.Builder
	b.WriteString(m.noteTitle(note))
	b.WriteString("\n")

	for _, f := range note.Fields {
		b.WriteString(m.renderField(f, focused, focusKey))
	}
	if line := m.renderTags(note, focused, focusKey); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if note.MoveReq != nil {
		b.WriteString(m.renderMove(note, focused, focusKey))
	}
	if line := m.renderNoteControl(note, focused, focusKey); line != "" {
		b.WriteString(line)
	}
	if lines := m.renderMedia(note); lines != "" {
		b.WriteString(lines)
	}

	style := cardStyle
	if focused {
		style = cardFocusStyle
	}
	width := m.width - 4
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) noteTitle(note deck.Note) string {
	title := headerStyle.Render(fmt.Sprintf("note %d", note.ID))
	var badges []string
	if m.selected[note.ID] {
		badges = append(badges, selectedBadge)
	}
	if note.DeleteReq {
		badges = append(badges, deleteReqBadge)
	}
	if !note.Reviewed {
		badges = append(badges, newNoteBadge)
	}
	if reason := m.app.Selection.FailureReason(m.commitID, note.ID); reason != "" {
		badges = append(badges, errStyle.Render("[failed: "+reason+"]"))
	}
	if m.bulkFlash[note.ID] {
		if m.bulkFlashAction == api.BulkDeny {
			badges = append(badges, deniedBadge)
		} else {
			badges = append(badges, acceptedBadge)
		}
	}
	if len(badges) == 0 {
		return title
	}
	return title + " " + strings.Join(badges, " ")
}

func (m *Model) renderField(f deck.Field, focused bool, focusKey deck.ItemKey) string {
	name := f.Name
	if f.Inherited {
		name += dimStyle.Render(" (inherited)")
	}
	if f.Protected {
		name += dimStyle.Render(" (protected)")
	}

	if f.Suggestion == nil {
		if f.Baseline == "" {
			return ""
		}
		return fmt.Sprintf("%s: %s\n", dimStyle.Render(name), flatten(f.Baseline))
	}

	key := deck.ItemKey{Kind: deck.ItemField, ID: f.Suggestion.ID}
	label := name
	if focused && key == focusKey {
		label = itemFocusStyle.Render("> " + name)
	}

	rendering, ok := m.renderings[f.Suggestion.ID]
	if !ok {
		rendering = htmldiff.NewRendering(f.Baseline, f.Suggestion.Content)
	}

	var body string
	if rendering.ShowingSource() {
		body = dimStyle.Render(rendering.Current())
	} else {
		body = renderDiff(rendering.Current())
	}

	return fmt.Sprintf("%s: %s %s\n", label, body, m.statusBadge(key))
}

func (m *Model) renderTags(note deck.Note, focused bool, focusKey deck.ItemKey) string {
	if len(note.Tags) == 0 {
		return ""
	}

	var parts []string
	for _, t := range note.Tags {
		if t.Class == deck.TagReviewed && m.isHiddenTag(t.Content) {
			continue
		}
		text := t.Content
		if m.isOptionalTag(t.Content) {
			text += dimStyle.Render(" (optional)")
		}
		switch t.Class {
		case deck.TagNew:
			text = insStyle.Render("+" + text)
		case deck.TagRemoved:
			text = delStyle.Render("-" + text)
		default:
			text = dimStyle.Render(text)
		}
		if t.Class != deck.TagReviewed {
			key := deck.ItemKey{Kind: deck.ItemTag, ID: t.ID}
			if focused && key == focusKey {
				text = itemFocusStyle.Render(">") + text
			}
			text += m.statusBadge(key)
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return ""
	}
	return "tags: " + strings.Join(parts, " ")
}

func (m *Model) renderMove(note deck.Note, focused bool, focusKey deck.ItemKey) string {
	key := deck.ItemKey{Kind: deck.ItemMove, ID: note.MoveReq.ID}
	line := fmt.Sprintf("move to %s", note.MoveReq.TargetPath)
	if focused && key == focusKey {
		line = itemFocusStyle.Render("> " + line)
	}
	return line + " " + m.statusBadge(key) + "\n"
}

// renderNoteControl shows the whole-note action when one applies: accept
// or deny a removal request, or publish/reject a never-published note.
func (m *Model) renderNoteControl(note deck.Note, focused bool, focusKey deck.ItemKey) string {
	var key deck.ItemKey
	var line string
	switch {
	case note.DeleteReq:
		key = deck.ItemKey{Kind: deck.ItemNoteRemovalAccept, ID: note.ID}
		line = "removal requested: a removes the note, d keeps it"
	case !note.Reviewed:
		key = deck.ItemKey{Kind: deck.ItemNotePublish, ID: note.ID}
		line = "new note: a publishes, d rejects"
	default:
		return ""
	}

	if focused && key == focusKey {
		line = itemFocusStyle.Render("> " + line)
	} else {
		line = warnStyle.Render(line)
	}
	return line + " " + m.statusBadge(key) + "\n"
}

func (m *Model) renderMedia(note deck.Note) string {
	elements := m.noteMedia(note)
	if len(elements) == 0 {
		return ""
	}

	var b strings.Builder
	for _, el := range elements {
		current, ok := m.app.Media.Element(el.ID)
		if !ok {
			continue
		}
		switch current.State {
		case media.StateResolved:
			fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("media "+current.Filename+":"), current.URL)
		case media.StateResolving:
			fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("media "+current.Filename+":"), pendingBadge)
		case media.StateFailed:
			fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("media "+current.Filename+":"), errStyle.Render("unavailable"))
		default:
			fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("media "+current.Filename+":"), dimStyle.Render("press i to resolve"))
		}
	}
	return b.String()
}

func (m *Model) statusBadge(key deck.ItemKey) string {
	machine := m.session.Machine()
	switch machine.Status(key) {
	case review.StatusPending:
		return pendingBadge
	case review.StatusAccepted:
		return acceptedBadge
	case review.StatusDenied:
		return deniedBadge
	default:
		if reason := machine.FailReason(key); reason != "" {
			return errStyle.Render("[" + reason + "]")
		}
		return ""
	}
}

func (m *Model) isOptionalTag(content string) bool {
	for _, prefix := range m.app.Config.Review.OptionalTagPrefixes {
		if strings.HasPrefix(content, prefix) {
			return true
		}
	}
	return false
}

// isHiddenTag matches reviewed tags against the configured glob patterns.
// Invalid patterns are rejected at config load, so match errors cannot
// occur here.
func (m *Model) isHiddenTag(content string) bool {
	for _, pattern := range m.app.Config.Review.HiddenTagGlobs {
		if ok, _ := doublestar.Match(pattern, content); ok {
			return true
		}
	}
	return false
}
