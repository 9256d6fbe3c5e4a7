package htmldiff

// Rendering is the toggleable view of one field's diff. The raw candidate
// is kept verbatim, so toggling to source and back always reproduces the
// original rendering exactly.
type Rendering struct {
	diffed     string
	source     string
	showSource bool
}

// NewRendering diffs baseline against candidate and returns the view in
// diff mode.
func NewRendering(baseline, candidate string) *Rendering {
	return &Rendering{
		diffed: Diff(baseline, candidate),
		source: candidate,
	}
}

// StaticRendering wraps final content with no markers, used after a
// suggestion is accepted and the diff view collapses to plain content.
func StaticRendering(content string) *Rendering {
	return &Rendering{diffed: content, source: content}
}

// Toggle flips between the diff rendering and the raw candidate source.
func (r *Rendering) Toggle() {
	r.showSource = !r.showSource
}

// ShowingSource reports whether the raw candidate is being displayed.
func (r *Rendering) ShowingSource() bool {
	return r.showSource
}

// Current returns the markup to display in the active mode.
func (r *Rendering) Current() string {
	if r.showSource {
		return r.source
	}
	return r.diffed
}
