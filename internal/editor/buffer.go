package editor

// Selection is a byte range into the buffer text, start inclusive, end
// exclusive.
type Selection struct {
	Start int
	End   int
}

// Buffer is the mirrored code state behind the editor widget. The only
// mutation entry points are SetText (mirroring user edits), Append, and
// ReplaceRange; nothing else in the program touches the text.
type Buffer struct {
	text string
	sel  *Selection
}

// NewBuffer creates a buffer with initial text.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

// Text returns the full buffer contents.
func (b *Buffer) Text() string {
	return b.text
}

// SetText replaces the contents wholesale, mirroring an edit made in the
// editor widget. Any selection is invalidated.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.sel = nil
}

// Select marks a byte range. Reversed or out-of-range bounds are normalized.
func (b *Buffer) Select(start, end int) {
	if start > end {
		start, end = end, start
	}
	s := clamp(start, 0, len(b.text))
	e := clamp(end, 0, len(b.text))
	b.sel = &Selection{Start: s, End: e}
}

// ClearSelection drops the active selection.
func (b *Buffer) ClearSelection() {
	b.sel = nil
}

// Selection returns the active selection, if any.
func (b *Buffer) Selection() (Selection, bool) {
	if b.sel == nil {
		return Selection{}, false
	}
	return *b.sel, true
}

// SelectedText returns the selected text, or the full buffer when nothing is
// selected.
func (b *Buffer) SelectedText() string {
	if b.sel == nil {
		return b.text
	}
	return b.text[b.sel.Start:b.sel.End]
}

// ReplaceRange is the single edit operation AI results are applied through.
// With a selection it replaces exactly that range; without one it replaces
// the entire buffer.
func (b *Buffer) ReplaceRange(text string, sel *Selection) {
	if sel == nil {
		b.text = text
	} else {
		start := clamp(sel.Start, 0, len(b.text))
		end := clamp(sel.End, start, len(b.text))
		b.text = b.text[:start] + text + b.text[end:]
	}
	b.sel = nil
}

// Append concatenates text to the end of the buffer.
func (b *Buffer) Append(text string) {
	b.text += text
	b.sel = nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
