// Package views renders Hearth's screens: the story list, the character and
// scenario libraries, a single story, settings and the log viewer.
package views

import "github.com/charmbracelet/x/ansi"

// Cursor tracks a selection in a scrolling list of count items, of which
// visible fit on screen at once
type Cursor struct {
	index   int
	offset  int
	count   int
	visible int
}

// Index returns the selected position
func (c *Cursor) Index() int {
	return c.index
}

// Offset returns the first visible position
func (c *Cursor) Offset() int {
	return c.offset
}

// SetCount updates the number of items and clamps the selection
func (c *Cursor) SetCount(n int) {
	c.count = n
	c.Set(c.index)
}

// SetVisible updates how many items fit on screen
func (c *Cursor) SetVisible(n int) {
	c.visible = max(1, n)
	c.ensureVisible()
}

// Set moves the selection to i, clamped to the list
func (c *Cursor) Set(i int) {
	c.index = max(0, min(i, c.count-1))
	c.ensureVisible()
}

// Move moves the selection by delta
func (c *Cursor) Move(delta int) {
	c.Set(c.index + delta)
}

// Top selects the first item
func (c *Cursor) Top() {
	c.Set(0)
}

// Bottom selects the last item
func (c *Cursor) Bottom() {
	c.Set(c.count - 1)
}

// Window returns the visible range [start, end)
func (c *Cursor) Window() (start, end int) {
	return c.offset, min(c.offset+max(1, c.visible), c.count)
}

func (c *Cursor) ensureVisible() {
	visible := max(1, c.visible)
	if c.index < c.offset {
		c.offset = c.index
	}
	if c.index >= c.offset+visible {
		c.offset = c.index - visible + 1
	}
	c.offset = max(0, min(c.offset, c.count-visible))
}

// truncate shortens s to width cells, ANSI aware
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
