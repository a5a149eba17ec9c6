// Package mask provides dense 2D binary masks and the morphological
// operations used to clean a segmentation slice before contour tracing:
// connected-component labelling, largest-component retention, hole
// filling, binary closing, and erosion.
package mask

// Mask is a dense W×H binary grid. Cells outside the grid read as false.
type Mask struct {
	W, H int
	bits []bool
}

// New returns an all-background mask of the given dimensions.
func New(w, h int) *Mask {
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &Mask{W: w, H: h, bits: make([]bool, w*h)}
}

// At reports whether the cell at (x, y) is foreground.
// Out-of-range coordinates are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

// Set writes the cell at (x, y). Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.bits[y*m.W+x] = v
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	c := New(m.W, m.H)
	copy(c.bits, m.bits)
	return c
}

// Count returns the number of foreground cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Empty reports whether the mask has no foreground cells.
func (m *Mask) Empty() bool {
	return m.Count() == 0
}

// FromRows builds a mask from rows of 0/1 values. All rows must have the
// same length. Intended for tests and small fixtures.
func FromRows(rows [][]int) *Mask {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	m := New(w, h)
	for y, row := range rows {
		for x, v := range row {
			if v != 0 {
				m.Set(x, y, true)
			}
		}
	}
	return m
}
