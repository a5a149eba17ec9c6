package mask

// Footprint selects the structuring element for a morphological pass.
type Footprint int

const (
	// Cross is the 4-connected (plus-shaped) structuring element.
	Cross Footprint = iota
	// Box is the full 3×3 structuring element.
	Box
)

// offsets returns the neighbour offsets of the footprint, centre excluded.
func (f Footprint) offsets() [][2]int {
	if f == Box {
		return [][2]int{
			{-1, -1}, {0, -1}, {1, -1},
			{-1, 0}, {1, 0},
			{-1, 1}, {0, 1}, {1, 1},
		}
	}
	return [][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
}

// Erode returns the morphological erosion of m: a cell survives only if it
// and all its footprint neighbours are foreground. Neighbours outside the
// grid take the value of borderForeground, so rim pixels touching the image
// border are preserved when borderForeground is true.
func Erode(m *Mask, f Footprint, borderForeground bool) *Mask {
	out := New(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.At(x, y) {
				continue
			}
			keep := true
			for _, d := range f.offsets() {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
					if !borderForeground {
						keep = false
						break
					}
					continue
				}
				if !m.At(nx, ny) {
					keep = false
					break
				}
			}
			out.Set(x, y, keep)
		}
	}
	return out
}

// Dilate returns the morphological dilation of m: a cell becomes foreground
// if it or any footprint neighbour is foreground.
func Dilate(m *Mask, f Footprint) *Mask {
	out := m.Clone()
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.At(x, y) {
				continue
			}
			for _, d := range f.offsets() {
				if m.At(x+d[0], y+d[1]) {
					out.Set(x, y, true)
					break
				}
			}
		}
	}
	return out
}

// Close applies a binary closing (iterations of dilation followed by the
// same number of erosions) with the given footprint. Closing bridges small
// background gaps and smooths the rim before tracing.
func Close(m *Mask, f Footprint, iterations int) *Mask {
	out := m
	for i := 0; i < iterations; i++ {
		out = Dilate(out, f)
	}
	for i := 0; i < iterations; i++ {
		out = Erode(out, f, false)
	}
	return out
}

// FillHoles fills background regions that are not connected to the image
// border, so the mask becomes simply connected. Background connectivity is
// 4-connected, matching the labelling used elsewhere in this package.
func FillHoles(m *Mask) *Mask {
	reach := New(m.W, m.H) // background cells reachable from the border
	var stack [][2]int
	push := func(x, y int) {
		if x < 0 || y < 0 || x >= m.W || y >= m.H {
			return
		}
		if m.At(x, y) || reach.At(x, y) {
			return
		}
		reach.Set(x, y, true)
		stack = append(stack, [2]int{x, y})
	}
	for x := 0; x < m.W; x++ {
		push(x, 0)
		push(x, m.H-1)
	}
	for y := 0; y < m.H; y++ {
		push(0, y)
		push(m.W-1, y)
	}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(c[0]-1, c[1])
		push(c[0]+1, c[1])
		push(c[0], c[1]-1)
		push(c[0], c[1]+1)
	}

	out := New(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			out.Set(x, y, m.At(x, y) || !reach.At(x, y))
		}
	}
	return out
}
