package mask

// Label assigns a positive component ID to every foreground cell using
// 4-connected flood fill. Background cells get 0. Returns the label grid
// (row-major, W×H) and the number of components found. IDs are assigned in
// raster order of each component's first cell, so labelling is
// deterministic.
func Label(m *Mask) ([]int, int) {
	labels := make([]int, m.W*m.H)
	next := 0
	var stack [][2]int
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.At(x, y) || labels[y*m.W+x] != 0 {
				continue
			}
			next++
			labels[y*m.W+x] = next
			stack = append(stack[:0], [2]int{x, y})
			for len(stack) > 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, d := range [][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}} {
					nx, ny := c[0]+d[0], c[1]+d[1]
					if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
						continue
					}
					if m.At(nx, ny) && labels[ny*m.W+nx] == 0 {
						labels[ny*m.W+nx] = next
						stack = append(stack, [2]int{nx, ny})
					}
				}
			}
		}
	}
	return labels, next
}

// KeepLargest returns a mask containing only the largest 4-connected
// foreground component of m. Ties go to the component whose first cell
// comes earlier in raster order. An empty mask is returned unchanged.
func KeepLargest(m *Mask) *Mask {
	labels, n := Label(m)
	if n <= 1 {
		return m.Clone()
	}
	sizes := make([]int, n+1)
	for _, l := range labels {
		if l > 0 {
			sizes[l]++
		}
	}
	biggest := 1
	for l := 2; l <= n; l++ {
		if sizes[l] > sizes[biggest] {
			biggest = l
		}
	}
	out := New(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			out.Set(x, y, labels[y*m.W+x] == biggest)
		}
	}
	return out
}
