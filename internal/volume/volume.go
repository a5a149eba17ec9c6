// Package volume holds dense 3D binary volumes assembled from image slice
// stacks and provides slicing along any axis, mirroring the "dimension"
// argument of the batch tool.
package volume

import (
	"fmt"

	"github.com/banshee-data/contour.report/internal/mask"
)

// Volume is a dense NX×NY×NZ binary grid.
type Volume struct {
	NX, NY, NZ int
	data       []bool
}

// New returns an all-background volume of the given extents.
func New(nx, ny, nz int) *Volume {
	if nx < 0 || ny < 0 || nz < 0 {
		nx, ny, nz = 0, 0, 0
	}
	return &Volume{NX: nx, NY: ny, NZ: nz, data: make([]bool, nx*ny*nz)}
}

// At reports the voxel at (x, y, z). Out-of-range voxels are background.
func (v *Volume) At(x, y, z int) bool {
	if x < 0 || y < 0 || z < 0 || x >= v.NX || y >= v.NY || z >= v.NZ {
		return false
	}
	return v.data[(z*v.NY+y)*v.NX+x]
}

// Set writes the voxel at (x, y, z). Out-of-range voxels are ignored.
func (v *Volume) Set(x, y, z int, b bool) {
	if x < 0 || y < 0 || z < 0 || x >= v.NX || y >= v.NY || z >= v.NZ {
		return
	}
	v.data[(z*v.NY+y)*v.NX+x] = b
}

// Dim returns the extent along axis 0 (X), 1 (Y) or 2 (Z).
func (v *Volume) Dim(d int) (int, error) {
	switch d {
	case 0:
		return v.NX, nil
	case 1:
		return v.NY, nil
	case 2:
		return v.NZ, nil
	}
	return 0, fmt.Errorf("volume: invalid dimension %d", d)
}

// Slice extracts the 2D mask at position idx along axis dim. The two
// remaining axes map, in axis order, to the mask's X and Y: slicing along
// Z gives an (X, Y) mask, along Y an (X, Z) mask, along X a (Y, Z) mask.
func (v *Volume) Slice(dim, idx int) (*mask.Mask, error) {
	n, err := v.Dim(dim)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= n {
		return nil, fmt.Errorf("volume: slice %d out of range [0,%d) along dimension %d", idx, n, dim)
	}
	var m *mask.Mask
	switch dim {
	case 0:
		m = mask.New(v.NY, v.NZ)
		for z := 0; z < v.NZ; z++ {
			for y := 0; y < v.NY; y++ {
				m.Set(y, z, v.At(idx, y, z))
			}
		}
	case 1:
		m = mask.New(v.NX, v.NZ)
		for z := 0; z < v.NZ; z++ {
			for x := 0; x < v.NX; x++ {
				m.Set(x, z, v.At(x, idx, z))
			}
		}
	case 2:
		m = mask.New(v.NX, v.NY)
		for y := 0; y < v.NY; y++ {
			for x := 0; x < v.NX; x++ {
				m.Set(x, y, v.At(x, y, idx))
			}
		}
	}
	return m, nil
}
