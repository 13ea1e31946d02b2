// Package meshdata holds the in-memory dual position/UV mesh tables and the
// half-edge-ish auxiliary tables (edges, EMAP, EF, EI) the decimater mutates
// in place during collapse.
package meshdata

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Null is the tombstone sentinel written into all three corners of a
// collapsed face, and into an edge's endpoints and face references once a
// collapse retires it.
const Null = -1

// Mesh is the dual position/UV triangle mesh. F and FT have the same shape:
// corner i of face f in F corresponds to corner i of face f in FT.
type Mesh struct {
	V  []r3.Vec // position vertices, indexed 0..len(V)-1
	TC []r2.Vec // UV vertices, indexed 0..len(TC)-1
	F  [][3]int // triangle -> position vertex indices
	FT [][3]int // triangle -> UV vertex indices
}

// NumFaces returns the number of triangle rows, tombstoned or not.
func (m *Mesh) NumFaces() int { return len(m.F) }

// IsTombstone reports whether face f has been collapsed away.
func (m *Mesh) IsTombstone(f int) bool {
	return m.F[f][0] == Null
}

// Tombstone marks face f as collapsed: all corners, in both F and FT, are
// set to the null sentinel. Tombstoning rather than physically deleting a
// row keeps face indices (and therefore EF/EMAP) stable across the run.
func (m *Mesh) Tombstone(f int) {
	m.F[f] = [3]int{Null, Null, Null}
	m.FT[f] = [3]int{Null, Null, Null}
}

// CornerOf returns the corner index (0, 1 or 2) of vertex v within face f's
// position row, or -1 if v does not appear in f.
func (m *Mesh) CornerOf(f, v int) int {
	for i := 0; i < 3; i++ {
		if m.F[f][i] == v {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the mesh tables.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		V:  make([]r3.Vec, len(m.V)),
		TC: make([]r2.Vec, len(m.TC)),
		F:  make([][3]int, len(m.F)),
		FT: make([][3]int, len(m.FT)),
	}
	copy(out.V, m.V)
	copy(out.TC, m.TC)
	copy(out.F, m.F)
	copy(out.FT, m.FT)
	return out
}

// TriangleArea returns the area of face f's position triangle using the
// cross-product formula; tombstoned faces report zero.
func (m *Mesh) TriangleArea(f int) float64 {
	if m.IsTombstone(f) {
		return 0
	}
	a, b, c := m.V[m.F[f][0]], m.V[m.F[f][1]], m.V[m.F[f][2]]
	e1 := r3.Sub(b, a)
	e2 := r3.Sub(c, a)
	return 0.5 * r3.Norm(r3.Cross(e1, e2))
}

// TriangleNormal returns the (non-normalized) normal of face f's position
// triangle, i.e. cross(e1, e2), zero for a degenerate triangle.
func (m *Mesh) TriangleNormal(f int) r3.Vec {
	a, b, c := m.V[m.F[f][0]], m.V[m.F[f][1]], m.V[m.F[f][2]]
	e1 := r3.Sub(b, a)
	e2 := r3.Sub(c, a)
	return r3.Cross(e1, e2)
}

// MeanArea returns the mean triangle area across live faces, or 0 if there
// are none.
func (m *Mesh) MeanArea() float64 {
	total := 0.0
	n := 0
	for f := range m.F {
		if m.IsTombstone(f) {
			continue
		}
		total += m.TriangleArea(f)
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
