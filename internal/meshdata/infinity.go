package meshdata

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// AugmentWithInfinity appends one position vertex and one UV vertex "at
// infinity", then closes every boundary edge with a virtual face connecting
// its two endpoints to the infinity vertex. The infinity vertex is always
// the third corner (index 2) of a virtual face, so callers can recognize
// these faces by position alone once infPosIdx is known.
//
// This gives every boundary edge a second incident face. The quadric
// builder recognizes these virtual faces and, for each one, adds a finite
// "wall" plane through the boundary edge (see quadric.Build), so moving a
// boundary vertex away from its boundary edge adds a finite cost.
func AugmentWithInfinity(m *Mesh, edges *EdgeTables) (infPosIdx, infUVIdx int) {
	infPosIdx = len(m.V)
	infUVIdx = len(m.TC)
	m.V = append(m.V, r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)})
	m.TC = append(m.TC, r2.Vec{X: math.Inf(1), Y: math.Inf(1)})

	for ei := range edges.E {
		e := &edges.E[ei]
		if e.EF[1] != Null {
			continue
		}

		fOpp := e.EF[0]
		side := e.EI[0]
		c1, c2 := SideOpposite(side)
		v1, v2 := m.F[fOpp][c1], m.F[fOpp][c2]
		t1, t2 := m.FT[fOpp][c1], m.FT[fOpp][c2]

		fi := edges.growForFace()
		// Reverse v1/v2 so the virtual face's winding is consistent with
		// fOpp's outward orientation across the shared boundary edge. The
		// infinity vertex always sits at corner 2, so the real (v2,v1)
		// edge is the one opposite corner 2.
		m.F = append(m.F, [3]int{v2, v1, infPosIdx})
		m.FT = append(m.FT, [3]int{t2, t1, infUVIdx})

		edges.EMAP[fi*3+0] = Null
		edges.EMAP[fi*3+1] = Null
		edges.EMAP[fi*3+2] = ei

		e.EF[1] = fi
		e.EI[1] = 2
	}

	return infPosIdx, infUVIdx
}

// IsInfinityFace reports whether face f is a virtual boundary-closing face
// introduced by AugmentWithInfinity.
func (m *Mesh) IsInfinityFace(f, infPosIdx int) bool {
	if f < 0 || f >= len(m.F) {
		return false
	}
	return m.F[f][0] == infPosIdx || m.F[f][1] == infPosIdx || m.F[f][2] == infPosIdx
}
