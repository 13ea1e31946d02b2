package meshdata

import "fmt"

// Edge is an unordered pair of position-vertex indices plus its two incident
// face/corner references. EF[i] == Null means that side is a boundary (no
// incident face); EI[i] is the corner opposite this edge within EF[i].
type Edge struct {
	V  [2]int
	EF [2]int
	EI [2]int
}

// EdgeTables holds the auxiliary combinatorial structures built from F:
// E (the edge list), EMAP (corner -> edge index) and, per edge, EF/EI
// (folded into Edge for convenience).
type EdgeTables struct {
	E    []Edge
	EMAP []int // indexed by face*3+side, side in {0,1,2}; grows with F
}

// SideOpposite returns the two corners of the edge opposite corner `side`
// within a triangle, following the libigl convention that edge `side` joins
// corners (side+1)%3 and (side+2)%3.
func SideOpposite(side int) (int, int) {
	return (side + 1) % 3, (side + 2) % 3
}

type vpair struct{ a, b int }

func makeVPair(a, b int) vpair {
	if a > b {
		a, b = b, a
	}
	return vpair{a, b}
}

// BuildEdges constructs E and EMAP from F. The position mesh is assumed
// manifold (at most two faces per edge); a third incidence is reported as an
// error since it cannot be represented by the two-flap EF/EI model.
func BuildEdges(m *Mesh) (*EdgeTables, error) {
	nF := len(m.F)
	emap := make([]int, nF*3)
	for i := range emap {
		emap[i] = Null
	}

	index := make(map[vpair]int)
	edges := make([]Edge, 0, nF*3/2)

	for f := 0; f < nF; f++ {
		if m.IsTombstone(f) {
			continue
		}
		for side := 0; side < 3; side++ {
			c1, c2 := SideOpposite(side)
			v1, v2 := m.F[f][c1], m.F[f][c2]
			key := makeVPair(v1, v2)

			ei, exists := index[key]
			if !exists {
				ei = len(edges)
				edges = append(edges, Edge{
					V:  [2]int{v1, v2},
					EF: [2]int{f, Null},
					EI: [2]int{side, Null},
				})
				index[key] = ei
				emap[f*3+side] = ei
				continue
			}

			e := &edges[ei]
			if e.EF[1] != Null {
				return nil, fmt.Errorf("non-manifold edge between vertices %d and %d: more than two incident faces", key.a, key.b)
			}
			e.EF[1] = f
			e.EI[1] = side
			emap[f*3+side] = ei
		}
	}

	return &EdgeTables{E: edges, EMAP: emap}, nil
}

// CornerEdge returns the edge index opposite corner `side` of face f.
func (t *EdgeTables) CornerEdge(f, side int) int {
	return t.EMAP[f*3+side]
}

// growForFace extends EMAP to cover a newly appended face row, with all
// three corners set to Null, and returns that face's index (used when
// AugmentWithInfinity appends virtual boundary faces after the tables were
// built; the caller wires the corners it needs).
func (t *EdgeTables) growForFace() int {
	f := len(t.EMAP) / 3
	t.EMAP = append(t.EMAP, Null, Null, Null)
	return f
}

// OppositeFace returns the other face sharing edge ei from face f's point of
// view, or Null if f is not incident to ei or ei is a boundary edge.
func (t *EdgeTables) OppositeFace(ei, f int) int {
	e := t.E[ei]
	switch f {
	case e.EF[0]:
		return e.EF[1]
	case e.EF[1]:
		return e.EF[0]
	default:
		return Null
	}
}

// IsBoundary reports whether edge ei has only one incident face.
func (t *EdgeTables) IsBoundary(ei int) bool {
	return t.E[ei].EF[1] == Null
}
