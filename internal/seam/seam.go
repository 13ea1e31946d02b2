// Package seam classifies the edges of a dual position/UV mesh as seams,
// boundaries or foldovers, treating the mesh tables purely as input: it
// makes no changes to them.
package seam

import "github.com/FV-ConeLabs/SeamAwareDecimater/internal/meshdata"

// Edge encodes one classified edge by its two incident (face, corner)
// references. Boundary is only meaningful on an edge with a single incident
// face, so FaceB/CornerB are meshdata.Null there.
type Edge struct {
	FaceA, CornerA int
	FaceB, CornerB int
}

// Tables holds the three classified edge sets the driver consumes to build
// its flat seam set (see FlatPairs).
type Tables struct {
	Seams      []Edge
	Boundaries []Edge
	Foldovers  []Edge
}

// Classify inspects every edge in et and sorts it into Seams, Boundaries or
// Foldovers. An edge can be both a seam and a foldover.
func Classify(m *meshdata.Mesh, et *meshdata.EdgeTables) Tables {
	var t Tables

	for _, e := range et.E {
		fa, ca := e.EF[0], e.EI[0]
		if e.EF[1] == meshdata.Null {
			t.Boundaries = append(t.Boundaries, Edge{FaceA: fa, CornerA: ca, FaceB: meshdata.Null, CornerB: meshdata.Null})
			continue
		}

		fb, cb := e.EF[1], e.EI[1]
		isSeam, isFoldover := classifyInterior(m, fa, ca, fb, cb)
		if isSeam {
			t.Seams = append(t.Seams, Edge{FaceA: fa, CornerA: ca, FaceB: fb, CornerB: cb})
		}
		if isFoldover {
			t.Foldovers = append(t.Foldovers, Edge{FaceA: fa, CornerA: ca, FaceB: fb, CornerB: cb})
		}
	}

	return t
}

// classifyInterior compares the UV vertices the two incident faces attach
// to the edge's two position endpoints. A mismatch at either endpoint means
// the UV atlas is cut along this edge (a seam). A foldover is flagged when
// the two faces see the edge's endpoints in the same order instead of the
// reversed order a consistently wound manifold requires.
func classifyInterior(m *meshdata.Mesh, fa, ca, fb, cb int) (isSeam, isFoldover bool) {
	c1a, c2a := meshdata.SideOpposite(ca)
	c1b, c2b := meshdata.SideOpposite(cb)

	va1, va2 := m.F[fa][c1a], m.F[fa][c2a]
	vb1, vb2 := m.F[fb][c1b], m.F[fb][c2b]

	if va1 == vb1 && va2 == vb2 {
		isFoldover = true
	}

	ta1, ta2 := m.FT[fa][c1a], m.FT[fa][c2a]
	tb1, tb2 := m.FT[fb][c1b], m.FT[fb][c2b]

	posToUVA := map[int]int{va1: ta1, va2: ta2}
	posToUVB := map[int]int{vb1: tb1, vb2: tb2}

	for v, uvA := range posToUVA {
		if uvB, ok := posToUVB[v]; ok && uvB != uvA {
			isSeam = true
		}
	}

	return isSeam, isFoldover
}

// PairKey is an unordered pair of position-vertex indices, used as the flat
// seam set's element type.
type PairKey struct{ U, V int }

// MakePairKey normalizes (u, v) so both orderings hash to the same key.
func MakePairKey(u, v int) PairKey {
	if u > v {
		u, v = v, u
	}
	return PairKey{U: u, V: v}
}

// FlatPairs converts the classified tables into one flat set of unordered
// position-vertex pairs: every seam edge, every foldover edge (foldovers are
// treated as seams for cost purposes, since crossing one also breaks atlas
// consistency), and, when includeBoundaries is true, every boundary edge.
func FlatPairs(m *meshdata.Mesh, t Tables, includeBoundaries bool) map[PairKey]bool {
	set := make(map[PairKey]bool)

	addEdge := func(f, c int) {
		c1, c2 := meshdata.SideOpposite(c)
		set[MakePairKey(m.F[f][c1], m.F[f][c2])] = true
	}

	for _, e := range t.Seams {
		addEdge(e.FaceA, e.CornerA)
	}
	for _, e := range t.Foldovers {
		addEdge(e.FaceA, e.CornerA)
	}
	if includeBoundaries {
		for _, e := range t.Boundaries {
			addEdge(e.FaceA, e.CornerA)
		}
	}

	return set
}

// BoundaryPairs flattens just the classified boundary edges into a pair
// set, independent of whether preserve_boundaries is also folding them into
// the general seam set via FlatPairs. Callers that need to tell "this edge
// is a genuine topological boundary" apart from "this edge merely landed in
// the seam set" (the two are conflated once FlatPairs runs with
// includeBoundaries true) use this instead.
func BoundaryPairs(m *meshdata.Mesh, t Tables) map[PairKey]bool {
	set := make(map[PairKey]bool, len(t.Boundaries))
	for _, e := range t.Boundaries {
		c1, c2 := meshdata.SideOpposite(e.CornerA)
		set[MakePairKey(m.F[e.FaceA][c1], m.F[e.FaceA][c2])] = true
	}
	return set
}

// VertexSet flattens a pair set into the set of position-vertex indices
// that participate in at least one pair, letting the oracle test "is v a
// seam vertex" in O(1).
func VertexSet(pairs map[PairKey]bool) map[int]bool {
	set := make(map[int]bool)
	for p := range pairs {
		set[p.U] = true
		set[p.V] = true
	}
	return set
}

// AddPair inserts the unordered pair (u, v) into an existing pair set.
func AddPair(pairs map[PairKey]bool, u, v int) {
	pairs[MakePairKey(u, v)] = true
}

// RemovePair removes the unordered pair (u, v) from an existing pair set.
func RemovePair(pairs map[PairKey]bool, u, v int) {
	delete(pairs, MakePairKey(u, v))
}

// HasPair reports whether (u, v) is present in the pair set.
func HasPair(pairs map[PairKey]bool, u, v int) bool {
	return pairs[MakePairKey(u, v)]
}
