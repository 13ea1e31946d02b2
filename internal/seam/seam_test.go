package seam

import (
	"testing"

	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/meshdata"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// quadNoSeam is two triangles sharing both position and UV across the
// diagonal: a single UV chart, no atlas cuts.
func quadNoSeam() *meshdata.Mesh {
	return &meshdata.Mesh{
		V: []r3.Vec{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
		},
		TC: []r2.Vec{
			{X: 0, Y: 0}, {X: 1, Y: 0},
			{X: 0, Y: 1}, {X: 1, Y: 1},
		},
		F:  [][3]int{{0, 1, 2}, {1, 3, 2}},
		FT: [][3]int{{0, 1, 2}, {1, 3, 2}},
	}
}

// quadWithSeam is the same position topology, but the second triangle has
// its own disjoint UV chart: the diagonal is a seam.
func quadWithSeam() *meshdata.Mesh {
	return &meshdata.Mesh{
		V: []r3.Vec{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
		},
		TC: []r2.Vec{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, // chart A: verts 0,1,2
			{X: 2, Y: 0}, {X: 3, Y: 1}, {X: 2, Y: 1}, // chart B: verts 1,3,2 (shifted)
		},
		F:  [][3]int{{0, 1, 2}, {1, 3, 2}},
		FT: [][3]int{{0, 1, 2}, {3, 4, 5}},
	}
}

func classified(t *testing.T, m *meshdata.Mesh) (Tables, *meshdata.EdgeTables) {
	t.Helper()
	et, err := meshdata.BuildEdges(m)
	if err != nil {
		t.Fatalf("unexpected error building edges: %v", err)
	}
	return Classify(m, et), et
}

func TestClassifyBoundaries(t *testing.T) {
	tables, _ := classified(t, quadNoSeam())
	if len(tables.Boundaries) != 4 {
		t.Errorf("expected 4 boundary edges, got %d", len(tables.Boundaries))
	}
	if len(tables.Seams) != 0 {
		t.Errorf("expected 0 seams in a single-chart quad, got %d", len(tables.Seams))
	}
	if len(tables.Foldovers) != 0 {
		t.Errorf("expected 0 foldovers in a consistently wound quad, got %d", len(tables.Foldovers))
	}
}

func TestClassifySeamDetected(t *testing.T) {
	tables, _ := classified(t, quadWithSeam())
	if len(tables.Seams) != 1 {
		t.Fatalf("expected 1 seam edge across the two disjoint charts, got %d", len(tables.Seams))
	}
	if len(tables.Boundaries) != 4 {
		t.Errorf("expected 4 boundary edges, got %d", len(tables.Boundaries))
	}
}

func TestClassifyFoldover(t *testing.T) {
	// Same winding direction on both faces across the shared edge (0,1):
	// a manifold mesh would wind the second face with the pair reversed.
	m := &meshdata.Mesh{
		V: []r3.Vec{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
		},
		TC: []r2.Vec{{}, {}, {}, {}},
		F:  [][3]int{{0, 1, 2}, {0, 1, 3}},
		FT: [][3]int{{0, 1, 2}, {0, 1, 3}},
	}
	et, err := meshdata.BuildEdges(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tables := Classify(m, et)
	if len(tables.Foldovers) != 1 {
		t.Fatalf("expected 1 foldover edge, got %d", len(tables.Foldovers))
	}
}

func TestFlatPairsIncludesSeamsAndFoldovers(t *testing.T) {
	m := quadWithSeam()
	tables, _ := classified(t, m)

	pairs := FlatPairs(m, tables, false)
	if !pairs[MakePairKey(1, 2)] && !pairs[MakePairKey(2, 1)] {
		t.Error("expected the diagonal (1,2) seam edge in the flat pair set")
	}
	if len(pairs) != 1 {
		t.Errorf("expected exactly 1 flat pair without boundaries included, got %d", len(pairs))
	}
}

func TestFlatPairsIncludesBoundariesWhenRequested(t *testing.T) {
	m := quadNoSeam()
	tables, _ := classified(t, m)

	withoutBoundaries := FlatPairs(m, tables, false)
	if len(withoutBoundaries) != 0 {
		t.Errorf("expected no flat pairs without boundaries for a seamless quad, got %d", len(withoutBoundaries))
	}

	withBoundaries := FlatPairs(m, tables, true)
	if len(withBoundaries) != 4 {
		t.Errorf("expected 4 flat pairs with boundaries included, got %d", len(withBoundaries))
	}
}

func TestMakePairKeyIsOrderIndependent(t *testing.T) {
	if MakePairKey(3, 7) != MakePairKey(7, 3) {
		t.Error("expected MakePairKey to normalize ordering")
	}
}
