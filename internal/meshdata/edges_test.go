package meshdata

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBuildEdgesQuad(t *testing.T) {
	m := quadMesh()
	et, err := BuildEdges(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(et.E) != 5 {
		t.Fatalf("expected 5 edges for a two-triangle quad, got %d", len(et.E))
	}

	boundary, interior := 0, 0
	for _, e := range et.E {
		if e.EF[1] == Null {
			boundary++
		} else {
			interior++
		}
	}
	if boundary != 4 {
		t.Errorf("expected 4 boundary edges, got %d", boundary)
	}
	if interior != 1 {
		t.Errorf("expected 1 interior (diagonal) edge, got %d", interior)
	}
}

func TestBuildEdgesSharedDiagonal(t *testing.T) {
	m := quadMesh()
	et, err := BuildEdges(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var diag *Edge
	for i := range et.E {
		e := &et.E[i]
		if (e.V[0] == 1 && e.V[1] == 2) || (e.V[0] == 2 && e.V[1] == 1) {
			diag = e
		}
	}
	if diag == nil {
		t.Fatal("expected to find the diagonal edge between vertices 1 and 2")
	}
	if diag.EF[0] != 0 || diag.EF[1] != 1 {
		t.Errorf("expected diagonal edge incident to faces 0 and 1, got %v", diag.EF)
	}
}

func TestOppositeFaceAndIsBoundary(t *testing.T) {
	m := quadMesh()
	et, err := BuildEdges(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	diagEI := et.CornerEdge(0, 0)
	if et.IsBoundary(diagEI) {
		t.Error("diagonal edge should not be a boundary edge")
	}
	if got := et.OppositeFace(diagEI, 0); got != 1 {
		t.Errorf("OppositeFace(diag, 0) = %d, want 1", got)
	}
	if got := et.OppositeFace(diagEI, 1); got != 0 {
		t.Errorf("OppositeFace(diag, 1) = %d, want 0", got)
	}
	if got := et.OppositeFace(diagEI, 5); got != Null {
		t.Errorf("OppositeFace for an uninvolved face = %d, want Null", got)
	}
}

func TestBuildEdgesSkipsTombstones(t *testing.T) {
	m := quadMesh()
	m.Tombstone(1)

	et, err := BuildEdges(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range et.E {
		if e.EF[0] == 1 || e.EF[1] == 1 {
			t.Error("tombstoned face 1 should not appear in any edge's EF")
		}
	}
}

func TestBuildEdgesNonManifold(t *testing.T) {
	// Three triangles fanned around the same (0,1) edge is non-manifold:
	// that edge would need a third EF slot the two-flap model can't hold.
	m := &Mesh{
		V: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: -1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		TC: []r2.Vec{{}, {}, {}, {}, {}},
		F: [][3]int{
			{0, 1, 2},
			{1, 0, 3},
			{0, 1, 4},
		},
		FT: [][3]int{
			{0, 1, 2},
			{1, 0, 3},
			{0, 1, 4},
		},
	}

	if _, err := BuildEdges(m); err == nil {
		t.Fatal("expected an error for a non-manifold edge, got nil")
	}
}
