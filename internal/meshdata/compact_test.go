package meshdata

import "testing"

func TestCompactDropsTombstonesAndUnusedVertices(t *testing.T) {
	m := quadMesh()
	m.Tombstone(1)

	out := Compact(m)

	if len(out.F) != 1 {
		t.Fatalf("expected 1 live face after compaction, got %d", len(out.F))
	}
	if len(out.V) != 3 {
		t.Fatalf("expected 3 referenced position vertices, got %d", len(out.V))
	}
	if len(out.TC) != 3 {
		t.Fatalf("expected 3 referenced UV vertices, got %d", len(out.TC))
	}
	if out.F[0] != ([3]int{0, 1, 2}) {
		t.Errorf("expected remapped face indices 0,1,2, got %v", out.F[0])
	}
}

func TestCompactPreservesVertexPositions(t *testing.T) {
	m := quadMesh()
	m.Tombstone(0)

	out := Compact(m)
	if len(out.V) != 3 {
		t.Fatalf("expected 3 vertices remaining, got %d", len(out.V))
	}
	// Face 1 was {1,3,2}; vertex 3 (1,1,0) must survive with its position
	// intact regardless of the new dense index it's remapped to.
	found := false
	for _, v := range out.V {
		if v.X == 1 && v.Y == 1 && v.Z == 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected vertex (1,1,0) to survive compaction")
	}
}

func TestCompactRoundTripWithInfinity(t *testing.T) {
	m := quadMesh()
	et, err := BuildEdges(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	infPos, _ := AugmentWithInfinity(m, et)

	RemoveInfinityFaces(m, infPos)
	out := Compact(m)

	if len(out.F) != 2 {
		t.Fatalf("expected the original 2 real faces to survive, got %d", len(out.F))
	}
	if len(out.V) != 4 {
		t.Fatalf("expected the infinity vertex to be dropped, leaving 4, got %d", len(out.V))
	}
	if len(out.TC) != 4 {
		t.Fatalf("expected the infinity UV vertex to be dropped, leaving 4, got %d", len(out.TC))
	}
}

func TestCompactEmptyMesh(t *testing.T) {
	m := unitTriangle()
	m.Tombstone(0)

	out := Compact(m)
	if len(out.F) != 0 {
		t.Errorf("expected no faces, got %d", len(out.F))
	}
	if len(out.V) != 0 {
		t.Errorf("expected no vertices, got %d", len(out.V))
	}
}
