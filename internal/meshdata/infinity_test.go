package meshdata

import (
	"math"
	"testing"
)

func TestAugmentWithInfinityClosesBoundaries(t *testing.T) {
	m := quadMesh()
	et, err := BuildEdges(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boundaryCount := 0
	for _, e := range et.E {
		if e.EF[1] == Null {
			boundaryCount++
		}
	}

	infPos, infUV := AugmentWithInfinity(m, et)

	if infPos != 4 {
		t.Errorf("expected infinity position vertex at index 4, got %d", infPos)
	}
	if infUV != 4 {
		t.Errorf("expected infinity UV vertex at index 4, got %d", infUV)
	}
	if !math.IsInf(m.V[infPos].X, 1) {
		t.Error("expected infinity position vertex to have +Inf coordinates")
	}

	if len(m.F) != 2+boundaryCount {
		t.Errorf("expected %d faces after augmentation, got %d", 2+boundaryCount, len(m.F))
	}

	for _, e := range et.E {
		if e.EF[1] == Null {
			t.Error("every edge should have two incident faces after augmentation")
		}
	}

	virtualFaces := 0
	for f := range m.F {
		if m.IsInfinityFace(f, infPos) {
			virtualFaces++
		}
	}
	if virtualFaces != boundaryCount {
		t.Errorf("expected %d virtual faces, found %d", boundaryCount, virtualFaces)
	}
}

func TestAugmentWithInfinityClosedMeshIsNoOp(t *testing.T) {
	m := unitTriangle()
	// Fold the triangle onto itself reversed so every edge has two faces:
	// cheapest way to build a closed (boundary-free) two-face mesh test
	// fixture without introducing a fourth vertex.
	m.F = append(m.F, [3]int{0, 2, 1})
	m.FT = append(m.FT, [3]int{0, 2, 1})

	et, err := BuildEdges(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nFacesBefore := len(m.F)
	infPos, _ := AugmentWithInfinity(m, et)
	if len(m.F) != nFacesBefore {
		t.Errorf("expected no virtual faces added for a closed mesh, got %d new faces", len(m.F)-nFacesBefore)
	}
	for f := range m.F {
		if m.IsInfinityFace(f, infPos) {
			t.Error("did not expect any infinity faces in a closed mesh")
		}
	}
}

func TestIsInfinityFaceOutOfRange(t *testing.T) {
	m := unitTriangle()
	if m.IsInfinityFace(-1, 0) {
		t.Error("expected false for negative face index")
	}
	if m.IsInfinityFace(99, 0) {
		t.Error("expected false for out-of-range face index")
	}
}
