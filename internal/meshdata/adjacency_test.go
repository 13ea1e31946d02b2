package meshdata

import "testing"

func TestBuildVertexFacesAndFaces(t *testing.T) {
	m := quadMesh()
	vf := BuildVertexFaces(m)

	f1 := vf.Faces(m, 1)
	if len(f1) != 2 {
		t.Fatalf("expected vertex 1 to touch 2 faces, got %d", len(f1))
	}
	f0 := vf.Faces(m, 0)
	if len(f0) != 1 {
		t.Fatalf("expected vertex 0 to touch 1 face, got %d", len(f0))
	}
}

func TestFacesFiltersTombstones(t *testing.T) {
	m := quadMesh()
	vf := BuildVertexFaces(m)
	m.Tombstone(1)

	f1 := vf.Faces(m, 1)
	if len(f1) != 1 || f1[0] != 0 {
		t.Errorf("expected vertex 1 to report only its remaining live face 0 after tombstoning face 1, got %v", f1)
	}
	f3 := vf.Faces(m, 3)
	if len(f3) != 0 {
		t.Errorf("expected vertex 3 (only in tombstoned face) to report no live faces, got %d", len(f3))
	}
}

func TestMergeCombinesFaceLists(t *testing.T) {
	m := quadMesh()
	vf := BuildVertexFaces(m)

	vf.Merge(0, 1)
	merged := vf.Faces(m, 1)
	if len(merged) != 2 {
		t.Fatalf("expected vertex 1 to inherit vertex 0's face, got %d faces", len(merged))
	}
	if faces := vf.Faces(m, 0); len(faces) != 0 {
		t.Errorf("expected vertex 0's list to be gone after merge, got %v", faces)
	}
}
