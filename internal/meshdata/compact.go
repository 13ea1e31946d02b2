package meshdata

// Compact drops tombstoned faces and any position/UV vertex no longer
// referenced by a live face, remapping all surviving indices to a dense
// 0..n-1 range. It returns a fresh Mesh; the infinity vertices introduced by
// AugmentWithInfinity are dropped automatically since only their virtual
// faces reference them, and those faces are tombstoned before the final
// pass runs.
func Compact(m *Mesh) *Mesh {
	newFaceIdx := make([]int, 0, len(m.F))
	for f := range m.F {
		if !m.IsTombstone(f) {
			newFaceIdx = append(newFaceIdx, f)
		}
	}

	vUsed := make(map[int]int)
	tUsed := make(map[int]int)
	out := &Mesh{
		F:  make([][3]int, len(newFaceIdx)),
		FT: make([][3]int, len(newFaceIdx)),
	}

	for newF, oldF := range newFaceIdx {
		for c := 0; c < 3; c++ {
			ov := m.F[oldF][c]
			nv, ok := vUsed[ov]
			if !ok {
				nv = len(vUsed)
				vUsed[ov] = nv
				out.V = append(out.V, m.V[ov])
			}
			out.F[newF][c] = nv

			ot := m.FT[oldF][c]
			nt, ok := tUsed[ot]
			if !ok {
				nt = len(tUsed)
				tUsed[ot] = nt
				out.TC = append(out.TC, m.TC[ot])
			}
			out.FT[newF][c] = nt
		}
	}

	return out
}

// RemoveInfinityFaces tombstones every virtual boundary-closing face so a
// subsequent Compact drops both the virtual faces and the infinity vertices
// they alone reference.
func RemoveInfinityFaces(m *Mesh, infPosIdx int) {
	for f := range m.F {
		if m.IsInfinityFace(f, infPosIdx) {
			m.Tombstone(f)
		}
	}
}
