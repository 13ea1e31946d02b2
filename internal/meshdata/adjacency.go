package meshdata

// VertexFaces is an incrementally maintained position-vertex -> incident
// face-index adjacency list. It may accumulate duplicate or stale (now
// tombstoned) entries across collapses; callers iterating Faces always
// filter live, distinct faces, trading a little redundant bookkeeping for
// O(1) updates on collapse instead of rebuilding from scratch.
type VertexFaces struct {
	byVertex map[int][]int
}

// BuildVertexFaces scans every live face once to seed the adjacency list.
func BuildVertexFaces(m *Mesh) *VertexFaces {
	vf := &VertexFaces{byVertex: make(map[int][]int, len(m.V))}
	for f := range m.F {
		if m.IsTombstone(f) {
			continue
		}
		for c := 0; c < 3; c++ {
			v := m.F[f][c]
			vf.byVertex[v] = append(vf.byVertex[v], f)
		}
	}
	return vf
}

// Append records that face f now touches vertex v.
func (vf *VertexFaces) Append(v, f int) {
	vf.byVertex[v] = append(vf.byVertex[v], f)
}

// Faces returns the distinct, currently-live faces incident to v.
func (vf *VertexFaces) Faces(m *Mesh, v int) []int {
	seen := make(map[int]bool, len(vf.byVertex[v]))
	out := make([]int, 0, len(vf.byVertex[v]))
	for _, f := range vf.byVertex[v] {
		if seen[f] || m.IsTombstone(f) {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// Merge folds vFrom's recorded face list into vTo's, used when a collapse
// retires vFrom.
func (vf *VertexFaces) Merge(vFrom, vTo int) {
	vf.byVertex[vTo] = append(vf.byVertex[vTo], vf.byVertex[vFrom]...)
	delete(vf.byVertex, vFrom)
}
