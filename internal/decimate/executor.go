package decimate

import (
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/meshdata"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/quadric"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/seam"
)

// Collapse performs the half-edge collapse res.From -> res.To along edge ei
// and brings every auxiliary structure (mesh tables, edge tables, vertex
// adjacency, quadric store, seam set, priority queue) back into a
// consistent state: steps 2-6 of the collapse executor. Callers are
// responsible for the legality re-check (step 1) before calling Collapse,
// since that step decides whether to call Collapse at all.
func Collapse(
	m *meshdata.Mesh,
	et *meshdata.EdgeTables,
	vf *meshdata.VertexFaces,
	store *quadric.Store,
	seams map[seam.PairKey]bool,
	seamVertices map[int]bool,
	boundaries map[seam.PairKey]bool,
	preserveBoundaries bool,
	q *Queue,
	degree SeamAwareDegree,
	posScale, uvWeight float64,
	ei int,
	res Result,
) {
	vFrom, vTo := res.From, res.To
	e := et.E[ei]

	// Snapshot vFrom's ring neighbors (other than vTo) before any rewrite,
	// used to inherit seam membership onto the vTo side below.
	neighbors := make(map[int]bool)
	for _, f := range vf.Faces(m, vFrom) {
		for c := 0; c < 3; c++ {
			w := m.F[f][c]
			if w != vFrom && w != vTo {
				neighbors[w] = true
			}
		}
	}
	neighborWasSeam := make(map[int]bool, len(neighbors))
	for w := range neighbors {
		neighborWasSeam[w] = seam.HasPair(seams, vFrom, w)
	}

	// 2. Perform the collapse: merge position and UV(s), tombstone the
	// edge's own two incident faces, rewrite vFrom's other incident faces
	// to reference vTo (and the merged UV where applicable).
	m.V[vTo] = res.Placement.Pos

	uvMap := make(map[int]int, len(res.Placement.UVs))
	for _, uvm := range res.Placement.UVs {
		m.TC[uvm.TTo] = uvm.Merged
		uvMap[uvm.TFrom] = uvm.TTo
	}
	// Any other UV vertex vFrom carries that this edge's sides didn't name
	// (a hub vertex touching an unrelated chart) moves to vTo unchanged.
	for _, t := range store.UVsOf(vFrom) {
		if _, named := uvMap[t]; !named {
			uvMap[t] = t
		}
	}

	facesToFix := vf.Faces(m, vFrom)
	fa, fb := e.EF[0], e.EF[1]

	for _, f := range facesToFix {
		if f == fa || f == fb {
			continue
		}
		c := m.CornerOf(f, vFrom)
		if c < 0 {
			continue
		}
		m.F[f][c] = vTo
		if nt, ok := uvMap[m.FT[f][c]]; ok {
			m.FT[f][c] = nt
		}

		// f's two edges incident to this corner still name vFrom in their
		// own V record (BuildEdges set it and nothing else has updated it):
		// slide them onto vTo here so the edge table agrees with the face
		// rewrite just above.
		for _, side := range [2]int{(c + 1) % 3, (c + 2) % 3} {
			eidx := et.CornerEdge(f, side)
			if eidx == meshdata.Null {
				continue
			}
			ev := &et.E[eidx]
			switch vFrom {
			case ev.V[0]:
				ev.V[0] = vTo
			case ev.V[1]:
				ev.V[1] = vTo
			}
		}
	}

	// 3. Update auxiliary edge tables for the two retiring faces before
	// tombstoning them: each collapses its two non-shared edges into one.
	if fa != meshdata.Null {
		collapseFaceEdges(m, et, fa, vFrom, vTo)
	}
	if fb != meshdata.Null {
		collapseFaceEdges(m, et, fb, vFrom, vTo)
	}
	if fa != meshdata.Null {
		m.Tombstone(fa)
	}
	if fb != meshdata.Null {
		m.Tombstone(fb)
	}
	et.E[ei].EF = [2]int{meshdata.Null, meshdata.Null}
	et.E[ei].V = [2]int{meshdata.Null, meshdata.Null}

	vf.Merge(vFrom, vTo)

	// 4. Update the seam set: the collapsed edge is gone, and every ring
	// edge that was a seam now reappears as (vTo, w).
	seam.RemovePair(seams, vFrom, vTo)
	for w, wasSeam := range neighborWasSeam {
		if wasSeam {
			seam.AddPair(seams, vTo, w)
			seamVertices[vTo] = true
			seamVertices[w] = true
		}
	}

	// 5. Fold vFrom's quadrics into vTo's.
	for tFrom, tTo := range uvMap {
		if store.Has(vFrom, tFrom) {
			store.Add(vTo, tTo, store.Get(vFrom, tFrom))
		}
	}

	// 6. Refresh every edge incident to vTo's new ring.
	refreshed := make(map[int]bool)
	for _, f := range vf.Faces(m, vTo) {
		for side := 0; side < 3; side++ {
			eidx := et.CornerEdge(f, side)
			if eidx == meshdata.Null || refreshed[eidx] {
				continue
			}
			ev := et.E[eidx]
			if ev.V[0] != vTo && ev.V[1] != vTo {
				continue
			}
			refreshed[eidx] = true
			r := Evaluate(m, et, vf, store, seams, seamVertices, boundaries, preserveBoundaries, degree, eidx, posScale, uvWeight)
			q.Rekey(eidx, r.Cost)
		}
	}
}

// collapseFaceEdges retires face f's two non-shared edges into one as f is
// tombstoned: the edge between vFrom and f's third vertex disappears, and
// the edge between vTo and that same third vertex absorbs its far side
// (the face on the other side of the vFrom edge).
func collapseFaceEdges(m *meshdata.Mesh, et *meshdata.EdgeTables, f, vFrom, vTo int) {
	cFrom := m.CornerOf(f, vFrom)
	cTo := m.CornerOf(f, vTo)
	if cFrom < 0 || cTo < 0 {
		return
	}

	eFromOpp := et.CornerEdge(f, cTo)   // opposite cTo: edge (vFrom, vOpp)
	eToOpp := et.CornerEdge(f, cFrom)   // opposite cFrom: edge (vTo, vOpp)
	if eFromOpp == meshdata.Null || eToOpp == meshdata.Null || eFromOpp == eToOpp {
		return
	}

	oppFace := et.OppositeFace(eFromOpp, f)

	// Replace f's slot in eToOpp with eFromOpp's far side.
	toOppEdge := &et.E[eToOpp]
	for i, ef := range toOppEdge.EF {
		if ef == f {
			if oppFace == meshdata.Null {
				toOppEdge.EF[i] = meshdata.Null
				toOppEdge.EI[i] = meshdata.Null
			} else {
				fromOppEdge := et.E[eFromOpp]
				var oppCorner int
				if fromOppEdge.EF[0] == oppFace {
					oppCorner = fromOppEdge.EI[0]
				} else {
					oppCorner = fromOppEdge.EI[1]
				}
				toOppEdge.EF[i] = oppFace
				toOppEdge.EI[i] = oppCorner
				et.EMAP[oppFace*3+oppCorner] = eToOpp
			}
			break
		}
	}

	et.E[eFromOpp].EF = [2]int{meshdata.Null, meshdata.Null}
	et.E[eFromOpp].V = [2]int{meshdata.Null, meshdata.Null}
}
