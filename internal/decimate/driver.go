package decimate

import (
	"fmt"
	"math"

	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/logger"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/meshdata"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/quadric"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/seam"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/util"
)

// targetAvgArea normalizes pos_scale so position error and UV error land
// in comparable numeric ranges regardless of the input mesh's own scale.
const targetAvgArea = 1.0

// costTolerance is the slack the lazy legality re-check allows before
// insisting on a re-queue: a cost that drifted up by less than this since
// it was queued is accepted as-is rather than bounced back through the
// queue.
const costTolerance = 1e-9

// Options configures one decimation run.
type Options struct {
	TargetVertices     int
	SeamAwareDegree    SeamAwareDegree
	PreserveBoundaries bool
	UVWeight           float64
}

// Report summarizes the outcome of a Run.
type Report struct {
	VerticesOut int
	MaxError    float64
	// Exhausted is true when the loop stopped because every remaining
	// edge had infinite (forbidden) cost before the target was reached.
	Exhausted bool
}

// Run prepares the mesh tables, decimates input toward opts.TargetVertices,
// and returns a compacted result. input is not modified; Run clones it.
func Run(input *meshdata.Mesh, opts Options) (*meshdata.Mesh, Report, error) {
	if opts.UVWeight <= 0 {
		return nil, Report{}, fmt.Errorf("uv_weight must be positive, got %g", opts.UVWeight)
	}

	m := input.Clone()

	et, err := meshdata.BuildEdges(m)
	if err != nil {
		return nil, Report{}, fmt.Errorf("building edge tables: %w", err)
	}

	// Classify seams/boundaries against the mesh as given: once the
	// infinity trick closes every boundary edge with a virtual face, those
	// edges stop looking like boundaries to the classifier. The resulting
	// flat pair set is keyed purely by position-vertex index, so it stays
	// valid after augmentation appends new vertices and faces.
	classified := seam.Classify(m, et)
	seams := seam.FlatPairs(m, classified, opts.PreserveBoundaries)
	seamVertices := seam.VertexSet(seams)
	boundaries := seam.BoundaryPairs(m, classified)

	// mean face area must be measured before augmentation: the infinity
	// vertex's coordinates are unbounded and would send it to +Inf.
	meanArea := m.MeanArea()
	posScale := 1.0
	if meanArea > 0 {
		posScale = math.Sqrt(targetAvgArea / meanArea)
	}

	infPosIdx, _ := meshdata.AugmentWithInfinity(m, et)

	store := quadric.Build(m, et, infPosIdx, posScale, opts.UVWeight)

	vf := meshdata.BuildVertexFaces(m)

	q := NewQueue()
	for ei := range et.E {
		r := Evaluate(m, et, vf, store, seams, seamVertices, boundaries, opts.PreserveBoundaries, opts.SeamAwareDegree, ei, posScale, opts.UVWeight)
		q.Insert(ei, r.Cost)
	}

	logger.Sugar.Infow("decimation starting",
		"vertices_in", len(input.V),
		"target_vertices", opts.TargetVertices,
		"seam_aware_degree", opts.SeamAwareDegree,
		"uv_weight", opts.UVWeight,
	)

	// The infinity vertex inflates the live count by one; chase the same
	// inflated target so it gets compacted away rather than counted
	// against the user's requested budget.
	effectiveTarget := opts.TargetVertices + 1
	remaining := len(m.V)

	maxError := 0.0
	exhausted := false
	lastRequeueEdge := -1
	lastRequeueCost := math.NaN()

	for remaining > effectiveTarget {
		ei, cost, ok := q.Pop()
		if !ok || cost == Inf {
			exhausted = true
			break
		}

		fresh := Evaluate(m, et, vf, store, seams, seamVertices, boundaries, opts.PreserveBoundaries, opts.SeamAwareDegree, ei, posScale, opts.UVWeight)
		if fresh.Cost > cost+costTolerance {
			if ei == lastRequeueEdge && fresh.Cost == lastRequeueCost {
				util.Assert("edge popped twice without progress", func() bool { return false })
			}
			lastRequeueEdge, lastRequeueCost = ei, fresh.Cost
			q.Insert(ei, fresh.Cost)
			continue
		}

		Collapse(m, et, vf, store, seams, seamVertices, boundaries, opts.PreserveBoundaries, q, opts.SeamAwareDegree, posScale, opts.UVWeight, ei, fresh)
		remaining--
		if fresh.Cost > 0 {
			maxError = math.Max(maxError, math.Sqrt(fresh.Cost)/posScale)
		}
		lastRequeueEdge = -1
		lastRequeueCost = math.NaN()
	}

	meshdata.RemoveInfinityFaces(m, infPosIdx)
	out := meshdata.Compact(m)

	logger.Sugar.Infow("decimation complete",
		"vertices_out", len(out.V),
		"max_error", maxError,
		"exhausted", exhausted,
	)

	return out, Report{VerticesOut: len(out.V), MaxError: maxError, Exhausted: exhausted}, nil
}
