// Command decimate runs the seam-aware quadric decimater over a single OBJ
// mesh from the command line.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/config"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/decimate"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/logger"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/meshdata"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/objio"
	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/seam"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

const usage = `usage: decimate <input.obj> <command> <parameter> [<output.obj>] [options]

commands:
    num-vertices N          target exactly N vertices (after decimation)
    percent-vertices P      target round(P * nV_input / 100) vertices

options:
    --strict <0|1|2>        seam-awareness degree; default 2 (Seamless)
    --preserve-boundaries    add boundary edges to seam set
    --uv-weight <w>          relative UV error weight; default 1.0
    --config <path>          YAML config file; default ./decimate.yaml if present
    --log-level <level>      debug|info|warn|error; default info
    --log-file <path>        also log to this rotating file
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 3 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	inputPath, command, parameterStr := args[0], args[1], args[2]
	rest := args[3:]

	outputPath := ""
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		outputPath = rest[0]
		rest = rest[1:]
	}

	fs := flag.NewFlagSet("decimate", flag.ContinueOnError)
	strict := fs.Int("strict", 2, "seam-awareness degree (0, 1 or 2)")
	preserveBoundaries := fs.Bool("preserve-boundaries", false, "add boundary edges to the seam set")
	uvWeight := fs.Float64("uv-weight", 1.0, "relative UV error weight")
	configPath := fs.String("config", "", "YAML config file")
	logLevel := fs.String("log-level", "", "debug|info|warn|error")
	logFile := fs.String("log-file", "", "also log to this rotating file")
	if err := fs.Parse(rest); err != nil {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	applyFlagOverrides(cfg, fs, strict, preserveBoundaries, uvWeight, logLevel, logFile)

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "error: initializing logger:", err)
		return 1
	}
	defer logger.Sync()

	if err := mainE(inputPath, command, parameterStr, outputPath, cfg); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		return 1
	}
	return 0
}

// applyFlagOverrides copies any flag the user actually set on the command
// line into cfg, which otherwise holds defaults merged with a config file:
// defaults < file < flags.
func applyFlagOverrides(cfg *config.Config, fs *flag.FlagSet, strict *int, preserveBoundaries *bool, uvWeight *float64, logLevel, logFile *string) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strict":
			cfg.Decimation.SeamAwareDegree = *strict
		case "preserve-boundaries":
			cfg.Decimation.PreserveBoundaries = *preserveBoundaries
		case "uv-weight":
			cfg.Decimation.UVWeight = *uvWeight
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-file":
			cfg.Logging.LogFile = *logFile
		}
	})
}

func mainE(inputPath, command, parameterStr, outputPath string, cfg *config.Config) error {
	mesh, err := objio.Load(inputPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", inputPath, err)
	}
	logger.Sugar.Infow("mesh loaded", "path", inputPath, "vertices", len(mesh.V), "faces", len(mesh.F))

	target, err := resolveTarget(command, parameterStr, len(mesh.V))
	if err != nil {
		return err
	}

	degree := decimate.SeamAwareDegree(cfg.Decimation.SeamAwareDegree)
	if degree < decimate.NoUVShapePreserving || degree > decimate.Seamless {
		return fmt.Errorf("--strict must be 0, 1 or 2, got %d", cfg.Decimation.SeamAwareDegree)
	}

	logBoundaryReport(mesh, cfg.Decimation.PreserveBoundaries)

	out, report, err := decimate.Run(mesh, decimate.Options{
		TargetVertices:     target,
		SeamAwareDegree:    degree,
		PreserveBoundaries: cfg.Decimation.PreserveBoundaries,
		UVWeight:           cfg.Decimation.UVWeight,
	})
	if err != nil {
		return err
	}

	if report.Exhausted {
		logger.Warn("decimation stopped: no legal collapse remains",
			zap.Int("vertices_out", report.VerticesOut), zap.Int("target", target))
	}

	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, target, len(mesh.V), report)
	}
	if err := objio.Save(outputPath, out); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	summary := fmt.Sprintf("decimation complete: %d -> %d vertices, max_error=%.6f, output=%s",
		len(mesh.V), len(out.V), report.MaxError, outputPath)
	fmt.Fprintln(os.Stderr, color.GreenString(summary))
	logger.Sugar.Infow("decimation complete",
		"vertices_in", len(mesh.V), "vertices_out", len(out.V),
		"max_error", report.MaxError, "output", outputPath)

	return nil
}

// resolveTarget interprets the command/parameter pair into a target vertex
// count, using round-half-away-from-zero for percent-vertices to match the
// original implementation's lround semantics.
func resolveTarget(command, parameterStr string, nVIn int) (int, error) {
	switch command {
	case "num-vertices":
		n, err := strconv.Atoi(parameterStr)
		if err != nil {
			return 0, fmt.Errorf("num-vertices expects an integer, got %q", parameterStr)
		}
		if n <= 0 {
			return 0, fmt.Errorf("num-vertices must be positive, got %d", n)
		}
		return n, nil

	case "percent-vertices":
		p, err := strconv.ParseFloat(parameterStr, 64)
		if err != nil {
			return 0, fmt.Errorf("percent-vertices expects a number, got %q", parameterStr)
		}
		if p <= 0 {
			return 0, fmt.Errorf("percent-vertices must be positive, got %g", p)
		}
		n := int(math.Round(p * float64(nVIn) / 100))
		if n <= 0 {
			n = 1
		}
		return n, nil

	default:
		return 0, fmt.Errorf("unknown command %q (expected num-vertices or percent-vertices)", command)
	}
}

// defaultOutputPath matches the CLI's documented naming convention. The
// target-exceeds-input case drops the error suffix entirely, following the
// original implementation's distinct naming for that short-circuit path.
func defaultOutputPath(inputPath string, target, nVIn int, report decimate.Report) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if target >= nVIn {
		return fmt.Sprintf("%s-decimated_to_%d_vertices.obj", stem, nVIn)
	}
	return fmt.Sprintf("%s-decimated_to_%d_err_%.6f.obj", stem, report.VerticesOut, report.MaxError)
}

// logBoundaryReport logs seam/boundary/foldover counts before decimation
// starts, mirroring the summary the original libigl-based tool printed.
func logBoundaryReport(m *meshdata.Mesh, preserveBoundaries bool) {
	et, err := meshdata.BuildEdges(m)
	if err != nil {
		return
	}
	classified := seam.Classify(m, et)
	logger.Sugar.Infow("edge classification",
		"seam_edges", len(classified.Seams),
		"boundary_edges", len(classified.Boundaries),
		"foldover_edges", len(classified.Foldovers),
		"preserve_boundaries", preserveBoundaries,
	)
}
