// Package objio reads and writes the Wavefront OBJ subset the decimater
// needs: position (v), texture coordinate (vt), and face (f) records. Vertex
// normals are read if present and discarded; the writer never emits them.
package objio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/FV-ConeLabs/SeamAwareDecimater/internal/meshdata"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// faceCorner holds the 0-indexed position and texture-coordinate indices
// parsed from one "f" record field; a normal index, if present, is ignored.
type faceCorner struct {
	v, vt int
}

// Load parses an OBJ file into a Mesh. Every face record must name a
// texture coordinate for each corner; the seam-aware quadric has nothing
// meaningful to measure without one.
func Load(path string) (*meshdata.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses OBJ records from r. See Load.
func Decode(r io.Reader) (*meshdata.Mesh, error) {
	m := &meshdata.Mesh{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing vertex: %w", lineNo, err)
			}
			m.V = append(m.V, v)

		case "vt":
			uv, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing texture coordinate: %w", lineNo, err)
			}
			m.TC = append(m.TC, uv)

		case "f":
			face, faceT, err := parseFace(fields[1:], len(m.V), len(m.TC))
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing face: %w", lineNo, err)
			}
			m.F = append(m.F, face)
			m.FT = append(m.FT, faceT)

		default:
			// vn, o, g, mtllib, usemtl, s, and anything else: not part of
			// the mesh tables this package builds.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if len(m.F) == 0 {
		return nil, fmt.Errorf("no face records found")
	}
	return m, nil
}

func parseVec3(fields []string) (r3.Vec, error) {
	if len(fields) < 3 {
		return r3.Vec{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return r3.Vec{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return r3.Vec{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Vec{X: x, Y: y, Z: z}, nil
}

func parseVec2(fields []string) (r2.Vec, error) {
	if len(fields) < 2 {
		return r2.Vec{}, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return r2.Vec{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return r2.Vec{}, err
	}
	return r2.Vec{X: x, Y: y}, nil
}

// parseFace parses exactly 3 "v/vt[/vn]" fields (the decimater only ever
// sees triangulated input) into 0-indexed position and UV corner triples.
// Negative (relative) indices are resolved against the counts seen so far.
func parseFace(fields []string, nV, nT int) (face, faceT [3]int, err error) {
	if len(fields) != 3 {
		return face, faceT, fmt.Errorf("expected a triangulated face (3 corners), got %d", len(fields))
	}
	for i, field := range fields {
		c, parseErr := parseFaceCorner(field, nV, nT)
		if parseErr != nil {
			return face, faceT, parseErr
		}
		face[i] = c.v
		faceT[i] = c.vt
	}
	return face, faceT, nil
}

func parseFaceCorner(field string, nV, nT int) (faceCorner, error) {
	parts := strings.Split(field, "/")
	if len(parts) < 2 || parts[1] == "" {
		return faceCorner{}, fmt.Errorf("face corner %q is missing a texture coordinate index", field)
	}

	v, err := resolveIndex(parts[0], nV)
	if err != nil {
		return faceCorner{}, fmt.Errorf("face corner %q: %w", field, err)
	}
	vt, err := resolveIndex(parts[1], nT)
	if err != nil {
		return faceCorner{}, fmt.Errorf("face corner %q: %w", field, err)
	}
	return faceCorner{v: v, vt: vt}, nil
}

// resolveIndex converts a 1-indexed (or negative, relative) OBJ index into
// a 0-indexed one against a running count of n records seen so far.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		return i - 1, nil
	case i < 0:
		return n + i, nil
	default:
		return 0, fmt.Errorf("index 0 is not valid in OBJ (1-indexed)")
	}
}

// Save writes m to path as OBJ: positions, texture coordinates, then
// triangulated v/vt face records, in that order.
func Save(path string, m *meshdata.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, m); err != nil {
		return err
	}
	return nil
}

// Encode writes m to w as OBJ. See Save.
func Encode(w io.Writer, m *meshdata.Mesh) error {
	bw := bufio.NewWriter(w)

	for _, v := range m.V {
		if _, err := fmt.Fprintf(bw, "v %.10g %.10g %.10g\n", v.X, v.Y, v.Z); err != nil {
			return fmt.Errorf("writing vertex: %w", err)
		}
	}
	for _, t := range m.TC {
		if _, err := fmt.Fprintf(bw, "vt %.10g %.10g\n", t.X, t.Y); err != nil {
			return fmt.Errorf("writing texture coordinate: %w", err)
		}
	}
	for f := range m.F {
		if m.IsTombstone(f) {
			continue
		}
		face, faceT := m.F[f], m.FT[f]
		if _, err := fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n",
			face[0]+1, faceT[0]+1,
			face[1]+1, faceT[1]+1,
			face[2]+1, faceT[2]+1,
		); err != nil {
			return fmt.Errorf("writing face: %w", err)
		}
	}

	return bw.Flush()
}
