// Package formats provides parsers for mesh geometry files.
// OBJ (Wavefront) subset parser for triangle meshes.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// OBJ parse errors.
var (
	ErrBadFaceArity  = errors.New("face is not a triangle")
	ErrBadFaceIndex  = errors.New("invalid face index")
	ErrFaceRange     = errors.New("face index out of range")
	ErrLineTooLong   = errors.New("line too long")
	ErrTooFewFloats  = errors.New("too few components")
	ErrUnknownPrefix = errors.New("unidentified line")
)

// ParseError reports that a geometry source could not be read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// OBJFace is a triangle. Indices are 0-based; -1 marks an absent
// texture coordinate or normal reference.
type OBJFace struct {
	Vertex   [3]int32
	TexCoord [3]int32
	Normal   [3]int32
}

// OBJWarning describes a skipped source line.
type OBJWarning struct {
	Line int    // 1-based line number
	Text string // raw line
	Err  error  // reason
}

// String formats the warning for logs.
func (w OBJWarning) String() string {
	return fmt.Sprintf("line %d: %v: %q", w.Line, w.Err, w.Text)
}

// maxLineLen bounds a single source line.
const maxLineLen = 1 << 20

// OBJ holds decoded mesh geometry.
type OBJ struct {
	Vertices  [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     []OBJFace

	// Warnings lists lines that were skipped while parsing.
	Warnings []OBJWarning
}

// LoadOBJ parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	obj, err := ParseOBJ(f)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return obj, nil
}

// ParseOBJ parses OBJ text. Malformed and unrecognized lines are recorded
// in Warnings and skipped, as are faces that reference a vertex the file
// never defines. Only a read failure is returned as an error.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	br := bufio.NewReader(r)

	var faceLines []OBJWarning
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("reading OBJ: %w", readErr)
		}
		if raw != "" {
			lineNo++
			line := strings.TrimSpace(raw)
			switch {
			case line == "":
			case len(line) > maxLineLen:
				obj.Warnings = append(obj.Warnings, OBJWarning{
					Line: lineNo,
					Text: line[:64] + "...",
					Err:  fmt.Errorf("%w: %d bytes", ErrLineTooLong, len(line)),
				})
			default:
				faces := len(obj.Faces)
				if err := obj.parseLine(line); err != nil {
					obj.Warnings = append(obj.Warnings, OBJWarning{Line: lineNo, Text: line, Err: err})
				} else if len(obj.Faces) > faces {
					faceLines = append(faceLines, OBJWarning{Line: lineNo, Text: line})
				}
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	obj.dropOutOfRange(faceLines)
	return obj, nil
}

// dropOutOfRange removes faces whose vertex indices fall outside
// Vertices. lines holds the source position of each face.
func (o *OBJ) dropOutOfRange(lines []OBJWarning) {
	n := int32(len(o.Vertices))
	kept := o.Faces[:0]
	for i, f := range o.Faces {
		bad := int32(-1)
		for _, v := range f.Vertex {
			if v >= n {
				bad = v
				break
			}
		}
		if bad < 0 {
			kept = append(kept, f)
			continue
		}
		w := lines[i]
		w.Err = fmt.Errorf("%w: vertex %d of %d", ErrFaceRange, bad+1, n)
		o.Warnings = append(o.Warnings, w)
	}
	o.Faces = kept
	sort.SliceStable(o.Warnings, func(i, j int) bool { return o.Warnings[i].Line < o.Warnings[j].Line })
}

func (o *OBJ) parseLine(line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		o.Vertices = append(o.Vertices, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		o.TexCoords = append(o.TexCoords, [2]float32{v[0], v[1]})
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		o.Normals = append(o.Normals, [3]float32{v[0], v[1], v[2]})
	case "f":
		face, err := parseFace(fields[1:])
		if err != nil {
			return err
		}
		o.Faces = append(o.Faces, face)
	default:
		return ErrUnknownPrefix
	}
	return nil
}

// parseFloats reads the first n fields as floats. Extra fields (such as
// an optional w) are ignored.
func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrTooFewFloats, n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFace reads three v, v/t, v//n or v/t/n references.
func parseFace(refs []string) (OBJFace, error) {
	var face OBJFace
	if len(refs) != 3 {
		return face, fmt.Errorf("%w: %d references", ErrBadFaceArity, len(refs))
	}
	for i, ref := range refs {
		parts := strings.Split(ref, "/")
		if len(parts) > 3 {
			return face, fmt.Errorf("%w: %q", ErrBadFaceIndex, ref)
		}
		v, err := parseIndex(parts[0], false)
		if err != nil {
			return face, err
		}
		tc, n := int32(-1), int32(-1)
		if len(parts) > 1 {
			if tc, err = parseIndex(parts[1], true); err != nil {
				return face, err
			}
		}
		if len(parts) > 2 {
			if n, err = parseIndex(parts[2], true); err != nil {
				return face, err
			}
		}
		face.Vertex[i] = v
		face.TexCoord[i] = tc
		face.Normal[i] = n
	}
	return face, nil
}

// parseIndex converts a 1-based index to 0-based. An empty optional
// component yields -1.
func parseIndex(s string, optional bool) (int32, error) {
	if s == "" && optional {
		return -1, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrBadFaceIndex, s)
	}
	return int32(n - 1), nil
}

// FlatVertices returns positions as a tightly packed xyz array.
func (o *OBJ) FlatVertices() []float32 {
	out := make([]float32, 0, len(o.Vertices)*3)
	for _, v := range o.Vertices {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// FlatNormals returns normals packed as xyz, padded with zeros or
// truncated to count entries.
func (o *OBJ) FlatNormals(count int) []float32 {
	out := make([]float32, count*3)
	for i := 0; i < count && i < len(o.Normals); i++ {
		n := o.Normals[i]
		out[i*3], out[i*3+1], out[i*3+2] = n[0], n[1], n[2]
	}
	return out
}

// Indices returns the triangle vertex indices in face order.
func (o *OBJ) Indices() []uint32 {
	out := make([]uint32, 0, len(o.Faces)*3)
	for _, f := range o.Faces {
		out = append(out, uint32(f.Vertex[0]), uint32(f.Vertex[1]), uint32(f.Vertex[2]))
	}
	return out
}
