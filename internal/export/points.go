package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/helix/internal/helix"
	"github.com/san-kum/helix/internal/vmath"
)

var pointsHeader = []string{"kind", "index", "sub", "t", "x", "y", "z", "color"}

// PointRecord is the JSON form of a helix point.
type PointRecord struct {
	Kind  string  `json:"kind"`
	Index int     `json:"index"`
	Sub   int     `json:"sub"`
	T     float64 `json:"t"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Color string  `json:"color"`
}

func record(p helix.Point) PointRecord {
	return PointRecord{
		Kind:  p.Kind.String(),
		Index: p.Index,
		Sub:   p.Sub,
		T:     p.T,
		X:     p.Position.X,
		Y:     p.Position.Y,
		Z:     p.Position.Z,
		Color: p.Color.Clamped().Hex(),
	}
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

// WritePointsCSV writes one row per point with a header.
func WritePointsCSV(w io.Writer, pts []helix.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pointsHeader); err != nil {
		return err
	}
	for _, p := range pts {
		r := record(p)
		row := []string{r.Kind, strconv.Itoa(r.Index), strconv.Itoa(r.Sub), ftoa(r.T), ftoa(r.X), ftoa(r.Y), ftoa(r.Z), r.Color}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPointsCSV parses the output of WritePointsCSV. Coordinates carry six decimals.
func ReadPointsCSV(r io.Reader) ([]helix.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(pointsHeader)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []helix.Point{}, nil
	}

	pts := make([]helix.Point, 0, len(records)-1)
	for line, rec := range records[1:] {
		p, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("points row %d: %w", line+2, err)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func parseRow(rec []string) (helix.Point, error) {
	kind, ok := helix.ParseKind(rec[0])
	if !ok {
		return helix.Point{}, fmt.Errorf("unknown kind %q", rec[0])
	}
	ints := make([]int, 2)
	for i, s := range rec[1:3] {
		v, err := strconv.Atoi(s)
		if err != nil {
			return helix.Point{}, err
		}
		ints[i] = v
	}
	floats := make([]float64, 4)
	for i, s := range rec[3:7] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return helix.Point{}, err
		}
		floats[i] = v
	}
	c, err := helix.ParseColor(rec[7])
	if err != nil {
		return helix.Point{}, err
	}
	return helix.Point{
		Kind:     kind,
		Index:    ints[0],
		Sub:      ints[1],
		T:        floats[0],
		Position: vmath.Vec3{X: floats[1], Y: floats[2], Z: floats[3]},
		Color:    c,
	}, nil
}

// WritePointsJSON writes an indented array of point records.
func WritePointsJSON(w io.Writer, pts []helix.Point) error {
	out := make([]PointRecord, len(pts))
	for i, p := range pts {
		out[i] = record(p)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
