// Package geom implements the CQL2 geometry sum type: Point, LineString,
// Polygon, their multi- variants, GeometryCollection, and the non-standard
// BBox literal, together with WKT encoding/decoding and coordinate
// precision handling.
package geom

import (
	"fmt"
	"math"
	"strings"
)

// Kind discriminates the geometry variants this package models.
type Kind int

const (
	Point Kind = iota
	LineString
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
	GeometryCollection
	BBox
)

func (k Kind) String() string {
	switch k {
	case Point:
		return "POINT"
	case LineString:
		return "LINESTRING"
	case Polygon:
		return "POLYGON"
	case MultiPoint:
		return "MULTIPOINT"
	case MultiLineString:
		return "MULTILINESTRING"
	case MultiPolygon:
		return "MULTIPOLYGON"
	case GeometryCollection:
		return "GEOMETRYCOLLECTION"
	case BBox:
		return "BBOX"
	default:
		return "?"
	}
}

// Geometry is a concrete CQL2 geometry value.
//
//   - Point:              Coords holds one position.
//   - LineString:         Coords holds the vertices in order.
//   - Polygon:            Rings holds one or more linear rings, first is the
//     exterior ring, the rest are holes.
//   - MultiPoint:         Coords holds one position per member.
//   - MultiLineString:    Lines holds one vertex list per member.
//   - MultiPolygon:       Polys holds one ring-set per member.
//   - GeometryCollection: Items holds arbitrary sub-geometries.
//   - BBox:               Coords holds 4 or 6 numbers: w,s[,zmin],e,n[,zmax].
type Geometry struct {
	Kind   Kind
	Coords [][]float64 // Point / MultiPoint / LineString / BBox
	Rings  [][][]float64
	Lines  [][][]float64
	Polys  [][][][]float64
	Items  []Geometry
}

// NewPoint builds a Point from one coordinate, rounding to precision
// fractional digits (a negative precision keeps it exact) so two geometries
// built the same way compare equal.
func NewPoint(coord []float64, precision int) Geometry {
	return Geometry{Kind: Point, Coords: [][]float64{roundCoord(coord, precision)}}
}

// NewLineString builds a LineString from its vertex list.
func NewLineString(coords [][]float64, precision int) Geometry {
	return Geometry{Kind: LineString, Coords: roundCoords(coords, precision)}
}

// NewPolygon builds a Polygon from its rings (first exterior, rest holes).
func NewPolygon(rings [][][]float64, precision int) Geometry {
	out := make([][][]float64, len(rings))
	for i, r := range rings {
		out[i] = roundCoords(r, precision)
	}
	return Geometry{Kind: Polygon, Rings: out}
}

// NewMultiPoint builds a MultiPoint from one coordinate per member.
func NewMultiPoint(coords [][]float64, precision int) Geometry {
	return Geometry{Kind: MultiPoint, Coords: roundCoords(coords, precision)}
}

// NewMultiLineString builds a MultiLineString from one vertex list per
// member.
func NewMultiLineString(lines [][][]float64, precision int) Geometry {
	out := make([][][]float64, len(lines))
	for i, l := range lines {
		out[i] = roundCoords(l, precision)
	}
	return Geometry{Kind: MultiLineString, Lines: out}
}

// NewMultiPolygon builds a MultiPolygon from one ring-set per member.
func NewMultiPolygon(polys [][][][]float64, precision int) Geometry {
	out := make([][][][]float64, len(polys))
	for i, p := range polys {
		rings := make([][][]float64, len(p))
		for j, r := range p {
			rings[j] = roundCoords(r, precision)
		}
		out[i] = rings
	}
	return Geometry{Kind: MultiPolygon, Polys: out}
}

// NewGeometryCollection builds a GeometryCollection from its members.
func NewGeometryCollection(items []Geometry) Geometry {
	return Geometry{Kind: GeometryCollection, Items: items}
}

// NewBBox builds a BBox literal from 4 (2D) or 6 (3D) numbers, per the CQL2
// grammar: west, south[, zmin], east, north[, zmax].
func NewBBox(values []float64, precision int) (Geometry, error) {
	if len(values) != 4 && len(values) != 6 {
		return Geometry{}, fmt.Errorf("BBOX literal must have 4 or 6 numbers, got %d", len(values))
	}
	return Geometry{Kind: BBox, Coords: [][]float64{roundCoord(values, precision)}}, nil
}

func roundCoord(coord []float64, precision int) []float64 {
	out := make([]float64, len(coord))
	for i, v := range coord {
		out[i] = roundTo(v, precision)
	}
	return out
}

func roundCoords(coords [][]float64, precision int) [][]float64 {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = roundCoord(c, precision)
	}
	return out
}

// roundTo rounds x to precision fractional digits. precision < 0 leaves
// x unrounded, used when rendering WKT for display where exactness, not a
// fixed digit count, is wanted.
func roundTo(x float64, precision int) float64 {
	if precision < 0 {
		return x
	}
	d := math.Pow(10, float64(precision))
	return math.Round(x*d) / d
}

// Is2D reports whether every coordinate tuple in g carries exactly 2 axes.
func (g Geometry) Is2D() bool {
	switch g.Kind {
	case Point, MultiPoint, LineString:
		return len(g.Coords) > 0 && len(g.Coords[0]) == 2
	case Polygon:
		return len(g.Rings) > 0 && len(g.Rings[0]) > 0 && len(g.Rings[0][0]) == 2
	case MultiLineString:
		return len(g.Lines) > 0 && len(g.Lines[0]) > 0 && len(g.Lines[0][0]) == 2
	case MultiPolygon:
		return len(g.Polys) > 0 && len(g.Polys[0]) > 0 && len(g.Polys[0][0]) > 0 && len(g.Polys[0][0][0]) == 2
	case BBox:
		return len(g.Coords[0]) == 4
	case GeometryCollection:
		for _, it := range g.Items {
			if !it.Is2D() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Equal compares two geometries structurally: same Kind, same coordinates in
// the same order. Ring/member order matters, matching the source library's
// derived structural equality rather than topological equivalence.
func (g Geometry) Equal(other Geometry) bool {
	if g.Kind != other.Kind {
		return false
	}
	switch g.Kind {
	case Point, MultiPoint, LineString, BBox:
		return coordsEqual(g.Coords, other.Coords)
	case Polygon:
		return ringsEqual(g.Rings, other.Rings)
	case MultiLineString:
		return ringsEqual(g.Lines, other.Lines)
	case MultiPolygon:
		if len(g.Polys) != len(other.Polys) {
			return false
		}
		for i := range g.Polys {
			if !ringsEqual(g.Polys[i], other.Polys[i]) {
				return false
			}
		}
		return true
	case GeometryCollection:
		if len(g.Items) != len(other.Items) {
			return false
		}
		for i := range g.Items {
			if !g.Items[i].Equal(other.Items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func coordsEqual(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func ringsEqual(a, b [][][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !coordsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// WKT renders g as Well-Known Text with `precision` fractional digits
// (negative means: render the stored values as-is). BBox has no standard
// WKT tag; it is rendered as the equivalent POLYGON, or as a MULTIPOLYGON
// split at +/-180 when the box's west bound exceeds its east bound (a box
// that wraps the antimeridian).
func (g Geometry) WKT(precision int) string {
	switch g.Kind {
	case Point:
		return fmt.Sprintf("%s %s", tag("POINT", g.Is2D()), parenCoord(g.Coords[0], precision))
	case LineString:
		return fmt.Sprintf("LINESTRING %s", parenCoordList(g.Coords, precision))
	case Polygon:
		return fmt.Sprintf("POLYGON %s", parenRingList(g.Rings, precision))
	case MultiPoint:
		parts := make([]string, len(g.Coords))
		for i, c := range g.Coords {
			parts[i] = parenCoord(c, precision)
		}
		return fmt.Sprintf("MULTIPOINT (%s)", strings.Join(parts, ", "))
	case MultiLineString:
		parts := make([]string, len(g.Lines))
		for i, l := range g.Lines {
			parts[i] = parenCoordList(l, precision)
		}
		return fmt.Sprintf("MULTILINESTRING (%s)", strings.Join(parts, ", "))
	case MultiPolygon:
		parts := make([]string, len(g.Polys))
		for i, p := range g.Polys {
			parts[i] = parenRingList(p, precision)
		}
		return fmt.Sprintf("MULTIPOLYGON (%s)", strings.Join(parts, ", "))
	case GeometryCollection:
		parts := make([]string, len(g.Items))
		for i, it := range g.Items {
			parts[i] = it.WKT(precision)
		}
		return fmt.Sprintf("GEOMETRYCOLLECTION (%s)", strings.Join(parts, ", "))
	case BBox:
		return g.bboxWKT(precision)
	default:
		return ""
	}
}

func (g Geometry) bboxWKT(precision int) string {
	c := g.Coords[0]
	w, s, e, n := c[0], c[1], c[2], c[3]
	if len(c) == 6 {
		e, n = c[3], c[4]
	}
	if w < e {
		ring := [][]float64{{w, s}, {e, s}, {e, n}, {w, n}, {w, s}}
		return fmt.Sprintf("POLYGON %s", parenRingList([][][]float64{ring}, precision))
	}
	ring1 := [][]float64{{w, s}, {180, s}, {180, n}, {w, n}, {w, s}}
	ring2 := [][]float64{{e, s}, {e, n}, {-180, n}, {-180, s}, {e, s}}
	return fmt.Sprintf("MULTIPOLYGON (%s, %s)",
		parenRingList([][][]float64{ring1}, precision),
		parenRingList([][][]float64{ring2}, precision))
}

func tag(base string, is2d bool) string {
	if is2d {
		return base
	}
	return base + " Z"
}

func parenCoord(coord []float64, precision int) string {
	vals := make([]string, len(coord))
	for i, v := range coord {
		vals[i] = formatOrdinate(v, precision)
	}
	return "(" + strings.Join(vals, " ") + ")"
}

func parenCoordList(coords [][]float64, precision int) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		vals := make([]string, len(c))
		for j, v := range c {
			vals[j] = formatOrdinate(v, precision)
		}
		parts[i] = strings.Join(vals, " ")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func parenRingList(rings [][][]float64, precision int) string {
	parts := make([]string, len(rings))
	for i, r := range rings {
		parts[i] = parenCoordList(r, precision)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatOrdinate(v float64, precision int) string {
	if precision < 0 {
		return strconvTrim(v)
	}
	return fmt.Sprintf("%.*f", precision, v)
}

func strconvTrim(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}
