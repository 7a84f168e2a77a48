// Package crs validates geometry coordinates against a Coordinate Reference
// System's area of use. It performs a 2D bounding-box check only; it never
// reprojects coordinates.
package crs

import (
	"fmt"
	"strings"

	"github.com/geocql/cql2/pkg/geom"
)

// areaOfUse is the 2D extent a CRS code is valid within.
type areaOfUse struct {
	west, east   float64
	south, north float64
}

// knownCRS is the small, built-in table of area-of-use bounds this module
// ships with. A real deployment may have PROJ or a similar EPSG database
// available; this module only needs the handful of CRSes its test fixtures
// and documentation examples use, so no such dependency is wired here.
var knownCRS = map[string]areaOfUse{
	"EPSG:4326":  {-180, 180, -90, 90},
	"CRS84":      {-180, 180, -90, 90},
	"EPSG:3857":  {-20037508.34, 20037508.34, -20048966.10, 20048966.10},
	"EPSG:27700": {-104009.36, 688806.58, -17273.05, 1262971.09},
}

// CRS represents a Coordinate Reference System together with its area of
// use, used to validate geometry coordinates at construction time.
type CRS struct {
	code  string
	bound areaOfUse
}

// New resolves code against the known CRS table. It fails for any CRS
// lacking a known area of use, matching this module's "no area of
// use, no validation" stance.
func New(code string) (*CRS, error) {
	key := strings.ToUpper(strings.TrimSpace(code))
	bound, ok := knownCRS[key]
	if !ok {
		return nil, fmt.Errorf("CRS %q has no known area of use; cannot validate coordinates", code)
	}
	return &CRS{code: key, bound: bound}, nil
}

// String returns the CRS's code.
func (c *CRS) String() string { return c.code }

// CheckPoint reports whether a single 2D-or-3D coordinate falls within c's
// area of use (only the first two ordinates, x/longitude and y/latitude,
// are checked).
func (c *CRS) CheckPoint(coord []float64) error {
	if len(coord) < 2 {
		return fmt.Errorf("coordinate has fewer than 2 ordinates")
	}
	x, y := coord[0], coord[1]
	if x < c.bound.west || x > c.bound.east {
		return fmt.Errorf("point x (longitude) coordinate %v is out of bounds for %s", x, c.code)
	}
	if y < c.bound.south || y > c.bound.north {
		return fmt.Errorf("point y (latitude) coordinate %v is out of bounds for %s", y, c.code)
	}
	return nil
}

// CheckGeometry validates every coordinate reachable from g, recursing into
// multi-geometries and collections.
func (c *CRS) CheckGeometry(g geom.Geometry) error {
	switch g.Kind {
	case geom.Point, geom.MultiPoint, geom.LineString:
		for _, coord := range g.Coords {
			if err := c.CheckPoint(coord); err != nil {
				return err
			}
		}
	case geom.Polygon:
		for _, ring := range g.Rings {
			for _, coord := range ring {
				if err := c.CheckPoint(coord); err != nil {
					return err
				}
			}
		}
	case geom.MultiLineString:
		for _, line := range g.Lines {
			for _, coord := range line {
				if err := c.CheckPoint(coord); err != nil {
					return err
				}
			}
		}
	case geom.MultiPolygon:
		for _, poly := range g.Polys {
			for _, ring := range poly {
				for _, coord := range ring {
					if err := c.CheckPoint(coord); err != nil {
						return err
					}
				}
			}
		}
	case geom.GeometryCollection:
		for _, item := range g.Items {
			if err := c.CheckGeometry(item); err != nil {
				return err
			}
		}
	case geom.BBox:
		coord := g.Coords[0]
		if err := c.CheckPoint(coord[:2]); err != nil {
			return err
		}
		if len(coord) == 4 {
			return c.CheckPoint(coord[2:4])
		}
		return c.CheckPoint(coord[3:5])
	}
	return nil
}
