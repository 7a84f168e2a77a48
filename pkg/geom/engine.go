package geom

// Engine evaluates the 8 spatial predicates CQL2's S_* operators need, plus
// the handful of unary/binary geometry-producing functions the builtin
// registry exposes (boundary, buffer, envelope, centroid, convex_hull). It
// is an interface, not a concrete dependency, so that pkg/eval and
// pkg/sqltranslate can be used without linking a particular spatial
// backend; pkg/geos supplies the CGO-backed implementation.
type Engine interface {
	Intersects(a, b Geometry) (bool, error)
	Equals(a, b Geometry) (bool, error)
	Disjoint(a, b Geometry) (bool, error)
	Touches(a, b Geometry) (bool, error)
	Within(a, b Geometry) (bool, error)
	Overlaps(a, b Geometry) (bool, error)
	Crosses(a, b Geometry) (bool, error)
	Contains(a, b Geometry) (bool, error)

	Boundary(a Geometry) (Geometry, error)
	Buffer(a Geometry, distance float64) (Geometry, error)
	Envelope(a Geometry) (Geometry, error)
	Centroid(a Geometry) (Geometry, error)
	ConvexHull(a Geometry) (Geometry, error)
}
