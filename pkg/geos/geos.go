// Package geos provides the CGO-backed geom.Engine implementation: the 8
// spatial predicates CQL2's S_* operators need plus the unary/binary
// geometry-producing functions the builtin function registry exposes,
// backed by the GEOS C API. Geometries cross the CGO boundary as WKT,
// reusing pkg/geom's own reader/writer rather than re-deriving a second
// geometry model on the C side.
//
// Requires the GEOS C library (libgeos_c) to be installed and discoverable
// via pkg-config, and CGO enabled at build time.
package geos

/*
#cgo pkg-config: geos
#include <geos_c.h>
#include <stdlib.h>
*/
import "C"

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/geom"
)

// Engine wraps a GEOS context handle. A single Engine is safe for
// concurrent use: every operation takes the context's read lock, so GEOS
// calls from different goroutines interleave safely as long as none of
// them mutate the context itself (only Close does, under the write lock).
type Engine struct {
	ctx C.GEOSContextHandle_t
	mu  sync.RWMutex
}

var _ geom.Engine = (*Engine)(nil)

// New initializes a GEOS context and returns an Engine ready for use.
func New() (*Engine, error) {
	ctx := C.GEOS_init_r()
	if ctx == nil {
		return nil, cql2err.New(cql2err.KindRuntime, "geos: failed to initialize context")
	}
	e := &Engine{ctx: ctx}
	runtime.SetFinalizer(e, (*Engine).Close)
	return e, nil
}

// Close releases the GEOS context. Safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctx != nil {
		C.GEOS_finish_r(e.ctx)
		e.ctx = nil
	}
	runtime.SetFinalizer(e, nil)
}

func (e *Engine) toGEOS(g geom.Geometry) (*C.struct_GEOSGeom_t, error) {
	wkt := g.WKT(-1)
	cWKT := C.CString(wkt)
	defer C.free(unsafe.Pointer(cWKT))

	h := C.GEOSGeomFromWKT_r(e.ctx, cWKT)
	if h == nil {
		return nil, cql2err.New(cql2err.KindRuntime, "geos: failed to parse geometry %q", wkt)
	}
	return h, nil
}

func (e *Engine) fromGEOS(h *C.struct_GEOSGeom_t) (geom.Geometry, error) {
	if h == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: operation returned no geometry")
	}
	cWKT := C.GEOSGeomToWKT_r(e.ctx, h)
	if cWKT == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: failed to render result geometry to WKT")
	}
	defer C.free(unsafe.Pointer(cWKT))

	g, err := geom.ParseWKT(C.GoString(cWKT), -1)
	if err != nil {
		return geom.Geometry{}, cql2err.Wrap(cql2err.KindRuntime, err, "geos: parsing result WKT")
	}
	return g, nil
}

// predicateFunc matches the signature shared by every GEOS binary
// predicate: 0 = false, 1 = true, 2 = exception.
type predicateFunc func(C.GEOSContextHandle_t, *C.struct_GEOSGeom_t, *C.struct_GEOSGeom_t) C.char

func (e *Engine) predicate(name string, fn predicateFunc, a, b geom.Geometry) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ctx == nil {
		return false, cql2err.New(cql2err.KindRuntime, "geos: context is closed")
	}

	ga, err := e.toGEOS(a)
	if err != nil {
		return false, err
	}
	defer C.GEOSGeom_destroy_r(e.ctx, ga)

	gb, err := e.toGEOS(b)
	if err != nil {
		return false, err
	}
	defer C.GEOSGeom_destroy_r(e.ctx, gb)

	result := fn(e.ctx, ga, gb)
	if result == 2 {
		return false, cql2err.New(cql2err.KindRuntime, "geos: %s failed", name)
	}
	return result == 1, nil
}

func (e *Engine) Intersects(a, b geom.Geometry) (bool, error) {
	return e.predicate("S_INTERSECTS", predicateFunc(C.GEOSIntersects_r), a, b)
}

func (e *Engine) Equals(a, b geom.Geometry) (bool, error) {
	return e.predicate("S_EQUALS", predicateFunc(C.GEOSEquals_r), a, b)
}

func (e *Engine) Disjoint(a, b geom.Geometry) (bool, error) {
	return e.predicate("S_DISJOINT", predicateFunc(C.GEOSDisjoint_r), a, b)
}

func (e *Engine) Touches(a, b geom.Geometry) (bool, error) {
	return e.predicate("S_TOUCHES", predicateFunc(C.GEOSTouches_r), a, b)
}

func (e *Engine) Within(a, b geom.Geometry) (bool, error) {
	return e.predicate("S_WITHIN", predicateFunc(C.GEOSWithin_r), a, b)
}

func (e *Engine) Overlaps(a, b geom.Geometry) (bool, error) {
	return e.predicate("S_OVERLAPS", predicateFunc(C.GEOSOverlaps_r), a, b)
}

func (e *Engine) Crosses(a, b geom.Geometry) (bool, error) {
	return e.predicate("S_CROSSES", predicateFunc(C.GEOSCrosses_r), a, b)
}

func (e *Engine) Contains(a, b geom.Geometry) (bool, error) {
	return e.predicate("S_CONTAINS", predicateFunc(C.GEOSContains_r), a, b)
}

func (e *Engine) Boundary(a geom.Geometry) (geom.Geometry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ctx == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: context is closed")
	}

	ga, err := e.toGEOS(a)
	if err != nil {
		return geom.Geometry{}, err
	}
	defer C.GEOSGeom_destroy_r(e.ctx, ga)

	h := C.GEOSBoundary_r(e.ctx, ga)
	if h == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: boundary failed")
	}
	defer C.GEOSGeom_destroy_r(e.ctx, h)
	return e.fromGEOS(h)
}

func (e *Engine) Buffer(a geom.Geometry, distance float64) (geom.Geometry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ctx == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: context is closed")
	}

	ga, err := e.toGEOS(a)
	if err != nil {
		return geom.Geometry{}, err
	}
	defer C.GEOSGeom_destroy_r(e.ctx, ga)

	h := C.GEOSBuffer_r(e.ctx, ga, C.double(distance), 8)
	if h == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: buffer failed")
	}
	defer C.GEOSGeom_destroy_r(e.ctx, h)
	return e.fromGEOS(h)
}

func (e *Engine) Envelope(a geom.Geometry) (geom.Geometry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ctx == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: context is closed")
	}

	ga, err := e.toGEOS(a)
	if err != nil {
		return geom.Geometry{}, err
	}
	defer C.GEOSGeom_destroy_r(e.ctx, ga)

	h := C.GEOSEnvelope_r(e.ctx, ga)
	if h == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: envelope failed")
	}
	defer C.GEOSGeom_destroy_r(e.ctx, h)
	return e.fromGEOS(h)
}

func (e *Engine) Centroid(a geom.Geometry) (geom.Geometry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ctx == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: context is closed")
	}

	ga, err := e.toGEOS(a)
	if err != nil {
		return geom.Geometry{}, err
	}
	defer C.GEOSGeom_destroy_r(e.ctx, ga)

	h := C.GEOSGetCentroid_r(e.ctx, ga)
	if h == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: centroid failed")
	}
	defer C.GEOSGeom_destroy_r(e.ctx, h)
	return e.fromGEOS(h)
}

func (e *Engine) ConvexHull(a geom.Geometry) (geom.Geometry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ctx == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: context is closed")
	}

	ga, err := e.toGEOS(a)
	if err != nil {
		return geom.Geometry{}, err
	}
	defer C.GEOSGeom_destroy_r(e.ctx, ga)

	h := C.GEOSConvexHull_r(e.ctx, ga)
	if h == nil {
		return geom.Geometry{}, cql2err.New(cql2err.KindRuntime, "geos: convex hull failed")
	}
	defer C.GEOSGeom_destroy_r(e.ctx, h)
	return e.fromGEOS(h)
}
