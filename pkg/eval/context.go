// Package eval evaluates a pkg/ir Expression tree against a
// value.Resource, returning the three-valued True/False/Unknown outcome
// CQL2 filters are defined over. It also hosts the Context a filter
// evaluates within — the CRS geometry literals are checked against, the
// geom.Engine spatial predicates delegate to, and the registered function
// table CALL() nodes resolve against.
package eval

import (
	"github.com/geocql/cql2/pkg/crs"
	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/value"
)

// ArgType is the type contract a registered function's argument or result
// must satisfy. It omits Null/Interval/List: no builtin accepts or
// produces those.
type ArgType int

const (
	ArgStr ArgType = iota
	ArgNum
	ArgBool
	ArgTimestamp
	ArgDate
	ArgGeom
)

// FnInfo describes one registered function.
type FnInfo struct {
	ArgTypes   []ArgType
	ResultType ArgType
	Fn         func(args []value.Q) (value.Q, error)
}

// Context carries everything an evaluation needs beyond the Resource
// itself. It is a plain struct passed by pointer, not internally locked —
// safe for concurrent read access once Register calls have stopped, the
// same "immutable after setup" contract the rest of this module follows.
type Context struct {
	crs       *crs.CRS
	engine    geom.Engine
	functions map[string]*FnInfo
}

// NewContext builds a Context around c and engine with the builtin
// function table already registered. engine may be nil if the caller never
// evaluates a filter containing an S_* predicate or spatial function.
func NewContext(c *crs.CRS, engine geom.Engine) *Context {
	ctx := &Context{crs: c, engine: engine, functions: make(map[string]*FnInfo)}
	registerBuiltins(ctx)
	return ctx
}

// CRS returns the Context's coordinate reference system, or nil if none
// was configured.
func (c *Context) CRS() *crs.CRS { return c.crs }

// Engine returns the Context's spatial backend, or nil if none was
// configured.
func (c *Context) Engine() geom.Engine { return c.engine }

// Register adds or replaces a named function in c's table.
func (c *Context) Register(name string, argTypes []ArgType, resultType ArgType, fn func([]value.Q) (value.Q, error)) {
	c.functions[name] = &FnInfo{ArgTypes: argTypes, ResultType: resultType, Fn: fn}
}

// FnInfo looks up a registered function by name.
func (c *Context) FnInfo(name string) (*FnInfo, bool) {
	fi, ok := c.functions[name]
	return fi, ok
}
