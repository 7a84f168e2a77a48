package eval

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/geocql/cql2/pkg/geom"
	"github.com/geocql/cql2/pkg/value"
)

func registerBuiltins(ctx *Context) {
	registerNumeric(ctx)
	registerString(ctx)
	registerTemporal(ctx)
	registerSpatial(ctx)
}

func numUnary(fn func(float64) float64) func([]value.Q) (value.Q, error) {
	return func(args []value.Q) (value.Q, error) {
		x, err := args[0].ToNum()
		if err != nil {
			return value.Q{}, err
		}
		return value.NewNum(fn(x)), nil
	}
}

func registerNumeric(ctx *Context) {
	ctx.Register("abs", []ArgType{ArgNum}, ArgNum, numUnary(math.Abs))
	ctx.Register("acos", []ArgType{ArgNum}, ArgNum, numUnary(math.Acos))
	ctx.Register("asin", []ArgType{ArgNum}, ArgNum, numUnary(math.Asin))
	ctx.Register("atan", []ArgType{ArgNum}, ArgNum, numUnary(math.Atan))
	ctx.Register("cbrt", []ArgType{ArgNum}, ArgNum, numUnary(math.Cbrt))
	ctx.Register("ceil", []ArgType{ArgNum}, ArgNum, numUnary(math.Ceil))
	ctx.Register("cos", []ArgType{ArgNum}, ArgNum, numUnary(math.Cos))
	ctx.Register("floor", []ArgType{ArgNum}, ArgNum, numUnary(math.Floor))
	ctx.Register("ln", []ArgType{ArgNum}, ArgNum, numUnary(math.Log))
	ctx.Register("sin", []ArgType{ArgNum}, ArgNum, numUnary(math.Sin))
	ctx.Register("sqrt", []ArgType{ArgNum}, ArgNum, numUnary(math.Sqrt))
	ctx.Register("tan", []ArgType{ArgNum}, ArgNum, numUnary(math.Tan))

	ctx.Register("max", []ArgType{ArgNum, ArgNum}, ArgNum, func(args []value.Q) (value.Q, error) {
		x, y, err := twoNums(args)
		if err != nil {
			return value.Q{}, err
		}
		return value.NewNum(math.Max(x, y)), nil
	})
	ctx.Register("min", []ArgType{ArgNum, ArgNum}, ArgNum, func(args []value.Q) (value.Q, error) {
		x, y, err := twoNums(args)
		if err != nil {
			return value.Q{}, err
		}
		return value.NewNum(math.Min(x, y)), nil
	})
	ctx.Register("avg", []ArgType{ArgNum, ArgNum}, ArgNum, func(args []value.Q) (value.Q, error) {
		x, y, err := twoNums(args)
		if err != nil {
			return value.Q{}, err
		}
		return value.NewNum((x + y) / 2), nil
	})
}

func twoNums(args []value.Q) (float64, float64, error) {
	x, err := args[0].ToNum()
	if err != nil {
		return 0, 0, err
	}
	y, err := args[1].ToNum()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func registerString(ctx *Context) {
	ctx.Register("trim", []ArgType{ArgStr}, ArgStr, func(args []value.Q) (value.Q, error) {
		s, err := args[0].ToStr()
		if err != nil {
			return value.Q{}, err
		}
		return value.NewPlainStr(strings.TrimSpace(s.String())), nil
	})
	ctx.Register("len", []ArgType{ArgStr}, ArgNum, func(args []value.Q) (value.Q, error) {
		s, err := args[0].ToStr()
		if err != nil {
			return value.Q{}, err
		}
		return value.NewNum(float64(len(s.String()))), nil
	})
	ctx.Register("concat", []ArgType{ArgStr, ArgStr}, ArgStr, func(args []value.Q) (value.Q, error) {
		x, y, err := twoStrs(args)
		if err != nil {
			return value.Q{}, err
		}
		return value.NewPlainStr(x + y), nil
	})
	ctx.Register("starts_with", []ArgType{ArgStr, ArgStr}, ArgBool, func(args []value.Q) (value.Q, error) {
		x, y, err := twoStrs(args)
		if err != nil {
			return value.Q{}, err
		}
		return value.NewBool(strings.HasPrefix(x, y)), nil
	})
	ctx.Register("ends_with", []ArgType{ArgStr, ArgStr}, ArgBool, func(args []value.Q) (value.Q, error) {
		x, y, err := twoStrs(args)
		if err != nil {
			return value.Q{}, err
		}
		return value.NewBool(strings.HasSuffix(x, y)), nil
	})
}

func twoStrs(args []value.Q) (string, string, error) {
	x, err := args[0].ToStr()
	if err != nil {
		return "", "", err
	}
	y, err := args[1].ToStr()
	if err != nil {
		return "", "", err
	}
	return x.String(), y.String(), nil
}

func registerTemporal(ctx *Context) {
	ctx.Register("now", nil, ArgTimestamp, func(args []value.Q) (value.Q, error) {
		return value.NewInstant(value.Bound{Kind: value.BoundTimestamp, When: time.Now().UTC()}), nil
	})
	ctx.Register("today", nil, ArgTimestamp, func(args []value.Q) (value.Q, error) {
		n := time.Now().UTC()
		noon := time.Date(n.Year(), n.Month(), n.Day(), 12, 0, 0, 0, time.UTC)
		return value.NewInstant(value.Bound{Kind: value.BoundTimestamp, When: noon}), nil
	})
}

func registerSpatial(ctx *Context) {
	ctx.Register("boundary", []ArgType{ArgGeom}, ArgGeom, geomUnary(ctx, geom.Engine.Boundary))
	ctx.Register("envelope", []ArgType{ArgGeom}, ArgGeom, geomUnary(ctx, geom.Engine.Envelope))
	ctx.Register("centroid", []ArgType{ArgGeom}, ArgGeom, geomUnary(ctx, geom.Engine.Centroid))
	ctx.Register("convex_hull", []ArgType{ArgGeom}, ArgGeom, geomUnary(ctx, geom.Engine.ConvexHull))

	ctx.Register("buffer", []ArgType{ArgGeom, ArgNum}, ArgGeom, func(args []value.Q) (value.Q, error) {
		g, err := args[0].ToGeom()
		if err != nil {
			return value.Q{}, err
		}
		d, err := args[1].ToNum()
		if err != nil {
			return value.Q{}, err
		}
		if ctx.engine == nil {
			return value.Q{}, fmt.Errorf("buffer(): no spatial engine configured")
		}
		out, err := ctx.engine.Buffer(g, d)
		if err != nil {
			return value.Q{}, err
		}
		return value.NewGeom(out), nil
	})

	ctx.Register("get_x", []ArgType{ArgGeom}, ArgNum, func(args []value.Q) (value.Q, error) {
		g, err := args[0].ToGeom()
		if err != nil {
			return value.Q{}, err
		}
		return pointOrdinate(g, 0)
	})
	ctx.Register("get_y", []ArgType{ArgGeom}, ArgNum, func(args []value.Q) (value.Q, error) {
		g, err := args[0].ToGeom()
		if err != nil {
			return value.Q{}, err
		}
		return pointOrdinate(g, 1)
	})
	ctx.Register("get_z", []ArgType{ArgGeom}, ArgNum, func(args []value.Q) (value.Q, error) {
		g, err := args[0].ToGeom()
		if err != nil {
			return value.Q{}, err
		}
		return pointOrdinate(g, 2)
	})
	ctx.Register("wkt", []ArgType{ArgGeom}, ArgStr, func(args []value.Q) (value.Q, error) {
		g, err := args[0].ToGeom()
		if err != nil {
			return value.Q{}, err
		}
		return value.NewPlainStr(g.WKT(-1)), nil
	})
}

// geomUnary adapts a geom.Engine method of shape func(Geometry) (Geometry,
// error) into a registered Fn, resolving ctx.engine at call time so it
// reports a clear error rather than a nil-pointer panic when no engine was
// configured.
func geomUnary(ctx *Context, method func(geom.Engine, geom.Geometry) (geom.Geometry, error)) func([]value.Q) (value.Q, error) {
	return func(args []value.Q) (value.Q, error) {
		g, err := args[0].ToGeom()
		if err != nil {
			return value.Q{}, err
		}
		if ctx.engine == nil {
			return value.Q{}, fmt.Errorf("no spatial engine configured")
		}
		out, err := method(ctx.engine, g)
		if err != nil {
			return value.Q{}, err
		}
		return value.NewGeom(out), nil
	}
}

func pointOrdinate(g geom.Geometry, i int) (value.Q, error) {
	if g.Kind != geom.Point || len(g.Coords) == 0 || len(g.Coords[0]) <= i {
		return value.Q{}, fmt.Errorf("geometry is not a point with a %d-th ordinate", i)
	}
	return value.NewNum(g.Coords[0][i]), nil
}
