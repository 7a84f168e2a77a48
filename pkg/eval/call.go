package eval

import (
	"log/slog"

	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/ir"
	"github.com/geocql/cql2/pkg/value"
)

// evalCall resolves and invokes a registered function. An unknown function
// name or a wrong argument count is logged and treated as Null rather than
// raised; an argument type mismatch is a hard error, and a registered
// function's own body failing logs-and-Nulls.
func (e *Evaluator) evalCall(n *ir.Call, feature value.Resource) (value.Q, error) {
	fi, ok := e.ctx.FnInfo(n.Name)
	if !ok {
		slog.Warn("use of unknown function", "name", n.Name)
		return value.Null, nil
	}
	if len(n.Args) != len(fi.ArgTypes) {
		slog.Warn("function has wrong arguments count", "name", n.Name,
			"got", len(n.Args), "expected", len(fi.ArgTypes))
		return value.Null, nil
	}

	args := make([]value.Q, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalValue(a, feature)
		if err != nil {
			return value.Q{}, err
		}
		args[i] = v
	}
	for i, at := range fi.ArgTypes {
		if err := checkArgType(args[i], at); err != nil {
			return value.Q{}, cql2err.Wrap(cql2err.KindType, err, "function %q argument %d", n.Name, i+1)
		}
	}

	result, err := fi.Fn(args)
	if err != nil {
		slog.Warn("function invocation failed", "name", n.Name, "error", err)
		return value.Null, nil
	}
	return result, nil
}

func checkArgType(q value.Q, at ArgType) error {
	switch at {
	case ArgStr:
		_, err := q.ToStr()
		return err
	case ArgNum:
		_, err := q.ToNum()
		return err
	case ArgBool:
		_, err := q.ToBool()
		return err
	case ArgDate, ArgTimestamp:
		_, err := q.ToBound()
		return err
	case ArgGeom:
		_, err := q.ToGeom()
		return err
	default:
		return nil
	}
}
