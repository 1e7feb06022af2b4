package stdlib

import (
	"github.com/samber/lo"

	"talc/engine/expr"
)

// mathFold builds the non-mutating arithmetic forms: a left fold over the
// evaluated arguments into a fresh node. The result is a float iff any
// operand is a float.
func mathFold(op func(expr.Numeric, expr.Expr) error) expr.Handler {
	return func(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
		vals, err := evalAll(args(call), env)
		if err != nil {
			return nil, err
		}
		acc, err := accumulator(call, vals)
		if err != nil {
			return nil, err
		}
		if err := fold(op, acc, vals[1:]); err != nil {
			return nil, err
		}
		return acc, nil
	}
}

// mathFoldInPlace builds the = variants: the fold runs with the same
// float contagion, but the result is stored back into the first
// argument's own node, converted to that node's kind, and the node
// itself is returned.
func mathFoldInPlace(op func(expr.Numeric, expr.Expr) error) expr.Handler {
	return func(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
		vals, err := evalAll(args(call), env)
		if err != nil {
			return nil, err
		}
		acc, err := accumulator(call, vals)
		if err != nil {
			return nil, err
		}
		target := vals[0].(expr.Numeric)
		if err := fold(op, acc, vals[1:]); err != nil {
			return nil, err
		}
		if err := target.Set(acc); err != nil {
			return nil, err
		}
		return target, nil
	}
}

// accumulator is a detached node seeded from the first operand, promoted
// to a float when any operand is one.
func accumulator(call *expr.Tup, vals []expr.Expr) (expr.Numeric, error) {
	if len(vals) == 0 {
		return nil, usage(call, "expected at least one argument")
	}
	anyFloat := lo.ContainsBy(vals, func(v expr.Expr) bool {
		return v.Kind() == expr.KindFloat
	})
	switch first := vals[0].(type) {
	case *expr.Integer:
		if anyFloat {
			return expr.NewFloat(float64(first.Value())), nil
		}
		return expr.NewInteger(first.Value()), nil
	case *expr.Float:
		return expr.NewFloat(first.Value()), nil
	default:
		return nil, usage(call, "arguments must be numeric")
	}
}

func fold(op func(expr.Numeric, expr.Expr) error, acc expr.Numeric, rest []expr.Expr) error {
	for _, v := range rest {
		if err := op(acc, v); err != nil {
			return err
		}
	}
	return nil
}
