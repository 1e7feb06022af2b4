package stdlib

import (
	"talc/engine/expr"
)

func fnTuple(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	vals, err := evalAll(args(call), env)
	if err != nil {
		return nil, err
	}
	return expr.NewTup(vals...), nil
}

func fnTupleSize(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	t, err := tupleArg(call, env)
	if err != nil {
		return nil, err
	}
	return expr.NewInteger(int64(t.Len())), nil
}

// fnTupleFlat recursively inlines nested tuples' elements into a fresh
// flat tuple; the elements themselves are shared, not copied.
func fnTupleFlat(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	t, err := tupleArg(call, env)
	if err != nil {
		return nil, err
	}
	flat := expr.NewTup()
	inline(t, flat)
	return flat, nil
}

func inline(t *expr.Tup, out *expr.Tup) {
	for _, e := range t.Elems() {
		if sub, ok := e.(*expr.Tup); ok {
			inline(sub, out)
		} else {
			out.Append(e)
		}
	}
}

// tupleAppend builds tuple-append and tuple-append=. The plain form
// appends to a clone so the original tuple is never aliased.
func tupleAppend(inPlace bool) expr.Handler {
	return func(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
		vals, err := evalAll(args(call), env)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, usage(call, "expected at least one argument")
		}
		target, ok := vals[0].(*expr.Tup)
		if !ok {
			return nil, usage(call, "first argument must be a tuple")
		}
		if !inPlace {
			target = target.Clone().(*expr.Tup)
		}
		target.Append(vals[1:]...)
		return target, nil
	}
}

// tupleTransform builds tuple-transform and tuple-transform=: each
// element is bound to the supplied local variable in a shadowed
// environment and the body's result replaces it. The plain form operates
// on a clone.
func tupleTransform(inPlace bool) expr.Handler {
	return func(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
		a := args(call)
		if len(a) != 3 {
			return nil, usage(call, "expected a tuple, a variable and a body")
		}
		v, err := a[0].Eval(env)
		if err != nil {
			return nil, err
		}
		target, ok := v.(*expr.Tup)
		if !ok {
			return nil, usage(call, "first argument must be a tuple")
		}
		lvar, ok := a[1].(*expr.Lvar)
		if !ok {
			return nil, usage(call, "second argument must be a local variable")
		}
		if !inPlace {
			target = target.Clone().(*expr.Tup)
		}
		for i := 0; i < target.Len(); i++ {
			shadow := env.Shadow()
			shadow.Set(lvar.Name, target.At(i))
			replacement, err := a[2].Eval(shadow)
			if err != nil {
				return nil, err
			}
			target.SetAt(i, replacement)
		}
		return target, nil
	}
}

func tupleArg(call *expr.Tup, env *expr.Env) (*expr.Tup, error) {
	a := args(call)
	if len(a) != 1 {
		return nil, usage(call, "expected exactly one argument")
	}
	v, err := a[0].Eval(env)
	if err != nil {
		return nil, err
	}
	t, ok := v.(*expr.Tup)
	if !ok {
		return nil, usage(call, "argument must be a tuple")
	}
	return t, nil
}
