package stdlib

import (
	"talc/engine/expr"
)

// fnLet destructures a tuple of ($var value) pairs into a shadowed
// environment and evaluates the body there. The pair values are
// evaluated in the caller's environment; the caller's bindings are left
// untouched.
func fnLet(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	a := args(call)
	if len(a) != 2 {
		return nil, usage(call, "expected a pairs tuple and a body")
	}
	pairs, ok := a[0].(*expr.Tup)
	if !ok {
		return nil, usage(call, "first argument must be a tuple of ($var value) pairs")
	}
	shadow := env.Shadow()
	for _, p := range pairs.Elems() {
		pair, ok := p.(*expr.Tup)
		if !ok || pair.Len() != 2 {
			return nil, usage(call, "each binding must be a ($var value) pair")
		}
		lvar, ok := pair.At(0).(*expr.Lvar)
		if !ok {
			return nil, usage(call, "binding target must be a local variable")
		}
		value, err := pair.At(1).Eval(env)
		if err != nil {
			return nil, err
		}
		shadow.Set(lvar.Name, value)
	}
	return a[1].Eval(shadow)
}

// fnSet writes one or more (var value) pairs, local or global depending
// on the variable's kind, and returns the last written value.
func fnSet(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	a := args(call)
	if len(a) == 0 || len(a)%2 != 0 {
		return nil, usage(call, "expected one or more (var value) pairs")
	}
	var last expr.Expr
	for i := 0; i < len(a); i += 2 {
		value, err := a[i+1].Eval(env)
		if err != nil {
			return nil, err
		}
		switch target := a[i].(type) {
		case *expr.Lvar:
			env.Set(target.Name, value)
		case *expr.Gvar:
			env.Globals().Set(target.Name, value)
		default:
			return nil, usage(call, "assignment target must be a variable")
		}
		last = value
	}
	return last, nil
}

func fnCopy(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	a := args(call)
	switch len(a) {
	case 0:
		return expr.Nil, nil
	case 1:
		v, err := a[0].Eval(env)
		if err != nil {
			return nil, err
		}
		return v.Clone(), nil
	default:
		return nil, usage(call, "expected at most one argument")
	}
}
