package stdlib

import (
	"talc/engine/expr"
)

// fnIf evaluates the condition and then exactly one branch. A missing
// else branch yields Nil.
func fnIf(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	a := args(call)
	if len(a) < 2 || len(a) > 3 {
		return nil, usage(call, "expected a condition, a then branch and an optional else branch")
	}
	cond, err := a[0].Eval(env)
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return a[1].Eval(env)
	}
	if len(a) == 3 {
		return a[2].Eval(env)
	}
	return expr.Nil, nil
}

func fnWhen(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	return conditionalBody(call, env, false)
}

func fnUnless(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	return conditionalBody(call, env, true)
}

func conditionalBody(call *expr.Tup, env *expr.Env, negate bool) (expr.Expr, error) {
	a := args(call)
	if len(a) == 0 {
		return nil, usage(call, "expected a condition")
	}
	cond, err := a[0].Eval(env)
	if err != nil {
		return nil, err
	}
	if truthy(cond) == negate {
		return expr.Nil, nil
	}
	last := expr.Nil
	for _, body := range a[1:] {
		if last, err = body.Eval(env); err != nil {
			return nil, err
		}
	}
	return last, nil
}

// fnAnd short-circuits at the first falsy argument. With every argument
// truthy it returns the last value; with none it returns True.
func fnAnd(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	last := expr.True
	for _, e := range args(call) {
		v, err := e.Eval(env)
		if err != nil {
			return nil, err
		}
		if !truthy(v) {
			return expr.Nil, nil
		}
		last = v
	}
	return last, nil
}

// fnOr returns the first truthy value, or Nil when none is.
func fnOr(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	for _, e := range args(call) {
		v, err := e.Eval(env)
		if err != nil {
			return nil, err
		}
		if truthy(v) {
			return v, nil
		}
	}
	return expr.Nil, nil
}

func fnNot(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	a := args(call)
	if len(a) != 1 {
		return nil, usage(call, "expected exactly one argument")
	}
	v, err := a[0].Eval(env)
	if err != nil {
		return nil, err
	}
	return boolean(!truthy(v)), nil
}
