package stdlib

import (
	"talc/engine/expr"
	"talc/lib/errs"
)

func fnWhile(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	return loop(call, env, false)
}

func fnUntil(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	return loop(call, env, true)
}

// loop re-evaluates the condition before each pass over the body. A
// break signal escaping the body stops the loop, which then returns the
// signal's payload as its own normal result; any other failure
// propagates unchanged. Normal exhaustion of the condition yields Nil.
// There is no iteration guard; bounding execution is the host's concern.
func loop(call *expr.Tup, env *expr.Env, negate bool) (expr.Expr, error) {
	a := args(call)
	if len(a) == 0 {
		return nil, usage(call, "expected a condition")
	}
	for {
		cond, err := a[0].Eval(env)
		if err != nil {
			return nil, err
		}
		if truthy(cond) == negate {
			return expr.Nil, nil
		}
		for _, body := range a[1:] {
			if _, err := body.Eval(env); err != nil {
				if sig, ok := expr.AsSignal(err); ok && sig.Code == errs.UnhandledBreak {
					return sig.Value, nil
				}
				return nil, err
			}
		}
	}
}

// fnBegin evaluates a sequence keeping the last result. An end signal
// stops the sequence early and its payload becomes the result.
func fnBegin(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	last := expr.Nil
	for _, e := range args(call) {
		v, err := e.Eval(env)
		if err != nil {
			if sig, ok := expr.AsSignal(err); ok && sig.Code == errs.UnhandledEnd {
				return sig.Value, nil
			}
			return nil, err
		}
		last = v
	}
	return last, nil
}

func fnBreak(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	payload, err := signalPayload(call, env)
	if err != nil {
		return nil, err
	}
	return nil, expr.NewBreak(payload)
}

func fnEnd(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	payload, err := signalPayload(call, env)
	if err != nil {
		return nil, err
	}
	return nil, expr.NewEnd(payload)
}

func signalPayload(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	a := args(call)
	switch len(a) {
	case 0:
		return expr.Nil, nil
	case 1:
		return a[0].Eval(env)
	default:
		return nil, usage(call, "expected at most one argument")
	}
}
