package stdlib

import (
	"talc/engine/expr"
	"talc/lib/errs"
)

// fnCatch evaluates its trailing body argument; the arguments before it
// are (matcher handler) pairs. On a body failure the matchers are
// evaluated in order: an error value with the failing code, an integer
// equal to the failing code, or #true selects its handler, whose result
// replaces the failure. With no matching pair the failure propagates.
// Escaped break/end signals carry their reserved codes and are matchable
// like any other failure.
func fnCatch(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	a := args(call)
	if len(a) == 0 {
		return nil, usage(call, "expected a body")
	}
	pairs := a[:len(a)-1]
	for _, p := range pairs {
		if pair, ok := p.(*expr.Tup); !ok || pair.Len() != 2 {
			return nil, usage(call, "each clause must be a (matcher handler) pair")
		}
	}

	result, err := a[len(a)-1].Eval(env)
	if err == nil {
		return result, nil
	}
	code := errs.CodeOf(err)
	for _, p := range pairs {
		pair := p.(*expr.Tup)
		matcher, merr := pair.At(0).Eval(env)
		if merr != nil {
			return nil, merr
		}
		if matches(matcher, code) {
			return pair.At(1).Eval(env)
		}
	}
	return nil, err
}

func matches(matcher expr.Expr, code errs.Code) bool {
	switch m := matcher.(type) {
	case *expr.Err:
		return m.Value().Code == code
	case *expr.Integer:
		return m.Value() == int64(code)
	default:
		return matcher.Kind() == expr.KindTrue
	}
}

// fnThrow re-raises an error value as a live failure.
func fnThrow(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	a := args(call)
	if len(a) != 1 {
		return nil, usage(call, "expected exactly one argument")
	}
	v, err := a[0].Eval(env)
	if err != nil {
		return nil, err
	}
	e, ok := v.(*expr.Err)
	if !ok {
		return nil, usage(call, "argument must be an error value")
	}
	return nil, errs.New(e.Value().Code, e.Value().Message)
}

// fnError constructs an error value from an integer condition and an
// optional text.
func fnError(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	vals, err := evalAll(args(call), env)
	if err != nil {
		return nil, err
	}
	if len(vals) < 1 || len(vals) > 2 {
		return nil, usage(call, "expected a condition and an optional message")
	}
	code, ok := vals[0].(*expr.Integer)
	if !ok {
		return nil, usage(call, "condition must be an integer")
	}
	message := ""
	if len(vals) == 2 {
		text, ok := vals[1].(*expr.Str)
		if !ok {
			return nil, usage(call, "message must be a string")
		}
		message = text.Text()
	}
	return expr.NewErr(errs.New(errs.Code(code.Value()), message)), nil
}

func fnErrorP(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	v, err := errorArg(call, env)
	if err != nil {
		return nil, err
	}
	_, ok := v.(*expr.Err)
	return boolean(ok), nil
}

func fnErrorCode(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	v, err := errorArg(call, env)
	if err != nil {
		return nil, err
	}
	if e, ok := v.(*expr.Err); ok {
		return expr.NewInteger(int64(e.Value().Code)), nil
	}
	return expr.Nil, nil
}

func fnErrorWhat(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	v, err := errorArg(call, env)
	if err != nil {
		return nil, err
	}
	if e, ok := v.(*expr.Err); ok {
		return expr.NewStr(e.Value().Error()), nil
	}
	return expr.Nil, nil
}

func fnErrorMessage(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	v, err := errorArg(call, env)
	if err != nil {
		return nil, err
	}
	if e, ok := v.(*expr.Err); ok {
		return expr.NewStr(e.Value().Message), nil
	}
	return expr.Nil, nil
}

func fnErrorCategory(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	v, err := errorArg(call, env)
	if err != nil {
		return nil, err
	}
	if e, ok := v.(*expr.Err); ok {
		return expr.NewStr(e.Value().Category()), nil
	}
	return expr.Nil, nil
}

func errorArg(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	a := args(call)
	if len(a) != 1 {
		return nil, usage(call, "expected exactly one argument")
	}
	return a[0].Eval(env)
}
