package stdlib

import (
	"strings"

	"talc/engine/expr"
)

// fnString concatenates the canonical text of its arguments; string
// arguments contribute their raw text, unquoted.
func fnString(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	vals, err := evalAll(args(call), env)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	for _, v := range vals {
		if s, ok := v.(*expr.Str); ok {
			sb.WriteString(s.Text())
		} else {
			sb.WriteString(v.String())
		}
	}
	return expr.NewStr(sb.String()), nil
}

func fnStringSize(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
	a := args(call)
	if len(a) != 1 {
		return nil, usage(call, "expected exactly one argument")
	}
	v, err := a[0].Eval(env)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*expr.Str)
	if !ok {
		return nil, usage(call, "argument must be a string")
	}
	return expr.NewInteger(int64(len(s.Text()))), nil
}

// stringCat builds string-cat and string-cat=. The plain form clones the
// first string before appending; the = form grows the first argument's
// own buffer and returns that node.
func stringCat(inPlace bool) expr.Handler {
	return func(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
		vals, err := evalAll(args(call), env)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, usage(call, "expected at least one argument")
		}
		target, ok := vals[0].(*expr.Str)
		if !ok {
			return nil, usage(call, "first argument must be a string")
		}
		if !inPlace {
			target = target.Clone().(*expr.Str)
		}
		for _, v := range vals[1:] {
			s, ok := v.(*expr.Str)
			if !ok {
				return nil, usage(call, "arguments must be strings")
			}
			target.Append(s.Text())
		}
		return target, nil
	}
}
