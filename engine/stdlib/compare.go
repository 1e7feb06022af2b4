package stdlib

import (
	"talc/engine/expr"
)

// compare builds the chained pairwise comparison forms. Every adjacent
// pair goes through Cmp, so a cross-kind argument fails the whole call;
// the first pair violating the relation yields Nil, else True.
func compare(holds func(c int) bool) expr.Handler {
	return func(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
		vals, err := evalAll(args(call), env)
		if err != nil {
			return nil, err
		}
		if len(vals) < 2 {
			return nil, usage(call, "expected at least two arguments")
		}
		for i := 1; i < len(vals); i++ {
			c, err := vals[i-1].Cmp(vals[i])
			if err != nil {
				return nil, err
			}
			if !holds(c) {
				return expr.Nil, nil
			}
		}
		return expr.True, nil
	}
}
