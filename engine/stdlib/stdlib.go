// Package stdlib implements the built-in functions and special forms of
// the talc language on top of the evaluator primitives. Register wires
// them into a registry; hosts can add their own natives through the same
// registry before evaluation starts.
package stdlib

import (
	"go.uber.org/zap"

	"talc/engine/expr"
	"talc/lib/errs"
	"talc/lib/fs"
	"talc/lib/timer"
)

// Options carries the injected collaborators of the standard library.
// Zero values get working defaults: the local filesystem and a no-op
// logger.
type Options struct {
	FS  fs.FS
	Log *zap.Logger
}

// Register installs every builtin into reg. The registry must not have
// seen any of the standard names before.
func Register(reg *expr.Registry, opts Options) error {
	if opts.FS == nil {
		opts.FS = fs.Local{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	builtins := map[string]expr.Handler{
		"let":  fnLet,
		"set":  fnSet,
		"copy": fnCopy,

		"if":     fnIf,
		"when":   fnWhen,
		"unless": fnUnless,
		"and":    fnAnd,
		"or":     fnOr,
		"not":    fnNot,

		"while": fnWhile,
		"until": fnUntil,
		"begin": fnBegin,
		"break": fnBreak,
		"end":   fnEnd,

		"catch":          fnCatch,
		"throw":          fnThrow,
		"error":          fnError,
		"error?":         fnErrorP,
		"error-code":     fnErrorCode,
		"error-what":     fnErrorWhat,
		"error-message":  fnErrorMessage,
		"error-category": fnErrorCategory,

		"math-add":  mathFold(expr.Numeric.Add),
		"math-sub":  mathFold(expr.Numeric.Sub),
		"math-mul":  mathFold(expr.Numeric.Mul),
		"math-div":  mathFold(expr.Numeric.Div),
		"math-add=": mathFoldInPlace(expr.Numeric.Add),
		"math-sub=": mathFoldInPlace(expr.Numeric.Sub),
		"math-mul=": mathFoldInPlace(expr.Numeric.Mul),
		"math-div=": mathFoldInPlace(expr.Numeric.Div),

		"lt?": compare(func(c int) bool { return c < 0 }),
		"le?": compare(func(c int) bool { return c <= 0 }),
		"eq?": compare(func(c int) bool { return c == 0 }),
		"ge?": compare(func(c int) bool { return c >= 0 }),
		"gt?": compare(func(c int) bool { return c > 0 }),

		"string":      fnString,
		"string-size": fnStringSize,
		"string-cat":  stringCat(false),
		"string-cat=": stringCat(true),

		"tuple":            fnTuple,
		"tuple-size":       fnTupleSize,
		"tuple-flat":       fnTupleFlat,
		"tuple-append":     tupleAppend(false),
		"tuple-append=":    tupleAppend(true),
		"tuple-transform":  tupleTransform(false),
		"tuple-transform=": tupleTransform(true),

		"fs-file-size": fsFileSize(opts),
		"fs-file-data": fsFileData(opts),
	}

	for name, handler := range builtins {
		if err := reg.Register(name, timed(name, handler)); err != nil {
			return err
		}
	}
	return nil
}

func timed(name string, h expr.Handler) expr.Handler {
	return func(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
		defer timer.Start(name).Stop()
		return h(call, env)
	}
}

// fnName is the name the call was dispatched under; usage errors carry it.
func fnName(call *expr.Tup) string {
	return call.At(0).(*expr.Fun).Name
}

func usage(call *expr.Tup, message string) error {
	return errs.Newf(errs.FunctionUsage, "%s: %s", fnName(call), message)
}

// args is the argument tail of a call, function position excluded.
func args(call *expr.Tup) []expr.Expr {
	return call.Elems()[1:]
}

// evalAll evaluates eagerly, left to right, stopping at the first failure.
func evalAll(exprs []expr.Expr, env *expr.Env) ([]expr.Expr, error) {
	vals := make([]expr.Expr, 0, len(exprs))
	for _, e := range exprs {
		v, err := e.Eval(env)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func truthy(e expr.Expr) bool {
	return e.Kind() != expr.KindNil
}

func boolean(b bool) expr.Expr {
	if b {
		return expr.True
	}
	return expr.Nil
}
