package stdlib

import (
	"go.uber.org/zap"

	"talc/engine/expr"
)

// The filesystem builtins are thin calls into the injected collaborator;
// its errors pass through untranslated.

func fsFileSize(opts Options) expr.Handler {
	return func(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
		path, err := pathArg(call, env)
		if err != nil {
			return nil, err
		}
		size, err := opts.FS.Size(path)
		if err != nil {
			opts.Log.Debug("fs-file-size failed", zap.String("path", path), zap.Error(err))
			return nil, err
		}
		return expr.NewInteger(size), nil
	}
}

func fsFileData(opts Options) expr.Handler {
	return func(call *expr.Tup, env *expr.Env) (expr.Expr, error) {
		path, err := pathArg(call, env)
		if err != nil {
			return nil, err
		}
		data, err := opts.FS.Data(path)
		if err != nil {
			opts.Log.Debug("fs-file-data failed", zap.String("path", path), zap.Error(err))
			return nil, err
		}
		return expr.NewStr(data), nil
	}
}

func pathArg(call *expr.Tup, env *expr.Env) (string, error) {
	a := args(call)
	if len(a) != 1 {
		return "", usage(call, "expected exactly one path argument")
	}
	v, err := a[0].Eval(env)
	if err != nil {
		return "", err
	}
	s, ok := v.(*expr.Str)
	if !ok {
		return "", usage(call, "path must be a string")
	}
	return s.Text(), nil
}
