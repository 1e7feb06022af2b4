package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talc/engine/expr"
	"talc/lib/errs"
)

func TestTuple(t *testing.T) {
	env := testEnv(t)

	v := eval(t, env, "(tuple 1 'two' (math-add 1 2))")
	tup, ok := v.(*expr.Tup)
	require.True(t, ok)
	require.Equal(t, 3, tup.Len())
	assert.Equal(t, int64(3), asInt(t, tup.At(2)))

	assert.Equal(t, 0, eval(t, env, "(tuple)").(*expr.Tup).Len())
}

func TestTupleSize(t *testing.T) {
	env := testEnv(t)
	assert.Equal(t, int64(2), asInt(t, eval(t, env, "(tuple-size (tuple 1 2))")))

	err := evalErr(t, env, "(tuple-size 1)")
	assert.Equal(t, errs.FunctionUsage, errs.CodeOf(err))
}

func TestTupleFlat(t *testing.T) {
	env := testEnv(t)
	v := eval(t, env, "(tuple-flat (tuple 1 (tuple 2 (tuple 3) 4) 5))")
	assert.Equal(t, "(1 2 3 4 5)", v.String())

	assert.Equal(t, 0, eval(t, env, "(tuple-flat (tuple))").(*expr.Tup).Len())
}

func TestTupleAppend(t *testing.T) {
	env := testEnv(t)
	bound := expr.NewTup(expr.NewInteger(1), expr.NewInteger(2))
	env.Set("t", bound)

	// The plain form appends to a clone; the bound tuple keeps its size.
	v := eval(t, env, "(tuple-append $t 3)")
	assert.Equal(t, "(1 2 3)", v.String())
	assert.Equal(t, 2, bound.Len())

	v = eval(t, env, "(tuple-append= $t 3 4)")
	assert.Same(t, bound, v.(*expr.Tup))
	assert.Equal(t, 4, bound.Len())

	err := evalErr(t, env, "(tuple-append 1 2)")
	assert.Equal(t, errs.FunctionUsage, errs.CodeOf(err))
}

func TestTupleTransform(t *testing.T) {
	env := testEnv(t)
	bound := expr.NewTup(expr.NewInteger(1), expr.NewInteger(2), expr.NewInteger(3))
	env.Set("t", bound)

	v := eval(t, env, "(tuple-transform $t $e (math-mul $e 10))")
	assert.Equal(t, "(10 20 30)", v.String())
	assert.Equal(t, "(1 2 3)", bound.String(), "plain form operates on a clone")

	v = eval(t, env, "(tuple-transform= $t $e (math-add $e 1))")
	assert.Same(t, bound, v.(*expr.Tup))
	assert.Equal(t, "(2 3 4)", bound.String())

	// The element variable is scoped to the body.
	assert.False(t, env.IsBound("e"))

	// An outer binding of the same name is shadowed, not clobbered.
	env.Set("e", expr.NewStr("outer"))
	eval(t, env, "(tuple-transform $t $e $e)")
	assert.Equal(t, "outer", eval(t, env, "$e").(*expr.Str).Text())

	err := evalErr(t, env, "(tuple-transform $t 5 $e)")
	assert.Equal(t, errs.FunctionUsage, errs.CodeOf(err))

	// A body failure aborts the transform.
	err = evalErr(t, env, "(tuple-transform $t $e (math-div $e 0))")
	assert.Equal(t, errs.NumericDivideByZero, errs.CodeOf(err))
}
