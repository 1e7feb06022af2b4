package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talc/engine/expr"
	"talc/lib/errs"
)

func TestMathFold(t *testing.T) {
	env := testEnv(t)

	assert.Equal(t, int64(6), asInt(t, eval(t, env, "(math-add 1 2 3)")))
	assert.Equal(t, int64(4), asInt(t, eval(t, env, "(math-sub 10 5 1)")))
	assert.Equal(t, int64(24), asInt(t, eval(t, env, "(math-mul 2 3 4)")))
	assert.Equal(t, int64(5), asInt(t, eval(t, env, "(math-div 11 2)")))

	// A single argument folds to itself, detached from the input node.
	assert.Equal(t, int64(7), asInt(t, eval(t, env, "(math-add 7)")))
}

func TestMathFloatContagion(t *testing.T) {
	env := testEnv(t)

	v := eval(t, env, "(math-add 1 2.0)")
	require.Equal(t, expr.KindFloat, v.Kind())
	assert.Equal(t, 3.0, v.(*expr.Float).Value())

	// Contagion applies whichever position the float is in.
	v = eval(t, env, "(math-div 5.0 2)")
	require.Equal(t, expr.KindFloat, v.Kind())
	assert.Equal(t, 2.5, v.(*expr.Float).Value())

	v = eval(t, env, "(math-mul 2 2 0.5)")
	assert.Equal(t, expr.KindFloat, v.Kind())

	// All integers stay integer.
	assert.Equal(t, expr.KindInteger, eval(t, env, "(math-add 1 2)").Kind())
}

func TestMathDivideByZero(t *testing.T) {
	env := testEnv(t)
	for _, src := range []string{"(math-div 1 0)", "(math-div 1.0 0)", "(math-div 1 0.0)"} {
		err := evalErr(t, env, src)
		assert.Equal(t, errs.NumericDivideByZero, errs.CodeOf(err), src)
	}
}

func TestMathArgumentErrors(t *testing.T) {
	env := testEnv(t)

	err := evalErr(t, env, "(math-add)")
	assert.Equal(t, errs.FunctionUsage, errs.CodeOf(err))

	err = evalErr(t, env, "(math-add 'one' 2)")
	assert.Equal(t, errs.FunctionUsage, errs.CodeOf(err))

	err = evalErr(t, env, "(math-add 1 'two')")
	assert.Equal(t, errs.KindMismatch, errs.CodeOf(err))
}

func TestMathInPlace(t *testing.T) {
	env := testEnv(t)

	bound := expr.NewInteger(10)
	env.Set("n", bound)
	v := eval(t, env, "(math-add= $n 5)")
	assert.Same(t, bound, v.(*expr.Integer), "the first argument's own node is returned")
	assert.Equal(t, int64(15), bound.Value())

	// Non-mutating form leaves the bound node alone.
	eval(t, env, "(math-add $n 5)")
	assert.Equal(t, int64(15), bound.Value())

	// Float operands fold with contagion; storing into an integer node
	// converts back to its kind.
	eval(t, env, "(set $n 10)")
	assert.Equal(t, int64(12), asInt(t, eval(t, env, "(math-add= $n 1.5 1.0)")))

	f := expr.NewFloat(9)
	env.Set("f", f)
	eval(t, env, "(math-div= $f 2)")
	assert.Equal(t, 4.5, f.Value())

	err := evalErr(t, env, "(math-div= $f 0)")
	assert.Equal(t, errs.NumericDivideByZero, errs.CodeOf(err))
}

func TestComparisons(t *testing.T) {
	env := testEnv(t)

	assert.Equal(t, expr.True, eval(t, env, "(lt? 1 2 3)"))
	assert.Equal(t, expr.Nil, eval(t, env, "(lt? 1 3 2)"))
	assert.Equal(t, expr.True, eval(t, env, "(le? 1 1 2)"))
	assert.Equal(t, expr.True, eval(t, env, "(eq? 2 2 2)"))
	assert.Equal(t, expr.Nil, eval(t, env, "(eq? 2 2 3)"))
	assert.Equal(t, expr.True, eval(t, env, "(ge? 3 3 1)"))
	assert.Equal(t, expr.True, eval(t, env, "(gt? 3 2 1)"))
	assert.Equal(t, expr.True, eval(t, env, "(lt? 'a' 'b')"))

	err := evalErr(t, env, "(lt? 1)")
	assert.Equal(t, errs.FunctionUsage, errs.CodeOf(err))

	// Cross-kind comparison fails the whole call, Integer vs Float
	// included.
	err = evalErr(t, env, "(lt? 1 2.0)")
	assert.Equal(t, errs.KindMismatch, errs.CodeOf(err))
	err = evalErr(t, env, "(eq? 'a' 1)")
	assert.Equal(t, errs.KindMismatch, errs.CodeOf(err))
}
