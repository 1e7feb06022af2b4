package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talc/engine/expr"
	"talc/lib/errs"
)

func TestWhileBreak(t *testing.T) {
	env := testEnv(t)
	assert.Equal(t, int64(5), asInt(t, eval(t, env, "(while #true (break 5))")))

	// Countdown: the loop result on normal exhaustion is Nil.
	eval(t, env, "(set $n 3)")
	assert.Equal(t, expr.Nil, eval(t, env, "(while (gt? $n 0) (set $n (math-sub $n 1)))"))
	assert.Equal(t, int64(0), asInt(t, eval(t, env, "$n")))

	// A break with no payload carries Nil.
	assert.Equal(t, expr.Nil, eval(t, env, "(while #true (break))"))
}

func TestUntil(t *testing.T) {
	env := testEnv(t)
	eval(t, env, "(set $n 0)")
	assert.Equal(t, expr.Nil,
		eval(t, env, "(until (ge? $n 4) (set $n (math-add $n 1)))"))
	assert.Equal(t, int64(4), asInt(t, eval(t, env, "$n")))

	assert.Equal(t, int64(9), asInt(t, eval(t, env, "(until #nil (break 9))")))
}

func TestLoopPropagatesRealFailures(t *testing.T) {
	env := testEnv(t)

	err := evalErr(t, env, "(while #true (math-div 1 0))")
	assert.Equal(t, errs.NumericDivideByZero, errs.CodeOf(err))

	// An end signal is not for while to intercept.
	err = evalErr(t, env, "(while #true (end 1))")
	assert.Equal(t, errs.UnhandledEnd, errs.CodeOf(err))
}

func TestBegin(t *testing.T) {
	env := testEnv(t)
	assert.Equal(t, int64(3), asInt(t, eval(t, env, "(begin 1 2 3)")))
	assert.Equal(t, int64(2), asInt(t, eval(t, env, "(begin 1 (end 2) 3)")))
	assert.Equal(t, expr.Nil, eval(t, env, "(begin)"))
	assert.Equal(t, expr.Nil, eval(t, env, "(begin 1 (end) 3)"))

	// A break signal passes through begin untouched.
	err := evalErr(t, env, "(begin (break 1))")
	assert.Equal(t, errs.UnhandledBreak, errs.CodeOf(err))

	// Break inside a loop body wrapped in begin still reaches the loop.
	assert.Equal(t, int64(7), asInt(t, eval(t, env, "(while #true (begin 1 (break 7)))")))
}

func TestUnhandledSignalsSurfaceAsErrors(t *testing.T) {
	env := testEnv(t)

	err := evalErr(t, env, "(break 1)")
	assert.Equal(t, errs.UnhandledBreak, errs.CodeOf(err))
	sig, ok := expr.AsSignal(err)
	require.True(t, ok)
	assert.Equal(t, int64(1), asInt(t, sig.Value))

	err = evalErr(t, env, "(end)")
	assert.Equal(t, errs.UnhandledEnd, errs.CodeOf(err))
}

func TestNestedLoopsInterceptInnermost(t *testing.T) {
	env := testEnv(t)
	// The inner loop consumes the break; the outer sees a plain value and
	// needs its own break to stop.
	src := `(begin
		(set $outer 0)
		(while (lt? $outer 2)
			(set $inner (while #true (break 40)))
			(set $outer (math-add $outer 1)))
		$inner)`
	assert.Equal(t, int64(40), asInt(t, eval(t, env, src)))
}
