package expr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"talc/lib/errs"
)

func TestEnvSetLookup(t *testing.T) {
	env := NewEnv(NewGlobals(), NewRegistry())

	_, err := env.Lookup("x")
	require.Error(t, err)
	assert.Equal(t, errs.VariableUnbound, errs.CodeOf(err))
	assert.False(t, env.IsBound("x"))

	bound := NewInteger(1)
	env.Set("x", bound)
	got, err := env.Lookup("x")
	require.NoError(t, err)
	assert.Same(t, bound, got.(*Integer), "lookup shares the bound node")
	assert.True(t, env.IsBound("x"))

	// Overwrite happens in place, not by shadowing with a second entry.
	env.Set("x", NewInteger(2))
	got, err = env.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.(*Integer).Value())
}

func TestEnvShadowIsolation(t *testing.T) {
	env := NewEnv(NewGlobals(), NewRegistry())
	env.Set("a", NewInteger(1))

	shadow := env.Shadow()
	shadow.Set("a", NewInteger(10))
	shadow.Set("b", NewInteger(20))

	got, err := env.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.(*Integer).Value())
	assert.False(t, env.IsBound("b"))

	got, err = shadow.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.(*Integer).Value())
}

func TestEnvVariableEval(t *testing.T) {
	globals := NewGlobals()
	env := NewEnv(globals, NewRegistry())
	env.Set("l", NewStr("local"))
	globals.Set("g", NewStr("global"))

	got, err := (&Lvar{Name: "l"}).Eval(env)
	require.NoError(t, err)
	assert.Equal(t, "local", got.(*Str).Text())

	got, err = (&Gvar{Name: "g"}).Eval(env)
	require.NoError(t, err)
	assert.Equal(t, "global", got.(*Str).Text())

	_, err = (&Gvar{Name: "missing"}).Eval(env)
	require.Error(t, err)
	assert.Equal(t, errs.VariableUnbound, errs.CodeOf(err))
}

func TestGlobalsConcurrentAccess(t *testing.T) {
	globals := NewGlobals()
	var eg errgroup.Group
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("k%d", i)
		eg.Go(func() error {
			for j := 0; j < 1000; j++ {
				globals.Set(name, NewInteger(int64(j)))
				if _, err := globals.Lookup(name); err != nil {
					return err
				}
				globals.IsBound("k0")
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	for i := 0; i < 8; i++ {
		got, err := globals.Lookup(fmt.Sprintf("k%d", i))
		require.NoError(t, err)
		assert.Equal(t, int64(999), got.(*Integer).Value())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	h := func(call *Tup, _ *Env) (Expr, error) { return Nil, nil }

	require.NoError(t, reg.Register("f", h))
	err := reg.Register("f", h)
	require.Error(t, err)
	assert.Equal(t, errs.FunctionUsage, errs.CodeOf(err))

	// Case-sensitive: F is a different name.
	require.NoError(t, reg.Register("F", h))
}

func TestSignalCarriesCode(t *testing.T) {
	sig := NewBreak(NewInteger(5))
	assert.Equal(t, errs.UnhandledBreak, errs.CodeOf(sig))

	got, ok := AsSignal(fmt.Errorf("wrapped: %w", sig))
	require.True(t, ok)
	assert.Equal(t, int64(5), got.Value.(*Integer).Value())

	_, ok = AsSignal(errs.New(errs.KindMismatch, ""))
	assert.False(t, ok)

	end := NewEnd(Nil)
	assert.Equal(t, errs.UnhandledEnd, errs.CodeOf(end))
	assert.Contains(t, end.Error(), "unhandled end")
}
