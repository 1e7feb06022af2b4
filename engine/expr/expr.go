// Package expr defines the talc expression model: a closed set of node
// kinds sharing one capability surface (Kind, Clone, String, Cmp, Eval),
// plus the environment and function registry the evaluator runs against.
package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"talc/lib/errs"
)

// Kind tags one expression variant.
type Kind int

const (
	KindLvar Kind = iota
	KindGvar
	KindFun
	KindErr
	KindNil
	KindTrue
	KindInteger
	KindFloat
	KindStr
	KindTup
)

func (k Kind) String() string {
	switch k {
	case KindLvar:
		return "lvar"
	case KindGvar:
		return "gvar"
	case KindFun:
		return "fun"
	case KindErr:
		return "error"
	case KindNil:
		return "nil"
	case KindTrue:
		return "true"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindStr:
		return "string"
	case KindTup:
		return "tuple"
	}
	return "unknown"
}

// Expr is one node of an expression tree. The set of implementations is
// closed; the unexported marker keeps it that way.
type Expr interface {
	isExpr()

	Kind() Kind
	// Clone returns a deep copy. The Nil and True singletons return
	// themselves.
	Clone() Expr
	// String renders the canonical textual form, which re-parses to an
	// equal tree.
	String() string
	// Cmp is a three-way comparison. Comparing across kinds is an error,
	// never an approximation.
	Cmp(other Expr) (int, error)
	// Eval evaluates the node against an environment. Most nodes are
	// self-evaluating; variables resolve and tuples with a function head
	// dispatch through the registry.
	Eval(env *Env) (Expr, error)
}

var (
	_ Expr = (*Lvar)(nil)
	_ Expr = (*Gvar)(nil)
	_ Expr = (*Fun)(nil)
	_ Expr = (*Err)(nil)
	_ Expr = nilType{}
	_ Expr = trueType{}
	_ Expr = (*Integer)(nil)
	_ Expr = (*Float)(nil)
	_ Expr = (*Str)(nil)
	_ Expr = (*Tup)(nil)
)

func cmpMismatch(a, b Expr) error {
	return errs.Newf(errs.KindMismatch, "cannot compare %s with %s", a.Kind(), b.Kind())
}

func cmpOrder[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Lvar is a reference to a local variable, written $name.
type Lvar struct {
	Name string
}

func (v *Lvar) isExpr()        {}
func (v *Lvar) Kind() Kind     { return KindLvar }
func (v *Lvar) Clone() Expr    { return &Lvar{Name: v.Name} }
func (v *Lvar) String() string { return "$" + v.Name }

func (v *Lvar) Cmp(other Expr) (int, error) {
	o, ok := other.(*Lvar)
	if !ok {
		return 0, cmpMismatch(v, other)
	}
	return cmpOrder(v.Name, o.Name), nil
}

// Eval resolves the variable to the bound node itself, shared rather than
// copied, so that mutating builtins reach the stored buffer.
func (v *Lvar) Eval(env *Env) (Expr, error) {
	return env.Lookup(v.Name)
}

// Gvar is a reference to a global variable, written @name.
type Gvar struct {
	Name string
}

func (v *Gvar) isExpr()        {}
func (v *Gvar) Kind() Kind     { return KindGvar }
func (v *Gvar) Clone() Expr    { return &Gvar{Name: v.Name} }
func (v *Gvar) String() string { return "@" + v.Name }

func (v *Gvar) Cmp(other Expr) (int, error) {
	o, ok := other.(*Gvar)
	if !ok {
		return 0, cmpMismatch(v, other)
	}
	return cmpOrder(v.Name, o.Name), nil
}

func (v *Gvar) Eval(env *Env) (Expr, error) {
	return env.Globals().Lookup(v.Name)
}

// Fun names a built-in function. It does not hold the handler; resolution
// happens on every call against the registry carried by the environment.
type Fun struct {
	Name string
}

func (f *Fun) isExpr()        {}
func (f *Fun) Kind() Kind     { return KindFun }
func (f *Fun) Clone() Expr    { return &Fun{Name: f.Name} }
func (f *Fun) String() string { return f.Name }

func (f *Fun) Cmp(other Expr) (int, error) {
	o, ok := other.(*Fun)
	if !ok {
		return 0, cmpMismatch(f, other)
	}
	return cmpOrder(f.Name, o.Name), nil
}

func (f *Fun) Eval(_ *Env) (Expr, error) { return f, nil }

// Err is an error value: a coded failure carried as ordinary data.
type Err struct {
	err *errs.Error
}

func NewErr(e *errs.Error) *Err { return &Err{err: e} }

func (e *Err) isExpr()            {}
func (e *Err) Kind() Kind         { return KindErr }
func (e *Err) Value() *errs.Error { return e.err }

func (e *Err) Clone() Expr {
	return &Err{err: errs.New(e.err.Code, e.err.Message)}
}

// String renders the constructing call, so the form re-parses.
func (e *Err) String() string {
	if e.err.Message == "" {
		return fmt.Sprintf("(error %d)", e.err.Code)
	}
	return fmt.Sprintf("(error %d '%s')", e.err.Code, e.err.Message)
}

func (e *Err) Cmp(other Expr) (int, error) {
	o, ok := other.(*Err)
	if !ok {
		return 0, cmpMismatch(e, other)
	}
	if c := cmpOrder(int64(e.err.Code), int64(o.err.Code)); c != 0 {
		return c, nil
	}
	return cmpOrder(e.err.Message, o.err.Message), nil
}

func (e *Err) Eval(_ *Env) (Expr, error) { return e, nil }

type nilType struct{}

// Nil is the process-wide nil singleton, the only falsy value.
var Nil Expr = nilType{}

func (nilType) isExpr()        {}
func (nilType) Kind() Kind     { return KindNil }
func (nilType) Clone() Expr    { return Nil }
func (nilType) String() string { return "#nil" }

func (n nilType) Cmp(other Expr) (int, error) {
	if _, ok := other.(nilType); !ok {
		return 0, cmpMismatch(n, other)
	}
	return 0, nil
}

func (nilType) Eval(_ *Env) (Expr, error) { return Nil, nil }

type trueType struct{}

// True is the process-wide boolean singleton.
var True Expr = trueType{}

func (trueType) isExpr()        {}
func (trueType) Kind() Kind     { return KindTrue }
func (trueType) Clone() Expr    { return True }
func (trueType) String() string { return "#true" }

func (t trueType) Cmp(other Expr) (int, error) {
	if _, ok := other.(trueType); !ok {
		return 0, cmpMismatch(t, other)
	}
	return 0, nil
}

func (trueType) Eval(_ *Env) (Expr, error) { return True, nil }

// Numeric is implemented by Integer and Float: in-place accumulate
// operations that convert the operand to the receiver's kind.
type Numeric interface {
	Expr
	Set(operand Expr) error
	Add(operand Expr) error
	Sub(operand Expr) error
	Mul(operand Expr) error
	Div(operand Expr) error
}

var (
	_ Numeric = (*Integer)(nil)
	_ Numeric = (*Float)(nil)
)

func operandMismatch(operand Expr) error {
	return errs.Newf(errs.KindMismatch, "numeric operand expected, got %s", operand.Kind())
}

// Integer is a signed 64-bit integer node.
type Integer struct {
	value int64
}

func NewInteger(v int64) *Integer { return &Integer{value: v} }

func (i *Integer) isExpr()        {}
func (i *Integer) Kind() Kind     { return KindInteger }
func (i *Integer) Value() int64   { return i.value }
func (i *Integer) Clone() Expr    { return &Integer{value: i.value} }
func (i *Integer) String() string { return strconv.FormatInt(i.value, 10) }

func (i *Integer) Cmp(other Expr) (int, error) {
	o, ok := other.(*Integer)
	if !ok {
		return 0, cmpMismatch(i, other)
	}
	return cmpOrder(i.value, o.value), nil
}

func (i *Integer) Eval(_ *Env) (Expr, error) { return i, nil }

// asInt converts a numeric operand to the integer kind, truncating floats.
func asInt(operand Expr) (int64, error) {
	switch o := operand.(type) {
	case *Integer:
		return o.value, nil
	case *Float:
		return int64(o.value), nil
	default:
		return 0, operandMismatch(operand)
	}
}

func (i *Integer) Set(operand Expr) error {
	n, err := asInt(operand)
	if err != nil {
		return err
	}
	i.value = n
	return nil
}

func (i *Integer) Add(operand Expr) error {
	n, err := asInt(operand)
	if err != nil {
		return err
	}
	i.value += n
	return nil
}

func (i *Integer) Sub(operand Expr) error {
	n, err := asInt(operand)
	if err != nil {
		return err
	}
	i.value -= n
	return nil
}

func (i *Integer) Mul(operand Expr) error {
	n, err := asInt(operand)
	if err != nil {
		return err
	}
	i.value *= n
	return nil
}

func (i *Integer) Div(operand Expr) error {
	n, err := asInt(operand)
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.New(errs.NumericDivideByZero, "division by zero")
	}
	i.value /= n
	return nil
}

// Float is a 64-bit floating-point node.
type Float struct {
	value float64
}

func NewFloat(v float64) *Float { return &Float{value: v} }

func (f *Float) isExpr()        {}
func (f *Float) Kind() Kind     { return KindFloat }
func (f *Float) Value() float64 { return f.value }
func (f *Float) Clone() Expr    { return &Float{value: f.value} }

// String keeps the rendered form recognizably floating-point so that it
// re-parses to a Float, not an Integer.
func (f *Float) String() string {
	s := strconv.FormatFloat(f.value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (f *Float) Cmp(other Expr) (int, error) {
	o, ok := other.(*Float)
	if !ok {
		return 0, cmpMismatch(f, other)
	}
	return cmpOrder(f.value, o.value), nil
}

func (f *Float) Eval(_ *Env) (Expr, error) { return f, nil }

func asFloat(operand Expr) (float64, error) {
	switch o := operand.(type) {
	case *Integer:
		return float64(o.value), nil
	case *Float:
		return o.value, nil
	default:
		return 0, operandMismatch(operand)
	}
}

func (f *Float) Set(operand Expr) error {
	n, err := asFloat(operand)
	if err != nil {
		return err
	}
	f.value = n
	return nil
}

func (f *Float) Add(operand Expr) error {
	n, err := asFloat(operand)
	if err != nil {
		return err
	}
	f.value += n
	return nil
}

func (f *Float) Sub(operand Expr) error {
	n, err := asFloat(operand)
	if err != nil {
		return err
	}
	f.value -= n
	return nil
}

func (f *Float) Mul(operand Expr) error {
	n, err := asFloat(operand)
	if err != nil {
		return err
	}
	f.value *= n
	return nil
}

func (f *Float) Div(operand Expr) error {
	n, err := asFloat(operand)
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.New(errs.NumericDivideByZero, "division by zero")
	}
	f.value /= n
	return nil
}

// Str is a string node with a mutable text buffer.
type Str struct {
	text string
}

func NewStr(text string) *Str { return &Str{text: text} }

func (s *Str) isExpr()        {}
func (s *Str) Kind() Kind     { return KindStr }
func (s *Str) Text() string   { return s.text }
func (s *Str) Clone() Expr    { return &Str{text: s.text} }
func (s *Str) String() string { return "'" + s.text + "'" }

// Append grows the node's own buffer in place.
func (s *Str) Append(text string) {
	s.text += text
}

func (s *Str) Cmp(other Expr) (int, error) {
	o, ok := other.(*Str)
	if !ok {
		return 0, cmpMismatch(s, other)
	}
	return cmpOrder(s.text, o.text), nil
}

func (s *Str) Eval(_ *Env) (Expr, error) { return s, nil }

// Tup is an ordered sequence of expressions. It doubles as the call form:
// a tuple whose first element is a Fun dispatches on evaluation.
type Tup struct {
	elems []Expr
}

func NewTup(elems ...Expr) *Tup { return &Tup{elems: elems} }

func (t *Tup) isExpr()       {}
func (t *Tup) Kind() Kind    { return KindTup }
func (t *Tup) Elems() []Expr { return t.elems }
func (t *Tup) Len() int      { return len(t.elems) }
func (t *Tup) At(i int) Expr { return t.elems[i] }

func (t *Tup) Append(elems ...Expr) {
	t.elems = append(t.elems, elems...)
}

func (t *Tup) SetAt(i int, e Expr) {
	t.elems[i] = e
}

func (t *Tup) Clone() Expr {
	return &Tup{elems: lo.Map(t.elems, func(e Expr, _ int) Expr {
		return e.Clone()
	})}
}

func (t *Tup) String() string {
	parts := lo.Map(t.elems, func(e Expr, _ int) string {
		return e.String()
	})
	return "(" + strings.Join(parts, " ") + ")"
}

// Cmp orders tuples elementwise, shorter-is-less on a shared prefix.
func (t *Tup) Cmp(other Expr) (int, error) {
	o, ok := other.(*Tup)
	if !ok {
		return 0, cmpMismatch(t, other)
	}
	for i := 0; i < len(t.elems) && i < len(o.elems); i++ {
		c, err := t.elems[i].Cmp(o.elems[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmpOrder(int64(len(t.elems)), int64(len(o.elems))), nil
}

// Eval dispatches the tuple as a call when its first element is a Fun;
// any other tuple evaluates to itself, never element-wise.
func (t *Tup) Eval(env *Env) (Expr, error) {
	if len(t.elems) == 0 {
		return t, nil
	}
	fn, ok := t.elems[0].(*Fun)
	if !ok {
		return t, nil
	}
	handler, err := env.Funcs().Resolve(fn.Name)
	if err != nil {
		return nil, err
	}
	return handler(t, env)
}
