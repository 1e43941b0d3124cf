package jsexpr

import (
	"fmt"
	"log/slog"
	"math"
)

// Evaluator binds a variable context and a function registry and evaluates
// expression trees against them. An Evaluator is immutable after New and
// safe for concurrent use.
type Evaluator struct {
	vars   map[string]any
	funcs  FuncMap
	logger *slog.Logger
	trace  tracer
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger the evaluation trace writes to. It has no
// effect unless the binary is built with the evaltrace tag.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// New builds an Evaluator over the given variables and functions. Variables
// are normalized once here; both maps may be nil.
func New(vars map[string]any, funcs FuncMap, opts ...Option) *Evaluator {
	normalized := make(map[string]any, len(vars))
	for k, v := range vars {
		normalized[k] = Normalize(v)
	}
	e := &Evaluator{
		vars:   normalized,
		funcs:  funcs,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.trace = newTracer(e.logger)
	return e
}

// Evaluate parses source and evaluates the resulting tree.
func (e *Evaluator) Evaluate(source string) (Value, error) {
	node, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return e.EvaluateTree(node)
}

// EvaluateTree evaluates an already-parsed tree.
func (e *Evaluator) EvaluateTree(node Node) (Value, error) {
	return e.eval(node)
}

func (e *Evaluator) eval(node Node) (Value, error) {
	e.trace.enter(node)
	switch n := node.(type) {
	case *Literal:
		return n.Value, nil
	case *Identifier:
		v, ok := e.vars[n.Name]
		if !ok {
			return nil, &UnknownIdentifierError{Name: n.Name}
		}
		return v, nil
	case *EmptyArray:
		return []any{}, nil
	case *EmptyObject:
		return map[string]any{}, nil
	case *Unary:
		return e.evalUnary(n)
	case *Binary:
		return e.evalBinary(n)
	case *Logical:
		return e.evalLogical(n)
	case *Conditional:
		test, err := e.eval(n.Test)
		if err != nil {
			return nil, err
		}
		if ToBool(test) {
			return e.eval(n.Consequent)
		}
		return e.eval(n.Alternate)
	case *Member:
		return e.evalMember(n)
	case *Call:
		return e.evalCall(n)
	}
	return nil, &TypeError{Message: fmt.Sprintf("cannot evaluate %T", node)}
}

func (e *Evaluator) evalUnary(n *Unary) (Value, error) {
	operand, err := e.eval(n.Operand)
	if err != nil {
		return nil, err
	}
	var result Value
	switch n.Op {
	case "!":
		result = !ToBool(operand)
	case "-":
		result = -ToNumber(operand)
	case "+":
		result = ToNumber(operand)
	default:
		return nil, &TypeError{Message: fmt.Sprintf("unknown unary operator %q", n.Op)}
	}
	e.trace.result(n, result)
	return result, nil
}

func (e *Evaluator) evalBinary(n *Binary) (Value, error) {
	left, err := e.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.eval(n.Right)
	if err != nil {
		return nil, err
	}
	var result Value
	switch n.Op {
	case "+":
		// Either operand being a string switches + to concatenation.
		if _, ok := left.(string); ok {
			result = ToString(left) + ToString(right)
		} else if _, ok := right.(string); ok {
			result = ToString(left) + ToString(right)
		} else {
			result = ToNumber(left) + ToNumber(right)
		}
	case "-":
		result = ToNumber(left) - ToNumber(right)
	case "*":
		result = ToNumber(left) * ToNumber(right)
	case "/":
		result = ToNumber(left) / ToNumber(right)
	case "%":
		result = math.Mod(ToNumber(left), ToNumber(right))
	case "==":
		result = abstractEquals(left, right)
	case "!=":
		result = !abstractEquals(left, right)
	case "===":
		result = strictEquals(left, right)
	case "!==":
		result = !strictEquals(left, right)
	case "<", ">", "<=", ">=":
		result = relational(n.Op, left, right)
	default:
		return nil, &TypeError{Message: fmt.Sprintf("unknown binary operator %q", n.Op)}
	}
	e.trace.result(n, result)
	return result, nil
}

// relational compares two strings lexicographically by code unit; any other
// operand pairing compares numerically, with NaN making every comparison
// false.
func relational(op string, left, right Value) bool {
	ls, lok := left.(string)
	rs, rok := right.(string)
	if lok && rok {
		switch op {
		case "<":
			return ls < rs
		case ">":
			return ls > rs
		case "<=":
			return ls <= rs
		case ">=":
			return ls >= rs
		}
	}
	ln, rn := ToNumber(left), ToNumber(right)
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return false
	}
	switch op {
	case "<":
		return ln < rn
	case ">":
		return ln > rn
	case "<=":
		return ln <= rn
	case ">=":
		return ln >= rn
	}
	return false
}

// evalLogical short-circuits: the result is one of the original operand
// values, never a coerced boolean.
func (e *Evaluator) evalLogical(n *Logical) (Value, error) {
	left, err := e.eval(n.Left)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "&&":
		if !ToBool(left) {
			return left, nil
		}
	case "||":
		if ToBool(left) {
			return left, nil
		}
	default:
		return nil, &TypeError{Message: fmt.Sprintf("unknown logical operator %q", n.Op)}
	}
	return e.eval(n.Right)
}

func (e *Evaluator) evalMember(n *Member) (Value, error) {
	recv, err := e.eval(n.Receiver)
	if err != nil {
		return nil, err
	}
	switch x := recv.(type) {
	case []any:
		if n.Name == "length" {
			return float64(len(x)), nil
		}
		return nil, &UnknownPropertyError{Receiver: KindArray, Name: n.Name}
	case string:
		if n.Name == "length" {
			return float64(stringLength(x)), nil
		}
		return nil, &UnknownPropertyError{Receiver: KindString, Name: n.Name}
	case map[string]any:
		// A missing key reads as null rather than failing, so rules can
		// probe optional payload fields.
		return x[n.Name], nil
	}
	return nil, &UnknownPropertyError{Receiver: KindOf(recv), Name: n.Name}
}

func (e *Evaluator) evalCall(n *Call) (Value, error) {
	switch callee := n.Callee.(type) {
	case *Identifier:
		return e.callFunction(callee.Name, n.Args)
	case *Member:
		return e.callMethod(callee, n.Args)
	}
	return nil, &TypeError{Message: "call target must be a function name or a method"}
}

func (e *Evaluator) callFunction(name string, argNodes []Node) (Value, error) {
	fn, ok := e.funcs[name]
	if !ok {
		return nil, &UnknownFunctionError{Name: name}
	}
	args := make([]any, len(argNodes))
	for i, a := range argNodes {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	e.trace.invoke(fn, len(args))
	result, err := fn.Call(args)
	if err != nil {
		return nil, &FunctionCallError{Name: name, Err: err}
	}
	return Normalize(result), nil
}

func (e *Evaluator) callMethod(callee *Member, argNodes []Node) (Value, error) {
	recv, err := e.eval(callee.Receiver)
	if err != nil {
		return nil, err
	}
	args := make([]any, len(argNodes))
	for i, a := range argNodes {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch x := recv.(type) {
	case []any:
		if callee.Name == "includes" {
			if len(args) != 1 {
				return nil, &FunctionCallError{Name: "includes", Err: &ArityError{Expected: 1, Got: len(args)}}
			}
			for _, elem := range x {
				if sameValueZero(elem, args[0]) {
					return true, nil
				}
			}
			return false, nil
		}
	case map[string]any:
		if callee.Name == "hasOwnProperty" {
			if len(args) != 1 {
				return nil, &FunctionCallError{Name: "hasOwnProperty", Err: &ArityError{Expected: 1, Got: len(args)}}
			}
			_, present := x[ToString(args[0])]
			return present, nil
		}
	}
	return nil, &UnknownMethodError{Receiver: KindOf(recv), Name: callee.Name}
}
