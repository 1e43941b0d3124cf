package jsexpr

import (
	"fmt"
	"math"
	"strings"

	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/parser"
	"github.com/robertkrimen/otto/token"
)

// Parse turns a single JavaScript expression into a tree. The grammar is the
// expression subset only: literals, identifiers, the empty [] and {} literals,
// unary ! - +, the arithmetic, relational and equality operators, && || ?:,
// dotted member access and call expressions. Everything else is rejected with
// a ParseError of kind ParseUnsupported; malformed input is kind ParseSyntax.
func Parse(source string) (Node, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &ParseError{ErrKind: ParseEmpty, Message: "empty expression"}
	}

	// Wrapping in parentheses makes a leading { parse as an object literal
	// rather than a block statement, and turns multi-statement input into a
	// syntax error. Column positions on line 1 shift back by one to
	// compensate for the added character.
	wrapped := "(" + source + "\n)"
	program, err := parser.ParseFile(nil, "", wrapped, 0)
	if err != nil {
		return nil, convertParseFailure(err)
	}
	if len(program.Body) != 1 {
		return nil, &ParseError{ErrKind: ParseSyntax, Message: "expected a single expression"}
	}
	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return nil, &ParseError{ErrKind: ParseUnsupported, Message: "statements are not allowed"}
	}
	return projectExpr(stmt.Expression)
}

func convertParseFailure(err error) error {
	if list, ok := err.(*parser.ErrorList); ok && len(*list) > 0 {
		first := (*list)[0]
		line := first.Position.Line
		col := first.Position.Column
		if line == 1 && col > 1 {
			col--
		}
		return &ParseError{ErrKind: ParseSyntax, Line: line, Column: col, Message: first.Message}
	}
	return &ParseError{ErrKind: ParseSyntax, Message: err.Error()}
}

func unsupported(what string) error {
	return &ParseError{ErrKind: ParseUnsupported, Message: what + " is not allowed"}
}

func projectExpr(expr ast.Expression) (Node, error) {
	switch x := expr.(type) {
	case *ast.NullLiteral:
		return &Literal{Value: nil}, nil
	case *ast.BooleanLiteral:
		return &Literal{Value: x.Value}, nil
	case *ast.NumberLiteral:
		switch v := x.Value.(type) {
		case float64:
			return &Literal{Value: v}, nil
		case int64:
			return &Literal{Value: float64(v)}, nil
		}
		return nil, &ParseError{ErrKind: ParseSyntax, Message: fmt.Sprintf("malformed number literal %q", x.Literal)}
	case *ast.StringLiteral:
		s, err := decodeStringLiteral(x.Literal)
		if err != nil {
			return nil, err
		}
		return &Literal{Value: s}, nil
	case *ast.Identifier:
		// NaN, Infinity and undefined are values, not variables. There is no
		// undefined variant, so undefined folds to null.
		switch x.Name {
		case "NaN":
			return &Literal{Value: math.NaN()}, nil
		case "Infinity":
			return &Literal{Value: math.Inf(1)}, nil
		case "undefined":
			return &Literal{Value: nil}, nil
		}
		return &Identifier{Name: x.Name}, nil
	case *ast.ArrayLiteral:
		if len(x.Value) > 0 {
			return nil, unsupported("non-empty array literal")
		}
		return &EmptyArray{}, nil
	case *ast.ObjectLiteral:
		if len(x.Value) > 0 {
			return nil, unsupported("non-empty object literal")
		}
		return &EmptyObject{}, nil
	case *ast.UnaryExpression:
		return projectUnary(x)
	case *ast.BinaryExpression:
		return projectBinary(x)
	case *ast.ConditionalExpression:
		test, err := projectExpr(x.Test)
		if err != nil {
			return nil, err
		}
		cons, err := projectExpr(x.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := projectExpr(x.Alternate)
		if err != nil {
			return nil, err
		}
		return &Conditional{Test: test, Consequent: cons, Alternate: alt}, nil
	case *ast.DotExpression:
		recv, err := projectExpr(x.Left)
		if err != nil {
			return nil, err
		}
		return &Member{Receiver: recv, Name: x.Identifier.Name}, nil
	case *ast.CallExpression:
		return projectCall(x)
	case *ast.BracketExpression:
		return nil, unsupported("computed member access")
	case *ast.AssignExpression:
		return nil, unsupported("assignment")
	case *ast.SequenceExpression:
		return nil, unsupported("comma expression")
	case *ast.FunctionLiteral:
		return nil, unsupported("function literal")
	case *ast.RegExpLiteral:
		return nil, unsupported("regular expression literal")
	case *ast.NewExpression:
		return nil, unsupported("new expression")
	case *ast.ThisExpression:
		return nil, unsupported("this")
	case *ast.VariableExpression:
		return nil, unsupported("variable declaration")
	}
	return nil, unsupported(fmt.Sprintf("%T", expr))
}

func projectUnary(x *ast.UnaryExpression) (Node, error) {
	if x.Postfix {
		return nil, unsupported("postfix operator")
	}
	var op string
	switch x.Operator {
	case token.NOT:
		op = "!"
	case token.MINUS:
		op = "-"
	case token.PLUS:
		op = "+"
	default:
		return nil, unsupported("operator " + x.Operator.String())
	}
	operand, err := projectExpr(x.Operand)
	if err != nil {
		return nil, err
	}
	return &Unary{Op: op, Operand: operand}, nil
}

var binaryOps = map[token.Token]string{
	token.PLUS:             "+",
	token.MINUS:            "-",
	token.MULTIPLY:         "*",
	token.SLASH:            "/",
	token.REMAINDER:        "%",
	token.EQUAL:            "==",
	token.NOT_EQUAL:        "!=",
	token.STRICT_EQUAL:     "===",
	token.STRICT_NOT_EQUAL: "!==",
	token.LESS:             "<",
	token.GREATER:          ">",
	token.LESS_OR_EQUAL:    "<=",
	token.GREATER_OR_EQUAL: ">=",
}

func projectBinary(x *ast.BinaryExpression) (Node, error) {
	left, err := projectExpr(x.Left)
	if err != nil {
		return nil, err
	}
	right, err := projectExpr(x.Right)
	if err != nil {
		return nil, err
	}
	switch x.Operator {
	case token.LOGICAL_AND:
		return &Logical{Op: "&&", Left: left, Right: right}, nil
	case token.LOGICAL_OR:
		return &Logical{Op: "||", Left: left, Right: right}, nil
	}
	op, ok := binaryOps[x.Operator]
	if !ok {
		return nil, unsupported("operator " + x.Operator.String())
	}
	return &Binary{Op: op, Left: left, Right: right}, nil
}

func projectCall(x *ast.CallExpression) (Node, error) {
	callee, err := projectExpr(x.Callee)
	if err != nil {
		return nil, err
	}
	switch callee.Kind() {
	case NodeIdentifier, NodeMember:
	default:
		return nil, unsupported("call of a non-name expression")
	}
	args := make([]Node, len(x.ArgumentList))
	for i, a := range x.ArgumentList {
		arg, err := projectExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return &Call{Callee: callee, Args: args}, nil
}

// decodeStringLiteral interprets the raw source text of a string literal,
// quotes included. Only \n \t \r \\ \' \" \0 are recognised; any other
// backslash sequence is a syntax error rather than being passed through.
func decodeStringLiteral(raw string) (string, error) {
	if len(raw) < 2 {
		return "", &ParseError{ErrKind: ParseSyntax, Message: "malformed string literal"}
	}
	body := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", &ParseError{ErrKind: ParseSyntax, Message: "dangling backslash in string literal"}
		}
		esc := body[i+1]
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case '0':
			b.WriteByte(0)
		default:
			return "", &ParseError{ErrKind: ParseSyntax, Message: fmt.Sprintf("unknown escape sequence \\%c", esc)}
		}
		i += 2
	}
	return b.String(), nil
}
