// Package evaluator implements the tree-walking evaluator: one
// evaluate function for expressions and one execute function for
// statements, dispatching by type switch over the ast.Expr/ast.Stmt
// sum types instead of the source's double-visitor dispatch (spec.md
// §9 redesign). Grounded on the teacher's pkgs/engine.go dispatch-loop
// shape, generalized from executing shell command decorators to
// evaluating Lox expressions against a token.Value domain.
package evaluator

import (
	"fmt"

	"github.com/aledsdavies/golox/internal/suggest"
	"github.com/aledsdavies/golox/pkgs/ast"
	"github.com/aledsdavies/golox/pkgs/environment"
	"github.com/aledsdavies/golox/pkgs/token"
)

// Printer receives the output of `print` statements. Tests can supply
// a strings.Builder-backed printer; cmd/golox wires stdout.
type Printer interface {
	Println(s string)
}

// RuntimeError is raised during evaluation; it carries the offending
// token for line reporting, per spec.md §4.4. Grounded on the
// teacher's DevCmdError{Type, Message, ...} taxonomy, narrowed to the
// single runtime-error kind the core contract defines (spec.md §7:
// "no other error category exists").
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Interpreter walks statement lists, mutating the current environment.
// It holds both the live scope pointer and an owning reference to the
// global scope so the driver can build one Interpreter and reuse it
// across REPL prompts (spec.md §9's "Persistent REPL interpreter"
// redesign note).
type Interpreter struct {
	globals *environment.Environment
	env     *environment.Environment
	out     Printer
}

// New creates an Interpreter with a fresh global environment.
func New(out Printer) *Interpreter {
	globals := environment.New(nil)
	return &Interpreter{globals: globals, env: globals, out: out}
}

// Globals returns the persistent global environment, primarily so the
// driver can pre-seed names between runs if it ever needs to.
func (in *Interpreter) Globals() *environment.Environment {
	return in.globals
}

// Interpret executes each statement in order. A RuntimeError raised
// during evaluation is caught here and returned, not reported; the
// caller (cmd/golox) reports it and maps it to spec.md §6's exit code 70.
func (in *Interpreter) Interpret(statements []ast.Stmt) (err *RuntimeError) {
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(*RuntimeError); ok {
				err = re
				return
			}
			panic(r)
		}
	}()

	for _, stmt := range statements {
		in.execute(stmt)
	}
	return nil
}

// --- statements ---

func (in *Interpreter) execute(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		in.evaluate(s.Expr)

	case *ast.PrintStmt:
		value := in.evaluate(s.Expr)
		in.out.Println(Stringify(value))

	case *ast.VarStmt:
		var value token.Value = token.Nil
		if s.Initializer != nil {
			value = in.evaluate(s.Initializer)
		}
		in.env.Define(s.Name.Lexeme, value)

	case *ast.BlockStmt:
		in.executeBlock(s.Statements, environment.New(in.env))

	case *ast.IfStmt:
		if in.evaluate(s.Condition).Truthy() {
			in.execute(s.Then)
		} else if s.Else != nil {
			in.execute(s.Else)
		}

	case *ast.WhileStmt:
		for in.evaluate(s.Condition).Truthy() {
			in.execute(s.Body)
		}

	case *ast.FunctionStmt, *ast.ReturnStmt, *ast.ClassStmt:
		panic(&RuntimeError{Message: "This feature is reserved and not implemented by this interpreter."})

	default:
		panic(fmt.Sprintf("evaluator: unhandled statement type %T", stmt))
	}
}

// executeBlock runs statements in child, then restores the previous
// environment on every exit path — normal return or a panicking
// RuntimeError — via a deferred scope guard. This is spec.md §5's
// "scoped guard that restores the previous environment on all exit
// paths, including panics," expressed the way Go naturally does RAII,
// in place of the source's fragile std::swap pattern.
func (in *Interpreter) executeBlock(statements []ast.Stmt, child *environment.Environment) {
	previous := in.env
	in.env = child
	defer func() { in.env = previous }()

	for _, stmt := range statements {
		in.execute(stmt)
	}
}

// --- expressions ---

func (in *Interpreter) evaluate(expr ast.Expr) token.Value {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value

	case *ast.Grouping:
		return in.evaluate(e.Inner)

	case *ast.Variable:
		v, err := in.env.Get(e.Name)
		if err != nil {
			panic(in.undefinedIdentifier(e.Name))
		}
		return v

	case *ast.Assign:
		value := in.evaluate(e.Value)
		if err := in.env.Assign(e.Name, value); err != nil {
			panic(in.undefinedIdentifier(e.Name))
		}
		return value

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		return in.evalLogical(e)

	case *ast.Call, *ast.Get, *ast.Set, *ast.This, *ast.Super:
		panic(&RuntimeError{Message: "This feature is reserved and not implemented by this interpreter."})

	default:
		panic(fmt.Sprintf("evaluator: unhandled expression type %T", expr))
	}
}

func (in *Interpreter) undefinedIdentifier(name token.Token) *RuntimeError {
	message := fmt.Sprintf("Undefined Identifier '%s' .", name.Lexeme)
	if hint := suggest.Closest(name.Lexeme, in.env.Names()); hint != "" {
		message = fmt.Sprintf("%s Did you mean '%s'?", message, hint)
	}
	return &RuntimeError{Token: name, Message: message}
}

func (in *Interpreter) evalUnary(e *ast.Unary) token.Value {
	right := in.evaluate(e.Operand)

	switch e.Operator.Type {
	case token.MINUS:
		n := in.checkNumberOperand(e.Operator, right)
		return token.Number(-n)
	case token.BANG:
		return token.Bool(!right.Truthy())
	}

	panic(fmt.Sprintf("evaluator: unhandled unary operator %s", e.Operator.Type))
}

func (in *Interpreter) evalLogical(e *ast.Logical) token.Value {
	left := in.evaluate(e.Left)

	if e.Operator.Type == token.OR {
		if left.Truthy() {
			return left
		}
		return in.evaluate(e.Right)
	}

	// token.AND
	if !left.Truthy() {
		return left
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalBinary(e *ast.Binary) token.Value {
	left := in.evaluate(e.Left)
	right := in.evaluate(e.Right)

	switch e.Operator.Type {
	case token.PLUS:
		return in.evalPlus(e.Operator, left, right)
	case token.MINUS:
		l, r := in.checkNumberOperands(e.Operator, left, right)
		return token.Number(l - r)
	case token.SLASH:
		l, r := in.checkNumberOperands(e.Operator, left, right)
		return token.Number(l / r) // IEEE-754 inf/NaN on division by zero, not an error.
	case token.STAR:
		l, r := in.checkNumberOperands(e.Operator, left, right)
		return token.Number(l * r)
	case token.GREATER:
		l, r := in.checkNumberOperands(e.Operator, left, right)
		return token.Bool(l > r)
	case token.GREATER_EQUAL:
		l, r := in.checkNumberOperands(e.Operator, left, right)
		return token.Bool(l >= r)
	case token.LESS:
		l, r := in.checkNumberOperands(e.Operator, left, right)
		return token.Bool(l < r)
	case token.LESS_EQUAL:
		l, r := in.checkNumberOperands(e.Operator, left, right)
		return token.Bool(l <= r)
	case token.EQUAL_EQUAL:
		return token.Bool(left.Equal(right))
	case token.BANG_EQUAL:
		return token.Bool(!left.Equal(right))
	case token.COMMA:
		return right
	}

	panic(fmt.Sprintf("evaluator: unhandled binary operator %s", e.Operator.Type))
}

func (in *Interpreter) evalPlus(operator token.Token, left, right token.Value) token.Value {
	if ln, ok := left.(token.Number); ok {
		if rn, ok := right.(token.Number); ok {
			return ln + rn
		}
	}
	if ls, ok := left.(token.Str); ok {
		if rs, ok := right.(token.Str); ok {
			return ls + rs
		}
	}
	panic(&RuntimeError{Token: operator, Message: "Operands must be two numbers or two strings."})
}

func (in *Interpreter) checkNumberOperand(operator token.Token, operand token.Value) float64 {
	if n, ok := operand.(token.Number); ok {
		return float64(n)
	}
	panic(&RuntimeError{Token: operator, Message: "Operand must be a number."})
}

func (in *Interpreter) checkNumberOperands(operator token.Token, left, right token.Value) (float64, float64) {
	ln, lok := left.(token.Number)
	rn, rok := right.(token.Number)
	if lok && rok {
		return float64(ln), float64(rn)
	}
	// Singular "Operand" here matches the original implementation's
	// two-operand check, not a typo.
	panic(&RuntimeError{Token: operator, Message: "Operand must be a number."})
}

// Stringify renders v the way `print` and diagnostics display it,
// delegating to each Value variant's own String() method (spec.md
// §4.4). Kept as a free function, not a method on Interpreter, since
// it has no evaluator state dependency — only the corpus.
func Stringify(v token.Value) string {
	return v.String()
}
