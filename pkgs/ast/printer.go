package ast

import "strings"

// Sprint renders expr as a fully parenthesized s-expression, the
// pretty-printer spec.md §8 requires for the
// parse-print-reparse-print round-trip property. It is a plain
// function, not a visitor, per spec.md §9's redesign note.
func Sprint(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		return e.Value.String()
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Operand)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Grouping:
		return parenthesize("group", e.Inner)
	case *Call:
		return parenthesize("call", append([]Expr{e.Callee}, e.Args...)...)
	case *Get:
		return parenthesize("get "+e.Name.Lexeme, e.Object)
	case *Set:
		return parenthesize("set "+e.Name.Lexeme, e.Object, e.Value)
	case *This:
		return "this"
	case *Super:
		return "(super " + e.Method.Lexeme + ")"
	default:
		return "<unknown expr>"
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(Sprint(e))
	}
	b.WriteByte(')')
	return b.String()
}
