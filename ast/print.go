package ast

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

const dumpWrapWidth = 100

// Dump renders a human-readable tree view of f, one node per line with
// ASCII-art branches. It is a debug/display pass only, alongside
// analyze/emit/hover.
func Dump(f *File) string {
	var sb strings.Builder
	sb.WriteString("File\n")
	for i, fn := range f.Functions {
		last := i == len(f.Functions)-1
		dumpFunction(&sb, fn, "", last)
	}
	return rosed.Edit(sb.String()).Wrap(dumpWrapWidth).String()
}

func branchPrefix(last bool) string {
	if last {
		return "`-- "
	}
	return "|-- "
}

func childPrefix(prefix string, last bool) string {
	if last {
		return prefix + "    "
	}
	return prefix + "|   "
}

func dumpFunction(sb *strings.Builder, fn *Function, prefix string, last bool) {
	fmt.Fprintf(sb, "%s%sFunction %s: %s\n", prefix, branchPrefix(last), fn.Name, fn.DataType)
	dumpScope(sb, fn.Body, childPrefix(prefix, last), true)
}

func dumpScope(sb *strings.Builder, s *Scope, prefix string, last bool) {
	fmt.Fprintf(sb, "%s%sScope\n", prefix, branchPrefix(last))
	childP := childPrefix(prefix, last)
	for i, stmt := range s.Statements {
		dumpNode(sb, stmt, childP, i == len(s.Statements)-1)
	}
}

func dumpNode(sb *strings.Builder, n Node, prefix string, last bool) {
	switch v := n.(type) {
	case *Scope:
		dumpScope(sb, v, prefix, last)
	case *IfElse:
		fmt.Fprintf(sb, "%s%sIfElse\n", prefix, branchPrefix(last))
		childP := childPrefix(prefix, last)
		dumpScope(sb, v.Consequent, childP, len(v.ElseIfs) == 0 && v.Else == nil)
		for i, ei := range v.ElseIfs {
			isLast := i == len(v.ElseIfs)-1 && v.Else == nil
			dumpScope(sb, ei.Body, childP, isLast)
		}
		if v.Else != nil {
			dumpScope(sb, v.Else, childP, true)
		}
	case *Return:
		fmt.Fprintf(sb, "%s%sReturn\n", prefix, branchPrefix(last))
	case *Declaration:
		fmt.Fprintf(sb, "%s%sDeclaration %s\n", prefix, branchPrefix(last), v.Name)
	case *Assignment:
		fmt.Fprintf(sb, "%s%sAssignment %s\n", prefix, branchPrefix(last), v.Name)
	case *Binary:
		fmt.Fprintf(sb, "%s%sBinary: %s\n", prefix, branchPrefix(last), v.DataType)
	case *Unary:
		fmt.Fprintf(sb, "%s%sUnary: %s\n", prefix, branchPrefix(last), v.DataType)
	case *Call:
		fmt.Fprintf(sb, "%s%sCall %s: %s\n", prefix, branchPrefix(last), v.Callee, v.DataType)
	case *Identifier:
		fmt.Fprintf(sb, "%s%sIdentifier %s: %s\n", prefix, branchPrefix(last), v.Name, v.DataType)
	case *Number:
		fmt.Fprintf(sb, "%s%sNumber %s: %s\n", prefix, branchPrefix(last), v.Text, v.DataType)
	case *Ternary:
		fmt.Fprintf(sb, "%s%sTernary: %s\n", prefix, branchPrefix(last), v.DataType)
	default:
		fmt.Fprintf(sb, "%s%s<unknown node>\n", prefix, branchPrefix(last))
	}
}
