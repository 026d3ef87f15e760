package driver

import (
	"fmt"
	"strings"

	"go.xinuc.dev/pkg/ast"
	"go.xinuc.dev/pkg/symtab"
	"go.xinuc.dev/pkg/token"
)

// renderTokens renders one `<KIND> "<text>" at <line>:<column>` line per
// token, reusing token.Token's own String().
func renderTokens(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// renderAST renders an indented tree: one line per node, child depth shown
// via indentation.
func renderAST(n *ast.Node) string {
	var b strings.Builder
	writeNode(&b, n, 0)
	return b.String()
}

func writeNode(b *strings.Builder, n *ast.Node, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	if n.Name != "" {
		fmt.Fprintf(b, " %s", n.Name)
	}
	if n.Op != "" {
		fmt.Fprintf(b, " '%s'", n.Op)
	}
	switch n.Kind {
	case ast.NUMBER:
		fmt.Fprintf(b, " %d", n.IntValue)
	case ast.FLOAT:
		fmt.Fprintf(b, " %g", n.FloatValue)
	case ast.CHAR:
		fmt.Fprintf(b, " %q", n.CharValue)
	}
	b.WriteByte('\n')

	writeNode(b, n.Left, depth+1)
	writeNode(b, n.Right, depth+1)
	writeNode(b, n.Extra, depth+1)
	for _, child := range n.Children {
		writeNode(b, child, depth+1)
	}
}

// renderSymbols renders one line per global-scope symbol: name, kind,
// scope level, and offset.
func renderSymbols(syms *symtab.Table) string {
	var b strings.Builder
	for _, sym := range syms.GlobalSymbols() {
		fmt.Fprintf(&b, "%-20s %-10s level=%d offset=%d\n", sym.Name, sym.Kind, sym.ScopeLevel, sym.Offset)
	}
	return b.String()
}
