// Package dump renders an ast.Store tree to the exact textual format
// parser and resolver tests assert against.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/kpumuk/iotac-frontend/internal/ast"
)

// Dump writes root's subtree to w, one node per line, two-space
// indentation, named children on a "name:" line, token children as
// "[name=]'text'", and an "(error!)" marker on any node whose error
// flag is set.
func Dump(w io.Writer, store *ast.Store, root ast.NodeID) {
	dumpNode(w, store, root, 0)
}

func dumpNode(w io.Writer, store *ast.Store, id ast.NodeID, level int) {
	if id == ast.None {
		return
	}
	n := store.Get(id)
	ind := strings.Repeat("  ", level)

	fmt.Fprint(w, ind, n.Kind.String())
	if n.HasFlag(ast.FlagError) {
		fmt.Fprint(w, "(error!)")
	}
	fmt.Fprint(w, " {")

	if len(n.Children) != 0 {
		fmt.Fprint(w, "\n")
	}

	for _, c := range n.Children {
		childLevel := level + 1
		switch c.Kind {
		case ast.ChildNode:
			if c.Name != "" {
				fmt.Fprintf(w, "%s%s:\n", strings.Repeat("  ", childLevel), c.Name)
				dumpNode(w, store, c.Node, childLevel+1)
			} else {
				dumpNode(w, store, c.Node, childLevel)
			}
		case ast.ChildToken:
			fmt.Fprint(w, strings.Repeat("  ", childLevel))
			if c.Name != "" {
				fmt.Fprintf(w, "%s=", c.Name)
			}
			fmt.Fprintf(w, "'%s'\n", c.Token.Text)
		}
	}

	if len(n.Children) != 0 {
		fmt.Fprint(w, ind)
	}
	fmt.Fprint(w, "}\n")
}

// String renders root's subtree and returns it directly, for tests
// that compare against a golden string.
func String(store *ast.Store, root ast.NodeID) string {
	var b strings.Builder
	Dump(&b, store, root)
	return b.String()
}
