package typecheck

import (
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

// unitKeyword is the implicit return type of a function with no arrow
// clause.
const unitKeyword = token.KwUnit

// scopedIdentLastName returns the final path component of a
// ScopedIdent node, for use in diagnostic messages.
func scopedIdentLastName(store *ast.Store, id ast.NodeID) string {
	comps := store.ScopedIdentComponents(id)
	if len(comps) == 0 {
		return "?"
	}
	return string(comps[len(comps)-1].Text)
}
