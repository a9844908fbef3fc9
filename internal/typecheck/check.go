package typecheck

import (
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/token"
	"github.com/kpumuk/iotac-frontend/internal/types"
)

// Checker is the second post-order DFS: it checks every expression and
// declaration against the type identifiers the TypeResolver assigned,
// maintaining a stack of type hints for contexts that carry an
// expected type.
type Checker struct {
	store *ast.Store
	sink  *diag.Sink
	tys   *types.Interner
	tr    *TypeResolver // reused to resolve Type nodes nested in expressions (braced literals)

	hints   []types.ID
	checked map[ast.NodeID]bool
}

// NewChecker creates a Checker sharing tr's interner, so types.ID
// values computed by either pass are directly comparable.
func NewChecker(store *ast.Store, tys *types.Interner, sink *diag.Sink, tr *TypeResolver) *Checker {
	return &Checker{store: store, sink: sink, tys: tys, tr: tr, checked: make(map[ast.NodeID]bool)}
}

// Run type-checks every declaration reachable from root.
func (c *Checker) Run(root ast.NodeID) {
	for _, decl := range c.store.SourceFileDecls(root) {
		c.checkDecl(decl)
	}
}

func (c *Checker) pushHint(t types.ID)  { c.hints = append(c.hints, t) }
func (c *Checker) popHint()             { c.hints = c.hints[:len(c.hints)-1] }
func (c *Checker) currentHint() types.ID {
	if len(c.hints) == 0 {
		return types.Invalid
	}
	return c.hints[len(c.hints)-1]
}

func (c *Checker) setType(id ast.NodeID, t types.ID) types.ID {
	if n := c.store.Get(id); n != nil {
		n.TypeID = int32(t)
	}
	return t
}

func (c *Checker) typeOf(id ast.NodeID) types.ID {
	n := c.store.Get(id)
	if n == nil {
		return types.Invalid
	}
	return types.ID(n.TypeID)
}

func (c *Checker) errAt(id ast.NodeID) {
	if n := c.store.Get(id); n != nil {
		n.AddFlag(ast.FlagError)
	}
}

func (c *Checker) checkDecl(id ast.NodeID) {
	switch c.store.Get(id).Kind {
	case ast.VarDecl:
		c.checkVarDecl(id)
	case ast.FuncDecl:
		c.checkFuncDecl(id)
	case ast.StructDecl, ast.UnionDecl, ast.EnumDecl, ast.ErrorDecl:
		// Their type identifiers are already set by the TypeResolver;
		// no per-expression checking applies to the declaration itself.
	}
}

// ensureVarDeclChecked type-checks decl on demand the first time some
// other reference needs its type, accommodating the module-scope
// forward-reference allowance without requiring a separate
// dependency-ordering pass.
func (c *Checker) ensureVarDeclChecked(decl ast.NodeID) {
	if c.checked[decl] || c.store.Get(decl).Kind != ast.VarDecl {
		return
	}
	c.checked[decl] = true
	c.checkVarDecl(decl)
}

// checkVarDecl implements the variable-declaration checking rule.
func (c *Checker) checkVarDecl(id ast.NodeID) {
	c.checked[id] = true
	declaredType := types.Invalid
	if t := c.store.VarDeclType(id); t != ast.None {
		declaredType = c.typeOf(t)
	}

	initType := types.Invalid
	if v := c.store.VarDeclValue(id); v != ast.None {
		if declaredType != types.Invalid {
			c.pushHint(declaredType)
			initType = c.checkExpr(v, false)
			c.popHint()
		} else {
			initType = c.checkExpr(v, false)
		}
	}

	var result types.ID
	switch {
	case declaredType == types.Invalid && initType == types.Invalid:
		c.sink.Addf(c.store.Get(id).Span, diag.TypeUninferableVariable, "declaration needs a type or initializer")
		c.errAt(id)
		result = types.Invalid
	case declaredType != types.Invalid && initType != types.Invalid:
		if !c.convertible(initType, declaredType) {
			c.sink.Addf(c.store.Get(id).Span, diag.TypeMismatch, "cannot assign {t} to declared type {t}", int(initType), int(declaredType))
			c.errAt(id)
		}
		result = declaredType
	case declaredType != types.Invalid:
		result = declaredType
	default:
		result = initType
	}
	c.setType(id, result)
}

func (c *Checker) checkFuncDecl(id ast.NodeID) {
	for _, p := range c.store.FuncParams(id) {
		if c.store.ParamVariadic(p) {
			c.sink.Addf(c.store.Get(p).Span, diag.TypeVariadicUnsupported, "variadic parameters are not supported by the type checker")
			c.errAt(p)
		}
	}
	returnType := c.typeOf(id)
	if body := c.store.FuncBody(id); body != ast.None {
		c.pushHint(returnType)
		c.checkStmts(body, returnType)
		c.popHint()
	}
}

func (c *Checker) checkStmts(id ast.NodeID, returnType types.ID) {
	for _, stmt := range c.store.CompoundStmts(id) {
		c.checkStmt(stmt, returnType)
	}
}

func (c *Checker) checkStmt(id ast.NodeID, returnType types.ID) {
	switch c.store.Get(id).Kind {
	case ast.VarDecl:
		c.checkVarDecl(id)
	case ast.CompoundStmt:
		c.checkStmts(id, returnType)
	case ast.IfStmt:
		c.checkIfStmt(id, returnType)
	case ast.WhileStmt:
		if cond := c.store.WhileCondition(id); cond != ast.None {
			c.checkBooleanCondition(cond)
		}
		if body := c.store.WhileBody(id); body != ast.None {
			c.checkStmts(body, returnType)
		}
	case ast.CaseStmt:
		if subj := c.store.CaseSubject(id); subj != ast.None {
			c.checkExpr(subj, false)
		}
		for _, arm := range c.store.CaseArms(id) {
			c.checkCaseArm(arm, returnType)
		}
	case ast.ReturnStmt:
		if v := c.store.ReturnValue(id); v != ast.None {
			rt := c.checkExpr(v, false)
			if returnType != types.Invalid && !c.convertible(rt, returnType) {
				c.sink.Addf(c.store.Get(id).Span, diag.TypeMismatch, "cannot return {t}, function returns {t}", int(rt), int(returnType))
				c.errAt(id)
			}
		}
	case ast.DeferStmt:
		if call := c.store.DeferCall(id); call != ast.None {
			c.checkExpr(call, false)
		}
	case ast.ExprStmt:
		if e := c.store.ExprStmtExpr(id); e != ast.None {
			c.checkExpr(e, false)
		}
	case ast.AssignStmt:
		lt := c.checkExpr(c.store.AssignLHS(id), false)
		rt := c.checkExpr(c.store.AssignRHS(id), false)
		if lt != types.Invalid && rt != types.Invalid && !c.convertible(rt, lt) {
			c.sink.Addf(c.store.Get(id).Span, diag.TypeMismatch, "cannot assign {t} to {t}", int(rt), int(lt))
			c.errAt(id)
		}
	}
}

func (c *Checker) checkIfStmt(id ast.NodeID, returnType types.ID) {
	if cond := c.store.IfCondition(id); cond != ast.None {
		if c.store.Get(cond).Kind == ast.UnionTagCondition {
			if subj := c.store.UnionTagConditionSubject(cond); subj != ast.None {
				c.checkExpr(subj, false)
			}
		} else {
			c.checkBooleanCondition(cond)
		}
	}
	if then := c.store.IfThen(id); then != ast.None {
		c.checkStmts(then, returnType)
	}
	if els := c.store.IfElse(id); els != ast.None {
		branch := c.store.ElseBranch(els)
		switch {
		case branch == ast.None:
		case c.store.Get(branch).Kind == ast.IfStmt:
			c.checkIfStmt(branch, returnType)
		default:
			c.checkStmts(branch, returnType)
		}
	}
}

// checkCaseArm checks one case-statement arm: arms reuse IfStmt's
// shape (condition/then), but a plain-expression pattern is compared
// against the case subject rather than required to be boolean, so it
// gets its own entry point instead of checkIfStmt's.
func (c *Checker) checkCaseArm(id ast.NodeID, returnType types.ID) {
	if cond := c.store.IfCondition(id); cond != ast.None {
		if c.store.Get(cond).Kind == ast.UnionTagCondition {
			if subj := c.store.UnionTagConditionSubject(cond); subj != ast.None {
				c.checkExpr(subj, false)
			}
		} else {
			c.checkExpr(cond, false)
		}
	}
	if then := c.store.IfThen(id); then != ast.None {
		c.checkStmts(then, returnType)
	}
}

func (c *Checker) checkBooleanCondition(id ast.NodeID) {
	t := c.checkExpr(id, false)
	if t != types.Invalid && t != c.tys.Primitive(token.KwBool) {
		c.sink.Addf(c.store.Get(id).Span, diag.TypeNonBooleanOperand, "condition must be {t}, got {t}", int(c.tys.Primitive(token.KwBool)), int(t))
		c.errAt(id)
	}
}

// checkExpr type-checks id and returns its type, applying the
// literal/atom and operator checking rules. asCallCallee allows a
// builtin type keyword atom to stand for a conversion.
func (c *Checker) checkExpr(id ast.NodeID, asCallCallee bool) types.ID {
	if id == ast.None {
		return types.Invalid
	}
	n := c.store.Get(id)
	var result types.ID
	switch n.Kind {
	case ast.BasicExpr:
		result = c.checkBasicExpr(id, asCallCallee)
	case ast.ScopedIdent:
		result = c.checkScopedIdentExpr(id)
	case ast.ParenExpr:
		result = c.checkExpr(c.store.ParenInner(id), false)
	case ast.BracedLiteral:
		result = c.checkBracedLiteral(id)
	case ast.CallExpr:
		result = c.checkCallExpr(id)
	case ast.FieldAccessExpr:
		result = c.checkFieldAccess(id)
	case ast.IndexExpr:
		c.checkExpr(c.store.IndexBase(id), false)
		if spec := c.store.IndexSpec(id); spec != ast.None {
			if s := c.store.IndexStart(spec); s != ast.None {
				c.checkExpr(s, false)
			}
			if e := c.store.IndexEnd(spec); e != ast.None {
				c.checkExpr(e, false)
			}
		}
		result = types.Invalid // no array/slice type kind in the representation taxonomy
	case ast.UnaryExpr, ast.PostfixUnaryExpr:
		result = c.checkExpr(c.store.UnaryOperand(id), false) // unary operators inherit their operand's type
	case ast.BinaryExpr:
		result = c.checkBinaryExpr(id)
	default:
		result = types.Invalid
	}
	return c.setType(id, result)
}

func (c *Checker) checkBasicExpr(id ast.NodeID, asCallCallee bool) types.ID {
	tok, ok := c.store.BasicExprToken(id)
	if !ok {
		return types.Invalid
	}
	switch tok.Kind {
	case token.IntLiteral:
		return c.tys.Primitive(token.KwS32)
	case token.StringLiteral:
		return c.tys.Primitive(token.KwString)
	case token.CharLiteral:
		return c.tys.Primitive(token.KwU8)
	case token.KwTrue, token.KwFalse:
		return c.tys.Primitive(token.KwBool)
	default:
		if token.IsBuiltinType(tok.Kind) {
			if !asCallCallee {
				c.sink.Addf(tok.Span(), diag.TypeBuiltinOutsideCall, "builtin type {s} is only valid as a call target", tok.Kind.String())
				c.errAt(id)
				return types.Invalid
			}
			return c.tys.Primitive(tok.Kind)
		}
		return types.Invalid
	}
}

func (c *Checker) checkScopedIdentExpr(id ast.NodeID) types.ID {
	comps := c.store.ScopedIdentComponents(id)
	if len(comps) > 0 && comps[0].Kind == token.EmptyString {
		return c.checkInferredScopedIdent(id)
	}
	n := c.store.Get(id)
	if n.ResolvesTo == ast.None {
		return types.Invalid // already diagnosed by the name resolver
	}
	c.ensureVarDeclChecked(n.ResolvesTo)
	return c.typeOf(n.ResolvesTo)
}

// checkInferredScopedIdent implements the inferred-scoped-identifier
// rule: dealias the active hint to find its scope (an enum in
// practice, given the representation taxonomy), then resolve each
// subsequent component by name against it.
func (c *Checker) checkInferredScopedIdent(id ast.NodeID) types.ID {
	hint := c.currentHint()
	if hint == types.Invalid {
		c.sink.Addf(c.store.Get(id).Span, diag.TypeMissingHint, "inferred name has no surrounding type hint")
		c.errAt(id)
		return types.Invalid
	}
	dealiased := c.tys.Dealias(hint)
	repr := c.tys.Get(dealiased)
	comps := c.store.ScopedIdentComponents(id)
	for _, comp := range comps[1:] {
		name := string(comp.Text)
		found := false
		for _, n := range repr.Names {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			c.sink.Addf(comp.Span(), diag.TypeInferredUnresolved, "{s} not found in inferred scope", name)
			c.errAt(id)
			return types.Invalid
		}
	}
	return hint
}

func (c *Checker) checkBracedLiteral(id ast.NodeID) types.ID {
	var t types.ID
	if typ := c.store.BracedLiteralType(id); typ != ast.None {
		t = c.tr.resolveType(typ)
	} else {
		t = c.currentHint()
	}
	if init := c.store.BracedLiteralInit(id); init != ast.None {
		dealiased := c.tys.Dealias(t)
		repr := c.tys.Get(dealiased)
		for _, arg := range c.store.InitializerItems(init) {
			var fieldHint types.ID
			if name, ok := c.store.ArgName(arg); ok {
				for _, f := range repr.Fields {
					if f.Name == string(name.Text) {
						fieldHint = f.Type
						break
					}
				}
			}
			c.pushHint(fieldHint)
			c.checkExpr(c.store.ArgValue(arg), false)
			c.popHint()
		}
	}
	return t
}

func (c *Checker) checkCallExpr(id ast.NodeID) types.ID {
	callee := c.store.CallCallee(id)
	calleeType := c.checkExpr(callee, true)

	var paramTypes []types.ID
	var resultType types.ID
	if c.store.Get(callee).Kind == ast.BasicExpr {
		if tok, ok := c.store.BasicExprToken(callee); ok && token.IsBuiltinType(tok.Kind) {
			resultType = calleeType // conversion: identity convertibility stub
		}
	} else if c.store.Get(callee).Kind == ast.ScopedIdent {
		if decl := c.store.Get(callee).ResolvesTo; decl != ast.None && c.store.Get(decl).Kind == ast.FuncDecl {
			resultType = c.typeOf(decl)
			for _, p := range c.store.FuncParams(decl) {
				paramTypes = append(paramTypes, c.typeOf(p))
			}
		}
	}

	for i, arg := range c.store.CallArgs(id) {
		var hint types.ID
		if i < len(paramTypes) {
			hint = paramTypes[i]
		}
		c.pushHint(hint)
		c.checkExpr(c.store.ArgValue(arg), false)
		c.popHint()
	}
	return resultType
}

// checkFieldAccess implements the field-access checking rule: the
// base is dealiased and at most one pointer is auto-dereferenced.
func (c *Checker) checkFieldAccess(id ast.NodeID) types.ID {
	base := c.store.FieldAccessBase(id)
	baseType := c.checkExpr(base, false)
	name, _ := c.store.FieldAccessName(id)

	if baseType == types.Invalid {
		return types.Invalid
	}
	original := baseType
	resolved := c.tys.Dealias(baseType)
	resolved = c.tys.AutoDeref(resolved)
	resolved = c.tys.Dealias(resolved)

	repr := c.tys.Get(resolved)
	if repr.Kind == types.Pointer {
		c.sink.Addf(c.store.Get(id).Span, diag.TypeExcessIndirection, "too many levels of indirection on {t}", int(original))
		c.errAt(id)
		return types.Invalid
	}
	if repr.Kind != types.Struct {
		c.sink.Addf(c.store.Get(id).Span, diag.TypeFieldNotFound, "{t} has no field {s}", int(original), string(name.Text))
		c.errAt(id)
		return types.Invalid
	}
	for _, f := range repr.Fields {
		if f.Name == string(name.Text) {
			return f.Type
		}
	}
	c.sink.Addf(c.store.Get(id).Span, diag.TypeFieldNotFound, "{t} has no field {s}", int(original), string(name.Text))
	c.errAt(id)
	return types.Invalid
}

func (c *Checker) checkBinaryExpr(id ast.NodeID) types.ID {
	opTok, _ := c.store.BinaryOp(id)
	lt := c.checkExpr(c.store.BinaryLeft(id), false)
	rt := c.checkExpr(c.store.BinaryRight(id), false)
	sp := c.store.Get(id).Span

	switch opTok.Kind {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent:
		if !c.sameType(lt, rt) {
			c.sink.Addf(sp, diag.TypeMismatch, "operand types {t} and {t} do not match", int(lt), int(rt))
			c.errAt(id)
			return types.Invalid
		}
		if !c.isArithmetic(lt) {
			c.sink.Addf(sp, diag.TypeNonArithmeticOperand, "operand {t} is not arithmetic", int(lt))
			c.errAt(id)
			return types.Invalid
		}
		return lt
	case token.KwAnd, token.KwOr:
		boolT := c.tys.Primitive(token.KwBool)
		if lt != boolT || rt != boolT {
			c.sink.Addf(sp, diag.TypeNonBooleanOperand, "logical operands must be {t}", int(boolT))
			c.errAt(id)
			return types.Invalid
		}
		return boolT
	case token.Amp, token.Pipe:
		if !c.sameType(lt, rt) {
			c.sink.Addf(sp, diag.TypeMismatch, "operand types {t} and {t} do not match", int(lt), int(rt))
			c.errAt(id)
			return types.Invalid
		}
		return lt
	case token.Eq, token.Ne, token.Lt, token.Le, token.Gt, token.Ge:
		if !c.sameType(lt, rt) {
			c.sink.Addf(sp, diag.TypeMismatch, "operand types {t} and {t} do not match", int(lt), int(rt))
			c.errAt(id)
			return types.Invalid
		}
		return c.tys.Primitive(token.KwBool)
	default:
		return types.Invalid
	}
}

func (c *Checker) sameType(a, b types.ID) bool {
	return a != types.Invalid && a == b
}

// isArithmetic reports whether t is a signed integer, unsigned
// integer, or floating primitive.
func (c *Checker) isArithmetic(t types.ID) bool {
	repr := c.tys.Get(t)
	if repr.Kind != types.Primitive {
		return false
	}
	switch repr.Prim {
	case token.KwU8, token.KwS8, token.KwU16, token.KwS16,
		token.KwU32, token.KwS32, token.KwU64, token.KwS64,
		token.KwF32, token.KwF64:
		return true
	default:
		return false
	}
}

// convertible implements the convertibility stub: identity only, with
// tagged-union widening left for future work.
func (c *Checker) convertible(from, to types.ID) bool {
	return from == to
}
