package ast

import "github.com/kpumuk/iotac-frontend/internal/token"

// The accessors below give each node shape typed field access on top of
// Store's generic Child/ChildNode/ChildToken/Positional lookups, the
// same role a tree-sitter-backed CST's generated node accessors would
// play for a grammar compiled from a .grammar file.

// Name returns the identifier token a declaration binds (VarDecl binds
// through its Binding child instead, reached with VarDeclBinding).
func (s *Store) Name(id NodeID) (token.Token, bool) {
	return s.ChildToken(id, "name")
}

// VarDeclBinding returns the VarDecl's binding subtree (Binding,
// DestructureTuple, DestructureStruct, or DestructureUnion).
func (s *Store) VarDeclBinding(id NodeID) NodeID { return s.ChildNode(id, "binding") }

// VarDeclType returns the VarDecl's explicit type annotation, or None
// if the declaration relies on initializer-based inference.
func (s *Store) VarDeclType(id NodeID) NodeID { return s.ChildNode(id, "type") }

// VarDeclValue returns the VarDecl's initializer expression, or None.
func (s *Store) VarDeclValue(id NodeID) NodeID { return s.ChildNode(id, "value") }

// FuncParams returns a FuncDecl's parameter list in declaration order.
func (s *Store) FuncParams(id NodeID) []NodeID {
	return s.PositionalNodes(s.ChildNode(id, "params"))
}

// FuncReturnType returns a FuncDecl's declared return type, or None for
// a unit-returning function with no arrow clause.
func (s *Store) FuncReturnType(id NodeID) NodeID { return s.ChildNode(id, "return_type") }

// FuncBody returns a FuncDecl's CompoundStmt body.
func (s *Store) FuncBody(id NodeID) NodeID { return s.ChildNode(id, "body") }

// ParamBinding returns a FuncParam's bound name token.
func (s *Store) ParamBinding(id NodeID) (token.Token, bool) { return s.ChildToken(id, "name") }

// ParamType returns a FuncParam's declared type.
func (s *Store) ParamType(id NodeID) NodeID { return s.ChildNode(id, "type") }

// ParamVariadic reports whether a FuncParam was declared with a
// trailing ".." marker.
func (s *Store) ParamVariadic(id NodeID) bool {
	_, ok := s.ChildToken(id, "variadic")
	return ok
}

// StructFields returns a StructDecl's (or UnionDecl's) field list when
// declared field-like, or nil when declared tuple-like (see
// StructTupleTypes).
func (s *Store) StructFields(id NodeID) []NodeID {
	return s.PositionalNodes(s.ChildNode(id, "body"))
}

// StructTupleTypes returns a tuple-like StructDecl/StructTypeLit's
// positional type list. A struct body is tuple-like exactly when its
// body's positional children are Type-shaped nodes rather than
// StructField nodes; callers distinguish the two with IsTupleLike.
func (s *Store) StructTupleTypes(id NodeID) []NodeID {
	return s.PositionalNodes(s.ChildNode(id, "body"))
}

// IsTupleLike reports whether a struct-shaped body was declared as a
// positional type list rather than named fields.
func (s *Store) IsTupleLike(bodyID NodeID) bool {
	kids := s.PositionalNodes(bodyID)
	if len(kids) == 0 {
		return false
	}
	k := s.Get(kids[0]).Kind
	return k != StructField
}

// FieldName returns a StructField's name token.
func (s *Store) FieldName(id NodeID) (token.Token, bool) { return s.ChildToken(id, "name") }

// FieldType returns a StructField's declared type.
func (s *Store) FieldType(id NodeID) NodeID { return s.ChildNode(id, "type") }

// EnumAlternatives returns an EnumDecl's enumerator name tokens in
// declaration order.
func (s *Store) EnumAlternatives(id NodeID) []token.Token {
	var out []token.Token
	for _, c := range s.Positional(id) {
		if c.Kind == ChildToken {
			out = append(out, c.Token)
		}
	}
	return out
}

// ErrorAlternatives returns an ErrorDecl's ErrorAlt children.
func (s *Store) ErrorAlternatives(id NodeID) []NodeID { return s.PositionalNodes(id) }

// ErrorAltEmbedded reports whether an ErrorAlt was declared with a
// leading '!' (embeds another error type's alternatives).
func (s *Store) ErrorAltEmbedded(id NodeID) bool {
	_, ok := s.ChildToken(id, "embedded")
	return ok
}

// CompoundStmts returns a CompoundStmt's statement list in order.
func (s *Store) CompoundStmts(id NodeID) []NodeID { return s.PositionalNodes(id) }

// IfCondition returns an IfStmt's condition (an expression node, or a
// UnionTagCondition).
func (s *Store) IfCondition(id NodeID) NodeID { return s.ChildNode(id, "condition") }

// IfThen returns an IfStmt's CompoundStmt body.
func (s *Store) IfThen(id NodeID) NodeID { return s.ChildNode(id, "then") }

// IfElse returns an IfStmt's Else clause, or None.
func (s *Store) IfElse(id NodeID) NodeID { return s.ChildNode(id, "else") }

// ElseBranch returns an Else node's nested IfStmt or CompoundStmt,
// whichever is present.
func (s *Store) ElseBranch(id NodeID) NodeID {
	if n := s.ChildNode(id, "if"); n != None {
		return n
	}
	return s.ChildNode(id, "compound")
}

// UnionTagConditionBinding returns the binding a union-tag condition
// destructures the matched alternative's payload into, or None for a
// bare tag test with no capture.
func (s *Store) UnionTagConditionBinding(id NodeID) NodeID { return s.ChildNode(id, "binding") }

// UnionTagConditionTag returns the scoped identifier naming the tested
// alternative.
func (s *Store) UnionTagConditionTag(id NodeID) NodeID { return s.ChildNode(id, "tag") }

// UnionTagConditionSubject returns the expression being tested.
func (s *Store) UnionTagConditionSubject(id NodeID) NodeID { return s.ChildNode(id, "subject") }

// WhileCondition returns a WhileStmt's condition.
func (s *Store) WhileCondition(id NodeID) NodeID { return s.ChildNode(id, "condition") }

// WhileBody returns a WhileStmt's CompoundStmt body.
func (s *Store) WhileBody(id NodeID) NodeID { return s.ChildNode(id, "body") }

// CaseSubject returns a CaseStmt's scrutinee expression.
func (s *Store) CaseSubject(id NodeID) NodeID { return s.ChildNode(id, "subject") }

// CaseArms returns a CaseStmt's IfStmt-shaped arms in order (each arm's
// condition is a UnionTagCondition, a plain expression, or absent for
// an `else` arm).
func (s *Store) CaseArms(id NodeID) []NodeID { return s.PositionalNodes(id) }

// ReturnValue returns a ReturnStmt's result expression, or None for a
// bare `return;`.
func (s *Store) ReturnValue(id NodeID) NodeID { return s.ChildNode(id, "value") }

// DeferCall returns a DeferStmt's deferred call expression.
func (s *Store) DeferCall(id NodeID) NodeID { return s.ChildNode(id, "call") }

// ExprStmtExpr returns an ExprStmt's wrapped expression.
func (s *Store) ExprStmtExpr(id NodeID) NodeID { return s.ChildNode(id, "expr") }

// AssignLHS returns an AssignStmt's assignment target.
func (s *Store) AssignLHS(id NodeID) NodeID { return s.ChildNode(id, "lhs") }

// AssignRHS returns an AssignStmt's assigned value.
func (s *Store) AssignRHS(id NodeID) NodeID { return s.ChildNode(id, "rhs") }

// PointerInner returns a PointerType's pointee type.
func (s *Store) PointerInner(id NodeID) NodeID { return s.ChildNode(id, "inner") }

// PointerMutable reports whether a PointerType was declared `*mut` as
// opposed to `*let`.
func (s *Store) PointerMutable(id NodeID) bool {
	tok, ok := s.ChildToken(id, "classifier")
	return ok && tok.Kind == token.KwMut
}

// CollectionElements returns a TupleType's element type list.
func (s *Store) CollectionElements(id NodeID) []NodeID { return s.PositionalNodes(id) }

// ScopedIdentComponents returns a ScopedIdent's path components in
// order. A leading "::x" path has an EmptyString sentinel as its first
// component, marking an inferred root resolved against context instead
// of a named scope.
func (s *Store) ScopedIdentComponents(id NodeID) []token.Token {
	var out []token.Token
	for _, c := range s.Positional(id) {
		if c.Kind == ChildToken {
			out = append(out, c.Token)
		}
	}
	return out
}

// BasicExprToken returns a BasicExpr's literal/builtin-type token.
func (s *Store) BasicExprToken(id NodeID) (token.Token, bool) { return s.ChildToken(id, "token") }

// BracedLiteralType returns a BracedLiteral's explicit type, or None
// when the type is inferred from the surrounding context's type hint.
func (s *Store) BracedLiteralType(id NodeID) NodeID { return s.ChildNode(id, "type") }

// BracedLiteralInit returns a BracedLiteral's InitializerList.
func (s *Store) BracedLiteralInit(id NodeID) NodeID { return s.ChildNode(id, "init") }

// ParenInner returns a ParenExpr's wrapped expression.
func (s *Store) ParenInner(id NodeID) NodeID { return s.ChildNode(id, "inner") }

// CallCallee returns a CallExpr's callee expression.
func (s *Store) CallCallee(id NodeID) NodeID { return s.ChildNode(id, "callee") }

// CallArgs returns a CallExpr's Arg list in order.
func (s *Store) CallArgs(id NodeID) []NodeID {
	return s.PositionalNodes(s.ChildNode(id, "args"))
}

// ArgName returns an Arg's name token for a named argument, or false
// for a positional one.
func (s *Store) ArgName(id NodeID) (token.Token, bool) { return s.ChildToken(id, "name") }

// ArgValue returns an Arg's value expression.
func (s *Store) ArgValue(id NodeID) NodeID { return s.ChildNode(id, "value") }

// FieldAccessBase returns a FieldAccessExpr's base expression.
func (s *Store) FieldAccessBase(id NodeID) NodeID { return s.ChildNode(id, "base") }

// FieldAccessName returns a FieldAccessExpr's accessed field token.
func (s *Store) FieldAccessName(id NodeID) (token.Token, bool) { return s.ChildToken(id, "name") }

// IndexBase returns an IndexExpr's base expression.
func (s *Store) IndexBase(id NodeID) NodeID { return s.ChildNode(id, "base") }

// IndexSpec returns an IndexExpr's Index node describing a single
// subscript or a range.
func (s *Store) IndexSpec(id NodeID) NodeID { return s.ChildNode(id, "index") }

// IndexIsRange reports whether an Index node is a range (`a:b`) rather
// than a single subscript.
func (s *Store) IndexIsRange(id NodeID) bool {
	_, ok := s.ChildToken(id, "range")
	return ok
}

// IndexStart returns a single Index's subscript expression, or a
// range Index's lower bound (None if omitted).
func (s *Store) IndexStart(id NodeID) NodeID { return s.ChildNode(id, "start") }

// IndexEnd returns a range Index's upper bound, or None if omitted.
func (s *Store) IndexEnd(id NodeID) NodeID { return s.ChildNode(id, "end") }

// UnaryOp returns a UnaryExpr's or PostfixUnaryExpr's operator token.
func (s *Store) UnaryOp(id NodeID) (token.Token, bool) { return s.ChildToken(id, "op") }

// UnaryOperand returns a UnaryExpr's or PostfixUnaryExpr's operand.
func (s *Store) UnaryOperand(id NodeID) NodeID { return s.ChildNode(id, "operand") }

// BinaryOp returns a BinaryExpr's operator token.
func (s *Store) BinaryOp(id NodeID) (token.Token, bool) { return s.ChildToken(id, "op") }

// BinaryLeft returns a BinaryExpr's left operand.
func (s *Store) BinaryLeft(id NodeID) NodeID { return s.ChildNode(id, "left") }

// BinaryRight returns a BinaryExpr's right operand.
func (s *Store) BinaryRight(id NodeID) NodeID { return s.ChildNode(id, "right") }

// InitializerItems returns an InitializerList's Arg children.
func (s *Store) InitializerItems(id NodeID) []NodeID { return s.PositionalNodes(id) }

// ImportPath returns an Import's path token.
func (s *Store) ImportPath(id NodeID) (token.Token, bool) { return s.ChildToken(id, "path") }

// SourceFileImports returns a SourceFile's Import children.
func (s *Store) SourceFileImports(id NodeID) []NodeID {
	return s.PositionalNodes(s.ChildNode(id, "imports"))
}

// SourceFileDecls returns a SourceFile's top-level declarations.
func (s *Store) SourceFileDecls(id NodeID) []NodeID {
	return s.PositionalNodes(s.ChildNode(id, "declarations"))
}
