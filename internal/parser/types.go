package parser

import (
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

var typeStartKinds = []token.Kind{
	token.Star, token.LParen, token.KwStruct, token.KwUnion, token.KwEnum, token.KwFun, token.Ident, token.ColonColon,
}

func (p *Parser) parseType() ast.NodeID {
	for {
		switch {
		case token.IsBuiltinType(p.at().Kind):
			id := p.newNode(ast.BuiltinType)
			p.addToken(id, "token", p.consume())
			return id
		case p.at().Kind == token.Star:
			return p.parsePointerType()
		case p.at().Kind == token.LParen:
			return p.parseTupleType()
		case p.at().Kind == token.KwStruct:
			return p.parseStructTypeLit()
		case p.at().Kind == token.KwUnion:
			return p.parseUnionTypeLit()
		case p.at().Kind == token.KwEnum:
			return p.parseEnumTypeLit()
		case p.at().Kind == token.KwFun:
			return p.parseFunctionTypeLit()
		case p.at().Kind == token.Ident || p.at().Kind == token.ColonColon:
			return p.parseScopedIdent()
		default:
			id := p.newNode(ast.Invalid)
			if p.expectOneOf(id, typeStartKinds, "a type") {
				continue
			}
			return id
		}
	}
}

// parsePointerType accepts an optional mutability classifier token
// (`mut` or `let`); PointerType's "classifier" child is absent when
// neither is written, and ast.Store.PointerMutable treats absence as
// immutable — `let` is accepted but carries no different meaning than
// leaving it out, matching original_source/ast/ast.h's Pointer_Type
// comment ("classifier: let or mut").
func (p *Parser) parsePointerType() ast.NodeID {
	id := p.newNode(ast.PointerType)
	p.skipIf(id, token.Star)
	if p.at().Kind == token.KwMut || p.at().Kind == token.KwLet {
		p.addToken(id, "classifier", p.consume())
	}
	p.addNode(id, p.parseType(), "inner")
	return id
}

func (p *Parser) parseTupleType() ast.NodeID {
	id := p.newNode(ast.TupleType)
	if !p.skipIf(id, token.LParen) {
		return id
	}
	p.parseTypeListInto(id, token.RParen)
	p.skipIf(id, token.RParen)
	return id
}

func (p *Parser) parseStructTypeLit() ast.NodeID {
	id := p.newNode(ast.StructTypeLit)
	p.skipIf(id, token.KwStruct)
	p.addNode(id, p.parseStructBody(), "body")
	return id
}

// parseUnionTypeLit parses the anonymous `union { T1, T2 }` type-list
// syntax: types sit directly as positional children on the node
// itself, unlike UnionDecl's named-alternative StructBody shape.
func (p *Parser) parseUnionTypeLit() ast.NodeID {
	id := p.newNode(ast.UnionTypeLit)
	p.skipIf(id, token.KwUnion)
	if p.skipIf(id, token.LBrace) {
		p.parseTypeListInto(id, token.RBrace)
		p.skipIf(id, token.RBrace)
	}
	return id
}

func (p *Parser) parseEnumTypeLit() ast.NodeID {
	id := p.newNode(ast.EnumTypeLit)
	p.skipIf(id, token.KwEnum)
	if p.skipIf(id, token.LBrace) {
		p.parseIdentListInto(id, token.RBrace)
		p.skipIf(id, token.RBrace)
	}
	return id
}

// parseFunctionTypeLit parses `fun(T1, T2) -> R` for grammar
// completeness; resolveType has no case for FunctionTypeLit and falls
// through to types.Invalid (reserved, per ast.Kind's FunctionTypeLit
// comment).
func (p *Parser) parseFunctionTypeLit() ast.NodeID {
	id := p.newNode(ast.FunctionTypeLit)
	p.skipIf(id, token.KwFun)
	if p.skipIf(id, token.LParen) {
		p.parseTypeListInto(id, token.RParen)
		p.skipIf(id, token.RParen)
	}
	if p.at().Kind == token.Arrow {
		p.consume()
		p.addNode(id, p.parseType(), "return_type")
	}
	return id
}

// parseScopedIdent parses `(::)? IDENT (:: IDENT)*`. A leading `::`
// (inferred-root reference) is recorded as an EmptyString sentinel
// token so ScopedIdentComponents' first element marks "root taken from
// the type hint" without a special-cased boolean field.
func (p *Parser) parseScopedIdent() ast.NodeID {
	id := p.newNode(ast.ScopedIdent)
	if p.at().Kind == token.ColonColon {
		p.addToken(id, "", token.Token{Kind: token.EmptyString, Offset: p.at().Offset})
		p.consume()
	}
	p.addToken(id, "", p.expectConsume(id, token.Ident))
	for p.at().Kind == token.ColonColon {
		p.consume()
		p.addToken(id, "", p.expectConsume(id, token.Ident))
	}
	return id
}
