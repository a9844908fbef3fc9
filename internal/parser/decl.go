package parser

import (
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

// --- function declarations & parameters ---------------------------------

func (p *Parser) parseFuncDecl() ast.NodeID {
	id := p.newNode(ast.FuncDecl)
	p.skipIf(id, token.KwFun)
	p.addToken(id, "name", p.expectConsume(id, token.Ident))
	if !p.skipIf(id, token.LParen) {
		return id
	}
	p.addNode(id, p.parseParamList(), "params")
	p.skipIf(id, token.RParen)
	if p.at().Kind == token.Arrow {
		p.consume()
		p.addNode(id, p.parseType(), "return_type")
	}
	p.addNode(id, p.parseCompoundStmt(), "body")
	return id
}

func (p *Parser) parseParamList() ast.NodeID {
	id := p.newNode(ast.ParamList)
	if p.at().Kind == token.RParen {
		return id
	}
	p.addNode(id, p.parseFuncParam(), "")
	for p.at().Kind == token.Comma {
		p.consume()
		if p.at().Kind == token.RParen {
			break
		}
		p.addNode(id, p.parseFuncParam(), "")
	}
	return id
}

// parseFuncParam builds a flat FuncParam node (name + optional variadic
// marker + type) rather than nesting a full variable binding: function
// parameters never destructure here, simplifying the shape the
// resolver and type checker read (internal/ast.ParamBinding,
// ParamVariadic, ParamType).
func (p *Parser) parseFuncParam() ast.NodeID {
	id := p.newNode(ast.FuncParam)
	p.addToken(id, "name", p.expectConsume(id, token.Ident))
	if p.at().Kind == token.DotDot {
		p.addToken(id, "variadic", p.consume())
	}
	p.addNode(id, p.parseType(), "type")
	return id
}

// --- struct / union / enum / error declarations -------------------------

func (p *Parser) parseStructDecl() ast.NodeID {
	id := p.newNode(ast.StructDecl)
	p.skipIf(id, token.KwStruct)
	p.addToken(id, "name", p.expectConsume(id, token.Ident))
	p.addNode(id, p.parseStructBody(), "body")
	return id
}

var structBodyStartKinds = []token.Kind{token.LBrace, token.LParen}

// parseStructBody parses either the field-like `{name type, ...}` form
// or the tuple-like `(type, ...);` form, both wrapped in a StructBody
// node; ast.IsTupleLike tells them apart by the kind of the first
// positional child.
func (p *Parser) parseStructBody() ast.NodeID {
	id := p.newNode(ast.StructBody)
	for {
		switch p.at().Kind {
		case token.LBrace:
			p.consume()
			p.parseFieldListInto(id, token.RBrace)
			p.skipIf(id, token.RBrace)
			return id
		case token.LParen:
			p.consume()
			p.parseTypeListInto(id, token.RParen)
			p.skipIf(id, token.RParen)
			p.skipIf(id, token.Semi)
			return id
		default:
			if p.expectOneOf(id, structBodyStartKinds, "a struct body") {
				continue
			}
			return id
		}
	}
}

func (p *Parser) parseFieldListInto(id ast.NodeID, end token.Kind) {
	if p.at().Kind == end {
		return
	}
	p.addNode(id, p.parseField(), "")
	for p.at().Kind == token.Comma {
		p.consume()
		if p.at().Kind == end {
			break
		}
		p.addNode(id, p.parseField(), "")
	}
}

func (p *Parser) parseField() ast.NodeID {
	id := p.newNode(ast.StructField)
	p.addToken(id, "name", p.expectConsume(id, token.Ident))
	p.addNode(id, p.parseType(), "type")
	return id
}

func (p *Parser) parseTypeListInto(id ast.NodeID, end token.Kind) {
	if p.at().Kind == end {
		return
	}
	p.addNode(id, p.parseType(), "")
	for p.at().Kind == token.Comma {
		p.consume()
		if p.at().Kind == end {
			break
		}
		p.addNode(id, p.parseType(), "")
	}
}

// parseUnionDecl reuses the StructField/StructBody shapes for named
// alternatives: unlike original_source/syn/syn.c's Union_Declaration
// (embed-or-reference alternatives), this rewrite models each
// alternative as a plain name+type pair.
func (p *Parser) parseUnionDecl() ast.NodeID {
	id := p.newNode(ast.UnionDecl)
	p.skipIf(id, token.KwUnion)
	p.addToken(id, "name", p.expectConsume(id, token.Ident))
	body := p.newNode(ast.StructBody)
	if p.skipIf(body, token.LBrace) {
		p.parseFieldListInto(body, token.RBrace)
		p.skipIf(body, token.RBrace)
	}
	p.addNode(id, body, "body")
	return id
}

func (p *Parser) parseEnumDecl() ast.NodeID {
	id := p.newNode(ast.EnumDecl)
	p.skipIf(id, token.KwEnum)
	p.addToken(id, "name", p.expectConsume(id, token.Ident))
	if p.skipIf(id, token.LBrace) {
		p.parseIdentListInto(id, token.RBrace)
		p.skipIf(id, token.RBrace)
	}
	return id
}

func (p *Parser) parseIdentListInto(id ast.NodeID, end token.Kind) {
	for p.at().Kind != end {
		if p.at().Kind == token.EOF {
			return
		}
		p.addToken(id, "", p.expectConsume(id, token.Ident))
		if p.at().Kind != token.Comma {
			break
		}
		p.consume()
	}
}

func (p *Parser) parseErrorDecl() ast.NodeID {
	id := p.newNode(ast.ErrorDecl)
	p.skipIf(id, token.KwError)
	p.addToken(id, "name", p.expectConsume(id, token.Ident))
	if p.skipIf(id, token.LBrace) {
		p.parseErrorAltListInto(id)
		p.skipIf(id, token.RBrace)
	}
	return id
}

func (p *Parser) parseErrorAltListInto(id ast.NodeID) {
	if p.at().Kind == token.RBrace {
		return
	}
	p.addNode(id, p.parseErrorAlt(), "")
	for p.at().Kind == token.Comma {
		p.consume()
		if p.at().Kind == token.RBrace {
			break
		}
		p.addNode(id, p.parseErrorAlt(), "")
	}
}

// parseErrorAlt builds a named, optionally field-bearing alternative
// (IDENT, or IDENT '{' field,* '}') rather than the original's
// embedded-error-type reference — ast.ErrorAltEmbedded stays unused,
// recorded in DESIGN.md.
func (p *Parser) parseErrorAlt() ast.NodeID {
	id := p.newNode(ast.ErrorAlt)
	p.addToken(id, "name", p.expectConsume(id, token.Ident))
	if p.at().Kind == token.LBrace {
		p.consume()
		p.parseFieldListInto(id, token.RBrace)
		p.skipIf(id, token.RBrace)
	}
	return id
}
