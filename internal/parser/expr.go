package parser

import (
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

// power is a (left, right) binding-power pair, named the way
// original_source/syn/syn.c's binding_power_of table names them: left
// gates whether an operator already in the Pratt loop binds tighter
// than the caller's floor; right is the floor passed down when
// recursing into the operator's own right-hand operand.
type power struct{ left, right int }

// Precedence table, tightest to loosest, copied from
// original_source/syn/syn.c's PREC_* constants: postfix > unary >
// multiplicative > additive > (shift, reserved/unused) > relational >
// equality > bit-and > bit-or > logical-and > logical-or.
var (
	postfixPow   = power{23, 24}
	unaryRightPw = 21

	infixPow = map[token.Kind]power{
		token.Star:    {19, 20},
		token.Slash:   {19, 20},
		token.Percent: {19, 20},
		token.Plus:    {17, 18},
		token.Minus:   {17, 18},
		token.Lt:      {13, 14},
		token.Le:      {13, 14},
		token.Gt:      {13, 14},
		token.Ge:      {13, 14},
		token.Eq:      {11, 12},
		token.Ne:      {11, 12},
		token.Amp:     {9, 10},
		token.Pipe:    {7, 8},
		token.KwAnd:   {5, 6},
		token.KwOr:    {3, 4},
	}
)

func isPostfixOp(k token.Kind) bool {
	switch k {
	case token.Dot, token.LParen, token.LBracket, token.PlusPlus, token.MinusMinus, token.Bang, token.Question:
		return true
	default:
		return false
	}
}

func isPrefixOp(k token.Kind) bool {
	switch k {
	case token.Amp, token.PlusPlus, token.MinusMinus, token.Star, token.Minus:
		return true
	default:
		return false
	}
}

func isLiteralToken(k token.Kind) bool {
	switch k {
	case token.IntLiteral, token.CharLiteral, token.StringLiteral, token.KwTrue, token.KwFalse, token.KwNil:
		return true
	default:
		return false
	}
}

// parseExprBP is the Pratt loop: it parses a prefix term, then
// repeatedly extends it with postfix or infix operators whose left
// binding power is at least minPow.
func (p *Parser) parseExprBP(minPow int) ast.NodeID {
	lhs := p.parsePrefixOrAtom()
	for {
		op := p.at().Kind
		if isPostfixOp(op) {
			if postfixPow.left < minPow {
				break
			}
			lhs = p.parsePostfix(lhs)
			continue
		}
		if pw, ok := infixPow[op]; ok {
			if pw.left < minPow {
				break
			}
			opTok := p.consume()
			id := p.wrapAsNode(ast.BinaryExpr, lhs)
			p.addToken(id, "op", opTok)
			p.addNode(id, lhs, "left")
			p.addNode(id, p.parseExprBP(pw.right), "right")
			lhs = id
			continue
		}
		break
	}
	return lhs
}

func (p *Parser) parsePrefixOrAtom() ast.NodeID {
	switch {
	case p.at().Kind == token.LParen:
		id := p.newNode(ast.ParenExpr)
		p.skipIf(id, token.LParen)
		p.addNode(id, p.parseExprBP(0), "inner")
		p.skipIf(id, token.RParen)
		return id
	case isPrefixOp(p.at().Kind):
		id := p.newNode(ast.UnaryExpr)
		p.addToken(id, "op", p.consume())
		p.addNode(id, p.parseExprBP(unaryRightPw), "operand")
		return id
	default:
		return p.parseAtom()
	}
}

var atomExpectedKinds = []token.Kind{
	token.IntLiteral, token.CharLiteral, token.StringLiteral,
	token.KwTrue, token.KwFalse, token.KwNil,
	token.Ident, token.ColonColon, token.LBrace,
}

// parseAtom folds the post-parse "designator" normalization
// (original_source/sem/post_parse.c) into a single token of lookahead:
// a scoped identifier immediately followed by '{' becomes a
// BracedLiteral naming it as the literal's type; otherwise the bare
// identifier is returned directly. A literal or builtin-type token
// becomes a BasicExpr; a bare '{' begins an inferred-type composite
// literal.
func (p *Parser) parseAtom() ast.NodeID {
	switch {
	case p.at().Kind == token.LBrace:
		return p.parseBracedLiteral(ast.None)
	case p.at().Kind == token.Ident || p.at().Kind == token.ColonColon:
		ident := p.parseScopedIdent()
		if p.at().Kind == token.LBrace {
			return p.parseBracedLiteral(ident)
		}
		return ident
	case isLiteralToken(p.at().Kind) || token.IsBuiltinType(p.at().Kind):
		id := p.newNode(ast.BasicExpr)
		p.addToken(id, "token", p.consume())
		return id
	default:
		id := p.newNode(ast.Invalid)
		if p.expectOneOf(id, atomExpectedKinds, "an expression") {
			return p.parseAtom()
		}
		return id
	}
}

func (p *Parser) parseBracedLiteral(typ ast.NodeID) ast.NodeID {
	var id ast.NodeID
	if typ != ast.None {
		id = p.wrapAsNode(ast.BracedLiteral, typ)
		p.addNode(id, typ, "type")
	} else {
		id = p.newNode(ast.BracedLiteral)
	}
	p.addNode(id, p.parseInitializerList(), "init")
	return id
}

func (p *Parser) parseInitializerList() ast.NodeID {
	id := p.newNode(ast.InitializerList)
	if !p.skipIf(id, token.LBrace) {
		return id
	}
	if p.at().Kind == token.RBrace {
		p.consume()
		return id
	}
	p.addNode(id, p.parseArg(), "")
	for p.at().Kind == token.Comma {
		p.consume()
		if p.at().Kind == token.RBrace {
			break
		}
		p.addNode(id, p.parseArg(), "")
	}
	p.skipIf(id, token.RBrace)
	return id
}

// parseArg disambiguates a named argument (`IDENT '=' expr`) from a
// positional one using one extra token of lookahead beyond the
// lexer's own single-token buffering — the only place in the grammar
// that needs it (original_source/syn/syn.c's parse_call_arg).
func (p *Parser) parseArg() ast.NodeID {
	id := p.newNode(ast.Arg)
	if p.at().Kind == token.Ident && p.peekAt(1).Kind == token.Assign {
		p.addToken(id, "name", p.consume())
		p.consume() // '='
		p.addNode(id, p.parseExprBP(0), "value")
		return id
	}
	p.addNode(id, p.parseExprBP(0), "value")
	return id
}

func (p *Parser) parsePostfix(lhs ast.NodeID) ast.NodeID {
	switch p.at().Kind {
	case token.LBracket:
		id := p.wrapAsNode(ast.IndexExpr, lhs)
		p.addNode(id, lhs, "base")
		p.addNode(id, p.parseIndex(), "index")
		return id
	case token.LParen:
		id := p.wrapAsNode(ast.CallExpr, lhs)
		p.addNode(id, lhs, "callee")
		p.addNode(id, p.parseArgList(), "args")
		return id
	case token.Dot:
		id := p.wrapAsNode(ast.FieldAccessExpr, lhs)
		p.addNode(id, lhs, "base")
		p.consume()
		p.addToken(id, "name", p.expectConsume(id, token.Ident))
		return id
	default: // ++, --, !, ?
		id := p.wrapAsNode(ast.PostfixUnaryExpr, lhs)
		p.addToken(id, "op", p.consume())
		p.addNode(id, lhs, "operand")
		return id
	}
}

// parseIndex parses `[e]` or the range forms `[a:b]`, `[:b]`, `[a:]`,
// `[:]`; IndexIsRange reads the presence of the consumed colon token
// (stored under "range") to tell a plain index from a range.
func (p *Parser) parseIndex() ast.NodeID {
	id := p.newNode(ast.Index)
	if !p.skipIf(id, token.LBracket) {
		return id
	}
	if p.at().Kind != token.Colon {
		p.addNode(id, p.parseExprBP(0), "start")
	}
	if p.at().Kind == token.Colon {
		p.addToken(id, "range", p.consume())
		if p.at().Kind != token.RBracket {
			p.addNode(id, p.parseExprBP(0), "end")
		}
	}
	p.skipIf(id, token.RBracket)
	return id
}

func (p *Parser) parseArgList() ast.NodeID {
	id := p.newNode(ast.ArgList)
	if !p.skipIf(id, token.LParen) {
		return id
	}
	if p.at().Kind == token.RParen {
		p.consume()
		return id
	}
	p.addNode(id, p.parseArg(), "")
	for p.at().Kind == token.Comma {
		p.consume()
		if p.at().Kind == token.RParen {
			break
		}
		p.addNode(id, p.parseArg(), "")
	}
	p.skipIf(id, token.RParen)
	return id
}
