package parser

import (
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

func (p *Parser) parseCompoundStmt() ast.NodeID {
	id := p.newNode(ast.CompoundStmt)
	if !p.skipIf(id, token.LBrace) {
		return id
	}
	for p.at().Kind != token.RBrace {
		if p.at().Kind == token.EOF {
			p.reportExpected(id, "a statement")
			break
		}
		p.ensureProgress(func() {
			p.addNode(id, p.parseStmt(), "")
		})
	}
	p.skipIf(id, token.RBrace)
	return id
}

func (p *Parser) parseStmt() ast.NodeID {
	switch p.at().Kind {
	case token.KwFun:
		return p.parseFuncDecl()
	case token.KwLet:
		return p.parseVarDecl()
	case token.KwStruct:
		return p.parseStructDecl()
	case token.KwEnum:
		return p.parseEnumDecl()
	case token.KwUnion:
		return p.parseUnionDecl()
	case token.KwError:
		return p.parseErrorDecl()
	case token.LBrace:
		return p.parseCompoundStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwCase:
		return p.parseCaseStmt()
	case token.KwDefer:
		return p.parseDeferStmt()
	default:
		return p.parseAssignOrExprStmt()
	}
}

func (p *Parser) parseAssignOrExprStmt() ast.NodeID {
	lhs := p.parseExprBP(0)
	if p.at().Kind == token.Assign {
		id := p.wrapAsNode(ast.AssignStmt, lhs)
		p.addNode(id, lhs, "lhs")
		p.consume()
		p.addNode(id, p.parseExprBP(0), "rhs")
		p.skipIf(id, token.Semi)
		return id
	}
	id := p.wrapAsNode(ast.ExprStmt, lhs)
	p.addNode(id, lhs, "expr")
	p.skipIf(id, token.Semi)
	return id
}

func (p *Parser) parseIfStmt() ast.NodeID {
	id := p.newNode(ast.IfStmt)
	p.skipIf(id, token.KwIf)
	p.addNode(id, p.parseCond(), "condition")
	p.addNode(id, p.parseCompoundStmt(), "then")
	if p.at().Kind == token.KwElse {
		p.addNode(id, p.parseElse(), "else")
	}
	return id
}

// parseCond parses either a plain boolean expression or a union-tag
// test (`let Tag(binding) = subject`); checkIfStmt dispatches on the
// condition node's kind to tell them apart.
func (p *Parser) parseCond() ast.NodeID {
	if p.at().Kind == token.KwLet {
		return p.parseUnionTagCondition()
	}
	return p.parseExprBP(0)
}

func (p *Parser) parseUnionTagCondition() ast.NodeID {
	id := p.newNode(ast.UnionTagCondition)
	p.skipIf(id, token.KwLet)
	p.addNode(id, p.parseScopedIdent(), "tag")
	if p.at().Kind == token.LParen {
		p.consume()
		p.addNode(id, p.parseBinding(), "binding")
		p.skipIf(id, token.RParen)
	}
	p.expectConsume(id, token.Assign)
	p.addNode(id, p.parseExprBP(0), "subject")
	return id
}

func (p *Parser) parseElse() ast.NodeID {
	id := p.newNode(ast.Else)
	p.skipIf(id, token.KwElse)
	if p.at().Kind == token.KwIf {
		p.addNode(id, p.parseIfStmt(), "if")
	} else {
		p.addNode(id, p.parseCompoundStmt(), "compound")
	}
	return id
}

func (p *Parser) parseWhileStmt() ast.NodeID {
	id := p.newNode(ast.WhileStmt)
	p.skipIf(id, token.KwWhile)
	p.addNode(id, p.parseCond(), "condition")
	p.addNode(id, p.parseCompoundStmt(), "body")
	return id
}

func (p *Parser) parseReturnStmt() ast.NodeID {
	id := p.newNode(ast.ReturnStmt)
	p.skipIf(id, token.KwReturn)
	if p.at().Kind != token.Semi {
		p.addNode(id, p.parseExprBP(0), "value")
	}
	p.skipIf(id, token.Semi)
	return id
}

func (p *Parser) parseDeferStmt() ast.NodeID {
	id := p.newNode(ast.DeferStmt)
	p.skipIf(id, token.KwDefer)
	p.addNode(id, p.parseExprBP(0), "call")
	p.skipIf(id, token.Semi)
	return id
}

func (p *Parser) parseCaseStmt() ast.NodeID {
	id := p.newNode(ast.CaseStmt)
	p.skipIf(id, token.KwCase)
	p.addNode(id, p.parseExprBP(0), "subject")
	if !p.skipIf(id, token.LBrace) {
		return id
	}
	for p.at().Kind != token.RBrace {
		if p.at().Kind == token.EOF {
			p.reportExpected(id, "a case branch")
			break
		}
		p.ensureProgress(func() {
			p.addNode(id, p.parseCaseArm(), "")
		})
	}
	p.skipIf(id, token.RBrace)
	return id
}

// parseCaseArm builds an IfStmt-shaped node so symtab and typecheck
// can walk every branching construct the same way: the arm's
// condition is a UnionTagCondition for a `let Tag(binding) -> ...`
// pattern, a plain expression for a value pattern compared against the
// case subject, or absent for the `else` default arm.
func (p *Parser) parseCaseArm() ast.NodeID {
	id := p.newNode(ast.IfStmt)
	switch p.at().Kind {
	case token.KwLet:
		p.consume()
		cond := p.newNode(ast.UnionTagCondition)
		p.addNode(cond, p.parseScopedIdent(), "tag")
		if p.at().Kind == token.LParen {
			p.consume()
			p.addNode(cond, p.parseBinding(), "binding")
			p.skipIf(cond, token.RParen)
		}
		p.addNode(id, cond, "condition")
	case token.KwElse:
		p.consume()
	default:
		p.addNode(id, p.parseExprBP(0), "condition")
	}
	p.skipIf(id, token.Arrow)
	action := p.parseStmt()
	p.addNode(id, p.wrapInCompound(action), "then")
	return id
}

// wrapInCompound wraps a single parsed statement in a synthetic
// CompoundStmt so every IfStmt-shaped node (plain if, while, case arm)
// presents the same "then" shape to symtab/typecheck.
func (p *Parser) wrapInCompound(stmt ast.NodeID) ast.NodeID {
	id := p.wrapAsNode(ast.CompoundStmt, stmt)
	p.store.Get(id).AddFlag(ast.FlagSynthesized)
	p.addNode(id, stmt, "")
	return id
}
