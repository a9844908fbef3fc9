// Package parser implements the recursive-descent, Pratt-expression
// parser: source file -> imports, declarations; declarations ->
// variable | function | struct | enum | union | error; statements ->
// declaration | compound | if | while | return | defer | case |
// assign-or-expression.
//
// The original C parser this grammar is modeled on needs a
// current-node stack so a grammar rule can link its node as a child of
// its caller without knowing the caller's identity up front, plus a
// re-parenting dance the Pratt loop uses to slot an already-built
// left-hand side under a new binary/postfix node. Neither is needed
// here: ast.Store builds every node explicitly (store.New, then
// AddChildNode/AddChildToken), so a rule simply allocates its node,
// fills it in, and returns its id to the caller, which attaches it
// wherever it likes.
//
// Likewise, the "post-parse normalization" DFS that rewrites a
// designator-with-no-initializer-list back into a plain scoped
// identifier (grounded on original_source/sem/post_parse.c) is folded
// into parseAtom's one-token lookahead instead of running as a
// separate pass afterward: the C implementation needed the rewrite
// because its grammar rule had already committed to building a
// designator node before it could see whether a '{' followed; here the
// lookahead is free, so the atom parser builds the right shape the
// first time.
package parser

import (
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/lexer"
	"github.com/kpumuk/iotac-frontend/internal/source"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

// Parser turns a token stream into an ast.Store tree. It buffers
// tokens beyond the lexer's own single-token lookahead only where the
// grammar needs it (the named-argument `IDENT '='` lookahead).
type Parser struct {
	lex   *lexer.Lexer
	store *ast.Store
	sink  *diag.Sink

	buf       []token.Token
	panicMode bool
}

// New creates a Parser reading from lex and building nodes into store,
// reporting syntax diagnostics to sink.
func New(lex *lexer.Lexer, store *ast.Store, sink *diag.Sink) *Parser {
	return &Parser{lex: lex, store: store, sink: sink}
}

// Parse parses a complete source file and returns its root node id.
func Parse(lex *lexer.Lexer, store *ast.Store, sink *diag.Sink) ast.NodeID {
	return New(lex, store, sink).parseSourceFile()
}

// --- token stream -----------------------------------------------------

func (p *Parser) rawNext() token.Token {
	for {
		t := p.lex.Consume()
		if t.Kind != token.Comment {
			return t
		}
	}
}

func (p *Parser) fill(n int) {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.rawNext())
	}
}

// at returns the current lookahead token without consuming it.
func (p *Parser) at() token.Token {
	p.fill(0)
	return p.buf[0]
}

// peekAt returns the nth token beyond the current one (n=1 is one past
// at()), used only to disambiguate a named call/initializer argument.
func (p *Parser) peekAt(n int) token.Token {
	p.fill(n)
	return p.buf[n]
}

func (p *Parser) consume() token.Token {
	p.fill(0)
	t := p.buf[0]
	p.buf = p.buf[1:]
	return t
}

// --- node construction --------------------------------------------------

// newNode allocates a node at the current lookahead's start offset; its
// span widens as children are attached (AddChildNode) or extended
// (skipIf, addToken).
func (p *Parser) newNode(kind ast.Kind) ast.NodeID {
	start := p.at().Offset
	return p.store.New(kind, source.Span{Start: start, End: start})
}

// wrapAsNode allocates a node whose span starts where an already-parsed
// child (first) begins, for productions that commit to a node kind only
// after parsing their first piece (assign-vs-expr statements).
func (p *Parser) wrapAsNode(kind ast.Kind, first ast.NodeID) ast.NodeID {
	start := p.store.Get(first).Span.Start
	return p.store.New(kind, source.Span{Start: start, End: start})
}

func (p *Parser) addNode(parent, child ast.NodeID, name string) {
	p.store.AddChildNode(parent, child, name)
}

// addToken attaches tok as a child and widens parent's span to cover
// it — AddChildNode does this automatically for node children, but
// AddChildToken does not, since a token does not imply a node's bounds
// the way its presence among the node's own text does.
func (p *Parser) addToken(parent ast.NodeID, name string, tok token.Token) {
	p.store.AddChildToken(parent, name, tok)
	p.store.Extend(parent, tok.Span())
}

func (p *Parser) errAt(id ast.NodeID) {
	if n := p.store.Get(id); n != nil {
		n.AddFlag(ast.FlagError)
	}
}

// --- panic-mode recovery -------------------------------------------------

func oneOf(k token.Kind, ks []token.Kind) bool {
	for _, want := range ks {
		if k == want {
			return true
		}
	}
	return false
}

func (p *Parser) reportExpected(id ast.NodeID, want string) {
	got := p.at()
	p.sink.Addf(got.Span(), diag.ParseExpectedToken, "expected {s}, got {s}", want, got.Kind.String())
	p.errAt(id)
}

// expect reports whether the lookahead matches want, without
// consuming it. On mismatch it follows the panic-mode contract: if
// already panicking, scan forward for want (stopping at
// EOF, where further scanning can never succeed since the lexer parks
// there); otherwise report once and enter panic mode.
func (p *Parser) expect(id ast.NodeID, want token.Kind) bool {
	if p.at().Kind == want {
		p.panicMode = false
		return true
	}
	if p.panicMode {
		for {
			t := p.at()
			if t.Kind == token.EOF {
				return false
			}
			if t.Kind == want {
				p.panicMode = false
				return true
			}
			p.consume()
		}
	}
	p.panicMode = true
	p.reportExpected(id, want.String())
	return false
}

// expectOneOf is expect generalized to a token set, used by productions
// that dispatch on the lookahead's kind (a declaration, a type, a
// binding).
func (p *Parser) expectOneOf(id ast.NodeID, kinds []token.Kind, label string) bool {
	if oneOf(p.at().Kind, kinds) {
		p.panicMode = false
		return true
	}
	if p.panicMode {
		for {
			t := p.at()
			if t.Kind == token.EOF {
				p.errAt(id)
				return false
			}
			if oneOf(t.Kind, kinds) {
				p.panicMode = false
				return true
			}
			p.consume()
		}
	}
	p.panicMode = true
	p.reportExpected(id, label)
	return false
}

// skipIf expects want and, on success, consumes it, widening id's span
// to cover it without recording it as a child (the common case for a
// delimiter that has no semantic role beyond bounding the node).
func (p *Parser) skipIf(id ast.NodeID, want token.Kind) bool {
	if !p.expect(id, want) {
		return false
	}
	p.store.Extend(id, p.consume().Span())
	return true
}

// expectConsume is skipIf for a token that IS worth keeping: on match
// it returns the consumed token for the caller to attach as a named
// child; on mismatch it returns the zero token, already diagnosed.
func (p *Parser) expectConsume(id ast.NodeID, want token.Kind) token.Token {
	if p.expect(id, want) {
		return p.consume()
	}
	return token.Token{}
}

// ensureProgress wraps one element of a list production: if parse
// consumed no tokens (a degenerate or fully-recovered-in-place parse),
// it force-advances one token so the enclosing loop terminates,
// mirroring original_source's ensure_progress guard.
func (p *Parser) ensureProgress(parse func()) {
	before := p.at()
	parse()
	after := p.at()
	if before.Kind == after.Kind && before.Offset == after.Offset {
		p.consume()
	}
}

// --- source file --------------------------------------------------------

func (p *Parser) parseSourceFile() ast.NodeID {
	id := p.newNode(ast.SourceFile)
	imports := p.parseImportList()
	p.addNode(id, imports, "imports")
	decls := p.parseDeclarationList()
	p.addNode(id, decls, "declarations")
	return id
}

func (p *Parser) parseImportList() ast.NodeID {
	id := p.newNode(ast.ImportList)
	for p.at().Kind == token.KwImport {
		p.ensureProgress(func() {
			p.addNode(id, p.parseImport(), "")
		})
	}
	return id
}

func (p *Parser) parseImport() ast.NodeID {
	id := p.newNode(ast.Import)
	p.skipIf(id, token.KwImport)
	p.addToken(id, "path", p.expectConsume(id, token.Ident))
	p.skipIf(id, token.Semi)
	return id
}

var declStartKinds = []token.Kind{
	token.KwLet, token.KwFun, token.KwStruct, token.KwEnum, token.KwUnion, token.KwError,
}

func (p *Parser) parseDeclarationList() ast.NodeID {
	id := p.newNode(ast.DeclarationList)
	for p.at().Kind != token.EOF {
		p.ensureProgress(func() {
			p.addNode(id, p.parseDecl(), "")
		})
	}
	return id
}

func (p *Parser) parseDecl() ast.NodeID {
	for {
		switch p.at().Kind {
		case token.KwLet:
			return p.parseVarDecl()
		case token.KwFun:
			return p.parseFuncDecl()
		case token.KwStruct:
			return p.parseStructDecl()
		case token.KwEnum:
			return p.parseEnumDecl()
		case token.KwUnion:
			return p.parseUnionDecl()
		case token.KwError:
			return p.parseErrorDecl()
		default:
			id := p.newNode(ast.Invalid)
			if p.expectOneOf(id, declStartKinds, "start of declaration") {
				continue
			}
			return id
		}
	}
}

// --- variable declarations & bindings -----------------------------------

func (p *Parser) parseVarDecl() ast.NodeID {
	id := p.newNode(ast.VarDecl)
	p.skipIf(id, token.KwLet)
	p.addNode(id, p.parseVarBinding(), "binding")
	if p.at().Kind != token.Assign && p.at().Kind != token.Semi {
		p.addNode(id, p.parseType(), "type")
	}
	if p.at().Kind == token.Assign {
		p.consume()
		p.addNode(id, p.parseExprBP(0), "value")
	}
	p.skipIf(id, token.Semi)
	return id
}

var varBindingStartKinds = []token.Kind{token.LParen, token.LBrace, token.Ident}

func (p *Parser) parseVarBinding() ast.NodeID {
	for {
		switch p.at().Kind {
		case token.LParen:
			return p.parseDestructureTuple()
		case token.LBrace:
			return p.parseDestructureStruct()
		case token.Ident:
			return p.parseBinding()
		default:
			id := p.newNode(ast.Binding)
			if p.expectOneOf(id, varBindingStartKinds, "a variable binding") {
				continue
			}
			return id
		}
	}
}

func (p *Parser) parseBinding() ast.NodeID {
	id := p.newNode(ast.Binding)
	if p.at().Kind == token.Star {
		p.addToken(id, "ref", p.consume())
		if p.at().Kind == token.KwMut {
			p.addToken(id, "mut", p.consume())
		}
	}
	p.addToken(id, "name", p.expectConsume(id, token.Ident))
	return id
}

func (p *Parser) parseDestructureTuple() ast.NodeID {
	id := p.newNode(ast.DestructureTuple)
	if !p.skipIf(id, token.LParen) {
		return id
	}
	p.addNode(id, p.parseBinding(), "")
	for p.at().Kind == token.Comma {
		p.consume()
		if p.at().Kind == token.RParen {
			break
		}
		p.addNode(id, p.parseBinding(), "")
	}
	p.skipIf(id, token.RParen)
	return id
}

func (p *Parser) parseDestructureStruct() ast.NodeID {
	id := p.newNode(ast.DestructureStruct)
	if !p.skipIf(id, token.LBrace) {
		return id
	}
	p.addNode(id, p.parseAliasedBinding(), "")
	for p.at().Kind == token.Comma {
		p.consume()
		if p.at().Kind == token.RBrace {
			break
		}
		p.addNode(id, p.parseAliasedBinding(), "")
	}
	p.skipIf(id, token.RBrace)
	return id
}

func (p *Parser) parseAliasedBinding() ast.NodeID {
	id := p.newNode(ast.AliasedBinding)
	p.addNode(id, p.parseBinding(), "binding")
	if p.at().Kind == token.Assign {
		p.consume()
		p.addToken(id, "alias", p.expectConsume(id, token.Ident))
	}
	return id
}
