// Package lexer tokenizes a source byte buffer into the token stream
// the parser consumes.
package lexer

import (
	"unicode/utf8"

	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/source"
	"github.com/kpumuk/iotac-frontend/internal/token"
	iotaunicode "github.com/kpumuk/iotac-frontend/internal/unicode"
)

// Lexer exposes a single-token lookahead over src: Peek returns the
// current token without consuming it, Consume advances past it. It
// never buffers beyond that one lookahead token.
type Lexer struct {
	src  []byte
	i    int
	sink *diag.Sink

	cur    token.Token
	curSet bool
}

// New creates a Lexer over src, reporting lexical diagnostics to sink.
func New(src []byte, sink *diag.Sink) *Lexer {
	return &Lexer{src: src, sink: sink}
}

// Peek returns the current token without consuming it.
func (l *Lexer) Peek() token.Token {
	if !l.curSet {
		l.cur = l.scan()
		l.curSet = true
	}
	return l.cur
}

// Consume returns the current token and advances past it.
func (l *Lexer) Consume() token.Token {
	t := l.Peek()
	l.curSet = false
	return t
}

func (l *Lexer) eof() bool { return l.i >= len(l.src) }

func (l *Lexer) peekByte(delta int) byte {
	j := l.i + delta
	if j < 0 || j >= len(l.src) {
		return 0
	}
	return l.src[j]
}

// scan skips whitespace, then recognizes exactly one token (comments
// are returned as tokens; the parser treats them as skippable).
func (l *Lexer) scan() token.Token {
	l.skipWhitespace()

	if l.eof() {
		return token.Token{Kind: token.EOF, Offset: source.Offset(l.i)}
	}

	start := l.i
	b := l.src[l.i]

	switch {
	case b == '/' && l.peekByte(1) == '/':
		return l.scanLineComment(start)
	case isASCIIIdentStart(b):
		return l.scanIdentASCII(start)
	case b >= utf8.RuneSelf:
		return l.scanRuneStart(start)
	case isDigit(b):
		return l.scanNumber(start)
	case b == '\'':
		return l.scanChar(start)
	case b == '"':
		return l.scanString(start)
	default:
		return l.scanPunct(start)
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		switch l.src[l.i] {
		case ' ', '\t', '\n', '\r':
			l.i++
		default:
			return
		}
	}
}

func (l *Lexer) scanLineComment(start int) token.Token {
	l.i += 2
	for !l.eof() && l.src[l.i] != '\n' {
		l.i++
	}
	return l.tok(token.Comment, start)
}

// scanRuneStart handles a non-ASCII byte: either a valid multi-byte
// identifier rune (id_start) or a malformed/unsupported sequence.
func (l *Lexer) scanRuneStart(start int) token.Token {
	r, size := utf8.DecodeRune(l.src[l.i:])
	if r == utf8.RuneError && size <= 1 {
		l.i++
		return l.illegal(start, diag.LexMalformedUTF8, "malformed UTF-8 sequence")
	}
	if !iotaunicode.IDStart(r) {
		l.i += size
		return l.illegal(start, diag.LexIllegalByte, "unexpected character")
	}
	l.i += size
	for !l.eof() {
		if l.src[l.i] < utf8.RuneSelf {
			if !isASCIIIdentPart(l.src[l.i]) {
				break
			}
			l.i++
			continue
		}
		r2, size2 := utf8.DecodeRune(l.src[l.i:])
		if (r2 == utf8.RuneError && size2 <= 1) || !iotaunicode.IDContinue(r2) {
			break
		}
		l.i += size2
	}
	return l.identOrKeyword(start)
}

func (l *Lexer) scanIdentASCII(start int) token.Token {
	l.i++
	for !l.eof() {
		b := l.src[l.i]
		if b < utf8.RuneSelf {
			if !isASCIIIdentPart(b) {
				break
			}
			l.i++
			continue
		}
		r, size := utf8.DecodeRune(l.src[l.i:])
		if (r == utf8.RuneError && size <= 1) || !iotaunicode.IDContinue(r) {
			break
		}
		l.i += size
	}
	return l.identOrKeyword(start)
}

func (l *Lexer) identOrKeyword(start int) token.Token {
	text := l.src[start:l.i]
	if kw, ok := token.Keywords[string(text)]; ok {
		return l.tok(kw, start)
	}
	return l.tok(token.Ident, start)
}

func (l *Lexer) scanNumber(start int) token.Token {
	for !l.eof() && isDigit(l.src[l.i]) {
		l.i++
	}
	t := l.tok(token.IntLiteral, start)
	var v uint64
	for _, b := range t.Text {
		v = v*10 + uint64(b-'0')
	}
	t.IntValue = v
	return t
}

// scanChar requires matching single quotes around exactly one source
// unit. An unterminated literal yields ILLEGAL; scanning resumes at the
// next whitespace or punctuation rather than consuming the rest of the
// line.
func (l *Lexer) scanChar(start int) token.Token {
	l.i++ // opening quote
	if l.eof() {
		return l.illegal(start, diag.LexUnterminatedChar, "unterminated character literal")
	}
	if l.src[l.i] == '\\' {
		l.i++
		if !l.eof() {
			l.i++
		}
	} else {
		_, size := utf8.DecodeRune(l.src[l.i:])
		l.i += size
	}
	if l.eof() || l.src[l.i] != '\'' {
		for !l.eof() && !isBoundary(l.src[l.i]) {
			l.i++
		}
		return l.illegal(start, diag.LexUnterminatedChar, "unterminated character literal")
	}
	l.i++ // closing quote
	return l.tok(token.CharLiteral, start)
}

// scanString requires matching double quotes; escape handling
// recognizes a backslash-escaped next byte so the closing quote is
// never mistaken on an escaped quote character.
func (l *Lexer) scanString(start int) token.Token {
	l.i++ // opening quote
	for !l.eof() {
		switch l.src[l.i] {
		case '"':
			l.i++
			return l.tok(token.StringLiteral, start)
		case '\\':
			l.i++
			if !l.eof() {
				l.i++
			}
		case '\n':
			return l.illegal(start, diag.LexUnterminatedStr, "unterminated string literal")
		default:
			l.i++
		}
	}
	return l.illegal(start, diag.LexUnterminatedStr, "unterminated string literal")
}

func isBoundary(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', ';', ',', ')', '}', ']', '(', '{', '[':
		return true
	default:
		return false
	}
}

// scanPunct applies the lexer's maximal-munch punctuation table.
func (l *Lexer) scanPunct(start int) token.Token {
	b := l.src[l.i]
	two := func(k token.Kind) token.Token {
		l.i += 2
		return l.tok(k, start)
	}
	one := func(k token.Kind) token.Token {
		l.i++
		return l.tok(k, start)
	}

	switch b {
	case '{':
		return one(token.LBrace)
	case '}':
		return one(token.RBrace)
	case '(':
		return one(token.LParen)
	case ')':
		return one(token.RParen)
	case '[':
		return one(token.LBracket)
	case ']':
		return one(token.RBracket)
	case ',':
		return one(token.Comma)
	case ';':
		return one(token.Semi)
	case ':':
		if l.peekByte(1) == ':' {
			return two(token.ColonColon)
		}
		return one(token.Colon)
	case '.':
		if l.peekByte(1) == '.' {
			return two(token.DotDot)
		}
		return one(token.Dot)
	case '-':
		if l.peekByte(1) == '>' {
			return two(token.Arrow)
		}
		if l.peekByte(1) == '-' {
			return two(token.MinusMinus)
		}
		return one(token.Minus)
	case '=':
		if l.peekByte(1) == '=' {
			return two(token.Eq)
		}
		return one(token.Assign)
	case '!':
		if l.peekByte(1) == '=' {
			return two(token.Ne)
		}
		return one(token.Bang)
	case '<':
		if l.peekByte(1) == '=' {
			return two(token.Le)
		}
		return one(token.Lt)
	case '>':
		if l.peekByte(1) == '=' {
			return two(token.Ge)
		}
		return one(token.Gt)
	case '+':
		if l.peekByte(1) == '+' {
			return two(token.PlusPlus)
		}
		return one(token.Plus)
	case '*':
		return one(token.Star)
	case '/':
		return one(token.Slash)
	case '%':
		return one(token.Percent)
	case '&':
		return one(token.Amp)
	case '|':
		return one(token.Pipe)
	case '?':
		return one(token.Question)
	default:
		l.i++
		return l.illegal(start, diag.LexIllegalByte, "unexpected character")
	}
}

func (l *Lexer) tok(kind token.Kind, start int) token.Token {
	return token.Token{Kind: kind, Offset: source.Offset(start), Text: l.src[start:l.i]}
}

func (l *Lexer) illegal(start int, code diag.Code, msg string) token.Token {
	t := l.tok(token.Illegal, start)
	if l.sink != nil {
		l.sink.Addf(t.Span(), code, msg)
	}
	return t
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isASCIIIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isASCIIIdentPart(b byte) bool {
	return isASCIIIdentStart(b) || isDigit(b)
}
