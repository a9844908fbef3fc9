// Package token defines the lexer's token kinds and the Token value type.
package token

import "github.com/kpumuk/iotac-frontend/internal/source"

// Kind identifies the syntactic category of a token.
type Kind uint16

// Kind values. ILLEGAL and EOF are sentinels; EmptyString is the
// synthetic token the parser inserts as the inferred root of a
// leading-'::' scoped identifier.
const (
	Illegal Kind = iota
	EOF
	EmptyString

	Ident
	IntLiteral
	CharLiteral
	StringLiteral
	Comment

	// Keywords.
	KwFun
	KwLet
	KwMut
	KwIf
	KwElse
	KwWhile
	KwReturn
	KwCase
	KwDefer
	KwStruct
	KwEnum
	KwUnion
	KwError
	KwImport
	KwAnd
	KwOr
	KwTrue
	KwFalse
	KwNil

	// Builtin type keywords.
	KwU8
	KwS8
	KwU16
	KwS16
	KwU32
	KwS32
	KwU64
	KwS64
	KwF32
	KwF64
	KwUnit
	KwString
	KwBool

	// Punctuation (maximal munch).
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	Comma
	Semi
	Colon
	ColonColon
	Dot
	DotDot
	Arrow
	Assign
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Bang
	Question
	PlusPlus
	MinusMinus
)

var names = map[Kind]string{
	Illegal:       "ILLEGAL",
	EOF:           "EOF",
	EmptyString:   "EMPTY_STRING",
	Ident:         "IDENT",
	IntLiteral:    "INT_LITERAL",
	CharLiteral:   "CHAR_LITERAL",
	StringLiteral: "STRING_LITERAL",
	Comment:       "COMMENT",
	KwFun:         "fun",
	KwLet:         "let",
	KwMut:         "mut",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwReturn:      "return",
	KwCase:        "case",
	KwDefer:       "defer",
	KwStruct:      "struct",
	KwEnum:        "enum",
	KwUnion:       "union",
	KwError:       "error",
	KwImport:      "import",
	KwAnd:         "and",
	KwOr:          "or",
	KwTrue:        "true",
	KwFalse:       "false",
	KwNil:         "nil",
	KwU8:          "u8",
	KwS8:          "s8",
	KwU16:         "u16",
	KwS16:         "s16",
	KwU32:         "u32",
	KwS32:         "s32",
	KwU64:         "u64",
	KwS64:         "s64",
	KwF32:         "f32",
	KwF64:         "f64",
	KwUnit:        "unit",
	KwString:      "string",
	KwBool:        "bool",
	LBrace:        "{",
	RBrace:        "}",
	LParen:        "(",
	RParen:        ")",
	LBracket:      "[",
	RBracket:      "]",
	Comma:         ",",
	Semi:          ";",
	Colon:         ":",
	ColonColon:    "::",
	Dot:           ".",
	DotDot:        "..",
	Arrow:         "->",
	Assign:        "=",
	Eq:            "==",
	Ne:            "!=",
	Lt:            "<",
	Le:            "<=",
	Gt:            ">",
	Ge:            ">=",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Amp:           "&",
	Pipe:          "|",
	Bang:          "!",
	Question:      "?",
	PlusPlus:      "++",
	MinusMinus:    "--",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN_TOKEN_KIND"
}

// Keywords maps keyword spelling to its Kind, used by the lexer after
// accumulating an identifier (longest-match: "funbar" stays IDENT).
var Keywords = map[string]Kind{
	"fun":    KwFun,
	"let":    KwLet,
	"mut":    KwMut,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"return": KwReturn,
	"case":   KwCase,
	"defer":  KwDefer,
	"struct": KwStruct,
	"enum":   KwEnum,
	"union":  KwUnion,
	"error":  KwError,
	"import": KwImport,
	"and":    KwAnd,
	"or":     KwOr,
	"true":   KwTrue,
	"false":  KwFalse,
	"nil":    KwNil,
	"u8":     KwU8,
	"s8":     KwS8,
	"u16":    KwU16,
	"s16":    KwS16,
	"u32":    KwU32,
	"s32":    KwS32,
	"u64":    KwU64,
	"s64":    KwS64,
	"f32":    KwF32,
	"f64":    KwF64,
	"unit":   KwUnit,
	"string": KwString,
	"bool":   KwBool,
}

// IsBuiltinType reports whether k names a builtin scalar type keyword.
func IsBuiltinType(k Kind) bool {
	switch k {
	case KwU8, KwS8, KwU16, KwS16, KwU32, KwS32, KwU64, KwS64, KwF32, KwF64, KwUnit, KwString, KwBool:
		return true
	default:
		return false
	}
}

// Token is a lexed token. Tokens are values, freely copied; Text is a
// view into the source buffer and does not own it.
type Token struct {
	Kind     Kind
	Offset   source.Offset
	Text     []byte
	IntValue uint64
}

// Span returns the token's source span.
func (t Token) Span() source.Span {
	return source.Span{Start: t.Offset, End: t.Offset + source.Offset(len(t.Text))}
}
