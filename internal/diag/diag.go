// Package diag is the sink for lexical, syntactic, and semantic
// diagnostics. One Sink is owned by a single translation unit; it owns
// no locks, since diagnostics are always appended in occurrence order
// by a single pass at a time.
package diag

import (
	"fmt"
	"strings"

	"github.com/kpumuk/iotac-frontend/internal/source"
)

// Code identifies a diagnostic category, grouped lexical/syntactic/
// semantic.
type Code string

// Lexical diagnostic codes.
const (
	LexIllegalByte       Code = "LEX_ILLEGAL_BYTE"
	LexUnterminatedChar  Code = "LEX_UNTERMINATED_CHAR"
	LexUnterminatedStr   Code = "LEX_UNTERMINATED_STRING"
	LexMalformedUTF8     Code = "LEX_MALFORMED_UTF8"
)

// Syntactic diagnostic codes.
const (
	ParseExpectedToken      Code = "PARSE_EXPECTED_TOKEN"
	ParseUnmatchedDelimiter Code = "PARSE_UNMATCHED_DELIMITER"
	ParseMissingStatement   Code = "PARSE_MISSING_STATEMENT"
	ParseSpuriousInput      Code = "PARSE_SPURIOUS_INPUT"
)

// Scope diagnostic codes.
const (
	ScopeUnresolved       Code = "SCOPE_UNRESOLVED"
	ScopeNotAScope        Code = "SCOPE_NOT_A_SCOPE"
	ScopeForwardReference Code = "SCOPE_FORWARD_REFERENCE"
	ScopeShadow           Code = "SCOPE_SHADOW"
	ScopeFunctionPiercing Code = "SCOPE_FUNCTION_PIERCING"
)

// Type diagnostic codes.
const (
	TypeNonTypeUsedAsType    Code = "TYPE_NON_TYPE_USED_AS_TYPE"
	TypeDuplicateAlternative Code = "TYPE_DUPLICATE_ALTERNATIVE"
	TypeNestedAnonymousUnion Code = "TYPE_NESTED_ANONYMOUS_UNION"
	TypeMismatch             Code = "TYPE_MISMATCH"
	TypeNonArithmeticOperand Code = "TYPE_NON_ARITHMETIC_OPERAND"
	TypeNonBooleanOperand    Code = "TYPE_NON_BOOLEAN_OPERAND"
	TypeFieldNotFound        Code = "TYPE_FIELD_NOT_FOUND"
	TypeExcessIndirection    Code = "TYPE_EXCESS_INDIRECTION"
	TypeBuiltinOutsideCall   Code = "TYPE_BUILTIN_OUTSIDE_CALL"
	TypeMissingHint          Code = "TYPE_MISSING_HINT"
	TypeInferredUnresolved   Code = "TYPE_INFERRED_UNRESOLVED"
	TypeUninferableVariable  Code = "TYPE_UNINFERABLE_VARIABLE"
	TypeVariadicUnsupported  Code = "TYPE_VARIADIC_UNSUPPORTED"
)

// Diagnostic is a single reported issue with source location.
type Diagnostic struct {
	Code    Code
	Message string
	Span    source.Span
}

// TypeNamer formats a type identifier for the {t} template substitution.
// internal/types implements this to avoid diag depending on types.
type TypeNamer interface {
	TypeName(id int) string
}

// Sink collects diagnostics for one translation unit in occurrence order.
type Sink struct {
	diags []Diagnostic
	namer TypeNamer
}

// NewSink creates an empty sink. namer may be nil until the type
// interner exists; {t} substitutions before that point render as
// "type#<id>".
func NewSink(namer TypeNamer) *Sink {
	return &Sink{namer: namer}
}

// SetTypeNamer attaches (or replaces) the {t} formatter once the type
// interner is available.
func (s *Sink) SetTypeNamer(namer TypeNamer) {
	s.namer = namer
}

// Addf appends a diagnostic at span, expanding {t}/{s}/{c}/{i} in
// template against args in order.
func (s *Sink) Addf(span source.Span, code Code, template string, args ...any) {
	s.diags = append(s.diags, Diagnostic{
		Code:    code,
		Message: s.expand(template, args),
		Span:    span,
	})
}

// Diagnostics returns all diagnostics reported so far, in occurrence order.
func (s *Sink) Diagnostics() []Diagnostic {
	if s == nil {
		return nil
	}
	return s.diags
}

// Len reports how many diagnostics have been recorded.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}
	return len(s.diags)
}

func (s *Sink) expand(template string, args []any) string {
	var b strings.Builder
	ai := 0
	next := func() any {
		if ai >= len(args) {
			return nil
		}
		v := args[ai]
		ai++
		return v
	}

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '{' || i+2 >= len(template) || template[i+2] != '}' {
			b.WriteByte(c)
			continue
		}
		verb := template[i+1]
		switch verb {
		case 't':
			b.WriteString(s.formatType(next()))
			i += 2
		case 's':
			b.WriteString(fmt.Sprintf("%s", next()))
			i += 2
		case 'c':
			b.WriteString(formatCString(next()))
			i += 2
		case 'i':
			b.WriteString(fmt.Sprintf("%d", next()))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (s *Sink) formatType(v any) string {
	id, ok := v.(int)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	if s.namer == nil {
		return fmt.Sprintf("type#%d", id)
	}
	return s.namer.TypeName(id)
}

func formatCString(v any) string {
	switch b := v.(type) {
	case []byte:
		return string(b)
	case string:
		return b
	default:
		return fmt.Sprintf("%v", v)
	}
}
