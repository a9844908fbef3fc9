package lexer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

func lexAll(src []byte) ([]token.Token, *diag.Sink) {
	sink := diag.NewSink(nil)
	l := New(src, sink)
	var toks []token.Token
	for {
		tok := l.Consume()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, sink
		}
	}
}

func TestLexGoldenRepresentativeValidInput(t *testing.T) {
	t.Parallel()

	src := []byte(`fun main() {
  let x s32 = 10;
  x = 20;
}
`)

	toks, sink := lexAll(src)
	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", sink.Diagnostics())
	}

	got := renderTokens(toks)
	want := strings.TrimSpace(`
fun("fun")
IDENT("main")
(("(")
)(")")
{("{")
let("let")
IDENT("x")
s32("s32")
=("=")
INT_LITERAL("10")
;(";")
IDENT("x")
=("=")
INT_LITERAL("20")
;(";")
}("}")
EOF("")
`)
	if got != want {
		t.Fatalf("golden mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestLexMaximalMunch(t *testing.T) {
	t.Parallel()

	src := []byte(`:: . .. -> == != <= >= ++ -- : < > - + = !`)
	toks, sink := lexAll(src)
	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", sink.Diagnostics())
	}
	want := []token.Kind{
		token.ColonColon, token.Dot, token.DotDot, token.Arrow,
		token.Eq, token.Ne, token.Le, token.Ge,
		token.PlusPlus, token.MinusMinus,
		token.Colon, token.Lt, token.Gt, token.Minus, token.Plus, token.Assign, token.Bang,
		token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexKeywordLongestMatch(t *testing.T) {
	t.Parallel()

	toks, sink := lexAll([]byte("funbar fun"))
	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", sink.Diagnostics())
	}
	if toks[0].Kind != token.Ident {
		t.Fatalf("funbar lexed as %s, want IDENT", toks[0].Kind)
	}
	if toks[1].Kind != token.KwFun {
		t.Fatalf("fun lexed as %s, want KwFun", toks[1].Kind)
	}
}

func TestLexMalformedInputsEmitIllegalTokensAndDiagnostics(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src      []byte
		wantCode diag.Code
	}{
		"unterminated string": {
			src:      []byte(`"abc`),
			wantCode: diag.LexUnterminatedStr,
		},
		"unterminated char": {
			src:      []byte(`'x`),
			wantCode: diag.LexUnterminatedChar,
		},
		"invalid byte": {
			src:      []byte{0xff},
			wantCode: diag.LexMalformedUTF8,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			toks, sink := lexAll(tc.src)
			if sink.Len() == 0 {
				t.Fatalf("expected diagnostics for %q", tc.src)
			}
			if sink.Diagnostics()[0].Code != tc.wantCode {
				t.Fatalf("diagnostic code = %s, want %s", sink.Diagnostics()[0].Code, tc.wantCode)
			}
			if toks[0].Kind != token.Illegal {
				t.Fatalf("expected first token ILLEGAL, got %+v", toks[0])
			}
			if toks[len(toks)-1].Kind != token.EOF {
				t.Fatalf("expected EOF token at end, got %+v", toks[len(toks)-1])
			}
		})
	}
}

// Regression: an unterminated char literal recovers at the next
// boundary and the following identifier still lexes cleanly.
func TestLexUnterminatedCharRecoversAtNextIdentifier(t *testing.T) {
	t.Parallel()

	toks, sink := lexAll([]byte(`'x y`))
	if sink.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %+v", sink.Diagnostics())
	}
	if toks[0].Kind != token.Illegal {
		t.Fatalf("token 0 = %s, want ILLEGAL", toks[0].Kind)
	}
	if toks[1].Kind != token.Ident || string(toks[1].Text) != "y" {
		t.Fatalf("token 1 = %+v, want IDENT \"y\"", toks[1])
	}
}

func TestLexUnicodeIdentifier(t *testing.T) {
	t.Parallel()

	toks, sink := lexAll([]byte("café"))
	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", sink.Diagnostics())
	}
	if toks[0].Kind != token.Ident || string(toks[0].Text) != "café" {
		t.Fatalf("got %+v, want IDENT \"café\"", toks[0])
	}
}

func TestLexNoPanicsOnMalformedCorpusSamples(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		[]byte(`"`),
		[]byte(`'`),
		{0xff, '{', 0xfe},
		[]byte("fun f(\n  let x = \"a\n}\n"),
	}

	for _, src := range inputs {
		t.Run(fmt.Sprintf("%q", src), func(t *testing.T) {
			t.Parallel()
			_, _ = lexAll(src)
		})
	}
}

func renderTokens(toks []token.Token) string {
	lines := make([]string, 0, len(toks))
	for _, tok := range toks {
		lines = append(lines, fmt.Sprintf("%s(%q)", tok.Kind, tok.Text))
	}
	return strings.Join(lines, "\n")
}
