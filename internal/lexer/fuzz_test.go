package lexer

import (
	"testing"

	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

func FuzzLex(f *testing.F) {
	addCommonSeeds(f)

	f.Fuzz(func(t *testing.T, src []byte) {
		t.Helper()

		// Keep the target responsive; fuzzing should explore shape, not
		// spend cycles on huge blobs.
		if len(src) > 512*1024 {
			t.Skip()
		}

		sink := diag.NewSink(nil)
		l := New(src, sink)

		prevEnd := -1
		sawEOF := false
		for i := 0; i < len(src)+2; i++ {
			tok := l.Consume()
			sp := tok.Span()
			if !sp.IsValid() {
				t.Fatalf("token %d has invalid span %s", i, sp)
			}
			if int(sp.End) > len(src) {
				t.Fatalf("token %d span %s out of bounds (len=%d)", i, sp, len(src))
			}
			if prevEnd > int(sp.Start) {
				t.Fatalf("token spans out of order: prevEnd=%d curStart=%d", prevEnd, sp.Start)
			}
			prevEnd = int(sp.End)

			if tok.Kind == token.EOF {
				sawEOF = true
				break
			}
		}
		if !sawEOF {
			t.Fatal("lexer never reached EOF")
		}
	})
}

func addCommonSeeds(f *testing.F) {
	f.Helper()

	for _, s := range [][]byte{
		nil,
		[]byte(""),
		[]byte("fun main() { let x s32 = 10; x = 20; }\n"),
		[]byte("let x = x;\n"),
		[]byte(`struct P { x s32, y s32 } let p = P{x=1,y=2}; let a = p.x;`),
		[]byte("'x"), // unterminated char
		[]byte(`"abc`), // unterminated string
		{0xff, 0xfe, 0xfd}, // invalid UTF-8 bytes
		[]byte("::foo::bar"),
		[]byte("a.b[1:2].c()"),
	} {
		f.Add(s)
	}
}
