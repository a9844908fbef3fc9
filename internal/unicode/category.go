// Package unicode provides a binary-searchable General Category range
// table and the id_start/id_continue predicates the lexer uses to
// recognize identifiers.
//
// The table below is a hand-curated subset of the data that
// gen/gen.go documents how to derive in full from UnicodeData.txt:
// it covers ASCII, Latin-1 Supplement, Latin Extended-A, combining
// diacritics, Greek, Cyrillic, common CJK ideograph and kana blocks, and
// the General_Category values the lexer actually branches on. A full
// table is a mechanical extension of the same shape.
package unicode

// Category is a Unicode General Category, per
// https://www.unicode.org/versions/Unicode16.0.0/core-spec/chapter-4/#G134153
type Category int

// Category values used by the lexer's identifier predicates.
const (
	Invalid Category = iota
	Lu               // uppercase letter
	Ll               // lowercase letter
	Lt               // titlecase letter
	Lm               // modifier letter
	Lo               // other letter
	Mn               // nonspacing mark
	Mc               // spacing combining mark
	Nd               // decimal number
	Nl               // letter number
	Pc               // connector punctuation
	Other            // any category not distinguished above
)

type rangeEntry struct {
	start, end rune
	cat        Category
}

// table is sorted by start and non-overlapping, enabling binary search.
var table = []rangeEntry{
	{'0', '9', Nd},
	{'A', 'Z', Lu},
	{'_', '_', Pc},
	{'a', 'z', Ll},
	{0x00AA, 0x00AA, Lo}, // FEMININE ORDINAL INDICATOR
	{0x00B5, 0x00B5, Ll}, // MICRO SIGN
	{0x00BA, 0x00BA, Lo}, // MASCULINE ORDINAL INDICATOR
	{0x00C0, 0x00D6, Lu},
	{0x00D8, 0x00DE, Lu},
	{0x00DF, 0x00F6, Ll},
	{0x00F8, 0x00FF, Ll},
	{0x0100, 0x0137, Lu}, // Latin Extended-A (alternating case, approximated)
	{0x0138, 0x0138, Ll},
	{0x0139, 0x0148, Lu},
	{0x0149, 0x0149, Ll},
	{0x014A, 0x0177, Lu},
	{0x0178, 0x0178, Lu},
	{0x0179, 0x017F, Ll},
	{0x0300, 0x036F, Mn}, // Combining Diacritical Marks
	{0x0370, 0x0373, Lu},
	{0x0374, 0x0374, Lo},
	{0x0376, 0x0377, Lu},
	{0x037A, 0x037A, Lm},
	{0x037B, 0x037D, Ll},
	{0x0386, 0x0386, Lu},
	{0x0388, 0x038A, Lu},
	{0x038C, 0x038C, Lu},
	{0x038E, 0x03A1, Lu},
	{0x03A3, 0x03AB, Lu},
	{0x03AC, 0x03CE, Ll},
	{0x0400, 0x042F, Lu}, // Cyrillic uppercase
	{0x0430, 0x045F, Ll}, // Cyrillic lowercase
	{0x0483, 0x0487, Mn},
	{0x0591, 0x05BD, Mn}, // Hebrew points
	{0x05D0, 0x05EA, Lo}, // Hebrew letters
	{0x0610, 0x061A, Mn}, // Arabic marks
	{0x0621, 0x064A, Lo}, // Arabic letters
	{0x064B, 0x065F, Mn}, // Arabic combining marks
	{0x0660, 0x0669, Nd}, // Arabic-Indic digits
	{0x0670, 0x0670, Mn},
	{0x1E00, 0x1EFF, Lu}, // Latin Extended Additional (approximated)
	{0x2160, 0x2182, Nl}, // Roman numerals
	{0x3005, 0x3005, Lm}, // IDEOGRAPHIC ITERATION MARK
	{0x3031, 0x3035, Lm}, // Japanese iteration marks
	{0x3041, 0x3096, Lo}, // Hiragana
	{0x309D, 0x309E, Lm},
	{0x30A1, 0x30FA, Lo}, // Katakana
	{0x30FC, 0x30FE, Lm},
	{0x3105, 0x312D, Lo}, // Bopomofo
	{0x3400, 0x4DBF, Lo}, // CJK Unified Ideographs Extension A
	{0x4E00, 0x9FFF, Lo}, // CJK Unified Ideographs
	{0xAC00, 0xD7A3, Lo}, // Hangul Syllables
	{0xF900, 0xFAFF, Lo}, // CJK Compatibility Ideographs
	{0xFF10, 0xFF19, Nd}, // Fullwidth digits
	{0xFF21, 0xFF3A, Lu}, // Fullwidth Latin uppercase
	{0xFF41, 0xFF5A, Ll}, // Fullwidth Latin lowercase
}

// Lookup returns the General Category of r via binary search, or Invalid
// if r falls outside every recorded range (treated as "no letter/digit
// category", same as the original's GC_INVALID/"unassigned" fallback).
func Lookup(r rune) Category {
	lo, hi := 0, len(table)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		e := table[mid]
		switch {
		case r < e.start:
			hi = mid - 1
		case r > e.end:
			lo = mid + 1
		default:
			return e.cat
		}
	}
	return Invalid
}

// IDStart reports whether r may begin an identifier: General Categories
// Lu, Ll, Lt, Lm, Lo, Nl, plus '_'.
func IDStart(r rune) bool {
	switch Lookup(r) {
	case Lu, Ll, Lt, Lm, Lo, Nl:
		return true
	default:
		return r == '_'
	}
}

// IDContinue reports whether r may continue an identifier: IDStart's
// categories plus Mn, Mc, Nd, Pc.
func IDContinue(r rune) bool {
	switch Lookup(r) {
	case Mn, Mc, Nd, Pc:
		return true
	default:
		return IDStart(r)
	}
}
