// Command gen documents how internal/unicode's range table is derived
// from UnicodeData.txt (https://www.unicode.org/Public/UCD/latest/ucd/UnicodeData.txt):
// each line's third semicolon-delimited field is the General Category
// abbreviation, and consecutive code points sharing a category collapse
// into one range entry the same way the original's ucgen.c does.
//
// It is documentation, not a build step: the runtime table is checked in
// and has no file dependency. main is empty: the command takes no
// flags, reads no UnicodeData.txt and writes no table, so category.go
// is maintained by hand.
package main

func main() {}
