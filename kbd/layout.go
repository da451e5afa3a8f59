// Package kbd reconciles barcode-scanner input typed under the wrong
// keyboard layout. A scanner emits raw keystrokes; the OS interprets them
// with whatever layout is active, so a label authored in English scans as
// Thai gibberish (and vice versa). The fix is a positional substitution
// cipher between the QWERTY and Kedmanee alphabets.
package kbd

// Key rows, positionally aligned. Latin[i] and Thai[i] are the same
// physical key.
var layoutRows = [][2]string{
	{"1234567890-=", "ๅ/-ภถุึคตจขช"},
	{`qwertyuiop[]\`, "ๆไำพะัีรนยบลฃ"},
	{"asdfghjkl;'", "ฟหกดเ้่าสวง"},
	{"zxcvbnm,./", "ผปแอิืทมใฝ"},
	{"!@#$%^&*()_+", "+๑๒๓๔ู฿๕๖๗๘๙"},
	{"QWERTYUIOP{}|", `๐"ฎฑธํ๊ณฯญฐ,ฅ`},
	{`ASDFGHJKL:"`, "ฤฆฏโฌ็๋ษศซ."},
	{"ZXCVBNM<>?", "()ฉฮฺ์?ฒฬฦ"},
}

var (
	latinToThai = map[rune]rune{}
	thaiToLatin = map[rune]rune{}
)

func init() {
	for _, row := range layoutRows {
		latin := []rune(row[0])
		thai := []rune(row[1])
		if len(latin) != len(thai) {
			panic("kbd: misaligned layout row " + row[0])
		}
		for i := range latin {
			latinToThai[latin[i]] = thai[i]
			thaiToLatin[thai[i]] = latin[i]
		}
	}
}

// Variants holds the three candidate spellings of one scanned token.
type Variants struct {
	AsTyped     string `json:"asTyped"`
	LatinToThai string `json:"latinToThai"`
	ThaiToLatin string `json:"thaiToLatin"`
}

// Normalize computes both layout transforms unconditionally. Runes outside
// the alphabets pass through unchanged, so this can never fail.
func Normalize(token string) Variants {
	return Variants{
		AsTyped:     token,
		LatinToThai: substitute(token, latinToThai),
		ThaiToLatin: substitute(token, thaiToLatin),
	}
}

// All returns the candidates in lookup order: as typed first.
func (v Variants) All() []string {
	return []string{v.AsTyped, v.LatinToThai, v.ThaiToLatin}
}

func substitute(s string, table map[rune]rune) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if m, ok := table[r]; ok {
			out = append(out, m)
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
