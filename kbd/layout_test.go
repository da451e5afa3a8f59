package kbd

import "testing"

func TestRowsAligned(t *testing.T) {
	for _, row := range layoutRows {
		if len([]rune(row[0])) != len([]rune(row[1])) {
			t.Fatalf("row %q / %q not aligned", row[0], row[1])
		}
	}
}

func TestNormalizeThaiScanOfEnglishLabel(t *testing.T) {
	// "catan" typed while the Thai layout is active
	v := Normalize("แฟะฟื")
	if v.ThaiToLatin != "catan" {
		t.Fatalf("ThaiToLatin = %q, want %q", v.ThaiToLatin, "catan")
	}
	if v.AsTyped != "แฟะฟื" {
		t.Fatalf("AsTyped changed: %q", v.AsTyped)
	}
}

func TestNormalizeLatinScanOfThaiLabel(t *testing.T) {
	// Thai word typed while the English layout is active
	v := Normalize("gkd")
	if v.LatinToThai != "เาก" {
		t.Fatalf("LatinToThai = %q, want %q", v.LatinToThai, "เาก")
	}
}

func TestRoundTrip(t *testing.T) {
	// Runes present in both alphabets survive a there-and-back transform.
	for _, in := range []string{"catan", "UNO", "splendor", "qwertyuiop"} {
		thai := Normalize(in).LatinToThai
		back := Normalize(thai).ThaiToLatin
		if back != in {
			t.Fatalf("round trip %q -> %q -> %q", in, thai, back)
		}
	}
}

func TestUnmappedRunesPassThrough(t *testing.T) {
	cases := []string{"007", " ", "カタン", "catan 2026"}
	for _, in := range cases {
		v := Normalize(in)
		if v.AsTyped != in {
			t.Fatalf("AsTyped mangled %q", in)
		}
		// digits map between layouts, but runes outside both alphabets
		// must always come back identical
		for _, r := range in {
			if _, lok := latinToThai[r]; lok {
				continue
			}
			if _, tok := thaiToLatin[r]; tok {
				continue
			}
			for _, out := range v.All() {
				if len([]rune(out)) != len([]rune(in)) {
					t.Fatalf("length changed for %q: %q", in, out)
				}
			}
		}
	}
}

func TestAllOrder(t *testing.T) {
	v := Normalize("x")
	all := v.All()
	if len(all) != 3 || all[0] != v.AsTyped || all[1] != v.LatinToThai || all[2] != v.ThaiToLatin {
		t.Fatalf("unexpected candidate order: %v", all)
	}
}
