package pattern

import "testing"

func TestCodeRoundTrip(t *testing.T) {
	for c := Code(0); c < NumCodes; c++ {
		p := c.Decode()
		if got := p.Encode(); got != c {
			t.Errorf("Decode(%d).Encode() = %d, want %d (pattern %s)", c, got, c, p)
		}
	}
}

func TestCodeBijective(t *testing.T) {
	seen := make(map[Pattern]Code, NumCodes)
	for c := Code(0); c < NumCodes; c++ {
		p := c.Decode()
		if prev, ok := seen[p]; ok {
			t.Fatalf("codes %d and %d both decode to pattern %s", prev, c, p)
		}
		seen[p] = c
	}
	if len(seen) != NumCodes {
		t.Fatalf("got %d distinct patterns, want %d", len(seen), NumCodes)
	}
}

func TestWinCodeIsFiveExacts(t *testing.T) {
	p := WinCode.Decode()
	if !p.IsWin() {
		t.Errorf("WinCode decodes to %s, want all-exact", p)
	}
}

func TestEncodeFeedbackMatchesEncode(t *testing.T) {
	pairs := [][2]string{{"CRANE", "CRATE"}, {"SALET", "GRADE"}, {"ABBEY", "BABES"}}
	for _, pr := range pairs {
		g := mustWord(t, pr[0])
		a := mustWord(t, pr[1])
		if EncodeFeedback(g, a) != Feedback(g, a).Encode() {
			t.Errorf("EncodeFeedback(%s,%s) != Feedback(%s,%s).Encode()", pr[0], pr[1], pr[0], pr[1])
		}
	}
}
