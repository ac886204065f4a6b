package pattern

// Code is a Pattern encoded as a base-3 integer in [0, NumCodes), used as
// an array index into per-guess bucket tables. Encoding: code = sum over
// i of symbol_i * 3^i.
type Code int

// NumCodes is the number of distinct patterns: 3^Length.
const NumCodes = 243

// Encode packs p into its canonical Code.
func (p Pattern) Encode() Code {
	var c Code
	mul := Code(1)
	for i := 0; i < Length; i++ {
		c += Code(p[i]) * mul
		mul *= 3
	}
	return c
}

// Decode unpacks a Code back into a Pattern. Decode(Encode(p)) == p for
// every valid pattern.
func (c Code) Decode() Pattern {
	var p Pattern
	for i := 0; i < Length; i++ {
		p[i] = Symbol(c % 3)
		c /= 3
	}
	return p
}

// EncodeFeedback computes Feedback(guess, answer) and encodes it directly,
// skipping the intermediate Pattern value on the hot path.
func EncodeFeedback(guess, answer Word) Code {
	var consumed [Length]bool
	var codes [Length]Symbol

	for i := 0; i < Length; i++ {
		if guess[i] == answer[i] {
			codes[i] = Exact
			consumed[i] = true
		}
	}

	for i := 0; i < Length; i++ {
		if codes[i] == Exact {
			continue
		}
		for j := 0; j < Length; j++ {
			if !consumed[j] && answer[j] == guess[i] {
				codes[i] = Present
				consumed[j] = true
				break
			}
		}
	}

	var c Code
	mul := Code(1)
	for i := 0; i < Length; i++ {
		c += Code(codes[i]) * mul
		mul *= 3
	}
	return c
}

// WinCode is the Code for five Exacts, the unique winning pattern.
var WinCode = Pattern{Exact, Exact, Exact, Exact, Exact}.Encode()
