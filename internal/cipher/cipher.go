// Package cipher implements the substitution ciphers: a case-preserving shift over the 26-letter
// ASCII alphabets and a raw codepoint shift. Both are pure functions of their inputs.
package cipher

import (
	"fmt"
	"unicode/utf8"
)

// alphabetSize is the number of letters in each of the lowercase and uppercase ASCII alphabets.
const alphabetSize = 26

// The codepoint shift moves through the Unicode scalar values, which are every codepoint from 0 to
// U+10FFFF except the surrogates U+D800 to U+DFFF.
const (
	surrogateMin   = 0xD800
	surrogateCount = 0x800
	scalarCount    = utf8.MaxRune + 1 - surrogateCount
)

// Mode selects whether the key is applied forwards or backwards.
type Mode int

const (
	Encrypt Mode = iota
	Decrypt
)

// ParseMode resolves a mode name. "enc" and "dec" are recognized; anything else yields [Encrypt]
// with ok set to false, so callers can warn about the fallback.
func ParseMode(s string) (m Mode, ok bool) {
	switch s {
	case "enc":
		return Encrypt, true
	case "dec":
		return Decrypt, true
	}
	return Encrypt, false
}

func (m Mode) String() string {
	switch m {
	case Encrypt:
		return "enc"
	case Decrypt:
		return "dec"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Algorithm selects the substitution applied to each character.
type Algorithm int

const (
	// ShiftAlphabetic rotates a–z and A–Z within their own alphabet and leaves every other
	// character alone.
	ShiftAlphabetic Algorithm = iota
	// ShiftCodepoint adds the shift to every codepoint. The surrogate range is skipped and shifts
	// past U+10FFFF wrap around to U+0000, so every result is a valid scalar value.
	ShiftCodepoint
)

// ParseAlgorithm resolves an algorithm name. "shift" and "unicode" are recognized; anything else
// yields [ShiftAlphabetic] with ok set to false.
func ParseAlgorithm(s string) (a Algorithm, ok bool) {
	switch s {
	case "shift":
		return ShiftAlphabetic, true
	case "unicode":
		return ShiftCodepoint, true
	}
	return ShiftAlphabetic, false
}

func (a Algorithm) String() string {
	switch a {
	case ShiftAlphabetic:
		return "shift"
	case ShiftCodepoint:
		return "unicode"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Transform applies alg to every character of text, shifting by key when encrypting and by -key
// when decrypting. The result has exactly one character per input character, and decrypting it
// with the same key returns text exactly. Invalid UTF-8 in text is read as U+FFFD.
func Transform(text string, key int, mode Mode, alg Algorithm) string {
	return string(ShiftRunes([]rune(text), key, mode, alg))
}

// ShiftRunes is [Transform] over runes. It returns a new slice and never modifies in. Decrypting
// the output with the same key, mode flipped, always returns the original runes. Runes that are not
// scalar values (negative, surrogate or above [utf8.MaxRune]) are left unchanged by the codepoint
// shift.
func ShiftRunes(in []rune, key int, mode Mode, alg Algorithm) []rune {
	shift := shifter(key, mode, alg)
	out := make([]rune, len(in))
	for i, r := range in {
		out[i] = shift(r)
	}
	return out
}

func shifter(key int, mode Mode, alg Algorithm) func(rune) rune {
	if alg == ShiftCodepoint {
		k := key % scalarCount
		if mode == Decrypt {
			k = -k
		}
		return func(r rune) rune {
			if !utf8.ValidRune(r) {
				return r
			}
			i := (scalarIndex(r) + k) % scalarCount
			if i < 0 {
				i += scalarCount
			}
			return scalarAt(i)
		}
	}

	// Reduce first so negation cannot overflow.
	k := key % alphabetSize
	if mode == Decrypt {
		k = -k
	}
	return func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z':
			return rotate(r, 'a', k)
		case 'A' <= r && r <= 'Z':
			return rotate(r, 'A', k)
		default:
			return r
		}
	}
}

func rotate(r, base rune, shift int) rune {
	offset := int(r - base)
	offset = ((offset+shift)%alphabetSize + alphabetSize) % alphabetSize
	return base + rune(offset)
}

// scalarIndex numbers the scalar values consecutively, closing the surrogate gap.
func scalarIndex(r rune) int {
	if r >= surrogateMin+surrogateCount {
		return int(r) - surrogateCount
	}
	return int(r)
}

func scalarAt(i int) rune {
	if i >= surrogateMin {
		return rune(i + surrogateCount)
	}
	return rune(i)
}
