package enum

import "strings"

// readableConsonants excludes hard-to-pronounce letters (q, w, j).
var readableConsonants = []byte("bcdfghklmnprstvz")

// readableClusters are natural English consonant clusters.
var readableClusters = []string{
	"br", "bl", "cr", "cl", "dr", "fr", "gr",
	"pr", "pl", "tr", "st", "sl",
}

var readableVowels = []byte("aeiou")
var readableWeakVowels = []byte("y")
var readableDesignChars = []byte("xz")

var readableBannedSeqs = []string{
	"vv", "rr", "xx", "qq", "yy",
	"vx", "xv", "xr", "rx",
	"rq", "qr",
}

var readableGoodEndings = []byte("nrsl")

// isReadableValid applies the pronounceability/brandability filter from
// the readable-5 generator: exactly 5 letters, at least two vowel-weight
// points (y counts half), no banned sequence, no trailing y, must end in
// n/r/s/l, no adjacent repeated letters, and a design char (x/z) may not
// be followed by a consonant.
func isReadableValid(name string) bool {
	if len(name) != 5 {
		return false
	}

	var vowelScore float32
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case containsByte(readableVowels, ch):
			vowelScore += 1.0
		case containsByte(readableWeakVowels, ch):
			vowelScore += 0.5
		}
	}
	if vowelScore < 2.0 {
		return false
	}

	for _, bad := range readableBannedSeqs {
		if strings.Contains(name, bad) {
			return false
		}
	}

	if name[len(name)-1] == 'y' {
		return false
	}
	if !containsByte(readableGoodEndings, name[len(name)-1]) {
		return false
	}

	for i := 0; i < len(name)-1; i++ {
		if name[i] == name[i+1] {
			return false
		}
	}

	for i := 0; i < len(name)-1; i++ {
		if containsByte(readableDesignChars, name[i]) && containsByte(readableConsonants, name[i+1]) {
			return false
		}
	}

	return true
}

func containsByte(set []byte, b byte) bool {
	for _, s := range set {
		if s == b {
			return true
		}
	}
	return false
}

// generateReadable5 produces the readable-5 supplemental set: CVCVC,
// cluster+VCV, CVCyC (weak vowel), and CVdVC (design char) patterns,
// filtered through isReadableValid. The filter rejects every cluster+VCV
// name (it ends in a vowel) and every CVCyC name (vowel score 1.5), so
// only CVCVC and CVdVC names reach the output. A 6-letter CVCVCV pattern
// would always fail the 5-letter check and is not generated.
func generateReadable5() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if !isReadableValid(name) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, c1 := range readableConsonants {
		for _, v1 := range readableVowels {
			for _, c2 := range readableConsonants {
				for _, v2 := range readableVowels {
					for _, c3 := range readableConsonants {
						add(string([]byte{c1, v1, c2, v2, c3}))
					}
				}
			}
		}
	}

	for _, cluster := range readableClusters {
		for _, v1 := range readableVowels {
			for _, c2 := range readableConsonants {
				for _, v2 := range readableVowels {
					add(cluster + string([]byte{v1, c2, v2}))
				}
			}
		}
	}

	for _, c1 := range readableConsonants {
		for _, v1 := range readableVowels {
			for _, c2 := range readableConsonants {
				for _, y := range readableWeakVowels {
					for _, c3 := range readableConsonants {
						add(string([]byte{c1, v1, c2, y, c3}))
					}
				}
			}
		}
	}

	for _, c1 := range readableConsonants {
		for _, v1 := range readableVowels {
			for _, d := range readableDesignChars {
				for _, v2 := range readableVowels {
					for _, c2 := range readableConsonants {
						add(string([]byte{c1, v1, d, v2, c2}))
					}
				}
			}
		}
	}

	return out
}
