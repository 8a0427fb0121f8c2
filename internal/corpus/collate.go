// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

// ukrainianAlphabet lists the 33 Ukrainian letters, each capital followed by
// its lowercase form. A rune's weight is its position in this sequence.
const ukrainianAlphabet = "АаБбВвГгҐґДдЕеЄєЖжЗзИиІіЇїЙйКкЛлМмНнОоПпРрСсТтУуФфХхЦцЧчШшЩщЬьЮюЯя"

var (
	alphabetWeight = buildWeights()

	// otherWeight is shared by every rune outside the alphabet, so two
	// different non-alphabet runes compare equal.
	otherWeight = len([]rune(ukrainianAlphabet))
)

func buildWeights() map[rune]int {
	w := make(map[rune]int)
	for i, r := range []rune(ukrainianAlphabet) {
		w[r] = i
	}
	return w
}

// Weight returns the collation weight of r.
func Weight(r rune) int {
	if w, ok := alphabetWeight[r]; ok {
		return w
	}
	return otherWeight
}

// Key maps a name to its sequence of rune weights.
func Key(name string) []int {
	runes := []rune(name)
	key := make([]int, len(runes))
	for i, r := range runes {
		key[i] = Weight(r)
	}
	return key
}

// Less compares a and b weight by weight; a proper prefix sorts first.
// Names whose keys are equal (for example "a.docx" and "b.docx") are
// neither less nor greater than each other.
func Less(a, b string) bool {
	ka, kb := Key(a), Key(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if ka[i] != kb[i] {
			return ka[i] < kb[i]
		}
	}
	return len(ka) < len(kb)
}
