package enum

import (
	"os"
	"sort"
	"strings"
)

// commonWords are curated, high-value 5-letter English words.
var commonWords = []string{
	"cloud", "cyber", "pixel", "media", "audio", "video", "solar", "smart",
	"power", "spark", "flash", "blaze", "boost", "prime", "nexus", "alpha",
	"omega", "ultra", "micro", "macro", "quick", "swift", "rapid", "turbo",
	"hyper", "super", "stack", "scale", "scope", "space", "pulse", "surge",
	"forge", "craft", "build", "maker", "works", "logic", "brain", "think",
	"learn", "teach", "coach", "guide", "laser", "radar",
	"money", "funds", "trade", "stock", "asset", "value", "worth", "trust",
	"brand", "sales", "deals", "price", "cheap", "store", "shops", "yield",
	"gains", "bonus", "prize", "award", "elite",
	"green", "fresh", "bloom", "flora", "fauna", "earth", "ocean", "river",
	"storm", "sunny", "clear", "light", "shine", "flame", "water", "stone",
	"pearl", "amber", "coral", "maple",
	"happy", "lucky", "magic", "dream", "vivid", "vital", "alive", "awake",
	"begin", "start", "first", "final", "quest", "reach", "climb", "speed",
	"agile", "focus", "sharp", "exact", "ideal",
	"delta", "sigma", "gamma", "theta", "metro", "urban", "civic", "royal",
	"noble", "grand", "titan", "giant", "brave", "solid", "sleek", "slick",
	"crisp", "clean",
	"apple", "grape", "lemon", "melon", "berry", "mango", "peach", "olive",
	"honey", "sugar", "spice", "cream", "toast", "juice", "blend",
	"tiger", "eagle", "shark", "whale", "raven", "panda", "koala", "otter",
	"horse", "zebra", "cobra", "viper",
	"orbit", "chaos", "order", "unity", "merge",
}

// techWords are tech-focused 5-letter words.
var techWords = []string{
	"bytes", "codes", "nodes", "ports", "hosts", "links", "route", "proxy",
	"cache", "query", "index", "parse", "async", "batch", "queue", "stack",
	"graph", "trees", "loops", "array", "types", "class", "trait", "state",
	"event", "hooks", "props", "store", "redux", "react", "swift", "rusty",
	"cargo", "crate", "build", "debug", "tests", "bench", "specs", "docs",
}

// brandableWords favor catchy, pronounceable double-letter/rhyming shapes.
var brandableWords = []string{
	"unify", "amply", "apply", "imply", "rally", "tally", "jolly", "folly",
	"truly", "newly", "daily", "early",
	"maker", "baker", "taker", "giver", "rider", "timer", "miner", "liner",
	"zippy", "happy", "peppy", "fuzzy", "dizzy", "fizzy", "jazzy",
	"buzzy", "muddy", "buddy", "bunny", "funny", "sunny",
	"bingo", "mango", "tango", "tempo", "turbo", "jumbo", "combo", "promo",
}

// prefixes2 are 2-letter prefixes combined with 3-letter roots.
var prefixes2 = []string{
	"go", "my", "we", "be", "do", "up", "on", "in", "to", "so",
	"ai", "io", "ex", "re", "co", "un", "de", "bi", "hi", "ok",
}

// prefixes1 are single-letter tech/brand-style prefixes (iPhone, eBay).
var prefixes1 = []string{
	"i", "e", "u", "x", "z", "o", "a", "n", "v", "k",
}

// roots4 are 4-letter roots combined with single-letter prefixes.
var roots4 = []string{
	"fish", "bird", "wolf", "bear", "lion", "duck", "deer", "frog", "hawk", "crab",
	"leaf", "tree", "rain", "snow", "wind", "wave", "moon", "star", "sand", "rock",
	"code", "data", "byte", "link", "node", "port", "sync", "ping", "scan", "hash",
	"blog", "wiki", "mail", "chat", "call", "text", "send", "load", "save", "edit",
	"file", "disk", "chip", "wire", "tech", "soft", "apps", "game", "play", "tune",
	"shop", "mart", "bank", "cash", "coin", "gold", "sale", "deal", "work", "task",
	"desk", "book", "note", "docs", "form", "plan", "goal", "team", "club", "crew",
	"life", "live", "love", "care", "mind", "soul", "body", "yoga", "chef", "food",
	"ride", "trip", "tour", "path", "road", "maps", "zone", "land", "city", "town",
	"jump", "rush", "dash", "bolt", "zoom", "spin", "flip", "turn", "push", "pull",
	"snap", "grab", "pick", "drop", "kick", "bump", "slam", "bang", "boom", "blast",
	"cool", "warm", "fast", "slim", "safe", "pure", "easy", "flex", "next", "peak",
	"mega", "uber", "mini", "maxi", "plus", "zero", "full", "free", "true", "real",
}

// suffixes are 2-letter suffixes combined with 3-letter roots.
var suffixes = []string{
	"ly", "fy", "io", "ai", "go", "up", "it", "er", "ed", "en",
	"oo", "ee", "ia", "us", "ix", "ox", "ax", "ex", "uz", "az",
}

// roots3 are 3-letter roots combined with the 2-letter prefixes/suffixes.
var roots3 = []string{
	"app", "bot", "box", "buy", "car", "dev", "doc", "eye", "fit", "fly",
	"get", "hub", "job", "key", "lab", "map", "net", "pay", "pet", "pod",
	"run", "set", "sky", "spy", "tag", "tap", "top", "try", "van", "vet",
	"web", "win", "wow", "zen", "zip", "zoo", "ace", "aid", "aim", "air",
	"art", "ask", "bay", "bed", "bet", "big", "bit", "biz", "bus", "cab",
	"cam", "cap", "cut", "day", "dig", "dip", "dog", "dot", "dry", "duo",
	"eat", "eco", "ego", "end", "era", "fan", "fax", "fee", "few", "fin",
	"fix", "flo", "fun", "gap", "gas", "gem", "geo", "gig", "gym", "hat",
	"hex", "hit", "hot", "ice", "ink", "ion", "jam", "jet", "joy", "kit",
	"law", "led", "let", "lid", "lip", "log", "lot", "low", "lux", "max",
	"med", "met", "mid", "min", "mix", "mob", "mod", "nav", "neo", "new",
	"nex", "now", "nut", "oak", "odd", "oil", "old", "one", "opt", "orb",
	"ore", "owl", "own", "pad", "pan", "pax", "pen", "pie", "pin", "pit",
	"pix", "ply", "pop", "pot", "pro", "pry", "pub", "rad", "ram", "raw",
	"ray", "red", "rep", "rev", "rig", "rim", "rip", "rob", "rod", "row",
	"rub", "rug", "sap", "sat", "saw", "sea", "sim", "sip", "sit", "six",
	"sol", "spa", "sub", "sum", "sun", "syn", "tab", "tan", "tax", "tea",
	"tek", "ten", "tex", "tie", "tin", "tip", "ton", "too", "tot", "tow",
	"toy", "tri", "tub", "tux", "two", "uno", "urb", "use", "vat", "via",
	"vid", "vim", "vip", "viz", "vol", "vox", "war", "wax", "way", "wed",
	"wet", "wig", "wit", "wiz", "wok", "won", "yak", "yam", "yes", "yet",
	"yin", "you", "zap", "zig", "zit",
}

// wordConsonantsCore is the reduced consonant set used by the combinatorial
// 5-letter pronounceable expansion (the same set as sixConsonants; it
// excludes j/k/q/v/x/y/z for pronounceability).
var wordConsonantsCore = []byte("bcdfghlmnprstw")
var wordVowelsCore = []byte("aeio")

// WordEnumerator walks a fixed, deduplicated, sorted list of 5-letter
// candidate words: curated lists, prefix/root/suffix combinations, a
// pronounceable CVCVC/VCVCV expansion, and the readable-5 supplemental
// generator, all folded together.
type WordEnumerator struct {
	words   []string
	current int
}

// NewWordEnumerator builds the enumerator from all built-in word sources.
func NewWordEnumerator() *WordEnumerator {
	return NewWordEnumeratorFromWords(buildDefaultWordList())
}

// NewWordEnumeratorFromWords builds the enumerator from a caller-supplied
// word list, filtering to 5-letter ASCII-lowercase entries and
// deduplicating.
func NewWordEnumeratorFromWords(words []string) *WordEnumerator {
	filtered := filterFiveLetterWords(words)
	return &WordEnumerator{words: filtered}
}

// NewWordEnumeratorFromFile loads one word per line from path.
func NewWordEnumeratorFromFile(path string) (*WordEnumerator, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		words = append(words, strings.ToLower(strings.TrimSpace(line)))
	}
	return NewWordEnumeratorFromWords(words), nil
}

func filterFiveLetterWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) != 5 || !isASCIILowercase(w) {
			continue
		}
		out = append(out, w)
	}
	sort.Strings(out)
	return dedupeSorted(out)
}

func isASCIILowercase(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func dedupeSorted(sorted []string) []string {
	out := sorted[:0:0]
	for i, w := range sorted {
		if i == 0 || w != sorted[i-1] {
			out = append(out, w)
		}
	}
	return out
}

func buildDefaultWordList() []string {
	var words []string
	words = append(words, commonWords...)
	words = append(words, techWords...)
	words = append(words, brandableWords...)

	for _, prefix := range prefixes2 {
		for _, root := range roots3 {
			if w := prefix + root; len(w) == 5 {
				words = append(words, w)
			}
		}
	}
	for _, root := range roots3 {
		for _, suffix := range suffixes {
			if w := root + suffix; len(w) == 5 {
				words = append(words, w)
			}
		}
	}
	for _, prefix := range prefixes1 {
		for _, root := range roots4 {
			if w := prefix + root; len(w) == 5 {
				words = append(words, w)
			}
		}
	}

	words = filterFiveLetterWords(words)
	words = append(words, generatePronounceable5()...)
	words = append(words, generateReadable5()...)

	return words
}

// generatePronounceable5 expands the CVCVC and VCVCV patterns over the
// reduced core consonant/vowel sets.
func generatePronounceable5() []string {
	var out []string
	for _, c1 := range wordConsonantsCore {
		for _, v1 := range wordVowelsCore {
			for _, c2 := range wordConsonantsCore {
				for _, v2 := range wordVowelsCore {
					for _, c3 := range wordConsonantsCore {
						out = append(out, string([]byte{c1, v1, c2, v2, c3}))
					}
				}
			}
		}
	}
	for _, v1 := range wordVowelsCore {
		for _, c1 := range wordConsonantsCore {
			for _, v2 := range wordVowelsCore {
				for _, c2 := range wordConsonantsCore {
					for _, v3 := range wordVowelsCore {
						out = append(out, string([]byte{v1, c1, v2, c2, v3}))
					}
				}
			}
		}
	}
	return out
}

func (g *WordEnumerator) Total() uint64        { return uint64(len(g.words)) }
func (g *WordEnumerator) CurrentIndex() uint64 { return uint64(g.current) }

func (g *WordEnumerator) SetIndex(i uint64) {
	if i > uint64(len(g.words)) {
		i = uint64(len(g.words))
	}
	g.current = int(i)
}

func (g *WordEnumerator) IsExhausted() bool {
	return g.current >= len(g.words)
}

func (g *WordEnumerator) NextBatch(n int) []string {
	end := g.current + n
	if end > len(g.words) {
		end = len(g.words)
	}
	batch := append([]string{}, g.words[g.current:end]...)
	g.current = end
	return batch
}

// ProgressPercent mirrors the reference generator's convenience accessor.
func (g *WordEnumerator) ProgressPercent() float64 {
	if len(g.words) == 0 {
		return 100.0
	}
	return float64(g.current) / float64(len(g.words)) * 100.0
}

var _ Enumerator = (*WordEnumerator)(nil)
