package emotion

import (
	"regexp"
	"strings"
	"sync"
)

// Key names an emotional theme a chapter can require.
type Key string

const (
	Curiosity   Key = "curiosity"
	Anger       Key = "anger"
	Dominance   Key = "dominance"
	Realisation Key = "realisation"
	Peace       Key = "peace"
	Balance     Key = "balance"
)

var synonyms = map[Key][]string{
	Curiosity:   {"curiosity", "curious", "seek", "seeking", "discover", "investigate", "explore", "inquiry", "inquisitive"},
	Anger:       {"anger", "angry", "fury", "furious", "rage", "wrath", "vengeance", "rageful", "resentment"},
	Dominance:   {"dominance", "dominate", "power", "control", "rule", "conquer"},
	Realisation: {"realisation", "realization", "realize", "realise", "understand", "awaken", "awareness"},
	Peace:       {"peace", "peaceful", "calm", "accept", "balance", "serenity", "tranquil"},
	Balance:     {"balance", "balanced", "harmony"},
}

// Known lists the keys with a synonym table, in a stable order.
var Known = []Key{Curiosity, Anger, Dominance, Realisation, Peace, Balance}

// Synonyms returns the words that satisfy k. A key without a table
// entry is matched literally.
func Synonyms(k Key) []string {
	if syns, ok := synonyms[k]; ok {
		return syns
	}
	return []string{strings.ToLower(string(k))}
}

var patterns sync.Map // word -> *regexp.Regexp

func wordPattern(word string) *regexp.Regexp {
	if re, ok := patterns.Load(word); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	patterns.Store(word, re)
	return re
}

// Match checks that every required key has at least one synonym present in
// text as a whole word. It stops at the first unsatisfied key and returns the
// keys matched up to that point.
func Match(required []Key, text string) (bool, []Key) {
	tl := strings.ToLower(text)
	matched := make([]Key, 0, len(required))
	for _, k := range required {
		found := false
		for _, s := range Synonyms(k) {
			if wordPattern(s).MatchString(tl) {
				found = true
				break
			}
		}
		if !found {
			return false, matched
		}
		matched = append(matched, k)
	}
	return true, matched
}

// Strings converts keys for display and prompts.
func Strings(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
