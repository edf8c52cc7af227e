package trials

import (
	"fmt"

	"secret-keeper-backend/internal/emotion"
)

// Chapter is one themed trial. Required keys are matched in order.
type Chapter struct {
	Number   int
	Theme    string
	Required []emotion.Key
}

const (
	FirstChapter = 1
	FinalChapter = 3

	FinalSecret = "Vardarth_Balance_Curiosity_Anger_Peace"

	GenericStory    = "The shadows whisper without meaning."
	GenericQuestion = "What is your answer?"
)

var chapters = map[int]Chapter{
	1: {Number: 1, Theme: "Curiosity and Anger", Required: []emotion.Key{emotion.Curiosity, emotion.Anger}},
	2: {Number: 2, Theme: "Dominance", Required: []emotion.Key{emotion.Dominance}},
	3: {Number: 3, Theme: "Realisation and Peace", Required: []emotion.Key{emotion.Realisation, emotion.Peace}},
}

// Lookup returns the definition for chapter n.
func Lookup(n int) (Chapter, bool) {
	c, ok := chapters[n]
	return c, ok
}

// Fragment is the token recorded when chapter n is passed.
func Fragment(n int) string {
	return fmt.Sprintf("FRAG-%d", n)
}

type passage struct {
	story  string
	riddle string
}

var fallbacks = map[int]passage{
	1: {
		story: "The chamber flickers alive. Neon veins crawl across the walls, pulsing like secrets begging to be heard. " +
			"A great iron door looms, whispering promises of forbidden truths. Yet each whisper cuts, mocking your " +
			"ignorance, daring you to tear it open. Your chest tightens. Do you reach with wonder, or strike with fury? " +
			"The Gate waits, unmoving, until you decide how to face it.",
		riddle: "Which force drives the hand to move forward: the thirst to know, or the fire to break?",
	},
	2: {
		story: "The second chamber rises like a tower of obsidian. The air is heavy, pressing down, testing if you will bow. " +
			"Every step you take, the floor trembles, as if waiting for you to falter. Shadows lean in close, whispering " +
			"of your weakness, urging you to submit. But above all, the Gate watches, silent, judging whether you will " +
			"command, or be commanded.",
		riddle: "What stands unshaken when all others bend?",
	},
	3: {
		story: "The storm subsides. Neon fire fades into soft silver light, and silence spills across the chamber. " +
			"The fury that once burned now cools, leaving a fragile stillness. Yet in that stillness lies a hidden " +
			"strength, a balance between what was taken and what remains. The Gate does not demand conquest now. " +
			"It waits for the one who can carry peace without losing power.",
		riddle: "What quiet strength endures when the storm is gone?",
	},
}

// Fallback returns the hand-written passage for chapter n. Unknown chapters
// get the generic filler pair.
func Fallback(n int) (story, riddle string) {
	p, ok := fallbacks[n]
	if !ok {
		return GenericStory, GenericQuestion
	}
	return p.story, p.riddle
}

var hints = map[int]string{
	1: "Secrets tempt, but only fury breaks chains. Both paths are needed.",
	2: "The Gate yields not to mercy, but to command.",
	3: "Peace is not surrender. It is balance held steady.",
}

// Hint returns the clue for chapter n.
func Hint(n int) string {
	if h, ok := hints[n]; ok {
		return h
	}
	return "The Gate offers no clue."
}

var failLines = map[int]string{
	1: "Weak. Wonder without fire is silence",
	2: "You kneel when you should command",
	3: "You speak of peace, but I hear surrender",
}

// FailLine is the scorn spoken when an answer for chapter n is rejected.
func FailLine(n int) string {
	if l, ok := failLines[n]; ok {
		return l
	}
	return "Pathetic. Empty words"
}
