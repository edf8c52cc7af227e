package persona

import "strings"

type Mood int

const (
	Neutral Mood = iota
	Praise
	Mock
)

const (
	Name   = "Vardarth"
	Breath = "*[mechanical breath]*"
)

// Format gives a line Vardarth's voice. A breath tag already present in
// line is not repeated.
func Format(line string, mood Mood) string {
	line = strings.TrimSpace(strings.ReplaceAll(line, Breath, ""))
	switch mood {
	case Praise:
		return Breath + " " + line + " - " + Name + "."
	case Mock:
		line = strings.TrimRight(line, ".!? ")
		return line + ". " + Breath + " You are weak."
	default:
		return Breath + " " + line
	}
}
