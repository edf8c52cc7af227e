package ai

import (
	"strconv"
	"strings"
)

// BuildTrialPrompt asks for a passage and a closing riddle for one chapter.
func BuildTrialPrompt(chapter int, theme string) string {
	var b strings.Builder

	b.WriteString("Trial ")
	b.WriteString(strconv.Itoa(chapter))
	b.WriteString(".\n")

	b.WriteString("Theme (hidden from seeker): ")
	b.WriteString(theme)
	b.WriteString(".\n\n")

	b.WriteString("Return ONLY valid JSON, in this exact format:\n")
	b.WriteString("{\n")
	b.WriteString(`  "story": "4-6 sentences of dark immersive narrative. No emotion names. Written as if the seeker stands inside the scene.",`)
	b.WriteString("\n")
	b.WriteString(`  "riddle": "One short, cryptic question ending with '?' that tests the seeker's state of mind, not their knowledge."`)
	b.WriteString("\n}\n")

	return b.String()
}

type JudgeInput struct {
	Chapter  int
	Theme    string
	Required []string
	Known    []string
	Story    string
	Riddle   string
	Answer   string
}

// BuildJudgePrompt asks for a semantic verdict on the seeker's answer.
func BuildJudgePrompt(in JudgeInput) string {
	var b strings.Builder

	b.WriteString("Task: decide if the seeker's answer expresses the required emotions or mindsets.\n")
	b.WriteString("Judge the emotional intent, not just the keywords. Be strict but fair.\n\n")

	b.WriteString("chapter: ")
	b.WriteString(strconv.Itoa(in.Chapter))
	b.WriteString("\n")

	b.WriteString("theme: ")
	b.WriteString(in.Theme)
	b.WriteString("\n")

	b.WriteString("required_keys: ")
	b.WriteString(strings.Join(in.Required, ", "))
	b.WriteString("\n")

	if in.Story != "" {
		b.WriteString("story: \"\"\"")
		b.WriteString(in.Story)
		b.WriteString("\"\"\"\n")
	}

	if in.Riddle != "" {
		b.WriteString("riddle: \"")
		b.WriteString(in.Riddle)
		b.WriteString("\"\n")
	}

	b.WriteString("answer: \"")
	b.WriteString(in.Answer)
	b.WriteString("\"\n\n")

	b.WriteString("Return ONLY a JSON object with these fields:\n")
	b.WriteString(`- "accept": true or false` + "\n")
	b.WriteString(`- "matched": array of base keys the answer expresses (use only: ` + strings.Join(in.Known, ", ") + ")\n")
	b.WriteString(`- "explanation": one short sentence on why you accepted or rejected` + "\n")
	b.WriteString(`- "reaction_line": one line Vardarth speaks, max 20 words; cold approval if accepted, scorn if rejected` + "\n")

	return b.String()
}
