package narrator

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	"secret-keeper-backend/internal/ai"
	"secret-keeper-backend/internal/emotion"
	"secret-keeper-backend/internal/logger"
	"secret-keeper-backend/internal/trials"
)

// Source tells where a Trial or Verdict came from.
type Source string

const (
	SourceModel     Source = "model"
	SourceHeuristic Source = "heuristic"
	SourceFallback  Source = "fallback"
)

// Trial is the narration and riddle for one chapter. Reason and Raw are
// set when the model output was discarded.
type Trial struct {
	Story  string
	Riddle string
	Source Source
	Reason string
	Raw    string
}

type JudgeRequest struct {
	Chapter  int
	Theme    string
	Required []emotion.Key
	Story    string
	Riddle   string
	Answer   string
}

// Verdict is the outcome of judging one answer.
type Verdict struct {
	Accept       bool
	Matched      []emotion.Key
	Explanation  string
	ReactionLine string
	Source       Source
	Reason       string
	Raw          string
}

const (
	fallbackAccept = "Yes. The flame is true."
	fallbackReject = "Your words are... thin. Find sharper hunger."
)

// Narrator turns the generator's free text into trials and verdicts. It
// never fails: every bad call degrades to local content.
type Narrator struct {
	gen ai.Generator
	log *logger.Logger
}

func New(gen ai.Generator, log *logger.Logger) *Narrator {
	if log == nil {
		log = logger.Nop()
	}
	return &Narrator{gen: gen, log: log}
}

func (n *Narrator) GenerateTrial(ctx context.Context, chapter int) Trial {
	def, ok := trials.Lookup(chapter)
	if !ok {
		return n.fallbackTrial(chapter, "unknown chapter", "")
	}

	raw, err := n.gen.Generate(ctx, ai.BuildTrialPrompt(chapter, def.Theme))
	if err != nil {
		return n.fallbackTrial(chapter, "generate: "+err.Error(), "")
	}
	if strings.HasPrefix(strings.TrimSpace(raw), ai.ErrorPrefix) {
		return n.fallbackTrial(chapter, "error sentinel", raw)
	}

	text := ai.StripFences(raw)
	if strings.HasPrefix(text, "{") {
		if !gjson.Valid(text) {
			return n.fallbackTrial(chapter, "invalid json", raw)
		}
		doc := gjson.Parse(text)
		story := strings.TrimSpace(doc.Get("story").String())
		riddle := strings.TrimSpace(doc.Get("riddle").String())
		if story == "" || riddle == "" {
			return n.fallbackTrial(chapter, "missing story or riddle", raw)
		}
		return Trial{Story: story, Riddle: riddle, Source: SourceModel}
	}

	i := strings.LastIndex(text, "?")
	if i < 0 {
		return n.fallbackTrial(chapter, "no json and no question", raw)
	}
	story := strings.TrimSpace(text[:i]) + "?"
	riddle := strings.TrimSpace(text[i+1:])
	if riddle == "" {
		riddle = trials.GenericQuestion
	}
	return Trial{Story: story, Riddle: riddle, Source: SourceHeuristic}
}

func (n *Narrator) fallbackTrial(chapter int, reason, raw string) Trial {
	n.log.Warn("trial narration fell back to static text",
		"chapter", chapter,
		"reason", reason,
		"raw", truncate(raw, 200),
	)
	story, riddle := trials.Fallback(chapter)
	return Trial{Story: story, Riddle: riddle, Source: SourceFallback, Reason: reason, Raw: raw}
}

func (n *Narrator) JudgeAnswer(ctx context.Context, req JudgeRequest) Verdict {
	prompt := ai.BuildJudgePrompt(ai.JudgeInput{
		Chapter:  req.Chapter,
		Theme:    req.Theme,
		Required: emotion.Strings(req.Required),
		Known:    emotion.Strings(emotion.Known),
		Story:    req.Story,
		Riddle:   req.Riddle,
		Answer:   req.Answer,
	})

	raw, err := n.gen.Generate(ctx, prompt)
	if err != nil {
		return n.fallbackVerdict(req, "generate: "+err.Error(), "")
	}
	if strings.HasPrefix(strings.TrimSpace(raw), ai.ErrorPrefix) {
		return n.fallbackVerdict(req, "error sentinel", raw)
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first < 0 || last <= first {
		return n.fallbackVerdict(req, "no json object", raw)
	}
	js := raw[first : last+1]
	if !gjson.Valid(js) {
		return n.fallbackVerdict(req, "invalid json", raw)
	}
	doc := gjson.Parse(js)

	matched := []emotion.Key{}
	for _, m := range doc.Get("matched").Array() {
		if k := strings.ToLower(strings.TrimSpace(m.String())); k != "" {
			matched = append(matched, emotion.Key(k))
		}
	}

	reaction := strings.TrimSpace(doc.Get("reaction_line").String())
	if reaction == "" {
		reaction = strings.TrimSpace(doc.Get("vader_reaction").String())
	}

	return Verdict{
		Accept:       doc.Get("accept").Bool(),
		Matched:      matched,
		Explanation:  strings.TrimSpace(doc.Get("explanation").String()),
		ReactionLine: reaction,
		Source:       SourceModel,
		Raw:          raw,
	}
}

func (n *Narrator) fallbackVerdict(req JudgeRequest, reason, raw string) Verdict {
	n.log.Warn("answer judge fell back to keyword match",
		"chapter", req.Chapter,
		"reason", reason,
		"raw", truncate(raw, 200),
	)

	ok, matched := emotion.Match(req.Required, req.Answer)
	v := Verdict{
		Accept:       ok,
		Matched:      matched,
		ReactionLine: fallbackReject,
		Source:       SourceFallback,
		Reason:       reason,
		Raw:          raw,
	}
	if ok {
		v.ReactionLine = fallbackAccept
	}
	if len(matched) > 0 {
		v.Explanation = "Local keyword fallback matched: " + strings.Join(emotion.Strings(matched), ", ") + "."
	} else {
		v.Explanation = "Local keyword fallback found none of the required keys."
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
