package engine

import (
	"context"
	"strings"

	"secret-keeper-backend/internal/analytics"
	"secret-keeper-backend/internal/emotion"
	"secret-keeper-backend/internal/logger"
	"secret-keeper-backend/internal/narrator"
	"secret-keeper-backend/internal/persona"
	"secret-keeper-backend/internal/session"
	"secret-keeper-backend/internal/trials"
)

const (
	transitionBanner = "\n\n-- The Gate opens to the next trial --\n\n"
	secretPrefix     = "\n\nThe holocron yields its truth: "
	sharpenIntent    = "Sharpen your intent. Let your words carry the theme."
	judgeAcceptLine  = "The Gate senses your intent."
	alreadyOpenLine  = "The holocron is already open to you. Nothing more is asked."
)

// Reply is what Step and Answer hand back to the caller.
type Reply struct {
	SessionID   string `json:"session_id"`
	Reply       string `json:"reply"`
	Question    string `json:"question"`
	Chapter     int    `json:"chapter"`
	Unlocked    bool   `json:"unlocked"`
	Fragment    string `json:"fragment,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// Narrator produces trial text and judges answers. Implementations must not
// fail; they degrade to local content instead.
type Narrator interface {
	GenerateTrial(ctx context.Context, chapter int) narrator.Trial
	JudgeAnswer(ctx context.Context, req narrator.JudgeRequest) narrator.Verdict
}

type Engine struct {
	store    session.Store
	narrator Narrator
	log      *logger.Logger
	events   *analytics.Recorder
}

func New(store session.Store, n Narrator, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		store:    store,
		narrator: n,
		log:      log,
		events:   analytics.NewRecorder(log),
	}
}

// Session returns a snapshot of the stored state for id.
func (e *Engine) Session(id string) (session.State, bool) {
	return e.store.Get(id)
}

// Step enters the current chapter, starting the first trial for a new
// session. Every call narrates the chapter afresh.
func (e *Engine) Step(ctx context.Context, sessionID, message string) Reply {
	st, _ := e.store.Get(sessionID)
	if st.Unlocked {
		return e.unlockedReply(sessionID, st)
	}

	if st.Chapter == 0 {
		st.Chapter = trials.FirstChapter
		e.events.Record(ctx, sessionID, analytics.TrialStarted, st.Chapter, nil)
	}

	tr := e.narrator.GenerateTrial(ctx, st.Chapter)
	st.LastStory = tr.Story
	st.LastQuestion = tr.Riddle
	e.store.Set(sessionID, st)
	e.log.Debug("trial narrated", "session_id", sessionID, "chapter", st.Chapter, "source", tr.Source)

	return Reply{
		SessionID: sessionID,
		Reply:     tr.Story,
		Question:  tr.Riddle,
		Chapter:   st.Chapter,
		Unlocked:  false,
	}
}

// Answer judges message against the current chapter and advances the
// session when it is accepted.
func (e *Engine) Answer(ctx context.Context, sessionID, message string) Reply {
	st, ok := e.store.Get(sessionID)
	if !ok || st.Chapter == 0 {
		st.Chapter = trials.FirstChapter
	}
	if st.Unlocked {
		return e.unlockedReply(sessionID, st)
	}

	chapter := st.Chapter
	def, known := trials.Lookup(chapter)
	if !known {
		e.log.Warn("answer for unknown chapter", "session_id", sessionID, "chapter", chapter)
		return Reply{
			SessionID: sessionID,
			Reply:     persona.Format(trials.GenericStory, persona.Neutral),
			Question:  trials.GenericQuestion,
			Chapter:   chapter,
		}
	}

	lower := strings.ToLower(strings.TrimSpace(message))
	if strings.Contains(lower, "hint") || strings.Contains(lower, "help") {
		e.events.Record(ctx, sessionID, analytics.HintRequested, chapter, nil)
		return Reply{
			SessionID: sessionID,
			Reply:     persona.Format(trials.Hint(chapter), persona.Neutral),
			Question:  questionOrDefault(st.LastQuestion),
			Chapter:   chapter,
			Unlocked:  false,
		}
	}

	var praise, explanation string
	semantic := false
	if ok, matched := emotion.Match(def.Required, message); ok {
		praise = "You are direct, and the Gate recognizes it. (" + strings.Join(emotion.Strings(matched), ", ") + ")"
	} else {
		v := e.narrator.JudgeAnswer(ctx, narrator.JudgeRequest{
			Chapter:  chapter,
			Theme:    def.Theme,
			Required: def.Required,
			Story:    st.LastStory,
			Riddle:   st.LastQuestion,
			Answer:   message,
		})
		if !v.Accept {
			return e.reject(ctx, sessionID, st, v)
		}
		praise = v.ReactionLine
		if praise == "" {
			praise = judgeAcceptLine
		}
		explanation = v.Explanation
		semantic = true
	}

	frag := trials.Fragment(chapter)
	if !st.HasFragment(frag) {
		st.Fragments = append(st.Fragments, frag)
	}
	line := persona.Format(praise, persona.Praise)
	e.events.Record(ctx, sessionID, analytics.ChapterPassed, chapter, map[string]any{
		"fragment": frag,
		"semantic": semantic,
	})

	if chapter >= trials.FinalChapter {
		st.Unlocked = true
		e.store.Set(sessionID, st)
		e.events.Record(ctx, sessionID, analytics.GateUnlocked, chapter, map[string]any{
			"fragments": len(st.Fragments),
		})
		return Reply{
			SessionID:   sessionID,
			Reply:       line + secretPrefix + trials.FinalSecret,
			Question:    "",
			Chapter:     chapter,
			Unlocked:    true,
			Fragment:    frag,
			Explanation: explanation,
		}
	}

	st.Chapter = chapter + 1
	st.Unlocked = false
	tr := e.narrator.GenerateTrial(ctx, st.Chapter)
	st.LastStory = tr.Story
	st.LastQuestion = tr.Riddle
	e.store.Set(sessionID, st)
	e.log.Debug("trial narrated", "session_id", sessionID, "chapter", st.Chapter, "source", tr.Source)

	return Reply{
		SessionID:   sessionID,
		Reply:       line + transitionBanner + tr.Story,
		Question:    tr.Riddle,
		Chapter:     st.Chapter,
		Unlocked:    false,
		Fragment:    frag,
		Explanation: explanation,
	}
}

func (e *Engine) reject(ctx context.Context, sessionID string, st session.State, v narrator.Verdict) Reply {
	st.Unlocked = false
	e.store.Set(sessionID, st)
	e.events.Record(ctx, sessionID, analytics.AnswerRejected, st.Chapter, map[string]any{
		"judge_source": string(v.Source),
	})

	tail := v.Explanation
	if tail == "" {
		tail = sharpenIntent
	}
	return Reply{
		SessionID:   sessionID,
		Reply:       persona.Format(trials.FailLine(st.Chapter), persona.Mock) + "\n\n" + tail,
		Question:    questionOrDefault(st.LastQuestion),
		Chapter:     st.Chapter,
		Unlocked:    false,
		Explanation: v.Explanation,
	}
}

// unlockedReply answers any further message on a finished session without
// touching its state.
func (e *Engine) unlockedReply(sessionID string, st session.State) Reply {
	return Reply{
		SessionID: sessionID,
		Reply:     persona.Format(alreadyOpenLine, persona.Neutral) + secretPrefix + trials.FinalSecret,
		Question:  "",
		Chapter:   st.Chapter,
		Unlocked:  true,
	}
}

func questionOrDefault(q string) string {
	if q == "" {
		return trials.GenericQuestion
	}
	return q
}
