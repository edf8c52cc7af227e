package analytics

import (
	"context"
	"net/http"
	"strings"

	"secret-keeper-backend/internal/logger"
)

type ctxKey string

const envelopeKey ctxKey = "analytics_envelope"

// Event names. Raw answers are never part of an event.
const (
	TrialStarted   = "trial_started"
	HintRequested  = "hint_requested"
	ChapterPassed  = "chapter_passed"
	AnswerRejected = "answer_rejected"
	GateUnlocked   = "gate_unlocked"
)

// Envelope is what we attach to every event.
type Envelope struct {
	Platform     string
	AppVersion   string
	DeviceLocale string
	RequestID    string
}

// FromRequest extracts event envelope fields from request.
// Backend-trustable fields only.
func FromRequest(r *http.Request) Envelope {
	platform := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Platform")))
	if platform != "ios" && platform != "android" && platform != "web" {
		platform = "unknown"
	}

	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	return Envelope{
		Platform:     platform,
		AppVersion:   strings.TrimSpace(r.Header.Get("X-App-Version")),
		DeviceLocale: locale,
		RequestID:    strings.TrimSpace(r.Header.Get("X-Request-Id")),
	}
}

func WithEnvelope(ctx context.Context, env Envelope) context.Context {
	return context.WithValue(ctx, envelopeKey, env)
}

func EnvelopeFromContext(ctx context.Context) (Envelope, bool) {
	env, ok := ctx.Value(envelopeKey).(Envelope)
	return env, ok
}

// Recorder writes trial events to the structured log.
type Recorder struct {
	log *logger.Logger
}

func NewRecorder(log *logger.Logger) *Recorder {
	return &Recorder{log: log.With("component", "analytics")}
}

func (r *Recorder) Record(ctx context.Context, sessionID, event string, chapter int, props map[string]any) {
	if event == "" {
		return
	}
	kv := []interface{}{"event", event, "session_id", sessionID, "chapter", chapter}
	if env, ok := EnvelopeFromContext(ctx); ok {
		kv = append(kv, "platform", env.Platform)
		if env.AppVersion != "" {
			kv = append(kv, "app_version", env.AppVersion)
		}
		if env.DeviceLocale != "" {
			kv = append(kv, "device_locale", env.DeviceLocale)
		}
		if env.RequestID != "" {
			kv = append(kv, "request_id", env.RequestID)
		}
	}
	for k, v := range props {
		kv = append(kv, k, v)
	}
	r.log.Info("trial event", kv...)
}
