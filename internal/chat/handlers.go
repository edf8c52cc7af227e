package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"secret-keeper-backend/internal/analytics"
	"secret-keeper-backend/internal/engine"
	"secret-keeper-backend/internal/logger"
	"secret-keeper-backend/internal/session"
)

// Trials is the part of the engine the HTTP layer needs.
type Trials interface {
	Session(id string) (session.State, bool)
	Step(ctx context.Context, sessionID, message string) engine.Reply
	Answer(ctx context.Context, sessionID, message string) engine.Reply
}

var storyWords = map[string]bool{"begin": true, "start": true, "story": true}

// wantsStep routes new sessions and explicit begin/start/story messages to
// Step; everything else is an answer.
func wantsStep(st session.State, found bool, msg string) bool {
	if !found || st.Chapter == 0 {
		return true
	}
	return storyWords[strings.ToLower(msg)]
}

func ChatHandler(trials Trials, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
			return
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var body struct {
			SessionID string `json:"session_id"`
			Message   string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sid := strings.TrimSpace(body.SessionID)
		msg := strings.TrimSpace(body.Message)
		if sid == "" {
			http.Error(w, "session_id required", http.StatusBadRequest)
			return
		}

		ctx := analytics.WithEnvelope(r.Context(), analytics.FromRequest(r))

		var resp engine.Reply
		st, found := trials.Session(sid)
		if wantsStep(st, found, msg) {
			resp = trials.Step(ctx, sid, msg)
		} else {
			resp = trials.Answer(ctx, sid, msg)
		}

		log.Debug("chat handled",
			"session_id", sid,
			"chapter", resp.Chapter,
			"unlocked", resp.Unlocked,
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("encode chat reply", "error", err)
		}
	}
}

func RootHandler(appName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"service": appName,
		})
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
