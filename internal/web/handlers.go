package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/app"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       *slog.Logger
	size      int
	heartbeat time.Duration
}

func (h *handlers) renderGame(sess app.Session, errMsg string) []byte {
	b, err := renderTemplate(h.tpl.game, "", gameData{ID: sess.ID, View: sess.View(), Error: errMsg})
	if err != nil {
		h.log.Error("render game fragment", "session", sess.ID, "error", err)
	}
	return b
}

func (h *handlers) writeHTML(w http.ResponseWriter, status int, b []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	b, err := renderTemplate(h.tpl.index, "base", nil)
	if err != nil {
		h.log.Error("render index", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	h.writeHTML(w, http.StatusOK, b)
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.CreateSession(h.size)
	if err != nil {
		h.log.Error("create session", "error", err)
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+sess.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	b, err := renderTemplate(h.tpl.page, "base", gameData{ID: sess.ID, View: sess.View()})
	if err != nil {
		h.log.Error("render page", "session", sess.ID, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	h.writeHTML(w, http.StatusOK, b)
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, "cell", h.svc.PlayCell)
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, "move", h.svc.JumpTo)
}

func (h *handlers) sort(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.ToggleSort(chi.URLParam(r, "id"))
	h.respond(w, r, sess, err)
}

// intent parses the integer form field and applies fn with it.
func (h *handlers) intent(w http.ResponseWriter, r *http.Request, field string, fn func(string, int) (*app.Session, error)) {
	id := chi.URLParam(r, "id")
	n, err := strconv.Atoi(r.FormValue(field))
	if err != nil {
		sess, ok := h.svc.Get(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.writeHTML(w, http.StatusBadRequest, h.renderGame(*sess, "Invalid "+field))
		return
	}
	sess, err := fn(id, n)
	h.respond(w, r, sess, err)
}

func (h *handlers) respond(w http.ResponseWriter, r *http.Request, sess *app.Session, err error) {
	if errors.Is(err, app.ErrNotFound) || sess == nil {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, domain.ErrInvalidIndex):
			msg = "No such cell"
		case errors.Is(err, domain.ErrInvalidMoveNumber):
			msg = "No such move"
		default:
			msg = "Invalid request"
		}
		h.writeHTML(w, http.StatusBadRequest, h.renderGame(*sess, msg))
		return
	}
	h.writeHTML(w, http.StatusOK, h.renderGame(*sess, ""))
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// Non-EventSource requests only get the headers.
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "game", b)
			flusher.Flush()
		}
	}
}

// writeEvent emits one SSE event; every payload line gets its own data field.
func writeEvent(w io.Writer, event string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range bytes.Split(payload, []byte("\n")) {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
