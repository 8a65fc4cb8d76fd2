package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jackzampolin/langextract/internal/form"
	"github.com/jackzampolin/langextract/internal/session"
	"github.com/jackzampolin/langextract/internal/svcctx"
)

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// wantsJSON reports whether the caller asked for a JSON response instead of
// the post/redirect/get flow used by the page.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// reject answers a request the handler could not read. API callers, those
// asking for JSON or sending a JSON body, get the error; browsers are sent
// back to the page with the form unchanged.
func reject(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if wantsJSON(r) || strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		writeError(w, status, msg)
		return
	}
	svcctx.LoggerFrom(r.Context()).Debug("rejected form request", "path", r.URL.Path, "status", status, "error", msg)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// requireSession returns the request's session or writes a 500.
func requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "session not initialized")
		return nil, false
	}
	return sess, true
}

// guardStatus maps a rejected form action to an HTTP status. Failures the
// form stored itself are not rejections and return 0.
func guardStatus(err error) int {
	switch {
	case errors.Is(err, form.ErrSubmitInFlight):
		return http.StatusConflict
	case errors.Is(err, form.ErrSubmitDisabled):
		return http.StatusUnprocessableEntity
	default:
		return 0
	}
}

// finish completes a form action: JSON callers get the snapshot (or the
// guard error), browsers are redirected back to the page.
func finish(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	if wantsJSON(r) {
		if status := guardStatus(err); status != 0 {
			writeError(w, status, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, sess.Form.Snapshot())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
