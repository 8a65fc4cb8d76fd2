package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
)

// FormStateEndpoint handles GET /form/state.
type FormStateEndpoint struct{}

var _ api.Endpoint = (*FormStateEndpoint)(nil)

func (e *FormStateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/form/state", e.handler
}

func (e *FormStateEndpoint) RequiresSession() bool { return true }

// handler godoc
//
//	@Summary		Current form state
//	@Description	Returns the caller's form snapshot, including whether a request is in flight
//	@Tags			form
//	@Produce		json
//	@Success		200	{object}	form.Snapshot
//	@Router			/form/state [get]
func (e *FormStateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Form.Snapshot())
}

func (e *FormStateEndpoint) Command(_ func() *api.Client) *cobra.Command {
	return nil
}

// ResetFormEndpoint handles POST /form/reset.
type ResetFormEndpoint struct{}

var _ api.Endpoint = (*ResetFormEndpoint)(nil)

func (e *ResetFormEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/form/reset", e.handler
}

func (e *ResetFormEndpoint) RequiresSession() bool { return true }

// handler godoc
//
//	@Summary		Reset the form
//	@Description	Restores the default input and clears the result and error
//	@Tags			form
//	@Produce		json
//	@Success		200	{object}	form.Snapshot
//	@Success		303
//	@Failure		409	{object}	ErrorResponse
//	@Router			/form/reset [post]
func (e *ResetFormEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	finish(w, r, sess, sess.Form.Reset())
}

func (e *ResetFormEndpoint) Command(_ func() *api.Client) *cobra.Command {
	return nil
}
