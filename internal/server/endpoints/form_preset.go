package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/svcctx"
)

// PresetFormEndpoint handles POST /form/preset.
type PresetFormEndpoint struct{}

var _ api.Endpoint = (*PresetFormEndpoint)(nil)

func (e *PresetFormEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/form/preset", e.handler
}

func (e *PresetFormEndpoint) RequiresSession() bool { return true }

// handler godoc
//
//	@Summary		Apply a schema preset
//	@Description	Replaces the form's schema text with the named preset
//	@Tags			form
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			preset	formData	string	true	"Preset name"
//	@Success		200	{object}	form.Snapshot
//	@Success		303
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/form/preset [post]
func (e *PresetFormEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	name := r.PostFormValue("preset")
	preset, found := svcctx.PresetsFrom(r.Context()).Get(name)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown preset %q", name))
		return
	}

	in := sess.Form.Snapshot().Input
	in.SchemaText = preset.Text()
	finish(w, r, sess, sess.Form.SetInput(in))
}

func (e *PresetFormEndpoint) Command(_ func() *api.Client) *cobra.Command {
	return nil // Listed by the presets command
}
