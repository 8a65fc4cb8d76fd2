package endpoints

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/document"
	"github.com/jackzampolin/langextract/internal/form"
	"github.com/jackzampolin/langextract/internal/svcctx"
)

// UploadResponse describes an uploaded document and its outcome.
type UploadResponse struct {
	Document document.Info     `json:"document" yaml:"document"`
	Upload   *api.UploadResult `json:"upload,omitempty" yaml:"upload,omitempty"`
	Form     *form.Snapshot    `json:"form,omitempty" yaml:"-"`
}

// UploadFormEndpoint handles POST /form/upload with a multipart file.
type UploadFormEndpoint struct{}

var _ api.Endpoint = (*UploadFormEndpoint)(nil)

func (e *UploadFormEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/form/upload", e.handler
}

func (e *UploadFormEndpoint) RequiresSession() bool { return true }

// handler godoc
//
//	@Summary		Load a document into the form
//	@Description	Forwards the file to the backend upload endpoint and replaces the form text with the extracted text
//	@Tags			form
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"Document to upload"
//	@Success		200	{object}	UploadResponse
//	@Success		303
//	@Failure		400	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		413	{object}	ErrorResponse
//	@Router			/form/upload [post]
func (e *UploadFormEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, document.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(document.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			reject(w, r, http.StatusRequestEntityTooLarge, "document too large")
			return
		}
		reject(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		reject(w, r, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		reject(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	info := document.Inspect(header.Filename, data)
	logger := svcctx.LoggerFrom(r.Context())
	logger.Info("document uploaded", "session", sess.ID, "document", info)

	err = sess.Form.LoadDocument(context.WithoutCancel(r.Context()), info.Name, bytes.NewReader(data))
	if err != nil && guardStatus(err) == 0 {
		logger.Debug("document load failed", "session", sess.ID, "kind", form.KindOf(err), "error", err)
	}

	if wantsJSON(r) {
		if status := guardStatus(err); status != 0 {
			writeError(w, status, err.Error())
			return
		}
		snap := sess.Form.Snapshot()
		writeJSON(w, http.StatusOK, UploadResponse{Document: info, Form: &snap})
		return
	}
	finish(w, r, sess, err)
}

func (e *UploadFormEndpoint) Command(getClient func() *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document and print the text the backend extracted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			if int64(len(data)) > document.MaxUploadSize {
				return fmt.Errorf("%s is larger than %d bytes", path, document.MaxUploadSize)
			}

			resp := UploadResponse{Document: document.Inspect(filepath.Base(path), data)}
			resp.Upload, err = getClient().UploadDocument(cmd.Context(), resp.Document.Name, bytes.NewReader(data))
			if err != nil {
				return err
			}
			return api.OutputTo(cmd.OutOrStdout(), api.GetOutputFormat(), resp)
		},
	}
}
