package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/form"
	"github.com/jackzampolin/langextract/internal/schema"
	"github.com/jackzampolin/langextract/internal/svcctx"
)

// maxFormBody bounds the extract form body.
const maxFormBody = 10 << 20 // 10MB

// ExtractFormEndpoint handles POST /form/extract.
type ExtractFormEndpoint struct{}

var _ api.Endpoint = (*ExtractFormEndpoint)(nil)

func (e *ExtractFormEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/form/extract", e.handler
}

func (e *ExtractFormEndpoint) RequiresSession() bool { return true }

// handler godoc
//
//	@Summary		Submit the extraction form
//	@Description	Runs one extraction for the caller's session. Browsers are redirected to the page; callers sending Accept: application/json get the form snapshot.
//	@Tags			form
//	@Accept			x-www-form-urlencoded
//	@Accept			json
//	@Produce		json
//	@Param			text		formData	string	true	"Input text"
//	@Param			schema		formData	string	true	"Extraction schema (JSON)"
//	@Param			model		formData	string	false	"Model name"
//	@Param			temperature	formData	string	false	"Sampling temperature"
//	@Param			max_tokens	formData	string	false	"Maximum output tokens"
//	@Success		200	{object}	form.Snapshot
//	@Success		303
//	@Failure		400	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/form/extract [post]
func (e *ExtractFormEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	in, err := readInput(w, r)
	if err != nil {
		reject(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// A submission runs to completion even if the browser goes away.
	err = sess.Form.SubmitInput(context.WithoutCancel(r.Context()), in)
	if err != nil && guardStatus(err) == 0 {
		svcctx.LoggerFrom(r.Context()).Debug("extraction failed",
			"session", sess.ID,
			"kind", form.KindOf(err),
			"error", err)
	}
	finish(w, r, sess, err)
}

// readInput decodes the form fields from a urlencoded or JSON body.
func readInput(w http.ResponseWriter, r *http.Request) (form.Input, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var in form.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return form.Input{}, fmt.Errorf("invalid request body: %w", err)
		}
		return in, nil
	}

	if err := r.ParseForm(); err != nil {
		return form.Input{}, fmt.Errorf("failed to parse form: %w", err)
	}
	return form.Input{
		Text:        r.PostFormValue("text"),
		SchemaText:  r.PostFormValue("schema"),
		Model:       r.PostFormValue("model"),
		Temperature: r.PostFormValue("temperature"),
		MaxTokens:   r.PostFormValue("max_tokens"),
	}, nil
}

func (e *ExtractFormEndpoint) Command(getClient func() *api.Client) *cobra.Command {
	var (
		text, textFile         string
		schemaText, schemaFile string
		outFile                string
		in                     form.Input
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract structured information from text",
		Long: `Send text and a JSON schema to the extraction backend and print the result.

The schema defaults to the same example the web form starts with.

Examples:
  langextract extract --text "Jane is 30 years old."
  langextract extract --text-file notes.txt --schema-file person.json
  cat notes.txt | langextract extract --text-file - --schema '{"name":"string"}' -o json
  langextract extract --text-file notes.txt --out-file result.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.Text, err = readValue("text", text, textFile, cmd.InOrStdin()); err != nil {
				return err
			}
			if in.SchemaText, err = readValue("schema", schemaText, schemaFile, cmd.InOrStdin()); err != nil {
				return err
			}
			if in.SchemaText == "" {
				in.SchemaText = schema.DefaultText
			}

			ctrl := form.NewController(getClient())
			if err := ctrl.SubmitInput(cmd.Context(), in); err != nil {
				if errors.Is(err, form.ErrSubmitDisabled) {
					return errors.New("no input text: use --text or --text-file")
				}
				return err
			}
			result := ctrl.Snapshot().Result
			if outFile != "" {
				return api.OutputToFile(result, outFile)
			}
			return api.OutputTo(cmd.OutOrStdout(), api.GetOutputFormat(), result)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Input text")
	cmd.Flags().StringVar(&textFile, "text-file", "", "Read input text from file (- for stdin)")
	cmd.Flags().StringVar(&schemaText, "schema", "", "Extraction schema as JSON")
	cmd.Flags().StringVar(&schemaFile, "schema-file", "", "Read extraction schema from file (- for stdin)")
	cmd.Flags().StringVar(&in.Model, "model", "", "Model to use")
	cmd.Flags().StringVar(&in.Temperature, "temperature", "", "Sampling temperature")
	cmd.Flags().StringVar(&in.MaxTokens, "max-tokens", "", "Maximum output tokens")
	cmd.Flags().StringVar(&outFile, "out-file", "", "Write the result to a file instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
	cmd.MarkFlagsMutuallyExclusive("schema", "schema-file")
	return cmd
}

// readValue returns value, or the contents of file when set.
func readValue(name, value, file string, stdin io.Reader) (string, error) {
	switch file {
	case "":
		return value, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read %s from stdin: %w", name, err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s file: %w", name, err)
		}
		return string(data), nil
	}
}
