// Package form implements the extraction form as an explicit state machine.
//
// A Controller owns the transient state of one browser session: the input
// fields, the last result or error, and whether a request is in flight.
// At most one of result and error is set at any time, and only one request
// may be outstanding per controller.
package form

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/schema"
)

// Backend is the part of the extraction client the form uses.
type Backend interface {
	Extract(ctx context.Context, req api.ExtractionRequest) (*api.ExtractionResponse, error)
	UploadDocument(ctx context.Context, filename string, file io.Reader) (*api.UploadResult, error)
}

// Input holds the raw form fields as typed by the user.
type Input struct {
	Text        string `json:"text"`
	SchemaText  string `json:"schema"`
	Model       string `json:"model,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	MaxTokens   string `json:"max_tokens,omitempty"`
}

// DefaultInput returns the fields of a fresh form.
func DefaultInput() Input {
	return Input{SchemaText: schema.DefaultText}
}

// Document identifies the last uploaded document.
type Document struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	State      State                   `json:"state"`
	Input      Input                   `json:"input"`
	Loading    bool                    `json:"loading"`
	CanSubmit  bool                    `json:"can_submit"`
	Result     *api.ExtractionResponse `json:"result,omitempty"`
	ResultJSON string                  `json:"-"`
	Error      string                  `json:"error,omitempty"`
	ErrorKind  ErrorKind               `json:"error_kind,omitempty"`
	Document   *Document               `json:"document,omitempty"`
}

// Controller drives one form through Idle, Loading, Success and Failed.
type Controller struct {
	backend Backend

	mu        sync.Mutex
	state     State
	input     Input
	result    *api.ExtractionResponse
	errMsg    string
	errKind   ErrorKind
	document  *Document
	observers []func(Transition)
}

// NewController creates a controller in the Idle state with default input.
func NewController(backend Backend) *Controller {
	return &Controller{
		backend: backend,
		state:   Idle,
		input:   DefaultInput(),
	}
}

// OnTransition registers fn to be called after every state change.
// Callbacks run outside the controller lock.
func (c *Controller) OnTransition(fn func(Transition)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanSubmit reports whether the submit control is enabled: text and schema
// are both non-empty and no request is in flight.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *Controller) canSubmitLocked() bool {
	return c.state != Loading && c.input.Text != "" && c.input.SchemaText != ""
}

// SetInput replaces the form fields. It is rejected while loading.
func (c *Controller) SetInput(in Input) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Loading {
		return ErrSubmitInFlight
	}
	c.input = in
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:     c.state,
		Input:     c.input,
		Loading:   c.state == Loading,
		CanSubmit: c.canSubmitLocked(),
		Result:    c.result,
		Error:     c.errMsg,
		ErrorKind: c.errKind,
	}
	if c.result != nil {
		snap.ResultJSON = c.result.Indent()
	}
	if c.document != nil {
		doc := *c.document
		snap.Document = &doc
	}
	return snap
}

// Submit runs one extraction with the current input.
//
// It returns ErrSubmitInFlight or ErrSubmitDisabled without changing state
// when the guard rejects the call. Otherwise the form enters Loading, the
// schema is parsed, and on success the backend is called once. The returned
// error is the failure stored in the form, or nil on success.
func (c *Controller) Submit(ctx context.Context) error {
	return c.submit(ctx, nil)
}

// SubmitInput atomically replaces the input and submits it.
func (c *Controller) SubmitInput(ctx context.Context, in Input) error {
	return c.submit(ctx, &in)
}

func (c *Controller) submit(ctx context.Context, in *Input) error {
	c.mu.Lock()
	if c.state == Loading {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if in != nil {
		c.input = *in
	}
	if !c.canSubmitLocked() {
		c.mu.Unlock()
		return ErrSubmitDisabled
	}
	input := c.input
	c.result = nil
	c.clearErrorLocked()
	fired := c.fireLocked(EventSubmit)
	c.mu.Unlock()
	c.notify(fired)

	req, err := buildRequest(input)
	if err != nil {
		c.finish(EventParseFailure, nil, err)
		return err
	}

	resp, err := c.backend.Extract(ctx, req)
	if err != nil {
		c.finish(EventClientFailure, nil, err)
		return err
	}
	c.finish(EventClientSuccess, resp, nil)
	return nil
}

// LoadDocument uploads a document and replaces the input text with the
// text the backend extracted from it. The prior result is cleared.
func (c *Controller) LoadDocument(ctx context.Context, filename string, file io.Reader) error {
	c.mu.Lock()
	if c.state == Loading {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.result = nil
	c.clearErrorLocked()
	fired := c.fireLocked(EventUpload)
	c.mu.Unlock()
	c.notify(fired)

	res, err := c.backend.UploadDocument(ctx, filename, file)
	if err != nil {
		c.finish(EventClientFailure, nil, err)
		return err
	}

	c.mu.Lock()
	c.input.Text = res.Text
	c.document = &Document{ID: res.DocumentID, Name: filename}
	fired = c.fireLocked(EventUploadSuccess)
	c.mu.Unlock()
	c.notify(fired)
	return nil
}

// Reset returns an idle form to its default input.
func (c *Controller) Reset() error {
	c.mu.Lock()
	if c.state == Loading {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.input = DefaultInput()
	c.result = nil
	c.document = nil
	c.clearErrorLocked()
	fired := c.fireLocked(EventReset)
	c.mu.Unlock()
	c.notify(fired)
	return nil
}

// finish resolves a Loading form. Exactly one of resp and err is set.
func (c *Controller) finish(ev Event, resp *api.ExtractionResponse, err error) {
	c.mu.Lock()
	if err != nil {
		c.result = nil
		c.errMsg = message(err)
		c.errKind = KindOf(err)
	} else {
		c.result = resp
		c.clearErrorLocked()
	}
	fired := c.fireLocked(ev)
	c.mu.Unlock()
	c.notify(fired)
}

func (c *Controller) clearErrorLocked() {
	c.errMsg = ""
	c.errKind = ErrorKindNone
}

// fireLocked applies ev and returns the transition to publish.
func (c *Controller) fireLocked(ev Event) *Transition {
	to, ok := next(c.state, ev)
	if !ok {
		panic(fmt.Sprintf("form: no transition from %s on %s", c.state, ev))
	}
	t := Transition{From: c.state, Event: ev, To: to}
	c.state = to
	return &t
}

func (c *Controller) notify(t *Transition) {
	if t == nil {
		return
	}
	c.mu.Lock()
	observers := make([]func(Transition), len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(*t)
	}
}

// buildRequest turns raw input into a request. Schema errors come back as
// *schema.ParseError, numeric field errors as *InputError.
func buildRequest(in Input) (api.ExtractionRequest, error) {
	doc, err := schema.Parse(in.SchemaText)
	if err != nil {
		return api.ExtractionRequest{}, err
	}

	req := api.ExtractionRequest{
		Text:   in.Text,
		Schema: doc,
		Model:  strings.TrimSpace(in.Model),
	}

	if s := strings.TrimSpace(in.Temperature); s != "" {
		temp, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return api.ExtractionRequest{}, &InputError{Field: "temperature", Err: err}
		}
		req.Temperature = &temp
	}

	if s := strings.TrimSpace(in.MaxTokens); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return api.ExtractionRequest{}, &InputError{Field: "max_tokens", Err: err}
		}
		if n <= 0 {
			return api.ExtractionRequest{}, &InputError{Field: "max_tokens", Err: fmt.Errorf("must be positive, got %d", n)}
		}
		req.MaxTokens = &n
	}

	return req, nil
}
