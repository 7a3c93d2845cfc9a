package storefront

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	"github.com/NTAravind/eshop-sub000/lib/encoding"
)

// PageView is everything one request needs rendered: the published
// layout and page trees plus the assembled runtime context.
type PageView struct {
	Layout  *StorefrontNode
	Page    *StorefrontNode
	Context *RuntimeContext
}

// PageLoader assembles the view for a request: it resolves the route to
// a published document pair and builds the runtime context from store,
// user, cart, and page data. Loaders live outside the core; see
// cmd/storefrontd for a wiring example.
type PageLoader interface {
	Load(r *http.Request) (*PageView, error)
}

// Handler serves the storefront over HTTP: page renders on GET and
// action dispatch on POST /_sf/action.
type Handler struct {
	loader     PageLoader
	renderer   *Renderer
	dispatcher *Dispatcher
	encoder    *encoding.Encoder
	log        zerolog.Logger

	// OnError is called when a page cannot be loaded or rendered.
	// Customize this to render a branded error page.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// NewHandler wires the render and dispatch endpoints.
func NewHandler(loader PageLoader, renderer *Renderer, dispatcher *Dispatcher, encoder *encoding.Encoder, log zerolog.Logger) *Handler {
	h := &Handler{
		loader:     loader,
		renderer:   renderer,
		dispatcher: dispatcher,
		encoder:    encoder,
		log:        log,
	}
	h.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("page request failed")
		http.Error(w, "Not found", http.StatusNotFound)
	}
	return h
}

// Routes returns the handler's mux: page rendering at "/" and action
// dispatch at "/_sf/action".
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /_sf/action", h.ServeAction)
	mux.HandleFunc("/", h.ServePage)
	return mux
}

// ServePage loads the view for the request and renders it as HTML.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	view, err := h.loader.Load(r)
	if err != nil {
		h.OnError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := h.renderer.Render(view.Layout, view.Page, view.Context)
	if err := component.Render(r.Context(), w); err != nil {
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("render failed")
	}
}

// RenderComponent writes a templ component to the response. Exposed for
// pages outside the document runtime (admin previews, error pages).
func RenderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

type actionRequest struct {
	Envelope string `json:"envelope"`
}

// ServeAction verifies a sealed action envelope and dispatches it. The
// envelope arrives as the "a" form value or a JSON body; the response is
// always a JSON DispatchResult with HTTP 200 - dispatch failures are
// data, not transport errors. Only envelope verification failures are
// rejected at the HTTP layer.
func (h *Handler) ServeAction(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("a")
	if raw == "" {
		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			raw = req.Envelope
		}
	}
	if raw == "" {
		h.writeJSON(w, http.StatusBadRequest, Fail("missing action envelope"))
		return
	}

	var envelope ActionEnvelope
	if err := h.encoder.Decode(raw, false, &envelope); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, encoding.ErrSignatureInvalid) {
			status = http.StatusForbidden
		}
		h.log.Warn().Err(err).Msg("rejected action envelope")
		h.writeJSON(w, status, Fail("invalid action envelope"))
		return
	}

	view, err := h.loader.Load(r)
	if err != nil {
		h.writeJSON(w, http.StatusOK, Fail("context unavailable"))
		return
	}

	result := h.dispatcher.Dispatch(r.Context(), envelope.Ref, view.Context)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, result DispatchResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log.Error().Err(err).Msg("response encoding failed")
	}
}
