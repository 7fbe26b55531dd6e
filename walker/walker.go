package walker

import (
	"context"
	"errors"

	"github.com/erraggy/oasgraph/internal/pathutil"
	"github.com/erraggy/oasgraph/parser"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking, including the node's children.
	Continue Action = iota

	// SkipChildren skips the node's children and continues with its
	// siblings.
	SkipChildren

	// Stop ends the walk immediately.
	Stop
)

// IsValid reports whether a is a known action.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns the name of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return "Action(unknown)"
	}
}

// Handler types. Each receives the walk context and the node.
type (
	DocumentHandler       func(wc *WalkContext, doc *parser.Document) Action
	InfoHandler           func(wc *WalkContext, info *parser.Info) Action
	ServerHandler         func(wc *WalkContext, server *parser.Server) Action
	TagHandler            func(wc *WalkContext, tag *parser.Tag) Action
	PathItemHandler       func(wc *WalkContext, item *parser.PathItem) Action
	OperationHandler      func(wc *WalkContext, op *parser.Operation) Action
	ParameterHandler      func(wc *WalkContext, param *parser.Parameter) Action
	RequestBodyHandler    func(wc *WalkContext, body *parser.RequestBody) Action
	ResponseHandler       func(wc *WalkContext, resp *parser.Response) Action
	SchemaHandler         func(wc *WalkContext, schema *parser.Schema) Action
	SecuritySchemeHandler func(wc *WalkContext, scheme *parser.SecurityScheme) Action
	HeaderHandler         func(wc *WalkContext, header *parser.Header) Action
	MediaTypeHandler      func(wc *WalkContext, mt *parser.MediaType) Action
	LinkHandler           func(wc *WalkContext, link *parser.Link) Action
	CallbackHandler       func(wc *WalkContext, cb *parser.Callback) Action
	ExampleHandler        func(wc *WalkContext, ex *parser.Example) Action
	ExternalDocsHandler   func(wc *WalkContext, docs *parser.ExternalDocs) Action
)

// RefHandler is called for every reference node. Returning Stop ends the
// walk; any other action continues it.
type RefHandler func(wc *WalkContext, ref *parser.Reference) Action

// SchemaSkippedHandler is called when a schema is not visited. The reason
// is "depth" or "cycle".
type SchemaSkippedHandler func(wc *WalkContext, reason string, schema *parser.Schema)

// DefaultMaxSchemaDepth bounds schema nesting when no depth is configured.
const DefaultMaxSchemaDepth = 100

// ErrNilDocument is returned by Walk when given a nil document.
var ErrNilDocument = errors.New("walker: nil document")

// Walker traverses a document, calling registered handlers.
type Walker struct {
	onDocument       DocumentHandler
	onInfo           InfoHandler
	onServer         ServerHandler
	onTag            TagHandler
	onPathItem       PathItemHandler
	onOperation      OperationHandler
	onParameter      ParameterHandler
	onRequestBody    RequestBodyHandler
	onResponse       ResponseHandler
	onSchema         SchemaHandler
	onSecurityScheme SecuritySchemeHandler
	onHeader         HeaderHandler
	onMediaType      MediaTypeHandler
	onLink           LinkHandler
	onCallback       CallbackHandler
	onExample        ExampleHandler
	onExternalDocs   ExternalDocsHandler
	onRef            RefHandler
	onSchemaSkipped  SchemaSkippedHandler

	maxDepth int
	ctx      context.Context

	path           *pathutil.PathBuilder
	state          walkState
	visitedSchemas map[*parser.Schema]bool
	stopped        bool
	err            error
}

// New creates a walker with default settings.
func New() *Walker {
	return &Walker{maxDepth: DefaultMaxSchemaDepth}
}

// Walk traverses doc, calling the handlers configured by opts. It returns
// the context's error when the walk was cut short by cancellation of the
// context given with [WithUserContext].
func Walk(doc *parser.Document, opts ...Option) error {
	w := New()
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w.Walk(doc)
}

// Walk traverses doc with the walker's handlers.
func (w *Walker) Walk(doc *parser.Document) error {
	if doc == nil {
		return ErrNilDocument
	}
	w.path = pathutil.Get()
	defer func() {
		pathutil.Put(w.path)
		w.path = nil
	}()
	w.state = walkState{}
	w.visitedSchemas = make(map[*parser.Schema]bool)
	w.stopped = false
	w.err = nil

	w.walkDocument(doc)
	return w.err
}

// handleAction records Stop and reports whether children should be visited.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}

// done reports whether the walk has ended, checking for cancellation.
func (w *Walker) done() bool {
	if w.stopped {
		return true
	}
	if w.ctx != nil {
		if err := w.ctx.Err(); err != nil {
			w.err = err
			w.stopped = true
			return true
		}
	}
	return false
}

// visit calls fn for node at the current pointer and reports whether the
// node's children should be visited.
func visit[T any](w *Walker, fn func(*WalkContext, T) Action, node T) bool {
	if w.done() {
		return false
	}
	if fn == nil {
		return true
	}
	wc := w.state.buildContext(w.path.String(), w.ctx)
	action := fn(wc, node)
	releaseContext(wc)
	return w.handleAction(action)
}

// visitRef reports a reference. It returns false when the walk was stopped.
func (w *Walker) visitRef(ref *parser.Reference) bool {
	if ref == nil || w.onRef == nil || w.done() {
		return !w.stopped
	}
	wc := w.state.buildContext(w.path.String(), w.ctx)
	action := w.onRef(wc, ref)
	releaseContext(wc)
	if action == Stop {
		w.stopped = true
	}
	return !w.stopped
}

func (w *Walker) skipped(reason string, schema *parser.Schema) {
	if w.onSchemaSkipped == nil {
		return
	}
	wc := w.state.buildContext(w.path.String(), w.ctx)
	w.onSchemaSkipped(wc, reason, schema)
	releaseContext(wc)
}
