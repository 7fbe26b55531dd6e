package walker

import (
	"context"
	"sync"
)

// WalkContext provides contextual information about the current node
// during traversal.
type WalkContext struct {
	// Pointer is the JSON Pointer to the current node, "" for the root.
	Pointer string

	// PathTemplate is the URL path template (or webhook name) when under
	// paths or webhooks, empty otherwise.
	PathTemplate string

	// Method is the lowercase HTTP method when in operation scope.
	Method string

	// StatusCode is the response status code (or "default") when in
	// response scope.
	StatusCode string

	// Name is the map key of the current node when it has one: a component
	// name, a property name, a header name or a media type.
	Name string

	// IsComponent is true when the node lives under components or one of
	// the Swagger 2.0 reusable sections.
	IsComponent bool

	ctx context.Context
}

// Context returns the context passed with [WithUserContext], or
// context.Background.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// InPathsScope reports whether the node is under paths or webhooks.
func (wc *WalkContext) InPathsScope() bool { return wc.PathTemplate != "" }

// InOperationScope reports whether the node belongs to an operation.
func (wc *WalkContext) InOperationScope() bool { return wc.Method != "" }

// InResponseScope reports whether the node belongs to a response.
func (wc *WalkContext) InResponseScope() bool { return wc.StatusCode != "" }

// walkState is the scope information carried down the traversal. It is
// copied by value when a walk function narrows the scope.
type walkState struct {
	pathTemplate string
	method       string
	statusCode   string
	name         string
	isComponent  bool
}

var contextPool = sync.Pool{
	New: func() any { return new(WalkContext) },
}

func (s walkState) buildContext(pointer string, ctx context.Context) *WalkContext {
	wc := contextPool.Get().(*WalkContext)
	*wc = WalkContext{
		Pointer:      pointer,
		PathTemplate: s.pathTemplate,
		Method:       s.method,
		StatusCode:   s.statusCode,
		Name:         s.name,
		IsComponent:  s.isComponent,
		ctx:          ctx,
	}
	return wc
}

func releaseContext(wc *WalkContext) {
	*wc = WalkContext{}
	contextPool.Put(wc)
}
