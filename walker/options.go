package walker

import "context"

// Option configures a walk.
type Option func(*Walker)

// WithMaxSchemaDepth bounds schema nesting. Non-positive values keep the
// default.
func WithMaxSchemaDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithUserContext sets the context returned by [WalkContext.Context]. The
// walk ends with the context's error once it is canceled.
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) { w.ctx = ctx }
}

// WithDocumentHandler sets the handler for the document root.
func WithDocumentHandler(fn DocumentHandler) Option {
	return func(w *Walker) { w.onDocument = fn }
}

// WithInfoHandler sets the handler for the info object.
func WithInfoHandler(fn InfoHandler) Option {
	return func(w *Walker) { w.onInfo = fn }
}

// WithServerHandler sets the handler for servers.
func WithServerHandler(fn ServerHandler) Option {
	return func(w *Walker) { w.onServer = fn }
}

// WithTagHandler sets the handler for tags.
func WithTagHandler(fn TagHandler) Option {
	return func(w *Walker) { w.onTag = fn }
}

// WithPathItemHandler sets the handler for path items, including webhooks,
// callback expressions and path item components.
func WithPathItemHandler(fn PathItemHandler) Option {
	return func(w *Walker) { w.onPathItem = fn }
}

// WithOperationHandler sets the handler for operations.
func WithOperationHandler(fn OperationHandler) Option {
	return func(w *Walker) { w.onOperation = fn }
}

// WithParameterHandler sets the handler for parameters.
func WithParameterHandler(fn ParameterHandler) Option {
	return func(w *Walker) { w.onParameter = fn }
}

// WithRequestBodyHandler sets the handler for request bodies.
func WithRequestBodyHandler(fn RequestBodyHandler) Option {
	return func(w *Walker) { w.onRequestBody = fn }
}

// WithResponseHandler sets the handler for responses.
func WithResponseHandler(fn ResponseHandler) Option {
	return func(w *Walker) { w.onResponse = fn }
}

// WithSchemaHandler sets the handler for schemas, nested ones included.
func WithSchemaHandler(fn SchemaHandler) Option {
	return func(w *Walker) { w.onSchema = fn }
}

// WithSecuritySchemeHandler sets the handler for security schemes.
func WithSecuritySchemeHandler(fn SecuritySchemeHandler) Option {
	return func(w *Walker) { w.onSecurityScheme = fn }
}

// WithHeaderHandler sets the handler for headers.
func WithHeaderHandler(fn HeaderHandler) Option {
	return func(w *Walker) { w.onHeader = fn }
}

// WithMediaTypeHandler sets the handler for media types.
func WithMediaTypeHandler(fn MediaTypeHandler) Option {
	return func(w *Walker) { w.onMediaType = fn }
}

// WithLinkHandler sets the handler for links.
func WithLinkHandler(fn LinkHandler) Option {
	return func(w *Walker) { w.onLink = fn }
}

// WithCallbackHandler sets the handler for callbacks.
func WithCallbackHandler(fn CallbackHandler) Option {
	return func(w *Walker) { w.onCallback = fn }
}

// WithExampleHandler sets the handler for examples.
func WithExampleHandler(fn ExampleHandler) Option {
	return func(w *Walker) { w.onExample = fn }
}

// WithExternalDocsHandler sets the handler for external documentation.
func WithExternalDocsHandler(fn ExternalDocsHandler) Option {
	return func(w *Walker) { w.onExternalDocs = fn }
}

// WithRefHandler sets the handler for reference nodes.
func WithRefHandler(fn RefHandler) Option {
	return func(w *Walker) { w.onRef = fn }
}

// WithSchemaSkippedHandler sets the handler for schemas skipped because of
// depth or cycles.
func WithSchemaSkippedHandler(fn SchemaSkippedHandler) Option {
	return func(w *Walker) { w.onSchemaSkipped = fn }
}
