package parser

// Values of Parameter.In. Path parameters are always required.
const (
	ParamInQuery  = "query"
	ParamInHeader = "header"
	ParamInPath   = "path"
	ParamInCookie = "cookie" // OAS 3.x

	// Swagger 2.0 only
	ParamInFormData = "formData"
	ParamInBody     = "body"
)

// MaxRefDepth is the default bound on how deeply nested references are
// followed during full expansion. See WithMaxRefDepth.
const MaxRefDepth = 100
