package parser

import (
	"github.com/erraggy/oasgraph/rawdoc"
)

// SecurityScheme defines a security scheme that can be used by the operations.
type SecurityScheme struct {
	// Ref is set when the scheme is a "$ref"; no other field is set then.
	Ref *Reference

	Type        string // "apiKey", "http", "oauth2", "openIdConnect" (OAS 3.0+), "basic" (OAS 2.0)
	Description string

	// Type: apiKey
	Name string
	In   string // "query", "header", "cookie" (OAS 3.0+)

	// Type: http (OAS 3.0+)
	Scheme       string
	BearerFormat string

	// Type: oauth2
	Flows *OAuthFlows // OAS 3.0+

	// Type: oauth2 (OAS 2.0)
	Flow             string
	AuthorizationURL string
	TokenURL         string
	Scopes           map[string]string

	// Type: openIdConnect (OAS 3.0+)
	OpenIDConnectURL string

	Extra map[string]any
}

func buildSecurityScheme(d *decoder, raw any) (*SecurityScheme, error) {
	o, err := d.object(KindSecurityScheme, raw)
	if err != nil {
		return nil, err
	}
	if ref, err := o.reference(); err != nil || ref != nil {
		if err != nil {
			return nil, err
		}
		return &SecurityScheme{Ref: ref}, nil
	}
	ss := &SecurityScheme{
		Type:             o.str("type"),
		Description:      o.str("description"),
		Name:             o.str("name"),
		In:               o.str("in"),
		Scheme:           o.str("scheme"),
		BearerFormat:     o.str("bearerFormat"),
		Flow:             o.str("flow"),
		AuthorizationURL: o.str("authorizationUrl"),
		TokenURL:         o.str("tokenUrl"),
		Scopes:           o.strMap("scopes"),
		OpenIDConnectURL: o.str("openIdConnectUrl"),
	}
	ss.Flows = child(o, "flows", buildOAuthFlows)
	ss.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return ss, nil
}

// Kind implements Node.
func (ss *SecurityScheme) Kind() Kind { return KindSecurityScheme }

// Reference implements Referenceable.
func (ss *SecurityScheme) Reference() *Reference {
	if ss == nil {
		return nil
	}
	return ss.Ref
}

// Extensions implements Node.
func (ss *SecurityScheme) Extensions() map[string]any {
	if ss == nil {
		return nil
	}
	return ss.Extra
}

// ToRaw implements Node.
func (ss *SecurityScheme) ToRaw() any {
	if ss == nil {
		return nil
	}
	if ss.Ref != nil {
		return ss.Ref.ToRaw()
	}
	e := newEmitter()
	e.str("type", ss.Type)
	e.str("description", ss.Description)
	e.str("name", ss.Name)
	e.str("in", ss.In)
	e.str("scheme", ss.Scheme)
	e.str("bearerFormat", ss.BearerFormat)
	e.node("flows", ss.Flows)
	e.str("flow", ss.Flow)
	e.str("authorizationUrl", ss.AuthorizationURL)
	e.str("tokenUrl", ss.TokenURL)
	e.strMap("scopes", ss.Scopes)
	e.str("openIdConnectUrl", ss.OpenIDConnectURL)
	e.extra(ss.Extra)
	return e.result()
}

// OAuthFlows allows configuration of the supported OAuth Flows (OAS 3.0+).
type OAuthFlows struct {
	Implicit          *OAuthFlow
	Password          *OAuthFlow
	ClientCredentials *OAuthFlow
	AuthorizationCode *OAuthFlow
	Extra             map[string]any
}

func buildOAuthFlows(d *decoder, raw any) (*OAuthFlows, error) {
	o, err := d.object(KindOAuthFlows, raw)
	if err != nil {
		return nil, err
	}
	f := &OAuthFlows{}
	f.Implicit = child(o, "implicit", buildOAuthFlow)
	f.Password = child(o, "password", buildOAuthFlow)
	f.ClientCredentials = child(o, "clientCredentials", buildOAuthFlow)
	f.AuthorizationCode = child(o, "authorizationCode", buildOAuthFlow)
	f.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return f, nil
}

// Kind implements Node.
func (f *OAuthFlows) Kind() Kind { return KindOAuthFlows }

// Extensions implements Node.
func (f *OAuthFlows) Extensions() map[string]any {
	if f == nil {
		return nil
	}
	return f.Extra
}

// ToRaw implements Node.
func (f *OAuthFlows) ToRaw() any {
	if f == nil {
		return nil
	}
	e := newEmitter()
	e.node("implicit", f.Implicit)
	e.node("password", f.Password)
	e.node("clientCredentials", f.ClientCredentials)
	e.node("authorizationCode", f.AuthorizationCode)
	e.extra(f.Extra)
	return e.result()
}

// OAuthFlow contains configuration details for a supported OAuth Flow.
type OAuthFlow struct {
	AuthorizationURL string
	TokenURL         string
	RefreshURL       string
	Scopes           map[string]string
	Extra            map[string]any
}

func buildOAuthFlow(d *decoder, raw any) (*OAuthFlow, error) {
	o, err := d.object(KindOAuthFlow, raw)
	if err != nil {
		return nil, err
	}
	f := &OAuthFlow{
		AuthorizationURL: o.str("authorizationUrl"),
		TokenURL:         o.str("tokenUrl"),
		RefreshURL:       o.str("refreshUrl"),
		Scopes:           o.strMap("scopes"),
	}
	f.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return f, nil
}

// Kind implements Node.
func (f *OAuthFlow) Kind() Kind { return KindOAuthFlow }

// Extensions implements Node.
func (f *OAuthFlow) Extensions() map[string]any {
	if f == nil {
		return nil
	}
	return f.Extra
}

// ToRaw implements Node.
func (f *OAuthFlow) ToRaw() any {
	if f == nil {
		return nil
	}
	e := newEmitter()
	e.str("authorizationUrl", f.AuthorizationURL)
	e.str("tokenUrl", f.TokenURL)
	e.str("refreshUrl", f.RefreshURL)
	e.strMap("scopes", f.Scopes)
	e.extra(f.Extra)
	return e.result()
}

// SecurityRequirement lists the required security schemes to execute an
// operation. Keys are security scheme names, values are the required scopes.
// An empty requirement ({}) makes security optional.
type SecurityRequirement map[string][]string

func buildSecurityRequirement(d *decoder, raw any) (SecurityRequirement, error) {
	o, err := d.object(KindSecurityRequirement, raw)
	if err != nil {
		return nil, err
	}
	req := make(SecurityRequirement, o.m.Len())
	for name, v := range o.m.FromOldest() {
		if v == nil {
			req[name] = nil
			continue
		}
		req[name] = o.strList(name)
	}
	if o.err != nil {
		return nil, o.err
	}
	return req, nil
}

// Kind implements Node.
func (sr SecurityRequirement) Kind() Kind { return KindSecurityRequirement }

// Extensions implements Node. Every key of a requirement is a scheme name,
// so there is never an extension bag.
func (sr SecurityRequirement) Extensions() map[string]any { return nil }

// ToRaw implements Node. A scheme listed with null scopes is emitted as null.
func (sr SecurityRequirement) ToRaw() any {
	if sr == nil {
		return nil
	}
	out := rawdoc.NewMap()
	for _, name := range sortedKeys(sr) {
		scopes := sr[name]
		if scopes == nil {
			out.Set(name, nil)
			continue
		}
		list := make([]any, len(scopes))
		for i, s := range scopes {
			list[i] = s
		}
		out.Set(name, list)
	}
	return out
}
