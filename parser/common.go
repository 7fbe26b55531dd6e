package parser

// Info provides metadata about the API
// Common across all OAS versions (2.0, 3.0, 3.1, 3.2)
type Info struct {
	Title          string
	Summary        string // OAS 3.1+
	Description    string
	TermsOfService string
	Contact        *Contact
	License        *License
	Version        string
	// Extra captures specification extensions (fields starting with "x-")
	// and any other fields not explicitly defined in the struct
	Extra map[string]any
}

func buildInfo(d *decoder, raw any) (*Info, error) {
	o, err := d.object(KindInfo, raw)
	if err != nil {
		return nil, err
	}
	info := &Info{
		Title:          o.str("title"),
		Summary:        o.str("summary"),
		Description:    o.str("description"),
		TermsOfService: o.str("termsOfService"),
		Version:        o.str("version"),
	}
	info.Contact = child(o, "contact", buildContact)
	info.License = child(o, "license", buildLicense)
	info.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return info, nil
}

// Kind implements Node.
func (i *Info) Kind() Kind { return KindInfo }

// Extensions implements Node.
func (i *Info) Extensions() map[string]any {
	if i == nil {
		return nil
	}
	return i.Extra
}

// ToRaw implements Node.
func (i *Info) ToRaw() any {
	if i == nil {
		return nil
	}
	e := newEmitter()
	e.str("title", i.Title)
	e.str("summary", i.Summary)
	e.str("description", i.Description)
	e.str("termsOfService", i.TermsOfService)
	e.node("contact", i.Contact)
	e.node("license", i.License)
	e.str("version", i.Version)
	e.extra(i.Extra)
	return e.result()
}

// Contact information for the exposed API
type Contact struct {
	Name  string
	URL   string
	Email string
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any
}

func buildContact(d *decoder, raw any) (*Contact, error) {
	o, err := d.object(KindContact, raw)
	if err != nil {
		return nil, err
	}
	c := &Contact{
		Name:  o.str("name"),
		URL:   o.str("url"),
		Email: o.str("email"),
	}
	c.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return c, nil
}

// Kind implements Node.
func (c *Contact) Kind() Kind { return KindContact }

// Extensions implements Node.
func (c *Contact) Extensions() map[string]any {
	if c == nil {
		return nil
	}
	return c.Extra
}

// ToRaw implements Node.
func (c *Contact) ToRaw() any {
	if c == nil {
		return nil
	}
	e := newEmitter()
	e.str("name", c.Name)
	e.str("url", c.URL)
	e.str("email", c.Email)
	e.extra(c.Extra)
	return e.result()
}

// License information for the exposed API
type License struct {
	Name       string
	Identifier string // OAS 3.1+
	URL        string
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any
}

func buildLicense(d *decoder, raw any) (*License, error) {
	o, err := d.object(KindLicense, raw)
	if err != nil {
		return nil, err
	}
	l := &License{
		Name:       o.str("name"),
		Identifier: o.str("identifier"),
		URL:        o.str("url"),
	}
	l.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return l, nil
}

// Kind implements Node.
func (l *License) Kind() Kind { return KindLicense }

// Extensions implements Node.
func (l *License) Extensions() map[string]any {
	if l == nil {
		return nil
	}
	return l.Extra
}

// ToRaw implements Node.
func (l *License) ToRaw() any {
	if l == nil {
		return nil
	}
	e := newEmitter()
	e.str("name", l.Name)
	e.str("identifier", l.Identifier)
	e.str("url", l.URL)
	e.extra(l.Extra)
	return e.result()
}

// ExternalDocs allows referencing external documentation
type ExternalDocs struct {
	Description string
	URL         string
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any
}

func buildExternalDocs(d *decoder, raw any) (*ExternalDocs, error) {
	o, err := d.object(KindExternalDocs, raw)
	if err != nil {
		return nil, err
	}
	ed := &ExternalDocs{
		Description: o.str("description"),
		URL:         o.str("url"),
	}
	ed.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return ed, nil
}

// Kind implements Node.
func (ed *ExternalDocs) Kind() Kind { return KindExternalDocs }

// Extensions implements Node.
func (ed *ExternalDocs) Extensions() map[string]any {
	if ed == nil {
		return nil
	}
	return ed.Extra
}

// ToRaw implements Node.
func (ed *ExternalDocs) ToRaw() any {
	if ed == nil {
		return nil
	}
	e := newEmitter()
	e.str("description", ed.Description)
	e.str("url", ed.URL)
	e.extra(ed.Extra)
	return e.result()
}

// Tag adds metadata to a single tag used by operations
type Tag struct {
	Name         string
	Description  string
	ExternalDocs *ExternalDocs
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any
}

func buildTag(d *decoder, raw any) (*Tag, error) {
	o, err := d.object(KindTag, raw)
	if err != nil {
		return nil, err
	}
	t := &Tag{
		Name:        o.str("name"),
		Description: o.str("description"),
	}
	t.ExternalDocs = child(o, "externalDocs", buildExternalDocs)
	t.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return t, nil
}

// Kind implements Node.
func (t *Tag) Kind() Kind { return KindTag }

// Extensions implements Node.
func (t *Tag) Extensions() map[string]any {
	if t == nil {
		return nil
	}
	return t.Extra
}

// ToRaw implements Node.
func (t *Tag) ToRaw() any {
	if t == nil {
		return nil
	}
	e := newEmitter()
	e.str("name", t.Name)
	e.str("description", t.Description)
	e.node("externalDocs", t.ExternalDocs)
	e.extra(t.Extra)
	return e.result()
}

// Server represents a Server object (OAS 3.0+)
type Server struct {
	URL         string
	Description string
	Variables   map[string]*ServerVariable
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any
}

func buildServer(d *decoder, raw any) (*Server, error) {
	o, err := d.object(KindServer, raw)
	if err != nil {
		return nil, err
	}
	s := &Server{
		URL:         o.str("url"),
		Description: o.str("description"),
	}
	s.Variables = childMap(o, "variables", buildServerVariable)
	s.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return s, nil
}

// Kind implements Node.
func (s *Server) Kind() Kind { return KindServer }

// Extensions implements Node.
func (s *Server) Extensions() map[string]any {
	if s == nil {
		return nil
	}
	return s.Extra
}

// ToRaw implements Node.
func (s *Server) ToRaw() any {
	if s == nil {
		return nil
	}
	e := newEmitter()
	e.str("url", s.URL)
	e.str("description", s.Description)
	emitMap(e, "variables", s.Variables)
	e.extra(s.Extra)
	return e.result()
}

// ServerVariable represents a Server Variable object (OAS 3.0+)
type ServerVariable struct {
	Enum        []string
	Default     string
	Description string
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any
}

func buildServerVariable(d *decoder, raw any) (*ServerVariable, error) {
	o, err := d.object(KindServerVariable, raw)
	if err != nil {
		return nil, err
	}
	v := &ServerVariable{
		Enum:        o.strList("enum"),
		Default:     o.str("default"),
		Description: o.str("description"),
	}
	v.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return v, nil
}

// Kind implements Node.
func (v *ServerVariable) Kind() Kind { return KindServerVariable }

// Extensions implements Node.
func (v *ServerVariable) Extensions() map[string]any {
	if v == nil {
		return nil
	}
	return v.Extra
}

// ToRaw implements Node.
func (v *ServerVariable) ToRaw() any {
	if v == nil {
		return nil
	}
	e := newEmitter()
	e.strList("enum", v.Enum)
	e.str("default", v.Default)
	e.str("description", v.Description)
	e.extra(v.Extra)
	return e.result()
}
