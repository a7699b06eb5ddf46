package zobjects

import (
	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

// Identity is a sending identity of an account. Its properties come as
// <a name="zimbraPref...">...</a>, hence the "name" attribute key.
type Identity struct {
	Name string `mapstructure:"name"`
	ID   string `mapstructure:"id"`

	zobject
}

func (i *Identity) TagName() string { return "identity" }

func (i *Identity) selectorAttrs() []selectorAttr {
	return []selectorAttr{{"name", i.Name}, {"id", i.ID}}
}

func (i *Identity) entityID() string { return i.ID }

// IsDefault tells whether this is the default identity; the default
// identity name cannot be changed.
func (i *Identity) IsDefault() bool { return i.Name == "DEFAULT" }

// ToSelector uses the bare shape <identity id="1234"/> rather than the
// generic {by, _content} pair.
func (i *Identity) ToSelector() (soap.Params, error) {
	for _, attr := range i.selectorAttrs() {
		if attr.value != "" {
			return soap.Params{attr.name: attr.value}, nil
		}
	}
	return nil, selectorError(i)
}

func IdentityFromDict(d soap.Params) (*Identity, error) {
	i := &Identity{}
	if err := decodeEntity(d, i, "name"); err != nil {
		return nil, err
	}
	return i, nil
}

// Signature is a mail signature with a text/plain or text/html body.
type Signature struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`

	Content     string `mapstructure:"-"`
	ContentType string `mapstructure:"-"`

	zobject
}

func (s *Signature) TagName() string { return "signature" }

func (s *Signature) selectorAttrs() []selectorAttr {
	return []selectorAttr{{"id", s.ID}, {"name", s.Name}}
}

func (s *Signature) entityID() string { return s.ID }

// ToSelector uses the bare shape <signature id="1234"/> rather than the
// generic {by, _content} pair.
func (s *Signature) ToSelector() (soap.Params, error) {
	for _, attr := range s.selectorAttrs() {
		if attr.value != "" {
			return soap.Params{attr.name: attr.value}, nil
		}
	}
	return nil, selectorError(s)
}

// SetContent sets the body and its MIME type ("text/html" or
// "text/plain").
func (s *Signature) SetContent(content, contentType string) {
	s.Content = content
	s.ContentType = contentType
}

func (s *Signature) HasContent() bool {
	return s.Content != "" && s.ContentType != ""
}

// ToCreator returns the dict for a CreateSignature (or, with forModify,
// a ModifySignature) request:
//
//	<signature name="unittest">
//	  <content type="text/plain">My signature content</content>
//	</signature>
//
// Setting one content type flushes the other, so no stale body is left
// behind on the server.
func (s *Signature) ToCreator(forModify bool) (soap.Params, error) {
	signature := soap.Params{}

	if forModify {
		if s.ID == "" {
			return nil, errors.New("a modify request should specify an ID")
		}
		signature["id"] = s.ID
		if s.Name != "" {
			signature["name"] = s.Name
		}
	} else {
		signature["name"] = s.Name
	}

	if s.HasContent() {
		plain, html := "", s.Content
		if s.ContentType == "text/plain" {
			plain, html = s.Content, ""
		}
		signature["content"] = []interface{}{
			soap.Params{"type": "text/plain", "_content": plain},
			soap.Params{"type": "text/html", "_content": html},
		}
	} else if !forModify {
		return nil, errors.New("too little information on signature, call SetContent first")
	}

	return signature, nil
}

func SignatureFromDict(d soap.Params) (*Signature, error) {
	s := &Signature{}
	if err := decodeEntity(d, s, "n"); err != nil {
		return nil, err
	}

	// several content tags may coexist (one txt, one html), take the
	// last non-empty one, like the historical behavior
	for _, c := range soap.AsList(d["content"]) {
		content, ok := c.(soap.Params)
		if !ok {
			continue
		}
		body := soap.Content(content)
		if body == "" && s.Content != "" {
			continue
		}
		s.Content = body
		s.ContentType, _ = content["type"].(string)
	}
	delete(s.extra, "content")
	return s, nil
}
