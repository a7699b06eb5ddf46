package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// CreateIdentity creates a sending identity for the logged-in user,
// with its zimbraPref* attributes.
func (c *AccountClient) CreateIdentity(name string, attrs map[string]interface{}) (*zobjects.Identity, error) {
	resp, err := c.RequestSingle("CreateIdentity", soap.Params{
		"identity": soap.Params{
			"name": name,
			"a":    identityAttrList(attrs),
		},
	})
	if err != nil {
		return nil, err
	}
	return zobjects.IdentityFromDict(resp)
}

// GetIdentities fetches all identities of the logged-in user.
func (c *AccountClient) GetIdentities() ([]*zobjects.Identity, error) {
	dicts, err := c.RequestList("GetIdentities", soap.Params{})
	if err != nil {
		return nil, err
	}
	identities := make([]*zobjects.Identity, 0, len(dicts))
	for _, d := range dicts {
		i, err := zobjects.IdentityFromDict(d)
		if err != nil {
			return nil, err
		}
		identities = append(identities, i)
	}
	return identities, nil
}

// GetIdentity retrieves one identity by name; GetIdentities does not
// filter server-side. A missing identity is (nil, nil).
func (c *AccountClient) GetIdentity(name string) (*zobjects.Identity, error) {
	identities, err := c.GetIdentities()
	if err != nil {
		return nil, err
	}
	for _, i := range identities {
		if i.Name == name {
			return i, nil
		}
	}
	return nil, nil
}

// ModifyIdentity sets attributes on an identity (or renames it through
// the name attribute) and returns its new state.
func (c *AccountClient) ModifyIdentity(identity *zobjects.Identity, attrs map[string]interface{}) (*zobjects.Identity, error) {
	selector, err := identity.ToSelector()
	if err != nil {
		return nil, err
	}
	params := soap.Params{}
	for k, v := range selector {
		params[k] = v
	}
	params["a"] = identityAttrList(attrs)

	if _, err := c.Request("ModifyIdentity", soap.Params{"identity": params}); err != nil {
		return nil, err
	}
	if identity.Name != "" {
		return c.GetIdentity(identity.Name)
	}
	return identity, nil
}

// DeleteIdentity deletes an identity by name or id.
func (c *AccountClient) DeleteIdentity(identity *zobjects.Identity) error {
	selector, err := identity.ToSelector()
	if err != nil {
		return err
	}
	_, err = c.Request("DeleteIdentity", soap.Params{"identity": selector})
	return err
}

// identityAttrList is attrList with "name" as the attribute key, the
// shape identity requests use instead of <a n="...">.
func identityAttrList(attrs map[string]interface{}) []interface{} {
	out := make([]interface{}, 0, len(attrs))
	for _, a := range zobjects.AttrList(attrs) {
		tag := a.(soap.Params)
		out = append(out, soap.Params{"name": tag["n"], "_content": tag["_content"]})
	}
	return out
}
