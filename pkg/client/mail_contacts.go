package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// ContactSpec shapes a CreateContact request:
//
//	<cn l="7">
//	  <a n="lastName">MARTIN</a>
//	  <a n="firstName">Pierre</a>
//	  <a n="email">pmartin@example.com</a>
//	</cn>
type ContactSpec struct {
	// Attrs needs at least one entry.
	Attrs map[string]interface{}

	// Members holds group member dicts ({type, value}), making the
	// contact a group.
	Members []soap.Params

	// FolderID defaults server-side to "7", the Contacts folder.
	FolderID string

	Tags []string
}

func (spec ContactSpec) params() soap.Params {
	cn := soap.Params{"a": zobjects.AttrList(spec.Attrs)}
	if spec.FolderID != "" {
		cn["l"] = spec.FolderID
	}
	if len(spec.Tags) > 0 {
		cn["tn"] = commaList(spec.Tags)
	}
	if len(spec.Members) > 0 {
		members := make([]interface{}, 0, len(spec.Members))
		for _, m := range spec.Members {
			members = append(members, m)
		}
		cn["m"] = members
	}
	return cn
}

// CreateContact creates an address book entry.
func (c *MailClient) CreateContact(spec ContactSpec) (*zobjects.Contact, error) {
	resp, err := c.RequestSingle("CreateContact", soap.Params{"cn": spec.params()})
	if err != nil {
		return nil, err
	}
	return zobjects.ContactFromDict(resp)
}

// CreateContactGroup creates a contact group from its members.
func (c *MailClient) CreateContactGroup(spec ContactSpec) (*zobjects.Contact, error) {
	attrs := make(map[string]interface{}, len(spec.Attrs)+1)
	for k, v := range spec.Attrs {
		attrs[k] = v
	}
	attrs["type"] = "group"
	spec.Attrs = attrs
	return c.CreateContact(spec)
}

// GetContacts fetches contacts of the logged-in user, all of them when
// ids is empty.
func (c *MailClient) GetContacts(ids ...string) ([]*zobjects.Contact, error) {
	params := soap.Params{}
	if len(ids) > 0 {
		params["cn"] = soap.Params{"id": commaList(ids)}
	}
	dicts, err := c.RequestList("GetContacts", params)
	if err != nil {
		return nil, err
	}
	contacts := make([]*zobjects.Contact, 0, len(dicts))
	for _, d := range dicts {
		contact, err := zobjects.ContactFromDict(d)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

// ModifyContact updates attributes, members or tags of a contact and
// returns its new state. Member dicts carry an op (+|-|reset).
func (c *MailClient) ModifyContact(contactID string, spec ContactSpec) (*zobjects.Contact, error) {
	cn := soap.Params{"id": contactID}
	if len(spec.Attrs) > 0 {
		cn["a"] = zobjects.AttrList(spec.Attrs)
	}
	if len(spec.Tags) > 0 {
		cn["tn"] = commaList(spec.Tags)
	}
	if len(spec.Members) > 0 {
		members := make([]interface{}, 0, len(spec.Members))
		for _, m := range spec.Members {
			members = append(members, m)
		}
		cn["m"] = members
	}
	resp, err := c.RequestSingle("ModifyContact", soap.Params{"cn": cn})
	if err != nil {
		return nil, err
	}
	return zobjects.ContactFromDict(resp)
}

// DeleteContacts deletes contacts by id.
func (c *MailClient) DeleteContacts(ids []string) error {
	_, err := c.Request("ContactAction", soap.Params{
		"action": soap.Params{"op": "delete", "id": commaList(ids)},
	})
	return err
}
