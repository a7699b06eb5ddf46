package client

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// CreateSignature creates a signature for the logged-in user.
// contentType is "text/html" or "text/plain".
func (c *AccountClient) CreateSignature(name, content, contentType string) (*zobjects.Signature, error) {
	s := &zobjects.Signature{Name: name}
	s.SetContent(content, contentType)
	creator, err := s.ToCreator(false)
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("CreateSignature", soap.Params{"signature": creator})
	if err != nil {
		return nil, err
	}
	return zobjects.SignatureFromDict(resp)
}

// GetSignatures fetches all signatures of the logged-in user.
func (c *AccountClient) GetSignatures() ([]*zobjects.Signature, error) {
	dicts, err := c.RequestList("GetSignatures", soap.Params{})
	if err != nil {
		return nil, err
	}
	signatures := make([]*zobjects.Signature, 0, len(dicts))
	for _, d := range dicts {
		s, err := zobjects.SignatureFromDict(d)
		if err != nil {
			return nil, err
		}
		signatures = append(signatures, s)
	}
	return signatures, nil
}

// GetSignature retrieves one signature by id or name; the name match is
// case-insensitive. GetSignatures does not filter server-side, so the
// filtering happens here. A missing signature is (nil, nil).
func (c *AccountClient) GetSignature(signature *zobjects.Signature) (*zobjects.Signature, error) {
	if signature.ID == "" && signature.Name == "" {
		return nil, errors.New("should mention one of id, name")
	}
	signatures, err := c.GetSignatures()
	if err != nil {
		return nil, err
	}
	for _, s := range signatures {
		if signature.ID != "" {
			if s.ID == signature.ID {
				return s, nil
			}
		} else if strings.EqualFold(s.Name, signature.Name) {
			return s, nil
		}
	}
	return nil, nil
}

// ModifySignature updates content, content type or name of an existing
// signature; the id field is mandatory and unset attributes are left
// untouched.
func (c *AccountClient) ModifySignature(signature *zobjects.Signature) error {
	dic, err := signature.ToCreator(true)
	if err != nil {
		return err
	}
	_, err = c.Request("ModifySignature", soap.Params{"signature": dic})
	return err
}

// DeleteSignature deletes a signature by id or name.
func (c *AccountClient) DeleteSignature(signature *zobjects.Signature) error {
	selector, err := signature.ToSelector()
	if err != nil {
		return err
	}
	_, err = c.Request("DeleteSignature", soap.Params{"signature": selector})
	return err
}
