package client

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

// ShareQuery scopes a GetShareInfo request. All fields are optional;
// OwnerBy defaults to "name" when an owner is given.
type ShareQuery struct {
	GranteeType string
	GranteeID   string
	GranteeName string
	Owner       string
	OwnerBy     string
}

// GetShareInfo lists the shares visible to the logged-in user. An owner
// that never logged in has no mailbox yet; that server fault maps to an
// empty result rather than an error.
func (c *AccountClient) GetShareInfo(query ShareQuery) ([]soap.Params, error) {
	params := soap.Params{}

	grantee := soap.Params{}
	if query.GranteeType != "" {
		grantee["type"] = query.GranteeType
	}
	if query.GranteeID != "" {
		grantee["id"] = query.GranteeID
	}
	if query.GranteeName != "" {
		grantee["name"] = query.GranteeName
	}
	if len(grantee) > 0 {
		params["grantee"] = grantee
	}
	if query.Owner != "" {
		by := query.OwnerBy
		if by == "" {
			by = "name"
		}
		params["owner"] = soap.Params{"by": by, "_content": query.Owner}
	}

	shares, err := c.RequestList("GetShareInfo", params)
	if err != nil {
		var serr *soap.ServerError
		if errors.As(err, &serr) && strings.Contains(serr.Reason, "mailbox not found for account") {
			return nil, nil
		}
		return nil, err
	}
	return shares, nil
}
