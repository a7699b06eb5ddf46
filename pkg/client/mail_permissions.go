package client

import (
	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

// Permission shapes an account-level grant ("sendAs",
// "sendOnBehalfOf"...) for one grantee.
type Permission struct {
	Right       string
	GranteeType string
	ZimbraID    string
	GranteeName string
}

func (p Permission) ace() (soap.Params, error) {
	gt := p.GranteeType
	if gt == "" {
		gt = "usr"
	}
	ace := soap.Params{"gt": gt, "right": p.Right}
	switch {
	case p.GranteeName != "":
		ace["d"] = p.GranteeName
	case p.ZimbraID != "":
		ace["zid"] = p.ZimbraID
	default:
		return nil, errors.New("missing grantee zimbra id or name")
	}
	return ace, nil
}

// GetPermissions lists the aces granted on the account, for the given
// rights or all of them when rights is empty.
func (c *MailClient) GetPermissions(rights []string) ([]soap.Params, error) {
	if len(rights) == 0 {
		resp, err := c.Request("GetPermission", soap.Params{})
		if err != nil {
			return nil, err
		}
		return dictsOf(resp["ace"]), nil
	}

	var aces []soap.Params
	for _, right := range rights {
		resp, err := c.Request("GetPermission", soap.Params{
			"ace": soap.Params{"right": soap.Params{"_content": right}},
		})
		if err != nil {
			return nil, err
		}
		aces = append(aces, dictsOf(resp["ace"])...)
	}
	return aces, nil
}

// GrantPermission grants an account-level right to a grantee.
func (c *MailClient) GrantPermission(perm Permission) error {
	ace, err := perm.ace()
	if err != nil {
		return err
	}
	_, err = c.Request("GrantPermission", soap.Params{"ace": ace})
	return err
}

// RevokePermission revokes an account-level right from a grantee.
func (c *MailClient) RevokePermission(perm Permission) error {
	ace, err := perm.ace()
	if err != nil {
		return err
	}
	_, err = c.Request("RevokePermission", soap.Params{"ace": ace})
	return err
}
