package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

func (c *AdminClient) distributionListID(dl *zobjects.DistributionList) (string, error) {
	if zobjects.IsZimbraID(dl.ID) {
		return dl.ID, nil
	}
	fetched, err := c.GetDistributionList(dl)
	if err != nil {
		return "", err
	}
	return fetched.ID, nil
}

// GetAllDistributionLists lists distribution lists, optionally scoped
// to one domain (nil for all).
func (c *AdminClient) GetAllDistributionLists(domain *zobjects.Domain) ([]*zobjects.DistributionList, error) {
	selectors := soap.Params{}
	if domain != nil {
		sel, err := domain.ToSelector()
		if err != nil {
			return nil, err
		}
		selectors["domain"] = sel
	}
	dicts, err := c.RequestList("GetAllDistributionLists", selectors)
	if err != nil {
		return nil, err
	}
	lists := make([]*zobjects.DistributionList, 0, len(dicts))
	for _, d := range dicts {
		dl, err := zobjects.DistributionListFromDict(d)
		if err != nil {
			return nil, err
		}
		lists = append(lists, dl)
	}
	return lists, nil
}

// GetDistributionList fetches a list, members included.
func (c *AdminClient) GetDistributionList(dl *zobjects.DistributionList) (*zobjects.DistributionList, error) {
	selector, err := dl.ToSelector()
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("GetDistributionList", soap.Params{"dl": selector})
	if err != nil {
		return nil, err
	}
	return zobjects.DistributionListFromDict(resp)
}

// CreateDistributionList creates a list by name; dynamic lists compute
// their membership from an LDAP query instead of a member roster.
func (c *AdminClient) CreateDistributionList(name string, dynamic bool) (*zobjects.DistributionList, error) {
	dyn := "0"
	if dynamic {
		dyn = "1"
	}
	resp, err := c.RequestSingle("CreateDistributionList", soap.Params{
		"name":    name,
		"dynamic": dyn,
	})
	if err != nil {
		return nil, err
	}
	return zobjects.DistributionListFromDict(resp)
}

// ModifyDistributionList sets attributes on a list.
func (c *AdminClient) ModifyDistributionList(dl *zobjects.DistributionList, attrs map[string]interface{}) error {
	id, err := c.distributionListID(dl)
	if err != nil {
		return err
	}
	_, err = c.Request("ModifyDistributionList", soap.Params{
		"id": id,
		"a":  zobjects.AttrList(attrs),
	})
	return err
}

// RenameDistributionList changes the address of a list.
func (c *AdminClient) RenameDistributionList(dl *zobjects.DistributionList, newName string) (*zobjects.DistributionList, error) {
	id, err := c.distributionListID(dl)
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("RenameDistributionList", soap.Params{
		"id":      id,
		"newName": newName,
	})
	if err != nil {
		return nil, err
	}
	return zobjects.DistributionListFromDict(resp)
}

// DeleteDistributionList deletes a list.
func (c *AdminClient) DeleteDistributionList(dl *zobjects.DistributionList) error {
	id, err := c.distributionListID(dl)
	if err != nil {
		return err
	}
	_, err = c.Request("DeleteDistributionList", soap.Params{"id": id})
	return err
}

// AddDistributionListMembers adds email addresses to a list roster.
func (c *AdminClient) AddDistributionListMembers(dl *zobjects.DistributionList, members []string) error {
	id, err := c.distributionListID(dl)
	if err != nil {
		return err
	}
	_, err = c.Request("AddDistributionListMember", soap.Params{
		"id":  id,
		"dlm": memberList(members),
	})
	return err
}

// RemoveDistributionListMembers removes email addresses from a list
// roster.
func (c *AdminClient) RemoveDistributionListMembers(dl *zobjects.DistributionList, members []string) error {
	id, err := c.distributionListID(dl)
	if err != nil {
		return err
	}
	_, err = c.Request("RemoveDistributionListMember", soap.Params{
		"id":  id,
		"dlm": memberList(members),
	})
	return err
}

// AddDistributionListAlias adds an email alias to a list.
func (c *AdminClient) AddDistributionListAlias(dl *zobjects.DistributionList, alias string) error {
	id, err := c.distributionListID(dl)
	if err != nil {
		return err
	}
	_, err = c.Request("AddDistributionListAlias", soap.Params{"id": id, "alias": alias})
	return err
}

// RemoveDistributionListAlias removes an email alias from a list.
func (c *AdminClient) RemoveDistributionListAlias(dl *zobjects.DistributionList, alias string) error {
	id, err := c.distributionListID(dl)
	if err != nil {
		return err
	}
	_, err = c.Request("RemoveDistributionListAlias", soap.Params{"id": id, "alias": alias})
	return err
}

func memberList(members []string) []interface{} {
	out := make([]interface{}, 0, len(members))
	for _, m := range members {
		out = append(out, soap.Params{"_content": m})
	}
	return out
}
