package client

import (
	"strings"

	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// domainID resolves a domain selector to its Zimbra ID, fetching the
// domain when only a name (or other selector) is known.
func (c *AdminClient) domainID(domain *zobjects.Domain) (string, error) {
	if zobjects.IsZimbraID(domain.ID) {
		return domain.ID, nil
	}
	fetched, err := c.GetDomain(domain)
	if err != nil {
		return "", err
	}
	return fetched.ID, nil
}

// GetAllDomains fetches the details of every domain of the install.
func (c *AdminClient) GetAllDomains() ([]*zobjects.Domain, error) {
	dicts, err := c.RequestList("GetAllDomains", soap.Params{})
	if err != nil {
		return nil, err
	}
	domains := make([]*zobjects.Domain, 0, len(dicts))
	for _, d := range dicts {
		domain, err := zobjects.DomainFromDict(d)
		if err != nil {
			return nil, err
		}
		domains = append(domains, domain)
	}
	return domains, nil
}

// GetDomain fetches a domain with all its attributes.
func (c *AdminClient) GetDomain(domain *zobjects.Domain) (*zobjects.Domain, error) {
	selector, err := domain.ToSelector()
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("GetDomain", soap.Params{"domain": selector})
	if err != nil {
		return nil, err
	}
	return zobjects.DomainFromDict(resp)
}

// CreateDomain creates a new domain by name.
func (c *AdminClient) CreateDomain(name string) (*zobjects.Domain, error) {
	resp, err := c.RequestSingle("CreateDomain", soap.Params{"name": name})
	if err != nil {
		return nil, err
	}
	return zobjects.DomainFromDict(resp)
}

// ModifyDomain sets attributes on a domain and returns its new state.
func (c *AdminClient) ModifyDomain(domain *zobjects.Domain, attrs map[string]interface{}) (*zobjects.Domain, error) {
	id, err := c.domainID(domain)
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("ModifyDomain", soap.Params{
		"id": id,
		"a":  zobjects.AttrList(attrs),
	})
	if err != nil {
		return nil, err
	}
	return zobjects.DomainFromDict(resp)
}

// DeleteDomain deletes a domain; the operation fails server-side while
// the domain still holds accounts or lists.
func (c *AdminClient) DeleteDomain(domain *zobjects.Domain) error {
	id, err := c.domainID(domain)
	if err != nil {
		return err
	}
	_, err = c.Request("DeleteDomain", soap.Params{"id": id})
	return err
}

// DeleteDomainForced empties a domain (accounts, aliases, calendar
// resources, distribution lists) before deleting it.
func (c *AdminClient) DeleteDomainForced(domain *zobjects.Domain) error {
	// all accounts, because an alias may target an account of
	// another domain
	accounts, err := c.GetAllAccounts(nil, nil, AccountFilters{
		IncludeSystem:  true,
		IncludeAdmin:   true,
		IncludeVirtual: true,
	})
	if err != nil {
		return err
	}
	for _, a := range accounts {
		for _, alias := range a.PropertyAsList("zimbraMailAlias") {
			addr := soap.Content(alias)
			if aliasDomain(addr) == domain.Name {
				if err := c.RemoveAccountAlias(a, addr); err != nil {
					return err
				}
			}
		}
		if aliasDomain(a.Name) == domain.Name {
			if err := c.DeleteAccount(a); err != nil {
				return err
			}
		}
	}

	resources, err := c.GetAllCalendarResources(domain, nil)
	if err != nil {
		return err
	}
	for _, r := range resources {
		if err := c.DeleteCalendarResource(r); err != nil {
			return err
		}
	}

	lists, err := c.GetAllDistributionLists(domain)
	if err != nil {
		return err
	}
	for _, dl := range lists {
		if err := c.DeleteDistributionList(dl); err != nil {
			return err
		}
	}

	id, err := c.domainID(domain)
	if err != nil {
		return err
	}
	_, err = c.Request("DeleteDomain", soap.Params{"id": id})
	return err
}

func aliasDomain(addr string) string {
	_, domain, _ := strings.Cut(addr, "@")
	return domain
}
