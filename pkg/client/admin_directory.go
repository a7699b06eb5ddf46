package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// DirectorySearch shapes a SearchDirectory request. Query is an
// LDAP-style filter string (RFC 2254); Types is a comma-separated list
// of accounts|distributionlists|aliases|resources|domains|coses,
// accounts when empty.
type DirectorySearch struct {
	Query         string
	Limit         int
	Offset        int
	Domain        string
	Types         string
	SortBy        string
	SortAscending bool
	ApplyCOS      bool
	ApplyConfig   bool
	Attrs         string
}

// DirectoryResult buckets the SearchDirectory hits by entity type.
type DirectoryResult struct {
	More      bool
	Total     int
	Accounts  []*zobjects.Account
	Domains   []*zobjects.Domain
	Lists     []*zobjects.DistributionList
	COSes     []*zobjects.COS
	Resources []*zobjects.CalendarResource
}

// SearchDirectory queries the provisioning directory across entity
// types.
func (c *AdminClient) SearchDirectory(search DirectorySearch) (*DirectoryResult, error) {
	params := soap.Params{"query": search.Query}
	if search.Limit > 0 {
		params["limit"] = search.Limit
	}
	if search.Offset > 0 {
		params["offset"] = search.Offset
	}
	if search.Domain != "" {
		params["domain"] = search.Domain
	}
	if search.Types != "" {
		params["types"] = search.Types
	}
	if search.SortBy != "" {
		params["sortBy"] = search.SortBy
	}
	if search.SortAscending {
		params["sortAscending"] = "1"
	}
	if search.ApplyCOS {
		params["applyCos"] = "1"
	}
	if search.ApplyConfig {
		params["applyConfig"] = "1"
	}
	if search.Attrs != "" {
		params["attrs"] = search.Attrs
	}

	resp, err := c.Request("SearchDirectory", params)
	if err != nil {
		return nil, err
	}

	result := &DirectoryResult{}
	result.More = soap.Content(resp["more"]) == "1"
	result.Total, _ = soap.AutoType(resp["searchTotal"]).(int)

	for _, d := range dictsOf(resp["account"]) {
		a, err := zobjects.AccountFromDict(d)
		if err != nil {
			return nil, err
		}
		result.Accounts = append(result.Accounts, a)
	}
	for _, d := range dictsOf(resp["domain"]) {
		dom, err := zobjects.DomainFromDict(d)
		if err != nil {
			return nil, err
		}
		result.Domains = append(result.Domains, dom)
	}
	for _, d := range dictsOf(resp["dl"]) {
		dl, err := zobjects.DistributionListFromDict(d)
		if err != nil {
			return nil, err
		}
		result.Lists = append(result.Lists, dl)
	}
	for _, d := range dictsOf(resp["cos"]) {
		cos, err := zobjects.COSFromDict(d)
		if err != nil {
			return nil, err
		}
		result.COSes = append(result.COSes, cos)
	}
	for _, d := range dictsOf(resp["calresource"]) {
		r, err := zobjects.CalendarResourceFromDict(d)
		if err != nil {
			return nil, err
		}
		result.Resources = append(result.Resources, r)
	}
	return result, nil
}

// GetQuotaUsage reports per-account quota usage, optionally limited to
// one domain and paginated through the usage selector fields.
func (c *AdminClient) GetQuotaUsage(usage *zobjects.QuotaUsage) ([]soap.Params, error) {
	params := soap.Params{}
	for _, field := range []struct{ name, value string }{
		{"domain", usage.Domain},
		{"allServers", usage.AllServers},
		{"limit", usage.Limit},
		{"offset", usage.Offset},
		{"sortBy", usage.SortBy},
		{"sortAscending", usage.SortAscending},
		{"refresh", usage.Refresh},
	} {
		if field.value != "" {
			params[field.name] = field.value
		}
	}
	return c.RequestList("GetQuotaUsage", params)
}

func dictsOf(v interface{}) []soap.Params {
	var out []soap.Params
	for _, e := range soap.AsList(v) {
		if m, ok := e.(soap.Params); ok {
			out = append(out, m)
		}
	}
	return out
}
