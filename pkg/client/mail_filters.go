package client

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// FilterWay selects the incoming or outgoing rule set.
type FilterWay string

const (
	IncomingFilters FilterWay = "in"
	OutgoingFilters FilterWay = "out"
)

func (w FilterWay) requestName(op string) string {
	if w == OutgoingFilters {
		return op + "OutgoingFilterRules"
	}
	return op + "FilterRules"
}

// GetFilterRules fetches the rule set of the logged-in user, ordered as
// the server evaluates them.
func (c *MailClient) GetFilterRules(way FilterWay) ([]*zobjects.FilterRule, error) {
	resp, err := c.Request(way.requestName("Get"), soap.Params{})
	if err != nil {
		return nil, err
	}
	container, ok := resp["filterRules"].(soap.Params)
	if !ok {
		return nil, nil
	}
	var rules []*zobjects.FilterRule
	for _, d := range soap.AsList(container["filterRule"]) {
		dict, ok := d.(soap.Params)
		if !ok {
			continue
		}
		rule, err := zobjects.FilterRuleFromDict(dict)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// GetFilterRule retrieves one rule by name, (nil, nil) when absent.
func (c *MailClient) GetFilterRule(name string, way FilterWay) (*zobjects.FilterRule, error) {
	rules, err := c.GetFilterRules(way)
	if err != nil {
		return nil, err
	}
	for _, rule := range rules {
		if rule.Name == name {
			return rule, nil
		}
	}
	return nil, nil
}

// AddFilterRule prepends a rule to the rule set and returns the new
// set. condition is "allof" or "anyof"; tests and actions take the
// filterTests/filterActions wire shapes. Duplicated names are refused.
func (c *MailClient) AddFilterRule(name, condition string, tests, actions soap.Params, active bool, way FilterWay) ([]*zobjects.FilterRule, error) {
	activeFlag := "0"
	if active {
		activeFlag = "1"
	}
	withCondition := soap.Params{"condition": condition}
	for k, v := range tests {
		withCondition[k] = v
	}
	newRule, err := zobjects.FilterRuleFromDict(soap.Params{
		"name":          name,
		"active":        activeFlag,
		"filterTests":   withCondition,
		"filterActions": actions,
	})
	if err != nil {
		return nil, err
	}

	prev, err := c.GetFilterRules(way)
	if err != nil {
		return nil, err
	}
	for _, rule := range prev {
		if rule.Name == name {
			return nil, errors.Errorf("filter %s already exists", name)
		}
	}

	rules := append([]*zobjects.FilterRule{newRule}, prev...)
	if err := c.setFilterRules(rules, way); err != nil {
		return nil, err
	}
	return rules, nil
}

// DeleteFilterRule removes a rule by name and returns the remaining
// set; deleting an absent rule is a no-op.
func (c *MailClient) DeleteFilterRule(name string, way FilterWay) ([]*zobjects.FilterRule, error) {
	rules, err := c.GetFilterRules(way)
	if err != nil {
		return nil, err
	}
	kept := make([]*zobjects.FilterRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Name != name {
			kept = append(kept, rule)
		}
	}
	if len(kept) != len(rules) {
		if err := c.setFilterRules(kept, way); err != nil {
			return nil, err
		}
	}
	return kept, nil
}

// ApplyFilterRule runs one rule against existing messages matching
// query and returns the impacted message ids.
func (c *MailClient) ApplyFilterRule(name, query string, way FilterWay) ([]string, error) {
	if query == "" {
		query = "in:inbox"
	}
	resp, err := c.Request(way.requestName("Apply"), soap.Params{
		"filterRules": soap.Params{
			"filterRule": soap.Params{"name": name},
		},
		"query": soap.Params{"_content": query},
	})
	if err != nil {
		return nil, err
	}
	m, ok := resp["m"].(soap.Params)
	if !ok {
		return nil, nil
	}
	ids, _ := m["ids"].(string)
	if ids == "" {
		return nil, nil
	}
	return strings.Split(ids, ","), nil
}

// setFilterRules re-sends the whole rule set, the only write shape the
// filter API offers. Each rule goes out as its raw wire dict, so
// conditions and actions survive untouched.
func (c *MailClient) setFilterRules(rules []*zobjects.FilterRule, way FilterWay) error {
	dicts := make([]interface{}, 0, len(rules))
	for _, rule := range rules {
		dicts = append(dicts, rule.FullData())
	}
	_, err := c.Request(way.requestName("Modify"), soap.Params{
		"filterRules": soap.Params{"filterRule": dicts},
	})
	return err
}
