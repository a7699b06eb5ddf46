package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
)

// GetPreferences fetches all preferences of the logged-in user as a
// name→value map, values coerced to bool/int/float where the wire
// literal allows it.
func (c *AccountClient) GetPreferences() (map[string]interface{}, error) {
	dicts, err := c.RequestList("GetPrefs", soap.Params{})
	if err != nil {
		return nil, err
	}
	prefs := make(map[string]interface{}, len(dicts))
	for _, pref := range dicts {
		name, _ := pref["name"].(string)
		if name == "" {
			continue
		}
		prefs[name] = soap.AutoType(soap.Content(pref))
	}
	return prefs, nil
}

// GetPreference fetches a single named preference, coerced like
// GetPreferences values.
func (c *AccountClient) GetPreference(name string) (interface{}, error) {
	resp, err := c.RequestSingle("GetPrefs", soap.Params{
		"pref": soap.Params{"name": name},
	})
	if err != nil {
		return nil, err
	}
	return soap.AutoType(soap.Content(resp)), nil
}
