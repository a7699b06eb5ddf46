package client

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

// GetAllConfig fetches the whole global server configuration as a
// name→value map, names repeated on the wire coalescing into a list.
func (c *AdminClient) GetAllConfig() (map[string]interface{}, error) {
	dicts, err := c.RequestList("GetAllConfig", soap.Params{})
	if err != nil {
		return nil, err
	}
	config := make(map[string]interface{}, len(dicts))
	for _, attr := range dicts {
		name, _ := attr["n"].(string)
		if name == "" {
			continue
		}
		value := soap.Content(attr)
		if prev, ok := config[name]; ok {
			if list, ok := prev.([]interface{}); ok {
				config[name] = append(list, value)
			} else {
				config[name] = []interface{}{prev, value}
			}
		} else {
			config[name] = value
		}
	}
	return config, nil
}

// GetConfig fetches one global configuration attribute; a multi-valued
// attribute comes back as a []interface{}. Unknown names are an error.
func (c *AdminClient) GetConfig(attr string) (interface{}, error) {
	dicts, err := c.RequestList("GetConfig", soap.Params{
		"a": soap.Params{"n": attr},
	})
	if err != nil {
		return nil, err
	}
	switch len(dicts) {
	case 0:
		return nil, errors.Errorf("config attribute %q not found", attr)
	case 1:
		return soap.Content(dicts[0]), nil
	default:
		values := make([]interface{}, 0, len(dicts))
		for _, d := range dicts {
			values = append(values, soap.Content(d))
		}
		return values, nil
	}
}

// ModifyConfig sets one global configuration attribute and returns its
// new value. The "+name"/"-name" forms add to or remove from a
// multi-valued attribute.
func (c *AdminClient) ModifyConfig(attr string, value interface{}) (interface{}, error) {
	_, err := c.Request("ModifyConfig", soap.Params{
		"a": soap.Params{"n": attr, "_content": soap.AutoUntype(value)},
	})
	if err != nil {
		return nil, err
	}
	return c.GetConfig(strings.TrimLeft(attr, "+-"))
}
