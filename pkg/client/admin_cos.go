package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// COSCount is one line of the CountAccount report: how many accounts
// use a given class of service.
type COSCount struct {
	ID    string
	Name  string
	Count int
}

// GetAllCOS fetches every class of service of the install.
func (c *AdminClient) GetAllCOS() ([]*zobjects.COS, error) {
	dicts, err := c.RequestList("GetAllCos", soap.Params{})
	if err != nil {
		return nil, err
	}
	coses := make([]*zobjects.COS, 0, len(dicts))
	for _, d := range dicts {
		cos, err := zobjects.COSFromDict(d)
		if err != nil {
			return nil, err
		}
		coses = append(coses, cos)
	}
	return coses, nil
}

// GetCOS fetches one class of service with all its attributes.
func (c *AdminClient) GetCOS(cos *zobjects.COS) (*zobjects.COS, error) {
	selector, err := cos.ToSelector()
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("GetCos", soap.Params{"cos": selector})
	if err != nil {
		return nil, err
	}
	return zobjects.COSFromDict(resp)
}

// CountAccounts counts accounts grouped by class of service, optionally
// limited to one domain (nil for the whole install).
func (c *AdminClient) CountAccounts(domain *zobjects.Domain) ([]COSCount, error) {
	params := soap.Params{}
	if domain != nil {
		sel, err := domain.ToSelector()
		if err != nil {
			return nil, err
		}
		params["domain"] = sel
	}
	dicts, err := c.RequestList("CountAccount", params)
	if err != nil {
		return nil, err
	}
	counts := make([]COSCount, 0, len(dicts))
	for _, d := range dicts {
		count, _ := soap.AutoType(soap.Content(d)).(int)
		id, _ := d["id"].(string)
		name, _ := d["name"].(string)
		counts = append(counts, COSCount{ID: id, Name: name, Count: count})
	}
	return counts, nil
}
