package client

import (
	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

func (c *AdminClient) calendarResourceID(res *zobjects.CalendarResource) (string, error) {
	if zobjects.IsZimbraID(res.ID) {
		return res.ID, nil
	}
	fetched, err := c.GetCalendarResource(res)
	if err != nil {
		return "", err
	}
	return fetched.ID, nil
}

// GetAllCalendarResources lists calendar resources, optionally scoped
// to one domain and one mailstore server; both may be nil.
func (c *AdminClient) GetAllCalendarResources(domain *zobjects.Domain, server *zobjects.Server) ([]*zobjects.CalendarResource, error) {
	params := soap.Params{}
	if domain != nil {
		sel, err := domain.ToSelector()
		if err != nil {
			return nil, err
		}
		params["domain"] = sel
	}
	if server != nil {
		sel, err := server.ToSelector()
		if err != nil {
			return nil, err
		}
		params["server"] = sel
	}
	dicts, err := c.RequestList("GetAllCalendarResources", params)
	if err != nil {
		return nil, err
	}
	resources := make([]*zobjects.CalendarResource, 0, len(dicts))
	for _, d := range dicts {
		r, err := zobjects.CalendarResourceFromDict(d)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, nil
}

// GetCalendarResource fetches a calendar resource with all its
// attributes.
func (c *AdminClient) GetCalendarResource(res *zobjects.CalendarResource) (*zobjects.CalendarResource, error) {
	selector, err := res.ToSelector()
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("GetCalendarResource", soap.Params{"calresource": selector})
	if err != nil {
		return nil, err
	}
	return zobjects.CalendarResourceFromDict(resp)
}

// CreateCalendarResource creates a resource of the given type
// (EquipmentResource or LocationResource) at an email address; password
// may be empty and displayName defaults to the address.
func (c *AdminClient) CreateCalendarResource(name, resType, password string, attrs map[string]interface{}) (*zobjects.CalendarResource, error) {
	if resType != zobjects.EquipmentResource && resType != zobjects.LocationResource {
		return nil, errors.Errorf("resource type must be %q or %q",
			zobjects.EquipmentResource, zobjects.LocationResource)
	}

	merged := make(map[string]interface{}, len(attrs)+2)
	for k, v := range attrs {
		merged[k] = v
	}
	merged["zimbraCalResType"] = resType
	if _, ok := merged["displayName"]; !ok {
		merged["displayName"] = name
	}

	params := soap.Params{"name": name, "a": zobjects.AttrList(merged)}
	if password != "" {
		params["password"] = password
	}
	resp, err := c.RequestSingle("CreateCalendarResource", params)
	if err != nil {
		return nil, err
	}
	return zobjects.CalendarResourceFromDict(resp)
}

// ModifyCalendarResource sets attributes on a calendar resource.
func (c *AdminClient) ModifyCalendarResource(res *zobjects.CalendarResource, attrs map[string]interface{}) (*zobjects.CalendarResource, error) {
	id, err := c.calendarResourceID(res)
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("ModifyCalendarResource", soap.Params{
		"id": id,
		"a":  zobjects.AttrList(attrs),
	})
	if err != nil {
		return nil, err
	}
	return zobjects.CalendarResourceFromDict(resp)
}

// RenameCalendarResource changes the email address of a calendar
// resource.
func (c *AdminClient) RenameCalendarResource(res *zobjects.CalendarResource, newName string) (*zobjects.CalendarResource, error) {
	id, err := c.calendarResourceID(res)
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("RenameCalendarResource", soap.Params{
		"id":      id,
		"newName": newName,
	})
	if err != nil {
		return nil, err
	}
	return zobjects.CalendarResourceFromDict(resp)
}

// DeleteCalendarResource deletes a calendar resource.
func (c *AdminClient) DeleteCalendarResource(res *zobjects.CalendarResource) error {
	id, err := c.calendarResourceID(res)
	if err != nil {
		return err
	}
	_, err = c.Request("DeleteCalendarResource", soap.Params{"id": id})
	return err
}
