package client

import (
	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

// CreateDataSource creates an external mail source (pop3, imap...) and
// the local folder its mail lands in. source maps the source type to
// its attributes, e.g. {"pop3": {"name": ..., "host": ...}}; the folder
// id is filled in.
func (c *MailClient) CreateDataSource(source soap.Params, destFolder string) (soap.Params, error) {
	folder, err := c.CreateFolder(destFolder, "")
	if err != nil {
		return nil, err
	}
	for _, cfg := range source {
		if m, ok := cfg.(soap.Params); ok {
			m["l"] = folder["id"]
		}
	}
	return c.Request("CreateDataSource", source)
}

// GetDataSources returns every data source of the account, keyed by
// source type.
func (c *MailClient) GetDataSources() (soap.Params, error) {
	return c.Request("GetDataSources", soap.Params{})
}

// GetDataSourcesByType narrows GetDataSources to one source type,
// normalized to a list.
func (c *MailClient) GetDataSourcesByType(sourceType string) ([]soap.Params, error) {
	all, err := c.GetDataSources()
	if err != nil {
		return nil, err
	}
	var out []soap.Params
	for _, e := range soap.AsList(all[sourceType]) {
		if m, ok := e.(soap.Params); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// ModifyDataSource updates a data source; source carries the same shape
// CreateDataSource takes, with the id set.
func (c *MailClient) ModifyDataSource(source soap.Params) (soap.Params, error) {
	return c.Request("ModifyDataSource", source)
}

// DeleteDataSource removes a data source and the folder backing it.
// source addresses it by type and id, e.g. {"pop3": {"id": ...}}.
func (c *MailClient) DeleteDataSource(source soap.Params) error {
	for sourceType, cfg := range source {
		m, ok := cfg.(soap.Params)
		if !ok {
			continue
		}
		id, _ := m["id"].(string)
		existing, err := c.GetDataSourcesByType(sourceType)
		if err != nil {
			return err
		}
		for _, ds := range existing {
			if ds["id"] == id {
				if folderID, ok := ds["l"].(string); ok {
					if err := c.DeleteFolders([]string{folderID}); err != nil {
						return err
					}
				}
			}
		}
		_, err = c.Request("DeleteDataSource", source)
		return err
	}
	return errors.New("source should map a source type to its id")
}
