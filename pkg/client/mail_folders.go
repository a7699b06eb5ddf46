package client

import (
	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

// FolderRef addresses a folder by id, path or uuid; set the one you
// have.
type FolderRef struct {
	ID   string
	Path string
	UUID string
}

// GetFolder fetches a folder subtree as a raw dict, under the "folder"
// key (or "link" for a mountpoint).
func (c *MailClient) GetFolder(ref FolderRef) (soap.Params, error) {
	folder := soap.Params{}
	if ref.ID != "" {
		folder["l"] = ref.ID
	}
	if ref.UUID != "" {
		folder["uuid"] = ref.UUID
	}
	if ref.Path != "" {
		folder["path"] = ref.Path
	}
	return c.Request("GetFolder", soap.Params{"folder": folder})
}

// CreateFolder creates a folder under a parent, "1" being the mailbox
// root.
func (c *MailClient) CreateFolder(name, parentID string) (soap.Params, error) {
	if parentID == "" {
		parentID = "1"
	}
	resp, err := c.Request("CreateFolder", soap.Params{
		"folder": soap.Params{"name": name, "l": parentID},
	})
	if err != nil {
		return nil, err
	}
	folder, ok := resp["folder"].(soap.Params)
	if !ok {
		return nil, &soap.UnexpectedResponseError{Name: "folder", Body: resp}
	}
	return folder, nil
}

// FolderUpdate carries the optional fields of a folder update action.
type FolderUpdate struct {
	Color        int
	Flags        string
	ParentFolder string
	Name         string
	Tags         []string
	View         string
}

// ModifyFolders applies one update to several folders at once.
func (c *MailClient) ModifyFolders(folderIDs []string, update FolderUpdate) error {
	action := soap.Params{"id": commaList(folderIDs), "op": "update"}
	if update.Color > 0 {
		action["color"] = update.Color
	}
	if update.Flags != "" {
		action["f"] = update.Flags
	}
	if update.ParentFolder != "" {
		action["l"] = update.ParentFolder
	}
	if update.Name != "" {
		action["name"] = update.Name
	}
	if len(update.Tags) > 0 {
		action["tn"] = commaList(update.Tags)
	}
	if update.View != "" {
		action["view"] = update.View
	}
	_, err := c.Request("FolderAction", soap.Params{"action": action})
	return err
}

// DeleteFolders deletes folders by id.
func (c *MailClient) DeleteFolders(folderIDs []string) error {
	_, err := c.Request("FolderAction", soap.Params{
		"action": soap.Params{"id": commaList(folderIDs), "op": "delete"},
	})
	return err
}

// DeleteFoldersByPath resolves paths to ids before deleting.
func (c *MailClient) DeleteFoldersByPath(paths []string) error {
	ids, err := c.folderIDs(paths, "folder")
	if err != nil {
		return err
	}
	return c.DeleteFolders(ids)
}

// GetMountpoint fetches a mountpoint (a link to a shared folder).
func (c *MailClient) GetMountpoint(ref FolderRef) (soap.Params, error) {
	return c.GetFolder(ref)
}

// CreateMountpoint links a shared folder into the mailbox; link takes
// the CreateMountpoint attributes (name, l, owner, path...).
func (c *MailClient) CreateMountpoint(link soap.Params) (soap.Params, error) {
	resp, err := c.Request("CreateMountpoint", soap.Params{"link": link})
	if err != nil {
		return nil, err
	}
	mp, ok := resp["link"].(soap.Params)
	if !ok {
		return nil, &soap.UnexpectedResponseError{Name: "link", Body: resp}
	}
	return mp, nil
}

// DeleteMountpointsByPath resolves mountpoint paths to ids before
// deleting.
func (c *MailClient) DeleteMountpointsByPath(paths []string) error {
	ids, err := c.folderIDs(paths, "link")
	if err != nil {
		return err
	}
	return c.DeleteFolders(ids)
}

// GetFolderGrants returns the acl block of a folder, nil when the
// folder is not shared.
func (c *MailClient) GetFolderGrants(ref FolderRef) (soap.Params, error) {
	resp, err := c.GetFolder(ref)
	if err != nil {
		return nil, err
	}
	folder, ok := resp["folder"].(soap.Params)
	if !ok {
		return nil, &soap.UnexpectedResponseError{Name: "folder", Body: resp}
	}
	acl, _ := folder["acl"].(soap.Params)
	return acl, nil
}

// FolderGrant shapes a grant action on folders. Perm "none" revokes,
// and then requires the grantee ZimbraID.
type FolderGrant struct {
	Perm        string
	GranteeType string
	ZimbraID    string
	GranteeName string
}

// ModifyFolderGrants grants (or with Perm "none" revokes) access to
// folders for one grantee.
func (c *MailClient) ModifyFolderGrants(folderIDs []string, grant FolderGrant) error {
	gt := grant.GranteeType
	if gt == "" {
		gt = "usr"
	}
	action := soap.Params{
		"id":    commaList(folderIDs),
		"op":    "grant",
		"grant": soap.Params{"perm": grant.Perm, "gt": gt},
	}

	if grant.Perm == "none" {
		if grant.ZimbraID == "" {
			return errors.New("revoking a grant requires the grantee zimbra id")
		}
		action["op"] = "!grant"
		action["zid"] = grant.ZimbraID
	}

	g := action["grant"].(soap.Params)
	switch {
	case grant.GranteeName != "":
		g["d"] = grant.GranteeName
	case grant.ZimbraID != "":
		g["zid"] = grant.ZimbraID
	default:
		return errors.New("missing grantee zimbra id or name")
	}

	_, err := c.Request("FolderAction", soap.Params{"action": action})
	return err
}

func (c *MailClient) folderIDs(paths []string, kind string) ([]string, error) {
	ids := make([]string, 0, len(paths))
	for _, path := range paths {
		resp, err := c.GetFolder(FolderRef{Path: path})
		if err != nil {
			return nil, err
		}
		folder, ok := resp[kind].(soap.Params)
		if !ok {
			return nil, &soap.UnexpectedResponseError{Name: kind, Body: resp}
		}
		id, _ := folder["id"].(string)
		ids = append(ids, id)
	}
	return ids, nil
}
