package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// AccountFilters selects which special accounts GetAllAccounts keeps.
type AccountFilters struct {
	IncludeSystem  bool
	IncludeAdmin   bool
	IncludeVirtual bool
}

// DefaultAccountFilters keeps admin and virtual accounts but drops
// system ones, the usual provisioning view.
var DefaultAccountFilters = AccountFilters{
	IncludeAdmin:   true,
	IncludeVirtual: true,
}

func (c *AdminClient) accountID(account *zobjects.Account) (string, error) {
	if zobjects.IsZimbraID(account.ID) {
		return account.ID, nil
	}
	fetched, err := c.GetAccount(account)
	if err != nil {
		return "", err
	}
	return fetched.ID, nil
}

// GetAllAccounts lists accounts, optionally scoped to one domain and
// one mailstore server; both may be nil.
func (c *AdminClient) GetAllAccounts(domain *zobjects.Domain, server *zobjects.Server, filters AccountFilters) ([]*zobjects.Account, error) {
	selectors := soap.Params{}
	if domain != nil {
		sel, err := domain.ToSelector()
		if err != nil {
			return nil, err
		}
		selectors["domain"] = sel
	}
	if server != nil {
		sel, err := server.ToSelector()
		if err != nil {
			return nil, err
		}
		selectors["server"] = sel
	}

	dicts, err := c.RequestList("GetAllAccounts", selectors)
	if err != nil {
		return nil, err
	}

	accounts := make([]*zobjects.Account, 0, len(dicts))
	for _, d := range dicts {
		account, err := zobjects.AccountFromDict(d)
		if err != nil {
			return nil, err
		}
		if !filters.IncludeSystem && account.IsSystem() ||
			!filters.IncludeAdmin && account.IsAdmin() ||
			!filters.IncludeVirtual && account.IsVirtual() {
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// GetAccount fetches an account with all its attributes.
func (c *AdminClient) GetAccount(account *zobjects.Account) (*zobjects.Account, error) {
	selector, err := account.ToSelector()
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("GetAccount", soap.Params{"account": selector})
	if err != nil {
		return nil, err
	}
	return zobjects.AccountFromDict(resp)
}

// GetAccountMailbox returns the store metadata of an account mailbox,
// mainly the mailbox id and its size in octets.
func (c *AdminClient) GetAccountMailbox(accountID string) (*zobjects.Mailbox, error) {
	selector, err := (&zobjects.Mailbox{ID: accountID}).ToSelector()
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("GetMailbox", soap.Params{"mbox": selector})
	if err != nil {
		return nil, err
	}
	return zobjects.MailboxFromDict(resp)
}

// GetAccountCOS fetches the class of service of an account. The server
// response carries much more (URLs, mailhost); everything else is
// reachable through GetAccount.
func (c *AdminClient) GetAccountCOS(account *zobjects.Account) (*zobjects.COS, error) {
	selector, err := account.ToSelector()
	if err != nil {
		return nil, err
	}
	resp, err := c.Request("GetAccountInfo", soap.Params{"account": selector})
	if err != nil {
		return nil, err
	}
	cos, ok := resp["cos"].(soap.Params)
	if !ok {
		return nil, &soap.UnexpectedResponseError{Name: "cos", Body: resp}
	}
	return zobjects.COSFromDict(cos)
}

// CreateAccount creates an account; password may be empty for accounts
// that authenticate externally.
func (c *AdminClient) CreateAccount(email, password string, attrs map[string]interface{}) (*zobjects.Account, error) {
	params := soap.Params{"name": email, "a": zobjects.AttrList(attrs)}
	if password != "" {
		params["password"] = password
	}
	resp, err := c.RequestSingle("CreateAccount", params)
	if err != nil {
		return nil, err
	}
	return zobjects.AccountFromDict(resp)
}

// RenameAccount changes the address of an account; it needs the id
// selector.
func (c *AdminClient) RenameAccount(account *zobjects.Account, newName string) (*zobjects.Account, error) {
	id, err := c.accountID(account)
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("RenameAccount", soap.Params{
		"id":      id,
		"newName": newName,
	})
	if err != nil {
		return nil, err
	}
	return zobjects.AccountFromDict(resp)
}

// ModifyAccount sets attributes on an account and returns its new
// state.
func (c *AdminClient) ModifyAccount(account *zobjects.Account, attrs map[string]interface{}) (*zobjects.Account, error) {
	id, err := c.accountID(account)
	if err != nil {
		return nil, err
	}
	resp, err := c.RequestSingle("ModifyAccount", soap.Params{
		"id": id,
		"a":  zobjects.AttrList(attrs),
	})
	if err != nil {
		return nil, err
	}
	return zobjects.AccountFromDict(resp)
}

// SetPassword sets the account password and returns the server
// message, which may warn about password policy.
func (c *AdminClient) SetPassword(account *zobjects.Account, password string) (string, error) {
	id, err := c.accountID(account)
	if err != nil {
		return "", err
	}
	resp, err := c.Request("SetPassword", soap.Params{
		"id":          id,
		"newPassword": password,
	})
	if err != nil {
		return "", err
	}
	return soap.Content(resp["message"]), nil
}

// DeleteAccount deletes an account and its mailbox.
func (c *AdminClient) DeleteAccount(account *zobjects.Account) error {
	id, err := c.accountID(account)
	if err != nil {
		return err
	}
	_, err = c.Request("DeleteAccount", soap.Params{"id": id})
	return err
}

// AddAccountAlias adds an email alias to an account.
func (c *AdminClient) AddAccountAlias(account *zobjects.Account, alias string) error {
	id, err := c.accountID(account)
	if err != nil {
		return err
	}
	_, err = c.Request("AddAccountAlias", soap.Params{"id": id, "alias": alias})
	return err
}

// RemoveAccountAlias removes an email alias from an account.
func (c *AdminClient) RemoveAccountAlias(account *zobjects.Account, alias string) error {
	id, err := c.accountID(account)
	if err != nil {
		return err
	}
	_, err = c.Request("RemoveAccountAlias", soap.Params{"id": id, "alias": alias})
	return err
}
