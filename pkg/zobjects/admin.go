package zobjects

import (
	"strings"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

// Server is a Zimbra mailstore server.
type Server struct {
	ID              string `mapstructure:"id"`
	Name            string `mapstructure:"name"`
	ServiceHostname string `mapstructure:"serviceHostname"`

	zobject
}

func (s *Server) TagName() string { return "server" }

func (s *Server) selectorAttrs() []selectorAttr {
	return []selectorAttr{
		{"id", s.ID}, {"name", s.Name}, {"serviceHostname", s.ServiceHostname},
	}
}

func (s *Server) entityID() string { return s.ID }

func (s *Server) ToSelector() (soap.Params, error) { return ToSelector(s) }

func ServerFromDict(d soap.Params) (*Server, error) {
	s := &Server{}
	if err := decodeEntity(d, s, "n"); err != nil {
		return nil, err
	}
	return s, nil
}

// COS is a class of service, e.g. <cos id="e00-..a2a" name="default"/>.
type COS struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`

	zobject
}

func (c *COS) TagName() string { return "cos" }

func (c *COS) selectorAttrs() []selectorAttr {
	return []selectorAttr{{"id", c.ID}, {"name", c.Name}}
}

func (c *COS) entityID() string { return c.ID }

func (c *COS) ToSelector() (soap.Params, error) { return ToSelector(c) }

func COSFromDict(d soap.Params) (*COS, error) {
	c := &COS{}
	if err := decodeEntity(d, c, "n"); err != nil {
		return nil, err
	}
	return c, nil
}

// Domain is a mail domain:
//
//	<domain id="b37...ac" name="sub.domain.tld">
//	  <a n="zimbraGalLdapPageSize">1000</a>
//	</domain>
type Domain struct {
	ID              string `mapstructure:"id"`
	Name            string `mapstructure:"name"`
	VirtualHostname string `mapstructure:"virtualHostname"`
	Krb5Realm       string `mapstructure:"krb5Realm"`
	ForeignName     string `mapstructure:"foreignName"`

	zobject
}

func (d *Domain) TagName() string { return "domain" }

func (d *Domain) selectorAttrs() []selectorAttr {
	return []selectorAttr{
		{"id", d.ID}, {"name", d.Name}, {"virtualHostname", d.VirtualHostname},
		{"krb5Realm", d.Krb5Realm}, {"foreignName", d.ForeignName},
	}
}

func (d *Domain) entityID() string { return d.ID }

func (d *Domain) ToSelector() (soap.Params, error) { return ToSelector(d) }

// AliasTargetName parses zimbraMailCatchAllForwardingAddress
// ("@target.tld") into the target domain name, empty when the domain is
// not an alias.
func (d *Domain) AliasTargetName() string {
	addr := soap.Content(d.PropertyOr("zimbraMailCatchAllForwardingAddress", ""))
	return strings.TrimPrefix(addr, "@")
}

func DomainFromDict(d soap.Params) (*Domain, error) {
	dom := &Domain{}
	if err := decodeEntity(d, dom, "n"); err != nil {
		return nil, err
	}
	return dom, nil
}

// Account is a user or admin account.
type Account struct {
	AdminName        string `mapstructure:"adminName"`
	AppAdminName     string `mapstructure:"appAdminName"`
	ID               string `mapstructure:"id"`
	ForeignPrincipal string `mapstructure:"foreignPrincipal"`
	Name             string `mapstructure:"name"`
	Krb5Principal    string `mapstructure:"krb5Principal"`

	zobject
}

func (a *Account) TagName() string { return "account" }

func (a *Account) selectorAttrs() []selectorAttr {
	return []selectorAttr{
		{"adminName", a.AdminName}, {"appAdminName", a.AppAdminName},
		{"id", a.ID}, {"foreignPrincipal", a.ForeignPrincipal},
		{"name", a.Name}, {"krb5Principal", a.Krb5Principal},
	}
}

func (a *Account) entityID() string { return a.ID }

func (a *Account) ToSelector() (soap.Params, error) { return ToSelector(a) }

// IsAdmin tells whether this is an admin account; absent field means
// false.
func (a *Account) IsAdmin() bool {
	return a.PropertyOr("zimbraIsAdminAccount", false) == true
}

// IsSystem tells whether this is a system account.
func (a *Account) IsSystem() bool {
	return a.PropertyOr("zimbraIsSystemAccount", false) == true
}

// IsVirtual tells whether this is a virtual external account.
func (a *Account) IsVirtual() bool {
	return a.PropertyOr("zimbraIsExternalVirtualAccount", false) == true
}

// Domain returns the domain inferred from the account name.
func (a *Account) Domain() (*Domain, error) {
	_, domain, found := strings.Cut(a.Name, "@")
	if !found {
		return nil, ErrNotEnoughInformation
	}
	return &Domain{Name: domain}, nil
}

// LoginPart returns the local part of the account name.
func (a *Account) LoginPart() (string, error) {
	login, _, found := strings.Cut(a.Name, "@")
	if !found {
		return "", ErrNotEnoughInformation
	}
	return login, nil
}

func AccountFromDict(d soap.Params) (*Account, error) {
	a := &Account{}
	if err := decodeEntity(d, a, "n"); err != nil {
		return nil, err
	}
	return a, nil
}

// CalendarResource is a location or equipment resource.
type CalendarResource struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`

	zobject
}

// Calendar resource types.
const (
	EquipmentResource = "Equipment"
	LocationResource  = "Location"
)

func (c *CalendarResource) TagName() string { return "calresource" }

func (c *CalendarResource) selectorAttrs() []selectorAttr {
	return []selectorAttr{{"id", c.ID}, {"name", c.Name}}
}

func (c *CalendarResource) entityID() string { return c.ID }

func (c *CalendarResource) ToSelector() (soap.Params, error) { return ToSelector(c) }

func CalendarResourceFromDict(d soap.Params) (*CalendarResource, error) {
	c := &CalendarResource{}
	if err := decodeEntity(d, c, "n"); err != nil {
		return nil, err
	}
	return c, nil
}

// DistributionList is a mailing list; Members holds the dlm child tags.
type DistributionList struct {
	ID      string `mapstructure:"id"`
	Name    string `mapstructure:"name"`
	Dynamic string `mapstructure:"dynamic"`

	Members []string `mapstructure:"-"`

	zobject
}

func (dl *DistributionList) TagName() string { return "dl" }

func (dl *DistributionList) selectorAttrs() []selectorAttr {
	return []selectorAttr{{"id", dl.ID}, {"name", dl.Name}}
}

func (dl *DistributionList) entityID() string { return dl.ID }

func (dl *DistributionList) ToSelector() (soap.Params, error) { return ToSelector(dl) }

func DistributionListFromDict(d soap.Params) (*DistributionList, error) {
	dl := &DistributionList{}
	if err := decodeEntity(d, dl, "n"); err != nil {
		return nil, err
	}
	for _, member := range soap.AsList(d["dlm"]) {
		dl.Members = append(dl.Members, soap.Content(member))
	}
	delete(dl.extra, "dlm")
	return dl, nil
}

// Mailbox is the store-side metadata of an account mailbox:
//
//	<mbox accountId="4cd3...815" id="1" s="140676" .../>
type Mailbox struct {
	ID        string `mapstructure:"id"`
	AccountID string `mapstructure:"accountId"`
	Size      string `mapstructure:"s"`

	zobject
}

func (m *Mailbox) TagName() string { return "mbox" }

func (m *Mailbox) selectorAttrs() []selectorAttr {
	return []selectorAttr{{"id", m.ID}}
}

func (m *Mailbox) entityID() string { return m.ID }

// ToSelector uses the bare {id: ...} shape GetMailbox expects instead
// of the generic {by, _content} pair.
func (m *Mailbox) ToSelector() (soap.Params, error) {
	if m.ID == "" {
		return nil, selectorError(m)
	}
	return soap.Params{"id": m.ID}, nil
}

func MailboxFromDict(d soap.Params) (*Mailbox, error) {
	m := &Mailbox{}
	if err := decodeEntity(d, m, "n"); err != nil {
		return nil, err
	}
	return m, nil
}

// QuotaUsage is the per-domain quota report selector.
type QuotaUsage struct {
	Domain        string `mapstructure:"domain"`
	AllServers    string `mapstructure:"allServers"`
	Limit         string `mapstructure:"limit"`
	Offset        string `mapstructure:"offset"`
	SortBy        string `mapstructure:"sortBy"`
	SortAscending string `mapstructure:"sortAscending"`
	Refresh       string `mapstructure:"refresh"`

	zobject
}

func (q *QuotaUsage) TagName() string { return "QuotaUsage" }

func (q *QuotaUsage) selectorAttrs() []selectorAttr {
	return []selectorAttr{
		{"domain", q.Domain}, {"allServers", q.AllServers}, {"limit", q.Limit},
		{"offset", q.Offset}, {"sortBy", q.SortBy},
		{"sortAscending", q.SortAscending}, {"refresh", q.Refresh},
	}
}

func (q *QuotaUsage) entityID() string { return "" }

func (q *QuotaUsage) ToSelector() (soap.Params, error) { return ToSelector(q) }

func QuotaUsageFromDict(d soap.Params) (*QuotaUsage, error) {
	q := &QuotaUsage{}
	if err := decodeEntity(d, q, "n"); err != nil {
		return nil, err
	}
	return q, nil
}
