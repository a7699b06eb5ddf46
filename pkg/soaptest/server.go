// Package soaptest provides an in-process fixture Zimbra server for
// client tests: a gin router answering a useful subset of the admin,
// account and mail SOAP operations plus the /service/preauth endpoint,
// backed by an in-memory directory of domains, accounts and lists.
package soaptest

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oasiswork/zimsoap/pkg/log"
	"github.com/oasiswork/zimsoap/pkg/preauth"
	"github.com/oasiswork/zimsoap/pkg/soap"
)

// TokenLifetime is the lifetime the fixture grants to minted tokens,
// in seconds.
const TokenLifetime = 172800

// Domain is a fixture mail domain.
type Domain struct {
	ID         string
	Name       string
	PreauthKey string
	Attrs      map[string]string
}

// Account is a fixture account.
type Account struct {
	ID       string
	Name     string
	Password string
	Admin    bool
}

// DistributionList is a fixture mailing list.
type DistributionList struct {
	ID      string
	Name    string
	Members []string
}

// Server is the fixture state plus its HTTP surface. All mutators are
// safe for concurrent handlers.
type Server struct {
	mu       sync.Mutex
	domains  map[string]*Domain
	accounts map[string]*Account
	lists    map[string]*DistributionList
	tokens   map[string]bool

	router *gin.Engine
}

// NewServer builds an empty fixture; seed it with AddDomain and
// AddAccount, then mount Router on an httptest server.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		domains:  make(map[string]*Domain),
		accounts: make(map[string]*Account),
		lists:    make(map[string]*DistributionList),
		tokens:   make(map[string]bool),
	}
	router := gin.New()
	router.POST("/service/admin/soap", s.handleSOAP)
	router.POST("/service/soap", s.handleSOAP)
	router.GET("/service/preauth", s.handlePreauth)
	s.router = router
	return s
}

// Router is the handler to mount on an httptest server.
func (s *Server) Router() http.Handler { return s.router }

// AddDomain registers a domain; preauthKey may be empty.
func (s *Server) AddDomain(name, preauthKey string) *Domain {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := &Domain{
		ID:         uuid.NewString(),
		Name:       name,
		PreauthKey: preauthKey,
		Attrs:      map[string]string{},
	}
	s.domains[name] = d
	return d
}

// AddAccount registers an account able to log in with password.
func (s *Server) AddAccount(name, password string, admin bool) *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &Account{ID: uuid.NewString(), Name: name, Password: password, Admin: admin}
	s.accounts[name] = a
	return a
}

// TokenKnown reports whether the fixture minted the given token.
func (s *Server) TokenKnown(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[token]
}

func (s *Server) mintToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := "0_" + uuid.NewString()
	s.tokens[token] = true
	return token
}

func (s *Server) handleSOAP(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "cannot read body")
		return
	}
	name, content, token, err := parseRequest(string(data))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	logger := log.WithField("fixture", name)

	// everything except Auth requires a token the fixture minted
	if name != "Auth" && !s.TokenKnown(token) {
		logger.Debug("rejecting unauthenticated request")
		writeFault(c, "service.AUTH_REQUIRED", "no valid authtoken present")
		return
	}

	switch name {
	case "Auth":
		s.auth(c, content)
	case "GetAllDomains":
		s.getAllDomains(c)
	case "GetDomain":
		s.getDomain(c, content)
	case "GetAccount":
		s.getAccount(c, content)
	case "DelegateAuth":
		s.delegateAuth(c, content)
	case "CreateDistributionList":
		s.createDistributionList(c, content)
	case "GetDistributionList":
		s.getDistributionList(c, content)
	case "AddDistributionListMember":
		s.addDistributionListMembers(c, content)
	case "DeleteDistributionList":
		s.deleteDistributionList(c, content)
	default:
		logger.Debug("unknown operation")
		writeFault(c, "service.UNKNOWN_DOCUMENT", fmt.Sprintf("unknown document: %sRequest", name))
	}
}

func (s *Server) auth(c *gin.Context, content soap.Params) {
	// token re-validation form
	if tok, ok := content["authToken"]; ok {
		if s.TokenKnown(soap.Content(tok)) {
			writeResponse(c, "Auth", soap.Params{
				"authToken": soap.Params{"_content": soap.Content(tok)},
				"lifetime":  soap.Params{"_content": strconv.Itoa(TokenLifetime * 1000)},
			})
			return
		}
		writeFault(c, "account.AUTH_FAILED", "authentication failed for token")
		return
	}

	name := soap.Content(content["account"])
	password := soap.Content(content["password"])

	s.mu.Lock()
	account, ok := s.accounts[name]
	s.mu.Unlock()
	if !ok || account.Password != password {
		writeFault(c, "account.AUTH_FAILED", fmt.Sprintf("authentication failed for [%s]", name))
		return
	}

	writeResponse(c, "Auth", soap.Params{
		"authToken": soap.Params{"_content": s.mintToken()},
		"lifetime":  soap.Params{"_content": strconv.Itoa(TokenLifetime * 1000)},
	})
}

func (s *Server) getAllDomains(c *gin.Context) {
	s.mu.Lock()
	domains := make([]interface{}, 0, len(s.domains))
	for _, d := range s.domains {
		domains = append(domains, domainDict(d))
	}
	s.mu.Unlock()
	writeResponse(c, "GetAllDomains", soap.Params{"domain": domains})
}

func (s *Server) getDomain(c *gin.Context, content soap.Params) {
	wanted := soap.Content(content["domain"])
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.domains {
		if d.Name == wanted || d.ID == wanted {
			writeResponse(c, "GetDomain", soap.Params{"domain": domainDict(d)})
			return
		}
	}
	writeFault(c, "account.NO_SUCH_DOMAIN", fmt.Sprintf("no such domain: %s", wanted))
}

func (s *Server) getAccount(c *gin.Context, content soap.Params) {
	wanted := soap.Content(content["account"])
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Name == wanted || a.ID == wanted {
			writeResponse(c, "GetAccount", soap.Params{"account": accountDict(a)})
			return
		}
	}
	writeFault(c, "account.NO_SUCH_ACCOUNT", fmt.Sprintf("no such account: %s", wanted))
}

func (s *Server) delegateAuth(c *gin.Context, content soap.Params) {
	wanted := soap.Content(content["account"])
	s.mu.Lock()
	_, ok := s.accounts[wanted]
	s.mu.Unlock()
	if !ok {
		writeFault(c, "account.NO_SUCH_ACCOUNT", fmt.Sprintf("no such account: %s", wanted))
		return
	}
	writeResponse(c, "DelegateAuth", soap.Params{
		"authToken": soap.Params{"_content": s.mintToken()},
		"lifetime":  soap.Params{"_content": strconv.Itoa(TokenLifetime * 1000)},
	})
}

func (s *Server) createDistributionList(c *gin.Context, content soap.Params) {
	name := soap.Content(content["name"])
	s.mu.Lock()
	dl := &DistributionList{ID: uuid.NewString(), Name: name}
	s.lists[name] = dl
	s.mu.Unlock()
	writeResponse(c, "CreateDistributionList", soap.Params{"dl": listDict(dl)})
}

func (s *Server) getDistributionList(c *gin.Context, content soap.Params) {
	wanted := soap.Content(content["dl"])
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dl := range s.lists {
		if dl.Name == wanted || dl.ID == wanted {
			writeResponse(c, "GetDistributionList", soap.Params{"dl": listDict(dl)})
			return
		}
	}
	writeFault(c, "account.NO_SUCH_DISTRIBUTION_LIST", fmt.Sprintf("no such distribution list: %s", wanted))
}

func (s *Server) addDistributionListMembers(c *gin.Context, content soap.Params) {
	id, _ := content["id"].(string)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dl := range s.lists {
		if dl.ID == id {
			for _, m := range soap.AsList(content["dlm"]) {
				dl.Members = append(dl.Members, soap.Content(m))
			}
			writeResponse(c, "AddDistributionListMember", soap.Params{})
			return
		}
	}
	writeFault(c, "account.NO_SUCH_DISTRIBUTION_LIST", fmt.Sprintf("no such distribution list: %s", id))
}

func (s *Server) deleteDistributionList(c *gin.Context, content soap.Params) {
	id, _ := content["id"].(string)
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, dl := range s.lists {
		if dl.ID == id {
			delete(s.lists, name)
			writeResponse(c, "DeleteDistributionList", soap.Params{})
			return
		}
	}
	writeFault(c, "account.NO_SUCH_DISTRIBUTION_LIST", fmt.Sprintf("no such distribution list: %s", id))
}

// handlePreauth implements the REST preauth endpoint: it recomputes the
// HMAC signature from the domain key and mints a token carried back in
// the service cookie.
func (s *Server) handlePreauth(c *gin.Context) {
	account := c.Query("account")
	sig := c.Query("preauth")
	admin := c.Query("admin") == "1"
	timestamp, _ := strconv.ParseInt(c.Query("timestamp"), 10, 64)
	expires, _ := strconv.ParseInt(c.Query("expires"), 10, 64)

	s.mu.Lock()
	acct, ok := s.accounts[account]
	var key string
	if ok {
		_, domain, _ := strings.Cut(account, "@")
		if d, ok := s.domains[domain]; ok {
			key = d.PreauthKey
		}
	}
	s.mu.Unlock()

	if acct == nil || key == "" {
		c.String(http.StatusBadRequest, "preauth not available")
		return
	}
	if preauth.SignString(key, account, timestamp, expires, admin) != sig {
		c.String(http.StatusForbidden, "preauth failed")
		return
	}
	// a stale timestamp would be rejected by a real server as well
	if d := time.Since(time.UnixMilli(timestamp)); d < -5*time.Minute || d > 5*time.Minute {
		c.String(http.StatusForbidden, "preauth timestamp out of range")
		return
	}

	cookie := preauth.AccountTokenCookie
	if admin {
		cookie = preauth.AdminTokenCookie
	}
	c.SetCookie(cookie, s.mintToken(), TokenLifetime, "/", "", false, true)
	c.String(http.StatusOK, "OK")
}

func domainDict(d *Domain) soap.Params {
	attrs := []interface{}{}
	if d.PreauthKey != "" {
		attrs = append(attrs, soap.Params{"n": "zimbraPreAuthKey", "_content": d.PreauthKey})
	}
	for k, v := range d.Attrs {
		attrs = append(attrs, soap.Params{"n": k, "_content": v})
	}
	return soap.Params{"id": d.ID, "name": d.Name, "a": attrs}
}

func accountDict(a *Account) soap.Params {
	attrs := []interface{}{
		soap.Params{"n": "zimbraMailHost", "_content": "fixture"},
	}
	if a.Admin {
		attrs = append(attrs, soap.Params{"n": "zimbraIsAdminAccount", "_content": "TRUE"})
	}
	return soap.Params{"id": a.ID, "name": a.Name, "a": attrs}
}

func listDict(dl *DistributionList) soap.Params {
	members := make([]interface{}, 0, len(dl.Members))
	for _, m := range dl.Members {
		members = append(members, soap.Params{"_content": m})
	}
	d := soap.Params{"id": dl.ID, "name": dl.Name}
	if len(members) > 0 {
		d["dlm"] = members
	}
	return d
}
