//go:build integration

package integration_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasiswork/zimsoap/pkg/client"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

func adminClient(t *testing.T, conf TestConfig) *client.AdminClient {
	t.Helper()
	zc := client.NewAdminClient(conf.Host, conf.AdminPort)
	require.NoError(t, zc.Login(conf.AdminLogin, conf.AdminPassword))
	return zc
}

func TestAdminLoginAgainstServer(t *testing.T) {
	conf := loadConfig(t)
	zc := adminClient(t, conf)
	assert.True(t, zc.IsSessionValid())
}

func TestDomainsAgainstServer(t *testing.T) {
	conf := loadConfig(t)
	zc := adminClient(t, conf)

	domains, err := zc.GetAllDomains()
	require.NoError(t, err)
	assert.NotEmpty(t, domains)

	domain, err := zc.GetDomain(&zobjects.Domain{Name: conf.Domain})
	require.NoError(t, err)
	assert.Equal(t, conf.Domain, domain.Name)
}

func TestDistributionListLifecycleAgainstServer(t *testing.T) {
	conf := loadConfig(t)
	zc := adminClient(t, conf)
	listAddr := fmt.Sprintf("testlist-%d@%s", time.Now().UnixNano(), conf.Domain)

	created, err := zc.CreateDistributionList(listAddr, false)
	require.NoError(t, err)
	defer func() {
		_ = zc.DeleteDistributionList(created)
	}()

	assert.True(t, zobjects.IsZimbraID(created.ID))

	require.NoError(t, zc.AddDistributionListMembers(created, []string{conf.AdminLogin}))

	fetched, err := zc.GetDistributionList(&zobjects.DistributionList{Name: listAddr})
	require.NoError(t, err)
	assert.Contains(t, fetched.Members, conf.AdminLogin)
}

func TestDelegatedLoginAgainstServer(t *testing.T) {
	conf := loadConfig(t)
	if conf.LambdaLogin == "" {
		t.Skip("no lambda account configured, set ZIMSOAP_LAMBDA_LOGIN")
	}
	admin := adminClient(t, conf)

	zc := client.NewAccountClient(conf.Host, "")
	require.NoError(t, zc.DelegatedLogin(conf.LambdaLogin, admin))
	assert.True(t, zc.IsSessionValid())
}
