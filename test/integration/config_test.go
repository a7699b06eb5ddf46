//go:build integration

package integration_test

import (
	"testing"

	"github.com/spf13/viper"
)

// TestConfig points the suite at a live Zimbra server. Values come from
// test/integration/integration.yaml or ZIMSOAP_* environment variables
// (e.g. ZIMSOAP_HOST, ZIMSOAP_ADMIN_PASSWORD).
type TestConfig struct {
	Host          string `mapstructure:"host"`
	AdminPort     string `mapstructure:"admin_port"`
	AdminLogin    string `mapstructure:"admin_login"`
	AdminPassword string `mapstructure:"admin_password"`

	// Domain is a throwaway domain the suite may create and delete
	// entities in.
	Domain string `mapstructure:"domain"`

	// Lambda is a regular account of Domain with a known password.
	LambdaLogin    string `mapstructure:"lambda_login"`
	LambdaPassword string `mapstructure:"lambda_password"`
}

func loadConfig(t *testing.T) TestConfig {
	t.Helper()

	v := viper.New()
	v.SetConfigName("integration")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("zimsoap")
	v.AutomaticEnv()

	v.SetDefault("admin_port", "7071")
	v.SetDefault("admin_login", "admin@zimbratest.example.com")
	v.SetDefault("domain", "zimbratest.example.com")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			t.Fatalf("cannot read integration config: %v", err)
		}
	}

	var conf TestConfig
	if err := v.Unmarshal(&conf); err != nil {
		t.Fatalf("cannot parse integration config: %v", err)
	}
	if conf.Host == "" || conf.AdminPassword == "" {
		t.Skip("no Zimbra server configured, set ZIMSOAP_HOST and ZIMSOAP_ADMIN_PASSWORD")
	}
	return conf
}
