// Package config loads and carries the tool configuration. Settings come
// from the environment (optionally seeded from a local .env file) and an
// optional config file, resolved through a context-scoped Viper instance.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	CfgFile string

	// Version is dynamically set at build time using the -X linker flag.
	// Default value is used for testing and development builds.
	Version = "dev"
)

// Configuration keys. Dots and dashes map to underscores in the
// environment, so bitbucket.api-token is read from BITBUCKET_API_TOKEN.
const (
	BitbucketURL            = "bitbucket.url"
	BitbucketUsername       = "bitbucket.username"
	BitbucketAPIToken       = "bitbucket.api-token"
	BitbucketPersonalToken  = "bitbucket.personal-token"
	BitbucketSSLVerify      = "bitbucket.ssl-verify"
	BitbucketProjectsFilter = "bitbucket.projects-filter"
	BitbucketReadOnly       = "bitbucket.read-only"

	CatalogCacheFile   = "catalog.cache.filename"
	CatalogCacheTTL    = "catalog.cache.ttl"
	CatalogConcurrency = "catalog.max-concurrency"
)

// Supported authentication types for Bitbucket Server/Data Center.
const (
	AuthTypePAT   = "pat"
	AuthTypeBasic = "basic"
)

// Config is the resolved Bitbucket connection configuration.
type Config struct {
	URL            string
	AuthType       string
	Username       string
	APIToken       string
	PersonalToken  string
	SSLVerify      bool
	ProjectsFilter []string
	ReadOnly       bool
}

// New creates a new Viper instance with default configuration.
func New() *viper.Viper {
	v := viper.NewWithOptions(viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")))
	v.AutomaticEnv() // read in environment variables that match

	setDefaults(v)

	return v
}

// Init loads a local .env file if present, reads in the config file and
// environment, and returns a context carrying the prepared Viper instance.
func Init() *viper.Viper {
	// A missing .env file is not an error
	_ = godotenv.Load()

	v := New()

	if CfgFile != "" {
		v.SetConfigFile(CfgFile)
	} else {
		v.SetConfigName("stash-mcp")
		v.AddConfigPath(".")
	}

	// If a config file is found, read it in.
	_ = v.ReadInConfig()

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(BitbucketSSLVerify, true)
	v.SetDefault(BitbucketReadOnly, false)

	v.SetDefault(CatalogCacheFile, ".stash-mcp-cache.json")
	v.SetDefault(CatalogCacheTTL, "24h")
	v.SetDefault(CatalogConcurrency, 4)
}

// Load resolves the Bitbucket connection configuration from the given
// Viper instance. The URL is required, and authentication resolves to a
// personal access token when one is set, falling back to basic auth with
// username and API token.
func Load(v *viper.Viper) (*Config, error) {
	url := v.GetString(BitbucketURL)
	if url == "" {
		return nil, fmt.Errorf("missing required %s configuration (BITBUCKET_URL)", BitbucketURL)
	}

	cfg := &Config{
		URL:            strings.TrimRight(url, "/"),
		Username:       v.GetString(BitbucketUsername),
		APIToken:       v.GetString(BitbucketAPIToken),
		PersonalToken:  v.GetString(BitbucketPersonalToken),
		SSLVerify:      v.GetBool(BitbucketSSLVerify),
		ProjectsFilter: splitProjectsFilter(v.GetString(BitbucketProjectsFilter)),
		ReadOnly:       v.GetBool(BitbucketReadOnly),
	}

	switch {
	case cfg.PersonalToken != "":
		cfg.AuthType = AuthTypePAT
	case cfg.Username != "" && cfg.APIToken != "":
		cfg.AuthType = AuthTypeBasic
	default:
		return nil, fmt.Errorf("bitbucket authentication requires %s or %s and %s",
			BitbucketPersonalToken, BitbucketUsername, BitbucketAPIToken)
	}

	return cfg, nil
}

// IsAuthConfigured reports whether the resolved authentication settings
// are complete for the selected auth type.
func (c *Config) IsAuthConfigured() bool {
	switch c.AuthType {
	case AuthTypePAT:
		return c.PersonalToken != ""
	case AuthTypeBasic:
		return c.Username != "" && c.APIToken != ""
	}

	return false
}

// splitProjectsFilter parses the comma-separated project allow-list,
// dropping empty entries. Matching against the list is case-insensitive
// and happens at the accessor layer.
func splitProjectsFilter(filter string) []string {
	if filter == "" {
		return nil
	}

	var keys []string
	for _, key := range strings.Split(filter, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}
