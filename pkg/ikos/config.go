package ikos

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "/"

// Config contains configuration for the platform API client.
//
// Example configuration (HCL):
//
//	platform {
//	  base_url   = "https://ikos.example.com/api/"
//	  tls_verify = true
//	}
type Config struct {
	// BaseURL is prepended verbatim to every endpoint and must end in "/".
	// Default: "/"
	BaseURL string `hcl:"base_url,optional" json:"baseUrl"`

	// TLSVerify controls TLS certificate verification.
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `hcl:"tls_verify,optional" json:"tlsVerify,omitempty"`

	// UserAgent is sent on every request when set.
	UserAgent string `hcl:"user_agent,optional" json:"userAgent,omitempty"`

	// Timeout for the default HTTP client. Zero means no timeout.
	Timeout time.Duration `json:"timeout,omitempty"`

	// Transport overrides the default HTTP transport.
	Transport Transport `json:"-"`

	// Logger receives one debug trace per request.
	Logger hclog.Logger `json:"-"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		BaseURL:   DefaultBaseURL,
		TLSVerify: &tlsVerify,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.BaseURL == "" {
		result = multierror.Append(result, fmt.Errorf("base_url is required"))
	} else if !strings.HasSuffix(c.BaseURL, "/") {
		result = multierror.Append(result,
			fmt.Errorf("base_url must end with a trailing \"/\", got: %s", c.BaseURL))
	}

	if c.Timeout < 0 {
		result = multierror.Append(result,
			fmt.Errorf("timeout must be non-negative, got: %v", c.Timeout))
	}

	return result.ErrorOrNil()
}

// NewHTTPClient creates the HTTP client used by the default transport.
//
// The client keeps a cookie jar so the session cookie issued by a login is
// sent on later calls.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	// Configure TLS verification
	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	// cookiejar.New only fails on a bad PublicSuffixList.
	jar, _ := cookiejar.New(nil)

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
		Jar:       jar,
	}
}
