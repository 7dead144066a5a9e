package hubspot

// Config holds configuration for the HubSpot CRM API client.
type Config struct {
	// BaseURL is the root of the HubSpot API.
	BaseURL string `mapstructure:"base_url" default:"https://api.hubapi.com"`
	// AccessToken is the private app access token used as a bearer token.
	AccessToken string `mapstructure:"access_token" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// IsConfigured reports whether an access token is present.
func (c Config) IsConfigured() bool {
	return c.AccessToken != ""
}
