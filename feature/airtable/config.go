package airtable

// Config holds configuration for the hosted table API.
type Config struct {
	// APIURL is the base URL of the table API.
	APIURL string `mapstructure:"api_url" default:"https://api.airtable.com/v0"`
	// APIKey is the personal access token sent as a bearer token.
	APIKey string `mapstructure:"api_key" default:""`
	// BaseID identifies the base holding the table.
	BaseID string `mapstructure:"base_id" default:""`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Fields is a comma-separated list of the fields the table stores.
	// Empty means every card field; fields the table drops are learned at runtime.
	Fields string `mapstructure:"fields" default:""`
}
