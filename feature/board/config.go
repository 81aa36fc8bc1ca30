package board

// Config holds configuration for the project board source.
type Config struct {
	// APIURL is the base URL of the GitHub REST API.
	APIURL string `mapstructure:"api_url" default:"https://api.github.com"`
	// Token is the access token used for bearer authentication.
	Token string `mapstructure:"token" default:""`
	// ProjectID is the numeric identifier of the project board.
	ProjectID int64 `mapstructure:"project_id" default:"0"`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Concurrency limits in-flight card and issue fetches per column.
	Concurrency int `mapstructure:"concurrency" default:"8"`
}
