package config

type ServiceConfig struct {
	Name                string          `mapstructure:"name"`
	Environment         string          `mapstructure:"environment"`
	Version             string          `mapstructure:"version"`
	ClientURL           string          `mapstructure:"client_url"`
	StripeSecretKey     string          `mapstructure:"stripe_secret_key"`
	StripeWebhookSecret string          `mapstructure:"stripe_webhook_secret"`
	PlansFile           string          `mapstructure:"plans_file"`
	Datastore           DatastoreConfig `mapstructure:"datastore"`
	Identity            IdentityConfig  `mapstructure:"identity"`
}

// DatastoreConfig holds connection settings for the hosted data store's
// REST data plane (row-level security enforced by the bridged token).
type DatastoreConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	ProjectURL string `mapstructure:"project_url"`
	APIKey     string `mapstructure:"api_key"`
}

// IdentityConfig holds settings for the external identity provider.
type IdentityConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	// SessionID identifies the service's long-lived provider session used
	// to mint data-plane tokens.
	SessionID string `mapstructure:"session_id"`
	// TokenTemplate names the JWT template requested from the provider so
	// the issued claims match the data store's verification policy. The
	// service always requests this one template; mixing templated and
	// untemplated tokens against the same policy fails silently.
	TokenTemplate string `mapstructure:"token_template"`
}
