// Package constants provides centralized definitions of constants used throughout the application
package constants

// Environment variable names
const (
	// EnvServerAddress is the environment variable containing the API base URL used by clients
	EnvServerAddress = "AGORA_SERVER_ADDRESS"

	// EnvListenAddress is the environment variable containing the server listen address
	EnvListenAddress = "AGORA_LISTEN_ADDRESS"

	// EnvDBHost, EnvDBPort, EnvDBUser, EnvDBPassword and EnvDBName configure the database connection
	EnvDBHost     = "AGORA_DB_HOST"
	EnvDBPort     = "AGORA_DB_PORT"
	EnvDBUser     = "AGORA_DB_USER"
	EnvDBPassword = "AGORA_DB_PASSWORD"
	EnvDBName     = "AGORA_DB_NAME"
	EnvDBSSLMode  = "AGORA_DB_SSL_MODE"

	// EnvJWTSecret is the environment variable containing the HMAC secret for session tokens
	EnvJWTSecret = "AGORA_JWT_SECRET"

	// EnvVerifierUserID is the environment variable containing the user ID of the
	// privileged verification principal that gates fund and complete
	EnvVerifierUserID = "AGORA_VERIFIER_USER_ID"

	// EnvTwitterAPIBase is the environment variable containing the base URL of the
	// external profile lookup API
	EnvTwitterAPIBase = "AGORA_TWITTER_API_BASE"

	// EnvTwitterBearer is the environment variable containing the bearer token for
	// the external profile lookup API
	EnvTwitterBearer = "AGORA_TWITTER_BEARER"

	// EnvSessionToken is the environment variable the CLI reads its session token from
	EnvSessionToken = "AGORA_SESSION_TOKEN"
)
