// Package constants holds identifiers shared across layers.
package constants

const (
	// EnvDevelop is the local development environment name.
	EnvDevelop = "develop"
	// EnvProduction is the production environment name.
	EnvProduction = "production"
)

// AppVersion is reported by the health probes.
const AppVersion = "1.0.0"

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Document store providers
const (
	StoreProviderFirestore = "firestore"
	StoreProviderPostgres  = "postgres"
	StoreProviderMemory    = "memory"
)

// Notification sink providers
const (
	SinkProviderFCM = "fcm"
)

// Caller authentication providers
const (
	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

// Default collection names
const (
	DefaultListingsCollection      = "products"
	DefaultAccountsCollection      = "users"
	DefaultNotificationsCollection = "notifications"
)
