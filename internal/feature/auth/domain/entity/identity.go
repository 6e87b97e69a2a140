package entity

// OAuthIdentity is the normalized identity claim returned by an external
// OAuth provider. It carries facts only; linking decisions are made by the
// account resolver.
type OAuthIdentity struct {
	// Provider is the provider identifier ("google", "apple").
	Provider string

	// ProviderID is the provider-scoped unique subject identifier.
	ProviderID string

	// Email is the email address asserted by the provider.
	Email string

	// DisplayName is the profile name, when the provider supplies one.
	DisplayName string

	// AvatarURL is the profile picture URL, when the provider supplies one.
	AvatarURL string
}
