package models

// Credential is an opaque private-league access token. It deliberately
// implements Stringer and json.Marshaler so the raw value cannot leak
// into logs or API responses; only Reveal hands back the secret, and the
// provider client is the only caller that should use it.
type Credential struct {
	value string
}

// NewCredential wraps a raw token value.
func NewCredential(value string) Credential {
	return Credential{value: value}
}

// Reveal returns the raw token for use in provider requests.
func (c Credential) Reveal() string {
	return c.value
}

// Empty reports whether the credential carries no value.
func (c Credential) Empty() bool {
	return c.value == ""
}

func (c Credential) String() string {
	return "[redacted]"
}

// GoString keeps %#v output redacted as well.
func (c Credential) GoString() string {
	return "models.Credential{[redacted]}"
}

// MarshalJSON redacts the value in any serialized surface.
func (c Credential) MarshalJSON() ([]byte, error) {
	return []byte(`"[redacted]"`), nil
}

// CredentialPair is the two-part token set a private league requires.
// Both values must be present together; a lone half is invalid.
type CredentialPair struct {
	SWID   Credential `json:"swid"`
	ESPNS2 Credential `json:"espn_s2"`
}

// NewCredentialPair builds a pair from raw values.
func NewCredentialPair(swid, espnS2 string) CredentialPair {
	return CredentialPair{
		SWID:   NewCredential(swid),
		ESPNS2: NewCredential(espnS2),
	}
}

// IsPublic reports whether the pair is the public-league marker (both
// halves absent).
func (p CredentialPair) IsPublic() bool {
	return p.SWID.Empty() && p.ESPNS2.Empty()
}

// Complete reports whether both halves are present.
func (p CredentialPair) Complete() bool {
	return !p.SWID.Empty() && !p.ESPNS2.Empty()
}
