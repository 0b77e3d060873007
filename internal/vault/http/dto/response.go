package dto

import (
	"time"

	vaultDomain "github.com/briefnote/briefnote/internal/vault/domain"
)

// CredentialResponse represents credential metadata in API responses.
// Sensitive fields never appear here.
type CredentialResponse struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	Type      string    `json:"type"`
	URL       string    `json:"url,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapCredentialToResponse converts a domain credential to a response.
func MapCredentialToResponse(credential *vaultDomain.Credential) CredentialResponse {
	return CredentialResponse{
		ID:        credential.ID,
		Label:     credential.Label,
		Type:      string(credential.Type),
		URL:       credential.URL,
		Notes:     credential.Notes,
		SortOrder: credential.SortOrder,
		CreatedBy: credential.CreatedBy,
		CreatedAt: credential.CreatedAt,
		UpdatedAt: credential.UpdatedAt,
	}
}

// ListCredentialsResponse represents a credential listing in API responses.
type ListCredentialsResponse struct {
	Data []CredentialResponse `json:"data"`
}

// MapCredentialsToListResponse converts a slice of domain credentials to a
// list response.
func MapCredentialsToListResponse(credentials []*vaultDomain.Credential) ListCredentialsResponse {
	data := make([]CredentialResponse, 0, len(credentials))
	for _, credential := range credentials {
		data = append(data, MapCredentialToResponse(credential))
	}
	return ListCredentialsResponse{Data: data}
}

// DecryptedCredentialResponse represents a credential with its sensitive
// fields opened. Only fields relevant to the type carry values; a field that
// failed to decrypt is present but empty.
type DecryptedCredentialResponse struct {
	CredentialResponse
	Secrets map[string]string `json:"secrets"`
}

// MapDecryptedCredentialToResponse converts an opened credential to a response.
func MapDecryptedCredentialToResponse(
	credential *vaultDomain.DecryptedCredential,
) DecryptedCredentialResponse {
	secrets := make(map[string]string)
	for _, field := range credential.Type.SensitiveFields() {
		secrets[string(field)] = credential.Plaintext(field)
	}
	return DecryptedCredentialResponse{
		CredentialResponse: MapCredentialToResponse(&credential.Credential),
		Secrets:            secrets,
	}
}

// FieldResponse carries a single opened sensitive field value.
type FieldResponse struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
