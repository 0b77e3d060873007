// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	vaultDomain "github.com/briefnote/briefnote/internal/vault/domain"
	vaultUseCase "github.com/briefnote/briefnote/internal/vault/usecase"
)

// CreateCredentialRequest contains the parameters for creating a credential.
// Secrets maps sensitive field names to plaintext values; only fields relevant
// to the credential type are accepted.
type CreateCredentialRequest struct {
	Label     string            `json:"label"`
	Type      string            `json:"type"`
	URL       string            `json:"url"`
	Notes     string            `json:"notes"`
	SortOrder int               `json:"sort_order"`
	Secrets   map[string]string `json:"secrets"`
}

// Validate validates the create credential request.
func (r CreateCredentialRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Label, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Type, validation.Required),
	)
}

// ToInput converts the request to a usecase input.
func (r CreateCredentialRequest) ToInput() vaultUseCase.CreateCredentialInput {
	return vaultUseCase.CreateCredentialInput{
		Label:     r.Label,
		Type:      vaultDomain.CredentialType(r.Type),
		URL:       r.URL,
		Notes:     r.Notes,
		SortOrder: r.SortOrder,
		Secrets:   mapSecrets(r.Secrets),
	}
}

// UpdateCredentialRequest contains the parameters for a partial credential
// update. Absent fields leave the stored value untouched.
type UpdateCredentialRequest struct {
	Label     *string           `json:"label"`
	Type      *string           `json:"type"`
	URL       *string           `json:"url"`
	Notes     *string           `json:"notes"`
	SortOrder *int              `json:"sort_order"`
	Secrets   map[string]string `json:"secrets"`
}

// Validate validates the update credential request.
func (r UpdateCredentialRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Label, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Type, validation.NilOrNotEmpty),
	)
}

// ToInput converts the request to a usecase input.
func (r UpdateCredentialRequest) ToInput() vaultUseCase.UpdateCredentialInput {
	input := vaultUseCase.UpdateCredentialInput{
		Label:     r.Label,
		URL:       r.URL,
		Notes:     r.Notes,
		SortOrder: r.SortOrder,
		Secrets:   mapSecrets(r.Secrets),
	}
	if r.Type != nil {
		credentialType := vaultDomain.CredentialType(*r.Type)
		input.Type = &credentialType
	}
	return input
}

// FieldRequest contains the parameters for revealing or copying a single
// sensitive field.
type FieldRequest struct {
	Field string `json:"field"`
}

// Validate validates the field request.
func (r FieldRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Field, validation.Required),
	)
}

// ReorderRequest contains the full credential id sequence in display order.
type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

// Validate validates the reorder request.
func (r ReorderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDs, validation.Required),
	)
}

// mapSecrets converts plain string keys to typed sensitive field keys.
// Unknown field names survive the conversion so the usecase can reject them.
func mapSecrets(secrets map[string]string) map[vaultDomain.SensitiveField]string {
	if secrets == nil {
		return nil
	}
	out := make(map[vaultDomain.SensitiveField]string, len(secrets))
	for field, value := range secrets {
		out[vaultDomain.SensitiveField(field)] = value
	}
	return out
}
