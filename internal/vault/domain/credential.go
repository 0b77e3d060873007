// Package domain defines the credential vault entities and types.
package domain

import "time"

// CredentialType identifies the shape of a stored credential.
type CredentialType string

// Supported credential types.
const (
	TypeUsernamePassword CredentialType = "username_password"
	TypeAPIKey           CredentialType = "api_key"
	TypeSSHKey           CredentialType = "ssh_key"
	TypeSecureNote       CredentialType = "secure_note"
)

// Valid reports whether the credential type is one of the supported values.
func (t CredentialType) Valid() bool {
	switch t {
	case TypeUsernamePassword, TypeAPIKey, TypeSSHKey, TypeSecureNote:
		return true
	}
	return false
}

// SensitiveField identifies a single encrypted field on a credential.
type SensitiveField string

// Sensitive fields stored as independent envelopes.
const (
	FieldUsername   SensitiveField = "username"
	FieldPassword   SensitiveField = "password"
	FieldAPIKey     SensitiveField = "api_key"
	FieldSSHKey     SensitiveField = "ssh_key"
	FieldSecureNote SensitiveField = "secure_note"
)

// AllSensitiveFields lists every sensitive field in storage order.
var AllSensitiveFields = []SensitiveField{
	FieldUsername, FieldPassword, FieldAPIKey, FieldSSHKey, FieldSecureNote,
}

// SensitiveFields returns the sensitive fields relevant to the credential type.
// Fields outside this set are never populated for the type.
func (t CredentialType) SensitiveFields() []SensitiveField {
	switch t {
	case TypeUsernamePassword:
		return []SensitiveField{FieldUsername, FieldPassword}
	case TypeAPIKey:
		return []SensitiveField{FieldAPIKey}
	case TypeSSHKey:
		return []SensitiveField{FieldSSHKey}
	case TypeSecureNote:
		return []SensitiveField{FieldSecureNote}
	}
	return nil
}

// Valid reports whether the field is one of the supported sensitive fields.
func (f SensitiveField) Valid() bool {
	switch f {
	case FieldUsername, FieldPassword, FieldAPIKey, FieldSSHKey, FieldSecureNote:
		return true
	}
	return false
}

// Credential represents a stored credential. Sensitive fields hold sealed
// envelopes (base64 nonce plus ciphertext), never plaintext.
type Credential struct {
	ID                  int64
	Label               string
	Type                CredentialType
	UsernameEncrypted   string
	PasswordEncrypted   string
	APIKeyEncrypted     string
	SSHKeyEncrypted     string
	SecureNoteEncrypted string
	URL                 string
	Notes               string
	SortOrder           int
	CreatedBy           int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Envelope returns the sealed envelope stored for the given field.
func (c *Credential) Envelope(field SensitiveField) string {
	switch field {
	case FieldUsername:
		return c.UsernameEncrypted
	case FieldPassword:
		return c.PasswordEncrypted
	case FieldAPIKey:
		return c.APIKeyEncrypted
	case FieldSSHKey:
		return c.SSHKeyEncrypted
	case FieldSecureNote:
		return c.SecureNoteEncrypted
	}
	return ""
}

// SetEnvelope stores a sealed envelope for the given field.
func (c *Credential) SetEnvelope(field SensitiveField, envelope string) {
	switch field {
	case FieldUsername:
		c.UsernameEncrypted = envelope
	case FieldPassword:
		c.PasswordEncrypted = envelope
	case FieldAPIKey:
		c.APIKeyEncrypted = envelope
	case FieldSSHKey:
		c.SSHKeyEncrypted = envelope
	case FieldSecureNote:
		c.SecureNoteEncrypted = envelope
	}
}

// ClearEnvelopes removes every sealed envelope. Used when a credential
// changes type, since envelopes from the old type are no longer meaningful.
func (c *Credential) ClearEnvelopes() {
	c.UsernameEncrypted = ""
	c.PasswordEncrypted = ""
	c.APIKeyEncrypted = ""
	c.SSHKeyEncrypted = ""
	c.SecureNoteEncrypted = ""
}

// StripEnvelopes returns a copy of the credential with all envelopes removed.
// Listings use this so sealed material never leaves the storage layer.
func (c *Credential) StripEnvelopes() *Credential {
	out := *c
	out.ClearEnvelopes()
	return &out
}

// DecryptedCredential is a credential with its sensitive fields opened.
// A field that failed to decrypt is present with an empty value.
type DecryptedCredential struct {
	Credential
	Username   string
	Password   string
	APIKey     string
	SSHKey     string
	SecureNote string
}

// SetPlaintext stores an opened field value.
func (d *DecryptedCredential) SetPlaintext(field SensitiveField, value string) {
	switch field {
	case FieldUsername:
		d.Username = value
	case FieldPassword:
		d.Password = value
	case FieldAPIKey:
		d.APIKey = value
	case FieldSSHKey:
		d.SSHKey = value
	case FieldSecureNote:
		d.SecureNote = value
	}
}

// Plaintext returns an opened field value.
func (d *DecryptedCredential) Plaintext(field SensitiveField) string {
	switch field {
	case FieldUsername:
		return d.Username
	case FieldPassword:
		return d.Password
	case FieldAPIKey:
		return d.APIKey
	case FieldSSHKey:
		return d.SSHKey
	case FieldSecureNote:
		return d.SecureNote
	}
	return ""
}
