package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialType_Valid(t *testing.T) {
	for _, credType := range []CredentialType{TypeUsernamePassword, TypeAPIKey, TypeSSHKey, TypeSecureNote} {
		assert.True(t, credType.Valid(), string(credType))
	}
	assert.False(t, CredentialType("password_manager").Valid())
	assert.False(t, CredentialType("").Valid())
}

func TestCredentialType_SensitiveFields(t *testing.T) {
	tests := []struct {
		credType CredentialType
		fields   []SensitiveField
	}{
		{TypeUsernamePassword, []SensitiveField{FieldUsername, FieldPassword}},
		{TypeAPIKey, []SensitiveField{FieldAPIKey}},
		{TypeSSHKey, []SensitiveField{FieldSSHKey}},
		{TypeSecureNote, []SensitiveField{FieldSecureNote}},
		{CredentialType("unknown"), nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.fields, tt.credType.SensitiveFields(), string(tt.credType))
	}
}

func TestCredential_Envelopes(t *testing.T) {
	cred := &Credential{}

	for _, field := range AllSensitiveFields {
		assert.Empty(t, cred.Envelope(field))
		cred.SetEnvelope(field, "sealed-"+string(field))
		assert.Equal(t, "sealed-"+string(field), cred.Envelope(field))
	}

	cred.ClearEnvelopes()
	for _, field := range AllSensitiveFields {
		assert.Empty(t, cred.Envelope(field))
	}
}

func TestCredential_StripEnvelopes(t *testing.T) {
	cred := &Credential{
		ID:                11,
		Label:             "prod db",
		Type:              TypeUsernamePassword,
		UsernameEncrypted: "sealed-username",
		PasswordEncrypted: "sealed-password",
		URL:               "https://db.example.com",
	}

	stripped := cred.StripEnvelopes()

	assert.Equal(t, cred.ID, stripped.ID)
	assert.Equal(t, cred.Label, stripped.Label)
	assert.Equal(t, cred.URL, stripped.URL)
	assert.Empty(t, stripped.UsernameEncrypted)
	assert.Empty(t, stripped.PasswordEncrypted)

	// Original is untouched
	assert.Equal(t, "sealed-username", cred.UsernameEncrypted)
}

func TestDecryptedCredential_Plaintext(t *testing.T) {
	decrypted := &DecryptedCredential{}

	for _, field := range AllSensitiveFields {
		decrypted.SetPlaintext(field, "plain-"+string(field))
		assert.Equal(t, "plain-"+string(field), decrypted.Plaintext(field))
	}
}
