// Package usecase implements the credential vault business logic.
package usecase

import (
	"context"

	auditDomain "github.com/briefnote/briefnote/internal/audit/domain"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	"github.com/briefnote/briefnote/internal/vault/domain"
)

// CreateCredentialInput contains the input data for credential creation.
// Secrets maps sensitive field names to their plaintext values; only fields
// relevant to the credential type are accepted.
type CreateCredentialInput struct {
	Label     string
	Type      domain.CredentialType
	URL       string
	Notes     string
	SortOrder int
	Secrets   map[domain.SensitiveField]string
}

// UpdateCredentialInput contains the input data for a partial credential
// update. Nil pointers leave the field untouched. A key present in Secrets
// re-encrypts that field; an empty value clears it.
type UpdateCredentialInput struct {
	Label     *string
	Type      *domain.CredentialType
	URL       *string
	Notes     *string
	SortOrder *int
	Secrets   map[domain.SensitiveField]string
}

// UseCase defines the interface for credential vault business logic.
// Read operations returning credentials always strip sealed envelopes;
// plaintext leaves the vault only through the decrypted and reveal paths.
type UseCase interface {
	// ListCredentials returns all credentials as metadata only.
	ListCredentials(ctx context.Context) ([]*domain.Credential, error)

	// GetCredential returns a single credential as metadata only.
	GetCredential(ctx context.Context, id int64) (*domain.Credential, error)

	// GetDecryptedCredential returns a credential with all sensitive fields
	// opened. A field that fails to decrypt degrades to an empty value
	// rather than failing the whole read. Audited as viewed.
	GetDecryptedCredential(ctx context.Context, actor *userDomain.User, id int64) (*domain.DecryptedCredential, error)

	// RevealField opens a single sensitive field. Audited as viewed.
	RevealField(ctx context.Context, actor *userDomain.User, id int64, field domain.SensitiveField) (string, error)

	// CopyField opens a single sensitive field for clipboard use. Audited as copied.
	CopyField(ctx context.Context, actor *userDomain.User, id int64, field domain.SensitiveField) (string, error)

	// CreateCredential creates a credential, sealing the provided secrets.
	CreateCredential(ctx context.Context, actor *userDomain.User, input CreateCredentialInput) (*domain.Credential, error)

	// UpdateCredential applies a partial update. A type change discards
	// every existing envelope before new secrets are sealed.
	UpdateCredential(ctx context.Context, actor *userDomain.User, id int64, input UpdateCredentialInput) (*domain.Credential, error)

	// DeleteCredential permanently removes a credential. The audit entry
	// keeps the label captured before deletion.
	DeleteCredential(ctx context.Context, actor *userDomain.User, id int64) error

	// ReorderCredentials assigns sort positions from the id sequence.
	// Credentials missing from the sequence keep their position.
	ReorderCredentials(ctx context.Context, actor *userDomain.User, ids []int64) error
}

// CredentialRepository defines the persistence operations the usecase needs.
type CredentialRepository interface {
	Create(ctx context.Context, credential *domain.Credential) error
	GetByID(ctx context.Context, id int64) (*domain.Credential, error)
	List(ctx context.Context) ([]*domain.Credential, error)
	Update(ctx context.Context, credential *domain.Credential) error
	Delete(ctx context.Context, id int64) error
	UpdateSortOrder(ctx context.Context, id int64, sortOrder int) error
}

// AuditLogger records audit trail entries for vault operations.
type AuditLogger interface {
	Log(ctx context.Context, entry *auditDomain.AuditLog) error
}
