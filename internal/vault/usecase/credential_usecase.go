package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	auditDomain "github.com/briefnote/briefnote/internal/audit/domain"
	"github.com/briefnote/briefnote/internal/database"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	"github.com/briefnote/briefnote/internal/vault/domain"
	"github.com/briefnote/briefnote/internal/vault/service"
)

// CredentialUseCase handles credential vault business logic.
type CredentialUseCase struct {
	credentialRepo CredentialRepository
	codec          service.EnvelopeCodec
	auditLogger    AuditLogger
	txManager      database.TxManager
	logger         *slog.Logger
}

// NewCredentialUseCase creates a new CredentialUseCase.
func NewCredentialUseCase(
	credentialRepo CredentialRepository,
	codec service.EnvelopeCodec,
	auditLogger AuditLogger,
	txManager database.TxManager,
	logger *slog.Logger,
) *CredentialUseCase {
	return &CredentialUseCase{
		credentialRepo: credentialRepo,
		codec:          codec,
		auditLogger:    auditLogger,
		txManager:      txManager,
		logger:         logger,
	}
}

// ListCredentials returns all credentials as metadata only.
func (uc *CredentialUseCase) ListCredentials(ctx context.Context) ([]*domain.Credential, error) {
	credentials, err := uc.credentialRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stripped := make([]*domain.Credential, 0, len(credentials))
	for _, credential := range credentials {
		stripped = append(stripped, credential.StripEnvelopes())
	}
	return stripped, nil
}

// GetCredential returns a single credential as metadata only.
func (uc *CredentialUseCase) GetCredential(ctx context.Context, id int64) (*domain.Credential, error) {
	credential, err := uc.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return credential.StripEnvelopes(), nil
}

// GetDecryptedCredential returns a credential with all sensitive fields opened.
func (uc *CredentialUseCase) GetDecryptedCredential(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
) (*domain.DecryptedCredential, error) {
	credential, err := uc.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decrypted := &domain.DecryptedCredential{Credential: *credential.StripEnvelopes()}
	for _, field := range credential.Type.SensitiveFields() {
		plaintext, err := uc.codec.Decrypt(ctx, credential.Envelope(field))
		if err != nil {
			// A single undecryptable field must not take down the whole
			// credential; the field is shown empty instead.
			uc.logger.Warn("field decryption failed",
				slog.Int64("credential_id", credential.ID),
				slog.String("field", string(field)),
				slog.Any("error", err),
			)
			plaintext = ""
		}
		decrypted.SetPlaintext(field, plaintext)
	}

	uc.audit(ctx, actor, auditDomain.ActionViewed, credential.Label, &credential.ID, "")

	return decrypted, nil
}

// RevealField opens a single sensitive field.
func (uc *CredentialUseCase) RevealField(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
	field domain.SensitiveField,
) (string, error) {
	return uc.openField(ctx, actor, id, field, auditDomain.ActionViewed)
}

// CopyField opens a single sensitive field for clipboard use.
func (uc *CredentialUseCase) CopyField(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
	field domain.SensitiveField,
) (string, error) {
	return uc.openField(ctx, actor, id, field, auditDomain.ActionCopied)
}

// openField decrypts one field and records the access.
func (uc *CredentialUseCase) openField(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
	field domain.SensitiveField,
	action auditDomain.Action,
) (string, error) {
	if !field.Valid() {
		return "", domain.ErrInvalidField
	}

	credential, err := uc.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !fieldBelongsToType(field, credential.Type) {
		return "", domain.ErrInvalidField
	}

	plaintext, err := uc.codec.Decrypt(ctx, credential.Envelope(field))
	if err != nil {
		return "", err
	}

	uc.audit(ctx, actor, action, credential.Label, &credential.ID, "Field: "+string(field))

	return plaintext, nil
}

// CreateCredential creates a credential, sealing the provided secrets.
func (uc *CredentialUseCase) CreateCredential(
	ctx context.Context,
	actor *userDomain.User,
	input CreateCredentialInput,
) (*domain.Credential, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	// Refuse to store anything when encryption cannot work.
	if err := uc.codec.Ready(ctx); err != nil {
		return nil, err
	}

	credential := &domain.Credential{
		Label:     strings.TrimSpace(input.Label),
		Type:      input.Type,
		URL:       strings.TrimSpace(input.URL),
		Notes:     input.Notes,
		SortOrder: input.SortOrder,
		CreatedBy: actor.ID,
	}

	if err := uc.sealSecrets(ctx, credential, input.Secrets); err != nil {
		return nil, err
	}

	if err := uc.credentialRepo.Create(ctx, credential); err != nil {
		return nil, err
	}

	uc.audit(ctx, actor, auditDomain.ActionCreated, credential.Label, &credential.ID, "")

	return credential.StripEnvelopes(), nil
}

// UpdateCredential applies a partial update.
func (uc *CredentialUseCase) UpdateCredential(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
	input UpdateCredentialInput,
) (*domain.Credential, error) {
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	if err := uc.codec.Ready(ctx); err != nil {
		return nil, err
	}

	credential, err := uc.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil && *input.Type != credential.Type {
		// Envelopes from the previous type are meaningless under the new
		// one, so a type change always starts from a clean slate.
		credential.Type = *input.Type
		credential.ClearEnvelopes()
	}
	if input.Label != nil {
		credential.Label = strings.TrimSpace(*input.Label)
	}
	if input.URL != nil {
		credential.URL = strings.TrimSpace(*input.URL)
	}
	if input.Notes != nil {
		credential.Notes = *input.Notes
	}
	if input.SortOrder != nil {
		credential.SortOrder = *input.SortOrder
	}

	if credential.Label == "" {
		return nil, domain.ErrLabelRequired
	}

	for field := range input.Secrets {
		if !field.Valid() || !fieldBelongsToType(field, credential.Type) {
			return nil, domain.ErrInvalidField
		}
	}
	if err := uc.sealSecrets(ctx, credential, input.Secrets); err != nil {
		return nil, err
	}

	if err := uc.credentialRepo.Update(ctx, credential); err != nil {
		return nil, err
	}

	uc.audit(ctx, actor, auditDomain.ActionModified, credential.Label, &credential.ID, "")

	return credential.StripEnvelopes(), nil
}

// DeleteCredential permanently removes a credential.
func (uc *CredentialUseCase) DeleteCredential(ctx context.Context, actor *userDomain.User, id int64) error {
	// The label must be captured before the row disappears.
	credential, err := uc.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.credentialRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit(ctx, actor, auditDomain.ActionDeleted, credential.Label, &credential.ID, "")

	return nil
}

// ReorderCredentials assigns sort positions from the id sequence.
func (uc *CredentialUseCase) ReorderCredentials(ctx context.Context, actor *userDomain.User, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		for position, id := range ids {
			if err := uc.credentialRepo.UpdateSortOrder(ctx, id, position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit(ctx, actor, auditDomain.ActionModified, "", nil,
		fmt.Sprintf("Reordered %d credentials", len(ids)))

	return nil
}

// sealSecrets encrypts the provided plaintext values into the credential.
func (uc *CredentialUseCase) sealSecrets(
	ctx context.Context,
	credential *domain.Credential,
	secrets map[domain.SensitiveField]string,
) error {
	for field, plaintext := range secrets {
		envelope, err := uc.codec.Encrypt(ctx, plaintext)
		if err != nil {
			return err
		}
		credential.SetEnvelope(field, envelope)
	}
	return nil
}

// audit records an audit entry. Audit failures are logged and swallowed so
// they never block the primary operation.
func (uc *CredentialUseCase) audit(
	ctx context.Context,
	actor *userDomain.User,
	action auditDomain.Action,
	label string,
	credentialID *int64,
	details string,
) {
	entry := &auditDomain.AuditLog{
		Action:          action,
		CredentialLabel: label,
		CredentialID:    credentialID,
		Details:         details,
	}
	if actor != nil {
		entry.UserID = actor.ID
	}

	if err := uc.auditLogger.Log(ctx, entry); err != nil {
		uc.logger.Error("failed to write audit entry",
			slog.String("action", string(action)),
			slog.Any("error", err),
		)
	}
}

// validateCreateInput checks required fields and the secrets/type pairing.
func validateCreateInput(input CreateCredentialInput) error {
	if strings.TrimSpace(input.Label) == "" {
		return domain.ErrLabelRequired
	}
	if !input.Type.Valid() {
		return domain.ErrInvalidCredentialType
	}
	for field := range input.Secrets {
		if !field.Valid() || !fieldBelongsToType(field, input.Type) {
			return domain.ErrInvalidField
		}
	}
	return nil
}

// validateUpdateInput checks the fields that can be verified without the
// stored credential.
func validateUpdateInput(input UpdateCredentialInput) error {
	if input.Label != nil && strings.TrimSpace(*input.Label) == "" {
		return domain.ErrLabelRequired
	}
	if input.Type != nil && !input.Type.Valid() {
		return domain.ErrInvalidCredentialType
	}
	return nil
}

// fieldBelongsToType reports whether the field is valid for the type.
func fieldBelongsToType(field domain.SensitiveField, credType domain.CredentialType) bool {
	for _, allowed := range credType.SensitiveFields() {
		if field == allowed {
			return true
		}
	}
	return false
}
