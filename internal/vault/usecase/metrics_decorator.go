package usecase

import (
	"context"
	"time"

	"github.com/briefnote/briefnote/internal/metrics"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	"github.com/briefnote/briefnote/internal/vault/domain"
)

// metricsDomain is the business domain label for vault operations.
const metricsDomain = "vault"

// MetricsDecorator wraps a UseCase and records operation counts and durations.
type MetricsDecorator struct {
	next            UseCase
	businessMetrics metrics.BusinessMetrics
}

// NewMetricsDecorator creates a new metrics decorator around the given usecase.
func NewMetricsDecorator(next UseCase, businessMetrics metrics.BusinessMetrics) *MetricsDecorator {
	return &MetricsDecorator{
		next:            next,
		businessMetrics: businessMetrics,
	}
}

// record emits the operation counter and duration histogram for one call.
func (d *MetricsDecorator) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	d.businessMetrics.RecordOperation(ctx, metricsDomain, operation, status)
	d.businessMetrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// ListCredentials delegates to the wrapped usecase and records metrics.
func (d *MetricsDecorator) ListCredentials(ctx context.Context) ([]*domain.Credential, error) {
	start := time.Now()
	credentials, err := d.next.ListCredentials(ctx)
	d.record(ctx, "credential_list", start, err)
	return credentials, err
}

// GetCredential delegates to the wrapped usecase and records metrics.
func (d *MetricsDecorator) GetCredential(ctx context.Context, id int64) (*domain.Credential, error) {
	start := time.Now()
	credential, err := d.next.GetCredential(ctx, id)
	d.record(ctx, "credential_get", start, err)
	return credential, err
}

// GetDecryptedCredential delegates to the wrapped usecase and records metrics.
func (d *MetricsDecorator) GetDecryptedCredential(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
) (*domain.DecryptedCredential, error) {
	start := time.Now()
	decrypted, err := d.next.GetDecryptedCredential(ctx, actor, id)
	d.record(ctx, "credential_get_decrypted", start, err)
	return decrypted, err
}

// RevealField delegates to the wrapped usecase and records metrics.
func (d *MetricsDecorator) RevealField(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
	field domain.SensitiveField,
) (string, error) {
	start := time.Now()
	plaintext, err := d.next.RevealField(ctx, actor, id, field)
	d.record(ctx, "credential_reveal", start, err)
	return plaintext, err
}

// CopyField delegates to the wrapped usecase and records metrics.
func (d *MetricsDecorator) CopyField(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
	field domain.SensitiveField,
) (string, error) {
	start := time.Now()
	plaintext, err := d.next.CopyField(ctx, actor, id, field)
	d.record(ctx, "credential_copy", start, err)
	return plaintext, err
}

// CreateCredential delegates to the wrapped usecase and records metrics.
func (d *MetricsDecorator) CreateCredential(
	ctx context.Context,
	actor *userDomain.User,
	input CreateCredentialInput,
) (*domain.Credential, error) {
	start := time.Now()
	credential, err := d.next.CreateCredential(ctx, actor, input)
	d.record(ctx, "credential_create", start, err)
	return credential, err
}

// UpdateCredential delegates to the wrapped usecase and records metrics.
func (d *MetricsDecorator) UpdateCredential(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
	input UpdateCredentialInput,
) (*domain.Credential, error) {
	start := time.Now()
	credential, err := d.next.UpdateCredential(ctx, actor, id, input)
	d.record(ctx, "credential_update", start, err)
	return credential, err
}

// DeleteCredential delegates to the wrapped usecase and records metrics.
func (d *MetricsDecorator) DeleteCredential(ctx context.Context, actor *userDomain.User, id int64) error {
	start := time.Now()
	err := d.next.DeleteCredential(ctx, actor, id)
	d.record(ctx, "credential_delete", start, err)
	return err
}

// ReorderCredentials delegates to the wrapped usecase and records metrics.
func (d *MetricsDecorator) ReorderCredentials(ctx context.Context, actor *userDomain.User, ids []int64) error {
	start := time.Now()
	err := d.next.ReorderCredentials(ctx, actor, ids)
	d.record(ctx, "credential_reorder", start, err)
	return err
}
