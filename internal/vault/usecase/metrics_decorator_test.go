package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/briefnote/briefnote/internal/errors"
	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	"github.com/briefnote/briefnote/internal/vault/domain"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) ListCredentials(ctx context.Context) ([]*domain.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Credential), args.Error(1)
}

func (m *mockUseCase) GetCredential(ctx context.Context, id int64) (*domain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *mockUseCase) GetDecryptedCredential(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
) (*domain.DecryptedCredential, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DecryptedCredential), args.Error(1)
}

func (m *mockUseCase) RevealField(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
	field domain.SensitiveField,
) (string, error) {
	args := m.Called(ctx, actor, id, field)
	return args.String(0), args.Error(1)
}

func (m *mockUseCase) CopyField(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
	field domain.SensitiveField,
) (string, error) {
	args := m.Called(ctx, actor, id, field)
	return args.String(0), args.Error(1)
}

func (m *mockUseCase) CreateCredential(
	ctx context.Context,
	actor *userDomain.User,
	input CreateCredentialInput,
) (*domain.Credential, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *mockUseCase) UpdateCredential(
	ctx context.Context,
	actor *userDomain.User,
	id int64,
	input UpdateCredentialInput,
) (*domain.Credential, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *mockUseCase) DeleteCredential(ctx context.Context, actor *userDomain.User, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *mockUseCase) ReorderCredentials(ctx context.Context, actor *userDomain.User, ids []int64) error {
	args := m.Called(ctx, actor, ids)
	return args.Error(0)
}

func TestMetricsDecorator(t *testing.T) {
	ctx := context.Background()

	t.Run("records success for a passing operation", func(t *testing.T) {
		next := new(mockUseCase)
		businessMetrics := new(mockBusinessMetrics)
		decorator := NewMetricsDecorator(next, businessMetrics)

		next.On("ListCredentials", ctx).Return([]*domain.Credential{}, nil)
		businessMetrics.On("RecordOperation", ctx, "vault", "credential_list", "success").Return()
		businessMetrics.On("RecordDuration", ctx, "vault", "credential_list", mock.Anything, "success").Return()

		_, err := decorator.ListCredentials(ctx)
		require.NoError(t, err)
		businessMetrics.AssertExpectations(t)
	})

	t.Run("records error for a failing operation", func(t *testing.T) {
		next := new(mockUseCase)
		businessMetrics := new(mockBusinessMetrics)
		decorator := NewMetricsDecorator(next, businessMetrics)

		next.On("DeleteCredential", ctx, mock.Anything, int64(404)).Return(domain.ErrCredentialNotFound)
		businessMetrics.On("RecordOperation", ctx, "vault", "credential_delete", "error").Return()
		businessMetrics.On("RecordDuration", ctx, "vault", "credential_delete", mock.Anything, "error").Return()

		err := decorator.DeleteCredential(ctx, testActor(), 404)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		businessMetrics.AssertExpectations(t)
	})

	t.Run("passes results through unchanged", func(t *testing.T) {
		next := new(mockUseCase)
		businessMetrics := new(mockBusinessMetrics)
		decorator := NewMetricsDecorator(next, businessMetrics)

		expected := &domain.Credential{ID: 21, Label: "prod db"}
		next.On("GetCredential", ctx, int64(21)).Return(expected, nil)
		businessMetrics.On("RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
		businessMetrics.On("RecordDuration", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

		credential, err := decorator.GetCredential(ctx, 21)
		require.NoError(t, err)
		assert.Equal(t, expected, credential)
	})
}
