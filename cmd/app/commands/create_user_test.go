package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	userUseCase "github.com/briefnote/briefnote/internal/user/usecase"
)

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) CreateUser(
	ctx context.Context,
	input userUseCase.CreateUserInput,
) (*userDomain.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*userDomain.User), args.String(1), args.Error(2)
}

func (m *mockUserUseCase) Authenticate(ctx context.Context, plainToken string) (*userDomain.User, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserUseCase) GetUserByID(ctx context.Context, id int64) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserUseCase) GetUserByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func TestRunCreateUser(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	input := userUseCase.CreateUserInput{
		Name:               "Ada Lovelace",
		Email:              "ada@example.com",
		Password:           "Str0ngPassword",
		CanViewCredentials: true,
		CanViewNotes:       true,
	}
	user := &userDomain.User{
		ID:    1,
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &mockUserUseCase{}
		mockUseCase.On("CreateUser", ctx, input).Return(user, "plain-api-token", nil)

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, &out, input, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "User created successfully!")
		require.Contains(t, out.String(), "API Token: plain-api-token")
		require.Contains(t, out.String(), "shown only once")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &mockUserUseCase{}
		mockUseCase.On("CreateUser", ctx, input).Return(user, "plain-api-token", nil)

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, &out, input, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"api_token": "plain-api-token"`)
		require.Contains(t, out.String(), `"email": "ada@example.com"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("creation-failure", func(t *testing.T) {
		mockUseCase := &mockUserUseCase{}
		mockUseCase.On("CreateUser", ctx, input).Return(nil, "", errors.New("database unavailable"))

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, &out, input, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create user")
		require.Empty(t, out.String())
	})
}
