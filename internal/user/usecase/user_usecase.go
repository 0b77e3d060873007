// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/briefnote/briefnote/internal/errors"
	"github.com/briefnote/briefnote/internal/user/domain"
	"github.com/briefnote/briefnote/internal/user/service"
	appValidation "github.com/briefnote/briefnote/internal/validation"
)

// CreateUserInput contains the input data for user creation
type CreateUserInput struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	IsAdmin            bool   `json:"is_admin"`
	CanViewCredentials bool   `json:"can_view_credentials"`
	CanEditCredentials bool   `json:"can_edit_credentials"`
	CanViewNotes       bool   `json:"can_view_notes"`
	CanEditNotes       bool   `json:"can_edit_notes"`
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	// CreateUser registers a new user. The returned plain token is shown
	// exactly once and never stored.
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, string, error)
	// Authenticate resolves a plain API token to an active user.
	Authenticate(ctx context.Context, plainToken string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	userRepo        UserRepository
	passwordService service.PasswordService
	tokenService    service.TokenService
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	userRepo UserRepository,
	passwordService service.PasswordService,
	tokenService service.TokenService,
) UseCase {
	return &UserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// validateCreateUserInput validates the creation input using jellydator/validation
func (uc *UserUseCase) validateCreateUserInput(input CreateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateUser registers a new user and issues their API token.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, string, error) {
	if err := uc.validateCreateUserInput(input); err != nil {
		return nil, "", err
	}

	hashedPassword, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	plainToken, tokenHash, err := uc.tokenService.GenerateToken()
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:               strings.TrimSpace(input.Name),
		Email:              strings.TrimSpace(strings.ToLower(input.Email)),
		PasswordHash:       hashedPassword,
		TokenHash:          tokenHash,
		IsActive:           true,
		IsAdmin:            input.IsAdmin,
		CanViewCredentials: input.CanViewCredentials,
		CanEditCredentials: input.CanEditCredentials,
		CanViewNotes:       input.CanViewNotes,
		CanEditNotes:       input.CanEditNotes,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	return user, plainToken, nil
}

// Authenticate resolves a plain API token to an active user.
func (uc *UserUseCase) Authenticate(ctx context.Context, plainToken string) (*domain.User, error) {
	if plainToken == "" {
		return nil, domain.ErrInvalidToken
	}

	tokenHash := uc.tokenService.HashToken(plainToken)

	user, err := uc.userRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (uc *UserUseCase) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// GetUserByEmail retrieves a user by email
func (uc *UserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.userRepo.GetByEmail(ctx, email)
}
