package app

import (
	"fmt"

	userRepository "github.com/briefnote/briefnote/internal/user/repository"
	userService "github.com/briefnote/briefnote/internal/user/service"
	userUseCase "github.com/briefnote/briefnote/internal/user/usecase"
)

// PasswordService returns the Argon2id password hashing service.
func (c *Container) PasswordService() userService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = userService.NewPasswordService()
	})
	return c.passwordService
}

// TokenService returns the API token generation service.
func (c *Container) TokenService() userService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = userService.NewTokenService()
	})
	return c.tokenService
}

// UserRepository returns the user repository based on the database driver.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	var err error
	c.userRepoInit.Do(func() {
		c.userRepo, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	var err error
	c.userUCInit.Do(func() {
		c.userUC, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUC, nil
}

// initUserRepository creates the user repository based on the database driver.
func (c *Container) initUserRepository() (userUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return userRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (userUseCase.UseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	return userUseCase.NewUserUseCase(userRepo, c.PasswordService(), c.TokenService()), nil
}
