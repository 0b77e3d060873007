package app

import (
	"context"
	"fmt"

	vaultRepository "github.com/briefnote/briefnote/internal/vault/repository"
	vaultService "github.com/briefnote/briefnote/internal/vault/service"
	vaultUseCase "github.com/briefnote/briefnote/internal/vault/usecase"
)

// KMSKeeper returns the KMS keeper used to wrap the persisted root key, or
// nil when no KMS key URI is configured.
func (c *Container) KMSKeeper() (vaultService.Keeper, error) {
	var err error
	c.kmsKeeperInit.Do(func() {
		if c.config.KMSKeyURI == "" {
			return
		}
		kmsService := vaultService.NewKMSService()
		c.kmsKeeper, err = kmsService.OpenKeeper(context.Background(), c.config.KMSKeyURI)
		if err != nil {
			c.initErrors["kmsKeeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kmsKeeper"]; exists {
		return nil, storedErr
	}
	return c.kmsKeeper, nil
}

// RootKeyManager returns the root key manager service.
func (c *Container) RootKeyManager() (vaultService.KeyManager, error) {
	var err error
	c.rootKeyManagerInit.Do(func() {
		c.rootKeyManager, err = c.initRootKeyManager()
		if err != nil {
			c.initErrors["rootKeyManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rootKeyManager"]; exists {
		return nil, storedErr
	}
	return c.rootKeyManager, nil
}

// EnvelopeCodec returns the envelope encryption codec.
func (c *Container) EnvelopeCodec() (vaultService.EnvelopeCodec, error) {
	var err error
	c.envelopeCodecInit.Do(func() {
		var keyManager vaultService.KeyManager
		keyManager, err = c.RootKeyManager()
		if err != nil {
			c.initErrors["envelopeCodec"] = err
			return
		}
		c.envelopeCodec = vaultService.NewEnvelopeCodec(keyManager)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeCodec"]; exists {
		return nil, storedErr
	}
	return c.envelopeCodec, nil
}

// CredentialRepository returns the credential repository based on the database driver.
func (c *Container) CredentialRepository() (vaultUseCase.CredentialRepository, error) {
	var err error
	c.credentialRepoInit.Do(func() {
		c.credentialRepo, err = c.initCredentialRepository()
		if err != nil {
			c.initErrors["credentialRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialRepo"]; exists {
		return nil, storedErr
	}
	return c.credentialRepo, nil
}

// VaultUseCase returns the credential vault use case, wrapped with business
// metrics recording.
func (c *Container) VaultUseCase() (vaultUseCase.UseCase, error) {
	var err error
	c.vaultUCInit.Do(func() {
		c.vaultUC, err = c.initVaultUseCase()
		if err != nil {
			c.initErrors["vaultUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultUseCase"]; exists {
		return nil, storedErr
	}
	return c.vaultUC, nil
}

// initRootKeyManager creates the root key manager with optional KMS wrapping.
func (c *Container) initRootKeyManager() (vaultService.KeyManager, error) {
	optionRepo, err := c.OptionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get option repository for root key manager: %w", err)
	}

	keeper, err := c.KMSKeeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get kms keeper for root key manager: %w", err)
	}

	return vaultService.NewRootKeyManager(optionRepo, keeper), nil
}

// initCredentialRepository creates the credential repository based on the database driver.
func (c *Container) initCredentialRepository() (vaultUseCase.CredentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return vaultRepository.NewMySQLCredentialRepository(db), nil
	case "postgres":
		return vaultRepository.NewPostgreSQLCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initVaultUseCase creates the vault use case with all its dependencies.
func (c *Container) initVaultUseCase() (vaultUseCase.UseCase, error) {
	credentialRepo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for vault use case: %w", err)
	}

	codec, err := c.EnvelopeCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope codec for vault use case: %w", err)
	}

	auditUC, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for vault use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for vault use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
	}

	useCase := vaultUseCase.NewCredentialUseCase(credentialRepo, codec, auditUC, txManager, c.Logger())

	return vaultUseCase.NewMetricsDecorator(useCase, businessMetrics), nil
}
