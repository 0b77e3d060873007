package app

import (
	"fmt"

	auditRepository "github.com/briefnote/briefnote/internal/audit/repository"
	auditUseCase "github.com/briefnote/briefnote/internal/audit/usecase"
)

// AuditLogRepository returns the audit log repository based on the database driver.
func (c *Container) AuditLogRepository() (auditUseCase.AuditLogRepository, error) {
	var err error
	c.auditLogRepoInit.Do(func() {
		c.auditLogRepo, err = c.initAuditLogRepository()
		if err != nil {
			c.initErrors["auditLogRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogRepo"]; exists {
		return nil, storedErr
	}
	return c.auditLogRepo, nil
}

// AuditLogUseCase returns the audit log use case instance.
func (c *Container) AuditLogUseCase() (auditUseCase.UseCase, error) {
	var err error
	c.auditUCInit.Do(func() {
		c.auditUC, err = c.initAuditLogUseCase()
		if err != nil {
			c.initErrors["auditLogUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUC, nil
}

// initAuditLogRepository creates the audit log repository based on the database driver.
func (c *Container) initAuditLogRepository() (auditUseCase.AuditLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return auditRepository.NewMySQLAuditLogRepository(db), nil
	case "postgres":
		return auditRepository.NewPostgreSQLAuditLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditLogUseCase creates the audit log use case.
func (c *Container) initAuditLogUseCase() (auditUseCase.UseCase, error) {
	auditLogRepo, err := c.AuditLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log repository for audit log use case: %w", err)
	}

	return auditUseCase.NewAuditLogUseCase(auditLogRepo), nil
}
