package impl

import (
	"context"
	"log/slog"

	"crm/config"
	"crm/internal/domain/entity"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	"crm/internal/errors"

	"go.uber.org/fx"
)

const defaultAdminName = "Administrator"

// AdminBootstrapper seeds the first admin credential on an empty install.
type AdminBootstrapper struct {
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	cfg            *config.BootstrapConfig
	logger         *slog.Logger
}

// NewAdminBootstrapper returns nil when bootstrap is not configured.
func NewAdminBootstrapper(
	credentialRepo repository.CredentialRepository,
	hasher service.PasswordHasher,
	cfg *config.BootstrapConfig,
	logger *slog.Logger,
) *AdminBootstrapper {
	if cfg == nil || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	return &AdminBootstrapper{
		credentialRepo: credentialRepo,
		hasher:         hasher,
		cfg:            cfg,
		logger:         logger,
	}
}

// EnsureAdmin creates the admin credential unless one already exists for the
// configured email. It reports whether a credential was created.
func (b *AdminBootstrapper) EnsureAdmin(ctx context.Context) (bool, error) {
	email := entity.NormalizeEmail(b.cfg.AdminEmail)

	_, err := b.credentialRepo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrCredentialNotFound) {
		return false, errors.Wrap(err, "failed to look up bootstrap admin")
	}

	hash, err := b.hasher.Hash(b.cfg.AdminPassword)
	if err != nil {
		return false, errors.Wrap(err, "failed to hash bootstrap admin password")
	}

	name := b.cfg.AdminName
	if name == "" {
		name = defaultAdminName
	}

	err = b.credentialRepo.Create(ctx, &entity.Credential{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		// Another replica won the race.
		if errors.Is(err, repository.ErrCredentialAlreadyExists) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to create bootstrap admin")
	}
	b.logger.Info("Bootstrap admin created", slog.String("email", email))

	return true, nil
}

// AdminBootstrapParams defines the dependencies of RegisterAdminBootstrap
type AdminBootstrapParams struct {
	fx.In

	Lc             fx.Lifecycle
	Config         *config.Config
	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	Logger         *slog.Logger
}

// RegisterAdminBootstrap seeds the admin on start. Invoke it after migrations are registered.
func RegisterAdminBootstrap(params AdminBootstrapParams) {
	bootstrapper := NewAdminBootstrapper(params.CredentialRepo, params.Hasher, params.Config.Bootstrap, params.Logger)
	if bootstrapper == nil {
		return
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := bootstrapper.EnsureAdmin(ctx)

			return err
		},
	})
}
