package postgres

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/repository"
	"crm/internal/errors"
	"crm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// registerFailedAttemptSQL increments the counter and decides the lock in one
// statement. An expired lock restarts the count at 1; an active lock is never
// extended by stragglers that passed the lock check concurrently. locked_now
// compares against the row as it was before this statement, so it is true for
// exactly one attempt per lock whatever the threshold was when the count grew.
const registerFailedAttemptSQL = `
WITH prev AS (
	SELECT id, locked_until FROM users WHERE id = @id FOR UPDATE
)
UPDATE users AS u SET
	failed_login_attempts = CASE
		WHEN u.locked_until IS NOT NULL AND u.locked_until <= @now THEN 1
		ELSE u.failed_login_attempts + 1
	END,
	locked_until = CASE
		WHEN u.locked_until IS NOT NULL AND u.locked_until > @now THEN u.locked_until
		WHEN (CASE
			WHEN u.locked_until IS NOT NULL AND u.locked_until <= @now THEN 1
			ELSE u.failed_login_attempts + 1
		END) >= @threshold THEN @lock_until
		ELSE NULL
	END,
	updated_at = @now
FROM prev
WHERE u.id = prev.id
RETURNING
	u.failed_login_attempts,
	u.locked_until,
	(u.locked_until IS NOT NULL AND (prev.locked_until IS NULL OR prev.locked_until <= @now)) AS locked_now`

type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

func (repo *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var m model.CredentialModel
	// Lockout decisions must not read a lagging replica.
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("email = ?", entity.NormalizeEmail(email)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, wrapDBError(err, "find credential by email")
	}

	return toCredentialDomain(&m), nil
}

func (repo *credentialRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Credential, error) {
	var m model.CredentialModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, wrapDBError(err, "find credential by id")
	}

	return toCredentialDomain(&m), nil
}

func (repo *credentialRepository) Create(ctx context.Context, cred *entity.Credential) error {
	m := fromCredentialDomain(cred)
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrCredentialAlreadyExists
		}

		return wrapDBError(err, "create credential")
	}

	cred.ID = m.ID
	cred.CreatedAt = m.CreatedAt
	cred.UpdatedAt = m.UpdatedAt

	return nil
}

func (repo *credentialRepository) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	var m model.CredentialModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrCredentialNotFound
		}

		return wrapDBError(err, "lock credential row")
	}

	return nil
}

type failedAttemptRow struct {
	FailedLoginAttempts int
	LockedUntil         *time.Time
	LockedNow           bool
}

func (repo *credentialRepository) RegisterFailedAttempt(ctx context.Context, id uuid.UUID, threshold int, lockUntil, now time.Time) (*entity.FailedAttemptResult, error) {
	var row failedAttemptRow
	result := repo.db.WithContext(ctx).
		Raw(registerFailedAttemptSQL, map[string]any{
			"id":         id,
			"now":        now,
			"threshold":  threshold,
			"lock_until": lockUntil,
		}).
		Scan(&row)
	if result.Error != nil {
		return nil, wrapDBError(result.Error, "register failed login attempt")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrCredentialNotFound
	}

	return &entity.FailedAttemptResult{
		FailedLoginAttempts: row.FailedLoginAttempts,
		LockedUntil:         row.LockedUntil,
		LockedNow:           row.LockedNow,
	}, nil
}

func (repo *credentialRepository) ResetFailedAttempts(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.CredentialModel{}).
		Where("id = ? AND (locked_until IS NULL OR locked_until <= ?)", id, now).
		Updates(map[string]any{
			"failed_login_attempts": 0,
			"locked_until":          nil,
			"last_login_at":         now,
			"updated_at":            now,
		})
	if result.Error != nil {
		return false, wrapDBError(result.Error, "reset failed login attempts")
	}

	return result.RowsAffected == 1, nil
}

func toCredentialDomain(m *model.CredentialModel) *entity.Credential {
	return &entity.Credential{
		ID:                  m.ID,
		Email:               m.Email,
		Name:                m.Name,
		PasswordHash:        m.PasswordHash,
		Role:                entity.Role(m.Role),
		FailedLoginAttempts: m.FailedLoginAttempts,
		LockedUntil:         m.LockedUntil,
		IsActive:            m.IsActive,
		LastLoginAt:         m.LastLoginAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func fromCredentialDomain(c *entity.Credential) *model.CredentialModel {
	return &model.CredentialModel{
		ID:                  c.ID,
		Email:               entity.NormalizeEmail(c.Email),
		Name:                c.Name,
		PasswordHash:        c.PasswordHash,
		Role:                c.Role.String(),
		FailedLoginAttempts: c.FailedLoginAttempts,
		LockedUntil:         c.LockedUntil,
		IsActive:            c.IsActive,
		LastLoginAt:         c.LastLoginAt,
	}
}
