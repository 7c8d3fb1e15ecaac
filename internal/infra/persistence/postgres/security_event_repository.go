package postgres

import (
	"context"
	"encoding/json"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/repository"
	"crm/internal/errors"
	"crm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// securityEventRepository is insert-and-read only. Reads may be served by replicas.
type securityEventRepository struct {
	db *gorm.DB
}

// NewSecurityEventRepository is the constructor for securityEventRepository.
func NewSecurityEventRepository(db *gorm.DB) repository.SecurityEventRepository {
	return &securityEventRepository{db: db}
}

func (repo *securityEventRepository) Create(ctx context.Context, event *entity.SecurityEvent) error {
	m, err := fromSecurityEventDomain(event)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		// A retry after a lost ack finds its own row.
		if isUniqueConstraintViolation(err) {
			return nil
		}

		return wrapDBError(err, "insert security event")
	}
	event.ID = m.ID

	return nil
}

func (repo *securityEventRepository) List(ctx context.Context, filter entity.SecurityEventFilter) ([]*entity.SecurityEvent, error) {
	var models []*model.SecurityEventModel
	q := applySecurityEventFilter(repo.db.WithContext(ctx).Model(&model.SecurityEventModel{}), filter).
		Order("created_at DESC, id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	if err := q.Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "list security events")
	}

	return toSecurityEventsDomain(models)
}

func (repo *securityEventRepository) Count(ctx context.Context, filter entity.SecurityEventFilter) (int64, error) {
	var count int64
	q := applySecurityEventFilter(repo.db.WithContext(ctx).Model(&model.SecurityEventModel{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return 0, wrapDBError(err, "count security events")
	}

	return count, nil
}

type categoryStatsRow struct {
	EventCategory string
	Total         int64
	Successful    int64
	Failed        int64
}

func (repo *securityEventRepository) StatsByCategory(ctx context.Context, userID *uuid.UUID, since time.Time) ([]*entity.CategoryStats, error) {
	var rows []categoryStatsRow
	q := repo.db.WithContext(ctx).
		Model(&model.SecurityEventModel{}).
		Select("event_category, COUNT(*) AS total, " +
			"COUNT(*) FILTER (WHERE success) AS successful, " +
			"COUNT(*) FILTER (WHERE NOT success) AS failed").
		Where("created_at >= ?", since)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	if err := q.Group("event_category").Order("total DESC").Scan(&rows).Error; err != nil {
		return nil, wrapDBError(err, "aggregate security events")
	}

	stats := make([]*entity.CategoryStats, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, &entity.CategoryStats{
			Category:   entity.EventCategory(r.EventCategory),
			Total:      r.Total,
			Successful: r.Successful,
			Failed:     r.Failed,
		})
	}

	return stats, nil
}

func (repo *securityEventRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.SecurityEventModel{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBError(err, "count security events")
	}

	return count, nil
}

type eventTypeCountRow struct {
	EventType string
	Count     int64
}

func (repo *securityEventRepository) TopEventTypes(ctx context.Context, since time.Time, limit int) ([]*entity.EventTypeCount, error) {
	var rows []eventTypeCountRow
	err := repo.db.WithContext(ctx).
		Model(&model.SecurityEventModel{}).
		Select("event_type, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("event_type").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err, "top security event types")
	}

	counts := make([]*entity.EventTypeCount, 0, len(rows))
	for _, r := range rows {
		counts = append(counts, &entity.EventTypeCount{EventType: entity.EventType(r.EventType), Count: r.Count})
	}

	return counts, nil
}

func (repo *securityEventRepository) ListBefore(ctx context.Context, cutoff time.Time, limit int) ([]*entity.SecurityEvent, error) {
	var models []*model.SecurityEventModel
	err := repo.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, wrapDBError(err, "list security events before cutoff")
	}

	return toSecurityEventsDomain(models)
}

func (repo *securityEventRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.SecurityEventModel{})
	if result.Error != nil {
		return 0, wrapDBError(result.Error, "purge archived security events")
	}

	return result.RowsAffected, nil
}

func (repo *securityEventRepository) Ping(ctx context.Context) error {
	sqlDB, err := repo.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}

	return wrapDBError(sqlDB.PingContext(ctx), "ping security event store")
}

func applySecurityEventFilter(q *gorm.DB, filter entity.SecurityEventFilter) *gorm.DB {
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.EventType != nil {
		q = q.Where("event_type = ?", string(*filter.EventType))
	}
	if filter.Category != nil {
		q = q.Where("event_category = ?", string(*filter.Category))
	}
	if filter.Severity != nil {
		q = q.Where("severity = ?", string(*filter.Severity))
	}
	if filter.Success != nil {
		q = q.Where("success = ?", *filter.Success)
	}
	if filter.Since != nil {
		q = q.Where("created_at >= ?", *filter.Since)
	}

	return q
}

func fromSecurityEventDomain(e *entity.SecurityEvent) (*model.SecurityEventModel, error) {
	var metadata datatypes.JSON
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, errors.Wrap(err, "marshal security event metadata")
		}
		metadata = datatypes.JSON(raw)
	}

	return &model.SecurityEventModel{
		ID:            e.ID,
		EventType:     string(e.EventType),
		EventCategory: string(e.Category),
		Severity:      string(e.Severity),
		UserID:        e.UserID,
		Email:         e.Email,
		IPAddress:     e.IPAddress,
		UserAgent:     e.UserAgent,
		RequestID:     e.RequestID,
		Success:       e.Success,
		Message:       e.Message,
		Metadata:      metadata,
		CreatedAt:     e.CreatedAt,
	}, nil
}

func toSecurityEventsDomain(models []*model.SecurityEventModel) ([]*entity.SecurityEvent, error) {
	events := make([]*entity.SecurityEvent, 0, len(models))
	for _, m := range models {
		e := &entity.SecurityEvent{
			ID:        m.ID,
			EventType: entity.EventType(m.EventType),
			Category:  entity.EventCategory(m.EventCategory),
			Severity:  entity.Severity(m.Severity),
			UserID:    m.UserID,
			Email:     m.Email,
			IPAddress: m.IPAddress,
			UserAgent: m.UserAgent,
			RequestID: m.RequestID,
			Success:   m.Success,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		}
		if len(m.Metadata) > 0 {
			if err := json.Unmarshal(m.Metadata, &e.Metadata); err != nil {
				return nil, errors.Wrapf(err, "unmarshal metadata of security event %s", m.ID)
			}
		}
		events = append(events, e)
	}

	return events, nil
}
