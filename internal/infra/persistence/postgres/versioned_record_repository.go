package postgres

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/repository"
	"crm/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// versionedRecordRepository builds its statements from the entity.Resources
// registry. Table and column identifiers never come from request input directly.
type versionedRecordRepository struct {
	db *gorm.DB
}

// NewVersionedRecordRepository is the constructor for versionedRecordRepository.
func NewVersionedRecordRepository(db *gorm.DB) repository.VersionedRecordRepository {
	return &versionedRecordRepository{db: db}
}

func (repo *versionedRecordRepository) ConditionalUpdate(
	ctx context.Context,
	table string,
	id uuid.UUID,
	expectedVersion *int64,
	fields map[string]any,
) (*entity.VersionedRow, error) {
	res, err := resourceForTable(table)
	if err != nil {
		return nil, err
	}
	cols, err := registeredColumns(res, fields)
	if err != nil {
		return nil, err
	}

	args := map[string]any{"id": id, "now": time.Now().UTC()}
	sets := make([]string, 0, len(cols)+2)
	for i, col := range cols {
		param := fmt.Sprintf("f%d", i)
		sets = append(sets, fmt.Sprintf("%s = @%s", quoteIdent(col), param))
		args[param] = fields[col]
	}
	sets = append(sets, "version = version + 1", "updated_at = @now")

	where := "id = @id"
	if expectedVersion != nil {
		where += " AND version = @expected_version"
		args["expected_version"] = *expectedVersion
	}

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s RETURNING *",
		quoteIdent(res.Table), strings.Join(sets, ", "), where)

	var rows []map[string]any
	if err := repo.db.WithContext(ctx).Raw(stmt, args).Scan(&rows).Error; err != nil {
		return nil, wrapDBError(err, "conditional update of "+res.Table)
	}

	if len(rows) == 0 {
		return nil, repo.explainMiss(ctx, res, id, expectedVersion)
	}

	return toVersionedRow(res, rows[0])
}

// explainMiss tells a missing row apart from a stale version after an update matched nothing.
func (repo *versionedRecordRepository) explainMiss(ctx context.Context, res *entity.Resource, id uuid.UUID, expectedVersion *int64) error {
	var versions []int64
	stmt := fmt.Sprintf("SELECT version FROM %s WHERE id = ?", quoteIdent(res.Table))
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Raw(stmt, id).
		Scan(&versions).Error
	if err != nil {
		return wrapDBError(err, "read current version of "+res.Table)
	}

	if len(versions) == 0 || expectedVersion == nil {
		return repository.ErrRecordNotFound
	}

	return &repository.VersionConflict{CurrentVersion: versions[0], AttemptedVersion: *expectedVersion}
}

func (repo *versionedRecordRepository) FindByID(ctx context.Context, table string, id uuid.UUID) (*entity.VersionedRow, error) {
	res, err := resourceForTable(table)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	stmt := fmt.Sprintf("SELECT * FROM %s WHERE id = ?", quoteIdent(res.Table))
	err = repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Raw(stmt, id).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err, "find "+res.Table+" by id")
	}
	if len(rows) == 0 {
		return nil, repository.ErrRecordNotFound
	}

	return toVersionedRow(res, rows[0])
}

func (repo *versionedRecordRepository) Insert(ctx context.Context, table string, fields map[string]any) (*entity.VersionedRow, error) {
	res, err := resourceForTable(table)
	if err != nil {
		return nil, err
	}
	cols, err := registeredColumns(res, fields)
	if err != nil {
		return nil, err
	}

	args := map[string]any{"now": time.Now().UTC()}
	names := make([]string, 0, len(cols)+3)
	values := make([]string, 0, len(cols)+3)
	for i, col := range cols {
		param := fmt.Sprintf("f%d", i)
		names = append(names, quoteIdent(col))
		values = append(values, "@"+param)
		args[param] = fields[col]
	}
	names = append(names, "version", "created_at", "updated_at")
	values = append(values, "1", "@now", "@now")

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		quoteIdent(res.Table), strings.Join(names, ", "), strings.Join(values, ", "))

	var rows []map[string]any
	if err := repo.db.WithContext(ctx).Raw(stmt, args).Scan(&rows).Error; err != nil {
		return nil, wrapDBError(err, "insert into "+res.Table)
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("insert into %s returned no row", res.Table)
	}

	return toVersionedRow(res, rows[0])
}

func resourceForTable(table string) (*entity.Resource, error) {
	for _, res := range entity.Resources {
		if res.Table == table {
			return res, nil
		}
	}

	return nil, errors.Errorf("table %q is not a versioned resource", table)
}

// registeredColumns returns the keys of fields in a stable order after checking
// each one is a patchable column of res.
func registeredColumns(res *entity.Resource, fields map[string]any) ([]string, error) {
	if len(fields) == 0 {
		return nil, errors.New("no fields to write")
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		if _, ok := res.AttributeName(col); !ok {
			return nil, errors.Errorf("column %q is not writable on %s", col, res.Table)
		}
		cols = append(cols, col)
	}
	slices.Sort(cols)

	return cols, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func toVersionedRow(res *entity.Resource, row map[string]any) (*entity.VersionedRow, error) {
	id, err := decodeUUID(row["id"])
	if err != nil {
		return nil, err
	}
	version, ok := decodeInt(row["version"])
	if !ok {
		return nil, errors.Errorf("%s row %s has no version", res.Table, id)
	}
	updatedAt, _ := row["updated_at"].(time.Time)

	kinds := make(map[string]entity.FieldKind, len(res.Fields))
	for _, f := range res.Fields {
		kinds[f.Column] = f.Kind
	}

	cols := make(map[string]any, len(row))
	for col, v := range row {
		cols[col] = decodeColumn(kinds, col, v)
	}

	return &entity.VersionedRow{
		ID:        id,
		Version:   version,
		UpdatedAt: updatedAt,
		Columns:   cols,
	}, nil
}

func decodeUUID(v any) (uuid.UUID, error) {
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case [16]byte:
		return uuid.UUID(t), nil
	case string:
		return uuid.Parse(t)
	case []byte:
		if len(t) == 16 {
			return uuid.FromBytes(t)
		}

		return uuid.ParseBytes(t)
	default:
		return uuid.Nil, errors.Errorf("unexpected id type %T", v)
	}
}

func decodeInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case int:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)

		return n, err == nil
	default:
		return 0, false
	}
}

// decodeColumn normalizes driver values: numeric arrives as text and needs the registry kind.
func decodeColumn(kinds map[string]entity.FieldKind, col string, v any) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}

	kind, ok := kinds[col]
	if !ok {
		return v
	}

	switch kind {
	case entity.FieldNumber:
		if s, ok := v.(string); ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
	case entity.FieldInteger:
		if n, ok := decodeInt(v); ok {
			return n
		}
	case entity.FieldString, entity.FieldTime:
	}

	return v
}
