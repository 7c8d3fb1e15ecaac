package impl

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"testing"
	"time"

	"crm/config"
	"crm/internal/domain/entity"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	"crm/internal/errors"
	"crm/internal/infra/auth"
	"crm/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

const testPassword = "Correct-Horse-42"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "impl_test_access_secret_key_long_enough"
	cfg.SecretKey.Refresh = "impl_test_refresh_secret_key_long_enough"
	cfg.Auth = &config.AuthConfig{BcryptCost: 4}
	config.ApplyDefaults(cfg)

	return cfg
}

// testClock is a settable time source shared by services and fakes.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// captureRecorder keeps every recorded event in memory.
type captureRecorder struct {
	mu     sync.Mutex
	events []*entity.SecurityEvent
}

func (r *captureRecorder) Record(_ context.Context, event *entity.SecurityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *captureRecorder) ofType(eventType entity.EventType) []*entity.SecurityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.SecurityEvent
	for _, e := range r.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}

	return out
}

func (r *captureRecorder) count(eventType entity.EventType) int {
	return len(r.ofType(eventType))
}

// fakeCredentialRepo applies the same single-statement semantics as the SQL
// repository, with the mutex standing in for row-level atomicity.
type fakeCredentialRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entity.Credential
	rowLock map[uuid.UUID]*sync.Mutex
	tx      *fakeTxManager
	findErr error
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{
		byID:    make(map[uuid.UUID]*entity.Credential),
		rowLock: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (r *fakeCredentialRepo) add(cred *entity.Credential) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cred.ID == uuid.Nil {
		cred.ID = uuid.New()
	}
	r.byID[cred.ID] = cred
}

func (r *fakeCredentialRepo) get(id uuid.UUID) entity.Credential {
	r.mu.Lock()
	defer r.mu.Unlock()

	return *r.byID[id]
}

func (r *fakeCredentialRepo) FindByEmail(_ context.Context, email string) (*entity.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, c := range r.byID {
		if c.Email == email {
			copied := *c

			return &copied, nil
		}
	}

	return nil, repository.ErrCredentialNotFound
}

func (r *fakeCredentialRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}
	copied := *c

	return &copied, nil
}

func (r *fakeCredentialRepo) Create(_ context.Context, cred *entity.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.byID {
		if c.Email == cred.Email {
			return repository.ErrCredentialAlreadyExists
		}
	}
	cred.ID = uuid.New()
	copied := *cred
	r.byID[cred.ID] = &copied

	return nil
}

func (r *fakeCredentialRepo) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	lock, ok := r.rowLock[id]
	if !ok {
		lock = &sync.Mutex{}
		r.rowLock[id] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	if r.tx == nil || !r.tx.onRelease(ctx, lock.Unlock) {
		lock.Unlock()
	}

	return nil
}

func (r *fakeCredentialRepo) RegisterFailedAttempt(_ context.Context, id uuid.UUID, threshold int, lockUntil, now time.Time) (*entity.FailedAttemptResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}

	wasLocked := c.IsLocked(now)
	switch {
	case c.LockedUntil != nil && !c.LockedUntil.After(now):
		c.FailedLoginAttempts = 1
		c.LockedUntil = nil
	default:
		c.FailedLoginAttempts++
	}
	if c.LockedUntil == nil && c.FailedLoginAttempts >= threshold {
		until := lockUntil
		c.LockedUntil = &until
	}

	return &entity.FailedAttemptResult{
		FailedLoginAttempts: c.FailedLoginAttempts,
		LockedUntil:         c.LockedUntil,
		LockedNow:           !wasLocked && c.LockedUntil != nil,
	}, nil
}

func (r *fakeCredentialRepo) ResetFailedAttempts(_ context.Context, id uuid.UUID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok || c.IsLocked(now) {
		return false, nil
	}
	c.FailedLoginAttempts = 0
	c.LockedUntil = nil
	c.LastLoginAt = &now

	return true, nil
}

// fakeRefreshTokenRepo mirrors the refresh_tokens statements.
type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens []*entity.RefreshToken
	seq    int
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// created_at must order strictly for the newest-first pruning.
	r.seq++
	token.ID = uuid.New()
	token.CreatedAt = token.ExpiresAt.Add(-7*24*time.Hour + time.Duration(r.seq)*time.Millisecond)
	copied := *token
	r.tokens = append(r.tokens, &copied)

	return nil
}

func (r *fakeRefreshTokenRepo) TouchActive(_ context.Context, tokenHash string, now time.Time) (*entity.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tokens {
		if t.TokenHash == tokenHash && t.IsValid(now) {
			used := now
			t.LastUsedAt = &used
			copied := *t

			return &copied, nil
		}
	}

	return nil, repository.ErrRefreshTokenNotFound
}

func (r *fakeRefreshTokenRepo) RevokeByHash(_ context.Context, tokenHash string, now time.Time) (*entity.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			revoke(t, now)
			copied := *t

			return &copied, nil
		}
	}

	return nil, repository.ErrRefreshTokenNotFound
}

func (r *fakeRefreshTokenRepo) RevokeByID(_ context.Context, id, userID uuid.UUID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tokens {
		if t.ID == id && t.UserID == userID {
			revoke(t, now)

			return nil
		}
	}

	return repository.ErrRefreshTokenNotFound
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsValid(now) {
			revoke(t, now)
			n++
		}
	}

	return n, nil
}

func (r *fakeRefreshTokenRepo) RevokeOldestActiveBeyond(_ context.Context, userID uuid.UUID, keep int, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := r.activeLocked(userID, now)
	var n int64
	for i, t := range active {
		if i >= keep {
			revoke(t, now)
			n++
		}
	}

	return n, nil
}

func (r *fakeRefreshTokenRepo) ListActiveByUserID(_ context.Context, userID uuid.UUID, now time.Time) ([]*entity.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := r.activeLocked(userID, now)
	out := make([]*entity.RefreshToken, 0, len(active))
	for _, t := range active {
		copied := *t
		out = append(out, &copied)
	}

	return out, nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.tokens)
	r.tokens = slices.DeleteFunc(r.tokens, func(t *entity.RefreshToken) bool {
		return t.ExpiresAt.Before(cutoff)
	})

	return int64(before - len(r.tokens)), nil
}

func (r *fakeRefreshTokenRepo) activeCount(userID uuid.UUID, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.activeLocked(userID, now))
}

func (r *fakeRefreshTokenRepo) byHash(hash string) *entity.RefreshToken {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tokens {
		if t.TokenHash == hash {
			copied := *t

			return &copied
		}
	}

	return nil
}

// activeLocked returns live sessions newest first. Callers hold r.mu.
func (r *fakeRefreshTokenRepo) activeLocked(userID uuid.UUID, now time.Time) []*entity.RefreshToken {
	var active []*entity.RefreshToken
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsValid(now) {
			active = append(active, t)
		}
	}
	slices.SortFunc(active, func(a, b *entity.RefreshToken) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return active
}

func revoke(t *entity.RefreshToken, now time.Time) {
	t.Revoked = true
	if t.RevokedAt == nil {
		at := now
		t.RevokedAt = &at
	}
}

// fakeTxManager runs fn directly and releases row locks taken inside it when fn returns.
type fakeTxManager struct {
	mu      sync.Mutex
	factory repository.RepositoryFactory
	release map[context.Context][]func()
}

func newFakeTxManager() *fakeTxManager {
	return &fakeTxManager{release: make(map[context.Context][]func())}
}

func (tm *fakeTxManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	tm.mu.Lock()
	tm.release[ctx] = nil
	tm.mu.Unlock()

	defer func() {
		tm.mu.Lock()
		unlocks := tm.release[ctx]
		delete(tm.release, ctx)
		tm.mu.Unlock()

		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}()

	return fn(tm.factory)
}

func (tm *fakeTxManager) onRelease(ctx context.Context, unlock func()) bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if _, ok := tm.release[ctx]; !ok {
		return false
	}
	tm.release[ctx] = append(tm.release[ctx], unlock)

	return true
}

type fakeRepoFactory struct {
	credentials *fakeCredentialRepo
	tokens      *fakeRefreshTokenRepo
}

func (f *fakeRepoFactory) CredentialRepo() repository.CredentialRepository {
	return f.credentials
}

func (f *fakeRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.tokens
}

// fakeEventRepo is an in-memory audit store for the reporting service.
type fakeEventRepo struct {
	mu       sync.Mutex
	events   []*entity.SecurityEvent
	pingErr  error
	lastList entity.SecurityEventFilter
}

func (r *fakeEventRepo) Create(_ context.Context, event *entity.SecurityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)

	return nil
}

func (r *fakeEventRepo) matching(filter entity.SecurityEventFilter) []*entity.SecurityEvent {
	var out []*entity.SecurityEvent
	for _, e := range r.events {
		switch {
		case filter.UserID != nil && (e.UserID == nil || *e.UserID != *filter.UserID),
			filter.EventType != nil && e.EventType != *filter.EventType,
			filter.Category != nil && e.Category != *filter.Category,
			filter.Severity != nil && e.Severity != *filter.Severity,
			filter.Success != nil && e.Success != *filter.Success,
			filter.Since != nil && e.CreatedAt.Before(*filter.Since):
			continue
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *entity.SecurityEvent) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out
}

func (r *fakeEventRepo) List(_ context.Context, filter entity.SecurityEventFilter) ([]*entity.SecurityEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastList = filter
	out := r.matching(filter)
	if filter.Offset >= len(out) {
		return []*entity.SecurityEvent{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *fakeEventRepo) Count(_ context.Context, filter entity.SecurityEventFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.matching(filter))), nil
}

func (r *fakeEventRepo) StatsByCategory(_ context.Context, userID *uuid.UUID, since time.Time) ([]*entity.CategoryStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byCategory := make(map[entity.EventCategory]*entity.CategoryStats)
	for _, e := range r.matching(entity.SecurityEventFilter{UserID: userID, Since: &since}) {
		s, ok := byCategory[e.Category]
		if !ok {
			s = &entity.CategoryStats{Category: e.Category}
			byCategory[e.Category] = s
		}
		s.Total++
		if e.Success {
			s.Successful++
		} else {
			s.Failed++
		}
	}

	return slices.Collect(maps.Values(byCategory)), nil
}

func (r *fakeEventRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.matching(entity.SecurityEventFilter{Since: &since}))), nil
}

func (r *fakeEventRepo) TopEventTypes(_ context.Context, since time.Time, limit int) ([]*entity.EventTypeCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[entity.EventType]int64)
	for _, e := range r.matching(entity.SecurityEventFilter{Since: &since}) {
		counts[e.EventType]++
	}
	out := make([]*entity.EventTypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, &entity.EventTypeCount{EventType: t, Count: n})
	}
	slices.SortFunc(out, func(a, b *entity.EventTypeCount) int {
		return int(b.Count - a.Count)
	})
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *fakeEventRepo) ListBefore(context.Context, time.Time, int) ([]*entity.SecurityEvent, error) {
	return nil, nil
}

func (r *fakeEventRepo) DeleteByIDs(context.Context, []uuid.UUID) (int64, error) {
	return 0, errors.New("audit rows are append-only in this test")
}

func (r *fakeEventRepo) Ping(context.Context) error {
	return r.pingErr
}

// fakeRecordRepo stores versioned rows and applies the compare-and-swap under one mutex.
type fakeRecordRepo struct {
	mu   sync.Mutex
	rows map[string]map[uuid.UUID]*entity.VersionedRow
	err  error
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{rows: make(map[string]map[uuid.UUID]*entity.VersionedRow)}
}

func (r *fakeRecordRepo) seed(table string, version int64, columns map[string]any) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	if r.rows[table] == nil {
		r.rows[table] = make(map[uuid.UUID]*entity.VersionedRow)
	}
	r.rows[table][id] = &entity.VersionedRow{ID: id, Version: version, Columns: maps.Clone(columns)}

	return id
}

func (r *fakeRecordRepo) ConditionalUpdate(_ context.Context, table string, id uuid.UUID, expectedVersion *int64, fields map[string]any) (*entity.VersionedRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	row, ok := r.rows[table][id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	if expectedVersion != nil && row.Version != *expectedVersion {
		return nil, &repository.VersionConflict{CurrentVersion: row.Version, AttemptedVersion: *expectedVersion}
	}

	maps.Copy(row.Columns, fields)
	row.Version++
	row.UpdatedAt = time.Now()

	return cloneRow(row), nil
}

func (r *fakeRecordRepo) FindByID(_ context.Context, table string, id uuid.UUID) (*entity.VersionedRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[table][id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}

	return cloneRow(row), nil
}

func (r *fakeRecordRepo) Insert(_ context.Context, table string, fields map[string]any) (*entity.VersionedRow, error) {
	id := r.seed(table, 1, fields)

	return r.FindByID(context.Background(), table, id)
}

func cloneRow(row *entity.VersionedRow) *entity.VersionedRow {
	copied := *row
	copied.Columns = maps.Clone(row.Columns)

	return &copied
}

// authFixture wires the real JWT and bcrypt implementations to the in-memory stores.
type authFixture struct {
	auth        usecase.AuthUsecase
	sessions    *sessionService
	lockout     *lockoutService
	credentials *fakeCredentialRepo
	tokens      *fakeRefreshTokenRepo
	recorder    *captureRecorder
	tokenSvc    service.TokenService
	clock       *testClock
	user        *entity.Credential
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := newTestConfig()
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher, err := auth.NewBcryptHasher(cfg)
	require.NoError(t, err)

	hash, err := hasher.Hash(testPassword)
	require.NoError(t, err)

	credentials := newFakeCredentialRepo()
	user := &entity.Credential{
		Email:        "agent@example.com",
		Name:         "Dana Agent",
		PasswordHash: hash,
		Role:         entity.RoleAgent,
		IsActive:     true,
	}
	credentials.add(user)

	tokens := &fakeRefreshTokenRepo{}
	txManager := newFakeTxManager()
	txManager.factory = &fakeRepoFactory{credentials: credentials, tokens: tokens}
	credentials.tx = txManager

	recorder := &captureRecorder{}
	clock := newTestClock()
	logger := newDiscardLogger()

	lockout := NewLockoutService(LockoutServiceParams{
		CredentialRepo: credentials,
		Hasher:         hasher,
		Recorder:       recorder,
		Config:         cfg,
		Logger:         logger,
	}).(*lockoutService)
	lockout.now = clock.Now

	sessions := NewSessionService(SessionServiceParams{
		TxManager:        txManager,
		RefreshTokenRepo: tokens,
		CredentialRepo:   credentials,
		TokenService:     tokenSvc,
		Recorder:         recorder,
		Config:           cfg,
		Logger:           logger,
	}).(*sessionService)
	sessions.now = clock.Now

	authUC := NewAuthService(AuthServiceParams{
		Lockout: lockout,
		Tokens:  sessions,
		Tracer:  noop.NewTracerProvider().Tracer("test"),
		Logger:  logger,
	})

	return &authFixture{
		auth:        authUC,
		sessions:    sessions,
		lockout:     lockout,
		credentials: credentials,
		tokens:      tokens,
		recorder:    recorder,
		tokenSvc:    tokenSvc,
		clock:       clock,
		user:        user,
	}
}

func (f *authFixture) login(ctx context.Context, password string) (*usecase.LoginOutput, error) {
	return f.auth.Login(ctx, &usecase.LoginInput{
		Email:    f.user.Email,
		Password: password,
		Device:   entity.DeviceInfo{IPAddress: "203.0.113.7", UserAgent: "test-agent"},
	})
}
