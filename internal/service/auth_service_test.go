package service

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/filsox/store-api/internal/auth"
	"github.com/filsox/store-api/internal/config"
	"github.com/filsox/store-api/internal/domain"
	apperrors "github.com/filsox/store-api/pkg/util"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byID: map[int64]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.byID[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Username == username {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByStore(_ context.Context, storeID int64) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.byID {
		if user.StoreID != nil && *user.StoreID == storeID {
			result = append(result, user)
		}
	}
	return result, nil
}

type fakeStoreRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.Store
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{nextID: 1, byID: map[int64]domain.Store{}}
}

func (r *fakeStoreRepo) Create(_ context.Context, store *domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	store.ID = r.nextID
	r.nextID++
	r.byID[store.ID] = *store
	return nil
}

func (r *fakeStoreRepo) Update(_ context.Context, store *domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[store.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[store.ID] = *store
	return nil
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id int64) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := store
	return &copied, nil
}

func (r *fakeStoreRepo) List(_ context.Context) ([]domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Store
	for _, store := range r.byID {
		result = append(result, store)
	}
	return result, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeStoreRepo) {
	t.Helper()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
	users := newFakeUserRepo()
	stores := newFakeStoreRepo()
	return NewAuthService(cfg, AuthDependencies{UserRepo: users, StoreRepo: stores}), users, stores
}

func seedUser(t *testing.T, users *fakeUserRepo, storeID *int64, username, password string, role domain.UserRole, active bool) *domain.User {
	t.Helper()
	hashed, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		StoreID:      storeID,
		Username:     username,
		DisplayName:  username,
		PasswordHash: hashed,
		Role:         role,
		Active:       active,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, users, stores := newTestAuthService(t)
	ctx := context.Background()

	store := &domain.Store{Name: "Loja Centro", Active: true, ActiveModules: domain.AllModules}
	require.NoError(t, stores.Create(ctx, store))
	seedUser(t, users, &store.ID, "maria", "s3nh4forte", domain.RoleOperator, true)

	result, err := svc.Login(ctx, "maria", "s3nh4forte")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.NotNil(t, result.Store)
	require.Equal(t, "Loja Centro", result.Store.Name)

	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleOperator, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, stores := newTestAuthService(t)
	ctx := context.Background()

	store := &domain.Store{Name: "Loja", Active: true}
	require.NoError(t, stores.Create(ctx, store))
	seedUser(t, users, &store.ID, "maria", "correta", domain.RoleOperator, true)

	_, err := svc.Login(ctx, "maria", "errada")
	requireDomainCode(t, err, "UNAUTHORIZED")
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	requireDomainCode(t, err, "UNAUTHORIZED")
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, users, stores := newTestAuthService(t)
	ctx := context.Background()

	store := &domain.Store{Name: "Loja", Active: true}
	require.NoError(t, stores.Create(ctx, store))
	seedUser(t, users, &store.ID, "maria", "senha", domain.RoleOperator, false)

	_, err := svc.Login(ctx, "maria", "senha")
	requireDomainCode(t, err, "UNAUTHORIZED")
}

func TestLogin_DeactivatedStoreBlocksOperators(t *testing.T) {
	svc, users, stores := newTestAuthService(t)
	ctx := context.Background()

	store := &domain.Store{Name: "Loja", Active: false}
	require.NoError(t, stores.Create(ctx, store))
	seedUser(t, users, &store.ID, "maria", "senha", domain.RoleOperator, true)

	_, err := svc.Login(ctx, "maria", "senha")
	requireDomainCode(t, err, "FORBIDDEN")
}

func TestLogin_SuperAdminWithoutStore(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	seedUser(t, users, nil, "root", "senha", domain.RoleSuperAdmin, true)

	result, err := svc.Login(ctx, "root", "senha")
	require.NoError(t, err)
	require.Nil(t, result.Store)
	require.Nil(t, result.User.StoreID)
}

func TestChangePassword(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	user := seedUser(t, users, nil, "root", "antiga1", domain.RoleSuperAdmin, true)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "antiga1", "nova123"))

	_, err := svc.Login(ctx, "root", "antiga1")
	requireDomainCode(t, err, "UNAUTHORIZED")

	_, err = svc.Login(ctx, "root", "nova123")
	require.NoError(t, err)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, users, _ := newTestAuthService(t)

	user := seedUser(t, users, nil, "root", "antiga1", domain.RoleSuperAdmin, true)
	err := svc.ChangePassword(context.Background(), user.ID, "nope", "nova123")
	requireDomainCode(t, err, "UNAUTHORIZED")
}

func TestCreateUser_RoleStoreRules(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	storeID := int64(1)

	_, err := svc.CreateUser(ctx, &storeID, UserInput{
		Username: "root", Password: "senha123", Role: domain.RoleSuperAdmin,
	})
	requireDomainCode(t, err, "VALIDATION_FAILED")

	_, err = svc.CreateUser(ctx, nil, UserInput{
		Username: "op", Password: "senha123", Role: domain.RoleOperator,
	})
	requireDomainCode(t, err, "VALIDATION_FAILED")

	user, err := svc.CreateUser(ctx, &storeID, UserInput{
		Username: "op", Password: "senha123",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleOperator, user.Role)
	require.True(t, user.Active)
}

func TestUpdateUser_CrossStoreForbidden(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	storeA := int64(1)
	storeB := int64(2)
	user := seedUser(t, users, &storeA, "op", "senha123", domain.RoleOperator, true)

	_, err := svc.UpdateUser(ctx, &storeB, user.ID, UserInput{DisplayName: "X"})
	requireDomainCode(t, err, "FORBIDDEN")

	err = svc.DeleteUser(ctx, &storeB, user.ID)
	requireDomainCode(t, err, "FORBIDDEN")
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, code, domainErr.Code)
}
