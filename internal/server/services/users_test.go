package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/cryptox"
	"github.com/dmitrijs2005/gopherblog/internal/dbx"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/gopherblog/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func fastHash(password string) (string, error) {
	return cryptox.HashPasswordIterations(password, 1)
}

func newUserService(t *testing.T, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	s := NewUserService(rm)
	s.hashPassword = fastHash
	return s
}

type fakeUsersRepo struct {
	usersrepo.Repository
	getErr error
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, f.getErr
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, f.getErr
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	u *fakeUsersRepo
}

func (m *fakeRepoManager) Conn() dbx.DBTX                         { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }
func (m *fakeRepoManager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	return fn(ctx, nil)
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := newUserService(t, rm)

	u, err := s.Register(context.Background(), "bob@example.com", "Bob", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Bob", u.Name)
	assert.NotEqual(t, "hunter2", u.Password)
	assert.True(t, cryptox.CheckPassword("hunter2", u.Password))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	_, err := s.Register(ctx, "bob@example.com", "Bob", "hunter2")
	require.NoError(t, err)

	_, err = s.Register(ctx, "bob@example.com", "Robert", "other")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	u, err := rm.Users(nil).GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name, "first registration is untouched")
}

func TestRegister_HashError(t *testing.T) {
	s := newUserService(t, memory.NewRepositoryManager())
	s.hashPassword = func(string) (string, error) { return "", errBoom{} }

	_, err := s.Register(context.Background(), "a@b.c", "A", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error hashing password")
}

func TestRegister_LookupError(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom{}}}
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "a@b.c", "A", "pw")
	assert.ErrorIs(t, err, errBoom{})
}

func TestRegister_PostgresTransaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	require.NoError(t, err)
	s := newUserService(t, rm)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT id, email, password, name FROM users\s+WHERE email = \$1`).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name"}))
	mock.ExpectQuery(`(?s)INSERT INTO users \(email, password, name\)`).
		WithArgs("a@b.c", sqlmock.AnyArg(), "A").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	u, err := s.Register(context.Background(), "a@b.c", "A", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_PostgresRollbackOnDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	require.NoError(t, err)
	s := newUserService(t, rm)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT id, email, password, name FROM users\s+WHERE email = \$1`).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name"}).
			AddRow(int64(1), "a@b.c", "x", "A"))
	mock.ExpectRollback()

	_, err = s.Register(context.Background(), "a@b.c", "A", "pw")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	_, err := s.Register(ctx, "bob@example.com", "Bob", "hunter2")
	require.NoError(t, err)

	u, err := s.Login(ctx, "bob@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)

	_, err = s.Login(ctx, "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, common.ErrEmailNotFound)

	_, err = s.Login(ctx, "bob@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrWrongPassword)
}

func TestLogin_RepoError(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom{}}}
	s := newUserService(t, rm)

	_, err := s.Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, errBoom{})
}

func TestLoadPrincipal(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	u, err := s.Register(ctx, "bob@example.com", "Bob", "hunter2")
	require.NoError(t, err)

	p, err := s.LoadPrincipal(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, p.IsAuthenticated())
	assert.Equal(t, "Bob", p.Name())

	p, err = s.LoadPrincipal(ctx, 0)
	require.NoError(t, err)
	assert.False(t, p.IsAuthenticated())

	p, err = s.LoadPrincipal(ctx, 42)
	require.NoError(t, err)
	assert.False(t, p.IsAuthenticated())
}

func TestLoadPrincipal_RepoError(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: errors.New("db down")}}
	s := newUserService(t, rm)

	p, err := s.LoadPrincipal(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, p.IsAuthenticated())
}
