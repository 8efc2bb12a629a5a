package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, password, role string) (User, error) {
	args := m.Called(ctx, name, email, password, role)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "John", "john@example.com", mock.AnythingOfType("string"), "user").
			Return(User{ID: 1, Name: "John", Email: "john@example.com", Role: RoleUser}, nil)

		token, u, err := svc.Register(ctx, "John", "john@example.com", "password123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(1), u.ID)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "John", "john@example.com", mock.AnythingOfType("string"), "user").
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, _, err := svc.Register(ctx, "John", "john@example.com", "password123")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	hashed, _ := HashPassword("password123")

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "john@example.com").
			Return(User{ID: 1, Email: "john@example.com", Password: hashed, Role: RoleUser}, nil)

		token, u, err := svc.Login(ctx, "john@example.com", "password123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "john@example.com", u.Email)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "john@example.com").
			Return(User{ID: 1, Email: "john@example.com", Password: hashed}, nil)

		_, _, err := svc.Login(ctx, "john@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, "ghost@example.com").
			Return(User{}, ErrUserNotFound)

		_, _, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByID", ctx, int64(2)).Return(User{ID: 2, Role: RoleUser}, nil)
		repo.On("Delete", ctx, int64(2)).Return(nil)

		assert.NoError(t, svc.DeleteUser(ctx, 2))
		repo.AssertExpectations(t)
	})

	t.Run("AdminProtected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByID", ctx, int64(1)).Return(User{ID: 1, Role: RoleAdmin}, nil)

		err := svc.DeleteUser(ctx, 1)
		assert.ErrorIs(t, err, ErrAdminUndeletable)
		repo.AssertNotCalled(t, "Delete", ctx, int64(1))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByID", ctx, int64(99)).Return(User{}, ErrUserNotFound)

		err := svc.DeleteUser(ctx, 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_GetStats(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("CountByRole", ctx, "user").Return(int64(7), nil)

	stats, err := svc.GetStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalUsers)
}
