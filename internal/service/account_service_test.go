package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockfolio/stockfolio/internal/models"
	"github.com/stockfolio/stockfolio/internal/types"
)

// mockUserRepo is an in-memory UserRepository. It creates the default
// portfolio with the user the same way the real transaction does.
type mockUserRepo struct {
	users      map[string]*models.User
	portfolios []*models.Portfolio
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) CreateWithDefaultPortfolio(ctx context.Context, user *models.User, portfolioName string) (*models.Portfolio, error) {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, &types.ServiceError{Code: types.CodeConflict, Message: "username or email already exists"}
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user

	p := &models.Portfolio{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      portfolioName,
		CreatedAt: time.Now(),
	}
	m.portfolios = append(m.portfolios, p)
	return p, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, &types.ServiceError{Code: types.CodeNotFound, Message: "user not found"}
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, &types.ServiceError{Code: types.CodeNotFound, Message: "user not found"}
}

func TestAccountService_Register(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAccountService(repo)

	user, err := svc.Register(context.Background(), &RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)

	// The stored hash verifies against the original password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))

	// Registration creates the default portfolio in the same operation.
	require.Len(t, repo.portfolios, 1)
	assert.Equal(t, "My Portfolio", repo.portfolios[0].Name)
	assert.Equal(t, user.ID, repo.portfolios[0].UserID)
}

func TestAccountService_Register_MissingFields(t *testing.T) {
	svc := NewAccountService(newMockUserRepo())

	tests := []struct {
		name  string
		input *RegisterInput
	}{
		{"missing username", &RegisterInput{Email: "a@b.com", Password: "pw"}},
		{"missing email", &RegisterInput{Username: "alice", Password: "pw"}},
		{"missing password", &RegisterInput{Username: "alice", Email: "a@b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			var svcErr *types.ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, types.CodeInvalidInput, svcErr.Code)
		})
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAccountService(repo)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "pw",
	})
	var svcErr *types.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, types.CodeConflict, svcErr.Code)

	// No second default portfolio gets created on a failed registration.
	assert.Len(t, repo.portfolios, 1)
}

func TestAccountService_Login(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAccountService(repo)

	registered, err := svc.Register(context.Background(), &RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAccountService_Login_Invalid(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAccountService(repo)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{"unknown email", "bob@example.com", "secret123", types.CodeInvalidCredentials},
		{"wrong password", "alice@example.com", "wrong", types.CodeInvalidCredentials},
		{"missing email", "", "secret123", types.CodeInvalidInput},
		{"missing password", "alice@example.com", "", types.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			var svcErr *types.ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tt.wantCode, svcErr.Code)
		})
	}
}

func TestAccountService_Login_SameMessageForBothFailures(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAccountService(repo)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, unknownErr := svc.Login(context.Background(), "bob@example.com", "secret123")
	_, wrongPwErr := svc.Login(context.Background(), "alice@example.com", "wrong")

	// The caller cannot tell which credential was wrong.
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
}

func TestAccountService_GetUser(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAccountService(repo)

	registered, err := svc.Register(context.Background(), &RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetUser(context.Background(), uuid.New().String())
	var svcErr *types.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, types.CodeNotFound, svcErr.Code)
}
