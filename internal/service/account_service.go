package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/stockfolio/stockfolio/internal/models"
	"github.com/stockfolio/stockfolio/internal/types"
)

// defaultPortfolioName is the name of the portfolio created at registration.
const defaultPortfolioName = "My Portfolio"

// UserRepository interface for user data operations
type UserRepository interface {
	CreateWithDefaultPortfolio(ctx context.Context, user *models.User, portfolioName string) (*models.Portfolio, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AccountService handles registration, login and user lookup.
type AccountService struct {
	userRepo UserRepository
}

// NewAccountService creates a new account service
func NewAccountService(userRepo UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user and their default portfolio atomically. Duplicate
// username or email surfaces as a CONFLICT service error.
func (s *AccountService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, types.NewServiceError(types.CodeInvalidInput, "username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	if _, err := s.userRepo.CreateWithDefaultPortfolio(ctx, user, defaultPortfolioName); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns the user. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, types.NewServiceError(types.CodeInvalidInput, "email and password are required")
	}

	invalidCredentials := types.NewServiceError(types.CodeInvalidCredentials, "invalid email or password")

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, invalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials
	}

	return user, nil
}

// GetUser returns a user by ID.
func (s *AccountService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
