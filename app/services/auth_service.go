package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// RegisterInput is the payload of a registration.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DetailsInput is a partial profile update. Nil fields are left alone.
type DetailsInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// AuthResult is returned by operations that issue a credential.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthOptions configures an AuthService.
type AuthOptions struct {
	BcryptCost  int
	AdminEmails []string
	Logger      *slog.Logger
}

// AuthService registers users, issues credentials and resolves them back
// to identities.
type AuthService struct {
	users  repositories.UserRepository
	tokens *TokenIssuer
	cost   int
	admins map[string]bool
	logger *slog.Logger
	now    func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserRepository, tokens *TokenIssuer, opts AuthOptions) *AuthService {
	cost := opts.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	admins := make(map[string]bool, len(opts.AdminEmails))
	for _, email := range opts.AdminEmails {
		if email = models.NormalizeEmail(email); email != "" {
			admins[email] = true
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		cost:   cost,
		admins: admins,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates a user and issues its first credential.
func (s *AuthService) Register(in RegisterInput) (*AuthResult, error) {
	user := &models.User{
		Name:  strings.TrimSpace(in.Name),
		Email: models.NormalizeEmail(in.Email),
		Role:  models.RoleUser,
	}
	if s.admins[user.Email] {
		user.Role = models.RoleAdmin
	}
	if err := user.Validate(); err != nil {
		return nil, validationError(err.Error())
	}
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validationError("email is already registered")
		}
		return nil, storageError(err)
	}
	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.issue(user)
}

// Login checks the password of the account behind email.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, validationError("Please provide an email and password")
	}
	user, err := s.users.GetByEmail(email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, unauthenticatedError("Invalid credentials")
	}
	if err != nil {
		return nil, storageError(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, unauthenticatedError("Invalid credentials")
	}
	return s.issue(user)
}

// Authenticate resolves a bearer token to the identity of an existing user.
// The role is read from the store so that promotions apply immediately.
func (s *AuthService) Authenticate(token string) (Identity, error) {
	claimed, err := s.tokens.Parse(token)
	if err != nil {
		return Identity{}, err
	}
	user, err := s.users.GetByID(claimed.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return Identity{}, unauthenticatedError("Not authorized to access this route")
	}
	if err != nil {
		return Identity{}, storageError(err)
	}
	return Identity{UserID: user.ID, Role: user.Role}, nil
}

// Me returns the account of the caller.
func (s *AuthService) Me(id Identity) (*models.User, error) {
	user, err := s.users.GetByID(id.UserID)
	if err != nil {
		return nil, lookupError(err, "No user with the id of %s", id.UserID)
	}
	return user, nil
}

// UpdateDetails changes the name and/or email of the caller.
func (s *AuthService) UpdateDetails(id Identity, in DetailsInput) (*models.User, error) {
	user, err := s.Me(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = models.NormalizeEmail(*in.Email)
	}
	if err := user.Validate(); err != nil {
		return nil, validationError(err.Error())
	}
	user.UpdatedAt = s.now()
	if err := s.users.Update(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validationError("email is already registered")
		}
		return nil, lookupError(err, "No user with the id of %s", id.UserID)
	}
	return user, nil
}

// UpdatePassword replaces the caller's password and issues a new token.
// A wrong current password is a validation failure so the caller's
// session survives the typo.
func (s *AuthService) UpdatePassword(id Identity, current, next string) (*AuthResult, error) {
	user, err := s.Me(id)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return nil, validationError("Password is incorrect")
	}
	hash, err := s.hashPassword(next)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.UpdatedAt = s.now()
	if err := s.users.Update(user); err != nil {
		return nil, lookupError(err, "No user with the id of %s", id.UserID)
	}
	return s.issue(user)
}

func (s *AuthService) hashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", validationError("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", validationError("password cannot be more than 72 bytes")
	}
	if err != nil {
		return "", storageError(err)
	}
	return string(hash), nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
