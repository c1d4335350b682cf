package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/logging"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email          string                `json:"email" validate:"required,email"`
	Password       string                `json:"password" validate:"min=6"`
	Name           string                `json:"name" validate:"required"`
	Role           models.UserRole       `json:"role" validate:"oneof=engineer manager"`
	Skills         []string              `json:"skills"`
	Seniority      models.Seniority      `json:"seniority" validate:"omitempty,oneof=junior mid senior"`
	EmploymentType models.EmploymentType `json:"employmentType" validate:"omitempty,oneof=full-time part-time contract"`
	Department     string                `json:"department"`
}

var registerMessages = map[string]string{
	"email.required":       "Email is required",
	"email.email":          "Email must be a valid address",
	"password.min":         "Password must be at least 6 characters",
	"name.required":        "Name is required",
	"role.oneof":           "Role must be engineer or manager",
	"seniority.oneof":      "Seniority must be one of junior, mid, senior",
	"employmentType.oneof": "Employment type must be one of full-time, part-time, contract",
}

// Session is the outcome of a successful register or login.
type Session struct {
	User  *models.User
	Token string
}

// Register creates a new account. Engineers get a capacity ceiling derived
// from their employment type and start with nothing allocated.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	if input.Role == "" {
		input.Role = models.RoleEngineer
	}
	if err := validateStruct(input, registerMessages); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:           input.Email,
		Name:            input.Name,
		PasswordHash:    string(hashedPassword),
		Role:            input.Role,
		Skills:          normalizeSkills(input.Skills),
		Seniority:       input.Seniority,
		EmploymentType:  input.EmploymentType,
		Department:      strings.TrimSpace(input.Department),
		CurrentCapacity: 0,
	}
	if user.Role == models.RoleEngineer {
		user.MaxCapacity = models.CapacityForEmployment(input.EmploymentType)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logging.Logger.WithFields(logrus.Fields{
		"user_id":      user.ID,
		"role":         user.Role,
		"max_capacity": user.MaxCapacity,
	}).Info("user registered")

	return s.issue(user)
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user with a token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ProfileInput holds the self-service profile fields.
type ProfileInput struct {
	Name       *string
	Skills     []string
	Seniority  *models.Seniority
	Department *string
}

// UpdateProfile updates the caller's own profile.
func (s *AuthService) UpdateProfile(ctx context.Context, actor auth.Identity, input ProfileInput) (*models.User, error) {
	if actor.IsZero() {
		return nil, ErrUnauthorized
	}

	user, err := s.GetUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	var fieldErrs []FieldError
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name == "" {
			fieldErrs = append(fieldErrs, FieldError{Field: "name", Message: "Name is required"})
		} else {
			user.Name = name
		}
	}
	if input.Seniority != nil {
		switch *input.Seniority {
		case models.SeniorityJunior, models.SeniorityMid, models.SenioritySenior:
			user.Seniority = *input.Seniority
		default:
			fieldErrs = append(fieldErrs, FieldError{Field: "seniority", Message: registerMessages["seniority.oneof"]})
		}
	}
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Errors: fieldErrs}
	}
	if input.Skills != nil {
		user.Skills = normalizeSkills(input.Skills)
	}
	if input.Department != nil {
		user.Department = strings.TrimSpace(*input.Department)
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*Session, error) {
	token, err := s.tokens.Generate(auth.IdentityOf(*user))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

// normalizeSkills trims, lowercases and de-duplicates skill names.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	result := make([]string, 0, len(skills))

	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if _, exists := seen[skill]; exists {
			continue
		}
		seen[skill] = struct{}{}
		result = append(result, skill)
	}

	return result
}
