package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neemadeshwal/ERMS-sub000/internal/auth"
	"github.com/neemadeshwal/ERMS-sub000/internal/models"
	"github.com/neemadeshwal/ERMS-sub000/internal/repository"
	repomocks "github.com/neemadeshwal/ERMS-sub000/internal/repository/mocks"
	"github.com/neemadeshwal/ERMS-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func TestAuthService_RegisterSeedsCapacity(t *testing.T) {
	db := testutil.OpenDB(t)
	tokens := newTestTokens()
	svc := NewAuthService(repository.NewUserRepository(db), tokens)

	testCases := []struct {
		name       string
		input      RegisterInput
		wantMax    int
		wantSkills []string
	}{
		{
			name: "full-time engineer",
			input: RegisterInput{
				Email: "FT@Example.com ", Password: "secret1", Name: "Full Timer",
				EmploymentType: models.EmploymentFullTime, Skills: []string{"Go", " react", "go"},
			},
			wantMax:    100,
			wantSkills: []string{"go", "react"},
		},
		{
			name: "part-time engineer",
			input: RegisterInput{
				Email: "pt@example.com", Password: "secret1", Name: "Part Timer",
				EmploymentType: models.EmploymentPartTime,
			},
			wantMax:    50,
			wantSkills: []string{},
		},
		{
			name: "contractor",
			input: RegisterInput{
				Email: "c@example.com", Password: "secret1", Name: "Contractor",
				EmploymentType: models.EmploymentContract,
			},
			wantMax:    0,
			wantSkills: []string{},
		},
		{
			name: "manager",
			input: RegisterInput{
				Email: "m@example.com", Password: "secret1", Name: "Manager",
				Role: models.RoleManager, EmploymentType: models.EmploymentFullTime,
			},
			wantMax:    0,
			wantSkills: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			session, err := svc.Register(context.Background(), tc.input)
			require.NoError(t, err)

			assert.Equal(t, tc.wantMax, session.User.MaxCapacity)
			assert.Equal(t, 0, session.User.CurrentCapacity)
			assert.Equal(t, tc.wantSkills, session.User.Skills)
			assert.NotEqual(t, "secret1", session.User.PasswordHash)

			id, err := tokens.Parse(session.Token)
			require.NoError(t, err)
			assert.Equal(t, session.User.ID, id.ID)
			assert.Equal(t, session.User.Role, id.Role)
		})
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, newTestTokens())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "not-an-email",
		Password: "123",
		Role:     "admin",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{
		"Email must be a valid address",
		"Password must be at least 6 characters",
		"Name is required",
		"Role must be engineer or manager",
	}, verr.Messages())
}

func TestAuthService_RegisterErrors(t *testing.T) {
	dbErr := errors.New("connection reset")

	testCases := []struct {
		name    string
		mock    func(users *repomocks.MockUserRepository)
		wantErr error
	}{
		{
			name: "email taken",
			mock: func(users *repomocks.MockUserRepository) {
				users.EXPECT().FindByEmail(gomock.Any(), "taken@example.com").
					Return(&models.User{ID: 1, Email: "taken@example.com"}, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "lookup fails",
			mock: func(users *repomocks.MockUserRepository) {
				users.EXPECT().FindByEmail(gomock.Any(), "taken@example.com").
					Return(nil, dbErr)
			},
			wantErr: dbErr,
		},
		{
			name: "create fails",
			mock: func(users *repomocks.MockUserRepository) {
				users.EXPECT().FindByEmail(gomock.Any(), "taken@example.com").
					Return(nil, gorm.ErrRecordNotFound)
				users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := repomocks.NewMockUserRepository(ctrl)
			tc.mock(users)

			svc := NewAuthService(users, newTestTokens())
			_, err := svc.Register(context.Background(), RegisterInput{
				Email:    "taken@example.com",
				Password: "secret1",
				Name:     "Someone",
			})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: 7, Email: "dev@example.com", PasswordHash: string(hash), Role: models.RoleEngineer}

	testCases := []struct {
		name     string
		password string
		mock     func(users *repomocks.MockUserRepository)
		wantErr  error
	}{
		{
			name:     "success",
			password: "secret1",
			mock: func(users *repomocks.MockUserRepository) {
				users.EXPECT().FindByEmail(gomock.Any(), "dev@example.com").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			password: "nope",
			mock: func(users *repomocks.MockUserRepository) {
				users.EXPECT().FindByEmail(gomock.Any(), "dev@example.com").Return(stored, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			password: "secret1",
			mock: func(users *repomocks.MockUserRepository) {
				users.EXPECT().FindByEmail(gomock.Any(), "dev@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := repomocks.NewMockUserRepository(ctrl)
			tc.mock(users)

			tokens := newTestTokens()
			svc := NewAuthService(users, tokens)
			session, err := svc.Login(context.Background(), LoginInput{Email: " Dev@Example.com", Password: tc.password})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)

			id, err := tokens.Parse(session.Token)
			require.NoError(t, err)
			assert.Equal(t, uint64(7), id.ID)
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), newTestTokens())
	engineer := testutil.CreateEngineer(t, db, "dev@example.com", 100, 40)
	actor := auth.IdentityOf(*engineer)

	name := "  Renamed  "
	senior := models.SenioritySenior
	updated, err := svc.UpdateProfile(context.Background(), actor, ProfileInput{
		Name:      &name,
		Seniority: &senior,
		Skills:    []string{"Rust", "go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.SenioritySenior, updated.Seniority)

	reloaded, err := svc.GetUser(context.Background(), engineer.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"rust", "go"}, reloaded.Skills)
	assert.Equal(t, 40, reloaded.CurrentCapacity)
	assert.Equal(t, 100, reloaded.MaxCapacity)

	blank := " "
	bogus := models.Seniority("principal")
	_, err = svc.UpdateProfile(context.Background(), actor, ProfileInput{Name: &blank, Seniority: &bogus})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 2)

	_, err = svc.UpdateProfile(context.Background(), auth.Identity{}, ProfileInput{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
