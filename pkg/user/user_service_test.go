package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	users         map[string]*entities.User
	refreshTokens map[string]*entities.RefreshToken
	recipeCounts  map[string]int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:         make(map[string]*entities.User),
		refreshTokens: make(map[string]*entities.RefreshToken),
		recipeCounts:  make(map[string]int64),
	}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Username == strings.ToLower(username) {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Email == strings.ToLower(email) {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) DeleteUser(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepository) GetUsers(_ context.Context, page, limit int) ([]*entities.User, int64, error) {
	users := make([]*entities.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepository) CountUserRecipes(_ context.Context, userID string) (int64, error) {
	return f.recipeCounts[userID], nil
}

func (f *fakeUserRepository) CreateRefreshToken(_ context.Context, token *entities.RefreshToken) error {
	f.refreshTokens[token.Token] = token
	return nil
}

func (f *fakeUserRepository) GetRefreshToken(_ context.Context, token string) (*entities.RefreshToken, error) {
	refreshToken, ok := f.refreshTokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return refreshToken, nil
}

func (f *fakeUserRepository) RevokeRefreshToken(_ context.Context, token string) error {
	refreshToken, ok := f.refreshTokens[token]
	if !ok || refreshToken.RevokedAt != nil {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	refreshToken.RevokedAt = &now
	return nil
}

// fakeJWTService issues predictable tokens without touching config.
type fakeJWTService struct{}

func (fakeJWTService) GenerateAccessToken(userID string, role string) string {
	return "access:" + userID + ":" + role
}

func (fakeJWTService) ValidateAccessToken(string) (*jwtlib.Token, error) {
	return nil, domain.ErrTokenInvalid
}

func (fakeJWTService) GetUserIDByToken(string) (string, string, error) {
	return "", "", domain.ErrTokenInvalid
}

func (fakeJWTService) GenerateVerifyEmailToken(map[string]any, time.Duration) (string, error) {
	return "verify-token", nil
}

func (fakeJWTService) ValidateVerifyEmailToken(string) (jwtlib.MapClaims, error) {
	return jwtlib.MapClaims{}, domain.ErrTokenInvalid
}

func newTestUserService() (*fakeUserRepository, UserService) {
	repo := newFakeUserRepository()
	return repo, NewUserService(repo, fakeJWTService{})
}

func seedUser(repo *fakeUserRepository, username, password string) *entities.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		Role:     domain.RoleUser,
		IsActive: true,
	}
	repo.users[user.ID.String()] = user
	return user
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues token pair", func(t *testing.T) {
		repo, svc := newTestUserService()

		res, err := svc.Register(ctx, domain.RegisterRequest{
			Username:        "Alice",
			Email:           "Alice@Example.com",
			Password:        "supersecret",
			PasswordConfirm: "supersecret",
			FirstName:       "Alice",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice", res.User.Username)
		assert.Equal(t, "alice@example.com", res.User.Email)
		assert.Equal(t, domain.RoleUser, res.User.Role)
		assert.NotEmpty(t, res.Token.AccessToken)
		assert.NotEmpty(t, res.Token.RefreshToken)
		assert.Len(t, repo.refreshTokens, 1)

		stored := repo.users[res.User.ID]
		require.NotNil(t, stored)
		assert.NotEqual(t, "supersecret", stored.Password)
	})

	t.Run("rejects mismatched password confirmation", func(t *testing.T) {
		_, svc := newTestUserService()

		_, err := svc.Register(ctx, domain.RegisterRequest{
			Username:        "bob",
			Email:           "bob@example.com",
			Password:        "supersecret",
			PasswordConfirm: "different",
		})
		assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
	})

	t.Run("rejects taken username case-insensitively", func(t *testing.T) {
		repo, svc := newTestUserService()
		seedUser(repo, "carol", "supersecret")

		_, err := svc.Register(ctx, domain.RegisterRequest{
			Username:        "CAROL",
			Email:           "other@example.com",
			Password:        "supersecret",
			PasswordConfirm: "supersecret",
		})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		repo, svc := newTestUserService()
		seedUser(repo, "dave", "supersecret")

		_, err := svc.Register(ctx, domain.RegisterRequest{
			Username:        "newdave",
			Email:           "Dave@Example.com",
			Password:        "supersecret",
			PasswordConfirm: "supersecret",
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		repo, svc := newTestUserService()
		seedUser(repo, "erin", "supersecret")

		res, err := svc.Login(ctx, domain.LoginRequest{Username: "erin", Password: "supersecret"})
		require.NoError(t, err)
		assert.Equal(t, "erin", res.User.Username)
		assert.NotEmpty(t, res.Token.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo, svc := newTestUserService()
		seedUser(repo, "frank", "supersecret")

		_, err := svc.Login(ctx, domain.LoginRequest{Username: "frank", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
	})

	t.Run("unknown username maps to invalid credentials", func(t *testing.T) {
		_, svc := newTestUserService()

		_, err := svc.Login(ctx, domain.LoginRequest{Username: "nobody", Password: "supersecret"})
		assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
	})

	t.Run("inactive account", func(t *testing.T) {
		repo, svc := newTestUserService()
		user := seedUser(repo, "grace", "supersecret")
		user.IsActive = false

		_, err := svc.Login(ctx, domain.LoginRequest{Username: "grace", Password: "supersecret"})
		assert.ErrorIs(t, err, domain.ErrAccountInactive)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("valid refresh token issues new access token", func(t *testing.T) {
		repo, svc := newTestUserService()
		user := seedUser(repo, "henry", "supersecret")
		repo.refreshTokens["tok"] = &entities.RefreshToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     "tok",
			ExpiresAt: time.Now().Add(time.Hour),
		}

		pair, err := svc.Refresh(ctx, domain.RefreshRequest{RefreshToken: "tok"})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.Equal(t, "tok", pair.RefreshToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, svc := newTestUserService()

		_, err := svc.Refresh(ctx, domain.RefreshRequest{RefreshToken: "missing"})
		assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
	})

	t.Run("revoked token", func(t *testing.T) {
		repo, svc := newTestUserService()
		user := seedUser(repo, "iris", "supersecret")
		now := time.Now()
		repo.refreshTokens["tok"] = &entities.RefreshToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     "tok",
			ExpiresAt: time.Now().Add(time.Hour),
			RevokedAt: &now,
		}

		_, err := svc.Refresh(ctx, domain.RefreshRequest{RefreshToken: "tok"})
		assert.ErrorIs(t, err, domain.ErrRefreshTokenRevoked)
	})

	t.Run("expired token", func(t *testing.T) {
		repo, svc := newTestUserService()
		user := seedUser(repo, "judy", "supersecret")
		repo.refreshTokens["tok"] = &entities.RefreshToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     "tok",
			ExpiresAt: time.Now().Add(-time.Minute),
		}

		_, err := svc.Refresh(ctx, domain.RefreshRequest{RefreshToken: "tok"})
		assert.ErrorIs(t, err, domain.ErrRefreshTokenExpired)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the token", func(t *testing.T) {
		repo, svc := newTestUserService()
		user := seedUser(repo, "kate", "supersecret")
		repo.refreshTokens["tok"] = &entities.RefreshToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     "tok",
			ExpiresAt: time.Now().Add(time.Hour),
		}

		require.NoError(t, svc.Logout(ctx, domain.LogoutRequest{RefreshToken: "tok"}))
		assert.NotNil(t, repo.refreshTokens["tok"].RevokedAt)

		// Second logout of the same token fails: it is already revoked.
		assert.ErrorIs(t, svc.Logout(ctx, domain.LogoutRequest{RefreshToken: "tok"}), domain.ErrRefreshTokenNotFound)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("changing email resets verification", func(t *testing.T) {
		repo, svc := newTestUserService()
		user := seedUser(repo, "liam", "supersecret")
		user.IsVerified = true

		newEmail := "Liam.New@Example.com"
		res, err := svc.UpdateUser(ctx, domain.UpdateUserRequest{Email: &newEmail}, user.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "liam.new@example.com", res.Email)
		assert.False(t, res.IsVerified)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		repo, svc := newTestUserService()
		seedUser(repo, "mona", "supersecret")
		user := seedUser(repo, "nick", "supersecret")

		taken := "mona@example.com"
		_, err := svc.UpdateUser(ctx, domain.UpdateUserRequest{Email: &taken}, user.ID.String())
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, svc := newTestUserService()

		name := "ghost"
		_, err := svc.UpdateUser(ctx, domain.UpdateUserRequest{FirstName: &name}, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestAdminUserOps(t *testing.T) {
	ctx := context.Background()

	t.Run("admin update toggles role and active flag", func(t *testing.T) {
		repo, svc := newTestUserService()
		user := seedUser(repo, "olga", "supersecret")

		role := domain.RoleAdmin
		inactive := false
		res, err := svc.AdminUpdateUser(ctx, user.ID.String(), domain.AdminUpdateUserRequest{
			Role:     &role,
			IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, res.Role)
		assert.False(t, res.IsActive)
	})

	t.Run("delete removes the user", func(t *testing.T) {
		repo, svc := newTestUserService()
		user := seedUser(repo, "pete", "supersecret")

		require.NoError(t, svc.DeleteUser(ctx, user.ID.String()))
		assert.Empty(t, repo.users)
		assert.ErrorIs(t, svc.DeleteUser(ctx, user.ID.String()), domain.ErrUserNotFound)
	})

	t.Run("profile carries recipe count", func(t *testing.T) {
		repo, svc := newTestUserService()
		user := seedUser(repo, "quinn", "supersecret")
		repo.recipeCounts[user.ID.String()] = 4

		res, err := svc.Me(ctx, user.ID.String())
		require.NoError(t, err)
		assert.Equal(t, int64(4), res.RecipesCount)
	})
}
