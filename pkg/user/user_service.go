package user

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/mailing"
	"Recipe-Share-Backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const refreshTokenLifetime = 7 * 24 * time.Hour

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Refresh(ctx context.Context, req domain.RefreshRequest) (domain.TokenPair, error)
		Logout(ctx context.Context, req domain.LogoutRequest) error
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error)
		SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error
		VerifyEmail(ctx context.Context, token string) error

		GetUsers(ctx context.Context, page, limit int) ([]domain.UserResponse, int64, error)
		GetUserDetail(ctx context.Context, id string) (domain.UserResponse, error)
		AdminUpdateUser(ctx context.Context, id string, req domain.AdminUpdateUserRequest) (domain.UserResponse, error)
		DeleteUser(ctx context.Context, id string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) toUserResponse(ctx context.Context, user *entities.User) domain.UserResponse {
	recipesCount, err := s.userRepository.CountUserRecipes(ctx, user.ID.String())
	if err != nil {
		recipesCount = 0
	}
	return domain.UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		IsVerified:   user.IsVerified,
		IsActive:     user.IsActive,
		RecipesCount: recipesCount,
		CreatedAt:    user.CreatedAt,
	}
}

func (s *userService) issueTokenPair(ctx context.Context, user *entities.User) (domain.TokenPair, error) {
	accessToken := s.jwtService.GenerateAccessToken(user.ID.String(), user.Role)

	refreshToken := &entities.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenLifetime),
	}
	if err := s.userRepository.CreateRefreshToken(ctx, refreshToken); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
	}, nil
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if req.Password != req.PasswordConfirm {
		return domain.RegisterResponse{}, domain.ErrPasswordMismatch
	}

	// Username and email are unique case-insensitively; stored lowercase.
	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.RegisterResponse{}, domain.ErrUsernameTaken
	} else if !IsNotFound(err) {
		return domain.RegisterResponse{}, err
	}
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.RegisterResponse{}, domain.ErrEmailTaken
	} else if !IsNotFound(err) {
		return domain.RegisterResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Username:  strings.ToLower(req.Username),
		Email:     strings.ToLower(req.Email),
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.RoleUser,
		IsActive:  true,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	token, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	// Verification mail is best-effort; registration already succeeded.
	if err := s.sendVerifyMail(user); err != nil {
		log.Printf("failed to send verification email to %s: %v", user.Email, err)
	}

	return domain.RegisterResponse{
		User:  s.toUserResponse(ctx, user),
		Token: token,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if IsNotFound(err) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	if !user.IsActive {
		return domain.LoginResponse{}, domain.ErrAccountInactive
	}

	token, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		User:  s.toUserResponse(ctx, user),
		Token: token,
	}, nil
}

func (s *userService) Refresh(ctx context.Context, req domain.RefreshRequest) (domain.TokenPair, error) {
	refreshToken, err := s.userRepository.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if IsNotFound(err) {
			return domain.TokenPair{}, domain.ErrRefreshTokenNotFound
		}
		return domain.TokenPair{}, err
	}

	if refreshToken.RevokedAt != nil {
		return domain.TokenPair{}, domain.ErrRefreshTokenRevoked
	}
	if time.Now().After(refreshToken.ExpiresAt) {
		return domain.TokenPair{}, domain.ErrRefreshTokenExpired
	}

	user, err := s.userRepository.GetUserByID(ctx, refreshToken.UserID.String())
	if err != nil {
		if IsNotFound(err) {
			return domain.TokenPair{}, domain.ErrUserNotFound
		}
		return domain.TokenPair{}, err
	}
	if !user.IsActive {
		return domain.TokenPair{}, domain.ErrAccountInactive
	}

	return domain.TokenPair{
		AccessToken:  s.jwtService.GenerateAccessToken(user.ID.String(), user.Role),
		RefreshToken: refreshToken.Token,
	}, nil
}

func (s *userService) Logout(ctx context.Context, req domain.LogoutRequest) error {
	if err := s.userRepository.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
		if IsNotFound(err) {
			return domain.ErrRefreshTokenNotFound
		}
		return err
	}
	return nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return s.toUserResponse(ctx, user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.Email != nil {
		existing, err := s.userRepository.GetUserByEmail(ctx, *req.Email)
		if err == nil && existing.ID != user.ID {
			return domain.UserResponse{}, domain.ErrEmailTaken
		} else if err != nil && !IsNotFound(err) {
			return domain.UserResponse{}, err
		}
		if strings.ToLower(*req.Email) != user.Email {
			user.Email = strings.ToLower(*req.Email)
			user.IsVerified = false
		}
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return s.toUserResponse(ctx, user), nil
}

func (s *userService) sendVerifyMail(user *entities.User) error {
	token, err := s.jwtService.GenerateVerifyEmailToken(
		map[string]any{"user_id": user.ID.String()},
		24*time.Hour,
	)
	if err != nil {
		return err
	}

	verifyLink := fmt.Sprintf("%s/api/v1/auth/verify?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to RecipeShare. Please verify your email address by clicking "+
			"<a href=\"%s\">this link</a>. The link expires in 24 hours.</p>",
		user.Username, verifyLink,
	)
	return mailing.SendMail(user.Email, "Verify your RecipeShare account", body)
}

func (s *userService) SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if IsNotFound(err) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if user.IsVerified {
		return domain.ErrEmailAlreadyVerified
	}
	return s.sendVerifyMail(user)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateVerifyEmailToken(token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.IsVerified = true
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) GetUsers(ctx context.Context, page, limit int) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, s.toUserResponse(ctx, u))
	}
	return result, count, nil
}

func (s *userService) GetUserDetail(ctx context.Context, id string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return s.toUserResponse(ctx, user), nil
}

func (s *userService) AdminUpdateUser(ctx context.Context, id string, req domain.AdminUpdateUserRequest) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return s.toUserResponse(ctx, user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		if IsNotFound(err) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}
