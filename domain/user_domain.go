package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister        = "user registered successfully"
	MessageSuccessLogin           = "login successful"
	MessageSuccessRefresh         = "token refreshed successfully"
	MessageSuccessLogout          = "logout successful"
	MessageSuccessGetProfile      = "success get profile"
	MessageSuccessUpdateUser      = "user updated successfully"
	MessageSuccessSendVerifyEmail = "verification email sent"
	MessageSuccessVerifyEmail     = "email verified successfully"
	MessageSuccessGetUsers        = "users retrieved successfully"
	MessageSuccessGetUserDetail   = "success get user detail"
	MessageSuccessDeleteUser      = "user deleted successfully"

	MessageFailedRegister        = "failed to register user"
	MessageFailedLogin           = "failed to login"
	MessageFailedRefresh         = "failed to refresh token"
	MessageFailedLogout          = "failed to logout"
	MessageFailedGetProfile      = "failed to get profile"
	MessageFailedUpdateUser      = "failed to update user"
	MessageFailedSendVerifyEmail = "failed to send verification email"
	MessageFailedVerifyEmail     = "failed to verify email"
	MessageFailedGetUsers        = "failed to retrieve users"
	MessageFailedDeleteUser      = "failed to delete user"

	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already registered")
	ErrCredentialsInvalid   = errors.New("invalid username or password")
	ErrAccountInactive      = errors.New("account is deactivated")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrEmailAlreadyVerified = errors.New("email already verified")
)

type (
	RegisterRequest struct {
		Username        string `json:"username" validate:"required,min=3,max=30"`
		Email           string `json:"email" validate:"required,email"`
		Password        string `json:"password" validate:"required,min=8"`
		PasswordConfirm string `json:"password_confirm" validate:"required"`
		FirstName       string `json:"first_name" validate:"omitempty,max=100"`
		LastName        string `json:"last_name" validate:"omitempty,max=100"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	RefreshRequest struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	LogoutRequest struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	UpdateUserRequest struct {
		FirstName *string `json:"first_name" validate:"omitempty,max=100"`
		LastName  *string `json:"last_name" validate:"omitempty,max=100"`
		Email     *string `json:"email" validate:"omitempty,email"`
	}

	SendVerifyEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	TokenPair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}

	UserResponse struct {
		ID           string    `json:"id"`
		Username     string    `json:"username"`
		Email        string    `json:"email"`
		FirstName    string    `json:"first_name,omitempty"`
		LastName     string    `json:"last_name,omitempty"`
		Role         string    `json:"role"`
		IsVerified   bool      `json:"is_verified"`
		IsActive     bool      `json:"is_active"`
		RecipesCount int64     `json:"recipes_count"`
		CreatedAt    time.Time `json:"created_at"`
	}

	RegisterResponse struct {
		User  UserResponse `json:"user"`
		Token TokenPair    `json:"token"`
	}

	LoginResponse struct {
		User  UserResponse `json:"user"`
		Token TokenPair    `json:"token"`
	}

	// AdminUpdateUserRequest toggles moderation-relevant fields.
	AdminUpdateUserRequest struct {
		IsActive *bool   `json:"is_active"`
		Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
	}
)
