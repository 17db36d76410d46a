package services

import (
	"context"
	"stitchmart_server/database"
	"stitchmart_server/lib"
	"stitchmart_server/structs"
	"stitchmart_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type AuthService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
	emailService *EmailService
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB, cacheService *CacheService, emailService *EmailService) *AuthService {
	return &AuthService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
		emailService: emailService,
	}
}

// Login verifies credentials and returns the user. All failure modes
// collapse into ErrInvalidCredentials so account existence never leaks.
func (as *AuthService) Login(authRequest *structs.AuthRequest) (*tables.User, error) {
	startTime := time.Now()
	user, err := database.Query[tables.User](as.db).Where("email", authRequest.Email).First(context.Background())
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if !lib.IsNotFound(mappedErr) {
			as.logger.Error("Unexpected database error during login",
				gecho.Field("error", mappedErr),
				gecho.Field("original_error", err),
			)
		}
		return nil, lib.ErrInvalidCredentials
	}

	// First() can return nil, nil for no results
	if user == nil {
		as.logger.Debug("User not found during login attempt", gecho.Field("identifier", authRequest.Email))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(authRequest.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.Id),
		)
		return nil, lib.ErrInvalidCredentials
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("identifier", authRequest.Email),
			gecho.Field("user_id", user.Id),
		)
		return nil, lib.ErrInvalidCredentials
	}

	if err := as.UpdateLastLogin(user.Id); err != nil {
		as.logger.Warn("Failed to update last login", gecho.Field("error", err), gecho.Field("user_id", user.Id))
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User logged in successfully", gecho.Field("user_id", user.Id), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	// Never hand the hash back up the stack
	user.PasswordHash = ""

	if cacheErr := as.cacheService.SetUserInCache(user); cacheErr != nil {
		as.logger.Warn("Failed to set user in cache after login", gecho.Field("error", cacheErr), gecho.Field("user_id", user.Id))
	}

	return user, nil
}

func (as *AuthService) Register(registerRequest *structs.RegisterRequest) (*tables.User, error) {
	startTime := time.Now()
	passwordHash, err := lib.HashPassword(registerRequest.Password, lib.DefaultArgonParams)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}
	user := &tables.User{
		Id:           uuid.New(),
		Email:        registerRequest.Email,
		Fullname:     registerRequest.Fullname,
		PasswordHash: passwordHash,
	}
	user, err = database.Query[tables.User](as.db).Insert(context.Background(), user)
	if err != nil {
		mappedErr := lib.MapPgError(err)

		if lib.IsUniqueViolation(mappedErr) {
			as.logger.Warn("Registration failed - duplicate email",
				gecho.Field("email", registerRequest.Email),
			)
		} else {
			as.logger.Error("Database error during registration",
				gecho.Field("error", mappedErr),
				gecho.Field("email", registerRequest.Email),
			)
		}

		return nil, mappedErr
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User registered successfully", gecho.Field("user_id", user.Id), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	user.PasswordHash = ""

	// Send the welcome email off the request path; registration already
	// succeeded regardless of delivery.
	go func(u tables.User) {
		if err := as.emailService.SendWelcomeEmail(&u); err != nil {
			as.logger.Warn("Failed to send welcome email", gecho.Field("error", err), gecho.Field("user_id", u.Id))
		}
	}(*user)

	return user, nil
}

// ChangePassword verifies the old password before storing the new hash.
func (as *AuthService) ChangePassword(userId uuid.UUID, req *structs.PasswordChangeRequest) error {
	user, err := database.Query[tables.User](as.db).Where("id", userId).First(context.Background())
	if err != nil {
		return lib.MapPgError(err)
	}
	if user == nil {
		return lib.ErrNotFound
	}

	valid, err := lib.VerifyPassword(req.OldPassword, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash during change", gecho.Field("error", err), gecho.Field("user_id", userId))
		return lib.ErrInvalidCredentials
	}
	if !valid {
		return lib.ErrInvalidCredentials
	}

	newHash, err := lib.HashPassword(req.NewPassword, lib.DefaultArgonParams)
	if err != nil {
		as.logger.Error("Failed to hash new password", gecho.Field("error", err), gecho.Field("user_id", userId))
		return err
	}

	updates := map[string]any{
		"password_hash": newHash,
		"updated_at":    time.Now(),
	}
	_, err = database.Query[tables.User](as.db).Where("id", userId).Update(context.Background(), updates)
	if err != nil {
		return lib.MapPgError(err)
	}

	if cacheErr := as.cacheService.DeleteUserFromCache(userId); cacheErr != nil {
		as.logger.Warn("Failed to invalidate user cache after password change", gecho.Field("error", cacheErr), gecho.Field("user_id", userId))
	}

	as.logger.Info("Password changed", gecho.Field("user_id", userId))
	return nil
}

// GenerateAccessToken issues a short-lived JWT access token
func (as *AuthService) GenerateAccessToken(user *tables.User) (string, error) {
	now := time.Now()
	claims := &structs.AuthClaims{
		Sub:     user.Id,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Iat:     now,
		Exp:     now.Add(as.cfg.Auth.AccessTokenExpiry),
		Jti:     uuid.New(),
	}
	return lib.SignClaims(claims, as.cfg.Auth.AccessTokenSecret)
}

// GenerateRefreshToken issues a long-lived JWT refresh token
func (as *AuthService) GenerateRefreshToken(user *tables.User) (string, error) {
	now := time.Now()
	claims := &structs.AuthClaims{
		Sub:     user.Id,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Iat:     now,
		Exp:     now.Add(as.cfg.Auth.RefreshTokenExpiry),
		Jti:     uuid.New(),
	}
	return lib.SignClaims(claims, as.cfg.Auth.RefreshTokenSecret)
}

func (as *AuthService) GetAccessTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.AccessTokenExpiry)
}

func (as *AuthService) GetRefreshTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.RefreshTokenExpiry)
}

// RefreshAccessToken rotates both tokens. The presented refresh token is
// blacklisted so it cannot be replayed.
func (as *AuthService) RefreshAccessToken(refreshToken string) (*tables.AuthResponse, error) {
	claims, err := lib.ParseToken(refreshToken, as.cfg.Auth.RefreshTokenSecret)
	if err != nil {
		as.logger.Debug("Failed to parse refresh token", gecho.Field("error", err))
		return nil, lib.ErrInvalidToken
	}

	if time.Now().After(claims.Exp) {
		as.logger.Debug("Refresh token has expired", gecho.Field("exp", claims.Exp))
		return nil, lib.ErrExpiredToken
	}

	isBlacklisted, err := as.cacheService.IsTokenBlacklisted(claims.Jti)
	if err != nil {
		as.logger.Error("Failed to check token blacklist", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		return nil, err
	}
	if isBlacklisted {
		as.logger.Warn("Refresh token is blacklisted", gecho.Field("jti", claims.Jti))
		return nil, lib.ErrInvalidToken
	}

	user, err := as.GetUserByID(claims.Sub)
	if err != nil {
		as.logger.Error("Failed to get user during token refresh", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		return nil, err
	}
	if user == nil {
		return nil, lib.ErrInvalidToken
	}

	newAccessToken, err := as.GenerateAccessToken(user)
	if err != nil {
		as.logger.Error("Failed to generate access token during refresh", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	newRefreshToken, err := as.GenerateRefreshToken(user)
	if err != nil {
		as.logger.Error("Failed to generate refresh token during refresh", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	// Retire the old refresh token
	if err := as.cacheService.BlacklistToken(claims.Jti, claims.Exp); err != nil {
		as.logger.Warn("Failed to blacklist rotated refresh token", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
	}

	return &tables.AuthResponse{
		User:         user,
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout blacklists the presented tokens for their remaining lifetime.
func (as *AuthService) Logout(accessClaims *structs.AuthClaims, refreshToken string) {
	if accessClaims != nil {
		if err := as.cacheService.BlacklistToken(accessClaims.Jti, accessClaims.Exp); err != nil {
			as.logger.Warn("Failed to blacklist access token on logout", gecho.Field("error", err), gecho.Field("jti", accessClaims.Jti))
		}
	}

	if refreshToken != "" {
		claims, err := lib.ParseToken(refreshToken, as.cfg.Auth.RefreshTokenSecret)
		if err == nil {
			if err := as.cacheService.BlacklistToken(claims.Jti, claims.Exp); err != nil {
				as.logger.Warn("Failed to blacklist refresh token on logout", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
			}
		}
	}
}

// GetUserByID serves from cache first and falls back to the database.
func (as *AuthService) GetUserByID(userId uuid.UUID) (*tables.User, error) {
	cachedUser, err := as.cacheService.GetUserFromCache(userId)
	if err != nil {
		as.logger.Warn("Failed to get user from cache", gecho.Field("error", err), gecho.Field("user_id", userId))
	} else if cachedUser != nil {
		return cachedUser, nil
	}

	user, err := database.Query[tables.User](as.db).Where("id", userId).First(context.Background())
	if err != nil {
		as.logger.Error("Failed to find user by ID", gecho.Field("error", err), gecho.Field("user_id", userId))
		return nil, lib.MapPgError(err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}

	user.PasswordHash = ""

	go func() {
		if err := as.cacheService.SetUserInCache(user); err != nil {
			as.logger.Warn("Failed to cache user after DB fetch", gecho.Field("error", err), gecho.Field("user_id", userId))
		}
	}()

	return user, nil
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}

func (as *AuthService) GetRefreshTokenSecret() string {
	return as.cfg.Auth.RefreshTokenSecret
}

func (as *AuthService) UpdateLastLogin(userId uuid.UUID) error {
	updates := map[string]any{
		"last_login": time.Now(),
	}
	_, err := database.Query[tables.User](as.db).Where("id", userId).Update(context.Background(), updates)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}
