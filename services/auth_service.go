package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"tickethub/internal/status"
	"tickethub/models"
	"tickethub/store"
	"tickethub/utils"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "auth:revoked:"

type AuthService struct {
	app      core.App
	profiles ProfileStore
	Redis    *redis.Client

	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(app core.App, profiles ProfileStore, redisClient *redis.Client, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		app:       app,
		profiles:  profiles,
		Redis:     redisClient,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates the auth record and its matching profile. New accounts
// always start with the user role; promotion is an admin operation.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthUser, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, status.BadRequest("Name, email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, status.BadRequest("Password must be at least 8 characters")
	}

	if existing, _ := s.app.FindAuthRecordByEmail("users", req.Email); existing != nil {
		return nil, status.Conflict("An account with this email already exists")
	}

	collection, err := s.app.FindCollectionByNameOrId("users")
	if err != nil {
		return nil, status.Internal("Failed to load users collection", err)
	}

	record := core.NewRecord(collection)
	record.SetEmail(req.Email)
	record.SetPassword(req.Password)
	record.SetVerified(true)
	if err := s.app.Save(record); err != nil {
		return nil, status.Internal("Failed to create account", err)
	}

	profile, err := s.profiles.Create(ctx, &models.Profile{
		ID:   record.Id,
		Name: req.Name,
		Role: models.RoleUser,
	})
	if err != nil {
		// Roll back the orphaned auth record so the email can be reused.
		if delErr := s.app.Delete(record); delErr != nil {
			slog.Error("failed to roll back auth record", "user_id", record.Id, "error", delErr)
		}
		return nil, status.Internal("Failed to create profile", err)
	}

	return &models.AuthUser{
		ID:    record.Id,
		Email: record.Email(),
		Name:  profile.Name,
		Role:  profile.Role,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, status.BadRequest("Email and password are required")
	}

	record, err := s.app.FindAuthRecordByEmail("users", req.Email)
	if err != nil || !record.ValidatePassword(req.Password) {
		return nil, status.Unauthorized("Invalid email or password")
	}

	profile, err := s.profiles.GetByID(ctx, record.Id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.Unauthorized("Invalid email or password")
		}
		return nil, status.Internal("Failed to load profile", err)
	}

	token, err := utils.SignToken(s.jwtSecret, record.Id, record.Email(), profile.Role, s.tokenTTL)
	if err != nil {
		return nil, status.Internal("Failed to issue token", err)
	}

	return &models.LoginResult{
		Token: token,
		User: models.AuthUser{
			ID:    record.Id,
			Email: record.Email(),
			Name:  profile.Name,
			Role:  profile.Role,
		},
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ParseToken(s.jwtSecret, token)
	if err != nil {
		// Already invalid; nothing to revoke.
		return nil
	}

	ttl := s.tokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.Redis.Set(ctx, revokedTokenPrefix+hashToken(token), "1", ttl).Err(); err != nil {
		return status.Internal("Failed to revoke token", err)
	}
	return nil
}

// IsRevoked reports whether a token was logged out before its expiry.
func (s *AuthService) IsRevoked(ctx context.Context, token string) bool {
	n, err := s.Redis.Exists(ctx, revokedTokenPrefix+hashToken(token)).Result()
	if err != nil {
		slog.Warn("failed to check token revocation", "error", err)
		return false
	}
	return n > 0
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
