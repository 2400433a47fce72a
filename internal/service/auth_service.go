package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alimikegami/perfume-store/config"
	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/repository"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	AuthUserKey  = "auth:user"
	AuthTokenKey = "auth:token"
)

// AuthServiceImpl is a single back-office session. The stored user snapshot
// is for display only; the JWT is what the admin routes check.
type AuthServiceImpl struct {
	storage  repository.Storage
	config   config.Config
	validate *validator.Validate
}

func CreateAuthService(storage repository.Storage, config config.Config, validate *validator.Validate) AuthService {
	return &AuthServiceImpl{storage: storage, config: config, validate: validate}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (resp dto.LoginResponse, err error) {
	if err = s.validate.Struct(req); err != nil {
		return resp, fmt.Errorf("%w: %w", errs.ErrValidation, err)
	}

	if s.config.AdminConfig.Email == "" || req.Email != s.config.AdminConfig.Email {
		return resp, errs.ErrInvalidCredentialsEmail
	}

	err = bcrypt.CompareHashAndPassword([]byte(s.config.AdminConfig.PasswordHash), []byte(req.Password))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AuthService.Login").Msg("")
		return resp, errs.ErrInvalidCredentialsEmail
	}

	user := domain.AdminUser{Name: s.config.AdminConfig.Name, Email: s.config.AdminConfig.Email}
	token, err := utils.CreateJWTToken(user.Name, user.Email, s.config.JWTSecret)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AuthService.Login").Msg("")
		return
	}

	snapshot, err := json.Marshal(user)
	if err != nil {
		return
	}

	if err = s.storage.Set(ctx, AuthUserKey, snapshot); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AuthService.Login").Msg("")
		return
	}

	if s.config.RemoteAPIConfig.Token != "" {
		if err = s.storage.Set(ctx, AuthTokenKey, []byte(s.config.RemoteAPIConfig.Token)); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "AuthService.Login").Msg("")
			return
		}
	}

	return dto.LoginResponse{Token: token, Name: user.Name, Email: user.Email}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context) (err error) {
	if err = s.storage.Clear(ctx, AuthUserKey); err != nil {
		return
	}
	return s.storage.Clear(ctx, AuthTokenKey)
}

func (s *AuthServiceImpl) CurrentUser(ctx context.Context) (user domain.AdminUser, err error) {
	raw, err := s.storage.Get(ctx, AuthUserKey)
	if err != nil {
		return
	}

	if len(raw) == 0 {
		return user, errs.ErrNotLoggedIn
	}

	if err = json.Unmarshal(raw, &user); err != nil {
		return user, errs.ErrNotLoggedIn
	}

	return user, nil
}

// RemoteToken returns the bearer token for the catalog API, or "" when none is stored.
func (s *AuthServiceImpl) RemoteToken(ctx context.Context) (token string, err error) {
	raw, err := s.storage.Get(ctx, AuthTokenKey)
	if err != nil {
		return
	}
	return string(raw), nil
}

// ClearCredentials runs when the catalog API answers 401.
func (s *AuthServiceImpl) ClearCredentials(ctx context.Context) {
	if err := s.Logout(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AuthService.ClearCredentials").Msg("")
	}
}
