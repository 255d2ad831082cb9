package businessflow

import (
	"context"
	"errors"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/app/services"
	"github.com/amirphl/Rentora/repository"
	"github.com/amirphl/Rentora/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthFlow represents the admin authentication flow used by handlers
type AdminAuthFlow interface {
	InitCaptcha(ctx context.Context) (*dto.AdminCaptchaInitResponse, error)
	Login(ctx context.Context, req *dto.AdminCaptchaVerifyRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error)
	Refresh(ctx context.Context, req *dto.AdminRefreshRequest) (*dto.AdminSessionDTO, error)
	Logout(ctx context.Context, accessToken string, req *dto.AdminLogoutRequest) error
}

// AdminAuthFlowImpl provides captcha-init, credential verification and session rotation
type AdminAuthFlowImpl struct {
	adminRepo      repository.AdminRepository
	tokenService   services.TokenService
	captchaSvc     services.CaptchaService
	captchaEnabled bool
}

func NewAdminAuthFlow(adminRepo repository.AdminRepository, tokenService services.TokenService, captchaSvc services.CaptchaService, captchaEnabled bool) AdminAuthFlow {
	return &AdminAuthFlowImpl{
		adminRepo:      adminRepo,
		tokenService:   tokenService,
		captchaSvc:     captchaSvc,
		captchaEnabled: captchaEnabled,
	}
}

func (af *AdminAuthFlowImpl) InitCaptcha(ctx context.Context) (*dto.AdminCaptchaInitResponse, error) {
	if af.captchaSvc == nil {
		return nil, NewBusinessError("CAPTCHA_NOT_AVAILABLE", "Captcha service not available", ErrCaptchaNotAvailable)
	}
	ch, err := af.captchaSvc.GenerateRotate(ctx)
	if err != nil {
		return nil, NewBusinessError("CAPTCHA_INIT_FAILED", "Failed to initialize captcha", err)
	}
	return &dto.AdminCaptchaInitResponse{
		ChallengeID:       ch.ID,
		MasterImageBase64: ch.MasterImageBase64,
		ThumbImageBase64:  ch.ThumbImageBase64,
	}, nil
}

func (af *AdminAuthFlowImpl) Login(ctx context.Context, req *dto.AdminCaptchaVerifyRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error) {
	if req == nil || len(req.Username) == 0 || len(req.Password) == 0 {
		return nil, NewBusinessError("ADMIN_LOGIN_VALIDATION_FAILED", "Admin login validation failed", ErrIncorrectPassword)
	}

	// captcha is consumed before credentials are looked at
	if af.captchaEnabled {
		if len(req.ChallengeID) == 0 {
			return nil, NewBusinessError("CAPTCHA_INVALID", "Captcha challenge missing", ErrInvalidCaptcha)
		}
		if af.captchaSvc == nil || !af.captchaSvc.VerifyRotate(ctx, req.ChallengeID, req.UserAngle) {
			return nil, NewBusinessError("CAPTCHA_INVALID", "Captcha validation failed", ErrInvalidCaptcha)
		}
	}

	admin, err := af.adminRepo.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return nil, NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}
	if !utils.IsTrue(admin.IsActive) {
		return nil, NewBusinessError("ADMIN_INACTIVE", "Admin account is inactive", ErrAdminInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewBusinessError("ADMIN_INCORRECT_PASSWORD", "Incorrect password", ErrIncorrectPassword)
	}

	accessToken, refreshToken, err := af.tokenService.GenerateAdminTokens(admin.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	now := utils.UTCNow()
	if err := af.adminRepo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		log.Warn().Err(err).Uint("admin_id", admin.ID).Msg("failed to record admin last login")
	}

	event := log.Info().Uint("admin_id", admin.ID).Str("username", admin.Username)
	if metadata != nil {
		event = event.Str("ip", metadata.IPAddress).Str("request_id", metadata.RequestID)
	}
	event.Msg("admin logged in")

	return &dto.AdminLoginResponse{
		Admin:   ToAdminDTOModel(*admin),
		Session: ToAdminSessionDTO(accessToken, refreshToken, af.tokenService.AccessTokenTTL()),
	}, nil
}

func (af *AdminAuthFlowImpl) Refresh(ctx context.Context, req *dto.AdminRefreshRequest) (*dto.AdminSessionDTO, error) {
	if req == nil || req.RefreshToken == "" {
		return nil, NewBusinessError("INVALID_REFRESH_TOKEN", "Refresh token is required", ErrInvalidToken)
	}

	claims, accessToken, refreshToken, err := af.tokenService.RefreshAdminTokens(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrTokenExpired) || errors.Is(err, services.ErrTokenInvalid) || errors.Is(err, services.ErrTokenRevoked) {
			return nil, NewBusinessError("INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired", errors.Join(ErrInvalidToken, err))
		}
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to refresh tokens", err)
	}

	// An admin deactivated after login must not keep rotating sessions
	admin, err := af.adminRepo.ByID(ctx, claims.AdminID)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		return nil, NewBusinessError("ADMIN_NOT_FOUND", "Admin not found", ErrAdminNotFound)
	}
	if !utils.IsTrue(admin.IsActive) {
		_ = af.tokenService.RevokeToken(ctx, refreshToken)
		return nil, NewBusinessError("ADMIN_INACTIVE", "Admin account is inactive", ErrAdminInactive)
	}

	session := ToAdminSessionDTO(accessToken, refreshToken, af.tokenService.AccessTokenTTL())
	return &session, nil
}

// Logout ends the session: the access token and the refresh token issued with it are both revoked.
// A refresh token that is already revoked is accepted so logout can be retried.
func (af *AdminAuthFlowImpl) Logout(ctx context.Context, accessToken string, req *dto.AdminLogoutRequest) error {
	if req == nil || req.RefreshToken == "" {
		return NewBusinessError("INVALID_TOKEN", "Refresh token is required", ErrInvalidToken)
	}

	access, err := af.tokenService.ValidateAdminToken(ctx, accessToken)
	if err != nil {
		return logoutTokenError("Access token is invalid or expired", err)
	}
	if access.TokenType != services.TokenTypeAccess {
		return NewBusinessError("INVALID_TOKEN", "Access token is invalid", ErrInvalidToken)
	}

	refresh, err := af.tokenService.ValidateAdminToken(ctx, req.RefreshToken)
	switch {
	case errors.Is(err, services.ErrTokenRevoked):
	case err != nil:
		return logoutTokenError("Refresh token is invalid or expired", err)
	case refresh.TokenType != services.TokenTypeRefresh || refresh.AdminID != access.AdminID:
		return NewBusinessError("INVALID_TOKEN", "Refresh token does not belong to this session", ErrInvalidToken)
	default:
		if err := af.tokenService.RevokeToken(ctx, req.RefreshToken); err != nil {
			return logoutTokenError("Failed to revoke refresh token", err)
		}
	}

	if err := af.tokenService.RevokeToken(ctx, accessToken); err != nil {
		return logoutTokenError("Failed to revoke access token", err)
	}
	return nil
}

func logoutTokenError(message string, err error) error {
	if errors.Is(err, services.ErrTokenExpired) || errors.Is(err, services.ErrTokenInvalid) {
		return NewBusinessError("INVALID_TOKEN", message, errors.Join(ErrInvalidToken, err))
	}
	return NewBusinessError("LOGOUT_FAILED", message, err)
}
