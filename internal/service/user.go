package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/model"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/mailer"
	"github.com/Payphone-Digital/storefront/pkg/metrics"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserServiceConfig carries the settings the session flow needs.
type UserServiceConfig struct {
	FrontendURL    string
	OTPExpiration  time.Duration
	OTPMaxAttempts int
}

type UserService struct {
	repoUser   UserRepository
	jwtService *JWTService
	mail       mailer.Mailer
	cache      *CacheService
	uploads    *UploadService
	cfg        UserServiceConfig
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewUserService(
	repo UserRepository,
	jwtService *JWTService,
	mail mailer.Mailer,
	cache *CacheService,
	uploads *UploadService,
	cfg UserServiceConfig,
	m *metrics.Metrics,
) *UserService {
	if cfg.OTPExpiration <= 0 {
		cfg.OTPExpiration = time.Hour
	}
	if cfg.OTPMaxAttempts <= 0 {
		cfg.OTPMaxAttempts = constants.DefaultOTPAttempts
	}
	return &UserService{
		repoUser:   repo,
		jwtService: jwtService,
		mail:       mail,
		cache:      cache,
		uploads:    uploads,
		cfg:        cfg,
		metrics:    m,
		now:        time.Now,
	}
}

// hashPassword hashes password using bcrypt. The binding tag counts runes
// while bcrypt limits bytes, so multi-byte passwords are checked here.
func (s *UserService) hashPassword(password string) (string, error) {
	if len(password) > constants.MaxPasswordLength {
		return "", apperrors.Invalid(fmt.Sprintf("Password must be at most %d bytes", constants.MaxPasswordLength))
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.WrapError(apperrors.Invalid("Password is too long"), err)
	}
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return string(hashedPassword), nil
}

func (s *UserService) checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	ctx = withFunction(ctx, "Register")

	if blank(req.Name, req.Email, req.Password) {
		return nil, apperrors.Invalid("Provide Name, Email, Password")
	}
	email := model.NormalizeEmail(req.Email)

	exists, err := s.repoUser.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if exists {
		logger.InfoWithContext(ctx, "Registration with existing email").String("email", email).Log()
		return nil, apperrors.ErrEmailExists
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:            strings.TrimSpace(req.Name),
		Email:           email,
		Password:        hashedPassword,
		VerifyEmailCode: uuid.NewString(),
		Status:          model.UserStatusActive,
	}
	if err := s.repoUser.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		logger.ErrorWithContext(ctx, "Failed to create user").String("email", email).Err(err).Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	// The account is usable without the email; a mail outage only delays
	// verification.
	if err := s.sendVerifyEmail(ctx, user); err != nil {
		logger.WarnWithContext(ctx, "Verification email not sent").
			String("user_id", user.ID).
			Err(err).
			Log()
	}

	logger.InfoWithContext(ctx, "User registered").
		String("user_id", user.ID).
		String("email", email).
		Log()

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserService) verifyURL(code string) string {
	return strings.TrimRight(s.cfg.FrontendURL, "/") + "/verify-email?code=" + url.QueryEscape(code)
}

func (s *UserService) sendVerifyEmail(ctx context.Context, user *model.User) error {
	body, err := mailer.VerifyEmail(user.Name, s.verifyURL(user.VerifyEmailCode))
	if err != nil {
		return err
	}
	err = s.mail.Send(ctx, user.Email, mailer.SubjectVerifyEmail, body)
	s.metrics.ObserveCollaborator("mailer", err)
	return err
}

// VerifyEmail marks the owner of code as verified. Repeating it is harmless.
func (s *UserService) VerifyEmail(ctx context.Context, code string) error {
	ctx = withFunction(ctx, "VerifyEmail")

	if blank(code) {
		return apperrors.ErrInvalidVerifyCode
	}

	user, err := s.repoUser.GetByVerifyCode(ctx, code)
	if err != nil {
		return mapRepoError(err, apperrors.ErrInvalidVerifyCode)
	}

	if err := s.repoUser.MarkEmailVerified(ctx, user.ID); err != nil {
		return mapRepoError(err, apperrors.ErrInvalidVerifyCode)
	}

	logger.InfoWithContext(ctx, "Email verified").String("user_id", user.ID).Log()
	return nil
}

func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (resp *dto.LoginResponse, err error) {
	ctx = withFunction(ctx, "Login")
	defer func() { s.metrics.ObserveAuth("login", err) }()

	if blank(req.Email, req.Password) {
		return nil, apperrors.Invalid("Provide email, password")
	}

	user, err := s.repoUser.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, mapRepoError(err, apperrors.ErrUserNotRegistered)
	}

	if !user.IsActive() {
		logger.LogAuth(user.ID, "login", false)
		return nil, apperrors.ErrAccountInactive
	}

	if !s.checkPassword(user.Password, req.Password) {
		logger.LogAuth(user.ID, "login", false)
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.repoUser.RecordLogin(ctx, user.ID, HashToken(refreshToken), s.now().UTC()); err != nil {
		return nil, mapRepoError(err, apperrors.ErrUserNotRegistered)
	}

	logger.LogAuth(user.ID, "login", true)
	return &dto.LoginResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout forgets the stored refresh token so it can no longer mint access
// tokens.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	ctx = withFunction(ctx, "Logout")

	if err := s.repoUser.SetRefreshToken(ctx, userID, ""); err != nil {
		return mapRepoError(err, apperrors.ErrUserNotFound)
	}

	logger.LogAuth(userID, "logout", true)
	return nil
}

// RefreshAccessToken accepts only the refresh token recorded at the last
// login; older ones are refused even while their signature is still valid.
func (s *UserService) RefreshAccessToken(ctx context.Context, refreshToken string) (token string, err error) {
	ctx = withFunction(ctx, "RefreshAccessToken")
	defer func() { s.metrics.ObserveAuth("refresh", err) }()

	if blank(refreshToken) {
		return "", apperrors.ErrInvalidToken
	}

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		logger.InfoWithContext(ctx, "Refresh token rejected").Err(err).Log()
		return "", apperrors.ErrInvalidRefreshToken
	}

	user, err := s.repoUser.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", mapRepoError(err, apperrors.ErrInvalidRefreshToken)
	}
	if !TokenMatches(refreshToken, user.RefreshToken) {
		logger.WarnWithContext(ctx, "Superseded refresh token presented").String("user_id", user.ID).Log()
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return accessToken, nil
}

func (s *UserService) GetDetails(ctx context.Context, userID string) (*dto.UserResponse, error) {
	ctx = withFunction(ctx, "GetDetails")

	user, err := s.repoUser.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, apperrors.ErrUserNotFound)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateUser applies only the fields present in req. A new password is
// rehashed; a new email must not belong to another account.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	ctx = withFunction(ctx, "UpdateUser")

	patch := model.UserPatch{
		Name:   req.Name,
		Mobile: req.Mobile,
	}

	if req.Email != nil {
		email := model.NormalizeEmail(*req.Email)
		existing, err := s.repoUser.GetByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != userID:
			return nil, apperrors.ErrEmailExists
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		patch.Email = &email
	}

	if req.Password != nil {
		hashedPassword, err := s.hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hashedPassword
	}

	if err := s.repoUser.Update(ctx, userID, patch); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, mapRepoError(err, apperrors.ErrUserNotFound)
	}

	logger.InfoWithContext(ctx, "User updated").
		String("user_id", userID).
		Int("fields", len(patch.Columns())).
		Log()
	return s.GetDetails(ctx, userID)
}

func (s *UserService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.AvatarResponse, error) {
	ctx = withFunction(ctx, "UploadAvatar")

	stored, err := s.uploads.UploadImage(ctx, file)
	if err != nil {
		return nil, err
	}

	if err := s.repoUser.Update(ctx, userID, model.UserPatch{Avatar: &stored.URL}); err != nil {
		return nil, mapRepoError(err, apperrors.ErrUserNotFound)
	}

	return &dto.AvatarResponse{ID: userID, Avatar: stored.URL}, nil
}

// generateOTP returns a uniformly random six digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func otpAttemptsKey(email string) string {
	return constants.CacheKeyOTPAttempts + email
}

func humanDuration(d time.Duration) string {
	switch {
	case d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return d.String()
	}
}

func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	ctx = withFunction(ctx, "ForgotPassword")

	if blank(email) {
		return apperrors.Invalid("Provide email")
	}

	user, err := s.repoUser.GetByEmail(ctx, email)
	if err != nil {
		return mapRepoError(err, apperrors.ErrEmailNotAvailable)
	}

	otp, err := generateOTP()
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	expiry := s.now().Add(s.cfg.OTPExpiration).UTC()

	if err := s.repoUser.SetForgotPasswordOTP(ctx, user.ID, otp, expiry); err != nil {
		return mapRepoError(err, apperrors.ErrEmailNotAvailable)
	}
	s.cache.ResetAttempts(ctx, otpAttemptsKey(user.Email))

	body, err := mailer.ForgotPassword(user.Name, otp, humanDuration(s.cfg.OTPExpiration))
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	err = s.mail.Send(ctx, user.Email, mailer.SubjectForgotPassword, body)
	s.metrics.ObserveCollaborator("mailer", err)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to send OTP email").String("user_id", user.ID).Err(err).Log()
		return collaboratorError(err)
	}

	logger.InfoWithContext(ctx, "Password reset OTP issued").
		String("user_id", user.ID).
		Any("expires_at", expiry).
		Log()
	return nil
}

// VerifyForgotPasswordOTP checks the OTP. A wrong guess keeps the OTP in
// place but counts against the per-email attempt budget.
func (s *UserService) VerifyForgotPasswordOTP(ctx context.Context, req *dto.VerifyOTPRequest) (err error) {
	ctx = withFunction(ctx, "VerifyForgotPasswordOTP")
	defer func() { s.metrics.ObserveAuth("verify_otp", err) }()

	if blank(req.Email, req.Otp) {
		return apperrors.Invalid("Provide required field email, otp")
	}

	user, err := s.repoUser.GetByEmail(ctx, req.Email)
	if err != nil {
		return mapRepoError(err, apperrors.ErrEmailNotAvailable)
	}

	key := otpAttemptsKey(user.Email)
	if s.cache.Attempts(ctx, key) >= int64(s.cfg.OTPMaxAttempts) {
		logger.WarnWithContext(ctx, "OTP attempt budget exhausted").String("user_id", user.ID).Log()
		return apperrors.ErrOTPAttempts
	}

	if user.ForgotPasswordExpiry == nil || s.now().After(*user.ForgotPasswordExpiry) {
		return apperrors.ErrOTPExpired
	}

	if strings.TrimSpace(req.Otp) != user.ForgotPasswordOTP {
		attempts, err := s.cache.IncrementAttempts(ctx, key, user.ForgotPasswordExpiry.Sub(s.now()))
		if err != nil {
			logger.WarnWithContext(ctx, "Failed to count OTP attempt").Err(err).Log()
		}
		logger.InfoWithContext(ctx, "Invalid OTP").
			String("user_id", user.ID).
			Int64("attempts", attempts).
			Log()
		return apperrors.ErrOTPInvalid
	}

	if err := s.repoUser.ClearForgotPasswordOTP(ctx, user.ID); err != nil {
		return mapRepoError(err, apperrors.ErrEmailNotAvailable)
	}
	s.cache.ResetAttempts(ctx, key)

	logger.InfoWithContext(ctx, "OTP verified").String("user_id", user.ID).Log()
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	ctx = withFunction(ctx, "ResetPassword")

	if blank(req.Email, req.NewPassword, req.ConfirmPassword) {
		return apperrors.Invalid("Provide required fields email, newPassword, confirmPassword")
	}

	user, err := s.repoUser.GetByEmail(ctx, req.Email)
	if err != nil {
		return mapRepoError(err, apperrors.ErrResetEmailNotFound)
	}

	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	hashedPassword, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.repoUser.ResetPassword(ctx, user.ID, hashedPassword); err != nil {
		return mapRepoError(err, apperrors.ErrResetEmailNotFound)
	}

	logger.InfoWithContext(ctx, "Password reset").String("user_id", user.ID).Log()
	return nil
}
