package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Payphone-Digital/storefront/internal/dto"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/model"
	"github.com/Payphone-Digital/storefront/pkg/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userFixture struct {
	svc   *UserService
	repo  *fakeUserRepo
	mail  *fakeMailer
	store *fakeStore
	jwt   *JWTService
	cache *CacheService
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	f := &userFixture{
		repo:  newFakeUserRepo(),
		mail:  &fakeMailer{},
		store: &fakeStore{},
		jwt:   newTestJWT(),
		cache: NewCacheService(nil, nil, nil),
	}
	f.svc = NewUserService(
		f.repo,
		f.jwt,
		f.mail,
		f.cache,
		NewUploadService(f.store, 1<<20, nil),
		UserServiceConfig{FrontendURL: "http://shop.test", OTPExpiration: time.Hour, OTPMaxAttempts: 5},
		nil,
	)
	return f
}

func (f *userFixture) register(t *testing.T, name, email, password string) *dto.UserResponse {
	t.Helper()
	user, err := f.svc.Register(context.Background(), &dto.RegisterRequest{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return user
}

func (f *userFixture) stored(t *testing.T, id string) *model.User {
	t.Helper()
	u, err := f.repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func TestUserService_Register(t *testing.T) {
	f := newUserFixture(t)

	user := f.register(t, "Asha", "Asha@Example.com", "secret1")

	assert.Equal(t, "asha@example.com", user.Email)
	assert.False(t, user.VerifyEmail)
	assert.Equal(t, string(model.UserStatusActive), user.Status)

	stored := f.stored(t, user.ID)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
	assert.NotEmpty(t, stored.VerifyEmailCode)
	assert.NotEqual(t, stored.ID, stored.VerifyEmailCode)

	sent := f.mail.last()
	assert.Equal(t, "asha@example.com", sent.To)
	assert.Equal(t, mailer.SubjectVerifyEmail, sent.Subject)
	assert.Contains(t, sent.Body, "http://shop.test/verify-email?code="+stored.VerifyEmailCode)
}

func TestUserService_Register_Duplicate(t *testing.T) {
	f := newUserFixture(t)
	f.register(t, "Asha", "asha@example.com", "secret1")

	_, err := f.svc.Register(context.Background(), &dto.RegisterRequest{Name: "Other", Email: "ASHA@example.com", Password: "x"})

	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
	assert.Equal(t, "Aready register email", apperrors.GetErrorMessage(err))
	assert.Equal(t, 1, f.repo.count())
}

func TestUserService_Register_MissingFields(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.svc.Register(context.Background(), &dto.RegisterRequest{Name: "Asha", Email: " "})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToHTTPStatus(err))
	assert.Equal(t, "Provide Name, Email, Password", apperrors.GetErrorMessage(err))
	assert.Zero(t, f.repo.count())
}

func TestUserService_Register_PasswordOverByteLimit(t *testing.T) {
	f := newUserFixture(t)
	// 40 runes passes the binding tag but is 80 bytes.
	password := strings.Repeat("é", 40)

	_, err := f.svc.Register(context.Background(), &dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: password})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToHTTPStatus(err))
	assert.Equal(t, "Password must be at most 72 bytes", apperrors.GetErrorMessage(err))
	assert.Zero(t, f.repo.count())

	_, err = f.svc.Register(context.Background(), &dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: strings.Repeat("é", 36)})
	assert.NoError(t, err, "exactly 72 bytes is accepted")
}

func TestUserService_Register_MailFailureStillRegisters(t *testing.T) {
	f := newUserFixture(t)
	f.mail.err = errors.New("smtp down")

	user, err := f.svc.Register(context.Background(), &dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 1, f.repo.count())
}

func TestUserService_VerifyEmail(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")
	code := f.stored(t, user.ID).VerifyEmailCode

	assert.ErrorIs(t, f.svc.VerifyEmail(context.Background(), "nope"), apperrors.ErrInvalidVerifyCode)
	assert.ErrorIs(t, f.svc.VerifyEmail(context.Background(), ""), apperrors.ErrInvalidVerifyCode)

	require.NoError(t, f.svc.VerifyEmail(context.Background(), code))
	require.NoError(t, f.svc.VerifyEmail(context.Background(), code))
	assert.True(t, f.stored(t, user.ID).VerifyEmail)
}

func TestUserService_Login(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")

	resp, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := f.jwt.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	stored := f.stored(t, user.ID)
	assert.Equal(t, HashToken(resp.RefreshToken), stored.RefreshToken)
	assert.NotNil(t, stored.LastLoginDate)
}

func TestUserService_Login_Failures(t *testing.T) {
	f := newUserFixture(t)
	active := f.register(t, "Asha", "asha@example.com", "secret1")
	inactive := f.register(t, "Ravi", "ravi@example.com", "secret1")
	require.NoError(t, f.repo.mutate(inactive.ID, func(u *model.User) { u.Status = model.UserStatusSuspended }))

	tests := []struct {
		name    string
		req     dto.LoginRequest
		wantErr error
		message string
	}{
		{"missing fields", dto.LoginRequest{Email: "asha@example.com"}, apperrors.ErrInvalidInput, "Provide email, password"},
		{"unknown email", dto.LoginRequest{Email: "nobody@example.com", Password: "x"}, apperrors.ErrUserNotRegistered, "User not register"},
		{"wrong password", dto.LoginRequest{Email: "asha@example.com", Password: "wrong"}, apperrors.ErrInvalidCredentials, "Check your password"},
		{"inactive with right password", dto.LoginRequest{Email: "ravi@example.com", Password: "secret1"}, apperrors.ErrAccountInactive, "Contact to Admin"},
		{"inactive with wrong password", dto.LoginRequest{Email: "ravi@example.com", Password: "wrong"}, apperrors.ErrAccountInactive, "Contact to Admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.Login(context.Background(), &tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.message, apperrors.GetErrorMessage(err))
			assert.Equal(t, http.StatusBadRequest, apperrors.ToHTTPStatus(err))
		})
	}

	assert.Empty(t, f.stored(t, active.ID).RefreshToken)
	assert.Empty(t, f.stored(t, inactive.ID).RefreshToken)
}

func TestUserService_RefreshAccessToken(t *testing.T) {
	f := newUserFixture(t)
	f.register(t, "Asha", "asha@example.com", "secret1")
	login, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	access, err := f.svc.RefreshAccessToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	_, err = f.jwt.ValidateAccessToken(access)
	assert.NoError(t, err)

	_, err = f.svc.RefreshAccessToken(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = f.svc.RefreshAccessToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	// an access token is not a refresh token
	_, err = f.svc.RefreshAccessToken(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestUserService_Logout_RevokesRefreshToken(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")
	login, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), user.ID))

	assert.Empty(t, f.stored(t, user.ID).RefreshToken)
	_, err = f.svc.RefreshAccessToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToHTTPStatus(err))
}

func TestUserService_UpdateUser(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")
	f.register(t, "Ravi", "ravi@example.com", "secret1")

	taken := "Ravi@example.com"
	_, err := f.svc.UpdateUser(context.Background(), user.ID, &dto.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)

	same := "asha@example.com"
	name := "Asha K"
	password := "newsecret"
	updated, err := f.svc.UpdateUser(context.Background(), user.ID, &dto.UpdateUserRequest{
		Name:     &name,
		Email:    &same,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "asha@example.com", updated.Email)

	stored := f.stored(t, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newsecret")))

	_, err = f.svc.UpdateUser(context.Background(), "missing", &dto.UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_GetDetails(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")

	details, err := f.svc.GetDetails(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, details.ID)
	assert.Equal(t, []string{}, details.AddressDetails)

	_, err = f.svc.GetDetails(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func fileHeader(t *testing.T, field, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	return typedFileHeader(t, field, filename, "application/octet-stream", data)
}

// typedFileHeader builds a part whose Content-Type header claims contentType.
func typedFileHeader(t *testing.T, field, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename)},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestUserService_UploadAvatar(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")

	resp, err := f.svc.UploadAvatar(context.Background(), user.ID, fileHeader(t, "avatar", "me.png", pngHeader))
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.ID)
	assert.True(t, strings.HasPrefix(resp.Avatar, "https://cdn.test/images/"))
	assert.Equal(t, resp.Avatar, f.stored(t, user.ID).Avatar)
}

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestUserService_ForgotPassword(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")

	err := f.svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrEmailNotAvailable)
	assert.Equal(t, "Email id not available", apperrors.GetErrorMessage(err))

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "asha@example.com"))

	stored := f.stored(t, user.ID)
	assert.Regexp(t, sixDigits, stored.ForgotPasswordOTP)
	require.NotNil(t, stored.ForgotPasswordExpiry)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.ForgotPasswordExpiry, time.Minute)

	sent := f.mail.last()
	assert.Equal(t, mailer.SubjectForgotPassword, sent.Subject)
	assert.Contains(t, sent.Body, stored.ForgotPasswordOTP)
	assert.Contains(t, sent.Body, "1 hour")
}

func TestUserService_ForgotPassword_MailUnavailable(t *testing.T) {
	f := newUserFixture(t)
	f.register(t, "Asha", "asha@example.com", "secret1")
	f.mail.err = errors.New("smtp down")

	err := f.svc.ForgotPassword(context.Background(), "asha@example.com")

	assert.Equal(t, http.StatusServiceUnavailable, apperrors.ToHTTPStatus(err))
}

func TestUserService_VerifyForgotPasswordOTP(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")
	ctx := context.Background()

	err := f.svc.VerifyForgotPasswordOTP(ctx, &dto.VerifyOTPRequest{Email: "asha@example.com"})
	assert.Equal(t, "Provide required field email, otp", apperrors.GetErrorMessage(err))

	err = f.svc.VerifyForgotPasswordOTP(ctx, &dto.VerifyOTPRequest{Email: "asha@example.com", Otp: "123456"})
	assert.ErrorIs(t, err, apperrors.ErrOTPExpired, "never issued counts as expired")

	require.NoError(t, f.svc.ForgotPassword(ctx, "asha@example.com"))
	otp := f.stored(t, user.ID).ForgotPasswordOTP

	err = f.svc.VerifyForgotPasswordOTP(ctx, &dto.VerifyOTPRequest{Email: "asha@example.com", Otp: "000000x"})
	assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
	assert.Equal(t, otp, f.stored(t, user.ID).ForgotPasswordOTP)

	require.NoError(t, f.svc.VerifyForgotPasswordOTP(ctx, &dto.VerifyOTPRequest{Email: "asha@example.com", Otp: otp}))
	stored := f.stored(t, user.ID)
	assert.Empty(t, stored.ForgotPasswordOTP)
	assert.Nil(t, stored.ForgotPasswordExpiry)
}

func TestUserService_VerifyForgotPasswordOTP_ExpiredEvenWhenMatching(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")
	require.NoError(t, f.svc.ForgotPassword(context.Background(), "asha@example.com"))
	otp := f.stored(t, user.ID).ForgotPasswordOTP

	f.svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	err := f.svc.VerifyForgotPasswordOTP(context.Background(), &dto.VerifyOTPRequest{Email: "asha@example.com", Otp: otp})

	assert.ErrorIs(t, err, apperrors.ErrOTPExpired)
	assert.Equal(t, "Otp is expired", apperrors.GetErrorMessage(err))
	assert.Equal(t, http.StatusBadRequest, apperrors.ToHTTPStatus(err))
}

func TestUserService_VerifyForgotPasswordOTP_AttemptLimit(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")
	ctx := context.Background()
	require.NoError(t, f.svc.ForgotPassword(ctx, "asha@example.com"))
	otp := f.stored(t, user.ID).ForgotPasswordOTP

	for i := 0; i < 5; i++ {
		err := f.svc.VerifyForgotPasswordOTP(ctx, &dto.VerifyOTPRequest{Email: "asha@example.com", Otp: "wrong"})
		require.ErrorIs(t, err, apperrors.ErrOTPInvalid)
	}

	err := f.svc.VerifyForgotPasswordOTP(ctx, &dto.VerifyOTPRequest{Email: "asha@example.com", Otp: otp})
	assert.ErrorIs(t, err, apperrors.ErrOTPAttempts)
	assert.Equal(t, http.StatusTooManyRequests, apperrors.ToHTTPStatus(err))

	// a fresh OTP restores the budget
	require.NoError(t, f.svc.ForgotPassword(ctx, "asha@example.com"))
	otp = f.stored(t, user.ID).ForgotPasswordOTP
	assert.NoError(t, f.svc.VerifyForgotPasswordOTP(ctx, &dto.VerifyOTPRequest{Email: "asha@example.com", Otp: otp}))
}

func TestUserService_ResetPassword(t *testing.T) {
	f := newUserFixture(t)
	user := f.register(t, "Asha", "asha@example.com", "secret1")
	ctx := context.Background()
	before := f.stored(t, user.ID).Password

	err := f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "asha@example.com", NewPassword: "a"})
	assert.Equal(t, "Provide required fields email, newPassword, confirmPassword", apperrors.GetErrorMessage(err))

	err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "nobody@example.com", NewPassword: "a", ConfirmPassword: "a"})
	assert.ErrorIs(t, err, apperrors.ErrResetEmailNotFound)
	assert.Equal(t, "Email is not available", apperrors.GetErrorMessage(err))

	err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "asha@example.com", NewPassword: "newone", ConfirmPassword: "other"})
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
	assert.Equal(t, before, f.stored(t, user.ID).Password)

	long := strings.Repeat("é", 40)
	err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "asha@example.com", NewPassword: long, ConfirmPassword: long})
	assert.Equal(t, http.StatusBadRequest, apperrors.ToHTTPStatus(err))
	assert.Equal(t, before, f.stored(t, user.ID).Password)

	require.NoError(t, f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "asha@example.com", NewPassword: "newone", ConfirmPassword: "newone"}))
	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "newone"})
	assert.NoError(t, err)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, otp)
	}
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 hour", humanDuration(time.Hour))
	assert.Equal(t, "2 hours", humanDuration(2*time.Hour))
	assert.Equal(t, "15 minutes", humanDuration(15*time.Minute))
}
