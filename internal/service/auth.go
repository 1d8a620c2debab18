package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"lab-portal/internal/auth"
	"lab-portal/internal/client"
	"lab-portal/internal/common"
	"lab-portal/internal/dto"
	"lab-portal/internal/logging"
	"lab-portal/internal/repository"
)

const devEmailWarning = "Email sending failed, but here's your verification link for development"

type AuthOptions struct {
	BaseURL       string
	TokenTTL      time.Duration
	SessionTTL    time.Duration
	SessionSecret []byte
	// DevMode exposes verification links in responses and tolerates
	// mail delivery failures.
	DevMode bool
	Now     func() time.Time
}

type AuthService interface {
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SignInResult, error)
	Verify(ctx context.Context, token, userID string) (*dto.VerifyResult, error)
}

type authServiceImpl struct {
	userRepo   repository.CheckoutUserRepository
	mailClient client.MailClient
	logger     logging.Logger
	opts       AuthOptions
}

func NewAuthService(
	userRepo repository.CheckoutUserRepository,
	mailClient client.MailClient,
	logger logging.Logger,
	opts AuthOptions,
) AuthService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 7 * 24 * time.Hour
	}
	return &authServiceImpl{
		userRepo:   userRepo,
		mailClient: mailClient,
		logger:     logger,
		opts:       opts,
	}
}

func (s *authServiceImpl) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SignInResult, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)

	user, err := s.userRepo.FindByEmailAndName(ctx, email, name)
	if errors.Is(err, common.ErrNotFound) {
		return &dto.SignInResult{UserFound: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find checkout user: %w", err)
	}

	token, err := newAuthToken()
	if err != nil {
		return nil, err
	}
	expiresAt := s.opts.Now().Add(s.opts.TokenTTL)

	// a new token replaces any outstanding one
	if err := s.userRepo.SetAuthToken(ctx, user.ID, token, expiresAt); err != nil {
		return nil, fmt.Errorf("store auth token: %w", err)
	}

	link := s.verificationLink(token, user.ID)
	result := &dto.SignInResult{UserFound: true}
	if s.opts.DevMode {
		result.VerificationLink = link
	}

	msg, err := verificationEmail(mail.Address{Name: user.Name, Address: user.Email}, link, s.opts.TokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.mailClient.Send(ctx, msg); err != nil {
		s.logger.Error(ctx, "send verification email", "user_id", user.ID, "error", err)
		if !s.opts.DevMode {
			return nil, fmt.Errorf("send verification email: %w", errors.Join(common.ErrDownstream, err))
		}
		result.Warning = devEmailWarning
		result.EmailError = err.Error()
		return result, nil
	}

	s.logger.Info(ctx, "verification email sent", "user_id", user.ID)
	return result, nil
}

func (s *authServiceImpl) Verify(ctx context.Context, token, userID string) (*dto.VerifyResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find checkout user: %w", err)
	}

	if user.AuthToken == "" || subtle.ConstantTimeCompare([]byte(user.AuthToken), []byte(token)) != 1 {
		return nil, common.ErrTokenMismatch
	}
	if user.AuthTokenExpiresAt == nil || s.opts.Now().After(*user.AuthTokenExpiresAt) {
		return nil, common.ErrTokenExpired
	}

	consumed, err := s.userRepo.ConsumeAuthToken(ctx, user.ID, token)
	if err != nil {
		return nil, fmt.Errorf("consume auth token: %w", err)
	}
	if !consumed {
		return nil, common.ErrTokenMismatch
	}

	session, err := auth.GenerateToken(user.ID, user.Email, s.opts.SessionSecret, s.opts.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info(ctx, "user signed in", "user_id", user.ID)
	return &dto.VerifyResult{
		User: dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
		SessionToken: session,
	}, nil
}

func (s *authServiceImpl) verificationLink(token, userID string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("userId", userID)
	return strings.TrimRight(s.opts.BaseURL, "/") + "/dashboard/home?" + q.Encode()
}

func newAuthToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate auth token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
