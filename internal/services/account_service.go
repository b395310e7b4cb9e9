package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/pkg/logger"
	"tripplanner/pkg/utils"
)

type GoogleUser struct {
	Email    string
	Name     string
	Verified bool
}

// UserInfoFetcher resolves a Google OAuth access token to its account.
type UserInfoFetcher interface {
	FetchUser(ctx context.Context, accessToken string) (*GoogleUser, error)
}

type GoogleUserInfo struct{}

func (GoogleUserInfo) FetchUser(ctx context.Context, accessToken string) (*GoogleUser, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create oauth2 client: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	u := &GoogleUser{Email: info.Email, Name: info.Name}
	if info.VerifiedEmail != nil {
		u.Verified = *info.VerifiedEmail
	}
	return u, nil
}

type AccountServiceInterface interface {
	LoginWithGoogle(ctx context.Context, request request_models.GoogleLoginRequest) (*response_models.AccountLoginResponse, error)
}

type AccountService struct {
	users  UserInfoFetcher
	tokens *utils.TokenIssuer
	log    *logger.Logger
}

func NewAccountService(users UserInfoFetcher, tokens *utils.TokenIssuer, log *logger.Logger) AccountServiceInterface {
	return &AccountService{users: users, tokens: tokens, log: log}
}

func (a *AccountService) LoginWithGoogle(ctx context.Context, request request_models.GoogleLoginRequest) (*response_models.AccountLoginResponse, error) {
	if strings.TrimSpace(request.AccessToken) == "" {
		return nil, fmt.Errorf("%w: access_token is required", utils.ErrInvalidInput)
	}

	user, err := a.users.FetchUser(ctx, request.AccessToken)
	if err != nil {
		a.log.WithError(err).Warn("Google user info lookup failed")
		return nil, utils.ErrUnauthorized
	}
	if user.Email == "" || !user.Verified {
		return nil, utils.ErrUnauthorized
	}

	email := strings.ToLower(user.Email)
	token, expires, err := a.tokens.CreateToken(email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	a.log.WithUser(email).Info("User signed in")

	return &response_models.AccountLoginResponse{
		Token:     token,
		Email:     email,
		Name:      user.Name,
		ExpiresAt: expires.Unix(),
	}, nil
}
