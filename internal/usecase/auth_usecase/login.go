package auth

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

type LoginInput struct {
	Email    string
	Password string
}

// handlerがJSONにして返す
type LoginOutput struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int            `json:"expires_in"`
	Customer    model.Customer `json:"customer"`
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid email or password")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(c model.Customer, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	customers repository.CustomerRepository
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	clock     Clock
}

func NewLoginUsecase(
	customers repository.CustomerRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		customers: customers,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

// 論理削除済みのアカウントは見つからない扱い
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	c, err := u.customers.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return LoginOutput{}, err
	}
	if c == nil {
		return LoginOutput{}, ErrInvalidCredentials
	}

	if !u.verifier.Verify(in.Password, c.PasswordHash) {
		return LoginOutput{}, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.Issue(*c, now)
	if err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(exp.Sub(now).Seconds()),
		Customer:    *c,
	}, nil
}

// GET /auth/me
type MeUsecase struct {
	customers repository.CustomerRepository
}

func NewMeUsecase(customers repository.CustomerRepository) *MeUsecase {
	return &MeUsecase{customers: customers}
}

var ErrCustomerNotFound = errors.New("customer not found")

func (u *MeUsecase) Execute(ctx context.Context, customerID int64) (model.Customer, error) {
	c, err := u.customers.FindByID(ctx, customerID)
	if err != nil {
		return model.Customer{}, err
	}
	if c == nil {
		return model.Customer{}, ErrCustomerNotFound
	}
	return *c, nil
}
