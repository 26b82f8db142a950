package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	FullName string
	Email    string
	Password string
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrWeakPassword       = errors.New("password is too common")
	ErrFullNameRequired   = errors.New("full_name is required")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

const (
	minPasswordLen = 8
	// bcryptが受け付ける上限
	maxPasswordLen = 72
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	customers repository.CustomerRepository
	hasher    PasswordHasher
	clock     Clock
}

// DI
func NewRegisterUserUsecase(
	customers repository.CustomerRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		customers: customers,
		hasher:    hasher,
		clock:     clock,
	}
}

// 一般顧客として登録する
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (model.Customer, error) {
	return u.register(ctx, in, model.AccountCustomer)
}

// CLIから管理者を作るとき用
func (u *RegisterUserUsecase) ExecuteAdmin(ctx context.Context, in RegisterUserInput) (model.Customer, error) {
	return u.register(ctx, in, model.AccountAdmin)
}

func (u *RegisterUserUsecase) register(ctx context.Context, in RegisterUserInput, accountType model.AccountType) (model.Customer, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return model.Customer{}, ErrFullNameRequired
	}

	email := normalizeEmail(in.Email)
	if !isValidEmailFormat(email) {
		return model.Customer{}, ErrInvalidEmailFormat
	}
	if len(in.Password) < minPasswordLen {
		return model.Customer{}, ErrPasswordTooShort
	}
	if len(in.Password) > maxPasswordLen {
		return model.Customer{}, ErrPasswordTooLong
	}
	if isWeakPassword(in.Password) {
		return model.Customer{}, ErrWeakPassword
	}

	// email重複チェック
	existing, err := u.customers.FindByEmail(ctx, email)
	if err != nil {
		return model.Customer{}, err
	}
	if existing != nil {
		return model.Customer{}, ErrEmailAlreadyExists
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.Customer{}, err
	}

	now := u.clock.Now()
	c := &model.Customer{
		FullName:     name,
		Email:        email,
		PasswordHash: hashed,
		AccountType:  accountType,
		TokenVersion: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 同時登録はユニーク制約で弾かれる
	if err := u.customers.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Customer{}, ErrEmailAlreadyExists
		}
		return model.Customer{}, err
	}
	return *c, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// メールチェック
func isValidEmailFormat(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

var weakPasswords = map[string]struct{}{
	"password":    {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwertyuiop":  {},
	"letmein1":    {},
	"admin123":    {},
}

func isWeakPassword(password string) bool {
	_, ok := weakPasswords[strings.ToLower(strings.TrimSpace(password))]
	return ok
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
