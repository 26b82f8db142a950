package handler

import (
	"errors"
	"net/http"

	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
	meUC       *auth.MeUsecase
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	meUC *auth.MeUsecase,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		meUC:       meUC,
	}
}

// /auth/register のリクエストボディ。
type registerRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.POST("/auth/register", h.register)
	g.POST("/auth/login", h.login)
	g.GET("/auth/me", h.me, guards.Authenticated...)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	customer, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmailFormat),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong),
			errors.Is(err, auth.ErrWeakPassword),
			errors.Is(err, auth.ErrFullNameRequired):
			return fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrEmailAlreadyExists):
			return fail(c, http.StatusBadRequest, "Email already exists.")
		default:
			return writeError(c, err)
		}
	}

	return ok(c, http.StatusCreated, "Registered successfully", customer)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).Info("login rejected")
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Login successful", out)
}

func (h *AuthHandler) me(c echo.Context) error {
	customerID, found := getCustomerIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	customer, err := h.meUC.Execute(c.Request().Context(), customerID)
	if errors.Is(err, auth.ErrCustomerNotFound) {
		return fail(c, http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", customer)
}
