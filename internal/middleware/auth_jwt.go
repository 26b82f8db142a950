package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxCustomerIDKey   = "customer_id"   // int64
	CtxAccountTypeKey  = "account_type"  // string
	CtxEmailKey        = "email"         // string
	CtxTokenVersionKey = "token_version" // int
)

const (
	codeUnauthorized = "UNAUTHORIZED"
	codeForbidden    = "FORBIDDEN"
)

const (
	msgTokenRequired = "Access token is required"
	msgTokenExpired  = "Token has expired"
	msgTokenInvalid  = "Invalid token"
)

// トークンから取り出した呼び出し元
type Principal struct {
	CustomerID   int64
	Email        string
	AccountType  string
	TokenVersion int
}

var (
	errTokenMissing = errors.New(msgTokenRequired)
	errTokenExpired = errors.New(msgTokenExpired)
	errTokenInvalid = errors.New(msgTokenInvalid)
)

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := authenticate(c.Request().Header.Get("Authorization"), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON(err.Error(), codeUnauthorized))
			}
			setPrincipal(c, p)
			return next(c)
		}
	}
}

// トークンがあれば読むが、無い・壊れている場合もそのまま通す
func OptionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p, err := authenticate(c.Request().Header.Get("Authorization"), secret); err == nil {
				setPrincipal(c, p)
			}
			return next(c)
		}
	}
}

func setPrincipal(c echo.Context, p Principal) {
	c.Set(CtxCustomerIDKey, p.CustomerID)
	c.Set(CtxEmailKey, p.Email)
	c.Set(CtxAccountTypeKey, p.AccountType)
	c.Set(CtxTokenVersionKey, p.TokenVersion)
}

// "Bearer xxx" と "xxx" の両方を受け付ける
func extractToken(authz string) string {
	authz = strings.TrimSpace(authz)
	if strings.EqualFold(authz, "Bearer") {
		return ""
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return authz
}

func authenticate(authz string, secret string) (Principal, error) {
	rawToken := extractToken(authz)
	if rawToken == "" {
		return Principal{}, errTokenMissing
	}

	//JWTをパースして検証する
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, errTokenExpired
		}
		return Principal{}, errTokenInvalid
	}
	if token == nil || !token.Valid {
		return Principal{}, errTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errTokenInvalid
	}

	customerID, err := parseInt64(claims["customer_id"])
	if err != nil || customerID <= 0 {
		return Principal{}, errTokenInvalid
	}

	//customer/admin
	accountType, err := parseString(claims["type"])
	if err != nil || accountType == "" {
		return Principal{}, errTokenInvalid
	}

	email, _ := parseString(claims["email"])

	tv, err := parseInt(claims["tv"])
	if err != nil || tv < 0 {
		return Principal{}, errTokenInvalid
	}

	return Principal{
		CustomerID:   customerID,
		Email:        email,
		AccountType:  accountType,
		TokenVersion: tv,
	}, nil
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func errorJSON(msg, code string) errorResponse {
	return errorResponse{Success: false, Message: msg, Code: code}
}

func parseInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid customer_id")
	}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}

func parseInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		i64, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			return 0, err
		}
		return int(i64), nil
	default:
		return 0, errors.New("invalid int")
	}
}
