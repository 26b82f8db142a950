package handler

import "github.com/labstack/echo/v4"

// ルートごとに付けるミドルウェアの組
// グループにUseすると未定義パスまで認証がかかるのでルート単位で渡す
type Guards struct {
	Authenticated []echo.MiddlewareFunc
	Customer      []echo.MiddlewareFunc
	Admin         []echo.MiddlewareFunc
	Optional      []echo.MiddlewareFunc
}
