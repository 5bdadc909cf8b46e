package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDFromTokenMiddleware extracts the caller from the JWT and stores it in
// the request context for downstream handlers.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	tok := jwt.Get(ctx)
	if tok == nil {
		CreateError(iris.StatusUnauthorized, "unauthorized", "Authentication required.", ctx)
		return
	}
	claims := tok.(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("userRole", claims.Role)
	ctx.Next()
}

// RequireAction gates a route on the policy table. 401 without a session,
// 403 on a role the table does not allow.
func RequireAction(action Action) iris.Handler {
	return func(ctx iris.Context) {
		tok := jwt.Get(ctx)
		if tok == nil {
			CreateError(iris.StatusUnauthorized, "unauthorized", "Authentication required.", ctx)
			return
		}
		claims := tok.(*AccessToken)
		if !Allowed(claims.Role, action) {
			CreateForbidden(ctx)
			return
		}
		ctx.Values().Set("userID", claims.ID)
		ctx.Values().Set("userRole", claims.Role)
		ctx.Next()
	}
}

// CallerID returns the authenticated user ID set by the auth middlewares.
func CallerID(ctx iris.Context) uint {
	if v, ok := ctx.Values().Get("userID").(uint); ok {
		return v
	}
	return 0
}

// CallerRole returns the authenticated role set by the auth middlewares.
func CallerRole(ctx iris.Context) string {
	if v, ok := ctx.Values().Get("userRole").(string); ok {
		return v
	}
	return ""
}
