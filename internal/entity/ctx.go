package entity

import (
	"context"
)

type ctxKey int

const (
	ctxKeyJWT ctxKey = iota
)

func CtxWithJWT(ctx context.Context, jwt string) context.Context {
	return context.WithValue(ctx, ctxKeyJWT, jwt)
}

// JWTFromCtx returns the bearer token of the incoming request, or an empty
// string when the caller sent none.
func JWTFromCtx(ctx context.Context) string {
	jwt, ok := ctx.Value(ctxKeyJWT).(string)
	if !ok {
		return ""
	}

	return jwt
}
