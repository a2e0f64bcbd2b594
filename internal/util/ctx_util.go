package util

import (
	"context"

	"github.com/RowdyKGZ/python12-shop/internal/constants"
	"github.com/RowdyKGZ/python12-shop/internal/service"
	"github.com/RowdyKGZ/python12-shop/internal/token"
)

// GetTokenPayloadFromContext 從請求上下文中取得token payload, 未登入回傳nil
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	var tokenPayload *token.Payload

	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		tokenPayload = v.(*token.Payload)
	}

	return tokenPayload
}

// GetActorFromContext 將token payload轉成操作者, 未登入回傳匿名操作者
func GetActorFromContext(ctx context.Context) service.Actor {
	payload := GetTokenPayloadFromContext(ctx)
	if payload == nil {
		return service.AnonymousActor
	}
	return service.Actor{
		UserID:        payload.UserID,
		IsAdmin:       payload.IsAdmin,
		Authenticated: true,
	}
}
