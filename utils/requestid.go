package utils

import (
	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

// RequestIDMiddleware tags every request with a UUID, echoed back in
// X-Request-ID so log lines and client reports can be correlated.
func RequestIDMiddleware(ctx iris.Context) {
	requestID := ctx.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx.Values().Set("requestID", requestID)
	ctx.Header("X-Request-ID", requestID)
	ctx.Next()
}
