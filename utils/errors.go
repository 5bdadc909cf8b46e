package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

var Validate *validator.Validate

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func CreateError(statusCode int, code string, message string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, errorPayload{Error: code, Message: message})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "internal_error", "An unexpected error occurred.", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "not_found", "Resource not found.", ctx)
}

func CreateForbidden(ctx iris.Context) {
	CreateError(iris.StatusForbidden, "forbidden", "You do not have access to this resource.", ctx)
}

// HandleValidationErrors maps a ReadJSON/validator failure to a 400 body.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := make([]iris.Map, 0, len(errs))
		for _, fieldErr := range errs {
			details = append(details, iris.Map{
				"field": fieldErr.Field(),
				"tag":   fieldErr.Tag(),
			})
		}
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"error":   "validation_error",
			"message": "Validation failed.",
			"fields":  details,
		})
		return
	}
	CreateError(iris.StatusBadRequest, "bad_request", "Invalid request payload.", ctx)
}
