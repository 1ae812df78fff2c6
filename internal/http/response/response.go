// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Каждая ошибка несёт
// машиночитаемый код, по которому клиент различает причины отказа.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON-ответа сервера.
type Response struct {
	Status string `json:"status"`          // "OK" или "Error"
	Code   string `json:"code,omitempty"`  // Машиночитаемый код ошибки
	Error  string `json:"error,omitempty"` // Текст ошибки
	Data   any    `json:"data,omitempty"`  // Данные ответа при успехе
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Code   string `json:"code" example:"NOT_FOUND"`
	Error  string `json:"error" example:"workout not found"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Коды ошибок, известные клиенту.
const (
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidParams       = "INVALID_PARAMS"
	CodeInsufficientTickets = "INSUFFICIENT_TICKETS"
	CodeDailyLimitReached   = "DAILY_LIMIT_REACHED"
	CodeCooldownActive      = "COOLDOWN_ACTIVE"
	CodeNotFound            = "NOT_FOUND"
	CodeProviderFailure     = "PROVIDER_FAILURE"
	CodeInternal            = "INTERNAL"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой, кодом и сообщением.
func Error(code, msg string) Response {
	return Response{
		Status: StatusError,
		Code:   code,
		Error:  msg,
	}
}

// ErrorWithData возвращает Response с ошибкой и дополнительными данными,
// например остатком секунд охлаждения.
func ErrorWithData(code, msg string, data any) Response {
	return Response{
		Status: StatusError,
		Code:   code,
		Error:  msg,
		Data:   data,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок
// валидации. Каждое нарушение превращается в человекочитаемый текст,
// сообщения объединяются через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Code:   CodeInvalidParams,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
