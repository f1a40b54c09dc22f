package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse - ответ с одним доменным сообщением
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// ErrorItem - элемент массива ошибок валидации
type ErrorItem struct {
	Msg string `json:"msg"`
}

// ErrorsResponse - ответ с массивом ошибок, формат ошибок валидации
type ErrorsResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Msg: message})
}

// WriteErrors - отправка массива ошибок
func WriteErrors(w http.ResponseWriter, statusCode int, messages ...string) {
	items := make([]ErrorItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, ErrorItem{Msg: msg})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorsResponse{Errors: items})
}

// writeSuccess - функция для успешных ответов
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// validationMessages переводит ошибки валидатора в сообщения по полям
func validationMessages(err error, messages map[string]string) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"Invalid request"}
	}

	result := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		if msg, ok := messages[fieldErr.Field()]; ok {
			result = append(result, msg)
		} else {
			result = append(result, "Invalid value for "+fieldErr.Field())
		}
	}
	return result
}
