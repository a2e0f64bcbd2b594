package api

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Data       any `json:"data"`
	Pagination any `json:"pagination,omitempty"`
}

type ResponseError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func SuccessJSON(w http.ResponseWriter, data any, pagination any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{
		Data:       data,
		Pagination: pagination,
	})
}

// ErrorJSON code超過599的自訂碼一律以內文code呈現, http status使用4xx
func ErrorJSON(w http.ResponseWriter, code int, err error, msg string) {
	w.Header().Set("Content-Type", "application/json")

	httpStatus := code
	if httpStatus < 400 || httpStatus > 599 {
		httpStatus = http.StatusBadRequest
	}
	w.WriteHeader(httpStatus)

	res := ResponseError{
		Message: msg,
	}
	if err != nil {
		res.Error = err.Error()
	}
	json.NewEncoder(w).Encode(res)
}
