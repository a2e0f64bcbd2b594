package apperr

import "fmt"

type Code int

const (
	BadRequestCode      Code = 400
	UnauthenticatedCode Code = 401
	UnauthorizedCode    Code = 403
	NotFoundCode        Code = 404
	ConflictCode        Code = 409
	InvalidArgumentCode Code = 460
	InternalErrorCode   Code = 500
)

var ErrStrMap = map[Code]string{
	BadRequestCode:      "bad request",
	UnauthenticatedCode: "unauthenticated",
	UnauthorizedCode:    "permission denied",
	NotFoundCode:        "not found",
	ConflictCode:        "referenced by existing data",
	InvalidArgumentCode: "invalid argument",
	InternalErrorCode:   "internal server error",
}

// AppError 帶狀態碼的業務錯誤，handler依Code回應
type AppError struct {
	Code Code
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err.Error())
	}
	return e.Msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Msg: msg}
}

func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, msg string, err error) *AppError {
	return &AppError{Code: code, Msg: msg, Err: err}
}
