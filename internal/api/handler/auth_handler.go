package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RowdyKGZ/python12-shop/internal/api/dto"
	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/RowdyKGZ/python12-shop/internal/service"
	"github.com/RowdyKGZ/python12-shop/pkg/api"
	"github.com/RowdyKGZ/python12-shop/pkg/apperr"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// convertUserModelToDTO 將 User 轉換為 UserDTO
func convertUserModelToDTO(user *model.User) dto.UserDTO {
	return dto.UserDTO{
		ID:       user.UserID,
		Email:    user.Email,
		UserName: user.UserName,
		IsAdmin:  user.IsAdmin,
	}
}

// @Summary register
// @use register with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param accountInfo body dto.RegisterDTO true "email, password and user name"
// @Success 200 {object} api.Response{data=dto.UserDTO} "success"
// @Failure 409 {object} api.ResponseError{data=string} "ConflictCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /auth/register [post]
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerDTO dto.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&registerDTO); err != nil {
		api.ErrorJSON(w, int(apperr.BadRequestCode), err, apperr.ErrStrMap[apperr.BadRequestCode])
		return
	}

	ctx := r.Context()

	user, err := a.authService.Register(ctx, registerDTO.Email, registerDTO.Password, registerDTO.UserName)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertUserModelToDTO(user), nil)
}

// @Summary login
// @use email and password to login
// @Tags auth
// @Accept json
// @Produce json
// @Param accountInfo body dto.LoginDTO true "email and password"
// @Success 200 {object} api.Response{data=dto.LoginResponse} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /auth/login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&loginDTO); err != nil {
		api.ErrorJSON(w, int(apperr.BadRequestCode), err, apperr.ErrStrMap[apperr.BadRequestCode])
		return
	}

	ctx := r.Context()

	loginRes, err := a.authService.Login(ctx, loginDTO.Email, loginDTO.Password)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, dto.LoginResponse{
		AccessToken: dto.TokenInfo{
			Value:     loginRes.AccessToken,
			ExpiresIn: loginRes.ExpiresIn,
		},
		User: convertUserModelToDTO(loginRes.User),
	}, nil)
}
