package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/RowdyKGZ/python12-shop/internal/constants"
	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/RowdyKGZ/python12-shop/internal/infra/repository/db"
	"github.com/RowdyKGZ/python12-shop/internal/token"
	"github.com/RowdyKGZ/python12-shop/pkg/apperr"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLen = 8

type LoginResult struct {
	AccessToken string
	ExpiresIn   int
	User        *model.User
}

type IAuthService interface {
	Register(ctx context.Context, email, password, userName string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type AuthService struct {
	userRepo   db.IUserRepository
	tokenMaker token.Maker
}

func NewAuthService(userRepo db.IUserRepository, tokenMaker token.Maker) *AuthService {
	return &AuthService{userRepo: userRepo, tokenMaker: tokenMaker}
}

// Register - 註冊一般用戶, 管理員僅能由DB端指定
func (a *AuthService) Register(ctx context.Context, email, password, userName string) (*model.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.New(apperr.InvalidArgumentCode, "invalid email")
	}
	if len(password) < minPasswordLen {
		return nil, apperr.Newf(apperr.InvalidArgumentCode, "password must be at least %d characters", minPasswordLen)
	}
	if userName == "" {
		return nil, apperr.New(apperr.InvalidArgumentCode, "user_name is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:          email,
		UserName:       userName,
		HashedPassword: string(hashed),
	}
	if err := a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.ConflictCode, "email already registered")
		}
		return nil, err
	}
	return user, nil
}

// Login - 驗證密碼並發放access token
func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.UnauthenticatedCode, "invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, apperr.New(apperr.UnauthenticatedCode, "invalid email or password")
	}

	duration := time.Duration(constants.AccessTokenDuration) * time.Hour
	accessToken, _, err := a.tokenMaker.CreateToken(user.UserID, user.Email, user.IsAdmin, duration)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   int(duration.Seconds()),
		User:        user,
	}, nil
}
