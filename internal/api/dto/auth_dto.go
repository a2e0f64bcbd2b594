package dto

// TokenInfo 表示令牌資訊
type TokenInfo struct {
	Value     string `json:"value"`
	ExpiresIn int    `json:"expires_in"`
}

// UserDTO 表示用戶資訊
type UserDTO struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	UserName string `json:"user_name"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginResponse 表示登入響應的完整結構
type LoginResponse struct {
	AccessToken TokenInfo `json:"access_token"`
	User        UserDTO   `json:"user"`
}

type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
	UserName string `json:"user_name"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
}
