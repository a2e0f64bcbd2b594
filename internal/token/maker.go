package token

import "time"

type Maker interface {
	// CreateToken - 產生token
	CreateToken(userID uint, email string, isAdmin bool, duration time.Duration) (string, *Payload, error)
	// VertifyToken - 驗證token並取出payload
	VertifyToken(token string) (*Payload, error)
}
