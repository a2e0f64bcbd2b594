package model

import (
	"time"
)

// 所有資料表共用欄位
// 不使用軟刪除，刪除一律走DB的RESTRICT外鍵約束
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"null" json:"updated_at"`
}
