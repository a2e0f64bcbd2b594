package model

type User struct {
	UserID         uint            `gorm:"primaryKey" json:"user_id"`
	Email          string          `gorm:"unique;not null;type:varchar(100)" json:"email"`
	UserName       string          `gorm:"not null;type:varchar(50)" json:"user_name"`
	HashedPassword string          `gorm:"not null;type:varchar(100)" json:"-"`
	IsAdmin        bool            `gorm:"not null;default:false" json:"is_admin"`
	Orders         []Order         `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"` // 有訂單的用戶不可刪除
	Reviews        []ProductReview `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	BaseModel
}
