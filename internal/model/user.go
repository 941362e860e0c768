package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	FirstName string    `gorm:"size:100" json:"firstName"`
	LastName  string    `gorm:"size:100" json:"lastName"`
	Mobile    string    `gorm:"size:32" json:"mobile"`
	Verified  bool      `gorm:"default:true" json:"verified"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
