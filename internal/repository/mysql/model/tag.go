package model

import "github.com/google/uuid"

type Tag struct {
	ID   uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name string    `gorm:"type:varchar(100);uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "blog_tags"
}
