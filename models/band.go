package models

import (
	"time"
)

type Band struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	Tags        []Tag     `json:"tags" gorm:"many2many:band_tags;"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
