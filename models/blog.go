package models

import (
	"time"
)

type Blog struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Name          string    `json:"name" gorm:"uniqueIndex;not null"`
	URL           string    `json:"url" gorm:"uniqueIndex;not null"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"image_url"`
	RSSFeedURL    *string   `json:"rss_feed_url"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	LastScrapedAt *string   `json:"last_scraped_at"`
	Tags          []Tag     `json:"tags" gorm:"many2many:blog_tags;"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
