package models

import (
	"time"
)

// Follow rows are never deleted. Unfollowing clears IsFollowing.

type UserBand struct {
	UserID      uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	BandID      uint      `json:"band_id" gorm:"primaryKey;autoIncrement:false;index"`
	IsFollowing bool      `json:"is_following" gorm:"default:true"`
	FollowedAt  time.Time `json:"followed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserBlog struct {
	UserID      uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	BlogID      uint      `json:"blog_id" gorm:"primaryKey;autoIncrement:false;index"`
	IsFollowing bool      `json:"is_following" gorm:"default:true"`
	FollowedAt  time.Time `json:"followed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserFollow struct {
	FollowerID  uint      `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FollowedID  uint      `json:"followed_id" gorm:"primaryKey;autoIncrement:false;index"`
	IsFollowing bool      `json:"is_following" gorm:"default:true"`
	FollowedAt  time.Time `json:"followed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
