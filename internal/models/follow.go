package models

import "time"

// Follow is a subscription of Follower to Followee's recipes.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"not null;index;uniqueIndex:idx_follower_followee;check:chk_follow_not_self,follower_id <> followee_id"`
	Follower   User      `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FolloweeID uint      `json:"followee_id" gorm:"not null;index;uniqueIndex:idx_follower_followee"`
	Followee   User      `json:"-" gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at"`
}
