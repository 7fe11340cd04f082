package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a platform account. Authentication lives with the external auth provider;
// this record only carries the public profile.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:254;not null;uniqueIndex"`
	Username  string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	FirstName string    `json:"first_name" gorm:"size:150"`
	LastName  string    `json:"last_name" gorm:"size:150"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"-"`
}

// UserProfile is a User as seen by a particular viewer.
type UserProfile struct {
	User
	IsSubscribed bool `json:"is_subscribed"`
}

// Subscription is one followee of the requesting user together with a preview
// of their recipes.
type Subscription struct {
	UserProfile
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// AvatarRequest sets the avatar reference of the current user.
type AvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,max=2048"`
}

// JwtCustomClaims are the claims issued by the auth provider. The profile
// claims seed the user row on the first verified request.
type JwtCustomClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	jwt.RegisteredClaims
}
