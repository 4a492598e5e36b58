package models

import "time"

// User mirrors a principal from the external identity provider. The ID is the
// provider's subject claim, so rows can be upserted straight from a verified
// token without a mapping table.
type User struct {
	ID              string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	Name            string    `gorm:"column:name;type:text" json:"name"`
	ProfileImage    string    `gorm:"column:profile_image;type:text" json:"profile_image,omitempty"`
	StripeConnectID *string   `gorm:"column:stripe_connect_id;type:text" json:"stripe_connect_id,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (User) TableName() string { return "users" }
