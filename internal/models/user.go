package models

import "time"

type User struct {
	ID        string    `bson:"_id" json:"user_id"`
	Name      string    `bson:"name" json:"name,omitempty"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	Role      string    `bson:"role" json:"role,omitempty"`
	Verified  bool      `bson:"verified" json:"verified"`
	Disabled  bool      `bson:"disabled" json:"disabled"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
