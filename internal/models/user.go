package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string        `bson:"username" json:"username"`
	Email    string        `bson:"email" json:"email"`
	Password string        `bson:"password" json:"-"`

	// Gamification state — mutated only by the gamification engine when a
	// todo transitions to completed.
	XP                 int      `bson:"xp" json:"xp"`
	Level              int      `bson:"level" json:"level"`
	Badges             []string `bson:"badges" json:"badges"`
	Streak             int      `bson:"streak" json:"streak"`
	LastCompletionDate string   `bson:"last_completion_date,omitempty" json:"-"`

	Avatar    string    `bson:"avatar" json:"avatar"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
