package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Todo struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string        `bson:"text" json:"text"`
	Completed bool          `bson:"completed" json:"completed"`
	Category  string        `bson:"category" json:"category"`
	DueDate   time.Time     `bson:"due_date" json:"dueDate"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UserID    bson.ObjectID `bson:"user_id" json:"user"`
}
