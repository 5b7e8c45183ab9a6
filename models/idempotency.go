package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IdempotencyKey stores the first completed response for a given request hash.
type IdempotencyKey struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Key            string             `json:"key" bson:"key"`                 // header value, unique index
	RequestHash    string             `json:"requestHash" bson:"requestHash"` // sha256 of method|path|body
	Method         string             `json:"method" bson:"method"`
	Path           string             `json:"path" bson:"path"`
	ResponseStatus int                `json:"responseStatus" bson:"responseStatus"` // 0 => not completed yet
	ResponseBody   []byte             `json:"-" bson:"responseBody,omitempty"`      // raw response body (JSON)
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	CompletedAt    *time.Time         `json:"completedAt" bson:"completedAt,omitempty"`
}
