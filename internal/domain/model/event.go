package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventEntry records a storefront action (offer claim, checkout, order
// status change) for the owner's audit trail. Entries expire via a TTL
// index on Timestamp.
type EventEntry struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
	RequestID string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	SessionID string                 `bson:"session_id,omitempty" json:"session_id,omitempty"`
	// Action names what happened, e.g. "checkout", "offer_claimed",
	// "order_status_changed".
	Action  string                 `bson:"action" json:"action"`
	Message string                 `bson:"message,omitempty" json:"message,omitempty"`
	Fields  map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// EventQueryOptions filters event queries from the dashboard.
type EventQueryOptions struct {
	Action    string
	SessionID string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}
