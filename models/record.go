package models

// Collection names a persisted set of records of one resource kind.
type Collection string

const (
	CollectionShifts          Collection = "shifts"
	CollectionMoods           Collection = "moods"
	CollectionHydrationEvents Collection = "hydration_events"
	CollectionUsers           Collection = "users"
)

// Record is a stored row, keyed by column name.
type Record map[string]any

// Payload is a decoded request body that can be turned into a Record for insertion.
type Payload interface {
	Record() Record
}
