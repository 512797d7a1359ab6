package models

import "time"

type ShiftRequest struct {
	UserID    string     `json:"user_id" validate:"required"`
	StartTime *time.Time `json:"start_time" validate:"required"`
	EndTime   *time.Time `json:"end_time" validate:"required"`
	Type      string     `json:"type" validate:"required"`
}

func (s ShiftRequest) Record() Record {
	return Record{
		"user_id":    s.UserID,
		"start_time": s.StartTime.UTC(),
		"end_time":   s.EndTime.UTC(),
		"type":       s.Type,
	}
}
