package models

// MoodRequest is a mood check-in. The scale of MoodLevel is up to the client;
// zero is treated as missing.
type MoodRequest struct {
	UserID    string  `json:"user_id" validate:"required"`
	MoodLevel int     `json:"mood_level" validate:"required"`
	Note      *string `json:"note,omitempty"`
}

func (m MoodRequest) Record() Record {
	rec := Record{
		"user_id":    m.UserID,
		"mood_level": m.MoodLevel,
	}
	if m.Note != nil {
		rec["note"] = *m.Note
	}
	return rec
}
