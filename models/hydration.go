package models

type HydrationRequest struct {
	UserID   string  `json:"user_id" validate:"required"`
	AmountML float64 `json:"amount_ml" validate:"required"`
}

func (h HydrationRequest) Record() Record {
	return Record{
		"user_id":   h.UserID,
		"amount_ml": h.AmountML,
	}
}
