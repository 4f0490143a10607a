package models

// SystemSettings is the admin-owned singleton read by every session.
// Deadline is advisory: passing it does not flip IsOpen, closing stays a
// manual admin action.
type SystemSettings struct {
	IsOpen   bool   `json:"isOpen"`
	Deadline *int64 `json:"deadline"` // unix milliseconds, nil when unset
	MaxPrice int64  `json:"maxPrice"`
}

const DefaultMaxPrice = 170

func DefaultSettings() SystemSettings {
	return SystemSettings{IsOpen: true, Deadline: nil, MaxPrice: DefaultMaxPrice}
}
