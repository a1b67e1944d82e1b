package models

import "time"

type Season struct {
	ID        int        `json:"id"`
	ChatID    int64      `json:"chat_id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  bool       `json:"is_active"`
}
