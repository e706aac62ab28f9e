package models

import "time"

type UserBadge struct {
	ID       int        `json:"id"`
	UserID   int        `json:"userId"`
	BadgeKey string     `json:"badgeKey"`
	Earned   bool       `json:"earned"`
	Points   int        `json:"points"`
	Progress float64    `json:"progress"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
}
