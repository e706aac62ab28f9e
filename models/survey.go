package models

import "time"

type SurveyRequest struct {
	Satisfaction int    `json:"satisfaction" binding:"required,min=1,max=5"`
	Usability    int    `json:"usability" binding:"required,min=1,max=5"`
	Comments     string `json:"comments"`
}

type SurveyResponse struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	Satisfaction int       `json:"satisfaction"`
	Usability    int       `json:"usability"`
	Comments     string    `json:"comments"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SurveyAverages struct {
	AvgSatisfaction float64 `json:"avgSatisfaction"`
	AvgUsability    float64 `json:"avgUsability"`
	ResponseCount   uint64  `json:"responseCount"`
}
