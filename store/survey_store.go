package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"wattwise/api/models"
)

type SurveyStore struct {
	db *sql.DB
}

func NewSurveyStore(db *sql.DB) *SurveyStore {
	return &SurveyStore{db: db}
}

func (s *SurveyStore) SaveResponse(ctx context.Context, userID int, req models.SurveyRequest) (*models.SurveyResponse, error) {
	resp := &models.SurveyResponse{
		UserID:       userID,
		Satisfaction: req.Satisfaction,
		Usability:    req.Usability,
		Comments:     req.Comments,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO survey_responses (user_id, satisfaction, usability, comments)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;`,
		userID, req.Satisfaction, req.Usability, req.Comments,
	).Scan(&resp.ID, &resp.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save survey response: %w", err)
	}

	log.Printf("Survey response saved: ID=%d, UserID=%d", resp.ID, userID)
	return resp, nil
}

func (s *SurveyStore) ListForUser(ctx context.Context, userID int) ([]models.SurveyResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, satisfaction, usability, comments, created_at
		FROM survey_responses WHERE user_id = $1 ORDER BY created_at DESC;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list survey responses: %w", err)
	}
	defer rows.Close()

	var responses []models.SurveyResponse
	for rows.Next() {
		var r models.SurveyResponse
		if err := rows.Scan(&r.ID, &r.UserID, &r.Satisfaction, &r.Usability, &r.Comments, &r.CreatedAt); err != nil {
			log.Printf("Error scanning survey row: %v", err)
			continue
		}
		responses = append(responses, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing survey responses: %w", err)
	}

	return responses, nil
}

// Averages degrades to a zero-valued summary when there are no responses.
func (s *SurveyStore) Averages(ctx context.Context, userID int) (models.SurveyAverages, error) {
	var avgSat, avgUse sql.NullFloat64
	var count uint64

	err := s.db.QueryRowContext(ctx, `
		SELECT AVG(satisfaction), AVG(usability), COUNT(*)
		FROM survey_responses WHERE user_id = $1;`, userID,
	).Scan(&avgSat, &avgUse, &count)
	if err != nil {
		return models.SurveyAverages{}, fmt.Errorf("failed to aggregate survey responses: %w", err)
	}

	return models.SurveyAverages{
		AvgSatisfaction: avgSat.Float64,
		AvgUsability:    avgUse.Float64,
		ResponseCount:   count,
	}, nil
}
