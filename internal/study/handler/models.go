package handler

import (
	"strings"
	"time"

	"studylab/internal/study/models"
)

// CreateStudyRequest is the body of POST /study and POST /members/{memberID}/studies.
type CreateStudyRequest struct {
	LimitCount int    `json:"limit_count"`
	Name       string `json:"name"`
}

func (r *CreateStudyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// ToStudy builds a DRAFT study through the validating constructor.
func (r *CreateStudyRequest) ToStudy() (*models.Study, error) {
	return models.NewNamedStudy(r.LimitCount, r.Name)
}

type StudyResponse struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	LimitCount     int        `json:"limit_count"`
	Name           string     `json:"name"`
	OpenedDateTime *time.Time `json:"opened_date_time,omitempty"`
	OwnerID        string     `json:"owner_id,omitempty"`
}

func toStudyResponse(s *models.Study) StudyResponse {
	resp := StudyResponse{
		ID:             s.ID.String(),
		Status:         s.Status.String(),
		LimitCount:     s.LimitCount,
		Name:           s.Name,
		OpenedDateTime: s.OpenedDateTime,
	}
	if s.OwnerID != nil {
		resp.OwnerID = s.OwnerID.String()
	}
	return resp
}
