package v1

import (
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/pkg/geo"
)

// ModelToOfficerResponse преобразует доменную модель офицера в DTO для ответа
func ModelToOfficerResponse(model *models.Officer) *OfficerResponse {
	resp := &OfficerResponse{
		ID:          model.ID,
		BadgeNumber: model.BadgeNumber,
		Status:      string(model.Status),
	}
	if model.Location != nil {
		resp.Location = &LocationResponse{
			Latitude:  model.Location.Latitude,
			Longitude: model.Location.Longitude,
			UpdatedAt: model.Location.UpdatedAt,
		}
	}
	return resp
}

// CandidatesToResponses дополняет кандидатов оценкой времени прибытия
func CandidatesToResponses(candidates []models.Candidate) []*CandidateResponse {
	responses := make([]*CandidateResponse, len(candidates))
	for i, candidate := range candidates {
		responses[i] = &CandidateResponse{
			OfficerID:  candidate.OfficerID,
			DistanceKm: candidate.DistanceKm,
			ETAMinutes: geo.EstimateETA(candidate.DistanceKm),
		}
	}
	return responses
}

func ModelToAlertResponse(model *models.EmergencyAlert) *AlertResponse {
	return &AlertResponse{
		ID:          model.ID,
		ReporterID:  model.ReporterID,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Description: model.Description,
		Status:      string(model.Status),
		CreatedAt:   model.CreatedAt,
		ResolvedAt:  model.ResolvedAt,
	}
}

func ModelToTaskResponse(model *models.DispatchTask) *TaskResponse {
	return &TaskResponse{
		ID:         model.ID,
		AlertID:    model.AlertID,
		OfficerID:  model.OfficerID,
		Status:     string(model.Status),
		AssignedAt: model.AssignedAt,
		AcceptedAt: model.AcceptedAt,
		ArrivedAt:  model.ArrivedAt,
		ResolvedAt: model.ResolvedAt,
	}
}

// ModelsToTaskResponses преобразует слайс моделей в слайс DTO
func ModelsToTaskResponses(tasks []*models.DispatchTask) []*TaskResponse {
	responses := make([]*TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ModelToTaskResponse(task)
	}
	return responses
}
