package httpapi

import (
	"net/http"

	"skillswap/internal/domain"
)

type catalogResponse struct {
	Categories        []domain.Category      `json:"categories"`
	Levels            []domain.Level         `json:"levels"`
	AvailabilitySlots []string               `json:"availability_slots"`
	LearningStyles    []domain.LearningStyle `json:"learning_styles"`
}

func (a *api) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, catalogResponse{
		Categories:        domain.Categories,
		Levels:            domain.Levels,
		AvailabilitySlots: domain.AvailabilitySlots,
		LearningStyles:    domain.LearningStyles,
	})
}
