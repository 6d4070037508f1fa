package httpapi

import (
	"net/http"

	"skillswap/internal/domain"
	"skillswap/internal/service"
)

func (a *api) handleUsersMe(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

type updateMeRequest struct {
	Name                   *string               `json:"name"`
	Location               *string               `json:"location"`
	Bio                    *string               `json:"bio"`
	ProfilePhoto           *string               `json:"profile_photo"`
	SkillsOffered          *[]domain.Skill       `json:"skills_offered"`
	SkillsWanted           *[]domain.Skill       `json:"skills_wanted"`
	Availability           *[]string             `json:"availability"`
	IsPublic               *bool                 `json:"is_public"`
	PreferredLearningStyle *domain.LearningStyle `json:"preferred_learning_style"`
	Timezone               *string               `json:"timezone"`
	Languages              *[]string             `json:"languages"`
}

func (a *api) handleUsersMeUpdate(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req updateMeRequest
	if !readJSON(w, r, &req) {
		return
	}

	updated, err := a.profileSvc.Update(r.Context(), u.ID, service.ProfileUpdate{
		Name:                   req.Name,
		Location:               req.Location,
		Bio:                    req.Bio,
		ProfilePhoto:           req.ProfilePhoto,
		SkillsOffered:          req.SkillsOffered,
		SkillsWanted:           req.SkillsWanted,
		Availability:           req.Availability,
		IsPublic:               req.IsPublic,
		PreferredLearningStyle: req.PreferredLearningStyle,
		Timezone:               req.Timezone,
		Languages:              req.Languages,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

// handleUsersBrowse applies the q and category query parameters when present
// and the stored filters otherwise.
func (a *api) handleUsersBrowse(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var f service.BrowseFilter
	q := r.URL.Query()
	if q.Has("q") {
		term := q.Get("q")
		f.Term = &term
	}
	if q.Has("category") {
		c := domain.Category(q.Get("category"))
		f.Category = &c
	}

	users, err := a.usersSvc.Browse(r.Context(), u.ID, f)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (a *api) handleUsersGet(w http.ResponseWriter, r *http.Request) {
	u, err := a.usersSvc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

func (a *api) handleUsersRatings(w http.ResponseWriter, r *http.Request) {
	out, err := a.usersSvc.Ratings(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

func (a *api) handleFiltersGet(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, a.usersSvc.Filters(r.Context()))
}

func (a *api) handleFiltersPut(w http.ResponseWriter, r *http.Request) {
	var req service.Filters
	if !readJSON(w, r, &req) {
		return
	}

	out, err := a.usersSvc.SetFilters(r.Context(), req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}
