package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// handleGetProfile returns the single-tenant profile, provisioning the
// default user on first access.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetCurrentUser(r.Context())
	if err != nil {
		respondInternalError(w, r, "Get profile error", err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// handleUpdateProfile applies a partial profile update. Absent fields stay
// untouched; explicit empty strings clear their column.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update core.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid profile data: "+err.Error())
		return
	}
	if err := update.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid profile data: "+err.Error())
		return
	}

	// Resolve the profile first so the update targets an explicit id, even
	// in single-tenant mode.
	user, err := s.store.GetCurrentUser(r.Context())
	if err != nil {
		respondInternalError(w, r, "Get profile error", err)
		return
	}

	updated, err := s.store.UpdateUser(r.Context(), user.ID, update)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondInternalError(w, r, "Update profile error", err)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Profile updated",
		log.FieldUserID, updated.ID, log.FieldUsername, updated.Username)
	respondJSON(w, http.StatusOK, updated)
}
