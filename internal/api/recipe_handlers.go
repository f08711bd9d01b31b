// ABOUTME: Recipe and stats endpoints

package api

import (
	"net/http"

	"github.com/2389/pantry/internal/kitchen"
)

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	views, err := s.kitchen.ListRecipes(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]recipeSummary, len(views))
	for i, v := range views {
		resp[i] = toRecipeSummary(v)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.kitchen.GetRecipe(r.Context(), currentUser(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toRecipeDetail(view))
}

// handleSaveRecipe creates ("_") or updates a recipe. Both answer 201.
func (s *Server) handleSaveRecipe(w http.ResponseWriter, r *http.Request) {
	path, err := pathRef(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var in kitchen.RecipeInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	target, err := kitchen.Target(path, in.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.kitchen.SaveRecipe(r.Context(), currentUser(r), target, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toRecipeDetail(view))
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.kitchen.DeleteRecipe(r.Context(), currentUser(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.kitchen.RecipeStats(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toStats(stats))
}
