// ABOUTME: Ingredient endpoints, including lookup and creation by name

package api

import (
	"net/http"
	"strings"

	"github.com/2389/pantry/internal/kitchen"
)

func (s *Server) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	ings, err := s.kitchen.ListIngredients(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]ingredientResponse, len(ings))
	for i, ing := range ings {
		resp[i] = toIngredient(ing)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ing, err := s.kitchen.GetIngredient(r.Context(), currentUser(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toIngredient(ing))
}

func (s *Server) handleSaveIngredient(w http.ResponseWriter, r *http.Request) {
	path, err := pathRef(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var in kitchen.IngredientInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	target, err := kitchen.Target(path, in.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ing, err := s.kitchen.SaveIngredient(r.Context(), currentUser(r), target, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toIngredient(ing))
}

func (s *Server) handleDeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.kitchen.DeleteIngredient(r.Context(), currentUser(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ingredientName returns the name path parameter, or "" if blank.
func ingredientName(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("name"))
}

func (s *Server) handleGetIngredientByName(w http.ResponseWriter, r *http.Request) {
	name := ingredientName(r)
	if name == "" {
		sendJSONError(w, http.StatusBadRequest, "ingredient name is required")
		return
	}

	ing, err := s.kitchen.GetIngredientByName(r.Context(), currentUser(r), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toIngredient(ing))
}

// handleCreateIngredientByName always creates; names are not unique.
func (s *Server) handleCreateIngredientByName(w http.ResponseWriter, r *http.Request) {
	name := ingredientName(r)
	if name == "" {
		sendJSONError(w, http.StatusBadRequest, "ingredient name is required")
		return
	}

	ing, err := s.kitchen.CreateIngredientByName(r.Context(), currentUser(r), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toIngredient(ing))
}
