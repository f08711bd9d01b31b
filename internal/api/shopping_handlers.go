// ABOUTME: Shopping list endpoints, including the per-recipe toggle
// ABOUTME: "_" in the list position addresses the user's current list

package api

import (
	"net/http"

	"github.com/2389/pantry/internal/kitchen"
)

func (s *Server) handleGetShoppingList(w http.ResponseWriter, r *http.Request) {
	listRef, err := pathRef(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.kitchen.GetShoppingList(r.Context(), currentUser(r), listRef)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toShoppingList(view))
}

// handleSaveShoppingList addresses the list by path only: "_" creates a new
// current list and any id in the body is ignored.
func (s *Server) handleSaveShoppingList(w http.ResponseWriter, r *http.Request) {
	target, err := pathRef(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var in kitchen.ShoppingListInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.kitchen.SaveShoppingList(r.Context(), currentUser(r), target, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toShoppingList(view))
}

func (s *Server) handleDeleteShoppingList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.kitchen.DeleteShoppingList(r.Context(), currentUser(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecipeInList(w http.ResponseWriter, r *http.Request) {
	listRef, err := pathRef(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	recipeID, err := pathID(r, "recipe")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	in, err := s.kitchen.RecipeInList(r.Context(), currentUser(r), listRef, recipeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, in)
}

func (s *Server) handleToggleRecipe(w http.ResponseWriter, r *http.Request) {
	listRef, err := pathRef(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	recipeID, err := pathID(r, "recipe")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var cmd kitchen.RecipeCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		s.writeError(w, r, err)
		return
	}

	status, err := s.kitchen.ToggleRecipe(r.Context(), currentUser(r), listRef, recipeID, cmd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}
