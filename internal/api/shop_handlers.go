// ABOUTME: Shop, current shop and location endpoints

package api

import (
	"net/http"

	"github.com/2389/pantry/internal/kitchen"
)

func (s *Server) handleListShops(w http.ResponseWriter, r *http.Request) {
	shops, err := s.kitchen.ListShops(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]*shopResponse, len(shops))
	for i, shop := range shops {
		resp[i] = toShop(shop)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleGetShop answers "_" with the current shop, which may be null.
func (s *Server) handleGetShop(w http.ResponseWriter, r *http.Request) {
	shopRef, err := pathRef(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	shop, err := s.kitchen.GetShop(r.Context(), currentUser(r), shopRef)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toShop(shop))
}

func (s *Server) handleSaveShop(w http.ResponseWriter, r *http.Request) {
	path, err := pathRef(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var in kitchen.ShopInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	target, err := kitchen.Target(path, in.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	shop, err := s.kitchen.SaveShop(r.Context(), currentUser(r), target, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toShop(shop))
}

func (s *Server) handleDeleteShop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.kitchen.DeleteShop(r.Context(), currentUser(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetCurrentShop(w http.ResponseWriter, r *http.Request) {
	shop, err := s.kitchen.CurrentShop(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toShop(shop))
}

// handleSetCurrentShop takes {"id": N}; a null id clears the selection.
func (s *Server) handleSetCurrentShop(w http.ResponseWriter, r *http.Request) {
	var in kitchen.ShopInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	shop, err := s.kitchen.SetCurrentShop(r.Context(), currentUser(r), in.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toShop(shop))
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.kitchen.ListLocations(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]locationResponse, len(locs))
	for i, loc := range locs {
		resp[i] = toLocation(loc)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	loc, err := s.kitchen.GetLocation(r.Context(), currentUser(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toLocation(loc))
}

func (s *Server) handleSaveLocation(w http.ResponseWriter, r *http.Request) {
	path, err := pathRef(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var in kitchen.LocationInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	target, err := kitchen.Target(path, in.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	loc, err := s.kitchen.SaveLocation(r.Context(), currentUser(r), target, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toLocation(loc))
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.kitchen.DeleteLocation(r.Context(), currentUser(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
