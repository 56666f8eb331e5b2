package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/portfolio-builder/internal/types"
)

func (s *Server) sectionsResponse(w http.ResponseWriter, status int) {
	s.jsonResponse(w, status, SectionsResponse{Sections: s.session.Order()})
}

func (s *Server) handleListSections(w http.ResponseWriter, _ *http.Request) {
	s.sectionsResponse(w, http.StatusOK)
}

// handleAddSection appends a section name verbatim; unknown kinds are kept
// in the order but render nothing.
func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req types.AddSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, validationError(err))
		return
	}

	if err := s.session.AddSection(r.Context(), req.Name); err != nil {
		s.failure(w, err)
		return
	}
	s.sectionsResponse(w, http.StatusCreated)
}

// handleRemoveSection removes every occurrence of the named section. Removing
// a name that is not present is not an error.
func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.session.RemoveSection(r.Context(), name); err != nil {
		s.failure(w, err)
		return
	}
	s.sectionsResponse(w, http.StatusOK)
}

func (s *Server) handleMoveSectionUp(w http.ResponseWriter, r *http.Request) {
	index, err := sectionIndex(r)
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := s.session.MoveSectionUp(r.Context(), index); err != nil {
		s.failure(w, err)
		return
	}
	s.sectionsResponse(w, http.StatusOK)
}

func (s *Server) handleMoveSectionDown(w http.ResponseWriter, r *http.Request) {
	index, err := sectionIndex(r)
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := s.session.MoveSectionDown(r.Context(), index); err != nil {
		s.failure(w, err)
		return
	}
	s.sectionsResponse(w, http.StatusOK)
}

// sectionIndex parses the {index} path value. Out-of-range indexes are
// accepted; moving them is a no-op.
func sectionIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, &ErrValidation{Field: "index", Message: "must be an integer"}
	}
	return index, nil
}
