package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/truckline/bdm-console/internal/crm"
)

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	bdmID := r.URL.Query().Get("bdm")
	scope := ScopeFromContext(r.Context())
	if scope.Role != "" && !scope.SeesAll() {
		bdmID = scope.BDMID
	}
	companies, err := s.CRM.ListCompanies(r.Context(), bdmID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if companies == nil {
		companies = []crm.Company{}
	}
	writeJSON(w, http.StatusOK, companies)
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var c crm.Company
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid company payload")
		return
	}
	if c.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.CRM.CreateCompany(r.Context(), &c); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	c, err := s.CRM.GetCompany(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var c crm.Company
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid company payload")
		return
	}
	c.ID = id
	if err := s.CRM.UpdateCompany(r.Context(), &c); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := s.CRM.DeleteCompany(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListStakeholders(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	out, err := s.CRM.ListStakeholders(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if out == nil {
		out = []crm.Stakeholder{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpsertStakeholder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var st crm.Stakeholder
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, "invalid stakeholder payload")
		return
	}
	st.CompanyID = id
	if st.FullName == "" {
		writeError(w, http.StatusBadRequest, "full_name is required")
		return
	}
	if err := s.CRM.UpsertStakeholder(r.Context(), &st); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteStakeholder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := s.CRM.DeleteStakeholder(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFleet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	out, err := s.CRM.ListFleet(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if out == nil {
		out = []crm.FleetItem{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpsertFleetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var fi crm.FleetItem
	if err := json.NewDecoder(r.Body).Decode(&fi); err != nil {
		writeError(w, http.StatusBadRequest, "invalid fleet item payload")
		return
	}
	fi.CompanyID = id
	if err := s.CRM.UpsertFleetItem(r.Context(), &fi); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fi)
}

func (s *Server) handleDeleteFleetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := s.CRM.DeleteFleetItem(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
