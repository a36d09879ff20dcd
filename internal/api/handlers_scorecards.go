package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/truckline/bdm-console/internal/model"
	"github.com/truckline/bdm-console/internal/scorecard"
	"github.com/truckline/bdm-console/internal/scoring"
	"github.com/truckline/bdm-console/internal/store"
)

// scorecardView is a scorecard annotated with its computed score.
type scorecardView struct {
	model.Scorecard
	Score scoring.Summary `json:"score"`
}

func viewOf(sc *model.Scorecard) scorecardView {
	return scorecardView{Scorecard: *sc, Score: scoring.Score(sc)}
}

func (s *Server) handleListScorecards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ScorecardFilter{
		AccountManager: q.Get("account_manager"),
		CustomerName:   q.Get("customer"),
	}
	if v := q.Get("archived"); v != "" {
		b := v == "true"
		filter.Archived = &b
	}
	if v := q.Get("pinned"); v != "" {
		b := v == "true"
		filter.Pinned = &b
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	// Non-manager scopes only see scorecards owned by their own BDM.
	scope := ScopeFromContext(r.Context())
	if scope.Role != "" && !scope.SeesAll() {
		name, err := s.bdmFullName(r, scope.BDMID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if name == "" {
			writeJSON(w, http.StatusOK, []scorecardView{})
			return
		}
		filter.AccountManager = name
	}

	cards, err := s.Scorecards.ListScorecards(r.Context(), filter)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	views := make([]scorecardView, 0, len(cards))
	for i := range cards {
		views = append(views, viewOf(&cards[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateScorecard(w http.ResponseWriter, r *http.Request) {
	var sc model.Scorecard
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid scorecard payload")
		return
	}
	if sc.CustomerName == "" || sc.OpportunityName == "" {
		writeError(w, http.StatusBadRequest, "customer_name and opportunity_name are required")
		return
	}
	if err := s.Scorecards.CreateScorecard(r.Context(), &sc); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(&sc))
}

func (s *Server) handleGetScorecard(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.loadScorecard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sc))
}

func (s *Server) handleUpdateScorecard(w http.ResponseWriter, r *http.Request) {
	var sc model.Scorecard
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid scorecard payload")
		return
	}
	sc.ID = chi.URLParam(r, "id")
	if err := s.Scorecards.UpdateScorecard(r.Context(), &sc); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(&sc))
}

// handleNewVersion snapshots the scorecard as a new version. The posted
// body carries the edited state to save into the snapshot.
func (s *Server) handleNewVersion(w http.ResponseWriter, r *http.Request) {
	current, ok := s.loadScorecard(w, r)
	if !ok {
		return
	}

	var edited model.Scorecard
	if err := json.NewDecoder(r.Body).Decode(&edited); err != nil {
		writeError(w, http.StatusBadRequest, "invalid scorecard payload")
		return
	}
	edited.ID = current.ID
	edited.Version = current.Version
	edited.CustomerName = current.CustomerName
	edited.OpportunityName = current.OpportunityName

	next, err := s.Scorecards.CreateNextVersion(r.Context(), &edited)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(next))
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.loadScorecard(w, r)
	if !ok {
		return
	}
	versions, err := s.Scorecards.ListVersions(r.Context(), sc.Key())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

// handleDiff compares two versions of an opportunity. Defaults to the
// previous version against the one identified in the path.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.loadScorecard(w, r)
	if !ok {
		return
	}
	versions, err := s.Scorecards.ListVersions(r.Context(), sc.Key())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	fromVersion := sc.Version - 1
	if v := r.URL.Query().Get("from"); v != "" {
		fromVersion, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from version")
			return
		}
	}

	var from *model.Scorecard
	for i := range versions {
		if versions[i].Version == fromVersion {
			from = &versions[i]
			break
		}
	}
	if from == nil {
		writeError(w, http.StatusNotFound, "comparison version not found")
		return
	}

	writeJSON(w, http.StatusOK, scorecard.Compare(from, sc))
}

func (s *Server) handleListFrameworks(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"
	frameworks, err := s.Scorecards.ListFrameworks(r.Context(), activeOnly)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, frameworks)
}

func (s *Server) handleGetFramework(w http.ResponseWriter, r *http.Request) {
	f, err := s.Scorecards.GetFramework(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if f == nil {
		writeError(w, http.StatusNotFound, "framework not found")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// loadScorecard fetches the scorecard in the path, writing the error
// response itself when missing or unreadable.
func (s *Server) loadScorecard(w http.ResponseWriter, r *http.Request) (*model.Scorecard, bool) {
	sc, err := s.Scorecards.GetScorecard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return nil, false
	}
	if sc == nil {
		writeError(w, http.StatusNotFound, "scorecard not found")
		return nil, false
	}
	return sc, true
}

// bdmFullName resolves a BDM ID to the display name scorecards are
// keyed by. Unknown IDs resolve to an empty name, which matches nothing.
func (s *Server) bdmFullName(r *http.Request, bdmID string) (string, error) {
	bdms, err := s.RefData.ListBDMs(r.Context())
	if err != nil {
		return "", err
	}
	for _, b := range bdms {
		if b.BDMID == bdmID {
			return b.FullName, nil
		}
	}
	return "", nil
}
