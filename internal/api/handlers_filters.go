package api

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/truckline/bdm-console/internal/model"
	"github.com/truckline/bdm-console/internal/refdata"
)

func selectionFromQuery(r *http.Request) refdata.Selection {
	q := r.URL.Query()
	sel := refdata.Selection{
		BDMID:       q.Get("bdm"),
		DealerGroup: q.Get("group"),
		DealerID:    q.Get("dealer"),
	}
	// Per-BDM scopes are pinned to their own BDM regardless of the
	// requested filter.
	scope := ScopeFromContext(r.Context())
	if scope.Role != "" && !scope.SeesAll() {
		sel.BDMID = scope.BDMID
	}
	return sel
}

// loadRefData fetches dealerships and BDMs concurrently.
func (s *Server) loadRefData(r *http.Request) ([]model.Dealership, []model.BDM, error) {
	var (
		dealerships []model.Dealership
		bdms        []model.BDM
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		dealerships, err = s.RefData.ListDealerships(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		bdms, err = s.RefData.ListBDMs(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return dealerships, bdms, nil
}

func (s *Server) handleDealerGroups(w http.ResponseWriter, r *http.Request) {
	dealerships, bdms, err := s.loadRefData(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	groups := refdata.DealerGroups(dealerships, bdms, selectionFromQuery(r))
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleDealerships(w http.ResponseWriter, r *http.Request) {
	dealerships, bdms, err := s.loadRefData(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	out := refdata.Dealerships(dealerships, bdms, selectionFromQuery(r))
	writeJSON(w, http.StatusOK, out)
}

// handleSoleCandidateBDM reports the single BDM implied by the current
// filter, if any. The client decides whether to apply it.
func (s *Server) handleSoleCandidateBDM(w http.ResponseWriter, r *http.Request) {
	dealerships, bdms, err := s.loadRefData(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	bdm, ok := refdata.SoleCandidateBDM(dealerships, bdms, selectionFromQuery(r))
	resp := struct {
		BDM   *model.BDM `json:"bdm,omitempty"`
		Found bool       `json:"found"`
	}{Found: ok}
	if ok {
		resp.BDM = &bdm
	}
	writeJSON(w, http.StatusOK, resp)
}
