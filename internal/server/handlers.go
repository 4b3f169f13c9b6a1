package server

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/notify"
	"github.com/theirongolddev/debtburn/internal/portfolio"
	"github.com/theirongolddev/debtburn/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
}

// loanRequest accepts numbers or numeric strings for money fields.
type loanRequest struct {
	Name            string      `json:"name"`
	Balance         json.Number `json:"balance"`
	OriginalBalance json.Number `json:"original_balance"`
	InterestRate    json.Number `json:"interest_rate"`
	MinimumPayment  json.Number `json:"minimum_payment"`
	Type            string      `json:"type"`
}

func (r loanRequest) form() portfolio.LoanForm {
	return portfolio.LoanForm{
		Name:            r.Name,
		Balance:         r.Balance.String(),
		OriginalBalance: r.OriginalBalance.String(),
		InterestRate:    r.InterestRate.String(),
		MinimumPayment:  r.MinimumPayment.String(),
		Type:            r.Type,
	}
}

type billRequest struct {
	Name        string      `json:"name"`
	Amount      json.Number `json:"amount"`
	DueDate     json.Number `json:"due_date"`
	Category    string      `json:"category"`
	IsRecurring bool        `json:"is_recurring"`
}

func (r billRequest) form() portfolio.BillForm {
	return portfolio.BillForm{
		Name:        r.Name,
		Amount:      r.Amount.String(),
		DueDate:     r.DueDate.String(),
		Category:    r.Category,
		IsRecurring: r.IsRecurring,
	}
}

// billView adds the due status to a bill.
type billView struct {
	model.Bill
	Schedule model.BillSchedule `json:"schedule"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap, err := s.portfolio.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.RLock()
	st := Status{
		StartedAt:       s.startedAt,
		Loans:           len(snap.Loans),
		Bills:           len(snap.Bills),
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
		LastEventAt:     s.lastEventAt,
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap, err := s.portfolio.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Summary())
}

func (s *Service) handleProjection(w http.ResponseWriter, r *http.Request) {
	extra, ok := s.extraParam(w, r)
	if !ok {
		return
	}
	snap, err := s.portfolio.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Simulate(extra))
}

func (s *Service) handleStrategies(w http.ResponseWriter, r *http.Request) {
	extra, ok := s.extraParam(w, r)
	if !ok {
		return
	}
	snap, err := s.portfolio.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Compare(extra))
}

func (s *Service) handleListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := s.portfolio.Loans(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if loans == nil {
		loans = []model.Loan{}
	}
	writeJSON(w, http.StatusOK, loans)
}

func (s *Service) handleAddLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	l, err := s.portfolio.AddLoan(r.Context(), req.form())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Service) handleUpdateLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	l, err := s.portfolio.UpdateLoan(r.Context(), mux.Vars(r)["id"], req.form())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Service) handleDeleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := s.portfolio.DeleteLoan(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleListBills(w http.ResponseWriter, r *http.Request) {
	snap, err := s.portfolio.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	views := make([]billView, 0, len(snap.Bills))
	for _, b := range snap.Bills {
		views = append(views, billView{Bill: b, Schedule: snap.BillSchedule(b)})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Service) handleAddBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, err := s.portfolio.AddBill(r.Context(), req.form())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Service) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, err := s.portfolio.UpdateBill(r.Context(), mux.Vars(r)["id"], req.form())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Service) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.portfolio.DeleteBill(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.recentEvents())
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan notify.Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

// extraParam reads ?extra=, falling back to the configured default.
func (s *Service) extraParam(w http.ResponseWriter, r *http.Request) (float64, bool) {
	raw := r.URL.Query().Get("extra")
	if raw == "" {
		return s.cfg.DefaultExtra, true
	}
	extra, err := strconv.ParseFloat(raw, 64)
	if err != nil || extra < 0 || math.IsNaN(extra) || math.IsInf(extra, 0) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "extra must be a non-negative number"})
		return 0, false
	}
	return extra, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func (s *Service) writeError(w http.ResponseWriter, err error) {
	var ve *portfolio.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		s.logger.WithFields(logrus.Fields{"error": err}).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
