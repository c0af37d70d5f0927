package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tally/internal/codec"
	"tally/internal/core"
	"tally/internal/draft"
	"tally/internal/editor"
	"tally/internal/log"
	"tally/internal/store"
)

// draftFields maps request keys to draft fields; every value arrives
// as the raw string the client-side form held (masked amount, ISO
// date, serialized category selection).
var draftFields = []draft.Field{
	draft.FieldDescription,
	draft.FieldType,
	draft.FieldAmount,
	draft.FieldCategory,
	draft.FieldDate,
	draft.FieldAccount,
	draft.FieldNote,
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.submitDraft(w, r, nil)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", "PUT")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "unknown transaction")
		return
	}

	existing, err := s.backend.Get(r.Context(), s.owner, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown transaction")
			return
		}
		s.logger.ErrorContext(r.Context(), "load for edit failed",
			log.FieldRecordID, id, log.FieldError, err)
		writeError(w, http.StatusBadGateway, "store unavailable")
		return
	}
	s.submitDraft(w, r, &existing)
}

// submitDraft runs one editor session end to end: load (create or
// edit mode), apply the submitted fields, submit.
func (s *Server) submitDraft(w http.ResponseWriter, r *http.Request, existing *core.Transaction) {
	fields, err := parseFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	categories, err := s.backend.ListCategories(r.Context(), s.owner)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list categories failed", log.FieldError, err)
		writeError(w, http.StatusBadGateway, "store unavailable")
		return
	}

	session := editor.NewSession(editor.Config{
		Owner:      s.owner,
		Writer:     s.backend,
		Categories: categories,
		Existing:   existing,
		Recent:     s.recent,
		Monthly:    s.monthly,
		Notifier:   s.notifier,
		Logger:     s.logger.WithComponent(log.ComponentEditor),
	})
	for _, f := range draftFields {
		if v, ok := fields[string(f)]; ok {
			session.Draft().Set(f, v)
		}
	}

	if err := session.Submit(r.Context()); err != nil {
		s.writeSubmitError(w, r, err)
		return
	}

	if existing == nil {
		w.WriteHeader(http.StatusCreated)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *draft.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": verr.Error(),
			"field": string(verr.Field),
		})
	case errors.Is(err, codec.ErrMalformedAmount),
		errors.Is(err, codec.ErrMalformedSelection),
		errors.Is(err, core.ErrInvalidDate):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, editor.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown transaction")
	default:
		s.logger.ErrorContext(r.Context(), "submit failed", log.FieldError, err)
		writeError(w, http.StatusBadGateway, "store unavailable")
	}
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.recent.Snapshot())
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if year, month, ok := monthParams(r); ok {
		s.monthly.SetPeriod(year, month)
	}
	items, err := s.monthly.Transactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "month list failed", log.FieldError, err)
		writeError(w, http.StatusBadGateway, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	categories, err := s.backend.ListCategories(r.Context(), s.owner)
	if err != nil {
		writeError(w, http.StatusBadGateway, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	accounts, err := s.backend.ListAccounts(r.Context(), s.owner)
	if err != nil {
		writeError(w, http.StatusBadGateway, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// parseFields reads the draft fields from a JSON object or an HTML
// form body, both as raw strings.
func parseFields(r *http.Request) (map[string]string, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var fields map[string]string
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return nil, err
		}
		return fields, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		fields[k] = r.PostForm.Get(k)
	}
	return fields, nil
}

func monthParams(r *http.Request) (int, time.Month, bool) {
	q := r.URL.Query()
	y, errY := strconv.Atoi(q.Get("year"))
	m, errM := strconv.Atoi(q.Get("month"))
	if errY != nil || errM != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, time.Month(m), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
