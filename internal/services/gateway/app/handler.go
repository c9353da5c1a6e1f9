package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/louisbranch/agenthub/internal/platform/errors"
	"github.com/louisbranch/agenthub/internal/services/gateway"
	"github.com/louisbranch/agenthub/internal/services/gateway/domain"
)

// maxBodyBytes bounds action request bodies.
const maxBodyBytes = 1 << 20

const statusOK = "ok"

type statusResponse struct {
	Status string `json:"status"`
}

type amendResponse struct {
	Status   string         `json:"status"`
	Document map[string]any `json:"document"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// newHandler routes the health check and the four action endpoints. mcp is
// mounted at /mcp when non-nil.
func newHandler(svc *gateway.Service, mcp http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/health", instrument("/health", allowMethod(http.MethodGet, handleHealth)))
	mux.Handle("/followup", instrument("/followup", allowMethod(http.MethodPost, handleFollowUp(svc))))
	mux.Handle("/amend", instrument("/amend", allowMethod(http.MethodPost, handleAmend(svc))))
	mux.Handle("/task", instrument("/task", allowMethod(http.MethodPost, handleTask(svc))))
	mux.Handle("/reminder", instrument("/reminder", allowMethod(http.MethodPost, handleReminder(svc))))
	mux.Handle("/metrics", promhttp.Handler())
	if mcp != nil {
		mux.Handle("/mcp", mcp)
	}
	return mux
}

func allowMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func handleFollowUp(svc *gateway.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		payload, err := domain.DecodeFollowUp(body)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := svc.SubmitFollowUp(r.Context(), payload); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: statusOK})
	}
}

func handleAmend(svc *gateway.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		payload, err := domain.DecodeAmend(body)
		if err != nil {
			writeError(w, r, err)
			return
		}
		doc, err := svc.SubmitAmendment(r.Context(), payload)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, amendResponse{Status: statusOK, Document: doc})
	}
}

func handleTask(svc *gateway.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		payload, err := domain.DecodeTask(body)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := svc.CreateTask(r.Context(), payload); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: statusOK})
	}
}

func handleReminder(svc *gateway.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		payload, err := domain.DecodeReminder(body)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := svc.SetReminder(r.Context(), payload); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: statusOK})
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidPayload, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	log.Printf("%s %s: %d %v", r.Method, r.URL.Path, status, err)
	writeJSON(w, status, errorResponse{Detail: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
