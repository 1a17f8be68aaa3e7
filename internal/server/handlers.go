package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/excalimaid/pkg/buildinfo"
	"github.com/matzehuels/excalimaid/pkg/errors"
	"github.com/matzehuels/excalimaid/pkg/pipeline"
)

// =============================================================================
// Handlers
// =============================================================================

type healthBody struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	res, err := s.runner.ExecuteBytes(r.Context(), data, pipeline.Options{
		Direction: s.direction(q.Get("direction")),
		Refresh:   refresh(q.Get("refresh")),
		Logger:    s.logger.With("request_id", middleware.GetReqID(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, res.CacheHit)
	writeJSON(w, http.StatusOK, res.Conversion)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	out, format, hit, err := s.runner.Preview(r.Context(), data, pipeline.PreviewOptions{
		Direction: s.direction(q.Get("direction")),
		Format:    q.Get("format"),
		Refresh:   refresh(q.Get("refresh")),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// =============================================================================
// Helpers
// =============================================================================

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	data, err := pipeline.ReadLimited(r.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return data, nil
}

func (s *Server) direction(requested string) string {
	if requested != "" {
		return requested
	}
	return s.opts.Direction
}

func refresh(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}

type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err,
			"request_id", middleware.GetReqID(r.Context()))
	}
	writeJSON(w, status, errorBody{Code: code, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
