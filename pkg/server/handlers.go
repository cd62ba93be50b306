package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/soulhash/pkg/buildinfo"
	errs "github.com/matzehuels/soulhash/pkg/errors"
	"github.com/matzehuels/soulhash/pkg/hasher"
	"github.com/matzehuels/soulhash/pkg/observability"
	"github.com/matzehuels/soulhash/pkg/soul"
)

// HashResponse is returned by /v1/hash and /v1/array.
type HashResponse struct {
	Hash string `json:"hash"`
	Mode string `json:"mode"`
}

// ArrayRequest is the body of /v1/array. Null items are skipped.
type ArrayRequest struct {
	Items    []*string `json:"items"`
	Semantic bool      `json:"semantic"`
}

// SoulResponse lists the paths registered under one soul.
type SoulResponse struct {
	Soul  string   `json:"soul"`
	Paths []string `json:"paths"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"souls":   s.registry.Len(),
	})
}

func (s *Server) handleHash(w http.ResponseWriter, r *http.Request) {
	content, ok := s.readBody(w, r)
	if !ok {
		return
	}

	name := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("mode")))
	start := time.Now()
	var h, mode string
	switch name {
	case "":
		h, mode = hasher.TextHash(content), hasher.Textual.String()
	case "auto":
		h, mode = hasher.AutoHash(content), name
	default:
		m, err := hasher.ParseMode(name)
		if err != nil {
			writeError(w, err)
			return
		}
		h, mode = hasher.Hash(content, m), m.String()
	}
	observability.Hash().OnHash(r.Context(), mode, len(content), time.Since(start))

	writeJSON(w, http.StatusOK, HashResponse{Hash: h, Mode: mode})
}

func (s *Server) handleDual(w http.ResponseWriter, r *http.Request) {
	content, ok := s.readBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, hasher.ComputeDual(content))
}

func (s *Server) handleArray(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	var req ArrayRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode array request"))
		return
	}

	mode := hasher.Textual
	if req.Semantic {
		mode = hasher.Semantic
	}
	writeJSON(w, http.StatusOK, HashResponse{
		Hash: hasher.HashArray(req.Items, req.Semantic),
		Mode: mode.String(),
	})
}

// handleRegister hashes the body semantically and records path under the
// resulting soul. Only paths with a code extension have a soul.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if err := errs.ValidateFilePath(path); err != nil {
		writeError(w, err)
		return
	}
	if !hasher.IsCodeExtension(path) {
		writeError(w, errs.New(errs.ErrCodeInvalidPath, "%s is not a code file", path))
		return
	}

	content, ok := s.readBody(w, r)
	if !ok {
		return
	}

	h := hasher.ProteinHash(content)
	s.registry.Register(h, path)
	observability.Hash().OnRegister(r.Context(), h, path)

	writeJSON(w, http.StatusCreated, SoulResponse{Soul: h, Paths: s.registry.FindBySoul(h)})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	minSize := 1
	if v := r.URL.Query().Get("min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, errs.New(errs.ErrCodeInvalidInput, "min must be a positive integer, got %q", v))
			return
		}
		minSize = n
	}

	groups := s.registry.Groups(minSize)
	out := make([]SoulResponse, len(groups))
	for i, g := range groups {
		out[i] = SoulResponse{Soul: g.Soul, Paths: g.Paths}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFindSoul(w http.ResponseWriter, r *http.Request) {
	h := chi.URLParam(r, "hash")
	if !hasher.IsSemantic(h) {
		writeError(w, errs.New(errs.ErrCodeInvalidInput, "%q is not a semantic hash", h))
		return
	}
	writeJSON(w, http.StatusOK, SoulResponse{Soul: h, Paths: soul.FindSiblings(s.registry, h)})
}

// readBody reads the request body up to the size limit, writing the error
// response itself on failure.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
				Code:  errs.ErrCodeInvalidInput,
			})
			return nil, false
		}
		writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body"))
		return nil, false
	}
	return body, true
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the status matching err's code.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errs.HTTPStatus(err), ErrorResponse{Error: errs.UserMessage(err), Code: errs.GetCode(err)})
}
