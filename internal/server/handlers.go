package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dmitrymomot/nbspace"
	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/locale"
	"github.com/dmitrymomot/nbspace/pkg/rules"
)

var (
	errBadRequest       = errors.New("server: bad request")
	errMissingFile      = errors.New("server: missing file")
	errUnknownDirection = errors.New("server: unknown direction")
)

type normalizeRequest struct {
	Text     string          `json:"text"`
	Lang     string          `json:"lang"`
	Settings map[string]bool `json:"settings"`
}

type normalizeResponse struct {
	Text   string            `json:"text"`
	Lang   string            `json:"lang"`
	Events []changelog.Event `json:"events"`
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", errBadRequest, err), http.StatusBadRequest)
		return
	}

	settings := rules.Default()
	for name, enabled := range req.Settings {
		var err error
		if settings, err = settings.With(name, enabled); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
	}

	lang := strings.ToUpper(locale.ToShort(req.Lang))
	if lang == "" {
		lang = languageFrom(r.Context())
	}

	var log changelog.Log
	text := s.normalizer.Normalize(r.Context(), req.Text, lang, settings, &log)
	writeJSON(w, http.StatusOK, normalizeResponse{Text: text, Lang: lang, Events: log.Events()})
}

type outputJSON struct {
	Name      string            `json:"name"`
	Data      []byte            `json:"data"`
	Charset   string            `json:"source_charset,omitempty"`
	Changes   int               `json:"changes"`
	Events    []changelog.Event `json:"events"`
	Warnings  []string          `json:"warnings,omitempty"`
	StoredKey string            `json:"stored_key,omitempty"`
	ReportKey string            `json:"report_key,omitempty"`
}

type fileErrorJSON struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type convertResponse struct {
	RunID   string          `json:"run_id"`
	Outputs []outputJSON    `json:"outputs"`
	Errors  []fileErrorJSON `json:"errors,omitempty"`
}

func (s *Server) handleConvert(direction string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := s.readFiles(w, r, "files")
		if err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}

		var batch *nbspace.Batch
		switch direction {
		case nbspace.DirectionSheetToFlat:
			batch, err = s.converter.SheetToFlat(r.Context(), files)
		case nbspace.DirectionFlatToSheet:
			batch, err = s.converter.FlatToSheet(r.Context(), files)
		default:
			err = fmt.Errorf("%w: %s", errUnknownDirection, direction)
		}
		if batch == nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}

		resp := convertResponse{RunID: batch.RunID, Outputs: make([]outputJSON, 0, len(batch.Outputs))}
		for _, out := range batch.Outputs {
			o := outputJSON{
				Name:     out.Name,
				Data:     out.Data,
				Charset:  string(out.Source),
				Changes:  out.Log.Len(),
				Events:   out.Log.Events(),
				Warnings: out.Warnings,
			}
			if out.Stored != nil {
				o.StoredKey = out.Stored.Key
			}
			if out.Report != nil {
				o.ReportKey = out.Report.Key
			}
			resp.Outputs = append(resp.Outputs, o)
		}
		for _, e := range batch.Log.Errors() {
			resp.Errors = append(resp.Errors, fileErrorJSON{File: e.Location, Error: e.After})
		}

		status := http.StatusOK
		if len(resp.Outputs) == 0 {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, resp)
	}
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	first, err := s.readFiles(w, r, "first")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	second, err := s.readFiles(w, r, "second")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	diff, err := s.converter.Diff(r.Context(), first[0], second[0])
	if err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

type reportRequest struct {
	Title  string            `json:"title"`
	Events []changelog.Event `json:"events"`
}

// handleReport renders events as Markdown, or as sanitized HTML when the
// client asks for text/html or ?format=html.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", errBadRequest, err), http.StatusBadRequest)
		return
	}
	report := &changelog.Report{Title: req.Title, Events: req.Events}

	if r.URL.Query().Get("format") == "html" || strings.Contains(r.Header.Get("Accept"), "text/html") {
		html, err := report.HTML()
		if err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, html)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, report.Markdown())
}

// readFiles reads every upload of a multipart field.
func (s *Server) readFiles(w http.ResponseWriter, r *http.Request, field string) ([]nbspace.File, error) {
	if r.MultipartForm == nil {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)
		if err := r.ParseMultipartForm(s.cfg.MaxUploadSize); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: %s", errMissingFile, field)
	}

	files := make([]nbspace.File, 0, len(headers))
	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errBadRequest, fh.Filename, err)
		}
		files = append(files, nbspace.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
