package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/gorilla/mux"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/models"
	"go.uber.org/zap"
)

// ErrNoStore indicates a save was requested but no database is configured.
var ErrNoStore = errors.New("no database configured")

type importResponse struct {
	Resource string          `json:"resource"`
	Count    int             `json:"count"`
	Saved    int64           `json:"saved,omitempty"`
	Records  []models.Record `json:"records"`
}

// POST /api/import/{resource}
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	resource := mux.Vars(r)["resource"]

	path, name, err := s.receiveUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer s.discardUpload(path)

	opts, save, err := s.importOptions(r, resource)
	if err != nil {
		s.writeError(w, err)
		return
	}

	records, err := s.importer.PrepareEntityData(path, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := importResponse{
		Resource: resource,
		Count:    len(records),
		Records:  records,
	}

	if save {
		if s.saver == nil {
			s.writeError(w, ErrNoStore)
			return
		}
		n, err := s.saver.Save(r.Context(), strings.ToLower(resource), records, opts.Type)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.Saved = n
	}

	s.logger.Info(fmt.Sprintf("imported %d records from %s", len(records), name),
		zap.String("resource", resource),
		zap.Bool("saved", save),
	)
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/worksheets
func (s *Server) handleWorksheets(w http.ResponseWriter, r *http.Request) {
	path, name, err := s.receiveUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer s.discardUpload(path)

	info, err := s.importer.Inspect(path, s.cfg.Defaults)
	if err != nil {
		s.writeError(w, err)
		return
	}
	info.BookName = name

	writeJSON(w, http.StatusOK, info)
}

// importOptions reads the form fields and fills the rest from the server
// defaults. The resource name is the last-resort worksheet. A request that
// wants to keep ids under an append default sends type=update.
func (s *Server) importOptions(r *http.Request, resource string) (sheetimport.Options, bool, error) {
	opts := sheetimport.Options{
		Worksheet:        r.FormValue("worksheet"),
		DefaultWorksheet: resource,
		Type:             sheetimport.ImportType(r.FormValue("type")),
	}

	if v := r.FormValue("worksheet_index"); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil {
			return opts, false, badRequest("worksheet_index must be an integer")
		}
		opts.WorksheetIndex = sheetimport.SheetIndex(idx)
	}

	save := false
	if v := r.FormValue("save"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, false, badRequest("save must be a boolean")
		}
		save = b
	}

	if err := mergo.Merge(&opts, s.cfg.Defaults); err != nil {
		return opts, false, err
	}
	return opts, save, nil
}
