package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/courtdesk/courtdesk/modules/litigation/importing"
	"github.com/courtdesk/courtdesk/modules/litigation/presentation/mappers"
	"github.com/courtdesk/courtdesk/modules/litigation/services"
	"github.com/courtdesk/courtdesk/pkg/application"
	"github.com/courtdesk/courtdesk/pkg/composables"
	"github.com/courtdesk/courtdesk/pkg/configuration"
)

type ImportAPIController struct {
	app      application.Application
	imports  *services.ImportService
	basePath string
}

func NewImportAPIController(app application.Application) application.Controller {
	return &ImportAPIController{
		app:      app,
		imports:  app.Service(services.ImportService{}).(*services.ImportService),
		basePath: "/litigation/api",
	}
}

func (c *ImportAPIController) Key() string {
	return c.basePath + "/import"
}

func (c *ImportAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/import", c.Import).Methods(http.MethodPost)
	router.HandleFunc("/import/template", c.Template).Methods(http.MethodGet)
}

// Import accepts a multipart upload under the "file" field. The optional
// "strict_mode" field defaults to true; "false" or "0" switches the importer
// to lenient parsing.
func (c *ImportAPIController) Import(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()

	if err := r.ParseMultipartForm(conf.MaxUploadSize); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer file.Close()

	name := strings.ToLower(header.Filename)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
		writeAPIError(w, http.StatusBadRequest, "Invalid file format. Please upload an Excel file (.xlsx or .xls)")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, conf.MaxUploadSize+1))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if int64(len(data)) > conf.MaxUploadSize {
		writeAPIError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %d byte upload limit", conf.MaxUploadSize))
		return
	}

	strict := true
	if v := strings.ToLower(strings.TrimSpace(r.FormValue("strict_mode"))); v == "false" || v == "0" {
		strict = false
	}

	outcome, err := c.imports.Import(r.Context(), data, strict)
	if err != nil {
		if errors.Is(err, composables.ErrNoUser) {
			writeAPIError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		c.app.Logger().WithError(err).Error("import batch")
		writeAPIError(w, http.StatusInternalServerError, "import failed")
		return
	}

	writeJSON(w, http.StatusOK, mappers.OutcomeToViewModel(outcome, conf.Import.MaxErrors))
}

func (c *ImportAPIController) Template(w http.ResponseWriter, r *http.Request) {
	data, err := c.imports.Template()
	if err != nil {
		c.app.Logger().WithError(err).Error("build template")
		writeAPIError(w, http.StatusInternalServerError, "failed to build template")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", importing.TemplateFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
