package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/modules/litigation/domain/entities/hearing"
	"github.com/courtdesk/courtdesk/modules/litigation/presentation/mappers"
	"github.com/courtdesk/courtdesk/modules/litigation/presentation/viewmodels"
	"github.com/courtdesk/courtdesk/modules/litigation/services"
	"github.com/courtdesk/courtdesk/pkg/application"
	"github.com/courtdesk/courtdesk/pkg/composables"
	"github.com/courtdesk/courtdesk/pkg/configuration"
)

type CaseAPIController struct {
	app      application.Application
	cases    *services.CaseService
	hearings *services.HearingService
	stats    *services.StatsService
	basePath string
}

func NewCaseAPIController(app application.Application) application.Controller {
	return &CaseAPIController{
		app:      app,
		cases:    app.Service(services.CaseService{}).(*services.CaseService),
		hearings: app.Service(services.HearingService{}).(*services.HearingService),
		stats:    app.Service(services.StatsService{}).(*services.StatsService),
		basePath: "/litigation/api",
	}
}

func (c *CaseAPIController) Key() string {
	return c.basePath + "/cases"
}

func (c *CaseAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/cases", c.List).Methods(http.MethodGet)
	router.HandleFunc("/cases", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/cases/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/cases/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/cases/{id}/parties", c.AddParty).Methods(http.MethodPost)
	router.HandleFunc("/cases/{id}/parties/{type}/{number}", c.RemoveParty).Methods(http.MethodDelete)
	router.HandleFunc("/cases/{id}/hearings", c.ListHearings).Methods(http.MethodGet)
	router.HandleFunc("/cases/{id}/hearings", c.AddHearing).Methods(http.MethodPost)
	router.HandleFunc("/hearings/{id}", c.DeleteHearing).Methods(http.MethodDelete)
	router.HandleFunc("/stats", c.Stats).Methods(http.MethodGet)
}

func (c *CaseAPIController) List(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = conf.PageSize
	}
	if perPage > conf.MaxPageSize {
		perPage = conf.MaxPageSize
	}

	params := &caserecord.FindParams{
		Search: r.URL.Query().Get("q"),
		Status: caserecord.Status(r.URL.Query().Get("status")),
		Forum:  caserecord.Forum(r.URL.Query().Get("forum")),
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}

	cases, total, err := c.cases.GetPaginated(r.Context(), params)
	if err != nil {
		c.app.Logger().WithError(err).Error("list cases")
		writeAPIError(w, http.StatusInternalServerError, "failed to list cases")
		return
	}

	writeJSON(w, http.StatusOK, viewmodels.CaseList{
		Items:   mappers.CasesToViewModels(cases),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

// Get resolves either the surrogate uuid or the display id (e.g. 2024007).
func (c *CaseAPIController) Get(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]

	var (
		found caserecord.Case
		err   error
	)
	if id, parseErr := uuid.Parse(raw); parseErr == nil {
		found, err = c.cases.GetByID(r.Context(), id)
	} else {
		found, err = c.cases.GetByCaseID(r.Context(), raw)
	}
	if err != nil {
		if errors.Is(err, caserecord.ErrNotFound) {
			writeAPIError(w, http.StatusNotFound, "case not found")
			return
		}
		c.app.Logger().WithError(err).Error("get case")
		writeAPIError(w, http.StatusInternalServerError, "failed to load case")
		return
	}

	writeJSON(w, http.StatusOK, mappers.CaseToViewModel(found))
}

func (c *CaseAPIController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &caserecord.CreateDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if errs, ok := dto.Ok(r.Context()); !ok {
		writeValidationErrors(w, errs)
		return
	}

	created, err := c.cases.Create(r.Context(), dto)
	if err != nil {
		if errors.Is(err, composables.ErrNoUser) {
			writeAPIError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		c.app.Logger().WithError(err).Error("create case")
		writeAPIError(w, http.StatusInternalServerError, "failed to create case")
		return
	}

	writeJSON(w, http.StatusCreated, mappers.CaseToViewModel(created))
}

func (c *CaseAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	dto := &caserecord.UpdateDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeValidationErrors(w, errs)
		return
	}

	updated, err := c.cases.Update(r.Context(), id, dto)
	if err != nil {
		switch {
		case errors.Is(err, composables.ErrNoUser):
			writeAPIError(w, http.StatusUnauthorized, "authentication required")
		case errors.Is(err, caserecord.ErrNotFound):
			writeAPIError(w, http.StatusNotFound, "case not found")
		default:
			c.app.Logger().WithError(err).Error("update case")
			writeAPIError(w, http.StatusInternalServerError, "failed to update case")
		}
		return
	}

	writeJSON(w, http.StatusOK, mappers.CaseToViewModel(updated))
}

func (c *CaseAPIController) AddParty(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	dto := &caserecord.AddPartyDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeValidationErrors(w, errs)
		return
	}

	added, err := c.cases.AddParty(r.Context(), id, dto)
	if err != nil {
		switch {
		case errors.Is(err, composables.ErrNoUser):
			writeAPIError(w, http.StatusUnauthorized, "authentication required")
		case errors.Is(err, caserecord.ErrNotFound):
			writeAPIError(w, http.StatusNotFound, "case not found")
		default:
			c.app.Logger().WithError(err).Error("add party")
			writeAPIError(w, http.StatusInternalServerError, "failed to add party")
		}
		return
	}

	writeJSON(w, http.StatusCreated, mappers.PartyToViewModel(added))
}

func (c *CaseAPIController) RemoveParty(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid case id")
		return
	}
	partyType := caserecord.PartyType(vars["type"])
	if !partyType.Valid() {
		writeAPIError(w, http.StatusBadRequest, "party type must be petitioner or respondent")
		return
	}
	number, err := strconv.Atoi(vars["number"])
	if err != nil || number < 1 {
		writeAPIError(w, http.StatusBadRequest, "invalid party number")
		return
	}

	if err := c.cases.RemoveParty(r.Context(), id, partyType, number); err != nil {
		switch {
		case errors.Is(err, composables.ErrNoUser):
			writeAPIError(w, http.StatusUnauthorized, "authentication required")
		case errors.Is(err, caserecord.ErrPartyNotFound):
			writeAPIError(w, http.StatusNotFound, "party not found")
		default:
			c.app.Logger().WithError(err).Error("remove party")
			writeAPIError(w, http.StatusInternalServerError, "failed to remove party")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *CaseAPIController) ListHearings(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	listed, err := c.hearings.ListByCase(r.Context(), id)
	if err != nil {
		c.app.Logger().WithError(err).Error("list hearings")
		writeAPIError(w, http.StatusInternalServerError, "failed to list hearings")
		return
	}

	writeJSON(w, http.StatusOK, mappers.HearingsToViewModels(listed))
}

func (c *CaseAPIController) AddHearing(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	dto := &hearing.AddDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeValidationErrors(w, errs)
		return
	}

	added, err := c.hearings.Add(r.Context(), id, dto)
	if err != nil {
		switch {
		case errors.Is(err, composables.ErrNoUser):
			writeAPIError(w, http.StatusUnauthorized, "authentication required")
		case errors.Is(err, caserecord.ErrNotFound):
			writeAPIError(w, http.StatusNotFound, "case not found")
		default:
			c.app.Logger().WithError(err).Error("add hearing")
			writeAPIError(w, http.StatusInternalServerError, "failed to add hearing")
		}
		return
	}

	writeJSON(w, http.StatusCreated, mappers.HearingToViewModel(added))
}

func (c *CaseAPIController) DeleteHearing(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid hearing id")
		return
	}

	if err := c.hearings.Delete(r.Context(), id); err != nil {
		if errors.Is(err, hearing.ErrNotFound) {
			writeAPIError(w, http.StatusNotFound, "hearing not found")
			return
		}
		c.app.Logger().WithError(err).Error("delete hearing")
		writeAPIError(w, http.StatusInternalServerError, "failed to delete hearing")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *CaseAPIController) Stats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := c.stats.Snapshot(r.Context())
	if err != nil {
		c.app.Logger().WithError(err).Error("stats snapshot")
		writeAPIError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, mappers.StatsToViewModel(snapshot))
}
