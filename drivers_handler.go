package seriesmanager

import (
	"net/http"

	"github.com/go-chi/chi"
)

type DriversHandler struct {
	*BaseHandler

	driverManager *DriverManager
}

func NewDriversHandler(baseHandler *BaseHandler, driverManager *DriverManager) *DriversHandler {
	return &DriversHandler{
		BaseHandler:   baseHandler,
		driverManager: driverManager,
	}
}

func (dh *DriversHandler) list(w http.ResponseWriter, r *http.Request) {
	drivers, err := dh.driverManager.ListDrivers()

	if err != nil {
		dh.respondError(w, r, err)
		return
	}

	dh.respondJSON(w, http.StatusOK, drivers)
}

func (dh *DriversHandler) view(w http.ResponseWriter, r *http.Request) {
	driver, err := dh.driverManager.FindDriverByID(chi.URLParam(r, "driverID"))

	if err != nil {
		dh.respondError(w, r, err)
		return
	}

	dh.respondJSON(w, http.StatusOK, driver)
}

type driverRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	RacingNumber int    `json:"racingNumber"`
	Team         string `json:"team"`
}

func (req *driverRequest) validate() error {
	if req.FirstName == "" && req.LastName == "" {
		return ValidationError("a driver needs a name")
	}

	return nil
}

func (dh *DriversHandler) create(w http.ResponseWriter, r *http.Request) {
	var req driverRequest

	if err := dh.decodeBody(r, &req); err != nil {
		dh.respondError(w, r, err)
		return
	}

	if err := req.validate(); err != nil {
		dh.respondError(w, r, err)
		return
	}

	driver := NewDriver()
	driver.FirstName = req.FirstName
	driver.LastName = req.LastName
	driver.RacingNumber = req.RacingNumber
	driver.Team = req.Team

	if err := dh.driverManager.UpsertDriver(driver); err != nil {
		dh.respondError(w, r, err)
		return
	}

	dh.respondJSON(w, http.StatusCreated, driver)
}

func (dh *DriversHandler) update(w http.ResponseWriter, r *http.Request) {
	driver, err := dh.driverManager.FindDriverByID(chi.URLParam(r, "driverID"))

	if err != nil {
		dh.respondError(w, r, err)
		return
	}

	var req driverRequest

	if err := dh.decodeBody(r, &req); err != nil {
		dh.respondError(w, r, err)
		return
	}

	if err := req.validate(); err != nil {
		dh.respondError(w, r, err)
		return
	}

	driver.FirstName = req.FirstName
	driver.LastName = req.LastName
	driver.RacingNumber = req.RacingNumber
	driver.Team = req.Team

	if err := dh.driverManager.UpsertDriver(driver); err != nil {
		dh.respondError(w, r, err)
		return
	}

	dh.respondJSON(w, http.StatusOK, driver)
}

func (dh *DriversHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := dh.driverManager.DeleteDriver(chi.URLParam(r, "driverID")); err != nil {
		dh.respondError(w, r, err)
		return
	}

	dh.respondJSON(w, http.StatusNoContent, nil)
}
