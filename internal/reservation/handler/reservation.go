package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"fleetlease/internal/reservation/controller"
	reserrors "fleetlease/internal/reservation/errors"
	apperrors "fleetlease/pkg/errors"
	httputil "fleetlease/pkg/http"
	"fleetlease/pkg/logger"
	"fleetlease/pkg/model"
)

// ReservationHandler exposes the workflow over HTTP. Every route below
// /sessions/:sid operates on one session's controller.
type ReservationHandler struct {
	sessions *SessionManager
	log      *logger.Logger
}

func NewReservationHandler(sessions *SessionManager, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{sessions: sessions, log: log}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/sessions", h.CreateSession)
	router.DELETE("/api/v1/sessions/:sid", h.DeleteSession)
	router.GET("/api/v1/sessions/:sid/state", h.GetState)

	router.PUT("/api/v1/sessions/:sid/filter", h.SetFilter)
	router.POST("/api/v1/sessions/:sid/catalog", h.LoadCatalog)
	router.POST("/api/v1/sessions/:sid/search", h.Search)

	router.POST("/api/v1/sessions/:sid/page/goto", h.GoToPage)
	router.POST("/api/v1/sessions/:sid/page/next", h.NextPage)
	router.POST("/api/v1/sessions/:sid/page/previous", h.PreviousPage)

	router.POST("/api/v1/sessions/:sid/vehicle", h.SelectVehicle)
	router.POST("/api/v1/sessions/:sid/calendar/toggle", h.ToggleCalendar)

	router.POST("/api/v1/sessions/:sid/contact/input", h.ContactInput)
	router.POST("/api/v1/sessions/:sid/contact/select", h.SelectContact)
	router.POST("/api/v1/sessions/:sid/contact/clear", h.ClearContact)
	router.POST("/api/v1/sessions/:sid/press", h.Press)

	router.POST("/api/v1/sessions/:sid/booking", h.SubmitBooking)
	router.POST("/api/v1/sessions/:sid/back", h.BackToSearch)
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

func (h *ReservationHandler) CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session := h.sessions.Create()
	httputil.WriteCreated(w, createSessionResponse{SessionID: session.ID})
}

func (h *ReservationHandler) DeleteSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.sessions.Delete(ps.ByName("sid")); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) GetState(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	snap, err := session.Controller.Snapshot()
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	httputil.WriteSuccess(w, snap)
}

type setFilterRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *ReservationHandler) SetFilter(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	var req setFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	switch model.FilterField(req.Field) {
	case model.FilterModel, model.FilterLocation, model.FilterStartDate, model.FilterEndDate:
	default:
		httputil.WriteError(w, apperrors.InvalidInput("Unknown filter field: "+req.Field))
		return
	}

	if err := session.Controller.SetFilter(model.FilterField(req.Field), req.Value); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

func (h *ReservationHandler) LoadCatalog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	if err := session.Controller.LoadCatalog(r.Context()); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

func (h *ReservationHandler) Search(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	if err := session.Controller.Search(r.Context()); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

type goToPageRequest struct {
	Page int `json:"page"`
}

func (h *ReservationHandler) GoToPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	var req goToPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := session.Controller.GoToPage(req.Page); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

func (h *ReservationHandler) NextPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	if err := session.Controller.NextPage(); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

func (h *ReservationHandler) PreviousPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	if err := session.Controller.PreviousPage(); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

type selectVehicleRequest struct {
	VehicleID string `json:"vehicle_id"`
}

func (h *ReservationHandler) SelectVehicle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	var req selectVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}
	if req.VehicleID == "" {
		httputil.WriteError(w, apperrors.InvalidInput("vehicle_id is required"))
		return
	}

	if err := session.Controller.SelectVehicle(r.Context(), req.VehicleID); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

func (h *ReservationHandler) ToggleCalendar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	if err := session.Controller.ToggleCalendar(r.Context()); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

type contactInputRequest struct {
	Term string `json:"term"`
}

func (h *ReservationHandler) ContactInput(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	var req contactInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := session.Controller.SetContactInput(req.Term); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

type selectContactRequest struct {
	ContactID string `json:"contact_id"`
}

func (h *ReservationHandler) SelectContact(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	var req selectContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}
	if req.ContactID == "" {
		httputil.WriteError(w, apperrors.InvalidInput("contact_id is required"))
		return
	}

	if err := session.Controller.SelectContact(req.ContactID); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

func (h *ReservationHandler) ClearContact(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	if err := session.Controller.ClearContact(); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

type pressRequest struct {
	InsideContactRegion bool `json:"inside_contact_region"`
}

// Press forwards a client pointer press to the session's press hub. A
// press outside the contact-search region closes the typeahead results.
func (h *ReservationHandler) Press(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	var req pressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	session.Press.Post(controller.PressEvent{InsideContactRegion: req.InsideContactRegion})
	httputil.WriteNoContent(w)
}

func (h *ReservationHandler) SubmitBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	if err := session.Controller.SubmitBooking(r.Context()); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

func (h *ReservationHandler) BackToSearch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, err := h.sessions.Get(ps.ByName("sid"))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	if err := session.Controller.BackToSearch(); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeState(w, session)
}

func (h *ReservationHandler) writeState(w http.ResponseWriter, session *Session) {
	snap, err := session.Controller.Snapshot()
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	httputil.WriteSuccess(w, snap)
}

// writeWorkflowError maps workflow sentinels onto the error response
// taxonomy.
func (h *ReservationHandler) writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reserrors.ErrSessionNotFound):
		httputil.WriteError(w, apperrors.NotFound("session"))
	case errors.Is(err, reserrors.ErrNotRunning):
		httputil.WriteError(w, apperrors.NotFound("session"))
	case errors.Is(err, reserrors.ErrNoVehicleSelected):
		httputil.WriteError(w, apperrors.InvalidInput("No vehicle selected"))
	case errors.Is(err, reserrors.ErrNoResults):
		httputil.WriteError(w, apperrors.InvalidInput("No search results to paginate"))
	default:
		h.log.Error("Unhandled workflow error", "error", err)
		httputil.WriteError(w, apperrors.Internal("Internal server error", err))
	}
}
