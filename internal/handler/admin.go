package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/DukeRupert/traslado/internal/notify"
	"github.com/DukeRupert/traslado/internal/service"
	"github.com/google/uuid"
)

// AdminHandler handles reservation administration and delivery log requests.
type AdminHandler struct {
	reservations service.ReservationService
	deliveryLog  service.DeliveryLog
	notifier     *notify.Notifier
	logger       *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	reservations service.ReservationService,
	deliveryLog service.DeliveryLog,
	notifier *notify.Notifier,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		reservations: reservations,
		deliveryLog:  deliveryLog,
		notifier:     notifier,
		logger:       logger,
	}
}

// RegisterRoutes registers admin routes with the provided middleware.
func (h *AdminHandler) RegisterRoutes(
	mux *http.ServeMux,
	requireAdmin func(http.Handler) http.Handler,
) {
	mux.Handle("GET /admin/reservations/{id}", requireAdmin(http.HandlerFunc(h.GetReservation)))
	mux.Handle("PATCH /admin/reservations/{id}/status", requireAdmin(http.HandlerFunc(h.UpdateReservationStatus)))
	mux.Handle("GET /admin/email/logs", requireAdmin(http.HandlerFunc(h.ListEmailLogs)))
}

// =============================================================================
// Response Types
// =============================================================================

// ReservationResponse is the JSON form of a reservation.
type ReservationResponse struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              *uuid.UUID `json:"user_id,omitempty"`
	TripID              *uuid.UUID `json:"trip_id,omitempty"`
	PickupLocation      string     `json:"pickup_location"`
	DropoffLocation     string     `json:"dropoff_location"`
	PassengerCount      int        `json:"passenger_count"`
	ContactPhone        string     `json:"contact_phone"`
	FlightNumber        string     `json:"flight_number,omitempty"`
	SpecialRequirements string     `json:"special_requirements,omitempty"`
	ConfirmationCode    string     `json:"confirmation_code"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func toReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                  r.ID,
		UserID:              r.UserID,
		TripID:              r.TripID,
		PickupLocation:      r.PickupLocation,
		DropoffLocation:     r.DropoffLocation,
		PassengerCount:      r.PassengerCount,
		ContactPhone:        r.ContactPhone,
		FlightNumber:        r.FlightNumber,
		SpecialRequirements: r.SpecialRequirements,
		ConfirmationCode:    r.ConfirmationCode,
		Status:              r.Status.String(),
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// StatusUpdateResponse is returned after a status change. Notifications is
// nil when the new status triggers no emails.
type StatusUpdateResponse struct {
	Success       bool                `json:"success"`
	Reservation   ReservationResponse `json:"reservation"`
	Notifications *domain.BatchResult `json:"notifications,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// =============================================================================
// Handlers
// =============================================================================

// GetReservation returns one reservation.
func (h *AdminHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.reservations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

// UpdateReservationStatus changes a reservation's status and sends the
// emails for confirmed and completed reservations.
func (h *AdminHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	const op = "admin.update_reservation_status"

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.NotFound(op, "reservation", r.PathValue("id")))
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if err := domain.RequireFields(op, "status", req.Status); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	res, err := h.reservations.UpdateStatus(r.Context(), domain.UpdateReservationStatusParams{
		ID:     id,
		Status: domain.ReservationStatus(strings.ToLower(strings.TrimSpace(req.Status))),
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	resp := StatusUpdateResponse{Success: true, Reservation: toReservationResponse(res)}

	// The status change is already committed; email failures are reported
	// in the response and do not roll it back.
	var event domain.NotificationEvent
	switch res.Status {
	case domain.ReservationStatusConfirmed:
		event = domain.NotificationConfirmed
	case domain.ReservationStatusCompleted:
		event = domain.NotificationCompleted
	}
	if event != "" {
		clientEmail, driverEmail := h.reservations.Contacts(r.Context(), res)
		batch, err := h.notifier.SendAutomaticEmails(r.Context(), res.ID.String(), clientEmail, event, driverEmail)
		if err != nil {
			h.logger.Error("failed to plan notifications", "reservation_id", res.ID, "error", err)
		} else {
			resp.Notifications = batch
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListEmailLogs returns recent delivery attempts, newest first.
// Query parameters: status (comma-separated sent,failed) and limit.
func (h *AdminHandler) ListEmailLogs(w http.ResponseWriter, r *http.Request) {
	const op = "admin.list_email_logs"

	var params domain.ListEmailLogsParams

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				params.Statuses = append(params.Statuses, domain.EmailLogStatus(strings.ToLower(s)))
			}
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || limit < 1 {
			ErrorResponse(w, r, h.logger, domain.NewValidationError(op, "limit", "must be a positive integer"))
			return
		}
		params.Limit = int32(limit)
	}

	logs, err := h.deliveryLog.List(r.Context(), params)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}
