package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"smartrail/models"
	"smartrail/services"

	"github.com/go-playground/validator/v10"
)

type ComplaintHandler struct {
	Complaints *services.ComplaintStore
	validate   *validator.Validate
}

func NewComplaintHandler(complaints *services.ComplaintStore) *ComplaintHandler {
	return &ComplaintHandler{
		Complaints: complaints,
		validate:   validator.New(),
	}
}

const complaintListLimit = 100

// CreateComplaint files a passenger complaint.
func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	if !h.Complaints.Enabled() {
		sendErrorResponse(w, "Complaint service unavailable", http.StatusServiceUnavailable)
		return
	}

	var complaint models.Complaint
	if err := json.NewDecoder(r.Body).Decode(&complaint); err != nil {
		sendErrorResponse(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(complaint); err != nil {
		sendErrorResponse(w, "trainNumber, category and description are required", http.StatusBadRequest)
		return
	}

	if err := h.Complaints.Create(r.Context(), &complaint); err != nil {
		log.Printf("CreateComplaint: %v", err)
		sendErrorResponse(w, "Could not file complaint", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, complaint)
}

// ListComplaints returns complaints, optionally filtered by train.
func (h *ComplaintHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	if !h.Complaints.Enabled() {
		sendErrorResponse(w, "Complaint service unavailable", http.StatusServiceUnavailable)
		return
	}

	trainNumber := r.URL.Query().Get("train")
	complaints, err := h.Complaints.List(r.Context(), trainNumber, complaintListLimit)
	if err != nil {
		log.Printf("ListComplaints: %v", err)
		sendErrorResponse(w, "Could not list complaints", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"complaints": complaints,
		"count":      len(complaints),
	})
}
