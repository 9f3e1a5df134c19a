package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nerrad567/smarthome-sync/internal/home"
)

const commandToggle = "toggle"

// upsertRequest is the body of POST /api/thing_descriptions.
type upsertRequest struct {
	Descriptions []home.ThingDescription `json:"descriptions"`
}

// handleListThingDescriptions returns the flat thing registry.
func (s *Server) handleListThingDescriptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"thingDescriptions": s.store.ThingDescriptions(),
	})
}

// handleGetThingDescription returns one thing description. Spaces in the
// ID are read as underscores.
func (s *Server) handleGetThingDescription(w http.ResponseWriter, r *http.Request) {
	desc, err := s.store.ThingDescription(home.NormalizeThingID(pathParam(r, "applianceId")))
	if err != nil {
		writeNotFound(w, "Thing description not found")
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// handleUpsertThingDescriptions registers a batch of descriptions.
func (s *Server) handleUpsertThingDescriptions(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Descriptions == nil {
		writeBadRequest(w, "descriptions is required")
		return
	}

	if err := s.store.UpsertThingDescriptions(req.Descriptions); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	s.logger.Debug("thing descriptions registered", "count", len(req.Descriptions))
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Thing descriptions saved and categorized by room successfully",
	})
}

// handleThingStatus reads an appliance's live state from the room catalog.
func (s *Server) handleThingStatus(w http.ResponseWriter, r *http.Request) {
	thingID := pathParam(r, "thingID")

	ref, err := home.ParseThingID(thingID)
	if err != nil {
		writeNotFound(w, fmt.Sprintf("Thing %s not found.", thingID))
		return
	}

	state, err := s.store.ApplianceStatus(thingID)
	switch {
	case errors.Is(err, home.ErrRoomNotFound):
		writeNotFound(w, fmt.Sprintf("Room %s not found.", ref.RoomName))
		return
	case errors.Is(err, home.ErrApplianceNotFound):
		writeNotFound(w, fmt.Sprintf("Appliance %s not found in room %s.", ref.Appliance, ref.RoomName))
		return
	case err != nil:
		writeInternalError(w, "failed to read appliance status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"thingID": thingID,
		"status":  string(state),
	})
}

// handleToggleThing relays a toggleAppliance event for a registered thing.
// The stored state is not flipped.
func (s *Server) handleToggleThing(w http.ResponseWriter, r *http.Request) {
	thingID := pathParam(r, "thingID")

	if _, err := s.relay.ToggleThing(r.Context(), thingID); err != nil {
		if errors.Is(err, home.ErrThingNotFound) {
			s.metrics.observeCommand(commandToggle, outcomeNotFound)
			writeNotFound(w, "Thing description not found")
			return
		}
		s.metrics.observeCommand(commandToggle, outcomeError)
		writeInternalError(w, "failed to relay toggle")
		return
	}

	s.metrics.observeCommand(commandToggle, outcomeOK)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Toggled state for %s.", thingID),
	})
}
