package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/nerrad567/smarthome-sync/internal/home"
)

// forwardRequest is the part of the /forward_to_python body the core reads.
// The body itself is forwarded untouched.
type forwardRequest struct {
	Rooms []home.Room `json:"rooms"`
}

// handleForwardToScheduler replaces the room catalog, then forwards the
// body to the light scheduler and relays its reply.
//
// The catalog stays replaced when the scheduler call fails.
func (s *Server) handleForwardToScheduler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBadRequest(w, "failed to read request body")
		return
	}

	var req forwardRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Rooms == nil {
		req.Rooms = []home.Room{}
	}

	s.store.SetRoomCatalog(req.Rooms)

	if s.schedCfg.RegisterDescriptions {
		people := s.schedCfg.People
		if len(people) == 0 {
			people = home.DefaultPeople
		}
		if err := s.store.UpsertThingDescriptions(home.DescribeCatalog(req.Rooms, people, s.links)); err != nil {
			s.logger.Warn("failed to register catalog descriptions", "error", err)
		}
	}

	resp, err := s.forwarder.Forward(r.Context(), body)
	if err != nil {
		s.logger.Warn("light scheduler request failed", "url", s.forwarder.URL(), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Error: " + err.Error(),
		})
		return
	}

	if summary, ok := resp.Summary(); ok {
		s.logger.Info("light scheduler answered",
			"rooms", len(req.Rooms),
			"rooms_with_people", summary.RoomsWithPeople,
			"lights_on_no_people", summary.RoomsWithLightsOnAndNoPeople,
			"people_lights_off", summary.RoomsWithPeopleAndLightsOff,
		)
	}

	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	w.Write(resp.Body)
}

// handleListRooms returns the current room catalog.
func (s *Server) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rooms": s.store.Rooms()})
}

// handleRoomThings returns the description bucket of one room.
func (s *Server) handleRoomThings(w http.ResponseWriter, r *http.Request) {
	bucket, err := s.store.RoomDescription(home.RoomNameFromPath(pathParam(r, "roomName")))
	if err != nil {
		writeNotFound(w, "Room description not found")
		return
	}
	writeJSON(w, http.StatusOK, bucket)
}
