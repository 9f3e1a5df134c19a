package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nerrad567/smarthome-sync/internal/home"
	"github.com/nerrad567/smarthome-sync/internal/relay"
)

const commandMove = "move"

// handlePersonLocation returns the room a person is in, or Hallway.
func (s *Server) handlePersonLocation(w http.ResponseWriter, r *http.Request) {
	personID := pathParam(r, "personId")
	writeJSON(w, http.StatusOK, map[string]string{
		"personId": personID,
		"location": home.LocatePerson(personID, s.store.Rooms()),
	})
}

// handlePersonActions returns the actions a person can take from where
// they stand.
func (s *Server) handlePersonActions(w http.ResponseWriter, r *http.Request) {
	personID := pathParam(r, "personId")
	writeJSON(w, http.StatusOK, map[string]any{
		"personId": personID,
		"actions":  home.DeriveActions(personID, s.store.Rooms(), s.links),
	})
}

// handlePersonDescription returns a registered person's description.
func (s *Server) handlePersonDescription(w http.ResponseWriter, r *http.Request) {
	desc, err := s.store.PersonDescription(pathParam(r, "personId"))
	if err != nil {
		writeNotFound(w, "Person description not found")
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// handleMovePerson relays a personMoved event to every client.
func (s *Server) handleMovePerson(w http.ResponseWriter, r *http.Request) {
	personID := pathParam(r, "personId")
	roomName := pathParam(r, "roomName")

	if _, err := s.relay.MovePerson(r.Context(), personID, roomName); err != nil {
		if errors.Is(err, relay.ErrInvalidCommand) {
			s.metrics.observeCommand(commandMove, outcomeInvalid)
			writeBadRequest(w, "personId and roomName are required")
			return
		}
		s.metrics.observeCommand(commandMove, outcomeError)
		writeInternalError(w, "failed to relay move")
		return
	}

	s.metrics.observeCommand(commandMove, outcomeOK)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Moved %s to %s successfully.", personID, roomName),
	})
}
