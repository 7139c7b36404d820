package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"pdarena.dev/service/apperr"
	"pdarena.dev/service/types"
)

// upgrader has no origin restriction: this service is consumed by
// arbitrary browser clients.
var upgrader = websocket.Upgrader{
	ReadBufferSize: 4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleMatchResolutionStream implements the replay-then-tail protocol
// for the MatchResolutionLite stream.
func (s *Server) handleMatchResolutionStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var filter types.MatchResolutionViewProps
	if !readFirstFrame(conn, &filter) {
		writeStreamEndBeforeRequest(conn)
		return
	}
	if _, err := s.admission.Authenticate(r.Context(), filter.ApiKey); err != nil {
		writeStreamError(conn, err)
		return
	}

	sub := s.broadcaster.Subscribe()
	defer sub.Close()

	rows, err := s.store.QueryMatchResolutions(filter)
	if err != nil {
		writeStreamError(conn, err)
		return
	}

	var nextNewID int64
	if filter.MinID != nil {
		nextNewID = *filter.MinID
	}
	for _, row := range rows {
		if err := conn.WriteJSON(row.Lite()); err != nil {
			return
		}
		if row.MatchResolutionID+1 > nextNewID {
			nextNewID = row.MatchResolutionID + 1
		}
	}

	filter.MinID = &nextNewID
	for view := range sub.C() {
		if !filter.MatchesLite(view) {
			continue
		}
		if err := conn.WriteJSON(view); err != nil {
			return
		}
	}
}

// handleTournamentSubmissionStream implements the replay-then-tail
// protocol for the TournamentSubmission stream.
//
// TournamentSubmission rows are not themselves published on the
// Result Broadcaster; this stream tails new entries by re-polling the
// store on each broadcaster message and, independently, once a second,
// so new entries are picked up even while no matchup round is being
// persisted.
func (s *Server) handleTournamentSubmissionStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var filter types.TournamentSubmissionViewProps
	if !readFirstFrame(conn, &filter) {
		writeStreamEndBeforeRequest(conn)
		return
	}
	if _, err := s.admission.Authenticate(r.Context(), filter.ApiKey); err != nil {
		writeStreamError(conn, err)
		return
	}

	sub := s.broadcaster.Subscribe()
	defer sub.Close()

	rows, err := s.store.QueryTournamentSubmissions(filter)
	if err != nil {
		writeStreamError(conn, err)
		return
	}

	var nextNewID int64
	if filter.MinID != nil {
		nextNewID = *filter.MinID
	}
	for _, row := range rows {
		if err := conn.WriteJSON(row); err != nil {
			return
		}
		if row.TournamentSubmissionID+1 > nextNewID {
			nextNewID = row.TournamentSubmissionID + 1
		}
	}
	filter.MinID = &nextNewID

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case _, ok := <-sub.C():
			if !ok {
				return
			}
			if !s.tailNewTournamentSubmissions(conn, &filter) {
				return
			}
		case <-ticker.C:
			if !s.tailNewTournamentSubmissions(conn, &filter) {
				return
			}
		}
	}
}

func (s *Server) tailNewTournamentSubmissions(conn *websocket.Conn, filter *types.TournamentSubmissionViewProps) bool {
	rows, err := s.store.QueryTournamentSubmissions(*filter)
	if err != nil {
		return false
	}
	for _, row := range rows {
		if !filter.Matches(row) {
			continue
		}
		if err := conn.WriteJSON(row); err != nil {
			return false
		}
		if row.TournamentSubmissionID+1 > *filter.MinID {
			next := row.TournamentSubmissionID + 1
			filter.MinID = &next
		}
	}
	return true
}

// readFirstFrame reads exactly one text frame and decodes it as v, the
// stream's initial control frame carrying the filter and api_key.
func readFirstFrame(conn *websocket.Conn, v any) bool {
	msgType, body, err := conn.ReadMessage()
	if err != nil || msgType != websocket.TextMessage {
		return false
	}
	return json.Unmarshal(body, v) == nil
}

func writeStreamEndBeforeRequest(conn *websocket.Conn) {
	conn.WriteJSON(map[string]string{"code": string(apperr.StreamEndBeforeRequest)})
}

func writeStreamError(conn *websocket.Conn, err error) {
	conn.WriteJSON(map[string]string{"code": string(apperr.CodeOf(err))})
}
