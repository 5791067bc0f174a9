package realtime

import (
	"encoding/json"

	"taskboard/internal/model"
)

const (
	// EventInitialData is sent once to a session right after it connects.
	EventInitialData = "initial_data"
	// EventUpdateBoard carries a client's full board collection.
	EventUpdateBoard = "update_board"
	// EventBoardUpdated carries persisted boards to every other session.
	EventBoardUpdated = "board_updated"
)

// Envelope is the frame exchanged over the socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func encodeFrame(event string, boards []model.BoardDocument) ([]byte, error) {
	if boards == nil {
		boards = []model.BoardDocument{}
	}
	data, err := json.Marshal(model.Snapshot{Boards: boards})
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
