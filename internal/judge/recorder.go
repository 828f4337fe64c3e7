package judge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Exchange is one recorded request/response pair.
type Exchange struct {
	Player   string          `json:"player"`
	Request  json.RawMessage `json:"request"`
	Response json.RawMessage `json:"response"`
}

// Recorder buffers the protocol exchanges of the current game and
// writes them to one JSON file per game.
type Recorder struct {
	directory string
	exchanges []Exchange
}

// NewRecorder creates a recorder writing into the given directory,
// which must exist.
func NewRecorder(directory string) (*Recorder, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("recording directory %q: %w", directory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("recording path %q is not a directory", directory)
	}
	return &Recorder{directory: directory}, nil
}

// StoreExchange buffers one exchange until the game is written out.
func (r *Recorder) StoreExchange(player string, request, response json.RawMessage) {
	r.exchanges = append(r.exchanges, Exchange{
		Player:   player,
		Request:  append(json.RawMessage(nil), request...),
		Response: append(json.RawMessage(nil), response...),
	})
}

// WriteGameRecording flushes the buffered exchanges of the finished
// game into a new file named after a fresh game ID.
func (r *Recorder) WriteGameRecording() error {
	exchanges := r.exchanges
	r.exchanges = nil
	if exchanges == nil {
		exchanges = []Exchange{}
	}

	data, err := json.MarshalIndent(exchanges, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(r.directory, fmt.Sprintf("game_%s.json", uuid.NewString()))
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
