package engine

import (
	"bufio"
	"encoding/json"
	"os"
	"time"

	"github.com/perchapp/perch/config"
)

// Status mirrors the running session to a file so that other perch
// processes can report on it. The running instance holds an exclusive lock
// on the database, so the status command reads this file instead.
type Status struct {
	StartedAt        time.Time `json:"started_at"`
	EndTime          time.Time `json:"end_time"`
	Location         string    `json:"location"`
	Phase            Phase     `json:"phase"`
	GroupID          string    `json:"group_id,omitempty"`
	RemainingSeconds int       `json:"remaining_seconds"`
	DeepFocus        bool      `json:"deep_focus"`
}

func (e *Engine) writeStatusFile(s Status) error {
	statusFilePath := config.StatusFilePath()

	statusFile, err := os.Create(statusFilePath)
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// ReadStatus loads the last status snapshot written by a running instance.
func ReadStatus(path string) (*Status, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Status

	err = json.Unmarshal(fileBytes, &s)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
