package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSystemStore implements Store using the OS file system. Each conversation
// is one indent-formatted JSON file named after its title.
type FileSystemStore struct {
	dir string // The directory records are stored in
}

// NewFileSystemStore creates a store rooted at the given directory
func NewFileSystemStore(dir string) *FileSystemStore {
	return &FileSystemStore{dir: dir}
}

func (fss *FileSystemStore) Load(title string) (*ConversationHistory, error) {
	err := os.MkdirAll(fss.dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	b, err := os.ReadFile(fss.path(title))
	if errors.Is(err, os.ErrNotExist) {
		// No record stored under this title yet
		return NewConversationHistory(title), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read history record: %w", err)
	}
	if len(b) == 0 {
		// An empty record is treated the same as a missing one
		return NewConversationHistory(title), nil
	}

	var h ConversationHistory
	err = json.Unmarshal(b, &h)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal history record: %w", err)
	}
	if h.Turns == nil {
		h.Turns = map[int]Turn{}
	}
	return &h, nil
}

func (fss *FileSystemStore) Save(h ConversationHistory) error {
	err := os.MkdirAll(fss.dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	b, err := json.MarshalIndent(h, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal history record: %w", err)
	}

	// Write to a temp file and rename over the record so a crash mid-write
	// leaves the previous record intact
	target := fss.path(h.Title)
	tmp := target + ".tmp"
	err = os.WriteFile(tmp, b, 0666)
	if err != nil {
		return fmt.Errorf("failed to write history record: %w", err)
	}
	err = os.Rename(tmp, target)
	if err != nil {
		return fmt.Errorf("failed to replace history record: %w", err)
	}
	return nil
}

func (fss *FileSystemStore) Delete(title string) error {
	err := os.Remove(fss.path(title))
	if err != nil {
		return fmt.Errorf("failed to delete history record: %w", err)
	}
	return nil
}

// RecordName returns the file name a title is stored under
func (fss *FileSystemStore) RecordName(title string) string {
	return title + ".json"
}

func (fss *FileSystemStore) path(title string) string {
	return filepath.Join(fss.dir, fss.RecordName(title))
}
