package storage

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage writes decoded payloads under a single root directory.
// Names are freshly generated uuids, never the user-supplied file
// name, so payloads can neither collide nor escape the root.
type Storage struct {
	root string
}

func InitStorage(root string) *Storage {
	return &Storage{root: root}
}

func (s *Storage) Root() string {
	return s.root
}

// Creates the root directory if missing (idempotent)
func (s *Storage) EnsureRoot() error {
	return os.MkdirAll(s.root, 0755)
}

// Writes data under a generated name inside the root directory and
// returns the absolute path of the written file
func (s *Storage) Save(data []byte) (string, error) {
	if err := s.EnsureRoot(); err != nil {
		return "", err
	}

	path := filepath.Join(s.root, uuid.New().String())
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}
