package preference

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps preferences in a YAML file, one document per profile:
//
//	profiles:
//	  default:
//	    darkMode: "off"
type FileStore struct {
	path    string
	profile string

	mu sync.Mutex
}

type fileDocument struct {
	Profiles map[string]map[string]string `yaml:"profiles"`
}

// NewFileStore builds a store backed by the file at path.
func NewFileStore(path, profile string) *FileStore {
	return &FileStore{path: path, profile: profile}
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := doc.Profiles[s.profile][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc.Profiles == nil {
		doc.Profiles = make(map[string]map[string]string)
	}
	if doc.Profiles[s.profile] == nil {
		doc.Profiles[s.profile] = make(map[string]string)
	}
	doc.Profiles[s.profile][key] = value

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	return nil
}

func (s *FileStore) load() (fileDocument, error) {
	var doc fileDocument
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read preferences file: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse preferences file: %w", err)
	}
	return doc, nil
}
