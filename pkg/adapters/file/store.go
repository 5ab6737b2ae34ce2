package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"gopkg.in/yaml.v3"
)

const setupExt = ".yaml"

// SetupStore implements ports.SetupStore using the local filesystem.
// It stores one YAML file per profile in a configured directory.
type SetupStore struct {
	BasePath string
}

// NewSetupStore creates a store rooted at basePath.
// If basePath is empty, it defaults to ".callflow/setup".
func NewSetupStore(basePath string) *SetupStore {
	if basePath == "" {
		basePath = filepath.Join(".callflow", "setup")
	}
	return &SetupStore{BasePath: basePath}
}

func (s *SetupStore) path(profile string) (string, error) {
	if err := domain.ValidateProfile(profile); err != nil {
		return "", err
	}
	return filepath.Join(s.BasePath, profile+setupExt), nil
}

// Save writes the setup, replacing any previous file atomically.
func (s *SetupStore) Save(ctx context.Context, profile string, setup domain.Setup) error {
	path, err := s.path(profile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure setup directory: %w", err)
	}

	data, err := yaml.Marshal(setup)
	if err != nil {
		return fmt.Errorf("failed to marshal setup: %w", err)
	}

	tmp, err := os.CreateTemp(s.BasePath, profile+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write setup file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace setup file: %w", err)
	}
	return nil
}

// Load reads the setup for profile.
func (s *SetupStore) Load(ctx context.Context, profile string) (domain.Setup, error) {
	path, err := s.path(profile)
	if err != nil {
		return domain.Setup{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Setup{}, domain.ErrSetupNotFound
		}
		return domain.Setup{}, fmt.Errorf("failed to read setup file: %w", err)
	}

	var setup domain.Setup
	if err := yaml.Unmarshal(data, &setup); err != nil {
		return domain.Setup{}, fmt.Errorf("failed to unmarshal setup: %w", err)
	}
	return setup, nil
}

// Delete removes the setup file. Deleting a missing profile is not an error.
func (s *SetupStore) Delete(ctx context.Context, profile string) error {
	path, err := s.path(profile)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete setup file: %w", err)
	}
	return nil
}

// List returns all stored profile names.
func (s *SetupStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list setups: %w", err)
	}

	profiles := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && filepath.Ext(name) == setupExt {
			profiles = append(profiles, strings.TrimSuffix(name, setupExt))
		}
	}
	return profiles, nil
}
