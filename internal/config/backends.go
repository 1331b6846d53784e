package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/riordanpawley/hearth/internal/domain"
)

var (
	// ErrEmptyBackendID is returned when a backend has no ID
	ErrEmptyBackendID = errors.New("backend id cannot be empty")
	// ErrEmptyBackendURL is returned when a remote backend has no URL
	ErrEmptyBackendURL = errors.New("backend url cannot be empty")
)

// RemoteBackend retrieves a remote backend by ID
func (s *AppSettings) RemoteBackend(id string) (*RemoteBackendConfig, error) {
	for i := range s.RemoteBackends {
		if s.RemoteBackends[i].ID == id {
			return &s.RemoteBackends[i], nil
		}
	}
	return nil, domain.ErrBackendNotFound
}

// AddRemoteBackend adds b, replacing an existing backend with the same ID
func (s *AppSettings) AddRemoteBackend(b RemoteBackendConfig) error {
	if b.ID == "" {
		return ErrEmptyBackendID
	}
	if b.URL == "" {
		return ErrEmptyBackendURL
	}
	if _, err := url.ParseRequestURI(b.URL); err != nil {
		return fmt.Errorf("invalid backend url %q: %w", b.URL, err)
	}
	if b.Name == "" {
		b.Name = b.ID
	}

	kept := s.RemoteBackends[:0]
	for _, existing := range s.RemoteBackends {
		if existing.ID != b.ID {
			kept = append(kept, existing)
		}
	}
	s.RemoteBackends = append(kept, b)
	return nil
}

// RemoveRemoteBackend removes a backend. If it was selected, the local
// backend becomes selected.
func (s *AppSettings) RemoveRemoteBackend(id string) error {
	if id == "" {
		return ErrEmptyBackendID
	}

	found := false
	for i, b := range s.RemoteBackends {
		if b.ID == id {
			s.RemoteBackends = append(s.RemoteBackends[:i], s.RemoteBackends[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return domain.ErrBackendNotFound
	}

	if s.SelectedBackend == id {
		s.SelectedBackend = ""
	}
	return nil
}

// SelectBackend selects a remote backend by ID, or local mode for ""
func (s *AppSettings) SelectBackend(id string) error {
	if id == "" {
		s.SelectedBackend = ""
		return nil
	}
	if _, err := s.RemoteBackend(id); err != nil {
		return err
	}
	s.SelectedBackend = id
	return nil
}

// ActiveBackendName returns a display name for the selected backend
func (s *AppSettings) ActiveBackendName() string {
	if s.SelectedBackend == "" {
		return "Local"
	}
	if b, err := s.RemoteBackend(s.SelectedBackend); err == nil {
		return b.Name
	}
	return s.SelectedBackend
}

// SelectedProvider returns the local backend's selected LLM provider
func (s *AppSettings) SelectedProvider() (*LLMProviderConfig, error) {
	if s.LocalBackend == nil {
		return nil, domain.ErrNotConfigured
	}
	for i := range s.LocalBackend.LLMProviders {
		p := &s.LocalBackend.LLMProviders[i]
		if p.ID == s.LocalBackend.SelectedProvider {
			return p, nil
		}
	}
	return nil, domain.ErrNotConfigured
}
