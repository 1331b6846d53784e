package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/hearth/internal/domain"
)

func TestAppSettings_AddRemoteBackend(t *testing.T) {
	tests := []struct {
		name    string
		backend RemoteBackendConfig
		wantErr error
	}{
		{
			name:    "valid backend",
			backend: RemoteBackendConfig{ID: "home", Name: "Home", URL: "https://home.example"},
		},
		{
			name:    "empty id",
			backend: RemoteBackendConfig{URL: "https://home.example"},
			wantErr: ErrEmptyBackendID,
		},
		{
			name:    "empty url",
			backend: RemoteBackendConfig{ID: "home"},
			wantErr: ErrEmptyBackendURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			err := s.AddRemoteBackend(tt.backend)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, s.RemoteBackends)
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.RemoteBackends, 1)
		})
	}
}

func TestAppSettings_AddRemoteBackendInvalidURL(t *testing.T) {
	s := DefaultSettings()
	assert.Error(t, s.AddRemoteBackend(RemoteBackendConfig{ID: "x", URL: "not a url"}))
}

func TestAppSettings_AddRemoteBackendReplaces(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.AddRemoteBackend(RemoteBackendConfig{ID: "a", Name: "Old", URL: "http://a"}))
	require.NoError(t, s.AddRemoteBackend(RemoteBackendConfig{ID: "b", URL: "http://b"}))
	require.NoError(t, s.AddRemoteBackend(RemoteBackendConfig{ID: "a", Name: "New", URL: "http://a2"}))

	require.Len(t, s.RemoteBackends, 2)
	b, err := s.RemoteBackend("a")
	require.NoError(t, err)
	assert.Equal(t, "New", b.Name)
	assert.Equal(t, "http://a2", b.URL)

	other, err := s.RemoteBackend("b")
	require.NoError(t, err)
	assert.Equal(t, "b", other.Name, "name defaults to id")
}

func TestAppSettings_RemoveRemoteBackend(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.AddRemoteBackend(RemoteBackendConfig{ID: "a", URL: "http://a"}))
	require.NoError(t, s.AddRemoteBackend(RemoteBackendConfig{ID: "b", URL: "http://b"}))
	require.NoError(t, s.SelectBackend("b"))

	require.NoError(t, s.RemoveRemoteBackend("a"))
	assert.Equal(t, "b", s.SelectedBackend, "removing another backend keeps the selection")

	require.NoError(t, s.RemoveRemoteBackend("b"))
	assert.True(t, s.IsLocal())

	assert.ErrorIs(t, s.RemoveRemoteBackend("b"), domain.ErrBackendNotFound)
	assert.ErrorIs(t, s.RemoveRemoteBackend(""), ErrEmptyBackendID)
}

func TestAppSettings_SelectBackend(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.AddRemoteBackend(RemoteBackendConfig{ID: "a", Name: "Alpha", URL: "http://a"}))

	assert.Equal(t, "Local", s.ActiveBackendName())

	require.NoError(t, s.SelectBackend("a"))
	assert.Equal(t, "Alpha", s.ActiveBackendName())

	assert.ErrorIs(t, s.SelectBackend("zzz"), domain.ErrBackendNotFound)

	require.NoError(t, s.SelectBackend(""))
	assert.True(t, s.IsLocal())
}

func TestAppSettings_SelectedProviderNotConfigured(t *testing.T) {
	s := DefaultSettings()
	s.LocalBackend = nil

	_, err := s.SelectedProvider()
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
