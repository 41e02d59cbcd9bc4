package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	d, err := NewDiskv(t.TempDir())
	require.NoError(t, err)
	return map[string]Backend{
		DriverMemory: NewMemory(),
		DriverDiskv:  d,
	}
}

func TestBackendContract(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Read("taskflow-user")
			assert.True(t, errors.Is(err, ErrNotFound), "missing key should be ErrNotFound, got %v", err)

			require.NoError(t, b.Write("taskflow-user", []byte(`{"name":"Ana"}`)))
			got, err := b.Read("taskflow-user")
			require.NoError(t, err)
			assert.JSONEq(t, `{"name":"Ana"}`, string(got))

			require.NoError(t, b.Delete("taskflow-user"))
			require.NoError(t, b.Delete("taskflow-user"), "deleting twice is not an error")
			_, err = b.Read("taskflow-user")
			assert.True(t, errors.Is(err, ErrNotFound))
			assert.NoError(t, b.Close())
		})
	}
}

func TestDiskvPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := NewDiskv(dir)
	require.NoError(t, err)
	require.NoError(t, first.Write("taskflow-session", []byte(`{"token":"abc"}`)))

	second, err := NewDiskv(dir)
	require.NoError(t, err)
	got, err := second.Read("taskflow-session")
	require.NoError(t, err)
	assert.Equal(t, `{"token":"abc"}`, string(got))
}
