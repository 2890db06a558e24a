package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	dogmemory "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/memory"
	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/domain"
)

const fixture = `[
  {"id": 1, "name": "Buddy", "breed": "Labrador", "status": "AVAILABLE"},
  {"id": 2, "name": "Max", "breed": "German Shepherd", "status": "PENDING"},
  {"id": 3, "name": "Luna", "breed": "Husky", "status": "ADOPTED"}
]`

func TestLoad_InsertsInFileOrder(t *testing.T) {
	repo := dogmemory.NewRepository()

	n, err := Load(context.Background(), strings.NewReader(fixture), repo)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	dogs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, &domain.Dog{ID: 1, Name: "Buddy", Breed: "Labrador", Status: domain.StatusAvailable}, dogs[0])
	require.Equal(t, domain.StatusPending, dogs[1].Status)
	require.Equal(t, domain.StatusAdopted, dogs[2].Status)
}

func TestLoad_UnknownStatusInsertsNothing(t *testing.T) {
	repo := dogmemory.NewRepository()

	_, err := Load(context.Background(), strings.NewReader(`[
		{"id": 1, "name": "Buddy", "breed": "Labrador", "status": "AVAILABLE"},
		{"id": 2, "name": "Max", "breed": "Beagle", "status": "available"}
	]`), repo)
	require.ErrorIs(t, err, ErrMalformedFixture)
	require.ErrorIs(t, err, domain.ErrUnknownStatus)

	dogs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, dogs)
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(context.Background(), strings.NewReader(`{"id": 1}`), dogmemory.NewRepository())
	require.ErrorIs(t, err, ErrMalformedFixture)
}

func TestLoad_EmptyArray(t *testing.T) {
	n, err := Load(context.Background(), strings.NewReader(`[]`), dogmemory.NewRepository())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dogs.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	repo := dogmemory.NewRepository()
	n, err := LoadFile(context.Background(), path, repo)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"), repo)
	require.Error(t, err)
}
