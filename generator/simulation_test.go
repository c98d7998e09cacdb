package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSimulationStore struct {
	results map[string]string
	err     error
}

func (f *fakeSimulationStore) ResultURL(_ context.Context, productName string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	url, ok := f.results[productName]
	return url, ok, nil
}

func TestSimulationReturnsCannedResult(t *testing.T) {
	store := &fakeSimulationStore{results: map[string]string{
		"Chaqueta de Cuero": "https://canned.example/jacket.jpg",
	}}
	g := NewSimulationGenerator(store, 0)

	result, err := g.Generate(context.Background(), "https://u.example/me.jpg", "https://u.example/g.jpg", "Chaqueta de Cuero")
	require.NoError(t, err)
	assert.Equal(t, "https://canned.example/jacket.jpg", result)
}

func TestSimulationFallsBackToDefaultImage(t *testing.T) {
	g := NewSimulationGenerator(&fakeSimulationStore{}, 0)

	result, err := g.Generate(context.Background(), "https://u.example/me.jpg", "https://u.example/g.jpg", "Prenda Desconocida")
	require.NoError(t, err)
	assert.Equal(t, defaultSimulationURL, result)
}

func TestSimulationLookupErrorStillProducesDefault(t *testing.T) {
	g := NewSimulationGenerator(&fakeSimulationStore{err: errors.New("db down")}, 0)

	result, err := g.Generate(context.Background(), "https://u.example/me.jpg", "https://u.example/g.jpg", "x")
	require.NoError(t, err)
	assert.Equal(t, defaultSimulationURL, result)
}

func TestSimulationValidatesInputURLs(t *testing.T) {
	g := NewSimulationGenerator(&fakeSimulationStore{}, 0)

	_, err := g.Generate(context.Background(), "not a url", "https://u.example/g.jpg", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
