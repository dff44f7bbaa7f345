// Package seed loads reference data (exercise catalog, generic foods) and
// generates demo content for development databases.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/repository"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultCatalogURL is the free-exercise-db distribution.
	DefaultCatalogURL = "https://raw.githubusercontent.com/yuhonas/free-exercise-db/main/dist/exercises.json"
	catalogImageBase  = "https://raw.githubusercontent.com/yuhonas/free-exercise-db/main/exercises/"

	exerciseBatchSize = 200
	fetchTimeout      = 30 * time.Second
)

// CatalogEntry mirrors one record of the free-exercise-db dataset. YAML
// catalogs use the same keys.
type CatalogEntry struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Category         string   `json:"category" yaml:"category"`
	Equipment        string   `json:"equipment" yaml:"equipment"`
	PrimaryMuscles   []string `json:"primaryMuscles" yaml:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles" yaml:"secondaryMuscles"`
	Instructions     []string `json:"instructions" yaml:"instructions"`
	Images           []string `json:"images" yaml:"images"`
}

// Exercise converts the entry into a catalog row.
func (e CatalogEntry) Exercise() models.Exercise {
	return models.Exercise{
		Name:        strings.TrimSpace(e.Name),
		MuscleGroup: e.muscleGroup(),
		Description: e.description(),
		ImageURL:    e.imageURL(),
	}
}

func (e CatalogEntry) muscleGroup() string {
	if len(e.PrimaryMuscles) > 0 {
		return e.PrimaryMuscles[0]
	}
	if e.Category != "" {
		return e.Category
	}
	return "unknown"
}

func (e CatalogEntry) description() string {
	var parts []string
	if len(e.Instructions) > 0 {
		parts = append(parts, strings.Join(e.Instructions, "\n"))
	}
	if e.Equipment != "" {
		parts = append(parts, "Equipment: "+e.Equipment)
	}
	if len(e.SecondaryMuscles) > 0 {
		parts = append(parts, "Secondary: "+strings.Join(e.SecondaryMuscles, ", "))
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

func (e CatalogEntry) imageURL() string {
	switch {
	case len(e.Images) > 0:
		return catalogImageBase + e.Images[0]
	case e.ID != "":
		return catalogImageBase + e.ID + "/0.jpg"
	}
	return ""
}

// LoadExerciseCatalog decodes a catalog in "json" or "yaml" format.
// Entries without a name are dropped.
func LoadExerciseCatalog(r io.Reader, format string) ([]models.Exercise, error) {
	var entries []CatalogEntry
	switch strings.ToLower(format) {
	case "json", "":
		if err := json.NewDecoder(r).Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	out := make([]models.Exercise, 0, len(entries))
	for _, e := range entries {
		ex := e.Exercise()
		if ex.Name == "" {
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

// FetchExerciseCatalog downloads and decodes a JSON catalog.
func FetchExerciseCatalog(ctx context.Context, url string) ([]models.Exercise, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}
	return LoadExerciseCatalog(resp.Body, "json")
}

// ImportExercises inserts the exercises whose names are not in the catalog
// yet and returns how many were inserted. Duplicate names within the input
// keep their first occurrence.
func ImportExercises(ctx context.Context, repo repository.ExerciseRepository, exercises []models.Exercise) (int, error) {
	existing, err := repo.ExistingNames(ctx)
	if err != nil {
		return 0, err
	}

	fresh := make([]models.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if _, dup := existing[ex.Name]; dup {
			continue
		}
		existing[ex.Name] = struct{}{}
		ex.ID = 0
		fresh = append(fresh, ex)
	}

	if err := repo.CreateInBatches(ctx, fresh, exerciseBatchSize); err != nil {
		return 0, err
	}
	return len(fresh), nil
}
