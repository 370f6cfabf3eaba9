package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/helix/internal/config"
	"github.com/san-kum/helix/internal/export"
	"github.com/san-kum/helix/internal/helix"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.csv"
)

// Store keeps generated helices on disk, one directory per snapshot.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Timestamp time.Time      `json:"timestamp"`
	Points    int            `json:"points"`
	Strand    int            `json:"strand_points"`
	Bridges   int            `json:"bridges"`
	SubCount  int            `json:"sub_count"`
	Config    *config.Config `json:"config"`
}

// Save writes cfg and every point of h under a new snapshot id.
func (s *Store) Save(name string, cfg *config.Config, h *helix.Helix) (string, error) {
	now := time.Now()
	id := fmt.Sprintf("%s_%d", name, now.UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := Metadata{
		ID:        id,
		Name:      name,
		Timestamp: now,
		Points:    h.Count(),
		Strand:    len(h.A),
		Bridges:   len(h.Bridges),
		SubCount:  h.Params.SubCount,
		Config:    cfg,
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, pointsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := export.WritePointsCSV(csvFile, h.Points()); err != nil {
		return "", fmt.Errorf("write points: %w", err)
	}
	return id, nil
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadPoints(id string) ([]helix.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, pointsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return export.ReadPointsCSV(f)
}
