package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/helix/internal/config"
	"github.com/san-kum/helix/internal/helix"
)

func testHelix(t *testing.T, cfg *config.Config) *helix.Helix {
	t.Helper()
	p, err := cfg.HelixParams()
	if err != nil {
		t.Fatal(err)
	}
	h, err := helix.Build(p)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Geometry.TotalPoints = 8
	cfg.Geometry.SubCount = 3
	h := testHelix(t, cfg)

	id, err := st.Save("test", cfg, h)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Error("expected non-empty id")
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "test" {
		t.Errorf("expected name 'test', got '%s'", meta.Name)
	}
	if meta.Points != 48 || meta.Strand != 8 || meta.Bridges != 8 || meta.SubCount != 3 {
		t.Errorf("unexpected counts %+v", meta)
	}
	if meta.Config == nil || meta.Config.Geometry.TotalPoints != 8 {
		t.Error("config not stored")
	}

	pts, err := st.LoadPoints(id)
	if err != nil {
		t.Fatalf("load points failed: %v", err)
	}
	if len(pts) != 48 {
		t.Errorf("expected 48 points, got %d", len(pts))
	}
	if pts[8].Kind != helix.KindStrandB {
		t.Errorf("expected strand B after strand A, got %s", pts[8].Kind)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.Geometry.TotalPoints = 2
	h := testHelix(t, cfg)
	for _, name := range []string{"first", "second"} {
		if _, err := st.Save(name, cfg, h); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Name != "first" {
		t.Errorf("expected oldest first, got %s", runs[0].Name)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Geometry.TotalPoints = 0
	id, err := st.Save("empty", cfg, testHelix(t, cfg))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, id)
	for _, name := range []string{"metadata.json", "points.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
	pts, err := st.LoadPoints(id)
	if err != nil || len(pts) != 0 {
		t.Errorf("empty helix: %d points, %v", len(pts), err)
	}
}

func TestStoreMetadataKeys(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Geometry.TotalPoints = 4
	id, err := st.Save("keys", cfg, testHelix(t, cfg))
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(st.baseDir, id, "metadata.json"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, key := range []string{`"geometry"`, `"total_points": 4`, `"repeat_delay"`, `"camera_z"`} {
		if !strings.Contains(text, key) {
			t.Errorf("metadata.json missing %s", key)
		}
	}
	if strings.Contains(text, "TotalPoints") {
		t.Error("metadata.json uses Go field names")
	}
}
