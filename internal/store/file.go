package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/llmholdem/internal/game"
	"github.com/lox/llmholdem/internal/statistics"
)

const fileExt = ".json"

type fileRecord struct {
	Seq      int           `json:"seq"`
	PlayedAt time.Time     `json:"played_at"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// FileStore keeps one JSON file per match in a directory. Files are written
// atomically so a concurrent reader never sees a partial match.
type FileStore struct {
	mu    sync.Mutex
	dir   string
	clock quartz.Clock
	seq   int
}

// OpenFileStore uses dir, creating it if needed
func OpenFileStore(dir string, clock quartz.Clock) (*FileStore, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	f := &FileStore{dir: dir, clock: clock}
	records, err := f.load()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		f.seq = max(f.seq, r.Seq)
	}
	return f, nil
}

func (f *FileStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("invalid match id %q", id)
	}
	return filepath.Join(f.dir, id+fileExt), nil
}

func (f *FileStore) SaveMatch(_ context.Context, snap game.Snapshot) error {
	if err := validateSnapshot(snap); err != nil {
		return err
	}
	path, err := f.path(snap.ID)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("match %s already saved", snap.ID)
	}
	data, err := json.Marshal(fileRecord{Seq: f.seq + 1, PlayedAt: f.clock.Now(), Snapshot: snap})
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return err
	}
	f.seq++
	return nil
}

func (f *FileStore) GetMatch(_ context.Context, id string) (game.Snapshot, error) {
	path, err := f.path(id)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r, err := readRecord(path)
	if errors.Is(err, os.ErrNotExist) {
		return game.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.Snapshot, err
}

func (f *FileStore) ListMatches(_ context.Context, limit int) ([]MatchSummary, error) {
	records, err := f.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Seq > records[j].Seq })
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	out := make([]MatchSummary, len(records))
	for i, r := range records {
		out[i] = summarize(r.Snapshot, r.PlayedAt)
	}
	return out, nil
}

func (f *FileStore) Standings(context.Context) ([]statistics.Standing, error) {
	records, err := f.load()
	if err != nil {
		return nil, err
	}
	standings := statistics.NewStandings()
	for _, r := range records {
		standings.AddMatch(&r.Snapshot.Statistics)
	}
	return standings.Ranked(), nil
}

func (f *FileStore) Close() {}

func (f *FileStore) load() ([]fileRecord, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}
	var records []fileRecord
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		r, err := readRecord(filepath.Join(f.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func readRecord(path string) (fileRecord, error) {
	var r fileRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return r, nil
}

// writeFileAtomic writes to a temp file in the same directory and renames
// it over filename. Readers see either the old file or the complete new one.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
