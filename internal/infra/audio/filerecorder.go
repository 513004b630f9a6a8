package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileRecorder "records" by waiting for a new audio file to appear in a
// watched directory. It stands in for the microphone on builds without
// portaudio: drop a clip into the directory while capture is toggled on.
type FileRecorder struct {
	dir       string
	logger    *slog.Logger
	mu        sync.Mutex
	processed map[string]bool
}

func NewFileRecorder(dir string, logger *slog.Logger) *FileRecorder {
	return &FileRecorder{
		dir:       dir,
		logger:    logger,
		processed: make(map[string]bool),
	}
}

func (f *FileRecorder) Name() string { return "file" }

func (f *FileRecorder) Available() bool { return true }

func (f *FileRecorder) Record(ctx context.Context, stop <-chan struct{}) ([]byte, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating audio dir: %w", err)
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-stop:
			return nil, nil
		case <-ticker.C:
			clip, err := f.nextFile()
			if err != nil {
				return nil, err
			}
			if clip != nil {
				return clip, nil
			}
		}
	}
}

func (f *FileRecorder) nextFile() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("reading dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".wav" && ext != ".mp3" && ext != ".m4a" && ext != ".webm" {
			continue
		}

		path := filepath.Join(f.dir, entry.Name())
		if f.processed[path] {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", path, err)
		}

		f.processed[path] = true
		if err := os.Rename(path, path+".processed"); err != nil {
			// Only the in-memory map guards against reprocessing now, and
			// it does not survive a restart.
			f.logger.Warn("marking clip processed", "path", path, "error", err)
		}

		return data, nil
	}

	return nil, nil
}
