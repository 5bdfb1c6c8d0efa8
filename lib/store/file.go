package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
)

type FileConfig struct {
	Dir string `mapstructure:"dir"`
}

// fileStore keeps one JSONL file per source under a root directory. Each
// record is one line, appended with a single write while holding that
// file's lock, so interleaved appends never merge into a corrupt record.
type fileStore struct {
	dir   string
	mut   sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(conf FileConfig) (Store, error) {
	if conf.Dir == "" {
		return nil, fmt.Errorf("file store: dir not configured")
	}
	if err := os.MkdirAll(conf.Dir, 0755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return &fileStore{
		dir:   conf.Dir,
		locks: map[string]*sync.Mutex{},
	}, nil
}

func (f *fileStore) Append(_ context.Context, source string, record document.AnnotationRecord) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("file store: marshalling record %s: %w", record.DocumentID, err)
	}
	line = append(line, '\n')

	path := f.path(source)
	lock := f.lock(path)
	lock.Lock()
	defer lock.Unlock()

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("file store: opening %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write(line); err != nil {
		return fmt.Errorf("file store: appending to %s: %w", path, err)
	}

	return nil
}

func (f *fileStore) LoadAll(ctx context.Context, onRecord func(document.AnnotationRecord) error) error {
	// os.ReadDir sorts by name, which gives us a stable source order.
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return fmt.Errorf("file store: reading %s: %w", f.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.loadFile(filepath.Join(f.dir, entry.Name()), onRecord); err != nil {
			return err
		}
	}

	return nil
}

func (f *fileStore) loadFile(path string, onRecord func(document.AnnotationRecord) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file store: opening %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record document.AnnotationRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			log.Warn().Err(err).Str("file", path).Int("line", lineNo).Msg("skipping malformed record")
			continue
		}
		if err := onRecord(record); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("file store: reading %s: %w", path, err)
	}
	return nil
}

func (f *fileStore) path(source string) string {
	// source names come from uploaded filenames; keep them inside dir.
	return filepath.Join(f.dir, filepath.Base(source)+".jsonl")
}

func (f *fileStore) lock(path string) *sync.Mutex {
	f.mut.Lock()
	defer f.mut.Unlock()
	if _, ok := f.locks[path]; !ok {
		f.locks[path] = &sync.Mutex{}
	}
	return f.locks[path]
}
