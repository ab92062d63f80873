package history

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Entry format changes
const journalSchemaVersion uint16 = 1

// UnitSnapshot keeps both sides of one rewritten unit so the rewrite can
// be undone and verified.
type UnitSnapshot struct {
	Path     string
	Original []byte
	Upgraded []byte
}

// Entry records one write-back of an upgrade run.
type Entry struct {
	Schema uint16
	ID     string
	When   time.Time
	Units  []UnitSnapshot
}

// Journal is an on-disk log of upgrade runs, one msgpack file per entry.
// Thread-safe for concurrent access.
type Journal struct {
	mu  sync.Mutex
	dir string
}

// Open initializes the journal at the standard cache location for app.
func Open(app string) (*Journal, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "undo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Journal{dir: dir}, nil
}

// OpenAt initializes a journal rooted at dir, for tests and --journal-dir.
func OpenAt(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Journal{dir: dir}, nil
}

// Record persists an entry atomically and fills in its ID and timestamp.
func (j *Journal) Record(entry *Entry) error {
	if j == nil || entry == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	entry.Schema = journalSchemaVersion
	if entry.When.IsZero() {
		entry.When = time.Now().UTC()
	}
	if entry.ID == "" {
		entry.ID = entryID(entry)
	}

	f, err := os.CreateTemp(j.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(entry); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	// Атомарная замена
	return os.Rename(tmpPath, j.pathFor(entry))
}

// Latest returns the most recent entry, if the journal has one.
func (j *Journal) Latest() (*Entry, bool, error) {
	if j == nil {
		return nil, false, nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	names, err := j.entryNames()
	if err != nil || len(names) == 0 {
		return nil, false, err
	}
	entry, err := j.read(names[len(names)-1])
	if err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

// List returns every entry, oldest first. Entries with an unknown schema
// are skipped.
func (j *Journal) List() ([]*Entry, error) {
	if j == nil {
		return nil, nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	names, err := j.entryNames()
	if err != nil {
		return nil, err
	}
	var out []*Entry
	for _, name := range names {
		entry, err := j.read(name)
		if err != nil {
			return nil, err
		}
		if entry.Schema != journalSchemaVersion {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// Drop removes one entry by ID.
func (j *Journal) Drop(id string) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	names, err := j.entryNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		if strings.Contains(name, id) {
			return os.Remove(filepath.Join(j.dir, name))
		}
	}
	return fmt.Errorf("no journal entry %q", id)
}

func (j *Journal) pathFor(entry *Entry) string {
	stamp := entry.When.Format("20060102T150405.000000000")
	return filepath.Join(j.dir, stamp+"-"+entry.ID+".mp")
}

func (j *Journal) entryNames() ([]string, error) {
	dirents, err := os.ReadDir(j.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, de := range dirents {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".mp") {
			continue
		}
		names = append(names, de.Name())
	}
	// имена начинаются с отметки времени, лексический порядок хронологичен
	sort.Strings(names)
	return names, nil
}

func (j *Journal) read(name string) (*Entry, error) {
	f, err := os.Open(filepath.Join(j.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var entry Entry
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&entry); err != nil {
		return nil, fmt.Errorf("journal entry %s: %w", name, err)
	}
	return &entry, nil
}

func entryID(entry *Entry) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\n", entry.When.UnixNano())
	for _, u := range entry.Units {
		h.Write([]byte(u.Path))
		h.Write([]byte{0})
		h.Write(u.Upgraded)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}
