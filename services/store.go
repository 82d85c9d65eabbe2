package services

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
	"yt-fetch-api/config"
	"yt-fetch-api/utils"

	"github.com/robfig/cron/v3"
)

// Store owns the staging directory. No other component touches staged
// files directly.
type Store struct {
	dir      string
	now      func() time.Time
	removeFn func(name string) error
}

// Artifacts is the process-wide store, set by InitStore at startup
var Artifacts *Store

// InitStore creates the staging directory and the process-wide store
func InitStore(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	Artifacts = NewStore(dir)
	return nil
}

// NewStore returns a store over dir using the wall clock
func NewStore(dir string) *Store {
	s := &Store{dir: dir, now: time.Now}
	s.removeFn = s.Remove
	return s
}

// OutputTemplate returns the tool output path for a reserved prefix; the
// extension placeholder is substituted by the tool itself.
func (s *Store) OutputTemplate(prefix string) string {
	return filepath.Join(s.dir, prefix+".%(ext)s")
}

// ListNames returns a snapshot of staged file names
func (s *Store) ListNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Resolve validates a staged name and returns its path. ErrNotFound when
// the name is gone from disk.
func (s *Store) Resolve(name string) (string, error) {
	if !utils.ValidateArtifactName(name) {
		return "", ErrNotFound
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// Stat returns the byte size of a staged file
func (s *Store) Stat(name string) (int64, error) {
	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		return 0, ErrNotFound
	}
	return info.Size(), nil
}

// Remove deletes a staged file. Deletion is idempotent: the post-serve
// timer and the sweep may fire on the same file, so already-missing is a
// success, not an error.
func (s *Store) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ServeOnce opens a staged file for streaming. The caller hands the stream
// to the response writer; once the body has been fully written the writer
// closes it, which starts the post-serve delete timer. Closing twice never
// double-schedules.
func (s *Store) ServeOnce(name string) (io.ReadCloser, int64, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return nil, 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, ErrNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, ErrNotFound
	}

	stream := &servedArtifact{File: f}
	stream.onDone = func() {
		s.ScheduleRemove(name, config.ServeDeleteDelay)
	}
	return stream, info.Size(), nil
}

// servedArtifact schedules deletion when the response stream is closed
type servedArtifact struct {
	*os.File
	once   sync.Once
	onDone func()
}

func (a *servedArtifact) Close() error {
	err := a.File.Close()
	a.once.Do(a.onDone)
	return err
}

// ScheduleRemove deletes a staged file after the given delay
func (s *Store) ScheduleRemove(name string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		if err := s.Remove(name); err != nil {
			log.Printf("[Store] Deferred delete of %s failed: %v\n", name, err)
			return
		}
		log.Printf("[Store] Deleted served artifact: %s\n", name)
	})
}

// Sweep deletes every staged entry older than config.MaxArtifactAge by
// last-modified time. Individual read/delete errors are logged and do not
// abort the rest of the sweep.
func (s *Store) Sweep() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Printf("[Sweep] Error reading staging directory: %v\n", err)
		return
	}

	now := s.now()
	deleted := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Printf("[Sweep] Error reading %s: %v\n", entry.Name(), err)
			continue
		}

		age := now.Sub(info.ModTime())
		if age <= config.MaxArtifactAge {
			continue
		}

		if err := s.removeFn(entry.Name()); err != nil {
			log.Printf("[Sweep] Error deleting %s: %v\n", entry.Name(), err)
			continue
		}
		deleted++
		log.Printf("[Sweep] Deleted stale artifact: %s (age: %v)\n", entry.Name(), age.Round(time.Minute))
	}

	if deleted > 0 {
		log.Printf("[Sweep] Finished. Deleted %d artifacts\n", deleted)
	}
}

// StartSweepScheduler runs the periodic sweep on its own timer, independent
// of request traffic, plus one pass at startup. The returned cron is
// stopped at shutdown.
func (s *Store) StartSweepScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc(config.SweepSchedule, func() {
		s.Sweep()
	})

	c.Start()

	go s.Sweep()

	log.Println("[Sweep] Scheduler started")
	return c
}
