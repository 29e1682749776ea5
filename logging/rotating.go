package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const filePrefix = "ceassist-"

// RotatingWriter writes to one log file per ISO week. A week's file that
// reaches maxSize continues in ceassist-<week>.1.log, .2.log and so on.
// Files older than the retention period are removed once a day.
type RotatingWriter struct {
	mu        sync.Mutex
	dir       string
	retention time.Duration
	maxSize   int64 // 0 disables size rotation

	file *os.File
	week string
	seq  int
	size int64

	now  func() time.Time
	stop chan struct{}
	done chan struct{}
}

// NewRotatingWriter opens the current week's file in dir
func NewRotatingWriter(dir string, retentionWeeks int, maxSize int64) (*RotatingWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	w := &RotatingWriter{
		dir:       dir,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxSize:   maxSize,
		now:       time.Now,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	w.mu.Lock()
	err := w.open(weekKey(w.now()))
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	go w.cleanupLoop(24 * time.Hour)
	return w, nil
}

// weekKey returns the ISO week as YYYY-Www
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func fileName(week string, seq int) string {
	if seq == 0 {
		return filePrefix + week + ".log"
	}
	return filePrefix + week + "." + strconv.Itoa(seq) + ".log"
}

// open switches to week's newest file that still has room. Caller holds mu.
func (w *RotatingWriter) open(week string) error {
	if w.file != nil {
		w.file.Close()
		w.file = nil
	}

	seq := 0
	if w.week == week {
		seq = w.seq
	}
	var size int64
	for {
		info, err := os.Stat(filepath.Join(w.dir, fileName(week, seq)))
		if err != nil {
			break
		}
		size = info.Size()
		if w.maxSize == 0 || size < w.maxSize {
			break
		}
		seq++
		size = 0
	}

	path := filepath.Join(w.dir, fileName(week, seq))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	w.file = f
	w.week = week
	w.seq = seq
	w.size = size
	return nil
}

// Write implements io.Writer, rotating first when the week changed or the
// write would push the file past maxSize
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	week := weekKey(w.now())
	switch {
	case week != w.week:
		w.seq = 0
		if err := w.open(week); err != nil {
			return 0, err
		}
	case w.maxSize > 0 && w.size > 0 && w.size+int64(len(p)) > w.maxSize:
		w.seq++
		if err := w.open(week); err != nil {
			return 0, err
		}
	}

	if w.file == nil {
		return 0, fmt.Errorf("log writer is closed")
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// Cleanup removes log files last modified before the retention period
func (w *RotatingWriter) Cleanup() (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := w.now().Add(-w.retention)
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if os.Remove(filepath.Join(w.dir, name)) == nil {
			removed++
		}
	}
	return removed, nil
}

func (w *RotatingWriter) cleanupLoop(every time.Duration) {
	defer close(w.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			if n, err := w.Cleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "log cleanup failed: %v\n", err)
			} else if n > 0 {
				fmt.Fprintf(os.Stderr, "removed %d old log files\n", n)
			}
		}
	}
}

// Close stops the cleanup loop and closes the current file
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.stop:
		return nil
	default:
		close(w.stop)
	}
	<-w.done

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
