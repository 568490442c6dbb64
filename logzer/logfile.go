package logzer

import (
	"fmt"
	"os"
	"sync"
)

// LogFile is an io.WriteCloser rotating the file once MaxBytes is reached.
// Rotated files get numbered suffixes up to Backups; with Backups == 0
// the file is removed instead of rotated.
type LogFile struct {
	Path     string
	MaxBytes int64
	Backups  int

	mu   sync.Mutex
	file *os.File
	size int64
}

// Write implements io.Writer interface
func (f *LogFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		f.reopen()
	}
	if f.file != nil && f.MaxBytes > 0 && f.size+int64(len(p)) > f.MaxBytes {
		f.rotate()
	}
	n, err := f.file.Write(p)
	if err != nil {
		/* the file may have been removed under us, retry once on a fresh handle */
		f.reopen()
		n, err = f.file.Write(p)
	}
	if err == nil {
		f.size += int64(n)
	}
	return n, err
}

// Close implements io.Closer interface
func (f *LogFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Close()
}

func (f *LogFile) reopen() {
	if f.file != nil {
		_ = f.file.Close()
	}
	file, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	f.file = file
	if info, err := file.Stat(); err == nil {
		f.size = info.Size()
	}
}

func (f *LogFile) rotate() {
	name := f.file.Name()
	_ = f.file.Close()
	if f.Backups == 0 {
		_ = os.Remove(name)
	} else {
		for i := f.Backups; i > 1; i-- {
			_ = os.Rename(fmt.Sprintf("%s.%d", name, i-1), fmt.Sprintf("%s.%d", name, i))
		}
		_ = os.Rename(name, name+".1")
	}
	f.reopen()
}
