package obmm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Roots are the two directories script paths are resolved against, expressed
// as paths inside the engine's filesystem.
type Roots struct {
	Data    string
	Plugins string
}

// defaultFS is the host filesystem; roots must then be absolute.
func defaultFS() billy.Filesystem {
	return osFS{osfs.New("/")}
}

// chtimer is the timestamp half of billy.Change.
type chtimer interface {
	Chtimes(name string, atime, mtime time.Time) error
}

// osFS adds Chtimes to osfs, which does not implement billy.Change.
type osFS struct {
	billy.Filesystem
}

func (f osFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(f.Join(f.Root(), name), atime, mtime)
}

type fsys struct {
	fs billy.Filesystem
}

// resolve joins a script path onto a root.
func (f fsys) resolve(root, rel string) string {
	if rel == "" {
		return root
	}
	return f.fs.Join(root, toSlashPath(rel))
}

func (f fsys) fileExists(p string) bool {
	info, err := f.fs.Stat(p)
	return err == nil && !info.IsDir()
}

func (f fsys) dirExists(p string) bool {
	info, err := f.fs.Stat(p)
	return err == nil && info.IsDir()
}

func (f fsys) readFile(p string) ([]byte, error) {
	return util.ReadFile(f.fs, p)
}

func (f fsys) writeFile(p string, data []byte) error {
	return util.WriteFile(f.fs, p, data, 0o644)
}

func (f fsys) size(p string) (int64, error) {
	info, err := f.fs.Stat(p)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// writeAt overwrites len(data) bytes at off without truncating the file.
func (f fsys) writeAt(p string, off int64, data []byte) (err error) {
	file, err := f.fs.OpenFile(p, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if _, err = file.Seek(off, io.SeekStart); err != nil {
		return err
	}
	_, err = file.Write(data)
	return err
}

func (f fsys) copyFile(from, to string) (err error) {
	src, err := f.fs.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	if dir := path.Dir(to); dir != "." {
		if err := f.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	dst, err := f.fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(dst, src)
	return err
}

func (f fsys) modTime(p string) (time.Time, bool) {
	info, err := f.fs.Stat(p)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// setModTime is best effort: filesystems without Chtimes keep their own
// timestamps.
func (f fsys) setModTime(p string, t time.Time) error {
	if t.IsZero() {
		return nil
	}
	ch, ok := f.fs.(chtimer)
	if !ok {
		return nil
	}
	return ch.Chtimes(p, t, t)
}

func (f fsys) move(from, to string) error {
	if dir := path.Dir(to); dir != "." {
		if err := f.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return f.fs.Rename(from, to)
}

func (f fsys) remove(p string) error {
	return f.fs.Remove(p)
}

// listEntry is a root-relative entry produced by list.
type listEntry struct {
	rel   string
	isDir bool
}

// list walks root/rel and returns entries relative to root, using script
// separators. Directories are read in the order the filesystem returns them.
func (f fsys) list(root, rel string, recurse bool) ([]listEntry, error) {
	var out []listEntry
	var walk func(rel string) error
	walk = func(rel string) error {
		infos, err := f.fs.ReadDir(f.resolve(root, rel))
		if err != nil {
			return err
		}
		for _, info := range infos {
			child := info.Name()
			if rel != "" {
				child = rel + scriptSeparator + info.Name()
			}
			out = append(out, listEntry{rel: child, isDir: info.IsDir()})
			if recurse && info.IsDir() {
				if err := walk(child); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(rel); err != nil {
		return nil, err
	}
	return out, nil
}

// matchPattern applies a case-insensitive wildcard to the entry's base name.
func matchPattern(pattern, name string) bool {
	if pattern == "" || pattern == "*" || pattern == "*.*" {
		return true
	}
	ok, err := path.Match(strings.ToLower(pattern), strings.ToLower(name))
	return err == nil && ok
}

var errFileExists = errors.New("file already exists")

func fileError(op, p string, err error) error {
	return fmt.Errorf("%s %s: %w", op, p, err)
}
