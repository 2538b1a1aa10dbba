package gen

import (
	"maps"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/leanbuffer/errors"
)

// staged is one file of a WriteFiles run: its content sits in tmp until
// commit renames it over path. An existing file at path is moved to backup
// so a failed run can put it back.
type staged struct {
	path      string
	tmp       string
	backup    string
	committed bool
}

// stage writes data to a temporary file next to path.
func stage(path string, data []byte) (*staged, error) {
	if fi, err := os.Lstat(path); err == nil && !fi.Mode().IsRegular() {
		return nil, errors.EmissionFailure(path+" exists and is not a regular file", nil)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.EmissionFailure("create "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".leangen-*")
	if err != nil {
		return nil, errors.EmissionFailure("create temporary file in "+dir, err)
	}
	s := &staged{path: path, tmp: tmp.Name()}
	fail := func(what string, err error) (*staged, error) {
		_ = tmp.Close()
		_ = os.Remove(s.tmp)
		return nil, errors.EmissionFailure(what+" "+path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(s.tmp)
		return nil, errors.EmissionFailure("close "+path, err)
	}
	return s, nil
}

func (s *staged) commit() error {
	if _, err := os.Lstat(s.path); err == nil {
		s.backup = s.tmp + ".bak"
		if err := os.Rename(s.path, s.backup); err != nil {
			s.backup = ""
			return errors.EmissionFailure("back up "+s.path, err)
		}
	}
	if err := os.Rename(s.tmp, s.path); err != nil {
		if s.backup != "" {
			_ = os.Rename(s.backup, s.path)
			s.backup = ""
		}
		return errors.EmissionFailure("rename "+s.path, err)
	}
	s.committed = true
	return nil
}

// undo restores path to its state before the run.
func (s *staged) undo() {
	if !s.committed {
		_ = os.Remove(s.tmp)
		return
	}
	_ = os.Remove(s.path)
	if s.backup != "" {
		_ = os.Rename(s.backup, s.path)
	}
}

// WriteFiles replaces every path in files. All contents are written to
// temporary files first and then renamed into place. If any step fails,
// every path is restored to what it held before the call and no temporary
// file remains.
func WriteFiles(files map[string][]byte) error {
	var done []*staged
	rollback := func() {
		for _, s := range slices.Backward(done) {
			s.undo()
		}
	}

	paths := slices.Sorted(maps.Keys(files))
	for _, path := range paths {
		s, err := stage(path, files[path])
		if err != nil {
			rollback()
			return err
		}
		done = append(done, s)
	}
	for _, s := range done {
		if err := s.commit(); err != nil {
			rollback()
			return err
		}
	}

	for _, s := range done {
		if s.backup != "" {
			_ = os.Remove(s.backup)
		}
		Logger().Debug("file written", zap.String("path", s.path), zap.Int("bytes", len(files[s.path])))
	}
	return nil
}

// WriteFile atomically replaces path with data. On failure the previous
// file, if any, is left untouched and no temporary file remains.
func WriteFile(path string, data []byte) error {
	return WriteFiles(map[string][]byte{path: data})
}

// MergeFiles merges the fragment files at paths into out. Nothing is
// written unless every fragment parses and the merge succeeds.
func MergeFiles(pkg, out string, paths ...string) error {
	fragments := make([][]byte, len(paths))
	for i, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return errors.NotFound(errors.PhaseLoad, "fragment", p, err)
		}
		fragments[i] = src
	}

	merged, err := Merge(pkg, fragments...)
	if err != nil {
		return err
	}
	return WriteFile(out, merged)
}
