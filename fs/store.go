// Package fs provides file-based storage for scraped transcripts.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/chatlens"
)

// Ensure FileStore implements chatlens.TranscriptStore at compile time.
var _ chatlens.TranscriptStore = (*FileStore)(nil)

// FileStore writes each Result as a JSON file with atomic batch semantics.
// Files are saved to a temporary directory, then moved into place on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes result as indented JSON at the path derived from source.
func (s *FileStore) Save(ctx context.Context, source string, result *chatlens.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if result == nil {
		return chatlens.Errorf(chatlens.EINVALID, "result required")
	}

	relPath, err := SourceToPath(source)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return chatlens.Errorf(chatlens.EINTERNAL, "writing %s: %v", fullPath, err)
	}

	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return chatlens.Errorf(chatlens.EINTERNAL, "encoding %s: %v", source, err)
	}
	if err := os.WriteFile(fullPath, append(b, '\n'), 0644); err != nil {
		return chatlens.Errorf(chatlens.EINTERNAL, "writing %s: %v", fullPath, err)
	}
	return nil
}

// Commit replaces the final directory with the staged one. It returns
// EINVALID and leaves the final directory untouched when nothing was saved.
func (s *FileStore) Commit() error {
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		return chatlens.Errorf(chatlens.EINVALID, "nothing saved to %s", s.finalDir())
	} else if err != nil {
		return chatlens.Errorf(chatlens.EINTERNAL, "reading %s: %v", s.tempDir(), err)
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return chatlens.Errorf(chatlens.EINTERNAL, "replacing %s: %v", s.finalDir(), err)
	}
	if err := os.Rename(s.tempDir(), s.finalDir()); err != nil {
		return chatlens.Errorf(chatlens.EINTERNAL, "replacing %s: %v", s.finalDir(), err)
	}
	return nil
}

// Abort removes the staged directory.
func (s *FileStore) Abort() error {
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return chatlens.Errorf(chatlens.EINTERNAL, "removing %s: %v", s.tempDir(), err)
	}
	return nil
}

// SourceToPath converts a target source to a relative slash-separated file
// path. URLs map under their host:
//
//	https://chatgpt.com/c/abc-123 → chatgpt.com/c/abc-123.json
//	https://claude.ai/            → claude.ai/index.json
//
// File sources keep only their base name: saved/chat.html → chat.json.
func SourceToPath(source string) (string, error) {
	if source == "" {
		return "", chatlens.Errorf(chatlens.EINVALID, "source required")
	}

	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		base := filepath.Base(source)
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".json", nil
	}

	u, err := url.Parse(source)
	if err != nil || u.Hostname() == "" {
		return "", chatlens.Errorf(chatlens.EINVALID, "invalid url %q", source)
	}

	p := path.Clean("/" + u.Path)
	if p == "/" {
		p = "/index"
	}
	return strings.ToLower(u.Hostname()) + p + ".json", nil
}
