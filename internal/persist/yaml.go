package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/tina-pina/the-scoop/internal/model"
	"github.com/tina-pina/the-scoop/internal/store"
)

// yamlSnapshot is the decoding shape of the file. Article and comment keys
// may be written as plain integers or as quoted strings, so they are read
// as strings and converted.
type yamlSnapshot struct {
	Users         map[string]*model.User    `yaml:"users"`
	Articles      map[string]*model.Article `yaml:"articles"`
	NextArticleID int64                     `yaml:"nextArticleId"`
	Comments      map[string]*model.Comment `yaml:"comments"`
	NextCommentID int64                     `yaml:"nextCommentId"`
}

func (y yamlSnapshot) snapshot() (store.Snapshot, error) {
	articles, err := intKeys(y.Articles)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("articles: %w", err)
	}
	comments, err := intKeys(y.Comments)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("comments: %w", err)
	}

	return store.Snapshot{
		Users:         y.Users,
		Articles:      articles,
		NextArticleID: y.NextArticleID,
		Comments:      comments,
		NextCommentID: y.NextCommentID,
	}, nil
}

// intKeys keeps a nil map nil so Restore leaves that collection alone.
func intKeys[T any](m map[string]*T) (map[int64]*T, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[int64]*T, len(m))
	for k, v := range m {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[id] = v
	}

	return out, nil
}

// YAMLFile keeps the snapshot in a single YAML document.
type YAMLFile struct {
	path string
}

func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

func (f *YAMLFile) Load(_ context.Context) (*store.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", f.path, err)
	}

	var raw yamlSnapshot
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("persist: parse %s: %w", f.path, err)
	}
	snap, err := raw.snapshot()
	if err != nil {
		return nil, fmt.Errorf("persist: parse %s: %w", f.path, err)
	}

	return &snap, nil
}

// Save writes to a temporary file next to the target and renames it into
// place, so readers never see a partial document.
func (f *YAMLFile) Save(_ context.Context, snap store.Snapshot) (err error) {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("persist: encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("persist: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, err = tmp.Write(data)
	err = multierr.Append(err, tmp.Close())
	if err != nil {
		return fmt.Errorf("persist: write %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("persist: replace %s: %w", f.path, err)
	}

	return nil
}

func (f *YAMLFile) Close() error {
	return nil
}
