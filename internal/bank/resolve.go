package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/verte-zerg/tuiquiz/internal/model"
)

var bankExts = []string{".json", ".yaml", ".yml"}

// Source describes where a bank was loaded from.
type Source struct {
	Name string
	Path string
}

// Resolve maps a --bank value to a source. An empty value selects the embedded bank;
// values containing a separator or an extension are treated as file paths.
func Resolve(value, dir string) (Source, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == DefaultName {
		return Source{Name: DefaultName}, nil
	}
	if strings.ContainsRune(value, filepath.Separator) || strings.ContainsRune(value, '/') || filepath.Ext(value) != "" {
		name := strings.TrimSuffix(filepath.Base(value), filepath.Ext(value))
		return Source{Name: name, Path: value}, nil
	}
	for _, ext := range bankExts {
		path := filepath.Join(dir, value+ext)
		if _, err := os.Stat(path); err == nil {
			return Source{Name: value, Path: path}, nil
		} else if !os.IsNotExist(err) {
			return Source{}, fmt.Errorf("failed to stat bank: %w", err)
		}
	}
	return Source{}, fmt.Errorf("bank %q not found in %s", value, dir)
}

// LoadSource loads the questions of a resolved source.
func LoadSource(src Source) ([]model.Question, error) {
	if src.Path == "" {
		return Default()
	}
	questions, err := Load(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load bank %s: %w", src.Path, err)
	}
	return questions, nil
}

// List returns bank names found in dir. A missing dir yields no names.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read bank directory: %w", err)
	}
	seen := map[string]struct{}{}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !isBankExt(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func isBankExt(ext string) bool {
	for _, e := range bankExts {
		if e == ext {
			return true
		}
	}
	return false
}
