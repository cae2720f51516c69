// Package fonts finds UI font files by family name under the asset directories.
package fonts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no font file matches.
var ErrNotFound = errors.New("fonts: no matching font file")

// Exts are the font file extensions raylib loads.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns the directories searched by default, relative to the working directory.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns the paths of all font files under dir, relative to dir and with
// forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

// Find returns the first font file under dirs whose relative path contains name,
// ignoring case, spaces, dashes and underscores. A "Regular" cut wins over other
// weights of the same family. name may also be a direct path to a font file.
func Find(dirs []string, name string) (string, error) {
	if isFont(name) {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	norm := normalize(strings.TrimSuffix(name, filepath.Ext(name)))
	if norm == "" {
		return "", ErrNotFound
	}
	var first string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if !strings.Contains(normalize(rel), norm) {
				continue
			}
			full := filepath.Join(base, filepath.FromSlash(rel))
			if strings.Contains(strings.ToLower(rel), "regular") {
				return full, nil
			}
			if first == "" {
				first = full
			}
		}
	}
	if first == "" {
		return "", ErrNotFound
	}
	return first, nil
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}
