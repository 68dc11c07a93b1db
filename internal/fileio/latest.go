package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileInfo: найденный файл и время его изменения.
type FileInfo struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
}

// LatestMatching возвращает самый свежий (по mtime) файл, подходящий под glob-шаблон.
// Временные файлы Excel ("~$...") пропускаются. При равном mtime побеждает имя позже по алфавиту.
func LatestMatching(pattern string) (FileInfo, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return FileInfo{}, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	var best FileInfo
	for _, p := range matches {
		if len(filepath.Base(p)) > 1 && filepath.Base(p)[:2] == "~$" {
			continue
		}
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			continue
		}
		mt := st.ModTime()
		if best.Path == "" || mt.After(best.ModTime) || (mt.Equal(best.ModTime) && p > best.Path) {
			best = FileInfo{Path: p, ModTime: mt}
		}
	}
	if best.Path == "" {
		return FileInfo{}, fmt.Errorf("no files match %q", pattern)
	}
	return best, nil
}

func Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{Path: path, ModTime: st.ModTime()}, nil
}
