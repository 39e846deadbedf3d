package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// robotExtensions are the suffixes picked up when walking directories.
// Explicitly named files are taken as-is.
var robotExtensions = []string{".robot", ".resource"}

func hasRobotExtension(path string) bool {
	for _, ext := range robotExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// CollectFiles expands the argument paths into a sorted, de-duplicated list of
// Robot Framework files. Directories are walked recursively; the exclude
// pattern (optional) filters both walked and explicitly named files.
func CollectFiles(paths []string, exclude *regexp.Regexp) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.ToSlash(filepath.Clean(path))
		if exclude != nil && exclude.MatchString(path) {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && hasRobotExtension(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// deterministic processing order
	sort.Strings(files)
	return files, nil
}
