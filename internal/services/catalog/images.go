package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ImageExtensions lists the file extensions ScanImages accepts
var ImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".avif": {},
}

// ScanImages lists the image files directly inside dir in natural,
// case-insensitive order (2 before 10). Hidden files are skipped.
func ScanImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, ok := ImageExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		files = append(files, name)
	}

	SortNatural(files)
	return files, nil
}

// SortNatural sorts names with numeric runs compared by value, ignoring case
// and diacritics.
func SortNatural(names []string) {
	c := collate.New(language.Und, collate.Numeric, collate.IgnoreCase, collate.IgnoreDiacritics)
	c.SortStrings(names)
}
