// Package resources copies the class file and images a document needs next
// to its .tex output, so latexmk finds them from the output directory.
package resources

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-md2tex/internal/fileutil"
)

// ErrCopyResource indicates a resource existed but could not be copied.
var ErrCopyResource = errors.New("failed to copy resource")

// ImageDir is the subdirectory of the output directory receiving images.
// Markdown sources reference images as "doc/figure.png", so the layout is
// recreated under the output directory.
const ImageDir = "doc"

// classExt is the extension of LaTeX class files.
const classExt = ".cls"

// imageExtensions are the files copied into ImageDir (compared lower-cased).
var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".pdf":  {},
	".svg":  {},
}

// Report lists what Copy placed in the output directory.
type Report struct {
	Class  string   // Destination of the class file, empty when none was found
	Images []string // Destinations of copied images, sorted
}

// ClassCopied reports whether a class file was copied.
func (r Report) ClassCopied() bool {
	return r.Class != ""
}

// Copy copies <template>.cls from srcDir into outDir and every image of
// srcDir (non-recursive) into outDir/doc. A missing srcDir or class file is
// not an error: the document may use a class installed in the TeX tree.
// Copying a directory onto itself is skipped.
func Copy(srcDir, outDir, template string) (Report, error) {
	var report Report
	if srcDir == "" || !fileutil.DirExists(srcDir) {
		return report, nil
	}

	if template != "" && !strings.ContainsAny(template, `/\`) {
		src := filepath.Join(srcDir, template+classExt)
		if fileutil.FileExists(src) {
			dst := filepath.Join(outDir, template+classExt)
			if err := copyUnlessSame(src, dst); err != nil {
				return report, err
			}
			report.Class = dst
		}
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return report, fmt.Errorf("%w: reading %s: %v", ErrCopyResource, srcDir, err)
	}

	imageDir := filepath.Join(outDir, ImageDir)
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		if len(report.Images) == 0 {
			if err := os.MkdirAll(imageDir, 0o750); err != nil {
				return report, fmt.Errorf("%w: creating %s: %v", ErrCopyResource, imageDir, err)
			}
		}
		dst := filepath.Join(imageDir, entry.Name())
		if err := copyUnlessSame(filepath.Join(srcDir, entry.Name()), dst); err != nil {
			return report, err
		}
		report.Images = append(report.Images, dst)
	}

	slices.Sort(report.Images)
	return report, nil
}

// IsImage reports whether name has one of the copied image extensions.
func IsImage(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ListClasses returns the sorted stems of the .cls files in dir.
// A missing dir yields an empty, non-nil list.
func ListClasses(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	classes := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != classExt {
			continue
		}
		classes = append(classes, strings.TrimSuffix(name, classExt))
	}
	slices.Sort(classes)
	return classes, nil
}

// copyUnlessSame copies src to dst unless both name the same file.
func copyUnlessSame(src, dst string) error {
	if same(src, dst) {
		return nil
	}
	if err := fileutil.CopyFile(src, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCopyResource, src, err)
	}
	return nil
}

func same(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
