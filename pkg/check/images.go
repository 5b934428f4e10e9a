package check

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Image references are discovered by regex over literal strings only.
// Dynamic or template paths are invisible to this scan; that is a known
// false-negative source, not a correctness bug.
var imageRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)src=["']([^"']*\.(?:jpg|jpeg|png|gif|svg|webp))["']`),
	regexp.MustCompile(`(?i)import[^\n]*from\s+["']([^"']*\.(?:jpg|jpeg|png|gif|svg|webp))["']`),
	regexp.MustCompile(`(?i)require\(["']([^"']*\.(?:jpg|jpeg|png|gif|svg|webp))["']\)`),
	regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']*\.(?:jpg|jpeg|png|gif|svg|webp))["']`),
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".svg": true, ".webp": true,
}

var sourceExtensions = map[string]bool{
	".tsx": true, ".ts": true, ".jsx": true, ".js": true, ".html": true,
}

// largeImageBytes is the size above which an on-disk image draws a warning.
const largeImageBytes = 1 << 20

// ImageRef is one literal image reference found in a source file.
type ImageRef struct {
	File string
	Path string
	Line int
}

// ImageChecker statically scans a source tree for image references and
// cross-checks them against the filesystem.
type ImageChecker struct {
	Root       string   // repository root; referenced paths resolve against it
	SearchDirs []string // dirs scanned for source files, relative to Root
	PublicDirs []string // dirs holding served assets, relative to Root
	Out        io.Writer

	checked  map[string]bool
	errors   []string
	warnings []string
}

func NewImageChecker(root string, out io.Writer) *ImageChecker {
	if out == nil {
		out = os.Stdout
	}
	return &ImageChecker{
		Root:       root,
		SearchDirs: []string{"app", "components", "public"},
		PublicDirs: []string{"public", "assets"},
		Out:        out,
		checked:    map[string]bool{},
	}
}

// FindReferences walks the search dirs and collects every literal image
// reference in the source files.
func (c *ImageChecker) FindReferences() []ImageRef {
	logf(c.Out, sevInfo, "Scanning for image references...")

	var refs []ImageRef
	for _, dir := range c.SearchDirs {
		full := filepath.Join(c.Root, dir)
		if _, err := os.Stat(full); err != nil {
			c.warnings = append(c.warnings, fmt.Sprintf("Directory not found: %s", dir))
			continue
		}
		refs = append(refs, c.scanDir(full)...)
	}
	return refs
}

func (c *ImageChecker) scanDir(dir string) []ImageRef {
	var refs []ImageRef
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !sourceExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		refs = append(refs, c.scanFile(path)...)
		return nil
	})
	return refs
}

func (c *ImageChecker) scanFile(path string) []ImageRef {
	content, err := os.ReadFile(path)
	if err != nil {
		c.warnings = append(c.warnings, fmt.Sprintf("Error reading file %s: %v", path, err))
		return nil
	}

	var refs []ImageRef
	for _, pattern := range imageRefPatterns {
		for _, m := range pattern.FindAllSubmatchIndex(content, -1) {
			imgPath := string(content[m[2]:m[3]])
			line := 1 + strings.Count(string(content[:m[0]]), "\n")
			refs = append(refs, ImageRef{File: path, Path: imgPath, Line: line})
		}
	}
	return refs
}

// CheckImageExists verifies one referenced path against the filesystem.
// Repeated identical reference strings are checked once.
func (c *ImageChecker) CheckImageExists(imagePath string) bool {
	if done, ok := c.checked[imagePath]; ok {
		return done
	}

	full := filepath.Join(c.Root, strings.TrimPrefix(imagePath, "/"))
	if _, err := os.Stat(full); err != nil {
		c.errors = append(c.errors, fmt.Sprintf("Image not found: %s", imagePath))
		c.checked[imagePath] = false
		return false
	}

	if !imageExtensions[strings.ToLower(filepath.Ext(full))] {
		c.warnings = append(c.warnings, fmt.Sprintf("File may not be an image: %s", imagePath))
	}

	c.checked[imagePath] = true
	return true
}

// checkLargeImages warns about any on-disk image above the size threshold.
func (c *ImageChecker) checkLargeImages() {
	logf(c.Out, sevInfo, "Checking image optimization...")
	for _, dir := range c.PublicDirs {
		full := filepath.Join(c.Root, dir)
		if _, err := os.Stat(full); err != nil {
			continue
		}
		_ = filepath.WalkDir(full, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(d.Name()))
			if !imageExtensions[ext] || ext == ".svg" {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.Size() > largeImageBytes {
				sizeMB := float64(info.Size()) / (1024 * 1024)
				c.warnings = append(c.warnings, fmt.Sprintf("Large image detected: %s (%.2fMB)", d.Name(), sizeMB))
			}
			return nil
		})
	}
}

// Run performs the full scan and prints the report.
func (c *ImageChecker) Run() Report {
	logf(c.Out, sevInfo, "🚀 Starting Image Validation...")

	refs := c.FindReferences()
	logf(c.Out, sevInfo, "Found %d image references", len(refs))
	for _, ref := range refs {
		logf(c.Out, sevInfo, "Checking: %s (in %s:%d)", ref.Path, filepath.Base(ref.File), ref.Line)
		c.CheckImageExists(ref.Path)
	}

	c.checkLargeImages()

	printFindings(c.Out, "IMAGE VALIDATION REPORT", c.errors, c.warnings)

	if c.errors == nil {
		c.errors = []string{}
	}
	if c.warnings == nil {
		c.warnings = []string{}
	}
	return Report{
		Errors:   c.errors,
		Warnings: c.warnings,
		Success:  len(c.errors) == 0,
	}
}
