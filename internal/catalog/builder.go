// Package catalog builds the item catalogue from YAML item definitions.
package catalog

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

// SourceError records a source file that could not be read
type SourceError struct {
	File string
	Err  error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// Report summarises a build
type Report struct {
	Files            int
	Failed           []SourceError
	Items            int
	Skipped          map[SkipReason]int
	UnresolvedModels []string
	// Dropped lists ids of records that matched no category of the schema
	// while misc was missing too
	Dropped []string
}

// SkippedTotal returns the number of entries that produced no record
func (r Report) SkippedTotal() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// Builder assembles a catalogue from source files
type Builder struct {
	categories []string
	resolver   *Resolver

	catalogue *models.Catalogue
	report    Report
}

// NewBuilder creates a builder for the given category schema. resolver may
// be nil to skip reading model files.
func NewBuilder(categories []string, resolver *Resolver) *Builder {
	b := &Builder{categories: categories, resolver: resolver}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.catalogue = models.NewCatalogue(b.categories)
	b.report = Report{Skipped: make(map[SkipReason]int)}
}

// Build runs a fresh build over dir. The error is non-nil only when dir
// cannot be listed.
func (b *Builder) Build(dir string) (*models.Catalogue, Report, error) {
	b.reset()
	if err := b.ProcessDir(dir); err != nil {
		return b.catalogue, b.report, err
	}
	return b.catalogue, b.report, nil
}

// ProcessDir processes every source file in dir. Broken files are logged,
// recorded in the report and skipped.
func (b *Builder) ProcessDir(dir string) error {
	files, err := ListSources(dir)
	if err != nil {
		return err
	}

	for _, path := range files {
		if err := b.ProcessFile(path); err != nil {
			log.Warn("skipping source file", "file", filepath.Base(path), "error", err)
			b.report.Failed = append(b.report.Failed, SourceError{File: filepath.Base(path), Err: err})
		}
	}
	return nil
}

// ProcessFile adds the items of one source file to the catalogue
func (b *Builder) ProcessFile(path string) error {
	filename := filepath.Base(path)
	log.Info("processing source file", "file", filename)
	b.report.Files++

	root, err := LoadSource(path)
	if err != nil {
		return err
	}

	for _, p := range mappingPairs(root) {
		id := keyString(p[0])
		out := BuildItem(id, p[1], filename, b.resolver)
		if out.Skipped() {
			log.Debug("skipping entry", "file", filename, "id", id, "reason", out.Skip)
			b.report.Skipped[out.Skip]++
			continue
		}

		b.report.Items++
		if !out.ModelResolved {
			b.report.UnresolvedModels = append(b.report.UnresolvedModels, out.Item.CustomModel)
		}
		b.file(out)
	}
	return nil
}

// file appends the record to each of its categories, falling back to misc
// for categories outside the schema
func (b *Builder) file(out Outcome) {
	for _, category := range out.Categories {
		if b.catalogue.Add(category, out.Item) {
			continue
		}
		if b.catalogue.Add(models.CategoryMisc, out.Item) {
			continue
		}
		log.Warn("dropping item, no category to file it under", "id", out.Item.ID, "category", category)
		b.report.Dropped = append(b.report.Dropped, out.Item.ID)
	}
}

// SkipReasons returns the reasons present in the report, sorted
func (r Report) SkipReasons() []SkipReason {
	reasons := make([]SkipReason, 0, len(r.Skipped))
	for reason := range r.Skipped {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}
