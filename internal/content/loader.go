package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned by Get when no record exists for a slug.
var ErrNotFound = errors.New("content: deliverable not found")

// Extensions lists the record file extensions, in lookup priority order.
var Extensions = []string{".mdx", ".md"}

// Store reads deliverable records from a directory.
type Store struct {
	// Dir is the content directory.
	Dir string
	// Exclude lists file names inside Dir that are not records (the commit log).
	Exclude []string
	// OnSkip is called for every file that could not be parsed. Optional.
	OnSkip func(path string, err error)
}

// NewStore returns a Store over dir excluding the given file names.
func NewStore(dir string, exclude ...string) *Store {
	return &Store{Dir: dir, Exclude: exclude}
}

// All returns every parseable record sorted by title (case-insensitive),
// then slug. A missing directory yields no records and no error.
func (s *Store) All() ([]Deliverable, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Deliverable{}, nil
		}
		return nil, fmt.Errorf("reading content directory %s: %w", s.Dir, err)
	}

	// One file per slug; .mdx wins over .md like in Get.
	files := make(map[string]string, len(entries))
	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() || s.excluded(entry.Name()) {
			continue
		}
		slug, rank, ok := slugOf(entry.Name())
		if !ok {
			continue
		}
		if prev, dup := files[slug]; dup {
			if _, prevRank, _ := slugOf(prev); prevRank <= rank {
				continue
			}
		} else {
			slugs = append(slugs, slug)
		}
		files[slug] = entry.Name()
	}

	deliverables := make([]Deliverable, 0, len(slugs))
	for _, slug := range slugs {
		path := filepath.Join(s.Dir, files[slug])
		d, err := readRecord(path, slug)
		if err != nil {
			s.skip(path, err)
			continue
		}
		deliverables = append(deliverables, d)
	}

	SortByTitle(deliverables)
	return deliverables, nil
}

// Get returns the record with the given slug or ErrNotFound.
func (s *Store) Get(slug string) (Deliverable, error) {
	if !validSlug(slug) {
		return Deliverable{}, ErrNotFound
	}

	for _, ext := range Extensions {
		name := slug + ext
		if s.excluded(name) {
			continue
		}
		path := filepath.Join(s.Dir, name)
		d, err := readRecord(path, slug)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Deliverable{}, err
		}
		return d, nil
	}

	return Deliverable{}, ErrNotFound
}

// ReadFile returns the raw text of a non-record file in the content directory.
// A missing file yields an empty string and no error.
func (s *Store) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

func (s *Store) excluded(name string) bool {
	for _, ex := range s.Exclude {
		if ex == name {
			return true
		}
	}
	return false
}

func (s *Store) skip(path string, err error) {
	if s.OnSkip != nil {
		s.OnSkip(path, err)
	}
}

func readRecord(path, slug string) (Deliverable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Deliverable{}, err
	}
	fm, body, err := ParseFrontMatter(raw)
	if err != nil {
		return Deliverable{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return Deliverable{Slug: slug, Frontmatter: fm, Content: body}, nil
}

// slugOf returns the slug of a record file name and the priority of its
// extension, or false for other files.
func slugOf(name string) (string, int, bool) {
	for rank, ext := range Extensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return strings.TrimSuffix(name, ext), rank, true
		}
	}
	return "", 0, false
}

// validSlug rejects slugs that could escape the content directory.
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`) && !strings.Contains(slug, "..")
}

// SortByTitle orders records by lower-cased title, then slug.
func SortByTitle(ds []Deliverable) {
	sort.SliceStable(ds, func(i, j int) bool {
		ti, tj := strings.ToLower(ds[i].Frontmatter.Title), strings.ToLower(ds[j].Frontmatter.Title)
		if ti != tj {
			return ti < tj
		}
		return ds[i].Slug < ds[j].Slug
	})
}
