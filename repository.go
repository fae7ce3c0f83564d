package nebotool

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/internal/logging"
	"github.com/akeil/nebotool/pkg/ink"
	"github.com/akeil/nebotool/pkg/jiix"
)

const (
	collectionExt = ".nebo"
	pagesDir      = "pages"
	objectsDir    = "objects"
	metaFile      = "meta.json"
	inkExt        = ".jiix"
)

// Repository gives access to an export directory.
//
// The export contains one directory per collection:
//
//  <root>/<name>.nebo/pages/<pageID>/meta.json
//  <root>/<name>.nebo/pages/<pageID>/<pageID>.jiix
//  <root>/<name>.nebo/objects/<asset>
//
type Repository struct {
	root string
}

// NewRepository creates a repository for the given export directory.
func NewRepository(root string) (*Repository, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewValidationError("export directory %q does not exist", root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("%q is not a directory", root)
	}

	return &Repository{root: root}, nil
}

// Root is the export directory.
func (r *Repository) Root() string {
	return r.root
}

// Collections lists all collections, sorted by directory name.
func (r *Repository) Collections() ([]*Collection, error) {
	dirs, err := subdirs(r.root)
	if err != nil {
		return nil, err
	}

	l := make([]*Collection, 0, len(dirs))
	for _, d := range dirs {
		l = append(l, &Collection{
			Name: strings.Replace(d, collectionExt, "", -1),
			dir:  filepath.Join(r.root, d),
		})
	}
	return l, nil
}

// Collection is a named group of pages.
type Collection struct {
	// Name is the directory name without the .nebo extension.
	Name string
	dir  string
}

// Dir is the collection directory.
func (c *Collection) Dir() string {
	return c.dir
}

// Pages lists all pages of the collection in directory order and reads
// their metadata. Pages with missing or invalid metadata are skipped with
// a warning.
//
// Pages without a title are assigned a generated title, "unnamed_1",
// "unnamed_2" and so on. If two pages end up with the same output
// filename, the later one gets its ID appended.
func (c *Collection) Pages() ([]*PageRef, error) {
	base := filepath.Join(c.dir, pagesDir)
	dirs, err := subdirs(base)
	if err != nil {
		if errors.IsNotFound(err) {
			logging.Info("Collection %q has no pages", c.Name)
			return []*PageRef{}, nil
		}
		return nil, err
	}

	l := make([]*PageRef, 0, len(dirs))
	unnamed := 0
	for _, id := range dirs {
		p := &PageRef{
			ID:         id,
			Collection: c,
			dir:        filepath.Join(base, id),
		}

		p.Meta, err = ReadMetadata(filepath.Join(p.dir, metaFile))
		if err == nil {
			err = p.Meta.Validate()
		}
		if err != nil {
			logging.Warning("Skip page %q in %q: %v", id, c.Name, err)
			continue
		}

		if p.Meta.HasTitle() {
			p.Title = *p.Meta.Title
		} else {
			unnamed++
			p.Title = fmt.Sprintf("unnamed_%d", unnamed)
		}

		l = append(l, p)
	}

	uniqueNames(l)
	return l, nil
}

// uniqueNames makes sure that no two pages share an output filename.
// Filenames are compared case-insensitive.
func uniqueNames(pages []*PageRef) {
	seen := make(map[string]bool)
	for _, p := range pages {
		key := strings.ToLower(SafeName(p.Title))
		if seen[key] {
			p.name = p.Title + "_" + p.ID
			logging.Info("Duplicate title %q in %q, use %q for page %q", p.Title, p.Collection.Name, p.name, p.ID)
			key = strings.ToLower(SafeName(p.name))
		}
		seen[key] = true
	}
}

// Assets returns the source for images referenced by pages of this
// collection.
func (c *Collection) Assets() ink.AssetSource {
	return ink.DirAssets(filepath.Join(c.dir, objectsDir))
}

// PageRef refers to a single page in a collection.
type PageRef struct {
	ID         string
	Title      string
	Meta       Metadata
	Collection *Collection
	dir        string
	// name replaces the title in the output filename
	name string
}

// InkPath is the path to the ink description of the page.
func (p *PageRef) InkPath() string {
	return filepath.Join(p.dir, p.ID+inkExt)
}

// ReadInk reads the ink description for this page.
func (p *PageRef) ReadInk() (*jiix.Document, error) {
	return jiix.ReadFile(p.InkPath())
}

// Filename is the output filename for the page with the given extension.
func (p *PageRef) Filename(ext string) string {
	if p.name != "" {
		return Filename(p.Collection.Name, p.name, ext)
	}
	return Filename(p.Collection.Name, p.Title, ext)
}

func subdirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("no directory at %q", path)
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
