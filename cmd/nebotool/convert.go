package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/akeil/nebotool"
	"github.com/akeil/nebotool/internal/fs"
	"github.com/akeil/nebotool/pkg/ink"
	"github.com/akeil/nebotool/pkg/render"
)

// status prints progress lines with colored marks.
type status struct {
	out *termenv.Output
}

func newStatus() *status {
	return &status{out: termenv.NewOutput(os.Stdout)}
}

func (s *status) mark(m, color string) string {
	return s.out.String(m).Foreground(s.out.Color(color)).String()
}

func (s *status) pending(msg string, v ...interface{}) {
	fmt.Printf("%v %v\n", s.mark(ellipsis, "8"), fmt.Sprintf(msg, v...))
}

func (s *status) ok(msg string, v ...interface{}) {
	fmt.Printf("%v %v\n", s.mark(checkmark, "2"), fmt.Sprintf(msg, v...))
}

func (s *status) failed(msg string, v ...interface{}) {
	fmt.Printf("%v %v\n", s.mark(crossmark, "1"), fmt.Sprintf(msg, v...))
}

func doConvert(s settings, root, match string, perCollection bool) error {
	opts, err := s.options()
	if err != nil {
		return err
	}

	repo, err := nebotool.NewRepository(root)
	if err != nil {
		return err
	}

	tree, err := nebotool.BuildTree(repo)
	if err != nil {
		return err
	}
	tree = tree.Filtered(nebotool.MatchName(match))
	if len(tree.Children) == 0 {
		fmt.Printf("No matching pages for %q\n", match)
		return nil
	}
	tree.Sort(nebotool.DefaultSort)

	outDir, err := s.outputDir()
	if err != nil {
		return err
	}

	st := newStatus()
	if perCollection {
		return convertCollections(st, tree, opts, outDir, s.Jobs)
	}

	sink, err := render.NewSink(s.Format)
	if err != nil {
		return err
	}
	return convertPages(st, tree, sink, opts, outDir, s.Jobs)
}

// convertPages converts all pages below the given node, each into its own
// output file. A failed page does not stop the others.
func convertPages(st *status, tree *nebotool.Node, sink render.Sink, opts ink.Options, outDir string, jobs int) error {
	var total, failed int32

	var group errgroup.Group
	group.SetLimit(jobs)
	tree.Walk(func(n *nebotool.Node) error {
		if !n.IsLeaf() {
			return nil
		}
		total++
		p := n.Page
		group.Go(func() error {
			err := convertPage(st, p, sink, opts, outDir)
			if err != nil {
				atomic.AddInt32(&failed, 1)
			}
			return nil
		})
		return nil
	})
	group.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, total)
	}
	return nil
}

func convertPage(st *status, p *nebotool.PageRef, sink render.Sink, opts ink.Options, outDir string) error {
	name := p.Collection.Name + " / " + p.Title
	st.pending("convert %q", name)

	path := filepath.Join(outDir, p.Filename(sink.Ext()))
	err := fs.WriteFile(path, func(w io.Writer) error {
		return nebotool.ConvertPage(p, sink, opts, w)
	})
	if err != nil {
		st.failed("Failed to convert %q: %v", name, err)
		return err
	}

	st.ok("page %q saved as %q", name, path)
	return nil
}

// convertCollections writes one PDF document for each collection.
// Pages that cannot be converted are left out.
func convertCollections(st *status, tree *nebotool.Node, opts ink.Options, outDir string, jobs int) error {
	var failed int32

	var group errgroup.Group
	group.SetLimit(jobs)
	for _, c := range tree.Children {
		c := c
		group.Go(func() error {
			n, err := convertCollection(st, c, opts, outDir)
			if err != nil {
				st.failed("Failed to convert collection %q: %v", c.Name(), err)
				atomic.AddInt32(&failed, 1)
			}
			atomic.AddInt32(&failed, int32(n))
			return nil
		})
	}
	group.Wait()

	if failed > 0 {
		return fmt.Errorf("%d pages or collections failed", failed)
	}
	return nil
}

// convertCollection returns the number of pages that could not be converted.
func convertCollection(st *status, c *nebotool.Node, opts ink.Options, outDir string) (int, error) {
	st.pending("convert collection %q", c.Name())

	failed := 0
	sheets := make([]render.Sheet, 0, len(c.Children))
	for _, n := range c.Children {
		page, cfg, err := nebotool.LoadPage(n.Page, opts)
		if err != nil {
			st.failed("Skip page %q: %v", n.Name(), err)
			failed++
			continue
		}
		sheets = append(sheets, render.Sheet{Page: page, Config: cfg})
	}
	if len(sheets) == 0 {
		return failed, fmt.Errorf("no pages to convert")
	}

	path := filepath.Join(outDir, nebotool.SafeName(c.Name())+".pdf")
	err := fs.WriteFile(path, func(w io.Writer) error {
		return render.CollectionPDF(c.Name(), sheets, w)
	})
	if err != nil {
		return failed, err
	}

	count, err := countPages(path)
	if err != nil {
		return failed, err
	}
	if count != len(sheets) {
		return failed, fmt.Errorf("expected %d pages in %q, found %d", len(sheets), path, count)
	}

	st.ok("collection %q saved as %q (%d pages)", c.Name(), path, count)
	return failed, nil
}

func countPages(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return render.CountPages(f)
}
