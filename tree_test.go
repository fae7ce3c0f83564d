package nebotool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	repo, err := NewRepository(testExport(t))
	require.NoError(t, err)

	root, err := BuildTree(repo)
	require.NoError(t, err)

	assert.True(t, root.IsRoot())
	require.Len(t, root.Children, 2)
	notes := root.Children[0]
	assert.Equal(t, "Notes", notes.Name())
	assert.False(t, notes.IsLeaf())
	require.Len(t, notes.Children, 3)
	assert.True(t, notes.Children[0].IsLeaf())
	assert.Equal(t, []string{"Notes", "Shopping List"}, notes.Children[0].Path())

	count := 0
	err = root.Walk(func(n *Node) error {
		if n.IsLeaf() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestBuildTreeBrokenCollection(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "Good", "g1", `{"pageTitle": "Fine"}`, `{"elements": []}`)
	writePage(t, root, "Bad", "b1", `{"pageTitle": 7}`, `{"elements": []}`)

	repo, err := NewRepository(root)
	require.NoError(t, err)

	tree, err := BuildTree(repo)
	require.NoError(t, err)
	require.Len(t, tree.Children, 2)

	bad, good := tree.Children[0], tree.Children[1]
	assert.Equal(t, "Bad", bad.Name())
	assert.Empty(t, bad.Children)
	require.Len(t, good.Children, 1)
	assert.Equal(t, "Fine", good.Children[0].Name())

	// collections without pages are dropped by filters
	f := tree.Filtered(MatchName("fine"))
	require.Len(t, f.Children, 1)
	assert.Equal(t, "Good", f.Children[0].Name())
}

func TestFiltered(t *testing.T) {
	repo, err := NewRepository(testExport(t))
	require.NoError(t, err)
	root, err := BuildTree(repo)
	require.NoError(t, err)

	f := root.Filtered(MatchName("shopping"))
	require.Len(t, f.Children, 1)
	require.Len(t, f.Children[0].Children, 1)
	assert.Equal(t, "Shopping List", f.Children[0].Children[0].Name())

	// collection name matches all its pages
	f = root.Filtered(MatchName("work"))
	require.Len(t, f.Children, 1)
	assert.Equal(t, "Work", f.Children[0].Name())

	f = root.Filtered(MatchName("nothing like this"))
	assert.Empty(t, f.Children)

	f = root.Filtered()
	assert.Len(t, f.Children, 2)
}

func TestDefaultSort(t *testing.T) {
	root := newNode("")
	for _, name := range []string{"b", "C", "a"} {
		n := newNode(name)
		n.Collection = &Collection{Name: name}
		for _, title := range []string{"z", "y"} {
			p := newNode(title)
			p.Page = &PageRef{Title: title, Collection: n.Collection}
			n.addChild(p)
		}
		root.addChild(n)
	}

	root.Sort(DefaultSort)

	names := make([]string, 0)
	for _, c := range root.Children {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"a", "b", "C"}, names)
	assert.Equal(t, "z", root.Children[0].Children[0].Name())
}

func TestSafeName(t *testing.T) {
	cases := map[string]string{
		"Shopping List": "Shopping List",
		"Café Crème":    "Cafe Creme",
		"a/b\\c":        "a_b_c",
		"what?":         "what_",
		"tab\there":     "tab_here",
		" .. ":          "_",
		"":              "_",
	}
	for in, expected := range cases {
		if out := SafeName(in); out != expected {
			t.Errorf("SafeName(%q): expected %q, got %q", in, expected, out)
		}
	}

	assert.Equal(t, "Notes_unnamed_3.png", Filename("Notes", "unnamed_3", ".png"))
}
