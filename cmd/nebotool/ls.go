package main

import (
	"fmt"

	"github.com/akeil/nebotool"
)

func doLs(root, format, match string) error {
	repo, err := nebotool.NewRepository(root)
	if err != nil {
		return err
	}

	tree, err := nebotool.BuildTree(repo)
	if err != nil {
		return err
	}

	filters := make([]nebotool.NodeFilter, 0)
	if match != "" {
		filters = append(filters, nebotool.MatchName(match))
	}
	tree = tree.Filtered(filters...)

	if len(tree.Children) == 0 {
		fmt.Println("Found no matching pages.")
		return nil
	}

	tree.Sort(nebotool.DefaultSort)

	fmt.Println("Collections")
	fmt.Println("-----------")

	switch format {
	case "tree":
		showTree(tree, 0)
	case "list":
		showList(tree)
	default:
		return fmt.Errorf("unsupported format, choose one of 'tree', 'list'")
	}

	return nil
}

func showList(n *nebotool.Node) {
	show := func(n *nebotool.Node) error {
		if !n.IsLeaf() {
			return nil
		}

		p := n.Page
		fmt.Printf("%-6v | %v / %v  (%v)\n", p.Meta.Pattern, p.Collection.Name, p.Title, p.ID)
		return nil
	}
	n.Walk(show)
}

func showTree(n *nebotool.Node, level int) {
	if level > 0 {
		for i := 1; i < level; i++ {
			fmt.Print("  ")
		}

		if n.IsLeaf() {
			fmt.Print("- ")
		} else {
			fmt.Print("+ ")
		}

		fmt.Print(n.Name())
		fmt.Println()
	}

	if !n.IsLeaf() {
		for _, c := range n.Children {
			showTree(c, level+1)
		}
	}
}
