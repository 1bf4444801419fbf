package library

import (
	"fmt"
	"io"
	"strings"
)

// Catalog2Dot outputs the tree structure of a catalog in Graphviz DOT format.
// Borrowed books are filled; missing children show as small empty circles, so
// a degenerate tree is easy to spot.
func Catalog2Dot(c *Catalog, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("strict digraph {\n")
	sb.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	if c.root != nil {
		ids := map[*node]int{}
		nextID := 1
		alloc := func(n *node) int {
			if id, ok := ids[n]; ok {
				return id
			}
			ids[n] = nextID
			nextID++
			return nextID - 1
		}
		var nodelist, edgelist strings.Builder
		stack := []*node{c.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			ID := alloc(n)
			label := fmt.Sprintf("%d\\n%s", n.book.ID, dotEscape(n.book.Title))
			fmt.Fprintf(&nodelist, "\t\"%d\" [label=\"%s\" %s];\n", ID, label, bookDotStyles(n.book))
			for i, child := range []*node{n.left, n.right} {
				if child == nil {
					nilID := -(2*ID + i)
					fmt.Fprintf(&nodelist, "\t\"%d\" %s;\n", nilID, emptyNode())
					fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\";\n", ID, nilID)
					continue
				}
				fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\";\n", ID, alloc(child))
				stack = append(stack, child)
			}
		}
		sb.WriteString(nodelist.String())
		sb.WriteString(edgelist.String())
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func bookDotStyles(b *Book) string {
	if b.Borrowed {
		return ",shape=box,style=filled,fillcolor=lightgrey"
	}
	return ",shape=box"
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
