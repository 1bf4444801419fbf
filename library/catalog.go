package library

import "fmt"

// node binds one book into the title-ordered tree.
type node struct {
	book        *Book
	left, right *node
}

// Catalog is an unbalanced binary search tree of books ordered by title.
//
// Titles strictly less than a node's title live in its left subtree,
// everything else (duplicates included) in its right subtree. The tree is
// never rebalanced, so inserting titles in sorted order degrades it to a list.
// Catalog also keeps an index from book id to books, because the tree order
// says nothing about ids.
type Catalog struct {
	root *node
	size int
	byID map[int][]*Book
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[int][]*Book)}
}

// Insert adds a new, available book. Ids are taken as given and are not
// checked for uniqueness; a duplicate title is stored to the right of the
// existing one.
func (c *Catalog) Insert(id int, title, author string) *Book {
	book := &Book{ID: id, Title: title, Author: author}
	n := &node{book: book}
	if c.byID == nil {
		c.byID = make(map[int][]*Book)
	}
	c.byID[id] = append(c.byID[id], book)
	c.size++
	if c.root == nil {
		c.root = n
		return book
	}
	cur := c.root
	for {
		if title < cur.book.Title {
			if cur.left == nil {
				cur.left = n
				return book
			}
			cur = cur.left
		} else {
			if cur.right == nil {
				cur.right = n
				return book
			}
			cur = cur.right
		}
	}
}

// SearchByTitle descends the tree looking for an exact title match. With
// duplicate titles the first match on the path wins, which is the copy
// inserted first.
func (c *Catalog) SearchByTitle(title string) (*Book, bool) {
	if n := c.find(c.root, title); n != nil {
		return n.book, true
	}
	return nil, false
}

// SearchAllByTitle returns every copy of title in insertion order.
func (c *Catalog) SearchAllByTitle(title string) []*Book {
	var books []*Book
	for n := c.find(c.root, title); n != nil; n = c.find(n.right, title) {
		books = append(books, n.book)
	}
	return books
}

func (c *Catalog) find(from *node, title string) *node {
	cur := from
	for cur != nil {
		switch {
		case title == cur.book.Title:
			return cur
		case title < cur.book.Title:
			cur = cur.left
		default:
			cur = cur.right
		}
	}
	return nil
}

// SearchByID returns the first inserted book carrying id.
func (c *Catalog) SearchByID(id int) (*Book, bool) {
	books := c.byID[id]
	if len(books) == 0 {
		return nil, false
	}
	return books[0], true
}

// booksWithID lists every book carrying id, in insertion order.
func (c *Catalog) booksWithID(id int) []*Book {
	return c.byID[id]
}

// ForEach walks the books in title order. Iteration stops early if fn
// returns false.
func (c *Catalog) ForEach(fn func(b *Book) bool) {
	if fn == nil {
		return
	}
	var stack []*node
	cur := c.root
	for cur != nil || len(stack) > 0 {
		for cur != nil {
			stack = append(stack, cur)
			cur = cur.left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur.book) {
			return
		}
		cur = cur.right
	}
}

// DisplayAll lists every book in title order.
func (c *Catalog) DisplayAll() []BookView {
	views := make([]BookView, 0, c.size)
	c.ForEach(func(b *Book) bool {
		views = append(views, b.View())
		return true
	})
	return views
}

// Len is the number of books in the catalog.
func (c *Catalog) Len() int { return c.size }

// Height is the number of nodes on the longest root-to-leaf path.
func (c *Catalog) Height() int {
	if c.root == nil {
		return 0
	}
	height := 0
	level := []*node{c.root}
	for len(level) > 0 {
		height++
		var next []*node
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}
	return height
}

// Check validates the ordering invariant of the tree and the consistency of
// the id index.
func (c *Catalog) Check() error {
	type frame struct {
		n      *node
		lo, hi *string // lo inclusive, hi exclusive
	}
	count := 0
	stack := []frame{}
	if c.root != nil {
		stack = append(stack, frame{n: c.root})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		title := f.n.book.Title
		if f.lo != nil && title < *f.lo {
			return fmt.Errorf("%w: %q sorts before lower bound %q", ErrCorruptCatalog, title, *f.lo)
		}
		if f.hi != nil && title >= *f.hi {
			return fmt.Errorf("%w: %q not below upper bound %q", ErrCorruptCatalog, title, *f.hi)
		}
		if f.n.left != nil {
			stack = append(stack, frame{n: f.n.left, lo: f.lo, hi: &f.n.book.Title})
		}
		if f.n.right != nil {
			stack = append(stack, frame{n: f.n.right, lo: &f.n.book.Title, hi: f.hi})
		}
	}
	if count != c.size {
		return fmt.Errorf("%w: counted %d nodes, size is %d", ErrCorruptCatalog, count, c.size)
	}
	indexed := 0
	for _, books := range c.byID {
		indexed += len(books)
	}
	if indexed != c.size {
		return fmt.Errorf("%w: id index holds %d books, size is %d", ErrCorruptCatalog, indexed, c.size)
	}
	return nil
}
