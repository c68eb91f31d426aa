package tunepage

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"tunesets/internal/tunes"
)

// ErrUnexpectedPageStructure reports an adjacency row the parser cannot read.
var ErrUnexpectedPageStructure = errors.New("unexpected page structure")

const (
	followsTableID  = "follows"
	goesIntoTableID = "goesInto"
)

// Adjacency holds the neighbour lists scraped from one tune page.
type Adjacency struct {
	Follows  []tunes.Edge
	Precedes []tunes.Edge
}

// StructureError carries the offending row so operators can see what changed
// on the site.
type StructureError struct {
	Table  string
	Row    int
	Reason string
	HTML   string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: table %q row %d: %s\n%s", ErrUnexpectedPageStructure, e.Table, e.Row, e.Reason, e.HTML)
}

func (e *StructureError) Unwrap() error { return ErrUnexpectedPageStructure }

// ParseAdjacency reads every follows and goesInto table on the page, in
// document order.
func ParseAdjacency(r io.Reader) (Adjacency, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Adjacency{}, fmt.Errorf("parse tune page: %w", err)
	}

	var adj Adjacency
	for _, table := range findAll(doc, "table") {
		var dst *[]tunes.Edge
		switch attr(table, "id") {
		case followsTableID:
			dst = &adj.Follows
		case goesIntoTableID:
			dst = &adj.Precedes
		default:
			continue
		}
		edges, err := parseTable(table)
		if err != nil {
			return Adjacency{}, err
		}
		*dst = append(*dst, edges...)
	}
	return adj, nil
}

func parseTable(table *html.Node) ([]tunes.Edge, error) {
	tableID := attr(table, "id")
	var edges []tunes.Edge
	for i, row := range findAll(table, "tr") {
		cells := findAll(row, "td")
		if len(cells) == 0 {
			continue
		}
		anchors := findAll(cells[0], "a")
		if len(anchors) == 0 {
			return nil, &StructureError{Table: tableID, Row: i, Reason: "no tune anchor in first cell", HTML: renderNode(row)}
		}
		// Rows with several anchors lead with a set link; the tune is second.
		anchor := anchors[0]
		if len(anchors) > 1 {
			anchor = anchors[1]
		}
		id, ok := tuneIDFromHref(attr(anchor, "href"))
		if !ok {
			return nil, &StructureError{Table: tableID, Row: i, Reason: "anchor has no /tune/<id>/ href", HTML: renderNode(row)}
		}
		edge := tunes.Edge{
			NeighborID:   id,
			NeighborName: cleanText(anchor),
		}
		if len(cells) > 1 {
			edge.Album = cleanText(cells[1])
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

func tuneIDFromHref(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) != 2 || parts[0] != "tune" || !isDigits(parts[1]) {
		return "", false
	}
	return parts[1], true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func cleanText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return norm.NFC.String(strings.Join(strings.Fields(sb.String()), " "))
}

func renderNode(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return fmt.Sprintf("<unrenderable %s: %v>", n.Data, err)
	}
	return sb.String()
}
