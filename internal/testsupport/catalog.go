package testsupport

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"tunesets/internal/tunes"
)

// CatalogServer serves tune pages built from adjacency data and counts the
// requests it receives.
type CatalogServer struct {
	*httptest.Server

	mu       sync.Mutex
	pages    map[string]tunes.Entry
	requests []string
}

// NewCatalogServer starts a server for entries and closes it on cleanup.
// Ids without an entry answer 404.
func NewCatalogServer(t testing.TB, entries ...tunes.Entry) *CatalogServer {
	t.Helper()

	cs := &CatalogServer{pages: make(map[string]tunes.Entry, len(entries))}
	for _, entry := range entries {
		cs.pages[entry.Tune.ID] = entry
	}
	cs.Server = httptest.NewServer(http.HandlerFunc(cs.serve))
	t.Cleanup(cs.Close)
	return cs
}

// Requests returns the request paths seen so far.
func (cs *CatalogServer) Requests() []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]string(nil), cs.requests...)
}

func (cs *CatalogServer) serve(w http.ResponseWriter, r *http.Request) {
	cs.mu.Lock()
	cs.requests = append(cs.requests, r.URL.Path)
	cs.mu.Unlock()

	if r.URL.Path == "/" {
		fmt.Fprint(w, "<html><body>catalog</body></html>")
		return
	}
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/tune/"), "/")
	entry, ok := cs.pages[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	fmt.Fprint(w, TunePage(entry))
}

// TunePage renders the follows and goesInto tables the way the catalog site
// lays them out.
func TunePage(entry tunes.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<html><body><h1>%s</h1>\n", html.EscapeString(entry.Tune.Name))
	writeTable(&sb, "follows", entry.Follows)
	writeTable(&sb, "goesInto", entry.Precedes)
	sb.WriteString("</body></html>\n")
	return sb.String()
}

func writeTable(sb *strings.Builder, id string, edges []tunes.Edge) {
	fmt.Fprintf(sb, "<table id=%q>\n<tr><th>Tune</th><th>Album</th></tr>\n", id)
	for _, edge := range edges {
		fmt.Fprintf(sb, "<tr><td><a href=\"/tune/%s/\">%s</a></td><td>%s</td></tr>\n",
			edge.NeighborID, html.EscapeString(edge.NeighborName), html.EscapeString(edge.Album))
	}
	sb.WriteString("</table>\n")
}
