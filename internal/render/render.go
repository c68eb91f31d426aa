package render

import (
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"tunesets/internal/tunes"
)

// UnknownAlbum is printed in the text listing where no album is known.
const UnknownAlbum = "None"

// DefaultBaseURL is the catalog site tune links point at.
const DefaultBaseURL = "https://www.irishtune.info"

// Text writes one line per chain:
//
//	#id[name, album]/#id[name, album] from_album: album
func Text(w io.Writer, chains []tunes.Chain) error {
	for _, chain := range chains {
		if _, err := io.WriteString(w, TextLine(chain)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// TextLine renders a single chain without the trailing newline.
func TextLine(chain tunes.Chain) string {
	tokens := make([]string, len(chain.Tunes))
	for i, tune := range chain.Tunes {
		tokens[i] = fmt.Sprintf("#%s[%s, %s]", tune.ID, tune.Name, albumLabel(tune.Album))
	}
	return strings.Join(tokens, "/") + " from_album: " + albumLabel(chain.Album)
}

// HTML writes a minimal page with one paragraph per chain. Each tune links to
// its catalog page under baseURL.
func HTML(w io.Writer, chains []tunes.Chain, baseURL string) error {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	var sb strings.Builder
	sb.WriteString("<html>\n")
	for _, chain := range chains {
		anchors := make([]string, len(chain.Tunes))
		for i, tune := range chain.Tunes {
			label := tune.Name
			if tune.Album != "" {
				label = fmt.Sprintf("%s (%s)", tune.Name, tune.Album)
			}
			href := base + "/tune/" + url.PathEscape(tune.ID) + "/"
			anchors[i] = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(href), html.EscapeString(label))
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.Join(anchors, "/"))
		sb.WriteString("</p>\n")
	}
	sb.WriteString("</html>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// Render returns the text listing and HTML page for chains.
func Render(chains []tunes.Chain, baseURL string) (text, page string) {
	var textBuf, htmlBuf strings.Builder
	// strings.Builder never returns a write error.
	_ = Text(&textBuf, chains)
	_ = HTML(&htmlBuf, chains, baseURL)
	return textBuf.String(), htmlBuf.String()
}

func albumLabel(album string) string {
	if album == "" {
		return UnknownAlbum
	}
	return album
}
