package overrides

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"tunesets/internal/tunes"
)

// ErrMalformedOverride reports a token that is not #<digits>[<name>].
var ErrMalformedOverride = errors.New("malformed override token")

var tokenPattern = regexp.MustCompile(`^#(?P<id>[0-9]+)\[(?P<name>[\p{L}\p{N} ']+).*\]`)

// Source names one override file and the album label its links carry.
type Source struct {
	Path  string
	Album string
}

// Parse reads override sets from r and returns their links in file order.
// name identifies the source in errors and on each link.
func Parse(r io.Reader, name, album string) ([]tunes.Link, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var links []tunes.Link
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var prevID string
		for _, token := range strings.Split(line, "/") {
			id, tuneName, err := parseToken(token)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", name, lineNo, err)
			}
			if prevID != "" {
				links = append(links, tunes.Link{
					PrevID:   prevID,
					NextID:   id,
					NextName: tuneName,
					Album:    album,
					Source:   name,
					Line:     lineNo,
				})
			}
			prevID = id
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return links, nil
}

// Load parses the override file described by src.
func Load(src Source) ([]tunes.Link, error) {
	file, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("open overrides: %w", err)
	}
	defer file.Close()
	return Parse(file, filepath.Base(src.Path), src.Album)
}

// LoadAll parses every source in priority order and concatenates the links.
func LoadAll(sources []Source) ([]tunes.Link, error) {
	var all []tunes.Link
	for _, src := range sources {
		links, err := Load(src)
		if err != nil {
			return nil, err
		}
		all = append(all, links...)
	}
	return all, nil
}

func parseToken(token string) (string, string, error) {
	token = strings.TrimSpace(token)
	match := tokenPattern.FindStringSubmatch(norm.NFC.String(token))
	if match == nil {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedOverride, token)
	}
	return match[tokenPattern.SubexpIndex("id")], match[tokenPattern.SubexpIndex("name")], nil
}
