package tunes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrMalformedSeed reports a playlist line that does not carry the expected
// tab-separated fields.
var ErrMalformedSeed = errors.New("malformed seed line")

const seedFieldCount = 7

// SeedTune is one playlist row. Only ID and Title feed the catalog; the other
// columns are kept for display.
type SeedTune struct {
	Rhythm    string
	Title     string
	Structure string
	Key       string
	FirstBars string
	Tags      string
	ID        string
	Line      int
}

// ParseSeed reads a tab-separated playlist: rhythm, title, structure, key,
// first two bars, tags, id.
func ParseSeed(r io.Reader) ([]SeedTune, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []SeedTune
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != seedFieldCount {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrMalformedSeed, lineNo, seedFieldCount, len(fields))
		}
		id := strings.TrimSpace(fields[6])
		if id == "" {
			return nil, fmt.Errorf("%w: line %d: empty tune id", ErrMalformedSeed, lineNo)
		}
		out = append(out, SeedTune{
			Rhythm:    fields[0],
			Title:     norm.NFC.String(strings.TrimSpace(fields[1])),
			Structure: fields[2],
			Key:       fields[3],
			FirstBars: fields[4],
			Tags:      fields[5],
			ID:        id,
			Line:      lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return out, nil
}

// LoadSeed opens and parses the playlist at path.
func LoadSeed(path string) ([]SeedTune, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer file.Close()

	tunes, err := ParseSeed(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tunes, nil
}
