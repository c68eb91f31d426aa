package render

import (
	"strings"
	"testing"

	"tunesets/internal/tunes"
)

func sampleChains() []tunes.Chain {
	return []tunes.Chain{
		{
			Tunes: []tunes.TuneRef{
				{ID: "1", Name: "The Silver Spear", Album: "me"},
				{ID: "3", Name: "Drowsy Maggie", Album: "me"},
			},
			Locked: true,
			Album:  "me",
		},
		{Tunes: []tunes.TuneRef{{ID: "2", Name: "The Mason's Apron"}}},
	}
}

func TestTextLineFormat(t *testing.T) {
	chains := sampleChains()
	if got, want := TextLine(chains[0]), "#1[The Silver Spear, me]/#3[Drowsy Maggie, me] from_album: me"; got != want {
		t.Fatalf("TextLine = %q, want %q", got, want)
	}
	if got, want := TextLine(chains[1]), "#2[The Mason's Apron, None] from_album: None"; got != want {
		t.Fatalf("TextLine = %q, want %q", got, want)
	}
}

func TestHTMLFormat(t *testing.T) {
	var sb strings.Builder
	if err := HTML(&sb, sampleChains(), "https://www.irishtune.info/"); err != nil {
		t.Fatalf("HTML: %v", err)
	}
	want := "<html>\n" +
		`<p><a href="https://www.irishtune.info/tune/1/">The Silver Spear (me)</a>/<a href="https://www.irishtune.info/tune/3/">Drowsy Maggie (me)</a></p>` + "\n" +
		`<p><a href="https://www.irishtune.info/tune/2/">The Mason&#39;s Apron</a></p>` + "\n" +
		"</html>\n"
	if sb.String() != want {
		t.Fatalf("unexpected html:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestHTMLEscapesMarkup(t *testing.T) {
	var sb strings.Builder
	chains := []tunes.Chain{{Tunes: []tunes.TuneRef{{ID: "5", Name: "<b>Bold</b>", Album: "A&B"}}}}
	if err := HTML(&sb, chains, ""); err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(sb.String(), "&lt;b&gt;Bold&lt;/b&gt; (A&amp;B)") {
		t.Fatalf("expected escaped label, got %q", sb.String())
	}
	if !strings.Contains(sb.String(), DefaultBaseURL+"/tune/5/") {
		t.Fatalf("expected default base url, got %q", sb.String())
	}
}

func TestRenderEmptyAndDeterministic(t *testing.T) {
	text, page := Render(nil, "")
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
	if page != "<html>\n</html>\n" {
		t.Fatalf("unexpected empty page %q", page)
	}

	firstText, firstPage := Render(sampleChains(), DefaultBaseURL)
	secondText, secondPage := Render(sampleChains(), DefaultBaseURL)
	if firstText != secondText || firstPage != secondPage {
		t.Fatal("render output differs between identical inputs")
	}
	if strings.Count(firstText, "\n") != 2 {
		t.Fatalf("expected one line per chain, got %q", firstText)
	}
}

func TestSummaryCountsChains(t *testing.T) {
	out := Summary(sampleChains(), Stats{Passes: 3, Merged: 1, Relaxed: true, Converged: true, OverridesApplied: 1, CacheUsed: true})
	for _, fragment := range []string{"Metric", "Sets", "Unmatched tunes", "Curated sets", "cache", "yes"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in summary:\n%s", fragment, out)
		}
	}
}
