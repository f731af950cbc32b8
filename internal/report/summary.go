package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
)

// Summary filenames within the results directory.
const (
	SummaryMarkdownFile = "report.md"
	SummaryHTMLFile     = "report.html"
)

// BuildMarkdown renders the run summary as Markdown.
func BuildMarkdown(band BandStats, spin2 Spin2Stats, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("# Validation Report\n\n")
	fmt.Fprintf(&b, "Generated %s.\n\n", generatedAt.Format(time.RFC3339))

	b.WriteString("## Healthy Band\n\n")
	b.WriteString("| Quantity | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total grid points | %d |\n", band.Total)
	fmt.Fprintf(&b, "| Stable points | %d |\n", band.Stable)
	fmt.Fprintf(&b, "| Fraction stable | %.3f |\n\n", band.Fraction)

	b.WriteString("## Spin-2 Structure\n\n")
	b.WriteString("| Quantity | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total samples | %d |\n", spin2.Total)
	fmt.Fprintf(&b, "| F2 > 0 | %d |\n", spin2.Pos)
	fmt.Fprintf(&b, "| F2 < 0 | %d |\n", spin2.Neg)
	fmt.Fprintf(&b, "| F2 ~ 0 | %d |\n", spin2.Zero)
	fmt.Fprintf(&b, "| min F2 | %.6g |\n", spin2.Min)
	fmt.Fprintf(&b, "| max F2 | %.6g |\n", spin2.Max)
	fmt.Fprintf(&b, "| mean F2 | %.6g |\n", spin2.Mean)
	return b.String()
}

// RenderHTML converts the Markdown summary to an HTML document body.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Headings extracts the text of h1/h2 headings from rendered HTML. The daemon
// status page uses these as a lightweight table of contents.
func Headings(htmlContent string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var headings []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "h1" || n.Data == "h2") {
			headings = append(headings, textContent(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return headings, nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// Generate reads both check CSVs from dataDir and writes all report artifacts
// into resultsDir, returning the written paths.
func Generate(dataDir, resultsDir string) ([]string, error) {
	band, err := LoadBandStats(filepath.Join(dataDir, "healthy_band_scan.csv"))
	if err != nil {
		return nil, err
	}
	spin2, err := LoadSpin2Stats(filepath.Join(dataDir, "spin2_F2_samples.csv"))
	if err != nil {
		return nil, err
	}

	var written []string
	path, err := WriteBandTable(resultsDir, band)
	if err != nil {
		return nil, err
	}
	written = append(written, path)

	path, err = WriteSpin2Table(resultsDir, spin2)
	if err != nil {
		return nil, err
	}
	written = append(written, path)

	md := BuildMarkdown(band, spin2, time.Now())
	path, err = writeResult(resultsDir, SummaryMarkdownFile, md)
	if err != nil {
		return nil, err
	}
	written = append(written, path)

	htmlContent, err := RenderHTML(md)
	if err != nil {
		return nil, err
	}
	path, err = writeResult(resultsDir, SummaryHTMLFile, htmlContent)
	if err != nil {
		return nil, err
	}
	written = append(written, path)

	return written, nil
}
