// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the article package to disk: an HTML document
// rendered from the Markdown article, the header image (downloaded or
// placeholder), and a YAML metadata file.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/article-engine/pkg/types"
)

// Packager implements the workflow Exporter interface.
type Packager struct {
	cfg    types.ExportConfig
	client *http.Client

	// now is overridable in tests for stable filenames.
	now func() time.Time
}

// NewPackager builds a Packager from cfg.
func NewPackager(cfg types.ExportConfig) *Packager {
	return &Packager{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
		now:    time.Now,
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slug derives a filesystem-safe base name from the topic.
func slug(topic string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(topic), "-")
	s = strings.Trim(s, "-")
	if len(s) > 60 {
		s = s[:60]
	}
	if s == "" {
		s = "article"
	}
	return s
}

// WritePackage writes the configured artifacts for output into dir and
// returns their paths. Any write failure wraps as ExportError; the caller
// keeps the generated content either way.
func (p *Packager) WritePackage(ctx context.Context, output *types.FinalOutput, dir string) (*types.ExportPaths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &types.ExportError{Path: dir, Err: err}
	}

	base := fmt.Sprintf("%s-%s", slug(output.Topic), p.now().Format("20060102-150405"))
	paths := &types.ExportPaths{}

	if p.cfg.ExportDocument {
		docPath := filepath.Join(dir, base+".html")
		if err := p.writeDocument(output, docPath); err != nil {
			return nil, err
		}
		paths.Document = docPath
	}

	if p.cfg.ExportImage {
		imgPath, err := p.writeImage(ctx, output, filepath.Join(dir, base+".jpg"))
		if err != nil {
			return nil, err
		}
		paths.Image = imgPath
	}

	metaPath := filepath.Join(dir, base+".yaml")
	if err := p.writeMetadata(output, paths, metaPath); err != nil {
		return nil, err
	}
	paths.Metadata = metaPath

	return paths, nil
}

// writeDocument renders the article package as a standalone HTML file.
func (p *Packager) writeDocument(output *types.FinalOutput, path string) error {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(output.Article), &body); err != nil {
		return &types.ExportError{Path: path, Err: fmt.Errorf("rendering article: %w", err)}
	}

	var post bytes.Buffer
	if err := goldmark.Convert([]byte(output.LinkedInPost), &post); err != nil {
		return &types.ExportError{Path: path, Err: fmt.Errorf("rendering post: %w", err)}
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(output.Topic))
	b.WriteString("<style>body{max-width:48rem;margin:2rem auto;font-family:Georgia,serif;line-height:1.6;padding:0 1rem}table{border-collapse:collapse}td{border:1px solid #ccc;padding:.3rem .6rem}</style>\n")
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(output.Topic))

	b.WriteString("<h2>Article Information</h2>\n<table>\n")
	rows := [][2]string{
		{"Generated", p.now().Format("2006-01-02 15:04:05")},
		{"Revisions Made", fmt.Sprint(output.RevisionsMade)},
		{"Word Count", fmt.Sprint(len(strings.Fields(output.Article)))},
		{"Character Count", fmt.Sprint(len(output.Article))},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td></tr>\n", r[0], html.EscapeString(r[1]))
	}
	b.WriteString("</table>\n")

	b.WriteString("<h2>Article Content</h2>\n")
	b.Write(body.Bytes())

	b.WriteString("<h2>LinkedIn Post</h2>\n")
	b.Write(post.Bytes())

	if len(output.Hashtags) > 0 {
		fmt.Fprintf(&b, "<h2>Hashtags</h2>\n<p>%s</p>\n", html.EscapeString(strings.Join(output.Hashtags, " ")))
	}
	if len(output.SEOKeywords) > 0 {
		fmt.Fprintf(&b, "<h2>SEO Keywords</h2>\n<p>%s</p>\n", html.EscapeString(strings.Join(output.SEOKeywords, ", ")))
	}
	b.WriteString("</body>\n</html>\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return &types.ExportError{Path: path, Err: err}
	}
	return nil
}

// writeImage downloads the article image to path and returns the path of the
// file actually written. A degraded image URL or a failed download falls back
// to a placeholder file when placeholders are enabled, and to an ExportError
// otherwise.
func (p *Packager) writeImage(ctx context.Context, output *types.FinalOutput, path string) (string, error) {
	degraded := output.ImageURL == "" || strings.HasPrefix(output.ImageURL, types.ImagePlaceholderPrefix)
	if !degraded {
		err := p.download(ctx, output.ImageURL, path)
		if err == nil {
			return path, nil
		}
		if !p.cfg.PlaceholderImages {
			return "", &types.ExportError{Path: path, Err: err}
		}
	} else if !p.cfg.PlaceholderImages {
		return "", &types.ExportError{Path: path, Err: fmt.Errorf("no image available for %q", output.Topic)}
	}
	return p.writePlaceholder(output, path)
}

func (p *Packager) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building image request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading image: status %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("writing image file: %w", err)
	}
	return nil
}

// writePlaceholder records the image prompt in place of the image so the
// package stays complete even when generation or download failed.
func (p *Packager) writePlaceholder(output *types.FinalOutput, path string) (string, error) {
	path = strings.TrimSuffix(path, filepath.Ext(path)) + ".placeholder.txt"
	content := fmt.Sprintf("Placeholder image for: %s\n\nImage prompt:\n%s\n", output.Topic, output.ImagePrompt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", &types.ExportError{Path: path, Err: err}
	}
	return path, nil
}

// packageMetadata is the YAML sidecar written with every package.
type packageMetadata struct {
	Topic                       string             `yaml:"topic"`
	GeneratedAt                 string             `yaml:"generated_at"`
	CritiquePassed              bool               `yaml:"critique_passed"`
	RevisionsMade               int                `yaml:"revisions_made"`
	ResearchCallCount           int                `yaml:"research_calls"`
	AdditionalResearchCallCount int                `yaml:"additional_research_calls"`
	Hashtags                    []string           `yaml:"hashtags,omitempty"`
	SEOKeywords                 []string           `yaml:"seo_keywords,omitempty"`
	Document                    string             `yaml:"document,omitempty"`
	Image                       string             `yaml:"image,omitempty"`
	CallLog                     []types.CallRecord `yaml:"agent_call_log"`
}

func (p *Packager) writeMetadata(output *types.FinalOutput, paths *types.ExportPaths, path string) error {
	meta := packageMetadata{
		Topic:                       output.Topic,
		GeneratedAt:                 p.now().UTC().Format(time.RFC3339),
		CritiquePassed:              output.CritiquePassed,
		RevisionsMade:               output.RevisionsMade,
		ResearchCallCount:           output.ResearchCallCount,
		AdditionalResearchCallCount: output.AdditionalResearchCallCount,
		Hashtags:                    output.Hashtags,
		SEOKeywords:                 output.SEOKeywords,
		Document:                    paths.Document,
		Image:                       paths.Image,
		CallLog:                     output.CallLog,
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return &types.ExportError{Path: path, Err: fmt.Errorf("marshaling metadata: %w", err)}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &types.ExportError{Path: path, Err: err}
	}
	return nil
}
