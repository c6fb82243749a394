package mailer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/hubmail/pkg/sanitizer"
)

// ContentFormat selects how custom content is prepared before it is sent.
type ContentFormat string

const (
	// FormatText sends content as is.
	FormatText ContentFormat = "text"
	// FormatMarkdown converts content from markdown to sanitized HTML.
	FormatMarkdown ContentFormat = "markdown"
	// FormatHTML sanitizes content as HTML.
	FormatHTML ContentFormat = "html"
)

// Renderer prepares custom content for the template's content property.
// It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	format ContentFormat
}

// NewRenderer creates a renderer for format. An empty format means FormatText.
func NewRenderer(format ContentFormat) (*Renderer, error) {
	switch ContentFormat(strings.ToLower(string(format))) {
	case FormatText, "":
		return &Renderer{format: FormatText}, nil
	case FormatMarkdown:
		return &Renderer{
			format: FormatMarkdown,
			md:     goldmark.New(goldmark.WithExtensions(NewCallToActionExtension())),
		}, nil
	case FormatHTML:
		return &Renderer{format: FormatHTML}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Format returns the renderer's content format.
func (r *Renderer) Format() ContentFormat { return r.format }

// Render converts content according to the renderer's format.
func (r *Renderer) Render(content string) (string, error) {
	switch r.format {
	case FormatMarkdown:
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
		}
		return sanitizer.EmailHTML(buf.String()), nil
	case FormatHTML:
		return sanitizer.EmailHTML(content), nil
	default:
		return content, nil
	}
}
