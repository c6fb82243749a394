package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/dmitrymomot/hubmail/pkg/sanitizer"
)

// ctaPrefix opens the call-to-action syntax: [!cta|Label](URL).
const (
	ctaPrefix    = "[!cta|"
	ctaClassName = sanitizer.CallToActionClass
)

// KindCallToAction is the node kind for CallToActionNode.
var KindCallToAction = ast.NewNodeKind("CallToAction")

// CallToActionNode is a link rendered as a styled call-to-action anchor.
type CallToActionNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

func (n *CallToActionNode) Kind() ast.NodeKind { return KindCallToAction }

func (n *CallToActionNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL":   string(n.URL),
		"Label": string(n.Label),
	}, nil)
}

type ctaParser struct{}

func (ctaParser) Trigger() []byte { return []byte{'['} }

func (ctaParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, []byte(ctaPrefix)) {
		return nil
	}

	rest := line[len(ctaPrefix):]
	labelEnd := bytes.IndexByte(rest, ']')
	if labelEnd < 0 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != '(' {
		return nil
	}

	target := rest[labelEnd+2:]
	urlEnd := bytes.IndexByte(target, ')')
	if urlEnd < 0 {
		return nil
	}

	block.Advance(len(ctaPrefix) + labelEnd + 2 + urlEnd + 1)

	return &CallToActionNode{
		Label: rest[:labelEnd],
		URL:   target[:urlEnd],
	}
}

type ctaRenderer struct {
	html.Config
}

func (r *ctaRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCallToAction, r.render)
}

func (r *ctaRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*CallToActionNode)
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.URL, true)))
	_, _ = w.WriteString(`" class="` + ctaClassName + `">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)

	return ast.WalkContinue, nil
}

type ctaExtension struct{}

func (ctaExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(ctaParser{}, 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&ctaRenderer{Config: html.NewConfig()}, 50),
	))
}

// NewCallToActionExtension returns a goldmark extension for [!cta|Label](URL) links.
func NewCallToActionExtension() goldmark.Extender {
	return ctaExtension{}
}
