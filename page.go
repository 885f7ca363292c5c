package vnest

import (
	"log/slog"
	"sort"

	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/head"
	"github.com/vnest-dev/vnest/pkg/markup"
	"github.com/vnest-dev/vnest/pkg/reactive"
	"github.com/vnest-dev/vnest/pkg/style"
	"github.com/vnest-dev/vnest/pkg/vdom"
)

// PageClass is the class of the container element every page renders into.
const PageClass = "vNestPage"

// Page bundles the per-page state: the container, the reconciler's previous
// tree, the materializer's bindings and the rule store. Pages sharing one
// document are independent.
//
// A Page is not safe for concurrent use; the document it wraps is not
// either.
type Page struct {
	doc    *dom.Document
	root   *dom.Node
	render markup.Renderer
	logger *slog.Logger

	mat    *vdom.Materializer
	rec    *vdom.Reconciler
	styles *style.Store
	head   *head.Synchronizer
}

// Option configures a Page.
type Option func(*pageOptions)

type pageOptions struct {
	render markup.Renderer
	logger *slog.Logger
	mount  bool
}

// WithMarkup sets the renderer used for textContent and innerHTML.
// Defaults to markup.Markdown.
func WithMarkup(r markup.Renderer) Option {
	return func(o *pageOptions) { o.render = r }
}

// WithLogger sets the logger passed to every page component.
func WithLogger(l *slog.Logger) Option {
	return func(o *pageOptions) { o.logger = l }
}

// WithoutMount leaves the page container detached. The caller inserts
// Root() where it wants.
func WithoutMount() Option {
	return func(o *pageOptions) { o.mount = false }
}

// CreatePage creates a page container (a div with class vNestPage) and,
// unless WithoutMount is given, appends it to the document body.
func CreatePage(doc *dom.Document, opts ...Option) *Page {
	o := pageOptions{mount: true}
	for _, opt := range opts {
		opt(&o)
	}
	render := markup.Or(o.render)
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	root := doc.CreateElement("div")
	root.SetClassName(PageClass)
	if o.mount {
		if body := doc.Body(); body != nil {
			_ = body.AppendChild(root)
		} else {
			logger.Warn("document has no body; page left unmounted")
		}
	}

	p := &Page{
		doc:    doc,
		root:   root,
		render: render,
		logger: logger.With("component", "page"),
		mat:    vdom.NewMaterializer(doc, render),
		rec:    vdom.NewReconciler(root, render),
		styles: style.NewStore(doc),
		head:   head.New(doc),
	}
	p.mat.SetLogger(logger.With("component", "materializer"))
	p.rec.SetLogger(logger.With("component", "reconciler"))
	p.styles.SetLogger(logger.With("component", "style"))
	p.head.SetLogger(logger.With("component", "head"))
	return p
}

// Document returns the document the page renders into.
func (p *Page) Document() *dom.Document { return p.doc }

// Root returns the page container.
func (p *Page) Root() *dom.Node { return p.root }

// Reconciler returns the page's reconciler.
func (p *Page) Reconciler() *vdom.Reconciler { return p.rec }

// Materializer returns the page's materializer.
func (p *Page) Materializer() *vdom.Materializer { return p.mat }

// Styles returns the page's rule store.
func (p *Page) Styles() *style.Store { return p.styles }

// CreateElement builds a live element whose signal-valued properties stay
// bound. See vdom.Materializer.CreateElement.
func (p *Page) CreateElement(tag string, props Props, children ...any) *dom.Node {
	return p.mat.CreateElement(tag, props, children...)
}

// Render reconciles the page container against forest.
func (p *Page) Render(forest ...*VNode) error {
	return p.rec.Render(forest...)
}

// ModifyProperty sets properties on the element with the given id. A nil
// value writes "". An unknown id is a no-op.
func (p *Page) ModifyProperty(id string, props Props) {
	el := p.doc.GetElementByID(id)
	if el == nil {
		p.logger.Debug("modifyProperty: no element", "id", id)
		return
	}
	for _, key := range sortedKeys(props) {
		v := reactive.Resolve(props[key])
		if key == vdom.PropStyle {
			if decls, ok := toDecls(v); ok {
				style.Apply(el.Style(), decls)
				continue
			}
		}
		if v == nil {
			v = ""
		}
		el.SetProperty(key, v)
	}
}

// IDStyle sets inline style on the element with the given id.
func (p *Page) IDStyle(id string, decls Decls) {
	p.styles.IDStyle(id, decls)
}

// ClassStyle merges decls into the rule for ".className".
func (p *Page) ClassStyle(className string, decls Decls) error {
	return p.styles.ClassStyle(className, decls)
}

// PageStyle merges decls into the rule for the page container class.
func (p *Page) PageStyle(decls Decls) error {
	return p.styles.PageStyle(decls)
}

// CustomStyle merges decls into the rule for selector.
func (p *Page) CustomStyle(selector string, decls Decls) error {
	return p.styles.CustomStyle(selector, decls)
}

// DocStyle merges decls into the rule for the document body.
func (p *Page) DocStyle(decls Decls) error {
	return p.styles.DocStyle(decls)
}

// ModifyHead applies head metadata.
func (p *Page) ModifyHead(props HeadProps) {
	p.head.Modify(props)
}

// Dispose releases every binding made through CreateElement.
func (p *Page) Dispose() {
	p.mat.Dispose()
}

func toDecls(v any) (style.Decls, bool) {
	switch m := v.(type) {
	case style.Decls:
		return m, true
	case vdom.Style:
		return style.Decls(m), true
	case map[string]any:
		return style.Decls(m), true
	case map[string]string:
		out := make(style.Decls, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func sortedKeys(m Props) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
