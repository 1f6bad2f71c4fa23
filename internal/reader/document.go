package reader

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"docview/internal/model"
)

const (
	docxDocumentPart  = "word/document.xml"
	docxNumberingPart = "word/numbering.xml"
	docxStylesPart    = "word/styles.xml"
	docxRelsPart      = "word/_rels/document.xml.rels"
)

var (
	errMissingDocumentPart = errors.New("word/document.xml not found")
	errMissingBody         = errors.New("document body not found")

	headingStylePattern = regexp.MustCompile(`(?i)^heading\s*([1-6])$`)
	headingAtoms        = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}
)

// DocumentReader converts a word-processor document into an HTML fragment of
// paragraphs, headings, lists, tables and links. All document text goes
// through the HTML renderer, which escapes it.
type DocumentReader struct {
	// PartLimit caps each decompressed part; zero means DefaultPartLimit.
	PartLimit int64
}

func NewDocumentReader() *DocumentReader { return &DocumentReader{} }

func (*DocumentReader) Type() model.ContentType { return model.ContentTypeDocument }

func (r *DocumentReader) Read(ctx context.Context, b []byte) (model.Content, error) {
	limit := partLimitOrDefault(r.PartLimit)
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open document container: %w", err)
	}

	docXML, err := readPart(zr, docxDocumentPart, limit)
	if err != nil {
		return nil, err
	}
	if docXML == nil {
		return nil, errMissingDocumentPart
	}

	var root xmlNode
	if err := xml.Unmarshal(docXML, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", docxDocumentPart, err)
	}
	body := root.child("body")
	if body == nil {
		return nil, errMissingBody
	}

	conv := &docxConverter{}
	if conv.numbering, err = loadNumbering(zr, limit); err != nil {
		return nil, err
	}
	if conv.styles, err = loadStyleNames(zr, limit); err != nil {
		return nil, err
	}
	if conv.links, err = loadHyperlinkTargets(zr, limit); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fragment := element(atom.Div)
	conv.convertBlocks(fragment, body.Nodes)

	var buf bytes.Buffer
	for c := fragment.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
	}
	return model.HTML(buf.String()), nil
}

// xmlNode is a generic element tree that keeps child order.
type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []xmlNode  `xml:",any"`
}

func (n *xmlNode) child(local string) *xmlNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			return &n.Nodes[i]
		}
	}
	return nil
}

func (n *xmlNode) attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// toggle reads an OOXML on/off property such as <w:b/> or <w:b w:val="0"/>.
func (n *xmlNode) toggle(local string) bool {
	c := n.child(local)
	if c == nil {
		return false
	}
	v, ok := c.attr("val")
	if !ok {
		return true
	}
	switch strings.ToLower(v) {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

// loadNumbering maps numId -> ilvl -> ordered.
func loadNumbering(zr *zip.Reader, limit int64) (map[string]map[string]bool, error) {
	b, err := readPart(zr, docxNumberingPart, limit)
	if err != nil || b == nil {
		return nil, err
	}
	var root xmlNode
	if err := xml.Unmarshal(b, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", docxNumberingPart, err)
	}

	abstract := make(map[string]map[string]bool)
	for _, n := range root.Nodes {
		if n.XMLName.Local != "abstractNum" {
			continue
		}
		id, _ := n.attr("abstractNumId")
		levels := make(map[string]bool)
		for _, lvl := range n.Nodes {
			if lvl.XMLName.Local != "lvl" {
				continue
			}
			ilvl, _ := lvl.attr("ilvl")
			format := "bullet"
			if f := lvl.child("numFmt"); f != nil {
				format, _ = f.attr("val")
			}
			levels[ilvl] = format != "bullet" && format != "none"
		}
		abstract[id] = levels
	}

	nums := make(map[string]map[string]bool)
	for _, n := range root.Nodes {
		if n.XMLName.Local != "num" {
			continue
		}
		id, _ := n.attr("numId")
		if ref := n.child("abstractNumId"); ref != nil {
			aid, _ := ref.attr("val")
			nums[id] = abstract[aid]
		}
	}
	return nums, nil
}

// loadStyleNames maps styleId -> display name.
func loadStyleNames(zr *zip.Reader, limit int64) (map[string]string, error) {
	b, err := readPart(zr, docxStylesPart, limit)
	if err != nil || b == nil {
		return nil, err
	}
	var root xmlNode
	if err := xml.Unmarshal(b, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", docxStylesPart, err)
	}
	names := make(map[string]string)
	for _, s := range root.Nodes {
		if s.XMLName.Local != "style" {
			continue
		}
		id, _ := s.attr("styleId")
		if n := s.child("name"); n != nil {
			names[id], _ = n.attr("val")
		}
	}
	return names, nil
}

// loadHyperlinkTargets maps relationship id -> external hyperlink target.
func loadHyperlinkTargets(zr *zip.Reader, limit int64) (map[string]string, error) {
	b, err := readPart(zr, docxRelsPart, limit)
	if err != nil || b == nil {
		return nil, err
	}
	var root xmlNode
	if err := xml.Unmarshal(b, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", docxRelsPart, err)
	}
	links := make(map[string]string)
	for _, r := range root.Nodes {
		typ, _ := r.attr("Type")
		if !strings.HasSuffix(typ, "/hyperlink") {
			continue
		}
		id, _ := r.attr("Id")
		links[id], _ = r.attr("Target")
	}
	return links, nil
}

type docxConverter struct {
	numbering map[string]map[string]bool
	styles    map[string]string
	links     map[string]string
}

type listFrame struct {
	list    *html.Node
	level   int
	ordered bool
}

// convertBlocks appends the HTML for a sequence of body-level elements to
// parent. Consecutive numbered paragraphs are grouped into nested lists.
func (c *docxConverter) convertBlocks(parent *html.Node, nodes []xmlNode) {
	var stack []listFrame
	for i := range nodes {
		n := &nodes[i]
		switch n.XMLName.Local {
		case "p":
			if level, ordered, ok := c.listInfo(n); ok {
				inline := c.convertInline(n.Nodes)
				if inline == nil {
					continue
				}
				stack = c.appendListItem(parent, stack, level, ordered, inline)
				continue
			}
			stack = nil
			c.appendParagraph(parent, n)
		case "tbl":
			stack = nil
			parent.AppendChild(c.convertTable(n))
		case "sdt":
			stack = nil
			if content := n.child("sdtContent"); content != nil {
				c.convertBlocks(parent, content.Nodes)
			}
		}
	}
}

func (c *docxConverter) appendParagraph(parent *html.Node, p *xmlNode) {
	inline := c.convertInline(p.Nodes)
	if inline == nil {
		return
	}
	tag := atom.P
	if level := c.headingLevel(p); level > 0 {
		tag = headingAtoms[level-1]
	}
	el := element(tag)
	appendAll(el, inline)
	parent.AppendChild(el)
}

func (c *docxConverter) appendListItem(parent *html.Node, stack []listFrame, level int, ordered bool, inline []*html.Node) []listFrame {
	for len(stack) > 0 && stack[len(stack)-1].level > level {
		stack = stack[:len(stack)-1]
	}
	if top := len(stack) - 1; top >= 0 && stack[top].level == level && stack[top].ordered != ordered {
		stack = stack[:top]
	}
	if len(stack) == 0 || stack[len(stack)-1].level < level {
		tag := atom.Ul
		if ordered {
			tag = atom.Ol
		}
		list := element(tag)
		if len(stack) == 0 {
			parent.AppendChild(list)
		} else {
			owner := stack[len(stack)-1].list
			if owner.LastChild == nil {
				owner.AppendChild(element(atom.Li))
			}
			owner.LastChild.AppendChild(list)
		}
		stack = append(stack, listFrame{list: list, level: level, ordered: ordered})
	}
	li := element(atom.Li)
	appendAll(li, inline)
	stack[len(stack)-1].list.AppendChild(li)
	return stack
}

func (c *docxConverter) convertTable(tbl *xmlNode) *html.Node {
	table := element(atom.Table)
	for _, tr := range tbl.Nodes {
		if tr.XMLName.Local != "tr" {
			continue
		}
		row := element(atom.Tr)
		for _, tc := range tr.Nodes {
			if tc.XMLName.Local != "tc" {
				continue
			}
			cell := element(atom.Td)
			if props := tc.child("tcPr"); props != nil {
				if span := props.child("gridSpan"); span != nil {
					if v, _ := span.attr("val"); v != "" && v != "1" {
						cell.Attr = append(cell.Attr, html.Attribute{Key: "colspan", Val: v})
					}
				}
			}
			c.convertBlocks(cell, tc.Nodes)
			row.AppendChild(cell)
		}
		table.AppendChild(row)
	}
	return table
}

// listInfo reports the nesting level and kind of a numbered paragraph.
func (c *docxConverter) listInfo(p *xmlNode) (level int, ordered, ok bool) {
	props := p.child("pPr")
	if props == nil {
		return 0, false, false
	}
	numPr := props.child("numPr")
	if numPr == nil {
		return 0, false, false
	}
	numID, ilvl := "", "0"
	if n := numPr.child("numId"); n != nil {
		numID, _ = n.attr("val")
	}
	if numID == "" || numID == "0" {
		return 0, false, false
	}
	if l := numPr.child("ilvl"); l != nil {
		ilvl, _ = l.attr("val")
	}
	level, _ = strconv.Atoi(ilvl)
	return level, c.numbering[numID][ilvl], true
}

// headingLevel returns 1-6 for heading paragraphs and 0 otherwise.
func (c *docxConverter) headingLevel(p *xmlNode) int {
	props := p.child("pPr")
	if props == nil {
		return 0
	}
	if s := props.child("pStyle"); s != nil {
		id, _ := s.attr("val")
		for _, name := range []string{c.styles[id], id} {
			if strings.EqualFold(name, "title") {
				return 1
			}
			if m := headingStylePattern.FindStringSubmatch(name); m != nil {
				lvl, _ := strconv.Atoi(m[1])
				return lvl
			}
		}
	}
	if o := props.child("outlineLvl"); o != nil {
		v, _ := o.attr("val")
		if lvl, err := strconv.Atoi(v); err == nil && lvl >= 0 && lvl < 6 {
			return lvl + 1
		}
	}
	return 0
}

// convertInline converts paragraph content. It returns nil when the paragraph
// carries no visible text.
func (c *docxConverter) convertInline(nodes []xmlNode) []*html.Node {
	var out []*html.Node
	visible := false
	for i := range nodes {
		n := &nodes[i]
		switch n.XMLName.Local {
		case "r":
			run, hasText := c.convertRun(n)
			out = append(out, run...)
			visible = visible || hasText
		case "hyperlink":
			inner := c.convertInline(n.Nodes)
			if inner == nil {
				continue
			}
			visible = true
			href := c.hyperlinkTarget(n)
			if href == "" {
				out = append(out, inner...)
				continue
			}
			a := element(atom.A, html.Attribute{Key: "href", Val: href})
			appendAll(a, inner)
			out = append(out, a)
		case "ins", "smartTag", "fldSimple", "customXml":
			if inner := c.convertInline(n.Nodes); inner != nil {
				out = append(out, inner...)
				visible = true
			}
		}
	}
	if !visible {
		return nil
	}
	return out
}

func (c *docxConverter) hyperlinkTarget(n *xmlNode) string {
	if id, ok := n.attr("id"); ok {
		target := c.links[id]
		if safeHref(target) {
			return target
		}
		return ""
	}
	if anchor, ok := n.attr("anchor"); ok && anchor != "" {
		return "#" + anchor
	}
	return ""
}

func safeHref(target string) bool {
	t := strings.ToLower(strings.TrimSpace(target))
	for _, scheme := range []string{"http://", "https://", "mailto:", "#"} {
		if strings.HasPrefix(t, scheme) {
			return true
		}
	}
	return false
}

// convertRun turns a text run into text and <br> nodes wrapped in the run's
// formatting elements.
func (c *docxConverter) convertRun(r *xmlNode) ([]*html.Node, bool) {
	var (
		content []*html.Node
		text    strings.Builder
		hasText bool
	)
	flush := func() {
		if text.Len() > 0 {
			content = append(content, &html.Node{Type: html.TextNode, Data: text.String()})
			text.Reset()
		}
	}
	for _, n := range r.Nodes {
		switch n.XMLName.Local {
		case "t":
			if n.Text != "" {
				text.WriteString(n.Text)
				hasText = true
			}
		case "tab":
			text.WriteByte('\t')
		case "br", "cr":
			flush()
			content = append(content, element(atom.Br))
		case "noBreakHyphen":
			text.WriteByte('-')
		}
	}
	flush()
	if len(content) == 0 {
		return nil, false
	}

	props := r.child("rPr")
	if props == nil {
		return content, hasText
	}
	wrappers := []struct {
		prop string
		tag  atom.Atom
	}{
		{"strike", atom.S},
		{"u", atom.U},
		{"i", atom.Em},
		{"b", atom.Strong},
	}
	for _, w := range wrappers {
		if !props.toggle(w.prop) {
			continue
		}
		el := element(w.tag)
		appendAll(el, content)
		content = []*html.Node{el}
	}
	if va := props.child("vertAlign"); va != nil {
		v, _ := va.attr("val")
		var tag atom.Atom
		switch v {
		case "superscript":
			tag = atom.Sup
		case "subscript":
			tag = atom.Sub
		}
		if tag != 0 {
			el := element(tag)
			appendAll(el, content)
			content = []*html.Node{el}
		}
	}
	return content, hasText
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func appendAll(parent *html.Node, children []*html.Node) {
	for _, ch := range children {
		parent.AppendChild(ch)
	}
}
