package reader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docview/internal/model"
)

const numberingXML = `<w:numbering ` + wordNS + `>` +
	`<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl>` +
	`<w:lvl w:ilvl="1"><w:numFmt w:val="decimal"/></w:lvl></w:abstractNum>` +
	`<w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/></w:lvl></w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>` +
	`</w:numbering>`

const stylesXML = `<w:styles ` + wordNS + `>` +
	`<w:style w:type="paragraph" w:styleId="Titre2"><w:name w:val="heading 2"/></w:style>` +
	`</w:styles>`

const relsXML = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" ` +
	`Target="https://example.com/a?b=1&amp;c=2" TargetMode="External"/>` +
	`<Relationship Id="rId6" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" ` +
	`Target="javascript:alert(1)" TargetMode="External"/>` +
	`</Relationships>`

func readDocx(t *testing.T, body string, extra ...zipEntry) string {
	t.Helper()
	entries := append([]zipEntry{{"word/document.xml", documentXML(body)}}, extra...)
	got, err := NewDocumentReader().Read(context.Background(), buildZip(t, entries...))
	require.NoError(t, err)
	return string(got.(model.HTML))
}

func para(props, runs string) string {
	return `<w:p>` + props + runs + `</w:p>`
}

func run(props, text string) string {
	return `<w:r>` + props + `<w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func TestDocumentReader_ParagraphsAndHeadings(t *testing.T) {
	body := para(`<w:pPr><w:pStyle w:val="Title"/></w:pPr>`, run("", "Report")) +
		para(`<w:pPr><w:pStyle w:val="Heading1"/></w:pPr>`, run("", "Intro")) +
		para(`<w:pPr><w:pStyle w:val="Titre2"/></w:pPr>`, run("", "Localized")) +
		para(`<w:pPr><w:outlineLvl w:val="2"/></w:pPr>`, run("", "Outline")) +
		para("", run("", "Plain text.")) +
		para("", "")

	got := readDocx(t, body, zipEntry{"word/styles.xml", stylesXML})
	assert.Equal(t,
		`<h1>Report</h1><h1>Intro</h1><h2>Localized</h2><h3>Outline</h3><p>Plain text.</p>`,
		got)
}

func TestDocumentReader_RunFormatting(t *testing.T) {
	body := para("",
		run(`<w:rPr><w:b/></w:rPr>`, "bold")+
			run(`<w:rPr><w:i/><w:b w:val="0"/></w:rPr>`, " italic")+
			run(`<w:rPr><w:u w:val="single"/></w:rPr>`, " under")+
			`<w:r><w:t>a</w:t><w:br/><w:t>b</w:t><w:tab/><w:t>c</w:t></w:r>`)

	got := readDocx(t, body)
	assert.Equal(t,
		"<p><strong>bold</strong><em> italic</em><u> under</u>a<br/>b\tc</p>",
		got)
}

func TestDocumentReader_EscapesText(t *testing.T) {
	body := para("", run("", `&lt;script&gt;alert("x")&lt;/script&gt; &amp; more`))

	got := readDocx(t, body)
	assert.Equal(t, `<p>&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; more</p>`, got)
	assert.NotContains(t, got, "<script>")
}

func TestDocumentReader_Lists(t *testing.T) {
	item := func(numID, ilvl, text string) string {
		return para(`<w:pPr><w:numPr><w:ilvl w:val="`+ilvl+`"/><w:numId w:val="`+numID+`"/></w:numPr></w:pPr>`, run("", text))
	}
	body := item("1", "0", "apple") +
		item("1", "1", "step one") +
		item("1", "1", "step two") +
		item("1", "0", "pear") +
		para("", run("", "between")) +
		item("2", "0", "first")

	got := readDocx(t, body, zipEntry{"word/numbering.xml", numberingXML})
	assert.Equal(t,
		`<ul><li>apple<ol><li>step one</li><li>step two</li></ol></li><li>pear</li></ul>`+
			`<p>between</p>`+
			`<ol><li>first</li></ol>`,
		got)
}

func TestDocumentReader_ListsWithoutNumberingPart(t *testing.T) {
	body := para(`<w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="3"/></w:numPr></w:pPr>`, run("", "dot"))

	got := readDocx(t, body)
	assert.Equal(t, `<ul><li>dot</li></ul>`, got)
}

func TestDocumentReader_Hyperlinks(t *testing.T) {
	body := para("",
		`<w:hyperlink r:id="rId5">`+run("", "site")+`</w:hyperlink>`+
			`<w:hyperlink r:id="rId6">`+run("", "bad")+`</w:hyperlink>`+
			`<w:hyperlink w:anchor="sec1">`+run("", "jump")+`</w:hyperlink>`)

	got := readDocx(t, body, zipEntry{"word/_rels/document.xml.rels", relsXML})
	assert.Equal(t,
		`<p><a href="https://example.com/a?b=1&amp;c=2">site</a>bad<a href="#sec1">jump</a></p>`,
		got)
}

func TestDocumentReader_Tables(t *testing.T) {
	body := `<w:tbl><w:tr>` +
		`<w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr>` + para("", run("", "wide")) + `</w:tc>` +
		`</w:tr><w:tr>` +
		`<w:tc>` + para("", run("", "a")) + `</w:tc>` +
		`<w:tc>` + para("", run("", "b")) + `</w:tc>` +
		`</w:tr></w:tbl>`

	got := readDocx(t, body)
	assert.Equal(t,
		`<table><tr><td colspan="2"><p>wide</p></td></tr><tr><td><p>a</p></td><td><p>b</p></td></tr></table>`,
		got)
}

func TestDocumentReader_Failures(t *testing.T) {
	tests := []struct {
		name string
		in   func(t *testing.T) []byte
	}{
		{"not a container", func(t *testing.T) []byte { return []byte("nope") }},
		{"missing document part", func(t *testing.T) []byte {
			return buildZip(t, zipEntry{"word/styles.xml", stylesXML})
		}},
		{"malformed markup", func(t *testing.T) []byte {
			return buildZip(t, zipEntry{"word/document.xml", `<w:document><w:body><w:p>`})
		}},
		{"missing body", func(t *testing.T) []byte {
			return buildZip(t, zipEntry{"word/document.xml", `<w:document ` + wordNS + `/>`})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDocumentReader().Read(context.Background(), tt.in(t))
			assert.Error(t, err)
		})
	}
}
