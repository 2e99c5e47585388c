// Package extract pulls structured fields out of fetched listing pages.
//
// Extraction is pure: it operates on page source that was already fetched
// and never touches the network or the filesystem. Missing elements yield
// absent results, never errors; only unparsable markup fails.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// Extractor parses a page once and answers selector queries against it.
type Extractor struct {
	doc *goquery.Document
}

// New parses page source into an Extractor.
func New(pageSource string) (*Extractor, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageSource))
	if err != nil {
		return nil, eris.Wrap(err, "extract: parse page source")
	}
	return &Extractor{doc: doc}, nil
}

// Text returns the trimmed text of the first element matching selector.
func (e *Extractor) Text(selector string) (string, bool) {
	sel := e.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

// Attr returns the named attribute of the first element matching selector.
// The second return is false when the element or the attribute is absent.
func (e *Extractor) Attr(selector, name string) (string, bool) {
	sel := e.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Attr(name)
}

// List returns the trimmed text of every element matching selector, in
// document order.
func (e *Extractor) List(selector string) []string {
	var out []string
	e.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

// Fields resolves a field-name to selector mapping against the page. Every
// key of selectors is present in the result; unmatched selectors yield "".
func (e *Extractor) Fields(selectors map[string]string) map[string]string {
	out := make(map[string]string, len(selectors))
	for field, sel := range selectors {
		v, _ := e.Text(sel)
		out[field] = v
	}
	return out
}

// Table extracts the first table matching selector into one map per data
// row. The header row comes from the thead when present, otherwise the
// first row of the table. Rows whose cell count differs from the header
// are dropped rather than guessed at.
func (e *Extractor) Table(selector string) []map[string]string {
	table := e.doc.Find(selector).First()
	if table.Length() == 0 {
		return nil
	}

	headerRow := table.Find("thead tr").First()
	if headerRow.Length() == 0 {
		headerRow = table.Find("tr").First()
	}
	if headerRow.Length() == 0 {
		return nil
	}

	var headers []string
	headerRow.Find("th, td").Each(func(_ int, c *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(c.Text()))
	})
	if len(headers) == 0 {
		return nil
	}

	headerNode := headerRow.Get(0)
	var rows []map[string]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Get(0) == headerNode {
			return
		}
		var cells []string
		tr.Find("th, td").Each(func(_ int, c *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(c.Text()))
		})
		if len(cells) != len(headers) {
			return
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			row[h] = cells[i]
		}
		rows = append(rows, row)
	})
	return rows
}

// JoinedText returns every text run under the first element matching
// selector, trimmed and joined by sep. Empty runs are skipped.
func (e *Extractor) JoinedText(selector, sep string) string {
	sel := e.doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return joinText(sel, sep)
}

func joinText(sel *goquery.Selection, sep string) string {
	var runs []string
	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				if t := strings.TrimSpace(c.Text()); t != "" {
					runs = append(runs, t)
				}
				return
			}
			walk(c)
		})
	}
	walk(sel)
	return strings.Join(runs, sep)
}

// ownText returns the text held directly by s, excluding descendants.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return b.String()
}
