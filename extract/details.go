package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"imoveis-scraper/models"
	"imoveis-scraper/utils"
)

// DefaultContainer is the detail block used by the bank's listing pages.
const DefaultContainer = "#dadosImovel"

// labelField binds a vocabulary key to the page label that precedes its
// value inside the detail container.
type labelField struct {
	field string
	label string
}

var labelFields = []labelField{
	{"tipo_imovel", "Tipo de imóvel"},
	{"quartos", "Quartos"},
	{"area_total", "Área total"},
	{"area_privativa", "Área privativa"},
	{"formas_pagamento", "Formas de pagamento"},
}

// adjacencyRule locates the value element for a label hit. Rules run in
// order; the first non-empty value wins.
type adjacencyRule struct {
	name string
	find func(hit *goquery.Selection, label string) string
}

var adjacencyRules = []adjacencyRule{
	// Label and value share a tag: <p>Quartos: <strong>3</strong></p>.
	{"bold-descendant", boldDescendant},
	// Label text node followed by an emphasis element, inside the same tag
	// (<p>Pagamento: <em>à vista</em></p>) or as a later sibling
	// (<span>Quartos:</span> <b>3</b>).
	{"following-emphasis", followingEmphasis},
}

func boldDescendant(hit *goquery.Selection, _ string) string {
	return strings.TrimSpace(hit.Find("b, strong").First().Text())
}

func followingEmphasis(hit *goquery.Selection, label string) string {
	want := utils.Fold(label)

	// Within the hit element, look at content past the label text node.
	passed := false
	var found string
	hit.Contents().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if !passed {
			if goquery.NodeName(c) == "#text" && strings.Contains(utils.Fold(c.Text()), want) {
				passed = true
			}
			return true
		}
		if isEmphasis(goquery.NodeName(c)) {
			if v := strings.TrimSpace(c.Text()); v != "" {
				found = v
				return false
			}
		}
		if v := strings.TrimSpace(c.Find("b, strong, em, span").First().Text()); v != "" {
			found = v
			return false
		}
		return true
	})
	if found != "" {
		return found
	}

	// Otherwise continue through the hit's following siblings.
	next := hit.NextAllFiltered("b, strong, em, span").First()
	if next.Length() > 0 {
		return strings.TrimSpace(next.Text())
	}
	hit.NextAll().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v := strings.TrimSpace(s.Find("b, strong, em, span").First().Text())
		if v != "" {
			found = v
			return false
		}
		return true
	})
	return found
}

func isEmphasis(nodeName string) bool {
	switch nodeName {
	case "b", "strong", "em", "span":
		return true
	}
	return false
}

// textRule binds a vocabulary key to one pattern with a single capture
// group, applied to the values paragraph. Rules are tried once each, in
// order, and the first match wins.
type textRule struct {
	field   string
	pattern *regexp.Regexp
}

var moneyRules = []textRule{
	{"valor_avaliacao", regexp.MustCompile(`(?i)valor\s+de\s+avalia[çc][ãa]o.*?(R\$\s*\d{1,3}(?:\.\d{3})*(?:,\d{2})?)`)},
	{"valor_minimo_venda", regexp.MustCompile(`(?i)valor\s+m[íi]nimo\s+de\s+venda.*?(R\$\s*\d{1,3}(?:\.\d{3})*(?:,\d{2})?)`)},
}

var dateRules = []textRule{
	{"data_1o_leilao", regexp.MustCompile(`(?i)1[ºo°]\s*leil[ãa]o.*?(\d{2}/\d{2}/\d{4})`)},
	{"data_2o_leilao", regexp.MustCompile(`(?i)2[ºo°]\s*leil[ãa]o.*?(\d{2}/\d{2}/\d{4})`)},
}

var (
	genericDate = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	cepPattern  = regexp.MustCompile(`\d{5}-?\d{3}`)

	valuesAnchor   = regexp.MustCompile(`(?i)valor\s+de\s+avalia[çc][ãa]o`)
	enderecoLabel  = regexp.MustCompile(`(?i)endere[çc]o\s*:?[\s.\-–]*`)
	descricaoLabel = regexp.MustCompile(`(?i)descri[çc][ãa]o\s*:?[\s.\-–]*`)
)

// PropertyDetails extracts the fixed detail vocabulary from the container
// element. Every vocabulary key is present in the result: fields that
// cannot be located stay empty, except cep, which gets an explicit
// unavailable marker when no postal code can be derived from the address.
// A page without the container yields an all-empty detail set.
func (e *Extractor) PropertyDetails(container string) map[string]string {
	if container == "" {
		container = DefaultContainer
	}
	details := models.NewDetail()

	root := e.doc.Find(container).First()
	if root.Length() == 0 {
		return details
	}

	for _, lf := range labelFields {
		if v := findLabelValue(root, lf.label); v != "" {
			details[lf.field] = collapseSpace(v)
		}
	}

	values := valuesParagraph(root)
	for _, rule := range moneyRules {
		if m := rule.pattern.FindStringSubmatch(values); m != nil {
			details[rule.field] = strings.TrimSpace(m[1])
		}
	}
	for _, rule := range dateRules {
		if m := rule.pattern.FindStringSubmatch(values); m != nil {
			details[rule.field] = m[1]
		}
	}
	// Pages often spell the second auction without its own label; the
	// second plain date in the values paragraph stands in for it.
	if details["data_2o_leilao"] == "" {
		if all := genericDate.FindAllString(values, -1); len(all) >= 2 {
			details["data_2o_leilao"] = all[1]
		}
	}

	details["endereco"] = paragraphValue(root, enderecoLabel)
	details["descricao"] = paragraphValue(root, descricaoLabel)

	if cep := cepPattern.FindString(details["endereco"]); cep != "" {
		details["cep"] = cep
	} else {
		details["cep"] = models.CEPUnavailable
	}

	return details
}

// findLabelValue walks the container in document order looking for an
// element whose own text carries the label, then asks each adjacency rule
// for the value. The first rule to produce one wins.
func findLabelValue(root *goquery.Selection, label string) string {
	want := utils.Fold(label)
	var value string
	root.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(utils.Fold(ownText(s)), want) {
			return true
		}
		for _, rule := range adjacencyRules {
			v := rule.find(s, label)
			if v != "" && utils.Fold(v) != want {
				value = v
				return false
			}
		}
		return true
	})
	return value
}

// valuesParagraph returns the text the money and date rules run against:
// the first paragraph mentioning the appraisal value, or the whole
// container text when no such paragraph exists.
func valuesParagraph(root *goquery.Selection) string {
	var text string
	root.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		t := collapseSpace(joinText(p, " "))
		if valuesAnchor.MatchString(t) {
			text = t
			return false
		}
		return true
	})
	if text == "" {
		text = collapseSpace(joinText(root, " "))
	}
	return text
}

// paragraphValue finds the first paragraph matching the label pattern and
// returns its text with the label token and surrounding punctuation
// stripped.
func paragraphValue(root *goquery.Selection, label *regexp.Regexp) string {
	var value string
	root.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		t := collapseSpace(joinText(p, " "))
		loc := label.FindStringIndex(t)
		if loc == nil {
			return true
		}
		value = strings.TrimSpace(t[loc[1]:])
		return false
	})
	return value
}

// collapseSpace trims and squeezes whitespace runs to single spaces, so
// markup line breaks never split a pattern match.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
