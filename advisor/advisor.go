// Package advisor ranks enriched property records against buyer
// preferences using accent-folded keyword matching over the listing
// descriptions.
package advisor

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"imoveis-scraper/models"
	"imoveis-scraper/utils"
)

// amenityKeywords are the features every description is scanned for,
// stored accent-folded.
var amenityKeywords = []string{
	"piscina",
	"churrasqueira",
	"garagem",
	"vaga",
	"varanda",
	"jardim",
	"quintal",
	"academia",
	"sauna",
	"seguranca",
	"portaria",
	"metro",
	"onibus",
	"elevador",
	"sacada",
}

// Preferences describe what the buyer wants.
type Preferences struct {
	MaxPrice          float64
	RequiredAmenities []string
	Location          string
	TopN              int
}

// Suggestion is one scored property.
type Suggestion struct {
	Record    *models.Record
	Score     float64
	Amenities []string
}

// Advisor scores properties against preferences.
type Advisor struct {
	log *zap.Logger
}

// New returns an Advisor.
func New(log *zap.Logger) *Advisor {
	return &Advisor{log: log}
}

// ExtractAmenities returns the known amenities mentioned in text, matching
// tokens after accent folding so "segurança" and "seguranca" both hit.
func (a *Advisor) ExtractAmenities(text string) []string {
	tokens := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(utils.Fold(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		tokens[tok] = struct{}{}
	}

	var found []string
	for _, kw := range amenityKeywords {
		if _, ok := tokens[kw]; ok {
			found = append(found, kw)
			continue
		}
		// Plural forms: vagas, varandas.
		if _, ok := tokens[kw+"s"]; ok {
			found = append(found, kw)
		}
	}
	return found
}

// Score rates one property. Budget is an eliminating filter: a property
// over MaxPrice, or without a usable price, scores zero. Within budget the
// base score grows with the saving against the budget, plus 10 per matched
// amenity and 30 for the preferred location.
func (a *Advisor) Score(rec *models.Record, prefs Preferences) (float64, []string) {
	amenities := a.ExtractAmenities(rec.GetString("descricao"))

	price, ok := rec.GetFloat("preco")
	if !ok {
		return 0, amenities
	}
	if prefs.MaxPrice > 0 && price > prefs.MaxPrice {
		return 0, amenities
	}

	score := 50.0
	if prefs.MaxPrice > 0 {
		score += (prefs.MaxPrice - price) / prefs.MaxPrice * 20
	}

	want := make(map[string]struct{}, len(prefs.RequiredAmenities))
	for _, am := range prefs.RequiredAmenities {
		want[utils.Fold(am)] = struct{}{}
	}
	for _, am := range amenities {
		if _, ok := want[am]; ok {
			score += 10
		}
	}

	if prefs.Location != "" &&
		strings.Contains(utils.Fold(rec.GetString("endereco")), utils.Fold(prefs.Location)) {
		score += 30
	}

	return score, amenities
}

// SuggestBest returns the TopN highest scoring properties, best first.
// Zero-scored properties never appear.
func (a *Advisor) SuggestBest(records []*models.Record, prefs Preferences) []Suggestion {
	var suggestions []Suggestion
	for _, rec := range records {
		score, amenities := a.Score(rec, prefs)
		if score <= 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{Record: rec, Score: score, Amenities: amenities})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	topN := prefs.TopN
	if topN <= 0 {
		topN = 3
	}
	if len(suggestions) > topN {
		suggestions = suggestions[:topN]
	}

	a.log.Info("advisor: suggestions ready",
		zap.Int("candidates", len(records)),
		zap.Int("suggested", len(suggestions)),
	)
	return suggestions
}

// Print renders suggestions to stdout.
func (a *Advisor) Print(suggestions []Suggestion) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏠 SUGESTÕES DE IMÓVEIS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	if len(suggestions) == 0 {
		fmt.Printf("  Nenhum imóvel compatível com as preferências.\n\n")
		return
	}

	for i, s := range suggestions {
		rec := s.Record
		fmt.Printf("\033[1;33m  %d. Imóvel %s\033[0m\n", i+1, rec.ID())
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  Score    : \033[1;32m%.1f\033[0m\n", s.Score)
		if endereco := rec.GetString("endereco"); endereco != "" {
			fmt.Printf("  Endereço : %s\n", truncate(endereco, 70))
		}
		if price, ok := rec.GetFloat("preco"); ok && price > 0 {
			fmt.Printf("  Preço    : \033[1;32mR$ %.2f\033[0m\n", price)
		}
		if len(s.Amenities) > 0 {
			fmt.Printf("  Extras   : %s\n", strings.Join(s.Amenities, ", "))
		}
		fmt.Println()
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
