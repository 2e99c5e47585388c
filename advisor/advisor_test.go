package advisor

import (
	"testing"

	"go.uber.org/zap"

	"imoveis-scraper/models"
)

func newTestLogger() *zap.Logger { return zap.NewNop() }

func makeProperty(id, endereco, descricao string, preco float64) *models.Record {
	rec := models.NewRecord()
	rec.Set(models.KeyID, id)
	rec.Set("endereco", endereco)
	rec.Set("descricao", descricao)
	if preco > 0 {
		rec.Set("preco", preco)
	}
	return rec
}

func sampleProperties() []*models.Record {
	return []*models.Record{
		makeProperty("1", "Rua das Araucárias, Água Verde, Curitiba - PR",
			"Casa com piscina e churrasqueira, 2 vagas de garagem", 450000),
		makeProperty("2", "Centro, Londrina - PR",
			"Apartamento com sacada e academia", 300000),
		makeProperty("3", "Zona rural de Castro - PR",
			"Terreno sem benfeitorias", 100000),
		makeProperty("4", "Batel, Curitiba - PR",
			"Cobertura com piscina", 900000),
		makeProperty("5", "Portão, Curitiba - PR",
			"Sobrado com segurança 24h", 0),
	}
}

func TestExtractAmenities(t *testing.T) {
	adv := New(newTestLogger())
	tests := []struct {
		text string
		want []string
	}{
		{"Casa com piscina e churrasqueira", []string{"piscina", "churrasqueira"}},
		{"2 vagas de garagem", []string{"garagem", "vaga"}},
		{"Segurança 24h com portaria", []string{"seguranca", "portaria"}},
		{"PISCINA aquecida", []string{"piscina"}},
		{"Terreno sem benfeitorias", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := adv.ExtractAmenities(tt.text)
		if len(got) != len(tt.want) {
			t.Errorf("ExtractAmenities(%q) = %v; want %v", tt.text, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("ExtractAmenities(%q) = %v; want %v", tt.text, got, tt.want)
				break
			}
		}
	}
}

func TestScoreBudgetEliminates(t *testing.T) {
	adv := New(newTestLogger())
	prefs := Preferences{MaxPrice: 500000}

	over := makeProperty("4", "Batel, Curitiba - PR", "Cobertura com piscina", 900000)
	if score, _ := adv.Score(over, prefs); score != 0 {
		t.Errorf("score over budget: got %.1f, want 0", score)
	}

	unpriced := makeProperty("5", "Portão, Curitiba - PR", "Sobrado com segurança", 0)
	if score, _ := adv.Score(unpriced, prefs); score != 0 {
		t.Errorf("score without price: got %.1f, want 0", score)
	}
}

func TestScoreSavingBonus(t *testing.T) {
	adv := New(newTestLogger())
	rec := makeProperty("1", "", "Terreno", 450000)

	score, _ := adv.Score(rec, Preferences{MaxPrice: 500000})
	if score != 52 {
		t.Errorf("score: got %.1f, want 52 (base 50 plus 10%% saving)", score)
	}
}

func TestScoreWithoutBudgetIsBase(t *testing.T) {
	adv := New(newTestLogger())
	rec := makeProperty("3", "", "Terreno", 100000)

	score, _ := adv.Score(rec, Preferences{})
	if score != 50 {
		t.Errorf("score: got %.1f, want base 50", score)
	}
}

func TestScoreRequiredAmenityBonus(t *testing.T) {
	adv := New(newTestLogger())
	rec := makeProperty("1", "", "Casa com piscina e churrasqueira, 2 vagas de garagem", 450000)

	score, amenities := adv.Score(rec, Preferences{
		MaxPrice:          500000,
		RequiredAmenities: []string{"Piscina", "sauna"},
	})
	if score != 62 {
		t.Errorf("score: got %.1f, want 62 (52 plus one matched amenity)", score)
	}
	if len(amenities) != 4 {
		t.Errorf("amenities: got %v, want 4 entries", amenities)
	}
}

func TestScoreLocationBonusFoldsAccents(t *testing.T) {
	adv := New(newTestLogger())
	rec := makeProperty("1", "Rua das Araucárias, Água Verde, Curitiba - PR", "Terreno", 450000)

	score, _ := adv.Score(rec, Preferences{MaxPrice: 500000, Location: "agua verde"})
	if score != 82 {
		t.Errorf("score: got %.1f, want 82 (52 plus location bonus)", score)
	}
}

func TestSuggestBestOrdersAndLimits(t *testing.T) {
	adv := New(newTestLogger())
	got := adv.SuggestBest(sampleProperties(), Preferences{MaxPrice: 500000, TopN: 2})

	if len(got) != 2 {
		t.Fatalf("suggestions: got %d, want 2", len(got))
	}
	if got[0].Record.ID() != "3" {
		t.Errorf("best suggestion: got %q, want %q (largest saving)", got[0].Record.ID(), "3")
	}
	if got[1].Record.ID() != "2" {
		t.Errorf("second suggestion: got %q, want %q", got[1].Record.ID(), "2")
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("scores not descending: %.1f then %.1f", got[0].Score, got[1].Score)
	}
}

func TestSuggestBestDefaultTopN(t *testing.T) {
	adv := New(newTestLogger())
	got := adv.SuggestBest(sampleProperties(), Preferences{MaxPrice: 500000})

	if len(got) != 3 {
		t.Errorf("suggestions: got %d, want default 3", len(got))
	}
}

func TestSuggestBestNoCandidates(t *testing.T) {
	adv := New(newTestLogger())
	got := adv.SuggestBest(sampleProperties(), Preferences{MaxPrice: 50000})

	if len(got) != 0 {
		t.Errorf("suggestions under tiny budget: got %d, want 0", len(got))
	}
}
