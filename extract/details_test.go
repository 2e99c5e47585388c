package extract

import (
	"testing"

	"imoveis-scraper/models"
)

const detailPage = `
<html>
<body>
<div id="dadosImovel">
	<h2>Apartamento no Centro - Curitiba</h2>
	<p>Tipo de imóvel: <strong>Apartamento</strong></p>
	<p><span>Quartos:</span> <b>3</b></p>
	<p>Área total: <strong>120,50 m²</strong></p>
	<p>Valor de avaliação: R$ 2.090.745,83 - Imóvel ocupado.
	   Valor mínimo de venda: R$ 1.800.000,00.
	   1º Leilão em 10/05/2024 e 2º Leilão em 10/06/2024.</p>
	<p><b>Endereço:</b> Rua das Laranjeiras, 500, Centro, Curitiba - PR, CEP 80010-010</p>
	<p>Descrição: Apartamento com piscina, churrasqueira e vaga de garagem.</p>
	<p>Formas de pagamento: <em>à vista ou financiamento habitacional</em></p>
</div>
</body>
</html>`

func TestPropertyDetailsAuctionPage(t *testing.T) {
	ex := mustExtractor(t, detailPage)

	details := ex.PropertyDetails("#dadosImovel")

	tests := []struct {
		field string
		want  string
	}{
		{"tipo_imovel", "Apartamento"},
		{"quartos", "3"},
		{"area_total", "120,50 m²"},
		{"area_privativa", ""},
		{"valor_avaliacao", "R$ 2.090.745,83"},
		{"valor_minimo_venda", "R$ 1.800.000,00"},
		{"data_1o_leilao", "10/05/2024"},
		{"data_2o_leilao", "10/06/2024"},
		{"endereco", "Rua das Laranjeiras, 500, Centro, Curitiba - PR, CEP 80010-010"},
		{"cep", "80010-010"},
		{"descricao", "Apartamento com piscina, churrasqueira e vaga de garagem."},
		{"formas_pagamento", "à vista ou financiamento habitacional"},
	}

	for _, tt := range tests {
		if got := details[tt.field]; got != tt.want {
			t.Errorf("details[%q] = %q; want %q", tt.field, got, tt.want)
		}
	}
}

func TestPropertyDetailsMoneyAndDateInRunningText(t *testing.T) {
	page := `<html><body><div id="dadosImovel">
		<p>Valor de avaliação: R$ 2.090.745,83 - Imóvel ocupado. 1º Leilão em 10/05/2024.</p>
	</div></body></html>`
	ex := mustExtractor(t, page)

	details := ex.PropertyDetails("#dadosImovel")
	if got := details["valor_avaliacao"]; got != "R$ 2.090.745,83" {
		t.Errorf("valor_avaliacao = %q; want %q", got, "R$ 2.090.745,83")
	}
	if got := details["data_1o_leilao"]; got != "10/05/2024" {
		t.Errorf("data_1o_leilao = %q; want %q", got, "10/05/2024")
	}
	if got := details["data_2o_leilao"]; got != "" {
		t.Errorf("data_2o_leilao = %q; want empty (single date on page)", got)
	}
}

func TestPropertyDetailsSecondAuctionFallback(t *testing.T) {
	page := `<html><body><div id="dadosImovel">
		<p>Valor de avaliação: R$ 500.000,00.
		   1º Leilão em 01/02/2024, segunda praça prevista para 15/02/2024.</p>
	</div></body></html>`
	ex := mustExtractor(t, page)

	details := ex.PropertyDetails("#dadosImovel")
	if got := details["data_1o_leilao"]; got != "01/02/2024" {
		t.Errorf("data_1o_leilao = %q; want %q", got, "01/02/2024")
	}
	if got := details["data_2o_leilao"]; got != "15/02/2024" {
		t.Errorf("data_2o_leilao = %q; want %q (generic second date)", got, "15/02/2024")
	}
}

func TestPropertyDetailsMissingContainer(t *testing.T) {
	ex := mustExtractor(t, `<html><body><p>Imóvel não encontrado.</p></body></html>`)

	details := ex.PropertyDetails("#dadosImovel")
	if len(details) != len(models.DetailFields) {
		t.Fatalf("detail set has %d keys; want %d", len(details), len(models.DetailFields))
	}
	for _, field := range models.DetailFields {
		if got, ok := details[field]; !ok || got != "" {
			t.Errorf("details[%q] = (%q, %v); want (\"\", true)", field, got, ok)
		}
	}
}

func TestPropertyDetailsCEPUnavailable(t *testing.T) {
	page := `<html><body><div id="dadosImovel">
		<p>Endereço: Avenida Brasil, 100, Jacarepaguá, Rio de Janeiro - RJ</p>
	</div></body></html>`
	ex := mustExtractor(t, page)

	details := ex.PropertyDetails("#dadosImovel")
	if got := details["endereco"]; got != "Avenida Brasil, 100, Jacarepaguá, Rio de Janeiro - RJ" {
		t.Errorf("endereco = %q; want the address without the label", got)
	}
	if got := details["cep"]; got != models.CEPUnavailable {
		t.Errorf("cep = %q; want %q", got, models.CEPUnavailable)
	}
}

func TestPropertyDetailsVocabularyAlwaysComplete(t *testing.T) {
	ex := mustExtractor(t, detailPage)

	details := ex.PropertyDetails("#dadosImovel")
	for _, field := range models.DetailFields {
		if _, ok := details[field]; !ok {
			t.Errorf("details is missing vocabulary key %q", field)
		}
	}
}

func TestPropertyDetailsDefaultContainer(t *testing.T) {
	ex := mustExtractor(t, detailPage)

	details := ex.PropertyDetails("")
	if got := details["quartos"]; got != "3" {
		t.Errorf("quartos via default container = %q; want %q", got, "3")
	}
}
