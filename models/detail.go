package models

// DetailFields is the fixed vocabulary produced by detail extraction.
// Every extraction result carries all of these keys so downstream columns
// stay stable across pages with different layouts.
var DetailFields = []string{
	"tipo_imovel",
	"quartos",
	"area_total",
	"area_privativa",
	"valor_avaliacao",
	"valor_minimo_venda",
	"data_1o_leilao",
	"data_2o_leilao",
	"endereco",
	"cep",
	"descricao",
	"formas_pagamento",
}

// CEPUnavailable marks a postal code that could not be derived from the
// extracted address text.
const CEPUnavailable = "Não disponível"

// RawNotFound marks a listing page without the detail container in the raw
// text capture column.
const RawNotFound = "Not Found"

// NewDetail returns a detail map with the full vocabulary present and all
// values empty.
func NewDetail() map[string]string {
	d := make(map[string]string, len(DetailFields))
	for _, k := range DetailFields {
		d[k] = ""
	}
	return d
}
