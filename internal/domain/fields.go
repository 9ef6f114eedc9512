package domain

// Canonical model-input field names.
const (
	FieldValorQuitacao   = "ValorQuitacao"
	FieldAtraso          = "Atraso"
	FieldQuantBoletos    = "Quant_Pagamentos_Via_Boleto"
	FieldQuantOcorrencia = "Quant_Ocorrencia"
	FieldUF              = "UF"
)

// CanonicalFields is the fixed order in which raw fields are read from a row.
var CanonicalFields = []string{
	FieldValorQuitacao,
	FieldAtraso,
	FieldQuantBoletos,
	FieldQuantOcorrencia,
	FieldUF,
}

// NumericFields are the canonical fields that pass straight into the feature vector.
var NumericFields = []string{
	FieldValorQuitacao,
	FieldAtraso,
	FieldQuantBoletos,
	FieldQuantOcorrencia,
}

// ColumnAliases maps spreadsheet column names to canonical field names.
// Fields absent here are expected under their canonical name.
var ColumnAliases = map[string]string{
	"Valor_Parcela":       FieldValorQuitacao,
	"Quant_Boletos_Pagos": FieldQuantBoletos,
	"Idade":               FieldQuantOcorrencia,
}
