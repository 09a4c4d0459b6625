package source

import "time"

// Required ledger columns, matched exactly after header normalization.
const (
	ColDate     = "Data"
	ColCenter   = "Centro_Custo"
	ColAccount  = "Descricao_Conta"
	ColRealized = "Valor_Realizado"
	ColForecast = "Valor_Previsto"
)

// RequiredColumns lists the ledger columns in the order they are checked.
var RequiredColumns = []string{ColDate, ColCenter, ColAccount, ColRealized, ColForecast}

// Format identifies a supported ledger file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DiscoveredFile is a ledger file found by ScanDir.
type DiscoveredFile struct {
	Path    string
	Name    string
	Format  Format
	Size    int64
	ModTime time.Time
}
