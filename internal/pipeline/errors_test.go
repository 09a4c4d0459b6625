package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fundex/despesas/internal/source"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{
			"not found",
			fmt.Errorf("%w: /tmp/x.xlsx", source.ErrFileNotFound),
			"Ledger file not found: /tmp/x.xlsx",
		},
		{
			"not found wrapped",
			fmt.Errorf("scanning /tmp/d: %w", fmt.Errorf("%w: /tmp/d", source.ErrFileNotFound)),
			"Ledger file not found: /tmp/d",
		},
		{
			"unsupported",
			fmt.Errorf("%w: %q (use .xlsx or .csv)", source.ErrUnsupportedFormat, ".json"),
			`Unsupported ledger format: ".json" (use .xlsx or .csv)`,
		},
		{
			"missing column",
			&source.MissingColumnError{Column: "Valor_Previsto", Missing: []string{"Valor_Previsto"}, Suggestion: "Valor Previst"},
			`Missing column in ledger: Valor_Previsto (found "Valor Previst", is it misspelled?)`,
		},
		{
			"missing columns",
			&source.MissingColumnError{Column: "Data", Missing: []string{"Data", "Valor_Previsto"}},
			"Missing column in ledger: Data, Valor_Previsto",
		},
		{
			"bad cell",
			&source.ParseError{Path: "/data/despesas.csv", Line: 7, Column: "Valor_Realizado", Value: "abc", Err: errors.New("invalid")},
			`Could not read line 7 of despesas.csv: column Valor_Realizado has invalid value "abc"`,
		},
		{
			"empty cell",
			&source.ParseError{Path: "/data/despesas.csv", Line: 3, Column: "Centro_Custo"},
			"Could not read line 3 of despesas.csv: column Centro_Custo is empty",
		},
		{
			"unreadable file",
			&source.ParseError{Path: "/data/despesas.xlsx", Err: errors.New("zip: not a valid zip file")},
			"Could not read despesas.xlsx: zip: not a valid zip file",
		},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage = %q\nwant          %q", got, tt.want)
			}
		})
	}
}
