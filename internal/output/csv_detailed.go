package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/withdrawal-simulator/internal/domain"
)

// CSVDetailedExporter writes one row per simulated year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "csv" }
func (c CSVDetailedExporter) Ext() string  { return "csv" }

func (c CSVDetailedExporter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Age", "Year"}
	for _, f := range domain.AccountFields {
		header = append(header, "TaxDeferred."+f)
	}
	for _, f := range domain.AccountFields {
		header = append(header, "Taxable."+f)
	}
	for _, f := range domain.WithdrawalFields {
		header = append(header, "Withdrawal."+f)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := 0; i < result.Len(); i++ {
		row := []string{intToString(result.Age[i]), intToString(result.Year[i])}
		for _, f := range domain.AccountFields {
			row = append(row, amountToString(result.TaxDeferredAccount[f][i]))
		}
		for _, f := range domain.AccountFields {
			row = append(row, amountToString(result.TaxableAccount[f][i]))
		}
		for _, f := range domain.WithdrawalFields {
			row = append(row, amountToString(result.Withdrawal[f][i]))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
