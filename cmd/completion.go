package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	spreadsheets = predict.Or(predict.Files("*.xlsx"), predict.Files("*.csv"))
	yamlFiles    = predict.Files("*.yaml")
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	input := map[string]complete.Predictor{
		"i":     spreadsheets,
		"sheet": predict.Something,
	}
	report := map[string]complete.Predictor{
		"cash":    predict.Something,
		"offline": predict.Nothing,
		"html":    predict.Files("*.html"),
		"csv":     predict.Files("*.csv"),
		"png":     predict.Files("*.png"),
	}
	for k, v := range input {
		report[k] = v
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":        yamlFiles,
			"v":             predict.Nothing,
			"eodhd-api-key": predict.Something,
		},
		Sub: map[string]*complete.Command{
			"report":  {Flags: report},
			"check":   {Flags: input},
			"quote":   {Args: predict.Something},
			"symbols": {},
			"config":  {},
			"topic":   {Args: predict.Set{"spreadsheet", "prices", "report", "config"}},
		},
	}
}
