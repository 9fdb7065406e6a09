package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/steadysun/steadysun-go/forecast"
)

var (
	forecastType          string
	forecastTimeStep      int
	forecastHorizon       int
	forecastPrecision     int
	forecastFields        string
	forecastTimestamp     bool
	forecastTimestampUnit string
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast <uuid>",
	Short: "Fetch the forecast of a component",
	Long: `Fetch the forecast of a component, by default a PV system.

Only the parameters you pass are sent; the API picks defaults for the rest.
--fields takes a comma-separated list such as "ghi,t2m" or "[ghi,t2m]".`,
	Args: cobra.ExactArgs(1),
	RunE: runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().StringVar(&forecastType, "type", string(forecast.ObjectTypePVSystem), "component type")
	forecastCmd.Flags().IntVar(&forecastTimeStep, "time-step", 0, "time step in minutes")
	forecastCmd.Flags().IntVar(&forecastHorizon, "horizon", 0, "horizon in minutes")
	forecastCmd.Flags().IntVar(&forecastPrecision, "precision", 0, "maximum number of decimal places")
	forecastCmd.Flags().StringVar(&forecastFields, "fields", "", "comma-separated fields to return (default all)")
	forecastCmd.Flags().BoolVar(&forecastTimestamp, "timestamp", false, "request the index as Unix timestamps")
	forecastCmd.Flags().StringVar(&forecastTimestampUnit, "timestamp-unit", "", "timestamp unit: ms or s (implies --timestamp)")
}

// forecastParams builds the request parameters from the flags that were set
func forecastParams(flags *pflag.FlagSet) (forecast.Params, error) {
	var p forecast.Params

	if flags.Changed("time-step") {
		p.TimeStep = &forecastTimeStep
	}
	if flags.Changed("horizon") {
		p.Horizon = &forecastHorizon
	}
	if flags.Changed("precision") {
		p.Precision = &forecastPrecision
	}
	if flags.Changed("fields") {
		p.Fields = forecast.ParseFields(forecastFields)
	}
	if forecastTimestamp || flags.Changed("timestamp-unit") {
		p.UseTimestampFormat(forecast.TimeStampUnit(forecastTimestampUnit))
	}

	return p, p.Validate()
}

func runForecast(cmd *cobra.Command, args []string) error {
	p, err := forecastParams(cmd.Flags())
	if err != nil {
		return fmt.Errorf("invalid forecast parameters: %w", err)
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	logger.Debug().
		Str("type", forecastType).
		Str("uuid", args[0]).
		Msg("Fetching forecast")

	table, err := forecast.Get(cmd.Context(), client, forecast.ObjectType(forecastType), args[0], p)
	if err != nil {
		return err
	}

	return newPrinter(cmd.OutOrStdout(), cfg.Output.Format).print(forecastOutput(table), func(w io.Writer) error {
		return writeForecastTable(w, table)
	})
}

type forecastDocument struct {
	Columns []string     `json:"columns"`
	Index   []string     `json:"index"`
	Data    [][]*float64 `json:"data"`
}

// forecastOutput converts the table into an encodable document. Missing
// values become null.
func forecastOutput(table *forecast.Table) forecastDocument {
	doc := forecastDocument{
		Columns: table.Columns,
		Index:   make([]string, table.Len()),
		Data:    make([][]*float64, len(table.Data)),
	}
	for i, ts := range table.Index {
		doc.Index[i] = ts.Format(time.RFC3339)
	}
	for i, row := range table.Data {
		doc.Data[i] = make([]*float64, len(row))
		for j, v := range row {
			if !math.IsNaN(v) {
				doc.Data[i][j] = &row[j]
			}
		}
	}
	return doc
}

func writeForecastTable(w io.Writer, table *forecast.Table) error {
	fmt.Fprint(w, "TIME")
	for _, c := range table.Columns {
		fmt.Fprintf(w, "\t%s", c)
	}
	fmt.Fprintln(w)

	for i, ts := range table.Index {
		fmt.Fprint(w, ts.Format(time.RFC3339))
		for _, v := range table.Data[i] {
			if math.IsNaN(v) {
				fmt.Fprint(w, "\t-")
				continue
			}
			fmt.Fprintf(w, "\t%s", strconv.FormatFloat(v, 'f', -1, 64))
		}
		fmt.Fprintln(w)
	}
	return nil
}
