package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ooyeku/csv_parser/pkg/csv"
	"github.com/spf13/cobra"
)

var (
	delimiter string
	lazy      bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse and display CSV file contents",
	Long: `Parse and display the contents of a CSV file with customizable options for
delimiter and quote handling.

Example:
  csv_parser parse data.csv
  csv_parser parse --delimiter=";" data.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		// Open the file
		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("error opening file: %w", err)
		}
		defer func(file *os.File) {
			err := file.Close()
			if err != nil {
				fmt.Printf("Error closing file: %v\n", err)
			}
		}(file)

		reader := csv.NewReader(file)
		if delimiter != "" {
			reader.Comma = []byte(delimiter)[0]
		}
		reader.LazyQuotes = lazy
		reader.FieldsPerRecord = -1

		// Read and display records
		for {
			record, err := reader.Read()
			if err != nil {
				if err == io.EOF {
					break
				}
				return fmt.Errorf("error reading record: %w", err)
			}

			// Print the record
			for i, field := range record {
				if i > 0 {
					fmt.Print("\t")
				}
				fmt.Print(field)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	// Add flags
	parseCmd.Flags().StringVarP(&delimiter, "delimiter", "d", ",", "Field delimiter character")
	parseCmd.Flags().BoolVarP(&lazy, "lazy", "l", false, "Relax quote-state errors (lazy quoting)")
}
