package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ooyeku/csv_parser/pkg/csv"
	"github.com/spf13/cobra"
)

var strict bool

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate CSV file structure",
	Long: `Validate the structure of a CSV file by checking:
- Consistent number of columns across all rows
- Proper quote and delimiter usage
- No malformed rows

Example:
  csv_parser validate data.csv
  csv_parser validate --strict data.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		// Open the file
		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("error opening file: %w", err)
		}
		defer file.Close()

		// Field-count enforcement is done here, row by row, rather than by
		// the reader. Without --strict a mismatch is recorded and every row
		// is still counted; with --strict the scan stops at the first one.
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1

		var (
			rowCount         int
			columnCount      int
			validationErrors []string
		)

		// Validate records
		for {
			record, err := reader.Read()
			if err != nil {
				if err == io.EOF {
					break
				}
				var perr *csv.ParseError
				if !strict && errors.As(err, &perr) {
					validationErrors = append(validationErrors, perr.Error())
					continue
				}
				return fmt.Errorf("error reading record: %w", err)
			}

			rowCount++

			// Check column consistency
			if rowCount == 1 {
				columnCount = len(record)
			} else if len(record) != columnCount {
				validationErrors = append(validationErrors, fmt.Sprintf("Row %d: Expected %d columns, got %d",
					rowCount, columnCount, len(record)))
				if !strict {
					continue
				}
				break
			}

			// In strict mode, check for empty fields
			if strict {
				for i, field := range record {
					if field == "" {
						validationErrors = append(validationErrors, fmt.Sprintf("Row %d, Column %d: Empty field",
							rowCount, i+1))
					}
				}
			}
		}

		// Display results
		fmt.Printf("File: %s\n", filePath)
		fmt.Printf("Rows processed: %d\n", rowCount)
		fmt.Printf("Columns per row: %d\n", columnCount)

		if len(validationErrors) > 0 {
			fmt.Println("\nValidation Errors:")
			for _, err := range validationErrors {
				fmt.Printf("- %s\n", err)
			}
			return fmt.Errorf("validation failed with %d errors", len(validationErrors))
		}

		fmt.Println("\nValidation successful! No errors found.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVarP(&strict, "strict", "s", false,
		"Enable strict validation (no empty fields allowed)")
}
