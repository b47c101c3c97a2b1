package benchmark

import (
	"strings"
	"testing"

	"github.com/ooyeku/csv_parser/pkg/csv"
)

func BenchmarkCSVParser(b *testing.B) {
	benchData := GenerateBenchmarkData()

	for _, data := range benchData {
		b.Run(data.Name, func(b *testing.B) {
			b.ResetTimer()
			b.SetBytes(data.FileSize)

			for i := 0; i < b.N; i++ {
				reader := csv.NewReader(strings.NewReader(data.Content))
				reader.FieldsPerRecord = -1

				var rowCount int
				for {
					_, err := reader.Read()
					if err != nil {
						break
					}
					rowCount++
				}
			}
		})
	}
}

func BenchmarkCSVParserWithConfig(b *testing.B) {
	// Test different reader configurations
	configs := map[string]func(*csv.Reader){
		"default": func(r *csv.Reader) {},
		"lazy_quotes": func(r *csv.Reader) {
			r.LazyQuotes = true
		},
		"semicolon_delimiter": func(r *csv.Reader) {
			r.Comma = ';'
		},
		"skip_header": func(r *csv.Reader) {
			r.SkipHeader = true
		},
	}

	// Use complex data for config testing
	data := generateComplexCSV(10000)

	for name, configure := range configs {
		b.Run(name, func(b *testing.B) {
			b.ResetTimer()
			b.SetBytes(data.FileSize)

			for i := 0; i < b.N; i++ {
				reader := csv.NewReader(strings.NewReader(data.Content))
				reader.FieldsPerRecord = -1
				configure(reader)

				var rowCount int
				for {
					_, err := reader.Read()
					if err != nil {
						break
					}
					rowCount++
				}
			}
		})
	}
}

func BenchmarkCSVParserMemory(b *testing.B) {
	// Test memory allocation patterns
	sizes := []int{1000, 10000, 100000}

	for _, size := range sizes {
		data := generateSimpleCSV(size)
		b.Run(data.Name, func(b *testing.B) {
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				reader := csv.NewReader(strings.NewReader(data.Content))
				reader.FieldsPerRecord = -1

				var rowCount int
				for {
					_, err := reader.Read()
					if err != nil {
						break
					}
					rowCount++
				}
			}
		})
	}
}
