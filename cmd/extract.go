package main

import (
	"fmt"

	"github.com/mailio/go-campaign-console/services"
	"github.com/spf13/cobra"
)

var (
	columnName string
	workers    int
	outputPath string
)

func init() {
	extractCmd.Flags().StringVar(&csvPath, "csv", "", "CSV file listing the websites")
	extractCmd.Flags().StringVar(&columnName, "column", "", "name of the website column")
	extractCmd.Flags().IntVarP(&workers, "workers", "w", 10, "concurrent workers on the server (1-50)")
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file or directory (default: server filename in the current directory)")
	extractCmd.MarkFlagRequired("csv")
	extractCmd.MarkFlagRequired("column")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract email addresses for the websites of a CSV column",
	Long:  `Extraction runs on the server and may take several minutes. The resulting CSV is written locally.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		s := openPanel(ctx, services.TabExtract).(*services.ExtractService)
		s.CSVPath = csvPath
		s.ColumnName = columnName
		s.Workers = workers
		s.OutputPath = outputPath
		out, path, err := s.Submit(ctx)
		check(err)
		if out.Message != "" {
			fmt.Println(out.Message)
		}
		fmt.Printf("Rows: %d, emails found: %d\nWritten to %s\n", out.TotalRows, out.EmailsFound, path)
	},
}
