package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/output"
)

// importFlags are shared by every command that reads records.
type importFlags struct {
	worksheet        string
	worksheetIndex   int
	defaultWorksheet string
	importType       string
	encoding         string
	delimiter        string
	stringValues     bool
}

var (
	outputPath   string
	outputFormat string
	pretty       bool
)

func (f *importFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.worksheet, "worksheet", "w", "", "Worksheet name")
	cmd.Flags().IntVar(&f.worksheetIndex, "worksheet-index", 0, "Zero-based worksheet index")
	cmd.Flags().StringVar(&f.defaultWorksheet, "default-worksheet", "", "Worksheet to use when neither name nor index match")
	cmd.Flags().StringVarP(&f.importType, "type", "t", "", "Import type: empty, update or append")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "Character set of CSV and XLS files (default utf-8)")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter (default: detect)")
	cmd.Flags().BoolVar(&f.stringValues, "strings", false, "Keep cell values as text")
}

// options converts the flags into import options, falling back to the
// configured defaults.
func (f *importFlags) options(cmd *cobra.Command) (sheetimport.Options, error) {
	opts := sheetimport.Options{
		Worksheet:        f.worksheet,
		DefaultWorksheet: f.defaultWorksheet,
		Type:             sheetimport.ImportType(f.importType),
		Encoding:         f.encoding,
		StringValues:     f.stringValues,
	}
	if cmd.Flags().Changed("worksheet-index") {
		opts.WorksheetIndex = sheetimport.SheetIndex(f.worksheetIndex)
	}

	d, err := parseDelimiter(f.delimiter)
	if err != nil {
		return opts, err
	}
	opts.Delimiter = d

	if cfg != nil {
		if opts.Encoding == "" {
			opts.Encoding = cfg.Import.Encoding
		}
		if opts.Type == sheetimport.TypeDefault {
			opts.Type = sheetimport.ImportType(cfg.Import.Type)
		}
	}
	return opts, opts.Validate()
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("invalid delimiter: %q (must be a single character)", s)
	}
	return r[0], nil
}

func newRecordsCmd() *cobra.Command {
	flags := &importFlags{}
	cmd := &cobra.Command{
		Use:   "records [input]",
		Short: "Print the records of one worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}

			records, err := sheetimport.New(logger).PrepareEntityData(args[0], opts)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			var data []byte
			switch outputFormat {
			case "json":
				data, err = output.ToJSON(records, pretty)
			case "toon":
				var s string
				s, err = output.RecordsToTOON(records)
				data = []byte(s)
			default:
				return fmt.Errorf("invalid format: %s (must be json or toon)", outputFormat)
			}
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(data)
		},
	}
	flags.register(cmd)
	addOutputFlags(cmd)
	return cmd
}

func newWorksheetsCmd() *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "worksheets [input]",
		Short: "List worksheets with their row counts and used ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if encoding == "" && cfg != nil {
				encoding = cfg.Import.Encoding
			}
			info, err := sheetimport.New(logger).Inspect(args[0], sheetimport.Options{Encoding: encoding})
			if err != nil {
				return fmt.Errorf("inspection failed: %w", err)
			}

			var data []byte
			switch outputFormat {
			case "json":
				data, err = output.ToJSON(info, pretty)
			case "toon":
				var s string
				s, err = output.WorkbookToTOON(info)
				data = []byte(s)
			default:
				return fmt.Errorf("invalid format: %s (must be json or toon)", outputFormat)
			}
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(data)
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "", "Character set of CSV and XLS files (default utf-8)")
	addOutputFlags(cmd)
	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json, toon")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
}

func writeOutput(data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(data))
	return nil
}
