// Package main provides the CLI entry point for flatsheet.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/flatsheet-go/internal/config"
	"github.com/ukaji3/flatsheet-go/internal/server"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet"
)

var (
	configPath    string
	verbose       bool
	outputPath    string
	format        string
	pretty        bool
	sheetName     string
	headerRows    int
	delimiter     string
	stageKeywords []string
	addr          string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flatsheet [input.xlsx]",
		Short: "Flatten approval-workflow spreadsheets",
		Long: `flatsheet reads the first sheet of an approval-workflow workbook, resolves
merged cells, flattens its stage / role / field header into single column
names and writes a ';'-delimited table (or JSON records).`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: setup,
		RunE:              run,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")
	rootCmd.PersistentFlags().IntVar(&headerRows, "header-rows", flatsheet.DefaultHeaderRows, "Number of header rows (1-3)")
	rootCmd.PersistentFlags().StringArrayVar(&stageKeywords, "stage-keyword", nil, "Keyword marking a stage header (repeatable, replaces the default lexicon)")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: input with .csv/.json extension, - for stdout)")
	rootCmd.Flags().StringVar(&format, "format", string(flatsheet.FormatCSV), "Output format: csv, json")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV field delimiter (default: ;)")

	serveCmd := &cobra.Command{
		Use:   "serve [input.xlsx]",
		Short: "Serve the flattened workbook as JSON over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

var cfg *config.AppConfig

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	return nil
}

// options merges config file values with explicitly set flags.
func options(cmd *cobra.Command) (flatsheet.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("sheet") {
		opts.SheetName = sheetName
	}
	if flags.Changed("header-rows") {
		opts.HeaderRows = headerRows
	}
	if flags.Changed("stage-keyword") {
		opts.StageKeywords = stageKeywords
	}
	if flags.Lookup("format") != nil {
		opts.Format = flatsheet.Format(format)
	}
	opts.Pretty = pretty
	if flags.Changed("delimiter") {
		r, size := utf8.DecodeRuneInString(delimiter)
		if size == 0 || size != len(delimiter) {
			return opts, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		opts.Delimiter = r
	}

	return opts, opts.Validate()
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	opts, err := options(cmd)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		res, err := flatsheet.Flatten(inputPath, opts)
		if err != nil {
			return err
		}
		data, err := flatsheet.Render(res.Table, opts)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	res, err := flatsheet.Convert(inputPath, outputPath, opts)
	if err != nil {
		return err
	}
	if res.Filled > 0 {
		log.Debugf("%d merged cells filled", res.Filled)
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	opts, err := options(cmd)
	if err != nil {
		return err
	}
	opts.Format = flatsheet.FormatJSON

	input := cfg.Server.Input
	if len(args) == 1 {
		input = args[0]
	}
	if input == "" {
		return fmt.Errorf("no input workbook: pass one as argument or set server.input")
	}
	if _, err := os.Stat(input); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", input)
	}

	listen := cfg.Server.Addr
	if addr != "" {
		listen = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(input, opts).Run(ctx, listen)
}
