/*
Copyright © 2025 ocrlab
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ocrlab/pdf-ocr-be/config"
	"github.com/ocrlab/pdf-ocr-be/service"
	"github.com/ocrlab/pdf-ocr-be/types"
	"github.com/spf13/cobra"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <pdf-file>...",
	Short: "OCR PDF files from the command line",
	Long: `Runs the same pipeline as the web UI over PDF files given as
arguments, printing per-page progress to stdout and writing one Markdown
file per input into the output directory.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		registry := service.NewRegistryService()
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Fatalf("Failed to read %s: %v", path, err)
			}
			if err := registry.Add(filepath.Base(path), data); err != nil {
				log.Printf("Skipping %s: %v", path, err)
			}
		}

		renderer := service.NewRenderService(cfg.RenderZoom)
		vision := service.NewOpenAIVisionService(
			cfg.AIEndpoint,
			cfg.OpenAIAPIKey,
			cfg.Model,
			time.Duration(cfg.PageTimeoutSeconds)*time.Second,
		)
		writer := service.NewOutputService(cfg.OutputDir)
		extract := service.NewExtractService(renderer, vision, writer)

		statusChan := make(chan types.ProcessingStatus, 64)
		printerDone := make(chan struct{})
		go func() {
			defer close(printerDone)
			for status := range statusChan {
				switch status.Status {
				case types.StatusProcessing:
					fmt.Printf("  %s: page %d/%d\n", status.File, status.ProcessedPages, status.TotalPages)
				case types.StatusFileDone:
					fmt.Printf("✔ %s: %s\n", status.File, status.Message)
				case types.StatusFileFailed:
					fmt.Printf("❌ %s: %s\n", status.File, status.Message)
				case types.StatusWarning:
					fmt.Printf("⚠ %s: %s\n", status.File, status.Message)
				case types.StatusCompleted:
					fmt.Println(status.Message)
				}
			}
		}()

		summary, err := extract.Process(context.Background(), registry.List(), statusChan)
		close(statusChan)
		<-printerDone
		if err != nil {
			log.Fatalf("Processing aborted: %v", err)
		}

		for _, res := range summary.Files {
			if res.Success {
				fmt.Printf("✔ %s → %s\n", res.Name, res.OutputPath)
			} else {
				fmt.Printf("❌ %s (%s)\n", res.Name, res.Error)
			}
		}
		fmt.Printf("Total processing time: %.2f seconds\n", summary.ElapsedSeconds)
		if summary.Failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
