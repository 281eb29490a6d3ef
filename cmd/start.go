/*
Copyright © 2025 ocrlab
*/
package cmd

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ocrlab/pdf-ocr-be/config"
	"github.com/ocrlab/pdf-ocr-be/handler"
	"github.com/ocrlab/pdf-ocr-be/service"
	"github.com/ocrlab/pdf-ocr-be/static"
	"github.com/spf13/cobra"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the OCR web server",
	Long:  `Starts the server hosting the upload UI and the OCR processing API`,
	Run: func(cmd *cobra.Command, args []string) {

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Initialize services
		registry := service.NewRegistryService()
		renderer := service.NewRenderService(cfg.RenderZoom)
		vision := service.NewOpenAIVisionService(
			cfg.AIEndpoint,
			cfg.OpenAIAPIKey,
			cfg.Model,
			time.Duration(cfg.PageTimeoutSeconds)*time.Second,
		)
		writer := service.NewOutputService(cfg.OutputDir)
		extract := service.NewExtractService(renderer, vision, writer)
		wsService := service.NewWebSocketService(registry, extract)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(registry, cfg.MaxUploadSizeMB<<20)
		processHandler := handler.NewProcessHandler(registry, extract)
		outputHandler := handler.NewOutputHandler(writer)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		// Upload UI
		router.GET("/", func(c *gin.Context) {
			page, err := static.Files.ReadFile("index.html")
			if err != nil {
				c.String(http.StatusInternalServerError, "UI not available")
				return
			}
			c.Data(http.StatusOK, "text/html; charset=utf-8", page)
		})

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/documents", uploadHandler.UploadDocumentHandler)
			apiV1.GET("/documents", uploadHandler.ListDocumentsHandler)
			apiV1.DELETE("/documents/:name", uploadHandler.RemoveDocumentHandler)
			apiV1.POST("/process", processHandler.HandleProcess)
			apiV1.GET("/process/status", processHandler.HandleProcessStatus)
			apiV1.GET("/ws/process", func(c *gin.Context) {
				wsService.HandleProcess(c.Writer, c.Request)
			})
			apiV1.GET("/outputs", outputHandler.ListOutputsHandler)
			apiV1.GET("/outputs/:name", outputHandler.ServeOutputHandler)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		log.Printf("Using model %s at %s, output in %s\n", cfg.Model, cfg.AIEndpoint, cfg.OutputDir)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
