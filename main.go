/*
Copyright © 2025 ocrlab
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/ocrlab/pdf-ocr-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// .env is optional; the config defaults cover a plain local run
	_ = godotenv.Load()
}
