// Command verify loads the classifier and checks that a synthetic image
// classifies the same way twice.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"reflect"

	"github.com/Brownie44l1/waste-api/internal/config"
	"github.com/Brownie44l1/waste-api/internal/logger"
	"github.com/Brownie44l1/waste-api/internal/model"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "optional YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	classifier, err := model.Open(context.Background(), model.Options{
		Name:            cfg.Model.Name,
		ModelPath:       cfg.Model.Path,
		MetadataPath:    cfg.Model.MetadataPath,
		URL:             cfg.Model.URL,
		LibraryPath:     cfg.Model.LibraryPath,
		DownloadTimeout: cfg.Model.DownloadTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	defer classifier.Close()

	img := image.NewRGBA(image.Rect(0, 0, 500, 500))
	for y := 0; y < 500; y++ {
		for x := 0; x < 500; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 120, B: 200, A: 255})
		}
	}

	first, err := classifier.Predict(img)
	if err != nil {
		return err
	}
	second, err := classifier.Predict(img)
	if err != nil {
		return err
	}

	out, _ := json.MarshalIndent(first, "", "  ")
	fmt.Printf("result: %s\n", out)
	fmt.Printf("labels: %v\n", classifier.Labels())

	if !reflect.DeepEqual(first, second) {
		return fmt.Errorf("predictions differ: %+v vs %+v", first, second)
	}
	return nil
}
