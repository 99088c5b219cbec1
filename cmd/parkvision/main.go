package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"parkvision/internal/config"
	"parkvision/internal/imaging"
	"parkvision/internal/parking"
	"parkvision/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	imagePath := flag.String("image", "", "path to the parking lot image (required)")
	detectionsPath := flag.String("detections", "", "path to a JSON file of vehicle detections")
	totalSlots := flag.Int("total-slots", 0, "manual slot total used when no stall geometry is found")
	overlayPath := flag.String("out", "", "write an overlay PNG to this path")
	resultPath := flag.String("result", "", "write the result JSON to this path instead of stdout")
	showVersion := flag.Bool("version", false, "print version information")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if *showVersion {
		fmt.Printf("parkvision %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*imagePath, *detectionsPath, *totalSlots, *overlayPath, *resultPath); err != nil {
		switch {
		case errors.Is(err, imaging.ErrInvalidImage):
			log.Fatalf("Image error: %v", err)
		case errors.Is(err, parking.ErrMissingFallbackCount):
			log.Fatalf("No stall geometry found; re-run with -total-slots: %v", err)
		default:
			log.Fatalf("Error: %v", err)
		}
	}
}

func run(imagePath, detectionsPath string, totalSlots int, overlayPath, resultPath string) error {
	cfg := config.FromEnv()
	analyzer, err := parking.NewAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	cache := imaging.NewImageCache()
	img, err := cache.Load(imagePath)
	if err != nil {
		return err
	}

	var detections []parking.Detection
	if detectionsPath != "" {
		data, err := os.ReadFile(detectionsPath)
		if err != nil {
			return fmt.Errorf("failed to read detections: %w", err)
		}
		if err := json.Unmarshal(data, &detections); err != nil {
			return fmt.Errorf("failed to parse detections: %w", err)
		}
	}

	result, err := analyzer.Analyze(img, detections, totalSlots)
	if err != nil {
		return err
	}

	log.Printf("Analyzed %s: %d slots, %d occupied, %d free (%s, confidence %.2f)",
		imagePath, result.TotalSlots, result.OccupiedSlots, result.FreeSlots,
		result.Method, result.Confidence)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if resultPath != "" {
		if err := os.WriteFile(resultPath, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	} else {
		fmt.Println(string(out))
	}

	if overlayPath != "" {
		pngBytes, err := render.EncodePNG(img, result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(overlayPath, pngBytes, 0o644); err != nil {
			return fmt.Errorf("failed to write overlay: %w", err)
		}
		log.Printf("Saved overlay: %s", overlayPath)
	}

	return nil
}
