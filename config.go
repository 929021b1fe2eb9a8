package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"polydock/internal/shape"
	"polydock/internal/viewport"
)

type Config struct {
	SaveDirectory string
	Storage       string // "file" or "sqlite"
	Database      string
	Confirmations bool
	CanvasWidth   float64
	CanvasHeight  float64
	MinScale      float64
	BufferRows    int
	LogFile       string
	LogLevel      string
	Fill          string
	Stroke        string
}

func defaultConfig(homeDir string) *Config {
	base := filepath.Join(homeDir, ".polydock")
	st := shape.DefaultStyle()
	return &Config{
		SaveDirectory: base,
		Storage:       "file",
		Database:      filepath.Join(base, "polydock.db"),
		Confirmations: true,
		CanvasWidth:   800,
		CanvasHeight:  400,
		MinScale:      viewport.DefaultMinScale,
		BufferRows:    8,
		LogFile:       filepath.Join(base, "polydock.log"),
		LogLevel:      "info",
		Fill:          st.Fill,
		Stroke:        st.Stroke,
	}
}

// loadConfig reads ~/.polydockrc and then applies POLYDOCK_* environment
// overrides. A missing file leaves the defaults in place.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	config := defaultConfig(homeDir)

	if file, err := os.Open(filepath.Join(homeDir, ".polydockrc")); err == nil {
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			config.set(homeDir, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
		file.Close()
	}

	for _, key := range []string{
		"savedirectory", "storage", "database", "confirmations", "canvaswidth",
		"canvasheight", "minscale", "bufferrows", "logfile", "loglevel", "fill", "stroke",
	} {
		if value := os.Getenv("POLYDOCK_" + strings.ToUpper(key)); value != "" {
			config.set(homeDir, key, value)
		}
	}
	return config
}

func (c *Config) set(homeDir, key, value string) {
	switch strings.ToLower(key) {
	case "savedirectory", "save_directory", "savedir":
		c.SaveDirectory = expandPath(homeDir, value)
	case "storage":
		if v := strings.ToLower(value); v == "file" || v == "sqlite" {
			c.Storage = v
		}
	case "database", "db":
		c.Database = expandPath(homeDir, value)
	case "confirmations", "confirm":
		c.Confirmations = strings.ToLower(value) == "true"
	case "canvaswidth":
		c.CanvasWidth = parsePositive(value, c.CanvasWidth)
	case "canvasheight":
		c.CanvasHeight = parsePositive(value, c.CanvasHeight)
	case "minscale":
		if v := parsePositive(value, c.MinScale); v <= 1 {
			c.MinScale = v
		}
	case "bufferrows":
		if n, err := strconv.Atoi(value); err == nil && n >= 3 {
			c.BufferRows = n
		}
	case "logfile":
		c.LogFile = expandPath(homeDir, value)
	case "loglevel":
		c.LogLevel = strings.ToLower(value)
	case "fill":
		c.Fill = value
	case "stroke":
		c.Stroke = value
	}
}

func expandPath(homeDir, value string) string {
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func parsePositive(value string, fallback float64) float64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

func (c *Config) Style() shape.Style {
	st := shape.DefaultStyle()
	st.Fill = c.Fill
	st.Stroke = c.Stroke
	return st
}
