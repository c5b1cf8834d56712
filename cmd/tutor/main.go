// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the optional file-based configuration for the tutor CLI.
//
// # Description
//
// Config is loaded from tutor.yaml in the working directory when the file
// exists. Every field has a usable zero value, so the file is optional:
// flags and environment variables cover the same settings.
//
// # Fields
//
//   - Backend: LLM backend name (anthropic, openai, ollama)
//   - Personality: Output style (standard, minimal, machine)
//   - Logging.Level: Minimum log level (debug, info, warning, error)
//   - Logging.Dir: Directory for log files ("" disables file logging)
//   - Tokens.Step: Token ceiling for step generation
//   - Tokens.Answer: Token ceiling for question answers
type Config struct {
	Backend     string `yaml:"backend"`
	Personality string `yaml:"personality"`
	Logging     struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`
	Tokens struct {
		Step   int `yaml:"step"`
		Answer int `yaml:"answer"`
	} `yaml:"tokens"`
}

var config Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

// loadConfig reads tutor.yaml from the working directory when present.
func loadConfig() error {
	yamlFile, err := os.ReadFile("tutor.yaml")
	if err != nil {
		// Config file is optional; flags and env cover everything.
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(yamlFile, &config); err != nil {
		return fmt.Errorf("parsing tutor.yaml: %w", err)
	}
	return nil
}
