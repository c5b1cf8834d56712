// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides rich terminal output styling for the tutor CLI.
package ux

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Aleutian color palette - deep ocean teals and arctic waters
var (
	// Primary palette (brightest to darkest)
	ColorTealBright  = lipgloss.Color("#2CD7C7") // Bright teal - highlights, success
	ColorTealPrimary = lipgloss.Color("#20B9B4") // Primary teal - main brand color
	ColorTealDeep    = lipgloss.Color("#16858E") // Deep teal - borders, accents

	// Dark palette (for backgrounds, muted elements)
	ColorSlate = lipgloss.Color("#2C4A54") // Slate - muted text, borders

	// Semantic colors (keeping standard conventions for clarity)
	ColorSuccess = lipgloss.Color("#2CD7C7") // Bright teal for success
	ColorWarning = lipgloss.Color("#F4D03F") // Gold/amber for warnings
	ColorError   = lipgloss.Color("#E74C3C") // Red for errors
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	// Text styles
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	// Box styles
	Box        lipgloss.Style
	StepBox    lipgloss.Style
	AnswerBox  lipgloss.Style
	WarningBox lipgloss.Style
}{
	// Text styles
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorTealPrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorTealBright).Bold(true),

	// Box styles
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTealDeep).
		Padding(0, 1),
	StepBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTealPrimary).
		Padding(0, 1),
	AnswerBox: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorSlate).
		Padding(0, 1),
	WarningBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1),
}

// =============================================================================
// Icons
// =============================================================================

// Icon represents a terminal icon with optional styling
type Icon string

const (
	IconSuccess  Icon = "✓"
	IconWarning  Icon = "⚠"
	IconError    Icon = "✗"
	IconStep     Icon = "▸"
	IconQuestion Icon = "?"
	IconDone     Icon = "★"
	IconBullet   Icon = "•"
	IconInfo     Icon = "ℹ"
)

// Render returns the icon with appropriate styling applied
func (i Icon) Render() string {
	switch i {
	case IconSuccess, IconDone:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	case IconStep:
		return Styles.Highlight.Render(string(i))
	default:
		return string(i)
	}
}

// =============================================================================
// Output Helpers
// =============================================================================

// Title prints a prominent section title
func Title(text string) {
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		return
	}
	fmt.Println(Styles.Title.Render(text))
}

// Success prints a success message with icon
func Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Println(msg)
		return
	}
	fmt.Printf("%s %s\n", IconSuccess.Render(), msg)
}

// Warning prints a warning message with icon
func Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", msg)
		return
	}
	fmt.Printf("%s %s\n", IconWarning.Render(), Styles.Warning.Render(msg))
}

// Error prints an error message to stderr with icon
func Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", IconError.Render(), Styles.Error.Render(msg))
}

// Info prints an informational message
func Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Println(msg)
		return
	}
	fmt.Printf("%s %s\n", IconInfo.Render(), msg)
}

// Muted prints de-emphasized text (hints, key bindings)
func Muted(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		return
	}
	fmt.Println(Styles.Muted.Render(msg))
}

// Step prints a disclosed solution step inside a bordered box.
//
// In machine mode the step is printed as a plain "N. text" line so
// output stays parseable when piped.
func Step(number int, text string) {
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Printf("%d. %s\n", number, text)
		return
	}
	header := Styles.Subtitle.Render(fmt.Sprintf("Step %d", number))
	fmt.Println(Styles.StepBox.Render(header + "\n" + text))
}

// Answer prints a tutor answer to a side-channel question.
func Answer(text string) {
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Println(text)
		return
	}
	fmt.Println(Styles.AnswerBox.Render(text))
}

// Done prints the completion banner once the final step has been shown.
func Done(totalSteps int) {
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Println("DONE")
		return
	}
	msg := fmt.Sprintf("%s Problem complete after %d steps", IconDone.Render(), totalSteps)
	fmt.Println(Styles.Box.Render(msg))
}

// Box prints content in a rounded-border box
func Box(content string) {
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Println(content)
		return
	}
	fmt.Println(Styles.Box.Render(content))
}

// WarningBox prints content in a warning-styled box
func WarningBox(content string) {
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", content)
		return
	}
	fmt.Println(Styles.WarningBox.Render(content))
}

// StepList prints the numbered history of disclosed steps.
func StepList(problem string, steps []string) {
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Printf("problem: %s\n", problem)
		for i, s := range steps {
			fmt.Printf("%d. %s\n", i+1, s)
		}
		return
	}
	var b strings.Builder
	b.WriteString(Styles.Bold.Render("Problem: ") + problem)
	for i, s := range steps {
		b.WriteString(fmt.Sprintf("\n%s %d. %s", IconStep.Render(), i+1, s))
	}
	fmt.Println(Styles.Box.Render(b.String()))
}
