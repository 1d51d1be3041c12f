package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card-swipe banner styles using shared brand colors from styles.go
var (
	bannerDimStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	bannerStripeStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	bannerEdgeStyle    = lipgloss.NewStyle().Foreground(colorPrimaryDark)
	bannerTitleStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	bannerTaglineStyle = lipgloss.NewStyle().Foreground(colorPrimaryLight).Italic(true)
	bannerVersionStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

func renderBanner() string {
	// Build styled characters
	edge := bannerEdgeStyle.Render("│")
	stripe := bannerStripeStyle.Render("════════════════════")
	chip := bannerDimStyle.Render("▪▪")
	title := bannerTitleStyle.Render("STRIPE HELPER")

	// A little payment card
	lines := []string{
		bannerEdgeStyle.Render("╭──────────────────────╮"),
		edge + " " + stripe + " " + edge,
		edge + " " + chip + "  " + title + "     " + edge,
		bannerEdgeStyle.Render("╰──────────────────────╯"),
	}

	return strings.Join(lines, "\n")
}

func renderBannerWithTagline() string {
	banner := renderBanner()
	tagline := bannerTaglineStyle.Render("  billing ops, one command at a time")
	ver := bannerVersionStyle.Render("                      " + version)

	return strings.Join([]string{banner, tagline, ver}, "\n")
}
