// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/orghelper/lib/orgauto"
)

type textStyles struct {
	badges map[orgauto.Outcome]lipgloss.Style
	index  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
}

// newTextStyles binds styles to a renderer for w, so color is emitted
// only when w is a color-capable terminal.
func newTextStyles(w io.Writer) textStyles {
	renderer := lipgloss.NewRenderer(w)
	badge := func(color string) lipgloss.Style {
		return renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Width(10)
	}
	return textStyles{
		badges: map[orgauto.Outcome]lipgloss.Style{
			orgauto.OutcomeSucceeded: badge("2"),
			orgauto.OutcomePartial:   badge("3"),
			orgauto.OutcomeFailed:    badge("1"),
		},
		index: renderer.NewStyle().Faint(true),
		label: renderer.NewStyle().Bold(true),
		muted: renderer.NewStyle().Faint(true),
	}
}

func renderText(w io.Writer, records []orgauto.Record) error {
	styles := newTextStyles(w)
	var builder strings.Builder

	for _, record := range records {
		if record.Result == nil {
			continue
		}
		badge, ok := styles.badges[record.Outcome]
		if !ok {
			badge = styles.label.Width(10)
		}
		fmt.Fprintf(&builder, "%s %s %s",
			styles.index.Render(fmt.Sprintf("[%d]", record.Index)),
			badge.Render(string(record.Outcome)),
			string(record.Operation))
		if summary := resourceSummary(record.Resource); summary != "" {
			fmt.Fprintf(&builder, "  %s", styles.muted.Render(summary))
		}
		builder.WriteString("\n")

		writeField(&builder, styles, "info", record.Info)
		writeField(&builder, styles, "warning", record.Warning)
		writeField(&builder, styles, "manual", record.ManualInstructions)
		writeField(&builder, styles, "note", record.DescriptionNote)
		if record.Error != nil {
			writeField(&builder, styles, string(record.Error.Kind), record.Error.Message)
		}
	}

	succeeded, partial, failed := tally(records)
	fmt.Fprintf(&builder, "\n%d succeeded, %d partial, %d failed\n", succeeded, partial, failed)

	_, err := io.WriteString(w, builder.String())
	return err
}

func writeField(builder *strings.Builder, styles textStyles, label, value string) {
	if value == "" {
		return
	}
	lines := strings.Split(strings.TrimRight(value, "\n"), "\n")
	fmt.Fprintf(builder, "    %s %s\n", styles.label.Render(label+":"), lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(builder, "      %s\n", line)
	}
}

// resourceSummary picks the most identifying fields GitHub returns for
// teams, memberships, and projects.
func resourceSummary(resource json.RawMessage) string {
	if len(resource) == 0 {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(resource, &fields); err != nil {
		return ""
	}
	var parts []string
	for _, key := range []string{"slug", "title", "role", "state"} {
		if value, ok := fields[key].(string); ok && value != "" {
			parts = append(parts, value)
		}
	}
	for _, key := range []string{"html_url", "url"} {
		if value, ok := fields[key].(string); ok && value != "" {
			parts = append(parts, value)
			break
		}
	}
	return strings.Join(parts, " ")
}

func tally(records []orgauto.Record) (succeeded, partial, failed int) {
	for _, record := range records {
		if record.Result == nil {
			continue
		}
		switch record.Outcome {
		case orgauto.OutcomeSucceeded:
			succeeded++
		case orgauto.OutcomePartial:
			partial++
		case orgauto.OutcomeFailed:
			failed++
		}
	}
	return succeeded, partial, failed
}
