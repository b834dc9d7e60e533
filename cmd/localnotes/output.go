package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/localnotes"
)

const (
	untitled   = "Untitled Note"
	dateLayout = "2006-01-02 15:04"
)

func displayTitle(n localnotes.Note) string {
	if n.Title == "" {
		return untitled
	}
	return n.Title
}

func formatDate(n localnotes.Note) string {
	return n.UpdatedTime().In(time.Local).Format(dateLayout)
}

func printNotes(w io.Writer, notes []localnotes.Note) {
	for _, n := range notes {
		fmt.Fprintf(w, "%s  %s  %s\n", n.ID, formatDate(n), displayTitle(n))
	}
}

func printNote(w io.Writer, n localnotes.Note) {
	fmt.Fprintf(w, "ID:      %s\n", n.ID)
	fmt.Fprintf(w, "Title:   %s\n", displayTitle(n))
	fmt.Fprintf(w, "Updated: %s\n", formatDate(n))
	if n.Content != "" {
		fmt.Fprintf(w, "\n%s\n", n.Content)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return encoder.Close()
}
