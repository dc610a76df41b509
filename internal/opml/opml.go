// Package opml parses OPML outline documents into importable test-case
// records. The expected document shape is one root outline whose children
// are cases; each case has section outlines (precondition, steps, expected
// result, priority) whose children are the individual lines.
package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"tcm-go/internal/model"
	"tcm-go/internal/tcm"
)

type outline struct {
	Text     string    `xml:"text,attr"`
	Children []outline `xml:"outline"`
}

type document struct {
	XMLName xml.Name `xml:"opml"`
	Body    struct {
		Outlines []outline `xml:"outline"`
	} `xml:"body"`
}

// Parse reads an OPML document and produces one ImportedCase per
// second-level outline, in document order. Multi-line fields are built by
// joining the section's child texts with the line marker, with ordinal
// prefixes stripped and blank lines dropped.
func Parse(r io.Reader) ([]model.ImportedCase, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding opml: %w", err)
	}

	var cases []model.ImportedCase
	for _, root := range doc.Body.Outlines {
		for _, caseOutline := range root.Children {
			cases = append(cases, parseCase(caseOutline))
		}
	}
	return cases, nil
}

// ParseFile parses the OPML document at path.
func ParseFile(path string) ([]model.ImportedCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening opml file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func parseCase(o outline) model.ImportedCase {
	c := model.ImportedCase{
		Name:     o.Text,
		Priority: model.PriorityLow,
		Status:   model.StatusPending,
	}

	for _, section := range o.Children {
		lines := make([]string, 0, len(section.Children))
		for _, item := range section.Children {
			lines = append(lines, item.Text)
		}
		content := tcm.JoinLines(lines)

		switch strings.ToLower(strings.TrimSpace(section.Text)) {
		case "前置条件", "precondition":
			c.Precondition = content
		case "操作步骤", "steps":
			c.Steps = content
		case "预期结果", "expected result", "expectedresult":
			c.ExpectedResult = content
		case "优先级", "priority":
			c.Priority = parsePriority(content)
		}
	}
	return c
}

// parsePriority derives a priority from free-form text: p1 means high,
// p2 means medium, anything else is low.
func parsePriority(text string) model.Priority {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "p1"):
		return model.PriorityHigh
	case strings.Contains(lower, "p2"):
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
