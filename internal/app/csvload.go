package app

import (
	"bufio"
	"fmt"
	"strings"

	"yashubustudio/labelclean/labelclean"
)

type csvColumnChoice struct {
	Index int
	Label string
}

func splitNonEmptyLines(s string) []string {
	scanner := bufio.NewScanner(strings.NewReader(s))
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	lines := make([]string, 0)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func linesToRecords(lines []string) []labelclean.RawRecord {
	records := make([]labelclean.RawRecord, len(lines))
	for i, line := range lines {
		records[i] = labelclean.RawRecord{Index: i, Text: line}
	}
	return records
}

// recordsForInput returns loaded when the entry still shows the loaded file
// unchanged, so blank cells keep their rows. Edited or pasted text is split
// into non-blank lines.
func recordsForInput(text string, loaded []labelclean.RawRecord, loadedText string) []labelclean.RawRecord {
	if loaded != nil && text == loadedText {
		return loaded
	}
	return linesToRecords(splitNonEmptyLines(text))
}

func recordsText(records []labelclean.RawRecord) string {
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.Text
	}
	return strings.Join(lines, "\n")
}

func buildCSVColumnChoices(records [][]string, hasHeader bool) []csvColumnChoice {
	maxCols := 0
	for _, row := range records {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	choices := make([]csvColumnChoice, 0, maxCols)
	for col := 0; col < maxCols; col++ {
		header := fmt.Sprintf("列%d", col+1)
		if hasHeader && len(records) > 0 && col < len(records[0]) {
			if h := strings.TrimSpace(records[0][col]); h != "" {
				header = h
			}
		}
		label := fmt.Sprintf("[%d] %s", col+1, header)
		if sample := csvColumnSample(records, col, hasHeader); sample != "" {
			label = fmt.Sprintf("%s (例: %s)", label, sample)
		}
		choices = append(choices, csvColumnChoice{Index: col, Label: label})
	}
	return choices
}

func csvColumnSample(records [][]string, col int, hasHeader bool) string {
	start := 0
	if hasHeader {
		start = 1
	}
	for i := start; i < len(records); i++ {
		row := records[i]
		if col >= len(row) {
			continue
		}
		if val := strings.TrimSpace(row[col]); val != "" {
			return truncateSampleValue(val, 20)
		}
	}
	return ""
}

func truncateSampleValue(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "…"
}
