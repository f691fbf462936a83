// Package history renders the local save journal.
package history

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/lectern/internal/model"
)

const timeLayout = "2006-01-02 15:04"

// Render writes the records as an aligned table. Titles are truncated so that
// rows fit into width; width <= 0 disables truncation.
func Render(w io.Writer, records []model.SaveRecord, width int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No saves recorded yet.")
		return err
	}
	headers := []string{"When", "Action", "Course", "Lecture", "Title", "Result"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		result := "ok"
		if rec.Error != "" {
			result = "failed: " + rec.Error
		}
		lectureID := "-"
		if rec.LectureID != 0 {
			lectureID = strconv.FormatInt(rec.LectureID, 10)
		}
		rows = append(rows, []string{
			rec.SavedAt.Local().Format(timeLayout),
			string(rec.Action),
			strconv.FormatInt(rec.CourseID, 10),
			lectureID,
			rec.Title,
			result,
		})
	}
	lines := formatTable(headers, rows, map[int]bool{2: true, 3: true})
	for _, line := range lines {
		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := runewidth.StringWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}
