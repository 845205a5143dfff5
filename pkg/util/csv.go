package util

import (
	"bufio"
	"io"
	"strings"
)

// EscapeCSVField quotes a field that contains a comma, a double quote or a
// line break, doubling any embedded quotes. Other fields are returned as is.
func EscapeCSVField(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteCSV writes the header and rows as comma-separated lines ending in "\n".
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	bw := bufio.NewWriter(w)
	if err := writeCSVLine(bw, header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeCSVLine(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCSVLine(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(EscapeCSVField(f)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
