package report

import (
	"decisions/sensitivity"
	"decisions/tree"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named by the current timestamp.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteRiskProfile(profile tree.RiskProfile) error {
	rows := make([][]string, 0, len(profile))
	for _, v := range profile.Values() {
		rows = append(rows, []string{formatFloat(v), formatFloat(profile[v])})
	}
	return w.write("risk_profile.csv", []string{"value", "probability"}, rows)
}

// WriteTerminals stores every terminal outcome with the path that reaches it.
func (w *Writer) WriteTerminals(t *tree.Tree) error {
	var rows [][]string
	var walk func(id int, path []string)
	walk = func(id int, path []string) {
		n := t.Node(id)
		if n.HasEdge {
			path = append(path[:len(path):len(path)], n.EdgeVar+"="+formatFloat(n.EdgeValue))
		}
		if n.IsTerminal() {
			rows = append(rows, []string{
				strconv.Itoa(n.Number),
				strings.Join(path, " "),
				n.Formula,
				formatFloat(n.ExpectedValue),
				formatFloat(n.PathProbability),
				strconv.FormatBool(n.Selected),
			})
			return
		}
		for _, child := range n.Children {
			walk(child, path)
		}
	}
	walk(0, nil)

	header := []string{"number", "path", "formula", "value", "path_probability", "selected"}
	return w.write("terminals.csv", header, rows)
}

func (w *Writer) WriteSweep(records []sensitivity.Record) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Number),
			r.Tag,
			strconv.Itoa(r.Branch),
			r.EdgeVar,
			formatFloat(r.EdgeValue),
			formatFloat(r.RootValue),
			strconv.Itoa(r.RootOptimal),
		})
	}
	header := []string{"number", "tag", "branch", "edge_var", "edge_value", "root_value", "root_optimal"}
	return w.write("sensitivity.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
