package segment

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/MichonGoddijn231849/emolens/internal/logging"
	"github.com/MichonGoddijn231849/emolens/internal/timecode"
)

// Column aliases accepted in artifact headers. Matching is case-insensitive
// and trimmed, so "Start", " start " and "START" all bind the start column.
var (
	startAliases       = []string{"start"}
	endAliases         = []string{"end"}
	textAliases        = []string{"sentence", "text"}
	translationAliases = []string{"translation"}
	labelAliases       = []string{"emotion", "label"}
	intensityAliases   = []string{"intensity_score", "intensity"}
	confidenceAliases  = []string{"confidence"}
)

// ParseArtifact reads a result artifact (CSV) and normalizes every row into
// a strongly-typed Event at the boundary.
//
// Rows with a malformed start timestamp or a blank emotion label are
// dropped and logged, never escalated; a missing start or emotion column is
// a structural error that fails the whole parse. Output is sorted by start
// offset with the original row order preserved on ties.
func ParseArtifact(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("artifact is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact header: %w", err)
	}

	cols := indexColumns(header)
	startCol, ok := cols.first(startAliases)
	if !ok {
		return nil, fmt.Errorf("artifact has no start column")
	}
	labelCol, ok := cols.first(labelAliases)
	if !ok {
		return nil, fmt.Errorf("artifact has no emotion column")
	}
	endCol, _ := cols.first(endAliases)
	textCol, _ := cols.first(textAliases)
	translationCol, _ := cols.first(translationAliases)
	intensityCol, _ := cols.first(intensityAliases)
	confidenceCol, _ := cols.first(confidenceAliases)

	var events []Event
	dropped := 0
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read artifact row: %w", err)
		}

		ev, ok := normalizeRow(record, rowColumns{
			start:       startCol,
			end:         endCol,
			text:        textCol,
			translation: translationCol,
			label:       labelCol,
			intensity:   intensityCol,
			confidence:  confidenceCol,
		})
		if !ok {
			logging.Warn("Dropping malformed artifact row", "line", line)
			dropped++
			continue
		}
		events = append(events, ev)
	}

	if dropped > 0 {
		logging.Info("Artifact parsed with dropped rows", "kept", len(events), "dropped", dropped)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartMs < events[j].StartMs
	})
	return events, nil
}

type rowColumns struct {
	start       int
	end         int
	text        int
	translation int
	label       int
	intensity   int
	confidence  int
}

func normalizeRow(record []string, cols rowColumns) (Event, bool) {
	startMs, err := timecode.Parse(field(record, cols.start))
	if err != nil {
		return Event{}, false
	}

	label := strings.ToLower(strings.TrimSpace(field(record, cols.label)))
	if label == "" {
		return Event{}, false
	}

	ev := Event{
		StartMs:     startMs,
		Label:       label,
		Text:        strings.TrimSpace(field(record, cols.text)),
		Translation: strings.TrimSpace(field(record, cols.translation)),
	}

	if raw := field(record, cols.end); raw != "" {
		if endMs, err := timecode.Parse(raw); err == nil && endMs >= startMs {
			ev.EndMs = endMs
			ev.HasEnd = true
		}
	}
	if raw := field(record, cols.intensity); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			ev.Intensity = v
			ev.HasIntensity = true
		}
	}
	if raw := field(record, cols.confidence); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 1 {
			ev.Confidence = v
			ev.HasConfidence = true
		}
	}

	return ev, true
}

func field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}

// columnIndex maps normalized header names to their positions.
type columnIndex map[string]int

func indexColumns(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}

// first returns the position of the first alias present in the header,
// or -1 when none match.
func (c columnIndex) first(aliases []string) (int, bool) {
	for _, a := range aliases {
		if i, ok := c[a]; ok {
			return i, true
		}
	}
	return -1, false
}

// WriteArtifact emits events in the exported correction shape: the same
// tabular layout the inference pipeline produces, so a corrected artifact
// can be re-ingested by anything that reads the original.
func WriteArtifact(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"start", "end", "sentence", "translation", "emotion"}); err != nil {
		return fmt.Errorf("failed to write artifact header: %w", err)
	}

	for _, ev := range events {
		end := ""
		if ev.HasEnd {
			end = timecode.Format(ev.EndMs)
		}
		row := []string{
			timecode.Format(ev.StartMs),
			end,
			ev.Text,
			ev.Translation,
			ev.Label,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write artifact row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
