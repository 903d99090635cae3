// Package normalize turns raw export rows into InteractionRecords.
//
// The normalizer never fails a run on a dirty row: unparseable values fall
// back to safe defaults and the fallback is counted in Diagnostics, so a
// messy export degrades the analysis instead of aborting it.
package normalize

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/beyondcx/metrics-cli/internal/model"
)

// Options carries the classification thresholds.
type Options struct {
	NoiseThresholdSecs  float64 // handle times below this are noise
	ZombieThresholdSecs float64 // handle times above this are zombies
}

// DefaultOptions matches the thresholds used by the reference analysis:
// sub-10-second contacts are dialer noise, contacts over an hour are
// stuck sessions.
func DefaultOptions() Options {
	return Options{NoiseThresholdSecs: 10, ZombieThresholdSecs: 3600}
}

// Normalizer converts raw rows and accumulates diagnostics as it goes.
// It is not safe for concurrent use.
type Normalizer struct {
	opts Options
	diag model.Diagnostics
}

func New(opts Options) *Normalizer {
	return &Normalizer{
		opts: opts,
		diag: model.Diagnostics{StatusCounts: make(map[model.RecordStatus]int)},
	}
}

// Record normalizes one raw row, keyed by canonical field name. The second
// return is false when the row is dropped (no skill and no queue, so no
// group could ever claim it).
func (n *Normalizer) Record(row map[string]string) (model.InteractionRecord, bool) {
	n.diag.RowsRead++

	skill := strings.TrimSpace(row["skill"])
	queue := strings.TrimSpace(row["queue"])
	if skill == "" && queue == "" {
		n.diag.RowsDropped++
		return model.InteractionRecord{}, false
	}
	if skill == "" {
		skill = queue
	}

	rec := model.InteractionRecord{
		ID:               strings.TrimSpace(row["id"]),
		Skill:            skill,
		Queue:            queue,
		Channel:          strings.TrimSpace(row["channel"]),
		AgentID:          strings.TrimSpace(row["agent_id"]),
		StartAt:          n.parseTime(row["start_at"]),
		TalkSecs:         n.parseSeconds(row["talk_secs"]),
		HoldSecs:         n.parseSeconds(row["hold_secs"]),
		WrapUpSecs:       n.parseSeconds(row["wrap_secs"]),
		Transferred:      n.parseBool(row["transferred"]),
		RepeatedWithin7d: n.parseBool(row["repeated_7d"]),
		Abandoned:        n.parseBool(row["abandoned"]),
	}
	// The strict-FCR flag normally arrives precomputed; exports without it
	// fall back to "no transfer and no repeat within 7 days".
	if fcr, ok := row["fcr"]; ok && strings.TrimSpace(fcr) != "" {
		rec.FCRStrict = n.parseBool(fcr)
	} else {
		rec.FCRStrict = !rec.Transferred && !rec.RepeatedWithin7d
	}
	rec.Status = n.classify(rec, row["status"])
	n.diag.StatusCounts[rec.Status]++
	return rec, true
}

// Diagnostics returns the counters accumulated so far.
func (n *Normalizer) Diagnostics() model.Diagnostics {
	return n.diag
}

// classify resolves the record status. An explicit label from the export
// wins; otherwise the abandoned flag, then the duration thresholds.
func (n *Normalizer) classify(rec model.InteractionRecord, label string) model.RecordStatus {
	if status, ok := model.ParseRecordStatus(label); ok {
		return status
	}
	if rec.Abandoned {
		return model.StatusAbandoned
	}
	ht := rec.HandleTime()
	if ht < n.opts.NoiseThresholdSecs {
		return model.StatusNoise
	}
	if ht > n.opts.ZombieThresholdSecs {
		return model.StatusZombie
	}
	return model.StatusValid
}

// timeLayouts are tried in order; the first hit wins.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"02/01/2006",
}

func (n *Normalizer) parseTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	n.diag.BadTimestamps++
	return nil
}

// parseSeconds accepts plain numbers and hh:mm:ss / mm:ss durations.
// Anything else, and any negative value, becomes 0.
func (n *Normalizer) parseSeconds(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if strings.Contains(raw, ":") {
		if secs, ok := parseClock(raw); ok {
			return secs
		}
		n.diag.NumericDefaults++
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || v < 0 {
		n.diag.NumericDefaults++
		return 0
	}
	return v
}

func parseClock(raw string) (float64, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var secs float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return 0, false
		}
		secs = secs*60 + v
	}
	return secs, true
}

// stripAccents folds "sí" and friends to their ASCII form so the truthy
// set matches both spellings.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var truthy = map[string]struct{}{
	"true": {}, "t": {}, "1": {}, "yes": {}, "y": {}, "si": {}, "s": {},
}

var falsy = map[string]struct{}{
	"false": {}, "f": {}, "0": {}, "no": {}, "n": {}, "": {},
}

func (n *Normalizer) parseBool(raw string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	if folded, _, err := transform.String(stripAccents, v); err == nil {
		v = folded
	}
	if _, ok := truthy[v]; ok {
		return true
	}
	if _, ok := falsy[v]; !ok {
		n.diag.BooleanDefaults++
	}
	return false
}
