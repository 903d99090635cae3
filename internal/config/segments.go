package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Segment names as they appear in output.
const (
	SegmentHigh   = "high_value"
	SegmentMedium = "medium_value"
	SegmentLow    = "low_value"
)

// SegmentMap assigns customer-value segments to skills and queues by
// name. Matching is case-insensitive substring containment, so a list
// entry "ventas" tags both "Ventas" and "Ventas_Empresas".
type SegmentMap struct {
	HighValue   []string `yaml:"high_value"`
	MediumValue []string `yaml:"medium_value"`
	LowValue    []string `yaml:"low_value"`
}

// DefaultSegmentMap carries the reference segmentation.
func DefaultSegmentMap() SegmentMap {
	return SegmentMap{
		HighValue:   []string{"VIP", "Premium"},
		MediumValue: []string{"Soporte_General", "Ventas"},
		LowValue:    []string{"Basico"},
	}
}

// LoadSegmentMap reads a mapping file. An empty path returns the default
// mapping.
func LoadSegmentMap(path string) (SegmentMap, error) {
	if path == "" {
		return DefaultSegmentMap(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SegmentMap{}, eris.Wrap(err, "config: read segment map")
	}
	var m SegmentMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return SegmentMap{}, eris.Wrap(err, "config: parse segment map")
	}
	return m, nil
}

// Resolve returns the segment for a (skill, queue) pair, or "" when no
// list matches. Higher-value lists win on overlap.
func (m SegmentMap) Resolve(skill, queue string) string {
	name := strings.ToLower(skill + " " + queue)
	for _, probe := range []struct {
		names   []string
		segment string
	}{
		{m.HighValue, SegmentHigh},
		{m.MediumValue, SegmentMedium},
		{m.LowValue, SegmentLow},
	} {
		for _, n := range probe.names {
			if n != "" && strings.Contains(name, strings.ToLower(n)) {
				return probe.segment
			}
		}
	}
	return ""
}
