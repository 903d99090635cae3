package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/beyondcx/metrics-cli/internal/grouping"
	"github.com/beyondcx/metrics-cli/internal/model"
)

// Peak hours are 10:00-19:59 local to the export's timestamps.
const (
	peakStartHour = 10
	peakEndHour   = 20
)

// seasonalityCVThreshold flags a dataset as highly seasonal when the CV of
// its monthly volumes exceeds it.
const seasonalityCVThreshold = 0.5

// daysPerMonth is the mean Gregorian month length, used to derive monthly
// volume from an observed date span.
const daysPerMonth = 30.44

// Volumetry summarizes when and where the traffic arrived. Records with
// unparseable timestamps still count toward totals and channel shares but
// are excluded from every date-dependent distribution.
func Volumetry(records []model.InteractionRecord) model.VolumetrySummary {
	v := model.VolumetrySummary{TotalRecords: len(records)}
	if len(records) == 0 {
		v.MonthsSpanned = 1
		return v
	}

	channels, counts := grouping.CountBy(records, func(r model.InteractionRecord) string { return r.Channel })
	for _, ch := range channels {
		v.Channels = append(v.Channels, model.ChannelVolume{
			Channel: ch,
			Volume:  counts[ch],
			Pct:     100 * float64(counts[ch]) / float64(len(records)),
		})
	}
	sort.SliceStable(v.Channels, func(i, j int) bool {
		if v.Channels[i].Volume != v.Channels[j].Volume {
			return v.Channels[i].Volume > v.Channels[j].Volume
		}
		return v.Channels[i].Channel < v.Channels[j].Channel
	})

	monthly := make(map[string]int)
	for _, r := range records {
		if r.StartAt == nil {
			continue
		}
		t := *r.StartAt
		if v.DateStart == nil || t.Before(*v.DateStart) {
			v.DateStart = &t
		}
		if v.DateEnd == nil || t.After(*v.DateEnd) {
			v.DateEnd = &t
		}
		v.HourlyVolume[t.Hour()]++
		v.WeekdayVolume[int(t.Weekday())]++
		if t.Hour() >= peakStartHour && t.Hour() < peakEndHour {
			v.PeakVolume++
		} else {
			v.OffPeakVolume++
		}
		monthly[t.Format("2006-01")]++
	}
	if len(monthly) > 0 {
		v.MonthlyVolumes = monthly
	}

	v.MonthsSpanned = monthsSpanned(v.DateStart, v.DateEnd)

	// Sum in sorted month order so float rounding is reproducible.
	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)
	monthlyCounts := make([]float64, 0, len(months))
	for _, m := range months {
		monthlyCounts = append(monthlyCounts, float64(monthly[m]))
	}
	if mean, std := meanStdDev(monthlyCounts); mean > 0 {
		v.SeasonalityCV = std / mean
		v.HighlySeasonal = v.SeasonalityCV > seasonalityCVThreshold
	}
	return v
}

// monthsSpanned converts an observed date range into whole months, never
// less than one. A dataset with no parseable timestamps counts as one
// month.
func monthsSpanned(start, end *time.Time) int {
	if start == nil || end == nil {
		return 1
	}
	days := end.Sub(*start).Hours() / 24
	months := int(math.Round(days / daysPerMonth))
	if months < 1 {
		return 1
	}
	return months
}

// MonthlyVolume derives a group's monthly volume from its size and the
// dataset's observed span.
func MonthlyVolume(volume, months int) float64 {
	if months < 1 {
		months = 1
	}
	return float64(volume) / float64(months)
}
