package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyondcx/metrics-cli/internal/model"
)

// queueRecords builds n valid records for one (skill, queue) pair with a
// deterministic AHT spread around mean.
func queueRecords(skill, queue string, n int, mean, spread float64) []model.InteractionRecord {
	out := make([]model.InteractionRecord, n)
	for i := range out {
		aht := mean
		if i%2 == 0 {
			aht += spread
		} else {
			aht -= spread
		}
		out[i] = model.InteractionRecord{
			ID:        fmt.Sprintf("%s-%s-%d", skill, queue, i),
			Skill:     skill,
			Queue:     queue,
			TalkSecs:  aht,
			Status:    model.StatusValid,
			FCRStrict: true,
		}
	}
	return out
}

func TestDrilldownScoresAndClassifies(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	records := queueRecords("Ventas", "V_Altas", 200, 240, 40)

	out, drops := engine.Drilldown(records, 1)
	require.Len(t, out, 1)
	require.Len(t, out[0].Queues, 1)

	q := out[0].Queues[0]
	assert.Equal(t, "V_Altas", q.Queue)
	assert.Equal(t, model.TierAutomate, q.Tier) // low CV, full FCR, 200/month
	assert.True(t, out[0].PriorityCandidate)
	assert.Zero(t, drops.QueuesBelowMinVolume)
}

func TestDrilldownDropsSmallGroups(t *testing.T) {
	engine := NewEngine(DefaultOptions())

	var records []model.InteractionRecord
	records = append(records, queueRecords("Ventas", "V_Altas", 20, 240, 40)...)
	records = append(records, queueRecords("Ventas", "V_Rare", 4, 240, 40)...) // below queue min
	records = append(records, queueRecords("Tiny", "T_1", 6, 240, 40)...)      // below skill min

	out, drops := engine.Drilldown(records, 1)
	require.Len(t, out, 1)
	assert.Equal(t, "Ventas", out[0].Skill)
	assert.Len(t, out[0].Queues, 1)
	assert.Equal(t, 1, drops.QueuesBelowMinVolume)
	assert.Equal(t, 1, drops.SkillsBelowMinVolume)
}

func TestDrilldownDropsQueuesWithoutValidSignal(t *testing.T) {
	engine := NewEngine(DefaultOptions())

	records := queueRecords("Ventas", "V_Altas", 2, 240, 40)
	for i := 0; i < 10; i++ {
		records = append(records, model.InteractionRecord{
			Skill: "Ventas", Queue: "V_Altas", TalkSecs: 3, Status: model.StatusNoise,
		})
	}

	out, drops := engine.Drilldown(records, 1)
	assert.Empty(t, out)
	assert.Equal(t, 1, drops.QueuesInsufficientValid)
}

func TestDrilldownUnidentifiedQueueBucket(t *testing.T) {
	engine := NewEngine(DefaultOptions())
	records := queueRecords("Ventas", "", 30, 240, 40)

	out, _ := engine.Drilldown(records, 1)
	require.Len(t, out, 1)
	require.Len(t, out[0].Queues, 1)
	assert.Empty(t, out[0].Queues[0].Queue)
	assert.Equal(t, 30, out[0].Queues[0].Volume)
}

func TestDrilldownVolumeWeightedRollup(t *testing.T) {
	engine := NewEngine(DefaultOptions())

	var records []model.InteractionRecord
	records = append(records, queueRecords("Ventas", "V_Big", 300, 200, 20)...)
	records = append(records, queueRecords("Ventas", "V_Small", 100, 900, 600)...)

	out, _ := engine.Drilldown(records, 1)
	require.Len(t, out, 1)
	require.Len(t, out[0].Queues, 2)

	big, small := out[0].Queues[0], out[0].Queues[1]
	assert.Greater(t, big.Score, small.Score)

	// Weighted mean sits between the two queue scores, closer to the big one.
	expected := (big.Score*float64(big.Volume) + small.Score*float64(small.Volume)) /
		float64(big.Volume+small.Volume)
	assert.InDelta(t, expected, out[0].Score, 0.05+1e-9) // rounding to one decimal
	assert.Equal(t, 400, out[0].Volume)

	// The operational aggregates carry the same volume weighting.
	total := float64(big.Volume + small.Volume)
	wantAHT := (big.AHTMean*float64(big.Volume) + small.AHTMean*float64(small.Volume)) / total
	wantTransfer := (big.TransferRate*float64(big.Volume) + small.TransferRate*float64(small.Volume)) / total
	assert.InDelta(t, wantAHT, out[0].AHTMean, 1e-9)
	assert.InDelta(t, wantTransfer, out[0].TransferRate, 1e-9)
	assert.InDelta(t, big.MonthlyVolume+small.MonthlyVolume, out[0].MonthlyVolume, 1e-9)
}

func TestDrilldownSegmentResolution(t *testing.T) {
	opts := DefaultOptions()
	opts.ResolveSegment = func(skill, queue string) string {
		if skill == "Ventas" {
			return "medium_value"
		}
		return ""
	}
	engine := NewEngine(opts)

	out, _ := engine.Drilldown(queueRecords("Ventas", "V_Altas", 30, 240, 40), 1)
	require.Len(t, out, 1)
	assert.Equal(t, "medium_value", out[0].Queues[0].Segment)
}

func TestDrilldownDeterministic(t *testing.T) {
	engine := NewEngine(DefaultOptions())

	var records []model.InteractionRecord
	for _, q := range []string{"Q_c", "Q_a", "Q_b"} {
		records = append(records, queueRecords("Ventas", q, 50, 300, 60)...)
	}

	first, _ := engine.Drilldown(records, 1)
	second, _ := engine.Drilldown(records, 1)
	assert.Equal(t, first, second)

	require.Len(t, first, 1)
	assert.Equal(t, "Q_c", first[0].Queues[0].Queue, "first-seen order preserved")
}
