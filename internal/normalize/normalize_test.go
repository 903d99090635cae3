package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyondcx/metrics-cli/internal/model"
)

func row(overrides map[string]string) map[string]string {
	r := map[string]string{
		"id":         "c-1",
		"start_at":   "2024-03-04 10:15:00",
		"skill":      "Soporte_General",
		"queue":      "SG_Facturacion",
		"channel":    "voice",
		"talk_secs":  "180",
		"hold_secs":  "20",
		"wrap_secs":  "40",
		"agent_id":   "a-9",
		"transferred": "no",
		"fcr":        "yes",
	}
	for k, v := range overrides {
		r[k] = v
	}
	return r
}

func TestRecordHappyPath(t *testing.T) {
	n := New(DefaultOptions())
	rec, ok := n.Record(row(nil))
	require.True(t, ok)

	assert.Equal(t, "Soporte_General", rec.Skill)
	assert.Equal(t, "SG_Facturacion", rec.Queue)
	assert.InDelta(t, 240, rec.HandleTime(), 1e-9) // 180+20+40
	assert.True(t, rec.FCRStrict)
	assert.False(t, rec.Transferred)
	assert.Equal(t, model.StatusValid, rec.Status)
	require.NotNil(t, rec.StartAt)
	assert.Equal(t, 10, rec.StartAt.Hour())
}

func TestRecordDroppedWithoutSkillOrQueue(t *testing.T) {
	n := New(DefaultOptions())
	_, ok := n.Record(row(map[string]string{"skill": "", "queue": ""}))
	assert.False(t, ok)
	assert.Equal(t, 1, n.Diagnostics().RowsDropped)
}

func TestRecordSkillFallsBackToQueue(t *testing.T) {
	n := New(DefaultOptions())
	rec, ok := n.Record(row(map[string]string{"skill": ""}))
	require.True(t, ok)
	assert.Equal(t, "SG_Facturacion", rec.Skill)
}

func TestBooleanCoercion(t *testing.T) {
	cases := map[string]bool{
		"true": true, "T": true, "1": true, "Yes": true, "y": true,
		"si": true, "Sí": true, "SÍ": true, "s": true,
		"false": false, "0": false, "no": false, "": false,
	}
	for raw, want := range cases {
		n := New(DefaultOptions())
		assert.Equal(t, want, n.parseBool(raw), "raw=%q", raw)
		assert.Equal(t, 0, n.Diagnostics().BooleanDefaults, "raw=%q", raw)
	}
}

func TestBooleanUnknownDefaultsFalseAndCounts(t *testing.T) {
	n := New(DefaultOptions())
	assert.False(t, n.parseBool("maybe"))
	assert.Equal(t, 1, n.Diagnostics().BooleanDefaults)
}

func TestSecondsCoercion(t *testing.T) {
	n := New(DefaultOptions())
	assert.InDelta(t, 90, n.parseSeconds("90"), 1e-9)
	assert.InDelta(t, 90.5, n.parseSeconds("90,5"), 1e-9)
	assert.InDelta(t, 150, n.parseSeconds("2:30"), 1e-9)     // 2m30s
	assert.InDelta(t, 3720, n.parseSeconds("1:02:00"), 1e-9) // 1h2m
	assert.Zero(t, n.parseSeconds("-5"))
	assert.Zero(t, n.parseSeconds("n/a"))
	assert.Equal(t, 2, n.Diagnostics().NumericDefaults)
}

func TestBadTimestampCounted(t *testing.T) {
	n := New(DefaultOptions())
	rec, ok := n.Record(row(map[string]string{"start_at": "not-a-date"}))
	require.True(t, ok)
	assert.Nil(t, rec.StartAt)
	assert.Equal(t, 1, n.Diagnostics().BadTimestamps)
}

func TestStatusClassification(t *testing.T) {
	n := New(DefaultOptions())

	rec, _ := n.Record(row(map[string]string{"status": "ZOMBIE"}))
	assert.Equal(t, model.StatusZombie, rec.Status, "explicit label wins")

	rec, _ = n.Record(row(map[string]string{"abandoned": "sí"}))
	assert.Equal(t, model.StatusAbandoned, rec.Status)

	rec, _ = n.Record(row(map[string]string{"talk_secs": "3", "hold_secs": "0", "wrap_secs": "2"}))
	assert.Equal(t, model.StatusNoise, rec.Status)

	rec, _ = n.Record(row(map[string]string{"talk_secs": "4000", "hold_secs": "0", "wrap_secs": "0"}))
	assert.Equal(t, model.StatusZombie, rec.Status)

	rec, _ = n.Record(row(nil))
	assert.Equal(t, model.StatusValid, rec.Status)
}

func TestFCRDerivedWhenColumnAbsent(t *testing.T) {
	n := New(DefaultOptions())

	r := row(nil)
	delete(r, "fcr")
	rec, _ := n.Record(r)
	assert.True(t, rec.FCRStrict, "no transfer, no repeat")

	r = row(map[string]string{"transferred": "si"})
	delete(r, "fcr")
	rec, _ = n.Record(r)
	assert.False(t, rec.FCRStrict)

	r = row(map[string]string{"fcr": "no", "transferred": "no"})
	rec, _ = n.Record(r)
	assert.False(t, rec.FCRStrict, "explicit flag wins over derivation")
}

func TestCanonicalField(t *testing.T) {
	for raw, want := range map[string]string{
		"Fecha":          "start_at",
		"CANAL":          "channel",
		"cola_original":  "queue",
		" skill_name ":   "skill",
		"transferencia":  "transferred",
	} {
		got, ok := CanonicalField(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := CanonicalField("totally_unknown")
	assert.False(t, ok)
}
