package normalize

import "strings"

// fieldAliases maps each canonical field to the header spellings seen in
// platform exports (Genesys, Avaya, and the Spanish-localized variants).
// Lookup is case-insensitive on the trimmed header.
var fieldAliases = map[string][]string{
	"id":          {"id", "interaction_id", "call_id", "contact_id"},
	"start_at":    {"start_at", "date", "fecha", "start_time", "timestamp", "fecha_inicio"},
	"skill":       {"skill", "skill_name", "servicio", "service"},
	"queue":       {"queue", "queue_name", "original_queue", "cola", "cola_original"},
	"channel":     {"channel", "canal", "media_type"},
	"talk_secs":   {"talk_secs", "talk_time", "tiempo_conversacion", "talk"},
	"hold_secs":   {"hold_secs", "hold_time", "tiempo_espera", "hold"},
	"wrap_secs":   {"wrap_secs", "wrap_time", "acw", "tiempo_acw", "wrap_up_time"},
	"agent_id":    {"agent_id", "agent", "agente"},
	"transferred": {"transferred", "transfer", "transferencia", "transferida"},
	"repeated_7d": {"repeated_7d", "repeat_7d", "recontacto_7d", "repeated_within_7d"},
	"abandoned":   {"abandoned", "abandon", "abandonada", "is_abandoned"},
	"fcr":         {"fcr", "first_contact_resolution", "resuelta_primer_contacto"},
	"status":      {"status", "record_status", "estado"},
}

// canonicalIndex is the inverted alias table, built once at init.
var canonicalIndex = func() map[string]string {
	idx := make(map[string]string)
	for canonical, aliases := range fieldAliases {
		for _, a := range aliases {
			idx[a] = canonical
		}
	}
	return idx
}()

// CanonicalField resolves a raw header to its canonical field name. The
// second return is false for headers the pipeline does not use.
func CanonicalField(header string) (string, bool) {
	c, ok := canonicalIndex[strings.ToLower(strings.TrimSpace(header))]
	return c, ok
}
