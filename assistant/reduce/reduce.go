// Package reduce turns raw backend payloads into bounded, Markdown-flavored
// chat messages. Each query kind has a dedicated reducer; anything with an
// unexpected shape degrades to a truncated raw dump instead of failing.
package reduce

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	contractx "github.com/fiberlux/odoo-assistant/assistant/contract"
	payloadx "github.com/fiberlux/odoo-assistant/assistant/payload"
)

const (
	maxErrorRunes   = 200
	maxDumpRunes    = 500
	maxGenericRunes = 1500

	maxContractsShown = 3
	maxDebtFields     = 8
)

// Service record fields rendered, in this order, under their Spanish labels.
// Missing or falsy fields are silently omitted.
var serviceFields = []struct {
	key   string
	label string
}{
	{"client_name", "Cliente"},
	{"service_id", "Servicio"},
	{"status", "Estado"},
	{"address", "Dirección"},
	{"region", "Región"},
	{"product", "Producto"},
	{"category", "Categoría"},
	{"seller", "Vendedor"},
	{"billing", "Facturación"},
	{"channel", "Canal"},
	{"transport", "Transporte"},
}

// Contract entry fields rendered per block, keyed as the backend names them.
var contractFields = []string{"contract_id", "client_name", "status", "start_date"}

// Reduce renders a BackendResult for the given query kind. It never fails:
// unexpected payload shapes fall back to a truncated raw dump.
func Reduce(res contractx.BackendResult, kind contractx.QueryKind) string {
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "Error desconocido"
		}
		return fmt.Sprintf("❌ *Error en la consulta*\n\n`%s`", truncate(msg, maxErrorRunes))
	}

	switch kind {
	case contractx.KindServiceLookup:
		return reduceService(res.Payload)
	case contractx.KindContractList:
		return reduceContracts(res.Payload)
	case contractx.KindDebtLookup:
		return reduceDebt(res.Payload)
	default:
		return reduceGeneric(res.Payload)
	}
}

func reduceService(v any) string {
	record, ok := payloadx.AsMap(payloadx.Record(v, "result", "data", "response"))
	if !ok || len(record) == 0 {
		return successDump("✅ *Servicio consultado*", v)
	}

	lines := []string{"✅ *Información del Servicio*", ""}
	for _, f := range serviceFields {
		value, present := record[f.key]
		if !present || !payloadx.Truthy(value) {
			continue
		}
		s, ok := payloadx.ScalarString(value)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("• *%s:* `%s`", f.label, s))
	}
	if len(lines) == 2 {
		return successDump("✅ *Servicio consultado*", v)
	}
	return strings.Join(lines, "\n")
}

func reduceContracts(v any) string {
	var list any
	if m, ok := payloadx.AsMap(v); ok {
		list, _ = payloadx.FirstOf(m, "data", "contracts")
	}
	entries, ok := payloadx.AsList(list)
	if !ok {
		if list == nil {
			return "📭 *No se encontraron contratos*"
		}
		return successDump("📄 *Contratos*", list)
	}
	if len(entries) == 0 {
		return "📭 *No se encontraron contratos*"
	}

	lines := []string{"📄 *Contratos Encontrados*", ""}
	shown := entries
	if len(shown) > maxContractsShown {
		shown = shown[:maxContractsShown]
	}
	for i, entry := range shown {
		record, ok := payloadx.AsMap(entry)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("*Contrato %d:*", i+1))
		for _, key := range contractFields {
			value, present := record[key]
			if !present {
				continue
			}
			if s, ok := payloadx.ScalarString(value); ok {
				lines = append(lines, fmt.Sprintf("  • *%s:* `%s`", key, s))
			}
		}
		lines = append(lines, "")
	}
	if remaining := len(entries) - maxContractsShown; remaining > 0 {
		lines = append(lines, fmt.Sprintf("*... y %d más*", remaining))
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func reduceDebt(v any) string {
	record, ok := payloadx.AsMap(payloadx.Record(v, "data", "debt"))
	if !ok || len(record) == 0 {
		return successDump("💰 *Deuda consultada*", v)
	}

	// Sort keys so the same payload always renders the same message.
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := []string{"💰 *Información de Deuda*", ""}
	count := 0
	for _, key := range keys {
		if count == maxDebtFields {
			break
		}
		value := record[key]
		if !payloadx.Truthy(value) {
			continue
		}
		s, ok := payloadx.ScalarString(value)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("• *%s:* `%s`", key, s))
		count++
	}
	if count == 0 {
		return successDump("💰 *Deuda consultada*", v)
	}
	return strings.Join(lines, "\n")
}

func reduceGeneric(v any) string {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return successDump("📊 *Datos recibidos:*", v)
	}
	return fmt.Sprintf("📊 *Datos recibidos:*\n```json\n%s\n```", truncate(string(pretty), maxGenericRunes))
}

// successDump is the fallback rendering: a success-framed template around a
// truncated raw dump of whatever came back.
func successDump(title string, v any) string {
	return fmt.Sprintf("%s\n\n`%s`", title, truncate(rawDump(v), maxDumpRunes))
}

func rawDump(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}

// truncate caps s at max runes, never splitting a multi-byte character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
