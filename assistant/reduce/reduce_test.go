package reduce

import (
	"strings"
	"testing"

	contractx "github.com/fiberlux/odoo-assistant/assistant/contract"
)

func success(payload any) contractx.BackendResult {
	return contractx.BackendResult{Success: true, Payload: payload}
}

func TestReduceFailureTemplate(t *testing.T) {
	t.Parallel()

	res := contractx.BackendResult{Success: false, Error: "connection refused"}
	got := Reduce(res, contractx.KindServiceLookup)
	if !strings.HasPrefix(got, "❌ *Error en la consulta*") {
		t.Fatalf("unexpected template: %q", got)
	}
	if !strings.Contains(got, "connection refused") {
		t.Fatalf("error text missing: %q", got)
	}
}

func TestReduceFailureTruncatesError(t *testing.T) {
	t.Parallel()

	res := contractx.BackendResult{Success: false, Error: strings.Repeat("x", 300)}
	got := Reduce(res, contractx.KindDebtLookup)
	if strings.Contains(got, strings.Repeat("x", 201)) {
		t.Fatalf("error text was not truncated to 200 runes: %d chars", len(got))
	}
	if !strings.Contains(got, strings.Repeat("x", 200)) {
		t.Fatalf("truncated error text missing: %q", got)
	}
}

func TestReduceServiceLabeledFields(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"result": map[string]any{
			"client_name": "ACME SAC",
			"status":      "activo",
			"address":     "Av. Arequipa 1234",
			"product":     "",    // falsy, omitted
			"region":      nil,   // falsy, omitted
			"extra":       "???", // not in the allow-list
		},
	}
	got := Reduce(success(payload), contractx.KindServiceLookup)

	if !strings.Contains(got, "✅ *Información del Servicio*") {
		t.Fatalf("missing header: %q", got)
	}
	for _, want := range []string{"*Cliente:* `ACME SAC`", "*Estado:* `activo`", "*Dirección:* `Av. Arequipa 1234`"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
	for _, absent := range []string{"Producto", "Región", "extra", "???"} {
		if strings.Contains(got, absent) {
			t.Fatalf("unexpected %q in %q", absent, got)
		}
	}
}

func TestReduceServiceRecordResolutionOrder(t *testing.T) {
	t.Parallel()

	// "result" wins over "data".
	payload := map[string]any{
		"result": map[string]any{"client_name": "FIRST"},
		"data":   map[string]any{"client_name": "SECOND"},
	}
	got := Reduce(success(payload), contractx.KindServiceLookup)
	if !strings.Contains(got, "FIRST") || strings.Contains(got, "SECOND") {
		t.Fatalf("wrong record resolved: %q", got)
	}

	// Bare record works too.
	got = Reduce(success(map[string]any{"client_name": "BARE"}), contractx.KindServiceLookup)
	if !strings.Contains(got, "BARE") {
		t.Fatalf("payload itself not used as record: %q", got)
	}
}

func TestReduceServiceFallbackShapes(t *testing.T) {
	t.Parallel()

	for _, payload := range []any{42.0, []any{}, map[string]any{}, "texto", nil} {
		got := Reduce(success(payload), contractx.KindServiceLookup)
		if got == "" {
			t.Fatalf("payload %v produced empty message", payload)
		}
		if !strings.Contains(got, "✅") {
			t.Fatalf("fallback must stay success-framed: %q", got)
		}
	}
}

func TestReduceContractsSingleEntry(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"data": []any{
			map[string]any{"contract_id": "C1", "client_name": "ACME", "status": "active"},
		},
	}
	got := Reduce(success(payload), contractx.KindContractList)

	for _, want := range []string{"Contrato 1", "C1", "ACME", "active"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "más") {
		t.Fatalf("no overflow suffix expected: %q", got)
	}
}

func TestReduceContractsOverflow(t *testing.T) {
	t.Parallel()

	entries := make([]any, 5)
	for i := range entries {
		entries[i] = map[string]any{"contract_id": "C", "status": "active"}
	}
	got := Reduce(success(map[string]any{"data": entries}), contractx.KindContractList)

	if strings.Count(got, "*Contrato ") != 3 {
		t.Fatalf("expected exactly 3 blocks: %q", got)
	}
	if !strings.Contains(got, "*... y 2 más*") {
		t.Fatalf("missing overflow suffix: %q", got)
	}
}

func TestReduceContractsEmpty(t *testing.T) {
	t.Parallel()

	for _, payload := range []any{
		map[string]any{"data": []any{}},
		map[string]any{},
		map[string]any{"other": "x"},
	} {
		got := Reduce(success(payload), contractx.KindContractList)
		if got != "📭 *No se encontraron contratos*" {
			t.Fatalf("payload %v: unexpected message %q", payload, got)
		}
	}
}

func TestReduceContractsFallbackKey(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"contracts": []any{map[string]any{"contract_id": "K9"}},
	}
	got := Reduce(success(payload), contractx.KindContractList)
	if !strings.Contains(got, "K9") {
		t.Fatalf("contracts key not honored: %q", got)
	}
}

func TestReduceDebtGenericFields(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"data": map[string]any{
			"amount":   120.5,
			"currency": "PEN",
			"empty":    "",
		},
	}
	got := Reduce(success(payload), contractx.KindDebtLookup)

	if !strings.Contains(got, "💰 *Información de Deuda*") {
		t.Fatalf("missing header: %q", got)
	}
	if !strings.Contains(got, "*amount:* `120.5`") {
		t.Fatalf("missing amount line: %q", got)
	}
	if !strings.Contains(got, "*currency:* `PEN`") {
		t.Fatalf("missing currency line: %q", got)
	}
	if strings.Contains(got, "empty") {
		t.Fatalf("falsy field rendered: %q", got)
	}
}

func TestReduceDebtCapsFieldsDeterministically(t *testing.T) {
	t.Parallel()

	record := map[string]any{}
	for _, key := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		record[key] = "v-" + key
	}
	res := success(map[string]any{"data": record})

	first := Reduce(res, contractx.KindDebtLookup)
	if strings.Count(first, "•") != 8 {
		t.Fatalf("expected 8 field lines, got %q", first)
	}
	for i := 0; i < 20; i++ {
		if again := Reduce(res, contractx.KindDebtLookup); again != first {
			t.Fatalf("reduction is not deterministic:\n%q\nvs\n%q", first, again)
		}
	}
}

func TestReduceGenericCodeBlock(t *testing.T) {
	t.Parallel()

	got := Reduce(success(map[string]any{"k": "v"}), contractx.QueryKind("unknown"))
	if !strings.HasPrefix(got, "📊 *Datos recibidos:*\n```json\n") {
		t.Fatalf("unexpected template: %q", got)
	}
	if !strings.HasSuffix(got, "\n```") {
		t.Fatalf("code block not closed: %q", got)
	}
}

func TestReduceGenericCapped(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"big": strings.Repeat("z", 3000)}
	got := Reduce(success(payload), contractx.QueryKind("unknown"))
	if len([]rune(got)) > 1600 {
		t.Fatalf("generic dump not capped: %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "\n```") {
		t.Fatalf("template must survive truncation: %q", got)
	}
}

func TestReduceNeverPanicsOnOddShapes(t *testing.T) {
	t.Parallel()

	shapes := []any{
		42.0, []any{}, map[string]any{}, nil, "str",
		map[string]any{"data": 7.0},
		map[string]any{"data": []any{"not-a-map", 3.0}},
		map[string]any{"result": []any{map[string]any{"x": map[string]any{}}}},
	}
	kinds := []contractx.QueryKind{
		contractx.KindServiceLookup,
		contractx.KindContractList,
		contractx.KindDebtLookup,
		contractx.QueryKind("unknown"),
	}
	for _, shape := range shapes {
		for _, kind := range kinds {
			if got := Reduce(success(shape), kind); got == "" {
				t.Fatalf("kind=%s shape=%v produced empty message", kind, shape)
			}
		}
	}
}
