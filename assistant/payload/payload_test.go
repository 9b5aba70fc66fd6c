package payload

import "testing"

func TestRecordPrefersFirstKey(t *testing.T) {
	t.Parallel()

	v := map[string]any{
		"data":   map[string]any{"a": 1.0},
		"result": map[string]any{"b": 2.0},
	}
	record, ok := AsMap(Record(v, "result", "data"))
	if !ok {
		t.Fatal("expected a mapping")
	}
	if _, present := record["b"]; !present {
		t.Fatalf("expected record under result, got %v", record)
	}
}

func TestRecordFallsBackToValue(t *testing.T) {
	t.Parallel()

	v := map[string]any{"x": "y"}
	record, ok := AsMap(Record(v, "result", "data"))
	if !ok {
		t.Fatal("expected a mapping")
	}
	if record["x"] != "y" {
		t.Fatalf("expected the value itself, got %v", record)
	}

	if got := Record(42.0, "data"); got != 42.0 {
		t.Fatalf("non-mapping value must pass through, got %v", got)
	}
}

func TestScalarString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{"hola", "hola", true},
		{true, "true", true},
		{42.0, "42", true},
		{12.5, "12.5", true},
		{nil, "", false},
		{map[string]any{}, "", false},
		{[]any{1.0}, "", false},
	}
	for _, tc := range cases {
		got, ok := ScalarString(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ScalarString(%v) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	truthy := []any{"x", true, 1.0, -3.5}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Fatalf("expected %v to be truthy", v)
		}
	}

	falsy := []any{"", false, 0.0, nil, map[string]any{"a": 1.0}, []any{1.0}}
	for _, v := range falsy {
		if Truthy(v) {
			t.Fatalf("expected %v to be falsy", v)
		}
	}
}

func TestFirstOfAbsent(t *testing.T) {
	t.Parallel()

	if _, ok := FirstOf(map[string]any{"a": 1.0}, "b", "c"); ok {
		t.Fatal("expected no match")
	}
}
