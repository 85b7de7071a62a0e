package utils

import (
	"reflect"
	"testing"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"2030-05-05, 2030-06-06", []string{"2030-05-05", "2030-06-06"}},
		{" a ,, b , ", []string{"a", "b"}},
		{",,,", []string{}},
	}
	for _, c := range cases {
		if got := SplitCSV(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitCSV(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestJoinCSV(t *testing.T) {
	got := JoinCSV([]string{" a ", "", "b"})
	if got != "a, b" {
		t.Errorf("JoinCSV = %q, want %q", got, "a, b")
	}
	if JoinCSV(nil) != "" {
		t.Errorf("JoinCSV(nil) should be empty")
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	in := "2030-05-05, 2030-06-06, 2030-07-07"
	if got := JoinCSV(SplitCSV(in)); got != in {
		t.Errorf("round trip = %q, want %q", got, in)
	}
}

func TestParseJSONOrDefault(t *testing.T) {
	if got := ParseJSONOrDefault("", map[string]string{"x": "y"}); got["x"] != "y" {
		t.Errorf("empty input should return fallback, got %v", got)
	}
	if got := ParseJSONOrDefault("{not json", map[string]string{"x": "y"}); got["x"] != "y" {
		t.Errorf("bad input should return fallback, got %v", got)
	}
	got := ParseJSONOrDefault(`{"a":"1"}`, map[string]string{})
	if got["a"] != "1" {
		t.Errorf("valid input should parse, got %v", got)
	}
}

func TestNormalizeExtras(t *testing.T) {
	src := map[string]any{
		"Cleaning 1": "Windows",
		"Cleaning 2": []any{" Oven ", "", "Fridge", 42},
		"Cleaning 3": 7,
		"Cleaning 4": " ",
	}
	got := NormalizeExtras(src)

	if !reflect.DeepEqual(got["Cleaning 1"], []string{"Windows"}) {
		t.Errorf("string value: got %v", got["Cleaning 1"])
	}
	if !reflect.DeepEqual(got["Cleaning 2"], []string{"Oven", "Fridge"}) {
		t.Errorf("list value: got %v", got["Cleaning 2"])
	}
	if !reflect.DeepEqual(got["Cleaning 3"], []string{}) {
		t.Errorf("junk value: got %v", got["Cleaning 3"])
	}
	if !reflect.DeepEqual(got["Cleaning 4"], []string{}) {
		t.Errorf("blank string: got %v", got["Cleaning 4"])
	}
}

func TestUniq(t *testing.T) {
	got := Uniq([]string{"b", " a ", "b", "", "a", "c"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Uniq = %v, want %v", got, want)
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"\uFEFFTimestamp", "timestamp"},
		{"Full\u00A0Name", "full name"},
		{"  Full Name ", "full name"},
		{"Number of Cleanings", "number of cleanings"},
		{"STATUS", "status"},
	}
	for _, c := range cases {
		if got := NormalizeHeader(c.in); got != c.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
