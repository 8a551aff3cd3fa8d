package byteformat

import "testing"

func TestRenderMetricMatchesFixtureScenario(t *testing.T) {
	got := Render(Metric, 1275454)
	want := "1.28 MB"
	if got != want {
		t.Fatalf("Render(Metric, 1275454) = %q, want %q", got, want)
	}
}

func TestRenderBytesIsRaw(t *testing.T) {
	if got := Render(Bytes, 42); got != "42" {
		t.Fatalf("Render(Bytes, 42) = %q, want 42", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	cases := map[string]Format{
		"metric": Metric, "BINARY": Binary, "bytes": Bytes,
		"gb": GB, "GiB": GiB, "mb": MB, "mib": MiB,
	}
	for s, want := range cases {
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", s, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseUnknownIsError(t *testing.T) {
	if _, err := Parse("bogus"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFixedUnitVariants(t *testing.T) {
	if got := Render(MiB, 1<<20); got != "1.00 MiB" {
		t.Fatalf("Render(MiB, 1<<20) = %q, want 1.00 MiB", got)
	}
	if got := Render(GB, 1_000_000_000); got != "1.00 GB" {
		t.Fatalf("Render(GB, 1e9) = %q, want 1.00 GB", got)
	}
}
