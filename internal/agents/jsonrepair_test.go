package agents

import "testing"

func TestStripFencesRemovesLanguageFence(t *testing.T) {
	in := "```json\n{\"title\": \"x\"}\n```"
	want := `{"title": "x"}`
	if got := StripFences(in); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStripFencesLeavesPlainTextAlone(t *testing.T) {
	in := `{"title": "x"}`
	if got := StripFences(in); got != in {
		t.Errorf("expected unchanged input, got %q", got)
	}
}

func TestExtractObjectFromProse(t *testing.T) {
	in := `Sure! Here is the result you asked for: {"title": "x"} Hope that helps.`
	want := `{"title": "x"}`
	if got := ExtractObject(in); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractObjectNone(t *testing.T) {
	if got := ExtractObject("no json here"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestExtractArrayFromProse(t *testing.T) {
	in := `The plan: [{"name": "summarize", "args": []}] as requested.`
	want := `[{"name": "summarize", "args": []}]`
	if got := ExtractArray(in); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRepairTokensQuotesBareKeys(t *testing.T) {
	in := `[{name: "summarize", args: []}]`
	want := `[{"name": "summarize", "args": []}]`
	if got := RepairTokens(in); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRepairTokensDropsTrailingCommas(t *testing.T) {
	in := `[{"name": "summarize", "args": [],}]`
	want := `[{"name": "summarize", "args": []}]`
	if got := RepairTokens(in); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRepairTokensLeavesQuotedSlashesAlone(t *testing.T) {
	in := `{"url": "https://example.com/a"}`
	if got := RepairTokens(in); got != in {
		t.Errorf("expected unchanged input, got %q", got)
	}
}
