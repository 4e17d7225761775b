package types

import "testing"

func TestValidateAppName(t *testing.T) {
	for _, ok := range []string{"app", "my_app_2", "A"} {
		if err := ValidateAppName(ok, "app"); err != nil {
			t.Fatalf("expected %q valid: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "1app", "my-app", "has space", "a123456789012345678901234567890"} {
		if err := ValidateAppName(bad, "app"); err == nil {
			t.Fatalf("expected %q invalid", bad)
		}
	}
}

func TestValidateSearch(t *testing.T) {
	good := SearchRequest{IndexNames: []string{"app"}, Query: "default:'x'", Config: &SearchConfig{Hit: 10}}
	if err := ValidateSearch(good); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	cases := map[string]SearchRequest{
		"no index": {Query: "q"},
		"bad name": {IndexNames: []string{"bad-name"}, Query: "q"},
		"no query": {IndexNames: []string{"app"}},
		"big hit":  {IndexNames: []string{"app"}, Query: "q", Config: &SearchConfig{Hit: 501}},
		"neg":      {IndexNames: []string{"app"}, Query: "q", Config: &SearchConfig{Start: -1}},
	}
	for name, req := range cases {
		if err := ValidateSearch(req); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestValidateSuggest(t *testing.T) {
	if err := ValidateSuggest(SuggestRequest{IndexName: "app", SuggestName: "s", Query: "q", Hits: 5}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := ValidateSuggest(SuggestRequest{IndexName: "app", SuggestName: "s", Query: "q", Hits: 11}); err == nil {
		t.Fatal("expected hits error")
	}
	if err := ValidateSuggest(SuggestRequest{IndexName: "app", Query: "q"}); err == nil {
		t.Fatal("expected suggest name error")
	}
}

func TestValidateDocOps(t *testing.T) {
	if err := ValidateDocOps(nil); err == nil {
		t.Fatal("expected empty batch error")
	}
	if err := ValidateDocOps([]DocOp{{Cmd: "UPSERT", Fields: map[string]any{"id": 1}}}); err == nil {
		t.Fatal("expected cmd error")
	}
	if err := ValidateDocOps([]DocOp{{Cmd: DocAdd}}); err == nil {
		t.Fatal("expected fields error")
	}
	if err := ValidateDocOps([]DocOp{{Cmd: DocDelete, Fields: map[string]any{"id": 1}}}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestSearchRequestClause(t *testing.T) {
	req := SearchRequest{
		Query:  "default:'opensearch'",
		Config: &SearchConfig{Start: 0, Hit: 10},
		Filter: "price>10",
		Sort:   "-price",
	}
	want := "config=start:0,hit:10,format:json&&query=default:'opensearch'&&filter=price>10&&sort=-price"
	if got := req.Clause(); got != want {
		t.Fatalf("clause mismatch:\n got %s\nwant %s", got, want)
	}
	if got := (SearchRequest{Query: "q"}).Clause(); got != "query=q" {
		t.Fatalf("minimal clause: %s", got)
	}
}
