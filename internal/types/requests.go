package types

import (
	"strconv"
	"strings"
)

// ------------------------------
// Request Types
// ------------------------------

// SearchConfig is the config clause of a search query.
type SearchConfig struct {
	Start      int
	Hit        int
	Format     string // json, fulljson or xml
	RerankSize int
}

// SearchRequest holds search parameters. Clauses left empty are omitted
// from the composed query string.
type SearchRequest struct {
	IndexNames []string // apps to search, joined with ';'
	Query      string   // query clause, e.g. default:'search engine'
	Config     *SearchConfig
	Filter     string
	Sort       string
	Aggregate  string
	Distinct   string
	KVPairs    string

	FetchFields      []string
	QP               string
	Disable          string
	FirstFormulaName string
	FormulaName      string
	Summary          string
}

// Clause composes the `query` parameter: clauses joined with "&&".
func (r SearchRequest) Clause() string {
	clauses := make([]string, 0, 7)
	if r.Config != nil {
		clauses = append(clauses, "config="+r.Config.clause())
	}
	clauses = append(clauses, "query="+r.Query)
	for _, c := range []struct{ name, value string }{
		{"filter", r.Filter},
		{"sort", r.Sort},
		{"aggregate", r.Aggregate},
		{"distinct", r.Distinct},
		{"kvpairs", r.KVPairs},
	} {
		if c.value != "" {
			clauses = append(clauses, c.name+"="+c.value)
		}
	}
	return strings.Join(clauses, "&&")
}

func (c SearchConfig) clause() string {
	parts := []string{
		"start:" + strconv.Itoa(c.Start),
		"hit:" + strconv.Itoa(c.Hit),
	}
	format := c.Format
	if format == "" {
		format = "json"
	}
	parts = append(parts, "format:"+format)
	if c.RerankSize > 0 {
		parts = append(parts, "rerank_size:"+strconv.Itoa(c.RerankSize))
	}
	return strings.Join(parts, ",")
}

// SuggestRequest holds drop-down suggestion parameters.
type SuggestRequest struct {
	IndexName   string
	SuggestName string
	Query       string
	Hits        int
}

// DocCommand is the action applied to a pushed document.
type DocCommand string

const (
	DocAdd    DocCommand = "ADD"
	DocUpdate DocCommand = "UPDATE"
	DocDelete DocCommand = "DELETE"
)

// DocOp is one item of a push request.
type DocOp struct {
	Cmd       DocCommand     `json:"cmd"`
	Fields    map[string]any `json:"fields"`
	Timestamp int64          `json:"timestamp,omitempty"`
}
