package types

import (
	"fmt"
	"regexp"
)

var appNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,29}$`)

// ValidateAppName checks an application (index) name.
func ValidateAppName(name, field string) error {
	if !appNameRe.MatchString(name) {
		return fmt.Errorf("%s must start with a letter and contain only letters, digits or '_' (max 30): %q", field, name)
	}
	return nil
}

// ValidateNonEmpty checks that a required string is set.
func ValidateNonEmpty(v, field string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// ValidateSearch checks a search request before it is signed.
func ValidateSearch(req SearchRequest) error {
	if len(req.IndexNames) == 0 {
		return fmt.Errorf("at least one index name is required")
	}
	for _, n := range req.IndexNames {
		if err := ValidateAppName(n, "index name"); err != nil {
			return err
		}
	}
	if err := ValidateNonEmpty(req.Query, "query"); err != nil {
		return err
	}
	if c := req.Config; c != nil {
		if c.Start < 0 || c.Start > 5000 {
			return fmt.Errorf("config start must be in [0,5000]: %d", c.Start)
		}
		if c.Hit < 0 || c.Hit > 500 {
			return fmt.Errorf("config hit must be in [0,500]: %d", c.Hit)
		}
	}
	return nil
}

// ValidateSuggest checks a suggest request before it is signed.
func ValidateSuggest(req SuggestRequest) error {
	if err := ValidateAppName(req.IndexName, "index name"); err != nil {
		return err
	}
	if err := ValidateNonEmpty(req.SuggestName, "suggest name"); err != nil {
		return err
	}
	if err := ValidateNonEmpty(req.Query, "query"); err != nil {
		return err
	}
	if req.Hits < 0 || req.Hits > 10 {
		return fmt.Errorf("hits must be in [0,10]: %d", req.Hits)
	}
	return nil
}

// ValidateDocOps checks a push batch.
func ValidateDocOps(ops []DocOp) error {
	if len(ops) == 0 {
		return fmt.Errorf("at least one document is required")
	}
	for i, op := range ops {
		switch op.Cmd {
		case DocAdd, DocUpdate, DocDelete:
		default:
			return fmt.Errorf("item %d: unknown cmd %q", i, op.Cmd)
		}
		if len(op.Fields) == 0 {
			return fmt.Errorf("item %d: fields are required", i)
		}
	}
	return nil
}
