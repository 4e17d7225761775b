package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	opensearch "github.com/boostfield/ali-opensearch-sdk"
	"github.com/boostfield/ali-opensearch-sdk/internal/config"
	"github.com/boostfield/ali-opensearch-sdk/internal/logger"
)

const requestTimeout = 30 * time.Second

// rootFlags hold the persistent flags; empty values fall back to OPENSEARCH_* env.
type rootFlags struct {
	endpoint string
	keyID    string
	secret   string
	debug    bool
	retries  int
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:           "opensearch",
		Short:         "Sign and send requests to an OpenSearch endpoint",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&f.endpoint, "endpoint", "", "Service endpoint (default $OPENSEARCH_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&f.keyID, "key-id", "", "Access key id (default $OPENSEARCH_KEY_ID)")
	rootCmd.PersistentFlags().StringVar(&f.secret, "secret", "", "Access key secret (default $OPENSEARCH_SECRET)")
	rootCmd.PersistentFlags().BoolVarP(&f.debug, "debug", "d", false, "Log every request as a curl command")
	rootCmd.PersistentFlags().IntVar(&f.retries, "retries", 1, "Attempts per call on transport errors")

	rootCmd.AddCommand(newSignCmd(f))
	rootCmd.AddCommand(newRawCmd(f, "get"))
	rootCmd.AddCommand(newRawCmd(f, "post"))
	rootCmd.AddCommand(newSearchCmd(f))
	rootCmd.AddCommand(newSuggestCmd(f))
	rootCmd.AddCommand(newAppStatusCmd(f))
	rootCmd.AddCommand(newListAppsCmd(f))
	return rootCmd
}

// setup merges flags over the environment and builds a client.
func (f *rootFlags) setup(cmd *cobra.Command) (*opensearch.RetryingClient, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if f.endpoint != "" {
		cfg.Endpoint = f.endpoint
	}
	if f.keyID != "" {
		cfg.KeyID = f.keyID
	}
	if f.secret != "" {
		cfg.Secret = f.secret
	}
	if f.debug {
		cfg.Debug = true
	}

	log := logger.New(cmd.ErrOrStderr(), cfg.Level())
	c, err := cfg.NewClient(log, opensearch.WithoutMetrics())
	if err != nil {
		return nil, log, err
	}
	return c.WithRetry(opensearch.RetryConfig{MaxAttempts: f.retries}), log, nil
}

func parseParams(kvs []string) (opensearch.Params, error) {
	p := opensearch.Params{}
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q, want key=value", kv)
		}
		p[k] = v
	}
	return p, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSignCmd(f *rootFlags) *cobra.Command {
	var method string
	var params []string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the signed parameter set without sending it",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := f.setup(cmd)
			if err != nil {
				return err
			}
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			values, err := c.Sign(method, p)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, values[k])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&method, "method", "X", "GET", "HTTP method to sign for")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Request parameter key=value (repeatable)")
	return cmd
}

func newRawCmd(f *rootFlags, verb string) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   verb + " <path>",
		Short: "Send a signed " + strings.ToUpper(verb) + " and print the JSON response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, log, err := f.setup(cmd)
			if err != nil {
				return err
			}
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			out, err := c.Request(ctx, strings.ToUpper(verb), args[0], p)
			if err != nil {
				log.Error().Stack().Err(err).Str("path", args[0]).Msg("request failed")
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Request parameter key=value (repeatable)")
	return cmd
}

func newSearchCmd(f *rootFlags) *cobra.Command {
	var apps, fetch []string
	var filter, sortExpr string
	var start, hit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search one or more apps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, log, err := f.setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			res, err := c.Search(ctx, opensearch.SearchRequest{
				IndexNames:  apps,
				Query:       args[0],
				Config:      &opensearch.SearchConfig{Start: start, Hit: hit},
				Filter:      filter,
				Sort:        sortExpr,
				FetchFields: fetch,
			})
			if err != nil {
				log.Error().Err(err).Strs("apps", apps).Msg("search failed")
				return err
			}
			log.Debug().Str("request_id", res.RequestID).Int("total", res.Total).Msg("search done")
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringSliceVar(&apps, "app", nil, "App to search (repeatable)")
	cmd.Flags().StringSliceVar(&fetch, "fetch", nil, "Fields to return")
	cmd.Flags().StringVar(&filter, "filter", "", "Filter clause")
	cmd.Flags().StringVar(&sortExpr, "sort", "", "Sort clause")
	cmd.Flags().IntVar(&start, "start", 0, "Offset of the first hit")
	cmd.Flags().IntVar(&hit, "hit", 10, "Number of hits")
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

func newSuggestCmd(f *rootFlags) *cobra.Command {
	var app, name string
	var hits int

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Fetch drop-down suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := f.setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			res, err := c.Suggest(ctx, opensearch.SuggestRequest{IndexName: app, SuggestName: name, Query: args[0], Hits: hits})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringVar(&app, "app", "", "App name")
	cmd.Flags().StringVar(&name, "name", "", "Suggest rule name")
	cmd.Flags().IntVar(&hits, "hits", 0, "Maximum suggestions (0 for the server default)")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAppStatusCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "app-status <app>",
		Short: "Show the status of an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := f.setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			st, err := c.AppStatus(ctx, args[0])
			if opensearch.IsNotFound(err) {
				return fmt.Errorf("app %q not found", args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
}

func newListAppsCmd(f *rootFlags) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list-apps",
		Short: "List apps",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := f.setup(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			res, err := c.ListApps(ctx, page, size)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "page-size", 10, "Apps per page")
	return cmd
}
