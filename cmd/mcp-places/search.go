package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brbranch/places_mcp/internal/config"
	"github.com/brbranch/places_mcp/internal/model"
	"github.com/brbranch/places_mcp/internal/places"
)

// SearchOptions holds parsed search command options
type SearchOptions struct {
	Format string
	Query  string
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Results []model.Place `json:"results"`
}

// parseSearchFlags parses command line arguments for the search command
func parseSearchFlags(args []string) (*SearchOptions, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // suppress default error output

	opts := &SearchOptions{}
	fs.StringVar(&opts.Format, "format", "text", "Output format: text|json")
	fs.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.Query = strings.Join(fs.Args(), " ")
	if opts.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if opts.Format != "text" && opts.Format != "json" {
		return nil, fmt.Errorf("invalid format: %s (must be text or json)", opts.Format)
	}

	return opts, nil
}

// runSearchCmd executes a oneshot restaurant search against the Places API
func runSearchCmd(args []string) error {
	opts, err := parseSearchFlags(args)
	if err != nil {
		return err
	}

	apiKey := os.Getenv(config.EnvGooglePlacesAPIKey)

	ctx, cancel := context.WithTimeout(context.Background(), places.DefaultTimeout)
	defer cancel()

	client := places.NewClient()
	results, err := client.SearchText(ctx, opts.Query, apiKey)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "json":
		out, err := json.MarshalIndent(JSONOutput{Results: results}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		if len(results) == 0 {
			fmt.Println("No places found for your query.")
			return nil
		}
		for i, r := range results {
			fmt.Printf("%d. %s\n   Address: %s\n   Price Level: %s\n   Rating: %s\n\n",
				i+1, r.Name, r.Address, r.PriceLevel, r.Rating)
		}
	}

	return nil
}
