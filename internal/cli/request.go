package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/relay/config"
	http "github.com/wesleyorama2/relay/http"
	"github.com/wesleyorama2/relay/internal/output"
	"github.com/wesleyorama2/relay/metrics"
	"github.com/wesleyorama2/relay/pkg/jsonpath"
	"github.com/wesleyorama2/relay/pkg/jsonschema"
	"github.com/wesleyorama2/relay/task"
)

// settings gathers the flags shared by every request command.
type settings struct {
	headers      []string
	verbose      bool
	debug        bool
	noColor      bool
	timeout      time.Duration
	maxRedirects int
	aggressive   bool
	status       int
	extract      string
	schemaPath   string
	configPath   string

	hasExplicitRedirects bool
	hasExplicitTimeout   bool
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().Bool("debug", false, "Enable debug logging to stderr")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().IntP("max-redirects", "r", 10, "Maximum number of redirects to follow (0 disables)")
	cmd.Flags().Bool("aggressive", false, "Use the aggressive redirect policy")
	cmd.Flags().Int("status", 0, "Fail unless the final response has this status code")
	cmd.Flags().String("extract", "", "JSONPath expression to extract from the response body")
	cmd.Flags().String("schema", "", "JSON Schema file to validate the response body against")
	cmd.Flags().StringP("config", "c", "", "Client configuration file (YAML or JSON)")
}

func settingsFromFlags(cmd *cobra.Command) settings {
	s := settings{}
	s.headers, _ = cmd.Flags().GetStringArray("header")
	s.verbose, _ = cmd.Flags().GetBool("verbose")
	s.debug, _ = cmd.Flags().GetBool("debug")
	s.noColor, _ = cmd.Flags().GetBool("no-color")
	s.timeout, _ = cmd.Flags().GetDuration("timeout")
	s.maxRedirects, _ = cmd.Flags().GetInt("max-redirects")
	s.aggressive, _ = cmd.Flags().GetBool("aggressive")
	s.status, _ = cmd.Flags().GetInt("status")
	s.extract, _ = cmd.Flags().GetString("extract")
	s.schemaPath, _ = cmd.Flags().GetString("schema")
	s.configPath, _ = cmd.Flags().GetString("config")
	s.hasExplicitRedirects = cmd.Flags().Changed("max-redirects")
	s.hasExplicitTimeout = cmd.Flags().Changed("timeout")
	return s
}

// parseHeaders turns repeated -H "Name: value" flags into a Header.
func parseHeaders(raw []string, defaults map[string]string) http.Header {
	h := http.HeaderFromMap(defaults)
	for _, entry := range raw {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) == 2 {
			h.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}
	return h
}

// execute is the shared command body: build the client, compose the task
// pipeline, and render the result.
func execute(s settings, req *http.Request) {
	formatter := output.NewFormatter(s.verbose, s.noColor)

	var cfg *config.Config
	if s.configPath != "" {
		loaded, err := config.Load(s.configPath)
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
		cfg = loaded
	}

	recorder := metrics.NewRecorder()
	options := []http.ClientOption{http.WithRecorder(recorder)}

	if s.debug {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
		options = append(options, http.WithLogger(logger))
	}

	if cfg != nil && len(cfg.Headers) > 0 {
		opts := req.Options()
		headers := opts.Headers.Clone()
		for _, field := range http.HeaderFromMap(cfg.Headers).Fields() {
			if !headers.Has(field.Name) {
				headers.Set(field.Name, field.Value)
			}
		}
		opts.Headers = headers
		req = http.NewRequest(opts, req.URL(), req.Body())
	}

	strategy := http.DefaultRedirectionPolicy.Strategy()
	if s.aggressive {
		strategy = http.AggressiveRedirectionPolicy.Strategy()
	}
	maxRedirects := s.maxRedirects

	if cfg != nil {
		if cfg.Policy == "aggressive" {
			strategy = http.AggressiveRedirectionPolicy.Strategy()
		}
		if len(cfg.ConfidentialHeaders) > 0 {
			http.DefaultConfidentialHeaders = cfg.ConfidentialHeaders
		}
		if cfg.MaxRedirects > 0 && !s.hasExplicitRedirects {
			maxRedirects = cfg.MaxRedirects
		}
		if cfg.DefaultPort > 0 {
			options = append(options, http.WithDefaultPort(cfg.DefaultPort))
		}
		if t, err := cfg.GetTimeout(); err == nil && t > 0 && !s.hasExplicitTimeout {
			s.timeout = t
		}
	}

	client := http.NewClient(options...)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	fmt.Print(formatter.FormatRequest(req))

	pipeline := task.Chain(client.Send(req), func(r *http.Response) *task.Task[*http.Response] {
		return client.FollowRedirectsWith(strategy, maxRedirects, r)
	})

	resp, err := pipeline.Run(ctx)
	if err != nil {
		fmt.Fprint(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}

	body, err := resp.Message().BufferText().Run(ctx)
	if err != nil {
		fmt.Fprint(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}

	fmt.Print(formatter.FormatResponse(resp, body))

	if s.status != 0 {
		if _, err := http.AcceptStatus(s.status)(resp).Run(ctx); err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(fmt.Errorf(
				"expected status %d, got %d %s",
				s.status, resp.Message().StatusCode, resp.Message().StatusMessage)))
			os.Exit(1)
		}
	}

	if s.extract != "" {
		value, err := jsonpath.Extract(body, s.extract)
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
		fmt.Println(value)
	}

	if s.schemaPath != "" {
		schema, err := os.ReadFile(s.schemaPath)
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
		valid, verrs := jsonschema.ValidateWithErrors(body, string(schema))
		if !valid {
			fmt.Fprint(os.Stderr, formatter.FormatError(fmt.Errorf("schema validation failed: %v", verrs)))
			os.Exit(1)
		}
		fmt.Println("Schema validation passed")
	}

	if s.verbose {
		summary := recorder.Summary()
		fmt.Printf("  Requests: %d (%d failed), p50 %v, p95 %v\n",
			summary.Count, summary.Failures, summary.P50, summary.P95)
	}
}
