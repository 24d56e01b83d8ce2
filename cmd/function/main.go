package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/discount-function/internal/config"
	"github.com/noah-isme/discount-function/internal/discount"
	"github.com/noah-isme/discount-function/internal/obs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run reads one input document, evaluates it and writes the result. It returns
// the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("function", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "read the input document from this file instead of stdin")
	format := fs.String("format", "json", "input format: json or yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	invocationID := uuid.NewString()
	base := obs.NewLogger(stderr, cfg.LogFormat, cfg.LogLevel).With().Str("component", "function").Logger()
	logger := base.With().Str("invocation_id", invocationID).Logger()

	policy, ok := discount.ParseExclusionPolicy(cfg.ExclusionPolicy)
	if !ok {
		logger.Warn().Str("policy", cfg.ExclusionPolicy).Msg("unknown exclusion policy, using tag")
	}

	src := stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			logger.Error().Err(err).Str("path", *inputPath).Msg("open input")
			return 1
		}
		defer f.Close()
		src = f
	}

	var input discount.Input
	switch strings.ToLower(strings.TrimSpace(*format)) {
	case "json", "":
		input, err = discount.DecodeInput(src)
	case "yaml", "yml":
		input, err = discount.DecodeInputYAML(src)
	default:
		logger.Error().Str("format", *format).Msg("unsupported input format")
		return 2
	}
	if err != nil {
		logger.Error().Err(err).Msg("decode input")
		return 1
	}

	result := discount.NewService(policy, base).Run(obs.WithInvocationID(context.Background(), invocationID), input)
	if err := json.NewEncoder(stdout).Encode(result); err != nil {
		logger.Error().Err(err).Msg("write result")
		return 1
	}
	logger.Info().Int("candidates", result.CandidateCount()).Msg("function completed")
	return 0
}
