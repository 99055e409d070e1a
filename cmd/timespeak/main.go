package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	timespeak "github.com/goliatone/go-timespeak"
)

type cliOptions struct {
	locale  string
	packDir string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "timespeak: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "timespeak",
		Short:         "Decode natural language time and interval phrases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.locale, "locale", "l", "en", "locale of the input sentence")
	root.PersistentFlags().StringVar(&opts.packDir, "packs", "", "directory with additional language packs")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newDecodeCmd(opts),
		newNormalizeCmd(opts),
		newRespondCmd(opts),
		newLocalesCmd(opts),
	)
	return root
}

func buildDecoder(opts *cliOptions, extra ...timespeak.Option) (*timespeak.Decoder, error) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	decoderOpts := []timespeak.Option{
		timespeak.WithDefaultLocale(opts.locale),
		timespeak.WithLogger(logger),
	}
	if opts.packDir != "" {
		decoderOpts = append(decoderOpts, timespeak.WithPackDir(opts.packDir))
	}
	decoderOpts = append(decoderOpts, extra...)
	return timespeak.New(decoderOpts...)
}

func newDecodeCmd(opts *cliOptions) *cobra.Command {
	var hint string
	var asJSON bool
	var now string

	cmd := &cobra.Command{
		Use:   "decode <sentence>",
		Short: "Parse a sentence into a resolved time or interval",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeHint, err := parseHint(hint)
			if err != nil {
				return err
			}

			var extra []timespeak.Option
			if now != "" {
				at, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("invalid --now value: %w", err)
				}
				extra = append(extra, timespeak.WithClock(func() time.Time { return at }))
			}

			decoder, err := buildDecoder(opts, extra...)
			if err != nil {
				return err
			}

			result, err := decoder.DecodeHint(strings.Join(args, " "), opts.locale, typeHint)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}
			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&hint, "hint", "", "force interpretation: time or interval")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the result as JSON")
	cmd.Flags().StringVar(&now, "now", "", "reference instant in RFC3339 (defaults to wall clock)")
	return cmd
}

func newNormalizeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <sentence>",
		Short: "Show the canonical token stream for a sentence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder, err := buildDecoder(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), decoder.Normalize(strings.Join(args, " "), opts.locale))
			return nil
		},
	}
}

func newRespondCmd(opts *cliOptions) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "respond <response-id>",
		Short: "Render a localized response template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder, err := buildDecoder(opts)
			if err != nil {
				return err
			}

			values := make(map[string]string, len(params))
			for _, param := range params {
				key, value, ok := strings.Cut(param, "=")
				if !ok {
					return fmt.Errorf("invalid --param %q, expected key=value", param)
				}
				values[key] = value
			}

			rendered, err := decoder.Respond(args[0], values, opts.locale)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "template parameter as key=value, repeatable")
	return cmd
}

func newLocalesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the locales with an available language pack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder, err := buildDecoder(opts)
			if err != nil {
				return err
			}
			for _, locale := range decoder.Locales() {
				fmt.Fprintln(cmd.OutOrStdout(), locale)
			}
			return nil
		},
	}
}

func parseHint(hint string) (timespeak.TypeHint, error) {
	switch strings.ToLower(hint) {
	case "":
		return timespeak.HintNone, nil
	case "time":
		return timespeak.HintTime, nil
	case "interval", "duration":
		return timespeak.HintInterval, nil
	default:
		return timespeak.HintNone, fmt.Errorf("unknown hint %q, expected time or interval", hint)
	}
}

func printResult(cmd *cobra.Command, result *timespeak.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "normalized: %s\n", result.Normalized)
	fmt.Fprintf(out, "pattern:    %s\n", result.Pattern)
	if result.IsTime {
		fmt.Fprintf(out, "time:       %s\n", result.Time.At.Format(time.RFC3339))
		if result.Time.DayOfWeek != "" {
			fmt.Fprintf(out, "day:        %s\n", result.Time.DayOfWeek)
		}
		return
	}
	fmt.Fprintf(out, "interval:   %s\n", result.Interval.String())
	fmt.Fprintf(out, "duration:   %s\n", result.Interval.Duration())
}
