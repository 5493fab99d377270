package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"marketbridge/internal/domain/entity"
	"marketbridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	Timeout time.Duration
}

func newRootCommand(factory servicesFactory) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "marketctl",
		Short:         "Operate the MarketBridge derived-state engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "overall command timeout")

	cmd.AddCommand(newStatsCommand(opts, factory))
	cmd.AddCommand(newResetCommand(opts, factory))
	cmd.AddCommand(newDispatchCommand(opts, factory))
	cmd.AddCommand(newPublishCommand(opts, factory))
	cmd.AddCommand(newGetCommand(opts, factory))

	return cmd
}

// withServices runs fn with a deadline-bound context and started services
func withServices(cmd *cobra.Command, opts *RootOptions, factory servicesFactory, fn func(ctx context.Context, s *services) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()

	s, stop, err := factory(ctx)
	if err != nil {
		return err
	}
	defer stop()

	return fn(ctx, s)
}

func newStatsCommand(opts *RootOptions, factory servicesFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Compute marketplace statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, opts, factory, func(ctx context.Context, s *services) error {
				stats, err := s.Statistics.ComputeMarketStatistics(ctx)
				if err != nil {
					return err
				}

				return writeJSON(cmd.OutOrStdout(), stats)
			})
		},
	}
}

func newResetCommand(opts *RootOptions, factory servicesFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-daily-views",
		Short: "Reset dailyViews on every listing now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, opts, factory, func(ctx context.Context, s *services) error {
				report, err := s.Maintenance.ResetDailyViews(ctx)
				if report != nil {
					if writeErr := writeJSON(cmd.OutOrStdout(), report); writeErr != nil {
						return writeErr
					}
				}

				return err
			})
		},
	}
}

// dispatchOutput is the printed form of a usecase.Result
type dispatchOutput struct {
	EventID    string `json:"eventId"`
	Collection string `json:"collection"`
	Kind       string `json:"kind"`
	Key        string `json:"key"`
	Outcome    string `json:"outcome"`
	Reason     string `json:"reason,omitempty"`
	Error      string `json:"error,omitempty"`
	Retryable  bool   `json:"retryable,omitempty"`
}

func newDispatchCommand(opts *RootOptions, factory servicesFactory) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Handle one change event in-process, bypassing Pub/Sub",
		Example: `  marketctl dispatch --file event.json
  cat event.json | marketctl dispatch --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			event, err := readEvent(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			return withServices(cmd, opts, factory, func(ctx context.Context, s *services) error {
				result := s.Dispatcher.Dispatch(ctx, event)

				out := dispatchOutput{
					EventID:    event.EventID,
					Collection: event.Collection,
					Kind:       string(event.Kind),
					Key:        event.Key,
					Outcome:    string(result.Outcome),
					Reason:     result.Reason,
					Retryable:  result.Retryable,
				}
				if result.Err != nil {
					out.Error = result.Err.Error()
				}

				if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
				if result.Outcome == usecase.OutcomeFailed {
					return errors.Errorf("event %s failed", event.EventID)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "change event JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newPublishCommand(opts *RootOptions, factory servicesFactory) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish one change event to the configured Pub/Sub provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			event, err := readEvent(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			return withServices(cmd, opts, factory, func(ctx context.Context, s *services) error {
				if err := s.Publisher.PublishChangeEvent(ctx, event); err != nil {
					return errors.Wrapf(err, "publish event %s", event.EventID)
				}

				return writeJSON(cmd.OutOrStdout(), map[string]string{"eventId": event.EventID, "status": "published"})
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "change event JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newGetCommand(opts *RootOptions, factory servicesFactory) *cobra.Command {
	return &cobra.Command{
		Use:       "get {listing|account} KEY",
		Short:     "Print a listing or account with its derived fields",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"listing", "account"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, key := args[0], args[1]
			if kind != "listing" && kind != "account" {
				return errors.Errorf("unknown entity %q, want listing or account", kind)
			}

			return withServices(cmd, opts, factory, func(ctx context.Context, s *services) error {
				collection := s.Collections.Listings
				if kind == "account" {
					collection = s.Collections.Accounts
				}

				doc, err := s.Store.Get(ctx, collection, key)
				if err != nil {
					return errors.Wrapf(err, "get %s %s", kind, key)
				}

				var entityValue any
				if kind == "account" {
					entityValue, err = entity.DecodeAccount(doc.Key, doc.Data)
				} else {
					entityValue, err = entity.DecodeListing(doc.Key, doc.Data)
				}
				if err != nil {
					return err
				}

				return writeJSON(cmd.OutOrStdout(), entityValue)
			})
		},
	}
}

// readEvent loads a ChangeEvent and assigns an event ID when the file has none
func readEvent(stdin io.Reader, file string) (*entity.ChangeEvent, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read event %s", file)
	}

	var event entity.ChangeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "invalid change event JSON")
	}

	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}

	return &event, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return errors.WithStack(encoder.Encode(v))
}
