// Command duet is an interactive terminal chatbot backed by a locally
// hosted Ollama model. Every turn runs a two-stage pipeline: a
// history-aware draft pass, then a reformat pass that polishes the draft
// before it is shown and stored.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/duetbot/duet/agent/providers"
	"github.com/duetbot/duet/chatbot"
	"github.com/duetbot/duet/observability"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		model      string
		baseURL    string
		sessionID  string
		verbose    bool
	)

	root := &cobra.Command{
		Use:           "duet",
		Short:         "Chat with a local model through a two-stage draft-and-reformat pipeline",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, configFile, model, baseURL, sessionID, verbose)
		},
	}

	root.Flags().StringVarP(&configFile, "config", "c", "", "path to JSON config file")
	root.Flags().StringVarP(&model, "model", "m", "", "model name (overrides config and env)")
	root.Flags().StringVar(&baseURL, "base-url", "", "Ollama server URL (overrides config and env)")
	root.Flags().StringVarP(&sessionID, "session", "s", "default", "session id for this conversation")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the duet version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("duet v%s\n", version)
		},
	})

	return root
}

func runChat(cmd *cobra.Command, configFile, model, baseURL, sessionID string, verbose bool) error {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg := chatbot.DefaultConfig()
	if configFile != "" {
		loaded, err := chatbot.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	cfg.ApplyEnv()

	if model != "" {
		cfg.Agent.Model.Name = model
	}
	if baseURL != "" {
		cfg.Agent.Provider.BaseURL = baseURL
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	observers := []observability.Observer{observability.NewSlogObserver(logger)}
	if cfg.Trace.Enabled() {
		trace := observability.NewTraceObserver(cfg.Trace.Endpoint, cfg.Trace.APIKey, cfg.Trace.Project)
		observers = append(observers, trace)
		fmt.Printf("Tracing enabled for project %q (run %s)\n", cfg.Trace.Project, trace.RunID())
	} else {
		fmt.Println(faintStyle.Render("Tracing disabled. Set TRACE_ENDPOINT and TRACE_API_KEY to enable it."))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	provider := providers.NewOllama(cfg.Agent.Provider.BaseURL)
	if !provider.CheckModel(ctx, cfg.Agent.Model.Name) {
		fmt.Fprintf(os.Stderr, "Model %q is not available at %s.\n", cfg.Agent.Model.Name, cfg.Agent.Provider.BaseURL)
		fmt.Fprintln(os.Stderr, "Make sure the server is running:  ollama serve")
		fmt.Fprintf(os.Stderr, "Install the model with:           ollama pull %s\n", cfg.Agent.Model.Name)
		return fmt.Errorf("model %q not available", cfg.Agent.Model.Name)
	}

	bot, err := chatbot.New(&cfg,
		chatbot.WithObserver(observability.NewMultiObserver(observers...)),
	)
	if err != nil {
		return err
	}

	printBanner(os.Stdout, cfg.Agent.Model.Name, cfg.Agent.Provider.BaseURL)
	return runREPL(ctx, os.Stdin, os.Stdout, bot, sessionID)
}
