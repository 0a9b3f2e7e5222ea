package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alkime/podcurate/internal/auth"
	"github.com/alkime/podcurate/internal/config"
	"github.com/alkime/podcurate/internal/content"
	"github.com/alkime/podcurate/internal/keyring"
	"github.com/alkime/podcurate/internal/logger"
	"github.com/alkime/podcurate/internal/store"
	"github.com/alkime/podcurate/internal/tui"
	"github.com/alkime/podcurate/internal/tui/workflow"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/alkime/podcurate/internal/workdir"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"
)

const (
	logFile = "curate.log"
	// selectionsSnapshot is the store entry holding the finished flow of a
	// working directory.
	selectionsSnapshot = "selections"
	// flowsDir holds the snapshots written by the HTTP server.
	flowsDir = "flows"
)

// CLI defines the curate command structure.
type CLI struct {
	// Default TUI command (runs when no subcommand given)
	TUI TUICmd `cmd:"" default:"withargs" help:"Curate and produce an episode in the terminal"`

	Catalog CatalogCmd `cmd:"" help:"Print the demo catalog"`
	Flows   FlowsCmd   `cmd:"" help:"List flows saved by the server"`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration"`
}

// TUICmd is the default command that runs the TUI.
type TUICmd struct {
	Name            string `arg:"" optional:"" help:"Episode name (default: date based)"`
	Root            string `flag:"" optional:"" help:"Working directory root (default: ~/Documents/Alkime/Podcasts)"`
	Resume          bool   `flag:"" help:"Start from the selections saved for this episode"`
	NoReview        bool   `flag:"" name:"no-review" help:"Skip opening the script in an editor"`
	NoLogin         bool   `flag:"" name:"no-login" help:"Skip the sign-in screen"`
	OpenAIAPIKey    string `flag:"" env:"OPENAI_API_KEY" help:"OpenAI API key for narration"`
	AnthropicAPIKey string `flag:"" env:"ANTHROPIC_API_KEY" help:"Anthropic API key for script writing"`
	FirebaseAPIKey  string `flag:"" env:"FIREBASE_API_KEY" help:"Firebase web API key for sign-in"`
}

// Run executes the TUI command.
//
//nolint:funlen // CLI command with multiple setup steps
func (c *TUICmd) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Resolve API keys: flags and environment take priority, fallback to keychain
	c.OpenAIAPIKey = keyring.Resolve(c.OpenAIAPIKey, keyring.OpenAI)
	c.AnthropicAPIKey = keyring.Resolve(c.AnthropicAPIKey, keyring.Anthropic)
	c.FirebaseAPIKey = keyring.Resolve(c.FirebaseAPIKey, keyring.Firebase)

	var missing []string
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "openai")
	}

	if c.AnthropicAPIKey == "" {
		missing = append(missing, "anthropic")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing API keys: %s. Set via environment variables or run 'curate config set-key'",
			strings.Join(missing, ", "))
	}

	root := c.Root
	if root == "" {
		root = cfg.StorageRoot
	}

	dir, err := workdir.New(root)
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	workingName := workdir.WorkingName(c.Name, time.Now())
	if err := dir.Prep(workingName); err != nil {
		return fmt.Errorf("failed to prepare working directory: %w", err)
	}

	// stdout belongs to the TUI from here on
	log, closer, err := logger.SetupFileLogger(dir.FilePath(workingName, logFile), logger.Level(cfg.Env, cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closer.Close()

	snapshots, err := store.Open(dir.WorkPath(workingName))
	if err != nil {
		return err
	}

	state, err := c.initialState(snapshots, cfg.Wizard)
	if err != nil {
		return err
	}

	flow := wizard.NewFlow(state)

	tuiCfg := tui.Config{
		Cancel:      cancel,
		WorkingName: workingName,
		Dir:         dir,
		Flow:        flow,
		Wheel:       cfg.Wheel,
		Handoff: func(_ context.Context, summary wizard.Summary) error {
			log.Info("Saving selections", "liked", summary.LikedCount, "schedule", summary.Schedule)
			return snapshots.Save(selectionsSnapshot, flow.State())
		},
		Writer:   content.NewWriter(c.AnthropicAPIKey, cfg.ScriptModel),
		Narrator: content.NewNarrator(c.OpenAIAPIKey, cfg.VoiceModel),
	}

	if !c.NoReview {
		tuiCfg.Editor = workflow.DefaultEditorLauncher{}
	}

	switch {
	case c.NoLogin:
	case c.FirebaseAPIKey == "":
		log.Warn("No Firebase API key, skipping sign-in")
	default:
		tuiCfg.Auth = auth.NewSession(auth.NewFirebase(c.FirebaseAPIKey), log)
	}

	log.Info("Starting curate", "working_name", workingName, "root", dir.Root())

	p := tea.NewProgram(tui.New(ctx, tuiCfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	fmt.Printf("\nfiles are in %s\n", dir.WorkPath(workingName))

	return nil
}

func (c *TUICmd) initialState(snapshots *store.Store, wizardCfg wizard.Config) (*wizard.State, error) {
	if !c.Resume {
		return wizard.NewState(wizardCfg, wizard.DefaultCatalog()), nil
	}

	snap, err := snapshots.Load(selectionsSnapshot)
	if err != nil {
		return nil, fmt.Errorf("nothing to resume: %w", err)
	}

	slog.Info("Resuming selections", "saved_at", snap.SavedAt)

	state := snap.State
	state.Restore(wizardCfg)

	return state, nil
}

// CatalogCmd prints the built-in catalog as YAML.
type CatalogCmd struct{}

// Run executes the catalog command.
func (c *CatalogCmd) Run() error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()

	if err := enc.Encode(wizard.DefaultCatalog()); err != nil {
		return fmt.Errorf("failed to print catalog: %w", err)
	}

	return nil
}

// FlowsCmd lists snapshots written by the server's complete endpoint.
type FlowsCmd struct {
	Root string `flag:"" optional:"" help:"Storage root (default: STORAGE_ROOT or ~/Documents/Alkime/Podcasts)"`
}

// Run executes the flows command.
func (c *FlowsCmd) Run() error {
	root := c.Root
	if root == "" {
		root = os.Getenv("STORAGE_ROOT")
	}

	dir, err := workdir.New(root)
	if err != nil {
		return err
	}

	snapshots, err := store.Open(dir.WorkPath(flowsDir))
	if err != nil {
		return err
	}

	names, err := snapshots.List()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("no saved flows")
		return nil
	}

	for _, name := range names {
		snap, err := snapshots.Load(name)
		if err != nil {
			slog.Warn("Skipping unreadable snapshot", "name", name, "error", err)
			continue
		}

		fmt.Printf("%s  %s  %s\n", name, snap.SavedAt.Local().Format(time.DateTime), snap.State.ScheduleDescription())
	}

	return nil
}

// ConfigCmd groups configuration-related subcommands.
type ConfigCmd struct {
	SetKey   SetKeyCmd   `cmd:"" help:"Store an API key in system keychain"`
	ListKeys ListKeysCmd `cmd:"" name:"list-keys" help:"Show which API keys are configured"`
}

// SetKeyCmd stores an API key in the system keychain.
type SetKeyCmd struct {
	Service string `arg:"" enum:"openai,anthropic,firebase" help:"Service name (openai, anthropic or firebase)"`
	Secret  string `arg:"" help:"API key value"`
}

// Run executes the set-key command.
func (c *SetKeyCmd) Run() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("API key cannot be empty")
	}

	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Set(apiKey, c.Secret); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Printf("%s API key stored in keychain\n", c.Service)

	return nil
}

// ListKeysCmd shows which API keys are configured.
type ListKeysCmd struct{}

// Run executes the list-keys command.
//
//nolint:unparam // error return required by Kong interface
func (c *ListKeysCmd) Run() error {
	allSet := true

	for _, apiKey := range keyring.AllAPIKeys() {
		if keyring.IsSet(apiKey) {
			fmt.Printf("%s: configured\n", apiKey.DisplayName())
		} else {
			fmt.Printf("%s: not set\n", apiKey.DisplayName())
			allSet = false
		}
	}

	if !allSet {
		fmt.Println("\nRun 'curate config set-key <service> <key>' to configure.")
	}

	return nil
}

func main() {
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("curate"),
		kong.Description("Pick the news you like and turn it into a scheduled podcast episode."),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
