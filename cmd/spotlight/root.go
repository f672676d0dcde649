package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/kerbaras/spotlight/pkg/app/styles"
	"github.com/kerbaras/spotlight/pkg/config"
	"github.com/kerbaras/spotlight/pkg/logging"
	"github.com/kerbaras/spotlight/pkg/services"
	"github.com/kerbaras/spotlight/pkg/sources"
	"github.com/kerbaras/spotlight/pkg/utils"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Seams for tests.
var (
	newSource = func(from string, logger zerolog.Logger) sources.Source {
		if from != "" {
			return sources.NewFileSource(from, logger)
		}
		return sources.NewRegistrySource(logger)
	}
	newHTTPClient = func() *http.Client { return http.DefaultClient }
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spotlight [url...]",
		Short: "A tool to download Windows spotlight wallpapers",
		Long: `Download the wallpapers shown by Windows spotlight on the desktop.

Without arguments the wallpaper currently on screen is saved. Pass the URLs
of wallpaper detail pages to save those instead.

Examples:
  spotlight --list
  spotlight --all -o ~/Pictures/Spotlight
  spotlight -f -o alps.jpg "https://www.bing.com/spotlight?spotlightId=Alps"`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().BoolP("force", "f", false, "Force download even if the file already exists")
	rootCmd.Flags().StringP("output", "o", ".", "The output directory, or file path for a single wallpaper")
	rootCmd.Flags().BoolP("list", "l", false, "List the wallpapers in the spotlight cache without downloading")
	rootCmd.Flags().BoolP("all", "a", false, "Download all the wallpapers in the spotlight cache")
	rootCmd.Flags().BoolP("uri", "u", false, "Print the detail page URL of the wallpaper on screen")
	rootCmd.Flags().Bool("plain", false, "List as plain text instead of a table")
	rootCmd.Flags().String("config", "", "Config file (default: <user config dir>/spotlight/config.yaml)")
	rootCmd.Flags().String("from", "", "Read spotlight information from a JSON snapshot instead of the registry")
	rootCmd.Flags().String("user-agent", "", "User-Agent header for web requests")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().Bool("no-color", false, "Disable colored output")

	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path, _ = config.DefaultPath()
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("force") {
		cfg.Force, _ = flags.GetBool("force")
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent, _ = flags.GetString("user-agent")
	}
	if flags.Changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.NoColor {
		styles.DisableColor()
	}

	logger, err := logging.New(cfg.Log, cfg.NoColor, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()

	from, _ := cmd.Flags().GetString("from")
	source := newSource(from, logger.Logger)

	api := utils.NewAPI(newHTTPClient(), cfg.UserAgent)
	resolver := sources.NewPageResolver(api, logger.Logger)
	downloader := services.NewDownloader(resolver, api, logger.Logger)

	out := cmd.OutOrStdout()
	plain, _ := cmd.Flags().GetBool("plain")
	controller, err := services.NewController(source, downloader, services.Options{
		Output: cfg.Output,
		Force:  cfg.Force,
		Plain:  plain,
	}, out, logger.Logger)
	if err != nil {
		fmt.Fprintln(out, styles.ErrorStyle.Render("Failed to retrieve spotlight information."))
		return err
	}

	if uri, _ := cmd.Flags().GetBool("uri"); uri {
		current, err := source.FetchCurrentDetailURI()
		if err != nil {
			fmt.Fprintln(out, styles.ErrorStyle.Render("Failed to retrieve the current wallpaper URL."))
			return err
		}
		fmt.Fprintln(out, current)
		return nil
	}

	list, _ := cmd.Flags().GetBool("list")
	all, _ := cmd.Flags().GetBool("all")
	summary := controller.Run(services.SelectMode(list, all, args), args)

	logger.Debug().
		Int("attempted", summary.Attempted).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("Done")
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
