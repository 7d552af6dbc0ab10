package main

import (
	"fmt"
	"os"

	"tunetidy/internal/app"
	"tunetidy/internal/config"
	"tunetidy/internal/engine"
	"tunetidy/internal/export"
	"tunetidy/internal/model"
	"tunetidy/internal/quality"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "Scan", "Cleanup").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "tunetidy",
	Short: "Music collection curator",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [LIBRARY_ROOT]",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(argOrEmpty(args), defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Library Root: %s\n", cfg.LibraryRoot)
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Library Root: %s\n", cfg.LibraryRoot)
		fmt.Printf("Trash Folder: %s\n", cfg.TrashFolder)
		fmt.Printf("Base Dir:     %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Backups:      %s (%s)\n", cfg.Backups.Type, cfg.Backups.DataDir)
		fmt.Printf("Fuzzy:        enabled=%t threshold=%.2f\n", cfg.Fuzzy.Enabled, cfg.Fuzzy.Threshold)
		return nil
	},
}

// scan command
var scanCmd = &cobra.Command{
	Use:   "scan [PATH]",
	Short: "List MP3 files in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")

		a, err := newApp("Scan")
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.Scan(argOrEmpty(args), recursive)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No MP3 files found.")
			return nil
		}

		for _, rec := range records {
			location := "organized"
			if rec.IsRoot {
				location = "root"
			}
			fmt.Printf("%-9s  %s  [%s - %s]\n",
				location,
				rec.Path,
				orDash(rec.Metadata.ArtistOrEmpty()),
				orDash(rec.Metadata.TitleOrEmpty()),
			)
		}
		fmt.Printf("\n%d file(s)\n", len(records))
		return nil
	},
}

// analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [PATH]",
	Short: "Report naming and metadata issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")

		a, err := newApp("Analyze")
		if err != nil {
			return err
		}
		defer a.Close()

		flagged, err := a.Analyze(argOrEmpty(args), recursive)
		if err != nil {
			return err
		}

		if len(flagged) == 0 {
			fmt.Println("No issues found.")
			return nil
		}

		for _, rec := range flagged {
			fmt.Printf("%s\n", rec.Path)
			for _, issue := range rec.Issues {
				fmt.Printf("  [%s] %s: %s\n", issue.Severity, issue.Type, issue.Description)
			}
			if rec.SuggestedName != "" && rec.SuggestedName != rec.Filename {
				fmt.Printf("  suggested: %s\n", rec.SuggestedName)
			}
		}
		fmt.Printf("\n%d file(s) with issues\n", len(flagged))
		return nil
	},
}

// dupes command
var dupesCmd = &cobra.Command{
	Use:   "dupes [PATH]",
	Short: "Detect duplicates between root and organized folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		fuzzy, _ := cmd.Flags().GetBool("fuzzy")

		a, err := newApp("Duplicates")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Duplicates(argOrEmpty(args))
		if err != nil {
			return err
		}

		if len(result.Groups) == 0 {
			fmt.Println("No duplicates found.")
		}
		for _, group := range result.Groups {
			fmt.Printf("%s\n", group.Key)
			for _, f := range group.RootFiles {
				fmt.Printf("  root       %s\n", f.Path)
			}
			for _, f := range group.OrganizedFiles {
				fmt.Printf("  organized  %s\n", f.Path)
			}
		}
		if len(result.WithoutMetadata) > 0 {
			fmt.Printf("\n%d file(s) skipped for missing artist/title tags\n", len(result.WithoutMetadata))
		}

		if fuzzy {
			pairs, err := a.SimilarPairs(argOrEmpty(args))
			if err != nil {
				return err
			}
			if len(pairs) > 0 {
				fmt.Println("\nPossible near-matches (not eligible for cleanup):")
				for _, p := range pairs {
					fmt.Printf("  %.2f  %s <> %s\n", p.Score, p.A.Path, p.B.Path)
				}
			}
		}
		return nil
	},
}

// cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup [PATH]",
	Short: "Move root duplicates to the trash folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		trash, _ := cmd.Flags().GetString("trash")

		a, err := newApp("Cleanup")
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Cleanup(argOrEmpty(args), trash)
		if err != nil {
			return err
		}

		for _, moved := range report.MovedFiles {
			fmt.Printf("moved  %s -> %s\n", moved.OriginalPath, moved.TrashPath)
		}
		for _, failed := range report.FailedFiles {
			fmt.Printf("FAILED %s: %s\n", failed.Path, failed.Error)
		}
		fmt.Printf("\nMoved %d duplicate(s) to %s", len(report.MovedFiles), report.TrashFolder)
		if len(report.FailedFiles) > 0 {
			fmt.Printf(" (%d failed)", len(report.FailedFiles))
		}
		fmt.Println()
		return nil
	},
}

// rename command
var renameCmd = &cobra.Command{
	Use:   "rename [PATH]",
	Short: "Rename files to the {Artist} - {Title}.mp3 standard",
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")
		noBackup, _ := cmd.Flags().GetBool("no-backup")

		a, err := newApp("Rename")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Rename(argOrEmpty(args), recursive, !noBackup)
		if err != nil {
			return err
		}

		printBatchResult(result)
		return nil
	},
}

// fix command
var fixCmd = &cobra.Command{
	Use:   "fix [PATH]",
	Short: "Fill missing tags from filenames and rename",
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")
		noBackup, _ := cmd.Flags().GetBool("no-backup")

		a, err := newApp("AutoFix")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.AutoFix(argOrEmpty(args), recursive, !noBackup)
		if err != nil {
			return err
		}

		filled, renamed := 0, 0
		for _, outcome := range result.Outcomes {
			if outcome.MetadataFilled {
				filled++
			}
			if outcome.Renamed {
				renamed++
				fmt.Printf("renamed  %s -> %s\n", outcome.Path, outcome.NewPath)
			}
		}
		for _, failed := range result.Failed {
			fmt.Printf("FAILED   %s: %s\n", failed.Path, failed.Error)
		}
		fmt.Printf("\nStatus: %s  (tags filled: %d, renamed: %d, failed: %d)\n",
			result.Status, filled, renamed, len(result.Failed))
		if result.BackupID != "" {
			fmt.Printf("Backup: %s\n", result.BackupID)
		}
		return nil
	},
}

// set command
var setCmd = &cobra.Command{
	Use:   "set [PATH]",
	Short: "Write tag fields to every file",
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")
		noBackup, _ := cmd.Flags().GetBool("no-backup")

		update := model.Metadata{}
		if v, _ := cmd.Flags().GetString("artist"); v != "" {
			update.Artist = model.String(v)
		}
		if v, _ := cmd.Flags().GetString("album"); v != "" {
			update.Album = model.String(v)
		}
		if v, _ := cmd.Flags().GetString("album-artist"); v != "" {
			update.AlbumArtist = model.String(v)
		}
		if v, _ := cmd.Flags().GetString("genre"); v != "" {
			update.Genre = model.String(v)
		}
		if v, _ := cmd.Flags().GetInt("year"); v != 0 {
			update.Year = model.Int(v)
		}
		if update == (model.Metadata{}) {
			return fmt.Errorf("no tag fields given (use --artist, --album, --album-artist, --genre or --year)")
		}

		a, err := newApp("SetMetadata")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.SetMetadata(argOrEmpty(args), update, recursive, !noBackup)
		if err != nil {
			return err
		}

		printBatchResult(result)
		return nil
	},
}

// organize command
var organizeCmd = &cobra.Command{
	Use:   "organize TARGET [PATH]",
	Short: "Move files into an {Artist}/{Album} tree",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noBackup, _ := cmd.Flags().GetBool("no-backup")

		a, err := newApp("Organize")
		if err != nil {
			return err
		}
		defer a.Close()

		source := ""
		if len(args) > 1 {
			source = args[1]
		}

		result, err := a.Organize(source, args[0], !noBackup)
		if err != nil {
			return err
		}

		for _, moved := range result.Moved {
			if moved.OldPath != moved.NewPath {
				fmt.Printf("moved  %s -> %s\n", moved.OldPath, moved.NewPath)
			}
		}
		for _, failed := range result.Failed {
			fmt.Printf("FAILED %s: %s\n", failed.Path, failed.Error)
		}
		fmt.Printf("\nStatus: %s  (moved: %d, failed: %d)\n", result.Status, len(result.Moved), len(result.Failed))
		if result.BackupID != "" {
			fmt.Printf("Backup: %s\n", result.BackupID)
		}
		return nil
	},
}

// quality command
var qualityCmd = &cobra.Command{
	Use:   "quality [PATH]",
	Short: "Estimate per-file audio quality",
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")
		lowOnly, _ := cmd.Flags().GetBool("low")

		a, err := newApp("Quality")
		if err != nil {
			return err
		}
		defer a.Close()

		assessments, err := a.Quality(argOrEmpty(args), recursive)
		if err != nil {
			return err
		}

		shown := 0
		for _, as := range assessments {
			if lowOnly && !as.Report.NeedsUpgrade {
				continue
			}
			shown++
			if as.Report.Rating == quality.RatingUnknown {
				fmt.Printf("%-10s  %8s  %s\n", as.Report.Rating, "-", as.Record.Path)
				continue
			}
			fmt.Printf("%-10s  %6.0f k  %s\n", as.Report.Rating, as.Report.BitrateKbps, as.Record.Path)
		}
		if shown == 0 {
			fmt.Println("Nothing to report.")
		}
		return nil
	},
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore BACKUP_ID",
	Short: "Undo a batch operation from its backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Restore")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Restore(args[0])
		if err != nil {
			return err
		}

		for _, failed := range result.Failed {
			fmt.Printf("FAILED %s: %s\n", failed.Path, failed.Error)
		}
		fmt.Println(result.Message)
		return nil
	},
}

// backups command
var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List backup snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Backups")
		if err != nil {
			return err
		}
		defer a.Close()

		snaps, err := a.Backups()
		if err != nil {
			return err
		}

		if len(snaps) == 0 {
			fmt.Println("No backups recorded.")
			return nil
		}

		for _, snap := range snaps {
			fmt.Printf("%s  %s  %-9s  %d file(s)\n",
				snap.ID,
				snap.CreatedAt.Format("2006-01-02 15:04:05"),
				snap.Operation,
				len(snap.Entries),
			)
		}
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export [PATH]",
	Short: "Export the library listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		issuesOnly, _ := cmd.Flags().GetBool("issues")

		a, err := newApp("Export")
		if err != nil {
			return err
		}
		defer a.Close()

		if issuesOnly {
			return a.ExportIssues(argOrEmpty(args), os.Stdout)
		}

		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		return a.Export(argOrEmpty(args), format, os.Stdout)
	},
}

func printBatchResult(result *engine.BatchResult) {
	for _, renamed := range result.Renamed {
		if renamed.OldPath != renamed.NewPath {
			fmt.Printf("renamed  %s -> %s\n", renamed.OldPath, renamed.NewPath)
		}
	}
	for _, path := range result.Updated {
		fmt.Printf("updated  %s\n", path)
	}
	for _, failed := range result.Failed {
		fmt.Printf("FAILED   %s: %s\n", failed.Path, failed.Error)
	}
	fmt.Printf("\nStatus: %s  (renamed: %d, updated: %d, failed: %d)\n",
		result.Status, len(result.Renamed), len(result.Updated), len(result.Failed))
	if result.BackupID != "" {
		fmt.Printf("Backup: %s\n", result.BackupID)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolP("recursive", "r", true, "Recurse into subdirectories")
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolP("recursive", "r", true, "Recurse into subdirectories")
	rootCmd.AddCommand(dupesCmd)
	dupesCmd.Flags().Bool("fuzzy", false, "Also report fuzzy near-matches")
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().String("trash", "", "Trash folder name (default from config)")
	rootCmd.AddCommand(renameCmd)
	renameCmd.Flags().BoolP("recursive", "r", true, "Recurse into subdirectories")
	renameCmd.Flags().Bool("no-backup", false, "Skip the backup snapshot")
	rootCmd.AddCommand(fixCmd)
	fixCmd.Flags().BoolP("recursive", "r", true, "Recurse into subdirectories")
	fixCmd.Flags().Bool("no-backup", false, "Skip the backup snapshot")
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().BoolP("recursive", "r", true, "Recurse into subdirectories")
	setCmd.Flags().Bool("no-backup", false, "Skip the backup snapshot")
	setCmd.Flags().String("artist", "", "Artist tag to write")
	setCmd.Flags().String("album", "", "Album tag to write")
	setCmd.Flags().String("album-artist", "", "Album artist tag to write")
	setCmd.Flags().String("genre", "", "Genre tag to write")
	setCmd.Flags().Int("year", 0, "Year tag to write")
	rootCmd.AddCommand(organizeCmd)
	organizeCmd.Flags().Bool("no-backup", false, "Skip the backup snapshot")
	rootCmd.AddCommand(qualityCmd)
	qualityCmd.Flags().BoolP("recursive", "r", true, "Recurse into subdirectories")
	qualityCmd.Flags().Bool("low", false, "Show only files that need an upgrade")
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", "txt", "Output format: txt, csv or json")
	exportCmd.Flags().Bool("issues", false, "Export the issues-only report")
}
