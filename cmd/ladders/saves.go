package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-ladders/internal/game"
	"github.com/vovakirdan/tui-ladders/internal/storage"
)

var (
	flagDeleteSave string
	flagExportSave string
	flagImportPath string
	flagImportName string
	flagOutPath    string
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List, delete, export or import saved games",
	Long: `Manage saved games. Without flags, lists every save.

Saves go to the SQLite database, or to redis when storage.redis_addr
is configured. An exported save is a YAML file that can be imported on
another machine.

Examples:
  ladders saves
  ladders saves --delete friday
  ladders saves --export friday --out friday.yaml
  ladders saves --import friday.yaml --name friday-copy`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDeleteSave, "delete", "", "Delete the named save")
	savesCmd.Flags().StringVar(&flagExportSave, "export", "", "Write the named save as YAML")
	savesCmd.Flags().StringVar(&flagOutPath, "out", "", "File for --export (default: stdout)")
	savesCmd.Flags().StringVar(&flagImportPath, "import", "", "Import a save from a YAML file")
	savesCmd.Flags().StringVar(&flagImportName, "name", "", "Name for --import (default: the name in the file)")
	savesCmd.MarkFlagsMutuallyExclusive("delete", "export", "import")
}

// exportedSave is the YAML document written by --export. Rules may be
// missing from files exported before they were saved.
type exportedSave struct {
	Name     string        `yaml:"name"`
	Layout   string        `yaml:"layout"`
	Rules    *game.Rules   `yaml:"rules,omitempty"`
	Snapshot game.Snapshot `yaml:"snapshot"`
}

func runSaves(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	backs, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer backs.Close()

	switch {
	case flagDeleteSave != "":
		if err := backs.saves.DeleteSave(ctx, flagDeleteSave); err != nil {
			return err
		}
		fmt.Printf("Deleted %q.\n", flagDeleteSave)
		return nil

	case flagExportSave != "":
		saved, err := backs.saves.LoadGame(ctx, flagExportSave)
		if err != nil {
			return err
		}
		doc := exportedSave{
			Name:     saved.Name,
			Layout:   saved.Layout,
			Snapshot: saved.Snapshot,
		}
		if saved.Rules != (game.Rules{}) {
			doc.Rules = &saved.Rules
		}
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("cannot encode save: %w", err)
		}
		if flagOutPath == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(flagOutPath, data, 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", flagOutPath, err)
		}
		fmt.Printf("Exported %q to %s.\n", saved.Name, flagOutPath)
		return nil

	case flagImportPath != "":
		data, err := os.ReadFile(flagImportPath)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", flagImportPath, err)
		}
		var doc exportedSave
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("cannot parse %s: %w", flagImportPath, err)
		}

		name := flagImportName
		if name == "" {
			name = doc.Name
		}
		if strings.TrimSpace(name) == "" {
			return errors.New("the file has no save name; pass --name")
		}

		rules, err := cfg.GameRules()
		if err != nil {
			return err
		}
		if doc.Rules != nil {
			rules = *doc.Rules
		}

		// Reject snapshots that could not be resumed.
		b, err := savedBoard(cfg, doc.Layout)
		if err != nil {
			return err
		}
		if _, err := game.NewFromSnapshot(b, doc.Snapshot, game.WithRules(rules)); err != nil {
			return fmt.Errorf("invalid save in %s: %w", flagImportPath, err)
		}

		save := storage.SavedGame{
			Name:     name,
			Layout:   doc.Layout,
			Rules:    rules,
			Snapshot: doc.Snapshot,
		}
		if err := backs.saves.SaveGame(ctx, save); err != nil {
			return err
		}
		fmt.Printf("Imported %q. Resume with 'ladders play --resume %s'.\n", name, name)
		return nil
	}

	saves, err := backs.saves.ListSaves(ctx)
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		fmt.Println()
		fmt.Println("Press S during a game, or run 'ladders play --save <name>', to keep one.")
		return nil
	}

	maxNameLen := 4 // "Name" header
	for _, s := range saves {
		if len(s.Name) > maxNameLen {
			maxNameLen = len(s.Name)
		}
	}

	fmt.Printf("  %-*s  %-10s  %-8s  %-5s  %-16s  %s\n", maxNameLen, "Name", "Board", "Status", "Turn", "Saved", "Players")
	fmt.Printf("  %-*s  %-10s  %-8s  %-5s  %-16s  %s\n", maxNameLen, "----", "-----", "------", "----", "-----", "-------")
	for _, s := range saves {
		fmt.Printf("  %-*s  %-10s  %-8s  %-5d  %-16s  %s\n",
			maxNameLen, s.Name, s.Layout, s.Status, s.Turn,
			s.UpdatedAt.Local().Format("2006-01-02 15:04"), strings.Join(s.Players, ", "))
	}
	return nil
}
