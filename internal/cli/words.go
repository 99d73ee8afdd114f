package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pjessen/partywords/internal/factory"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/services/words"
	redisstorage "github.com/pjessen/partywords/internal/storage/redis"
)

// newWordsCmd manages word packs directly against the configured storage
// backend, without a running server
func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Manage stored word packs",
	}

	cmd.AddCommand(newWordsListCmd())
	cmd.AddCommand(newWordsShowCmd())
	cmd.AddCommand(newWordsImportCmd())
	cmd.AddCommand(newWordsDeleteCmd())

	return cmd
}

func newWordsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List word packs",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			packs, err := app.WordsService.ListPacks(context.Background())
			if err != nil {
				return err
			}
			for _, pack := range packs {
				fmt.Printf("%s\t%d words\n", pack.Name, len(pack.Words))
			}
			return nil
		},
	}
}

func newWordsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a word pack's words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			pack, err := app.WordsService.GetPack(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(pack.Words, "\n"))
			return nil
		},
	}
}

func newWordsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Import a word pack from a newline-delimited file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			list := words.Normalize(strings.Split(string(data), "\n"))
			if len(list) == 0 {
				return fmt.Errorf("no words found in %s", args[1])
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			pack, err := app.WordsService.SavePack(context.Background(), args[0], model.UserID("cli"), list)
			if err != nil {
				return err
			}
			fmt.Printf("saved %s with %d words\n", pack.Name, len(pack.Words))
			return nil
		},
	}
}

func newWordsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a word pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.WordsService.DeletePack(context.Background(), args[0])
		},
	}
}

// newApp wires a headless app against the configured storage backend
func newApp() (*factory.App, error) {
	cfg := LoadConfig()
	factoryCfg := factory.Config{StorageType: cfg.StorageType}
	if factoryCfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}
	return factory.New(factoryCfg)
}
