package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yoshimomax/sysmlmodeler/internal/config"
	"github.com/yoshimomax/sysmlmodeler/internal/logging"
	"github.com/yoshimomax/sysmlmodeler/internal/manager"
	"github.com/yoshimomax/sysmlmodeler/pkg/codec"
	"github.com/yoshimomax/sysmlmodeler/pkg/export"
	"github.com/yoshimomax/sysmlmodeler/pkg/server"
	"github.com/yoshimomax/sysmlmodeler/pkg/service"
	"github.com/yoshimomax/sysmlmodeler/pkg/validation"
)

func main() {
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:   "sysmlmodeler",
		Short: "KerML-style metamodel server and tooling",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(validateCmd())
	root.AddCommand(exportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// serveCmd runs the REST API over a project directory tree.
func serveCmd(configPath *string) *cobra.Command {
	var readOnly bool

	cmd := &cobra.Command{
		Use:   "serve [data-dir]",
		Short: "Run the REST API server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.DataDir = args[0]
			}
			cfg.ReadOnly = cfg.ReadOnly || readOnly

			log, err := logging.New(cfg)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			mgr := manager.NewStoreManager(cfg.DataDir, cfg.ReadOnly)
			defer mgr.CloseAll()

			log.Info("project root", zap.String("dataDir", cfg.DataDir), zap.Bool("readOnly", cfg.ReadOnly))
			srv := server.NewServer(service.NewModelService(mgr), log)
			return srv.Run(cfg.Addr)
		},
	}
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "open project stores read-only")
	return cmd
}

// validateCmd checks a model record file and prints the issues.
func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a serialized model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			m, err := codec.DecodeModel(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			issues := validation.ValidateModel(m)
			if len(issues) == 0 {
				fmt.Println("model is valid")
				return nil
			}
			for _, issue := range issues {
				fmt.Printf("%s %s [%s]: %s\n", issue.Code, issue.ElementID, issue.ElementType, issue.Message)
			}
			return fmt.Errorf("%d validation issues", len(issues))
		},
	}
}

// exportCmd renders a model record file as a D3 diagram graph.
func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a serialized model file as a D3 graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			m, err := codec.DecodeModel(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			graph := export.Transform(m)
			if err := export.SaveGraph(graph, out); err != nil {
				return err
			}
			fmt.Printf("wrote %d nodes, %d links to %s\n", len(graph.Nodes), len(graph.Links), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "graph.json", "output file")
	return cmd
}
