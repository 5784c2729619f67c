// Command dbsecret reads the database connection descriptor from Azure Key
// Vault and prints the database name. It never connects to the database.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aarguelles2/nTOU/internal/config"
	"github.com/aarguelles2/nTOU/internal/logging"
	"github.com/aarguelles2/nTOU/internal/secrets"
)

// Deps holds the process boundaries run() touches.
type Deps struct {
	Getenv    func(string) string
	NewGetter func(cfg secrets.Config) (secrets.SecretGetter, error)
	Stdout    io.Writer
	Stderr    io.Writer
}

func defaultDeps() Deps {
	return Deps{
		Getenv: os.Getenv,
		NewGetter: func(cfg secrets.Config) (secrets.SecretGetter, error) {
			return secrets.NewAzureClient(cfg)
		},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// run fetches the descriptor and prints the database name, then the DSN when
// requested.
func run(ctx context.Context, cfg *config.Secrets, deps Deps) error {
	log := logging.New(logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Component: "dbsecret",
		Writer:    deps.Stderr,
	})

	sc := secrets.Config{
		VaultURL:      cfg.VaultURL,
		SecretName:    cfg.SecretName,
		SecretVersion: cfg.SecretVersion,
	}
	getter, err := deps.NewGetter(sc)
	if err != nil {
		return err
	}

	log.Debug().Str("vault", sc.VaultURL).Str("secret", sc.SecretName).Msg("fetching connection info")
	info, err := secrets.FetchConnectionInfo(ctx, getter, sc)
	if err != nil {
		if secrets.IsNotFound(err) {
			log.Error().Str("vault", sc.VaultURL).Str("secret", sc.SecretName).Msg("secret does not exist in vault")
		}
		return err
	}
	log.Info().Str("server", info.Server).Str("database", info.Database).Msg("connection info retrieved")

	if _, err := fmt.Fprintln(deps.Stdout, info.Database); err != nil {
		return err
	}
	if !cfg.PrintDSN {
		return nil
	}
	dsn, err := info.DSN()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(deps.Stdout, dsn)
	return err
}

func newRootCmd(deps Deps) *cobra.Command {
	var cfg *config.Secrets
	cmd := &cobra.Command{
		Use:           "dbsecret",
		Short:         "Print the database named by the Key Vault connection secret",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, deps)
		},
	}
	cfg = config.BindSecrets(cmd.Flags(), deps.Getenv)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(defaultDeps()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dbsecret: %v\n", err)
		stop()
		os.Exit(1)
	}
}
