// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/cr8cert/src/config"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/issuer"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/truststore"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/inspect"
	"github.com/H0llyW00dzZ/cr8cert/src/logger"
)

// ErrNoHosts is returned when positional hosts are given without --create.
var ErrNoHosts = errors.New("hosts given without --create")

// flags holds the parsed command-line flags of one invocation.
type flags struct {
	install    bool
	uninstall  bool
	hosts      []string
	table      bool
	tree       bool
	jsonLog    bool
	configPath string
	overrides  config.Overrides
}

// Options replaces collaborators of the root command. The zero value uses the
// system trust store.
type Options struct {
	// TrustStore registers the root CA. Nil means the platform's trust store.
	TrustStore truststore.Store
}

// Execute runs the root command with os.Args.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log, Options{}).ExecuteContext(ctx)
}

// NewRootCommand builds the cr8cert root command.
func NewRootCommand(version string, log logger.Logger, opts Options) *cobra.Command {
	f := &flags{}
	name := posix.GetExecutableName()

	cmd := &cobra.Command{
		Use:   name + " [--install] [--create HOST...] [--uninstall]",
		Short: "Create locally-trusted development certificates",
		Long: `Create a local root CA, register it with the system trust store and issue
TLS certificates signed by it for any host name or IP address.`,
		Example: fmt.Sprintf(`  %[1]s --install
  %[1]s --create localhost 127.0.0.1 ::1
  %[1]s -c example.test -c "*.example.test" --table
  %[1]s --uninstall`, name),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if !cmd.Flags().Changed("create") {
					return fmt.Errorf("%w: %v", ErrNoHosts, args)
				}
				f.hosts = append(f.hosts, args...)
			}
			return run(cmd, f, log, opts)
		},
	}

	fl := cmd.Flags()
	fl.BoolVarP(&f.install, "install", "i", false, "create the local root CA and register it with the system trust store")
	fl.BoolVarP(&f.uninstall, "uninstall", "u", false, "remove the local root CA from the system trust store and delete it")
	fl.StringSliceVarP(&f.hosts, "create", "c", nil, "issue a certificate for the given hosts (repeatable, or followed by more hosts)")
	fl.BoolVar(&f.table, "table", false, "print the certificates as a markdown table")
	fl.BoolVar(&f.tree, "tree", false, "print the certificates as an ASCII tree")
	fl.BoolVar(&f.jsonLog, "json-log", false, "log as JSON lines")
	fl.StringVar(&f.configPath, "config", "", "path to a JSON or YAML config file (default: $"+config.EnvConfigFile+")")
	fl.StringVar(&f.overrides.RootDir, "root-dir", "", "root CA directory (default: $ROOTCA or the per-user data directory)")
	fl.StringVar(&f.overrides.OutputDir, "output-dir", "", "directory for cert.pem and key.pem (default: current directory)")
	fl.IntVar(&f.overrides.ValidityDays, "days", 0, "validity of new certificates in days (default 365)")
	fl.IntVar(&f.overrides.RSABits, "bits", 0, "RSA key size of new keys: 2048, 3072 or 4096 (default 2048)")

	cmd.MarkFlagsOneRequired("install", "uninstall", "create")
	cmd.MarkFlagsMutuallyExclusive("install", "uninstall")
	cmd.MarkFlagsMutuallyExclusive("uninstall", "create")

	return cmd
}

func run(cmd *cobra.Command, f *flags, log logger.Logger, opts Options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if f.jsonLog {
		log = logger.NewJSONLogger(cmd.OutOrStdout(), false)
	}
	log = logger.OrDiscard(log)

	cfg, err := config.Load(f.configPath, f.overrides)
	if err != nil {
		return err
	}

	trust := opts.TrustStore
	if trust == nil {
		trust = truststore.NewSystem(log)
	}
	iss := issuer.New(cfg, trust, log)

	if f.uninstall {
		return iss.Uninstall(ctx)
	}

	if f.install {
		if _, err := iss.EnsureCAInstalled(ctx); err != nil {
			return err
		}
	}

	var chain []*x509.Certificate
	if len(f.hosts) > 0 {
		res, err := iss.IssueToDir(ctx, f.hosts)
		if err != nil {
			return err
		}
		chain = []*x509.Certificate{res.Cert, res.CA}
	}

	if !f.table && !f.tree {
		return nil
	}
	if chain == nil {
		root, err := iss.RootCA()
		if err != nil {
			return err
		}
		chain = []*x509.Certificate{root}
	}

	view := inspect.New(chain...)
	out := cmd.OutOrStdout()
	if f.table {
		fmt.Fprintln(out, view.RenderTable())
	}
	if f.tree {
		fmt.Fprint(out, view.RenderASCIITree())
	}
	return nil
}
