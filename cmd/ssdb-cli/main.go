// Command ssdb-cli is a small command line client for an SSDB server,
// useful for poking at a store without a language runtime attached.
//
// Connection settings come from flags, falling back to the environment
// (SSDB_ADDR, SSDB_PASSWORD, SSDB_TIMEOUT, optionally via .env.local).
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/driftlab/ssdb"
)

var (
	addr     string
	password string
	timeout  time.Duration
	verbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&addr, "addr", "a", "", "server address (default $SSDB_ADDR or 127.0.0.1:8888)")
	flags.StringVarP(&password, "password", "p", "", "auth password (default $SSDB_PASSWORD)")
	flags.DurationVarP(&timeout, "timeout", "t", 0, "connect/read/write timeout (default $SSDB_TIMEOUT or 5s)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log connection lifecycle events")

	rootCmd.AddCommand(getCmd, setCmd, delCmd, incrCmd, infoCmd)
}

var rootCmd = &cobra.Command{
	Use:           "ssdb-cli",
	Short:         "Command line client for an SSDB server",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func newSession(ctx context.Context) (*ssdb.Session, error) {
	envConfig, err := ssdb.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	if addr == "" {
		addr = envConfig.Addr
	}

	config := envConfig.SessionConfig()
	if password != "" {
		config.Password = password
	}
	if timeout > 0 {
		config.Timeout = timeout
	}

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		config.Logger = logger
	}

	return ssdb.NewSession(addr, config), nil
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value stored at key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		item, err := session.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !item.Found {
			return fmt.Errorf("%s: not found", args[0])
		}

		_, err = os.Stdout.Write(append(item.Value, '\n'))
		return err
	},
}

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a value at key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		return session.Set(cmd.Context(), args[0], []byte(args[1]))
	},
}

var delCmd = &cobra.Command{
	Use:   "del <key>",
	Short: "Delete the value stored at key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		return session.Delete(cmd.Context(), args[0])
	},
}

var incrCmd = &cobra.Command{
	Use:   "incr <key> [delta]",
	Short: "Add delta (default 1) to the counter at key and print it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta := int64(1)
		if len(args) == 2 {
			var err error
			delta, err = strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[1], err)
			}
		}

		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		value, err := session.Incr(cmd.Context(), args[0], delta)
		if err != nil {
			return err
		}

		fmt.Println(value)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print server statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		info, err := session.Info(cmd.Context())
		if err != nil {
			return err
		}

		names := make([]string, 0, len(info))
		for name := range info {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("%-24s %s\n", name, info[name])
		}
		return nil
	},
}
