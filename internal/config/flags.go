package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/cargobot/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-t string   bot token
//	-d string   database DSN
//	-driver     database driver (sqlite|postgres)
//	-r string   redis URL for sessions
//	-a string   HTTP ops address (metrics, health)
//	-g string   gRPC health address
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first so -c and -env (handled by
// earlier layers) do not reach this flag set.
func parseFlags(config *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-t", "-d", "-driver", "-r", "-a", "-g", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.BotToken, "t", config.BotToken, "bot token")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DBDriver, "driver", config.DBDriver, "database driver: sqlite or postgres")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL for session storage")
	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address for metrics and health endpoints")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address for the gRPC health service")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(filtered)
}
