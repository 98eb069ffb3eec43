package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/flagx"
)

var flagNames = []string{"-a", "-d", "-s", "-t", "-m", "-l", "-e"}

// FlagNames lists every command-line flag the config layer consumes,
// including -c/-config. All of them take a value.
func FlagNames() []string {
	return append([]string{"-c", "-config"}, flagNames...)
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   database DSN
//	-s string   session signing secret
//	-t int      session lifetime, minutes
//	-m int      admin user id
//	-l string   log level
//	-e string   application environment
//
// os.Args is filtered with flagx.FilterArgs first, so -c/-config and
// unknown flags are ignored here. SessionTTL is only replaced when -t is
// given, so sub-minute values from JSON or the environment survive.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], flagNames)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session lifetime (in minutes)")

	fs.Int64Var(&config.AdminUserID, "m", config.AdminUserID, "admin user id")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.AppEnv, "e", config.AppEnv, "application environment")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})
}
