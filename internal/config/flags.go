package config

import (
	"flag"
	"io"
)

// flagValues records what was given on the command line. Only flags that
// were actually set override earlier sources.
type flagValues struct {
	configFile string
	set        map[string]bool

	addr     string
	dbPath   string
	hasher   string
	logLevel string
}

// parseFlags understands:
//
//	-c, -config string   JSON config file
//	-a string            listen address, e.g. ":5000"
//	-d string            SQLite file path
//	-hasher string       password hasher: bcrypt or sha256
//	-log-level string    debug, info, warn or error
func parseFlags(args []string) (*flagValues, error) {
	fv := &flagValues{set: map[string]bool{}}

	fs := flag.NewFlagSet("jobboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&fv.configFile, "config", "", "path to JSON config file")
	fs.StringVar(&fv.configFile, "c", "", "path to JSON config file (short)")
	fs.StringVar(&fv.addr, "a", "", "address and port to listen on")
	fs.StringVar(&fv.dbPath, "d", "", "SQLite database file")
	fs.StringVar(&fv.hasher, "hasher", "", "password hasher (bcrypt, sha256)")
	fs.StringVar(&fv.logLevel, "log-level", "", "log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { fv.set[f.Name] = true })
	return fv, nil
}

func (fv *flagValues) apply(cfg *Config) {
	if fv.set["a"] {
		cfg.Addr = fv.addr
	}
	if fv.set["d"] {
		cfg.DatabasePath = fv.dbPath
	}
	if fv.set["hasher"] {
		cfg.PasswordHasher = fv.hasher
	}
	if fv.set["log-level"] {
		cfg.LogLevel = fv.logLevel
	}
}
