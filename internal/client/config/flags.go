package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/clinicadmin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags listed in ConfigFlags are parsed (via flagx.FilterArgs);
// everything else on the command line belongs to the command tree.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-r", "-s", "-t", "-p", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "clinic API base URL")
	fs.StringVar(&cfg.RosaBaseURL, "r", cfg.RosaBaseURL, "rosa API base URL")
	fs.StringVar(&cfg.PayloadSecret, "s", cfg.PayloadSecret, "shared payload secret")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "default page size")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// -t only applies when given, so a sub-second JSON timeout survives
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
