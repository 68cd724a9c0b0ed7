package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-e string   classifier inference endpoint URL
//	-k string   classifier API token
//	-t int      classifier request timeout, seconds
//	-x          strict date handling on read paths
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-n string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-r int      report URL validity, minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-e", "-k", "-t", "-x", "-u", "-p", "-b", "-g", "-n", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.ClassifierEndpoint, "e", config.ClassifierEndpoint, "classifier endpoint URL")
	fs.StringVar(&config.ClassifierToken, "k", config.ClassifierToken, "classifier API token")

	classifierTimeout := fs.Int("t", int(config.ClassifierTimeout.Seconds()), "classifier timeout (in seconds)")

	fs.BoolVar(&config.StrictDates, "x", config.StrictDates, "strict date handling on read paths")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "n", config.S3BaseEndpoint, "S3 base endpoint")

	reportURLTTL := fs.Int("r", int(config.ReportURLTTL.Minutes()), "report URL validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ClassifierTimeout = time.Duration(*classifierTimeout) * time.Second
	config.ReportURLTTL = time.Duration(*reportURLTTL) * time.Minute
}
