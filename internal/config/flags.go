package config

import (
	"flag"
	"os"

	"github.com/Efrem-Yohanis/playwright-playground/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   backend: memory|file|sqlite|postgres|redis|s3
//	-k string   key prefix (storage namespace)
//	-f string   data directory (file backend)
//	-q string   sqlite database path
//	-d string   PostgreSQL DSN
//	-r string   redis address (host:port)
//	-t string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-u string   S3 access key
//	-p string   S3 secret key
//
// os.Args is first filtered to the recognized flags via flagx.FilterArgs so
// the -c/-config flags owned by the JSON loader do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-k", "-f", "-q", "-d", "-r", "-t", "-g", "-e", "-u", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	backend := fs.String("b", string(config.Backend), "storage backend")
	fs.StringVar(&config.KeyPrefix, "k", config.KeyPrefix, "storage key prefix")
	fs.StringVar(&config.DataDir, "f", config.DataDir, "data directory (file backend)")
	fs.StringVar(&config.SQLitePath, "q", config.SQLitePath, "sqlite database path")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.S3Bucket, "t", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.Backend = Backend(*backend)
}
