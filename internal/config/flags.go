package config

import (
	"flag"
	"fmt"
	"time"
)

// ParseFlags parses configuration flags from args and returns the
// populated config together with the remaining positional arguments.
//
// Flags:
//
//	-a backend base URL (e.g. http://localhost:8000)
//	-request-timeout outbound request timeout (e.g. "15s")
//	-d credential database DSN (":memory:" for a non-persistent store)
//	-store-key secret used to seal stored credentials
//	-refresh-coalescing share one token refresh across concurrent calls
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var (
		address           string
		requestTimeout    time.Duration
		databaseDSN       string
		storeKey          string
		refreshCoalescing bool
		jsonConfigPath    string
	)

	fs := flag.NewFlagSet("sqledu", flag.ContinueOnError)
	fs.StringVar(&address, "a", "", "Backend base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	fs.StringVar(&databaseDSN, "d", "", "Credential database DSN")
	fs.StringVar(&storeKey, "store-key", "", "Credential sealing key")
	fs.BoolVar(&refreshCoalescing, "refresh-coalescing", false, "Share one token refresh across concurrent calls")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			StoreKey:          storeKey,
			RefreshCoalescing: refreshCoalescing,
		},
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}
