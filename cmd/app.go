// Package cmd implements the CLI application to compare market
// capitalizations across asset classes.
package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/etnz/capratio"
	"github.com/etnz/capratio/coingecko"
	"github.com/etnz/capratio/polygon"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&compareCmd{}, "comparisons")
	c.Register(&explainCmd{}, "comparisons")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&versionCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var polygonKey = flag.String("polygon-key", "", "Polygon.io API key (defaults to $POLYGON_KEY)")
var coingeckoKey = flag.String("coingecko-key", "", "CoinGecko API key (defaults to $COINGECKO_KEY)")
var configFile = flag.String("config", "", "Path to an optional YAML configuration file")
var verbose = flag.Bool("v", false, "Enable debug logging on stderr")

// newLogger returns the application logger, silent unless -v is set.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadKeys resolves the two provider API keys. Precedence is flag, then
// environment, then config file; a missing key stays empty so a provider
// that is never queried never needs credentials.
func loadKeys() (polygonK, coingeckoK string, err error) {
	cfg, err := loadConfig(*configFile)
	if err != nil {
		return "", "", err
	}

	pick := func(flagValue, envName, fileValue string) string {
		if flagValue != "" {
			return flagValue
		}
		if v := os.Getenv(envName); v != "" {
			return v
		}
		return fileValue
	}
	polygonK = pick(*polygonKey, "POLYGON_KEY", cfg.PolygonKey)
	coingeckoK = pick(*coingeckoKey, "COINGECKO_KEY", cfg.CoingeckoKey)
	return polygonK, coingeckoK, nil
}

// newGateway wires the provider clients into a gateway. Responses are cached
// on disk for the day so repeated invocations do not burn API quota.
func newGateway() (*capratio.Gateway, error) {
	polygonK, coingeckoK, err := loadKeys()
	if err != nil {
		return nil, err
	}

	logger := newLogger()
	httpClient := capratio.NewDailyCachingClient()

	stocks := polygon.New(polygonK,
		polygon.WithHTTPClient(httpClient),
		polygon.WithLogger(logger),
	)
	coins := coingecko.New(coingeckoK,
		coingecko.WithHTTPClient(httpClient),
		coingecko.WithLogger(logger),
	)
	// The gold price also comes from Polygon's forex aggregates.
	return capratio.NewGateway(stocks, coins, stocks, capratio.WithLogger(logger)), nil
}

// fail prints an error on stderr and returns the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
