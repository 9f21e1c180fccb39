package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"listingsetl/internal/config"
	"listingsetl/internal/etl"

	// register all backends with the storage factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "listingsetl/internal/storage/all"
)

// main reads the listings export, writes the clean and rejected rows, and
// optionally loads the clean rows into the relational schema.
func main() {
	var (
		cfgPath           string
		envFile           string
		inputFlg          string
		metricsBackendFlg string
		pushGatewayURLFlg string
		datadogAddrFlg    string
		load              bool
		validate          bool
		logReport         bool
	)

	flag.StringVar(&cfgPath, "config", "", "pipeline config path (.json, .yaml, .toml); built-in defaults when empty")
	flag.StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment is applied")
	flag.StringVar(&inputFlg, "input", "", "input CSV path or http(s) URL (overrides config and env LISTINGS_INPUT)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, datadog, none); env METRICS_BACKEND")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&datadogAddrFlg, "datadog-addr", "", "DogStatsD address (overrides env DD_AGENT_ADDR)")
	flag.BoolVar(&load, "load", true, "load the clean rows when storage is configured")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.BoolVar(&logReport, "log-report", false, "write the run report through the logger (stderr) instead of stdout")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fatalf("load %s: %v", envFile, err)
	}

	p := config.Default()
	if cfgPath != "" {
		var err error
		if p, err = config.Load(cfgPath); err != nil {
			fatalf("%v", err)
		}
	}
	if err := config.ApplyEnv(&p, os.Getenv); err != nil {
		fatalf("env: %v", err)
	}
	if inputFlg != "" {
		config.SetInput(&p.Source, inputFlg)
	}
	if !load {
		p.Storage.Kind = ""
	}

	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid: %v", describe(cfgPath))
		os.Exit(1)
	}
	if validate {
		log.Printf("Configuration is valid: %v", describe(cfgPath))
		os.Exit(0)
	}

	flush := setupMetrics(metricsSettings{
		Backend:        firstNonEmpty(metricsBackendFlg, os.Getenv(config.EnvMetricsBackend)),
		PushgatewayURL: firstNonEmpty(pushGatewayURLFlg, os.Getenv(config.EnvPushgatewayURL), "http://localhost:9091"),
		DatadogAddr:    firstNonEmpty(datadogAddrFlg, os.Getenv(config.EnvDatadogAddr)),
		Job:            p.Job,
		Verbose:        *verbose,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *verbose {
		log.Printf("pipeline: input=%s clean=%s rejects=%s storage=%q workers=%d",
			p.Source.Location(), p.Output.Clean, p.Output.Rejects, p.Storage.Kind, p.Runtime.TransformWorkers)
	}

	r := etl.NewRunner(p)
	r.Pipeline.OnReject = etl.LogRejected(20)
	rep, err := r.Run(ctx)
	flush()
	if err != nil {
		fatalf("%v", err)
	}
	if logReport {
		rep.Log()
		return
	}
	fmt.Print(rep.String())
}

func describe(cfgPath string) string {
	if cfgPath == "" {
		return "(defaults)"
	}
	return cfgPath
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
