package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/AlexAkulov/reportfox"
	"github.com/AlexAkulov/reportfox/config"
	"github.com/AlexAkulov/reportfox/history"
	"github.com/AlexAkulov/reportfox/metrics"
	"github.com/AlexAkulov/reportfox/parser"
	"github.com/AlexAkulov/reportfox/render"
	"github.com/AlexAkulov/reportfox/repoinfo"
	"github.com/AlexAkulov/reportfox/risk"
	"github.com/AlexAkulov/reportfox/router"
	"github.com/AlexAkulov/reportfox/vault"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

var (
	version         = "unknown"
	configFlag      = flag.String("config", "config.yml", "config file location")
	reportFlag      = flag.String("report", "-", "scan report file, '-' for stdin")
	clamavFlag      = flag.String("clamav-report", "", "clamscan log file")
	variantFlag     = flag.String("variant", "sast", "comment variant: sast, container or overview")
	runIDFlag       = flag.String("run-id", "", "CI run identifier for deep links")
	ownerFlag       = flag.String("owner", "", "repository owner, inferred from git when empty")
	repoFlag        = flag.String("repo", "", "repository name, inferred from git when empty")
	outputFlag      = flag.String("output", "-", "write rendered markdown to file, '-' for stdout")
	postFlag        = flag.Bool("post", false, "deliver the comment through configured senders")
	printConfigFlag = flag.Bool("default-config", false, "Print default config to stdout and exit")
	versionFlag     = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *printConfigFlag {
		config.PrintDefaultConfig()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Println(version)
		os.Exit(0)
	}

	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open config %s: %v\n", *configFlag, err)
		os.Exit(1)
	}

	logger := createLogger(conf.Logging)

	variant, err := render.ParseVariant(*variantFlag)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("bad variant")
		os.Exit(1)
	}

	rawReport, err := readInput(*reportFlag)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("can't read report")
		os.Exit(1)
	}

	if conf.Vault.Enable {
		if err := injectSecrets(conf); err != nil {
			logger.Error().Str("service", "vault").Str("error", err.Error()).Msg("fail")
			os.Exit(1)
		}
		logger.Debug().Str("service", "vault").Msg("secrets injected")
	}

	runContext := resolveContext(conf, logger)

	metricsRepo := metrics.StartMetricsRepo(conf.Metrics, logger)
	reportsParsed := metricsRepo.CreateCounter("reports.parsed")
	findingsFound := metricsRepo.CreateCounter("findings.found")
	commentsSent := metricsRepo.CreateCounter("comments.sent")

	report := parser.ParseReport(rawReport)
	reportsParsed.Add(1)
	findingsFound.Add(float64(report.Aggregate.Total()))
	if !report.ParseOK {
		logger.Warn().Msg("no recognized scan table, reporting missing data")
	}

	var malware *reportfox.MalwareSummary
	if *clamavFlag != "" {
		clamLog, err := readInput(*clamavFlag)
		if err != nil {
			logger.Error().Str("error", err.Error()).Msg("can't read clamav report")
			os.Exit(1)
		}
		summary := parser.ParseClamAV(clamLog)
		malware = &summary
	}

	level := risk.Classify(report.Aggregate.Critical, report.Aggregate.High)
	actionItems := risk.ActionItems(report.Aggregate.Critical, report.Aggregate.High, report.Aggregate.Medium)
	trend := loadTrend(conf, variant, runContext, report, logger)

	renderer, err := render.New(variant, runContext, conf.Common.MaxCommentSize)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("can't build renderer")
		os.Exit(1)
	}
	comment, err := renderer.Render(report, level, actionItems, malware, trend)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("can't render comment")
		os.Exit(1)
	}
	logger.Info().
		Str("variant", comment.Variant).
		Str("risk", comment.RiskName).
		Int("findings", report.Aggregate.Total()).
		Msg("comment rendered")

	if err := writeOutput(*outputFlag, comment.Markdown); err != nil {
		logger.Error().Str("error", err.Error()).Msg("can't write output")
		os.Exit(1)
	}

	if *postFlag {
		commentChannel := make(chan *reportfox.Comment)
		commentRouter := &router.CommentRouter{
			CommentChannel: commentChannel,
			Config:         conf,
			Context:        runContext,
			Log:            logger,
		}
		if err := commentRouter.Start(); err != nil {
			logger.Error().Str("service", "comment router").Str("error", err.Error()).Msg("fail")
			os.Exit(1)
		}
		logger.Debug().Str("service", "comment router").Msg("started")
		commentChannel <- &comment
		commentsSent.Add(1)
		if err := commentRouter.Stop(); err != nil {
			logger.Error().Str("error", err.Error()).Str("service", "comment router").Msg("can't stop")
		}
		logger.Debug().Str("service", "comment router").Msg("stopped")
	}

	if err := metricsRepo.Stop(); err != nil {
		logger.Error().Str("error", err.Error()).Str("service", "metrics repository").Msg("can't stop")
	}
}

func resolveContext(conf *config.Config, logger zerolog.Logger) reportfox.RunContext {
	runContext := reportfox.RunContext{
		RunID: *runIDFlag,
		Owner: *ownerFlag,
		Repo:  *repoFlag,
	}
	if runContext.Owner == "" {
		runContext.Owner = conf.GitHub.Owner
	}
	if runContext.Repo == "" {
		runContext.Repo = conf.GitHub.Repo
	}
	if runContext.Owner == "" || runContext.Repo == "" {
		owner, repo, err := repoinfo.Resolve(".")
		if err != nil {
			logger.Warn().Str("error", err.Error()).Msg("can't infer repo from git, deep links will be incomplete")
			return runContext
		}
		if runContext.Owner == "" {
			runContext.Owner = owner
		}
		if runContext.Repo == "" {
			runContext.Repo = repo
		}
	}
	return runContext
}

func injectSecrets(conf *config.Config) error {
	v := &vault.Vault{Config: conf.Vault}
	if err := v.Start(); err != nil {
		return err
	}
	secrets, err := v.ReadAll()
	if err != nil {
		return err
	}
	if conf.GitHub.Token == "" {
		conf.GitHub.Token = vault.Lookup(secrets, "github_token")
	}
	if conf.SMTP.Password == "" {
		conf.SMTP.Password = vault.Lookup(secrets, "smtp_password")
	}
	if auth := vault.Lookup(secrets, "webhook_auth"); auth != "" {
		if conf.Webhook.Headers == nil {
			conf.Webhook.Headers = map[string]string{}
		}
		if _, ok := conf.Webhook.Headers["Authorization"]; !ok {
			conf.Webhook.Headers["Authorization"] = auth
		}
	}
	return nil
}

func loadTrend(conf *config.Config, variant render.Variant, runContext reportfox.RunContext, report reportfox.ScanReport, logger zerolog.Logger) *reportfox.Trend {
	if conf.Common.HistoryFile == "" {
		return nil
	}
	store := &history.Store{Location: conf.Common.HistoryFile}
	if err := store.Start(); err != nil {
		logger.Warn().Str("service", "history").Str("error", err.Error()).Msg("trend disabled")
		return nil
	}
	defer store.Stop()
	trend, err := store.TrendFor(variant.String(), report.Aggregate)
	if err != nil {
		logger.Warn().Str("service", "history").Str("error", err.Error()).Msg("trend disabled")
		trend = nil
	}
	if err := store.SaveRun(variant.String(), runContext, report.Aggregate); err != nil {
		logger.Warn().Str("service", "history").Str("error", err.Error()).Msg("can't save run")
	}
	return trend
}

func readInput(location string) (string, error) {
	if location == "-" {
		data, err := ioutil.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := ioutil.ReadFile(location)
	return string(data), err
}

func writeOutput(location, markdown string) error {
	if location == "" {
		return nil
	}
	if location == "-" {
		_, err := fmt.Print(markdown)
		return err
	}
	return ioutil.WriteFile(location, []byte(markdown), 0644)
}

func createLogger(conf *config.Logging) zerolog.Logger {
	var lvl zerolog.Level
	switch conf.Level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		fmt.Fprintf(os.Stderr, "Unknown logging level '%s'", conf.Level)
		os.Exit(1)
	}
	if conf.File != "" {
		writer := &lumberjack.Logger{
			Filename: conf.File,
			MaxSize:  100, //MB
			MaxAge:   1,   //d
			Compress: true,
		}
		return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
