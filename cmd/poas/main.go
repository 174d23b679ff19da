// Command poas prints the break-even and target ROAS figures for a store's
// unit economics, optionally with the break-even curve and model advice.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"poasmaster/pkg/config"
	"poasmaster/pkg/core/advisory"
	"poasmaster/pkg/core/agent"
	"poasmaster/pkg/core/calc"
	"poasmaster/pkg/core/prompt"
	"poasmaster/pkg/core/settings"
	"poasmaster/pkg/core/utils"
	"poasmaster/pkg/logging"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

type options struct {
	form         calc.FormInputs
	inputFile    string
	currency     string
	lang         string
	save         bool
	advice       bool
	format       string
	provider     string
	curve        bool
	asJSON       bool
	settingsPath string
	modelsPath   string
	resources    string
}

// fileInputs is the shape of an -input file.
type fileInputs struct {
	calc.CostInputs
	Currency settings.CurrencyCode `json:"currency"`
	Language settings.LanguageCode `json:"language"`
}

type report struct {
	Inputs   calc.CostInputs           `json:"inputs"`
	Result   *calc.ProfitabilityResult `json:"result"`
	Curve    *calc.BreakEvenCurve      `json:"curve,omitempty"`
	Advice   *advisory.Advice          `json:"advice,omitempty"`
	Settings settings.Settings         `json:"settings"`
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "poas: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts options
	fs := flag.NewFlagSet("poas", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.form.COGS, "cogs", "", "product cost per order (COGS)")
	fs.StringVar(&opts.form.OpEx, "opex", "", "operating expenses per order")
	fs.StringVar(&opts.form.ConversionRate, "conversion", "", "conversion rate in percent")
	fs.StringVar(&opts.form.AvgOrderValue, "aov", "", "average order value")
	fs.StringVar(&opts.form.OrdersPerDay, "orders", "", "orders per day")
	fs.StringVar(&opts.form.TargetProfitPercent, "target", calc.DefaultTargetProfitPercent, "target net profit in percent of AOV")
	fs.StringVar(&opts.inputFile, "input", "", "read inputs from a JSON/Hjson file instead of flags")
	fs.StringVar(&opts.currency, "currency", "", "currency code (EUR, USD, GBP, MXN, CLP)")
	fs.StringVar(&opts.lang, "lang", "", "language code (es, en, fr, de, pt)")
	fs.BoolVar(&opts.save, "save", false, "remember -currency and -lang for later runs")
	fs.BoolVar(&opts.advice, "advice", false, "ask the advisory model for a strategy")
	fs.StringVar(&opts.format, "format", "markdown", "advice format: markdown or structured")
	fs.StringVar(&opts.provider, "provider", "", "override the active LLM provider")
	fs.BoolVar(&opts.curve, "curve", false, "print the break-even curve")
	fs.BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")
	fs.StringVar(&opts.settingsPath, "settings", cfg.SettingsPath, "settings file")
	fs.StringVar(&opts.modelsPath, "models", cfg.ModelsConfig, "models config file")
	fs.StringVar(&opts.resources, "resources", cfg.ResourcesDir, "prompt resources directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, "text", stderr)

	store := settings.NewFileStore(opts.settingsPath)
	prefs, err := store.Load()
	if err != nil {
		logger.WithError(err).Warn("settings file unreadable, using defaults")
	}

	in, fromFile, err := readInputs(opts, prefs.Language)
	if err != nil {
		return err
	}
	if fromFile.Currency != "" {
		prefs.Currency = fromFile.Currency
	}
	if fromFile.Language != "" {
		prefs.Language = fromFile.Language
	}
	if opts.currency != "" {
		prefs.Currency = settings.CurrencyCode(strings.ToUpper(opts.currency))
	}
	if opts.lang != "" {
		prefs.Language = settings.LanguageCode(strings.ToLower(opts.lang))
	}
	if err := prefs.Validate(); err != nil {
		return err
	}
	if opts.save {
		if err := store.Save(prefs); err != nil {
			return err
		}
	}

	res, err := calc.Compute(in)
	if errors.Is(err, calc.ErrInvalidInput) {
		return fmt.Errorf("%s (%w)", settings.InvalidAOVMessage(prefs.Language), err)
	}
	if err != nil {
		return err
	}

	out := report{Inputs: in, Result: res, Settings: prefs}
	if opts.curve && res.IsViable {
		out.Curve = calc.Sample(in, res)
	}

	if opts.advice && res.IsViable {
		advice, err := requestAdvice(ctx, opts, in, res, prefs, logger, stderr)
		if err != nil {
			return err
		}
		out.Advice = advice
	}

	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printReport(stdout, out, opts.advice)
	return nil
}

func readInputs(opts options, lang settings.LanguageCode) (calc.CostInputs, fileInputs, error) {
	var fi fileInputs
	if opts.inputFile != "" {
		data, err := os.ReadFile(opts.inputFile)
		if err != nil {
			return calc.CostInputs{}, fi, fmt.Errorf("read input file: %w", err)
		}
		if err := utils.ParseHJSONToStruct(data, &fi); err != nil {
			return calc.CostInputs{}, fi, fmt.Errorf("parse input file: %w", err)
		}
		return fi.CostInputs, fi, nil
	}

	in, err := calc.ParseForm(opts.form)
	if err != nil {
		return calc.CostInputs{}, fi, fmt.Errorf("%s (%w)", settings.InvalidFieldMessage(lang), err)
	}
	return in, fi, nil
}

func requestAdvice(ctx context.Context, opts options, in calc.CostInputs, res *calc.ProfitabilityResult, prefs settings.Settings, logger logrus.FieldLogger, stderr io.Writer) (*advisory.Advice, error) {
	agentCfg, err := agent.LoadConfig(opts.modelsPath)
	if err != nil {
		return nil, err
	}
	mgr := agent.NewManager(agentCfg, logger)
	if opts.provider != "" {
		if err := mgr.SetGlobalProvider(opts.provider); err != nil {
			return nil, err
		}
	}

	var prompts advisory.PromptSource
	reg := prompt.NewRegistry()
	if err := reg.LoadDirectory(opts.resources); err == nil {
		prompts = reg
	}

	var advisor advisory.Advisor
	switch opts.format {
	case "structured":
		advisor = advisory.NewStructuredAdvisor(mgr, prompts, logger)
	case "markdown":
		advisor = advisory.NewLLMAdvisor(mgr, prompts, logger)
	default:
		return nil, fmt.Errorf("unknown advice format %q", opts.format)
	}

	snap := advisory.Snapshot{
		Inputs:         in,
		Result:         res,
		CurrencySymbol: prefs.CurrencyInfo().Symbol,
		Language:       prefs.Language,
	}

	var text string
	err = withSpinner(stderr, spinnerText(prefs.Language), func() error {
		var err error
		text, err = advisor.Advise(ctx, snap)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s (%w)", advisory.ConnectionErrorMessage(prefs.Language), err)
	}

	parsed, err := advisory.ParseAdvice(text)
	if err != nil {
		return advisory.ParseAdvice(advisory.UnavailableMessage(prefs.Language))
	}
	return parsed, nil
}

func spinnerText(lang settings.LanguageCode) string {
	if lang == settings.Spanish {
		return "Analizando tu estrategia..."
	}
	return "Analysing your strategy..."
}

// withSpinner animates an indeterminate bar on w while fn runs.
func withSpinner(w io.Writer, description string, fn func() error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()
	close(done)
	wg.Wait()
	_ = bar.Finish()
	return err
}
