package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-equity/internal/config"
	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/equity"
)

type CLI struct {
	Hero       string        `arg:"" help:"Hero hole cards (e.g., 'AsKd')" required:""`
	Board      string        `short:"b" help:"Known community cards (e.g., '5c3c3s')"`
	Opponents  int           `short:"o" help:"Number of active opponents" default:"0"`
	Iterations int           `short:"i" help:"Number of Monte Carlo iterations" default:"0"`
	Seed       *int64        `help:"Random seed for reproducible results"`
	TimeBudget time.Duration `help:"Wall-clock budget; expiry degrades precision instead of failing"`
	Workers    int           `help:"Worker count (default: all CPUs)" default:"0"`
	Config     string        `short:"c" help:"HCL config file" default:"holdem-equity.hcl"`
	Verbose    bool          `short:"v" help:"Verbose logging"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	degradedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Italic(true)
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	level := log.WarnLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		ctx.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid config", "error", err)
		ctx.Exit(1)
	}

	hero, err := deck.ParseCards(cli.Hero)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hero cards: %v\n", err)
		ctx.Exit(1)
	}

	var board []deck.Card
	if cli.Board != "" {
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing board: %v\n", err)
			ctx.Exit(1)
		}
	}

	simCfg := equity.Config{
		Opponents:  cli.Opponents,
		Iterations: cli.Iterations,
		Seed:       cli.Seed,
		TimeBudget: cli.TimeBudget,
		Workers:    cli.Workers,
		Confidence: cfg.Simulation.Confidence,
		Logger:     logger,
	}
	if simCfg.Opponents == 0 {
		simCfg.Opponents = cfg.Simulation.Opponents
	}
	if simCfg.Iterations == 0 {
		simCfg.Iterations = cfg.Simulation.Iterations
	}
	if simCfg.Workers == 0 {
		simCfg.Workers = cfg.Simulation.Workers
	}
	if simCfg.TimeBudget == 0 {
		budget, err := cfg.Simulation.ParseTimeBudget()
		if err != nil {
			logger.Error("Invalid config", "error", err)
			ctx.Exit(1)
		}
		simCfg.TimeBudget = budget
	}

	startTime := time.Now()
	result, err := equity.Simulate(hero, board, simCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}
	duration := time.Since(startTime)

	displayResult(hero, board, simCfg, result, duration)
}

func displayResult(hero, board []deck.Card, cfg equity.Config, result equity.Result, duration time.Duration) {
	fmt.Printf("%s  %s", headerStyle.Render("hero"), handStyle.Render(formatCards(hero)))
	if len(board) > 0 {
		fmt.Printf("   %s  %s", headerStyle.Render("board"), handStyle.Render(formatCards(board)))
	}
	fmt.Printf("   %s  %d\n\n", headerStyle.Render("opponents"), cfg.Opponents)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("loss"),
		headerStyle.Render("equity"))

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		winStyle.Render(fmt.Sprintf("%.2f%%", result.WinPct)),
		tieStyle.Render(fmt.Sprintf("%.2f%%", result.TiePct)),
		lossStyle.Render(fmt.Sprintf("%.2f%%", result.LossPct)),
		winStyle.Render(fmt.Sprintf("%.2f%% ±%.2f", result.EquityPct, result.MarginOfError)))

	w.Flush()

	rate := float64(result.Iterations) / duration.Seconds()
	fmt.Printf("\n%d iterations in %v (%.0f/sec)\n",
		result.Iterations, duration.Truncate(time.Millisecond), rate)
	if result.Degraded {
		fmt.Println(degradedStyle.Render(
			fmt.Sprintf("time budget expired: reduced precision (%d iterations run)", result.Iterations)))
	}
}

func formatCards(cards []deck.Card) string {
	out := ""
	for i, card := range cards {
		if i > 0 {
			out += " "
		}
		out += card.String()
	}
	return out
}
