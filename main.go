package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"mcts/communication/server"
	"mcts/experiments"
	"mcts/game"
	"mcts/meta"
	"mcts/report"
	"mcts/searcher"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	game        string
	duration    time.Duration
	iterations  int
	seed        uint64
	exploration float64
	serve       string
	report      string
	experiment  string
	games       int
	trace       bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.game, "game", "tictactoe", "game to search: "+strings.Join(game.Names, ", "))
	flag.DurationVar(&cfg.duration, "duration", meta.SEARCH_DURATION, "search time, 0 to rely on -iterations")
	flag.IntVar(&cfg.iterations, "iterations", 0, "stop after this many iterations, 0 for no limit")
	flag.Uint64Var(&cfg.seed, "seed", 0, "rollout seed, 0 seeds from the clock")
	flag.Float64Var(&cfg.exploration, "exploration", 0, "UCT exploration constant C, 0 for sqrt(2)")
	flag.StringVar(&cfg.serve, "serve", "", "serve the inspector on this address, e.g. "+meta.INSPECTOR_ADDR)
	flag.StringVar(&cfg.report, "report", "", "write an HTML chart page to this path")
	flag.StringVar(&cfg.experiment, "experiment", "", "run a self-play experiment: "+strings.Join(experiments.PresetNames(), ", "))
	flag.IntVar(&cfg.games, "games", 10, "games per match up in -experiment mode")
	flag.BoolVar(&cfg.trace, "trace", false, "print every new node, needs -iterations")
	logLevel := flag.String("log-level", "info", "zerolog level")
	color := flag.Bool("color", true, "colour the board output")
	flag.Parse()

	setupLogging(*logLevel)
	au := aurora.NewAurora(*color)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.experiment != "" {
		if err := runExperiment(ctx, au, cfg); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		return
	}

	board, err := game.New(cfg.game)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot start search")
	}
	if err := runSearch(ctx, au, board, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("search failed")
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Msgf("unknown log level %q, using info", level)
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func newSearch(board game.Board, cfg config) *searcher.Search {
	options := []searcher.Option{
		searcher.WithExploration(cfg.exploration),
		searcher.WithProgress(meta.PROGRESS_INTERVAL, func(sample searcher.Sample) {
			log.Info().Msgf("running search: %d nodes, %d iterations, %.1fs", sample.Nodes, sample.Iterations, sample.Elapsed.Seconds())
		}),
	}
	if cfg.iterations > 0 {
		options = append(options, searcher.WithIterations(cfg.iterations))
	}
	if cfg.seed != 0 {
		options = append(options, searcher.WithSeed(cfg.seed))
	}
	return searcher.New(board, options...)
}

func runSearch(ctx context.Context, au aurora.Aurora, board game.Board, cfg config) error {
	if cfg.duration <= 0 && cfg.iterations <= 0 {
		log.Warn().Msg("no -duration or -iterations set, searching until interrupted")
	}
	s := newSearch(board, cfg)

	serveCtx, stopServing := context.WithCancel(ctx)
	defer stopServing()
	served := make(chan error, 1)
	if cfg.serve != "" {
		inspector := server.New(s, meta.PROGRESS_INTERVAL)
		go func() {
			served <- inspector.ListenAndServe(serveCtx, cfg.serve)
		}()
	}

	fmt.Printf("Searching %s from:\n%s\n", cfg.game, renderBoard(au, board))
	var err error
	if cfg.trace {
		err = trace(au, s, cfg.iterations)
	} else {
		err = s.RunFor(ctx, cfg.duration)
		if errors.Is(err, context.Canceled) {
			// Ctrl-C is how an unbounded search is stopped
			log.Info().Msgf("search interrupted after %d iterations", s.Iterations())
			err = nil
		}
	}
	if err != nil {
		return err
	}

	printSummary(os.Stdout, au, s)

	if cfg.report != "" {
		title := fmt.Sprintf("%s search", cfg.game)
		if err := report.WriteFile(cfg.report, func(w io.Writer) error {
			return report.WriteSearch(w, s, title)
		}); err != nil {
			return err
		}
		log.Info().Msgf("wrote report to %s", cfg.report)
	}

	if cfg.serve != "" {
		log.Info().Msgf("search finished, inspector still serving on %s (Ctrl-C to stop)", cfg.serve)
		<-ctx.Done()
		stopServing()
		return <-served
	}
	return nil
}

// trace steps the search by hand and prints each node as it is created.
func trace(au aurora.Aurora, s *searcher.Search, iterations int) error {
	if iterations <= 0 {
		return errors.New("-trace needs -iterations")
	}
	for !s.Finished() {
		before := s.UniqueNodes()
		if err := s.Step(); err != nil {
			return err
		}
		if s.UniqueNodes() == before {
			continue
		}
		node := s.Newest()
		fmt.Printf("node %d (depth %d, parent %d) %v by player %d\n%s\n",
			node.ID(), node.Depth(), node.Parent().ID(), node.Move(), node.Mover(), renderBoard(au, node.Board()))
	}
	return nil
}

func runExperiment(ctx context.Context, au aurora.Aurora, cfg config) error {
	preset, ok := experiments.Presets[cfg.experiment]
	if !ok {
		return fmt.Errorf("unknown experiment %q (choose one of %v)", cfg.experiment, experiments.PresetNames())
	}
	e := preset(cfg.game, cfg.games)

	result, err := experiments.Run(ctx, e)
	if err != nil {
		return err
	}

	fmt.Printf("%s on %s, results in %s\n", au.Bold(e.Name), cfg.game, result.Dir)
	for _, s := range result.Summaries {
		fmt.Printf("agent %d vs agent %d: %s / %s / %s draws (win rate %.2f)\n",
			s.Agent1, s.Agent2, au.Green(s.Agent1Wins), au.Red(s.Agent2Wins), au.Yellow(s.Draws), s.WinRate())
	}
	if e.Name == "throughput" {
		fmt.Printf("throughput: %.0f episodes/s\n", experiments.Throughput(result.Moves))
	}
	return nil
}
