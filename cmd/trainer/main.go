// trainer trains a pair of Q-learning agents by self-play, optionally saves the training history
// (parquet) and its plot (HTML), and evaluates the trained agents against baseline players.
//
// Training parameters can be given with --config (e.g. "episodes=200000,lr=0.2,credit=own") and/or
// with a dotenv file given by --env (e.g. a line with "EPISODES=200000"). The --config values take
// precedence.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/dropfour/internal/history"
	"github.com/janpfeifer/dropfour/internal/parameters"
	"github.com/janpfeifer/dropfour/internal/profilers"
	"github.com/janpfeifer/dropfour/internal/trainer"
	"github.com/janpfeifer/dropfour/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"time"
)

var (
	_ = fmt.Printf

	flagConfig = flag.String("config", "", "Training parameters, a comma-separated list of key=value pairs: "+
		"episodes, seed, first (X or O), credit (winner or own), log_every, lr, gamma, epsilon, epsilon_decay, "+
		"epsilon_min and max_entries.")
	flagEnv          = flag.String("env", "", "Optional dotenv file with training parameters (same keys as --config, case insensitive).")
	flagHistory      = flag.String("history", "", "If set, saves the training history in this parquet file.")
	flagHistoryEvery = flag.Int("history_every", 100, "Record one every these many episodes in the history.")
	flagPlot         = flag.String("plot", "", "If set, saves an HTML plot of the training history to this file.")
	flagColor        = flag.Bool("color", true, "Use colors in the reports.")

	globalCtx = context.Background()
	au        aurora.Aurora
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	au = aurora.NewAurora(*flagColor)

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 5*time.Second)
	defer cancel()

	// Profilers: HTTP profiler server and CPU profile.
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	config := must.M1(loadConfig())
	tr := must.M1(trainer.New(config))
	recorder := history.NewRecorder(*flagHistoryEvery)
	summary, interrupted := train(tr, recorder)
	printSummary(summary, interrupted)

	if *flagHistory != "" {
		must.M(history.WriteParquet(*flagHistory, recorder.Records))
		fmt.Printf("Training history (%d records, run %s) saved to %s\n", len(recorder.Records), recorder.RunID, au.Cyan(*flagHistory))
	}
	if *flagPlot != "" {
		title := fmt.Sprintf("Training %s", recorder.RunID)
		must.M(history.WritePlotFile(*flagPlot, recorder.Records, title))
		fmt.Printf("Training plot saved to %s\n", au.Cyan(*flagPlot))
	}
	if !interrupted {
		must.M(evaluate(globalCtx, tr))
	}
}

// loadConfig merges the parameters from --env and --config and converts them to a trainer.Config.
func loadConfig() (trainer.Config, error) {
	params := make(parameters.Params)
	if *flagEnv != "" {
		envParams, err := parameters.FromEnvFile(*flagEnv)
		if err != nil {
			return trainer.Config{}, err
		}
		params = parameters.Merge(params, envParams)
	}
	params = parameters.Merge(params, parameters.NewFromConfigString(*flagConfig))
	klog.V(1).Infof("Training parameters: %s", params)
	config, err := trainer.ConfigFromParams(trainer.DefaultConfig(), params)
	if err != nil {
		return config, err
	}
	if err = parameters.CheckAllConsumed(params); err != nil {
		return config, errors.WithMessage(err, "invalid training parameters")
	}
	return config, nil
}

// train runs the training with a spinning status line. It returns whether training was interrupted.
func train(tr *trainer.Trainer, recorder *history.Recorder) (summary trainer.Summary, interrupted bool) {
	config := tr.Config()
	fmt.Printf("Training %d episodes (seed=%d, first=%s, credit=%s)\n",
		config.Episodes, config.Seed, config.FirstMover, config.OpponentCredit)
	s := spinning.New(globalCtx)
	summary, err := tr.Run(globalCtx, func(result trainer.EpisodeResult) {
		recorder.Add(result)
		if result.Episode%100 == 0 {
			s.SetStatus("episode %d/%d: exploration rate %.3f, states (%d, %d)",
				result.Episode, config.Episodes, result.ExplorationRates[0],
				result.TableSizes[0], result.TableSizes[1])
		}
	})
	s.Done()
	fmt.Println()
	if err != nil {
		if globalCtx.Err() == nil {
			klog.Exitf("Training failed: %+v", err)
		}
		klog.Warningf("%v", err)
		return summary, true
	}
	return summary, false
}

func printSummary(summary trainer.Summary, interrupted bool) {
	status := au.Green("Training finished")
	if interrupted {
		status = au.Red("Training interrupted")
	}
	fmt.Printf("%s in %s:\n", au.Bold(status), summary.Elapsed.Round(time.Millisecond))
	fmt.Printf("  Episodes:          %d\n", summary.Episodes)
	fmt.Printf("  Wins X / O / draw: %s / %s / %s\n",
		au.Red(summary.Wins[0]), au.Yellow(summary.Wins[1]), au.Magenta(summary.Draws))
	fmt.Printf("  Exploration rates: %.4f / %.4f\n", summary.ExplorationRates[0], summary.ExplorationRates[1])
	fmt.Printf("  States learned:    %d / %d\n", summary.TableSizes[0], summary.TableSizes[1])
}
