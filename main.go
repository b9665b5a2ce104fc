package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"snake-agents/agent"
	"snake-agents/config"
	"snake-agents/game"
	"snake-agents/qlearning"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (embedded defaults when empty)")
	mode := flag.String("mode", "play", "run mode: play, train or eval")
	engineName := flag.String("engine", "", "decision engine override: reflex|goal|utility|model|policy")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *engineName != "" {
		cfg.Engine = *engineName
		if err := cfg.Validate(); err != nil {
			log.Error("invalid engine override", "error", err)
			os.Exit(1)
		}
	}

	switch *mode {
	case "train":
		err = train(cfg, log)
	case "play":
		err = play(cfg, log)
	case "eval":
		err = evaluate(cfg, log)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}

	if err != nil {
		log.Error("run failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
}

// train esegue il loop di training offline e salva policy, statistiche
// e telemetria in una directory dedicata alla sessione.
func train(cfg *config.Config, log *slog.Logger) error {
	runDir := filepath.Join(cfg.DataDir, "runs", uuid.NewString())
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("creating run directory: %w", err)
	}
	if err := cfg.WriteYAML(filepath.Join(runDir, "config.yaml")); err != nil {
		return err
	}

	ag := qlearning.NewAgent(cfg.Training.Seed)
	ag.LearningRate = cfg.Training.LearningRate
	ag.Discount = cfg.Training.Discount
	ag.Epsilon = cfg.Training.InitialEpsilon
	ag.InitialEpsilon = cfg.Training.InitialEpsilon
	ag.FinalEpsilon = cfg.Training.FinalEpsilon
	ag.DecayEpisodes = cfg.Training.DecayEpisodes

	trainer, err := qlearning.NewTrainer(ag, qlearning.TrainerConfig{
		Episodes:        cfg.Training.Episodes,
		MaxSteps:        cfg.Training.MaxSteps,
		CheckpointEvery: cfg.Training.CheckpointEvery,
		Width:           cfg.Board.Width,
		Height:          cfg.Board.Height,
		DataDir:         runDir,
	}, log)
	if err != nil {
		return err
	}

	log.Info("training started",
		"episodes", cfg.Training.Episodes,
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"dir", runDir,
	)

	if err := trainer.Run(); err != nil {
		return err
	}

	stats := trainer.Stats()
	log.Info("training completed",
		"best", stats.BestScore,
		"avg", stats.AverageScore,
		"states", stats.TotalStates,
	)
	return nil
}

// play esegue partite di inferenza con il motore configurato. Quando il
// motore segnala che non esiste un'azione sicura si passa alla mossa di
// emergenza; se nemmeno quella esiste il tick termina in collisione.
func play(cfg *config.Config, log *slog.Logger) error {
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	for i := 0; i < cfg.Play.Games; i++ {
		g := game.NewGame(cfg.Board.Width, cfg.Board.Height)
		if cfg.Apples.Randomized {
			g.RandomizeApples(cfg.Apples.Seed + uint64(i))
		}

		result := runGame(g, eng, cfg.Play.MaxSteps)

		log.Info("game over",
			"game", i+1,
			"score", g.Score(),
			"steps", g.Steps(),
			"cause", result.Cause.String(),
		)
	}

	return nil
}

// runGame gioca una singola partita fino a collisione o al tetto di
// passi.
func runGame(g *game.Game, eng agent.Engine, maxSteps int) game.StepResult {
	var result game.StepResult

	for g.Steps() < maxSteps {
		dir, err := eng.Decide(g)
		if err != nil {
			dir, err = agent.EmergencyMove(g)
		}
		if err == nil {
			g.ApplyDirection(dir)
		}
		// Nessuna azione legale: il serpente prosegue dritto e il tick
		// termina in collisione.

		result = g.Step()
		if result.Status == game.Ended {
			break
		}
	}

	return result
}

// buildEngine istanzia il motore decisionale scelto da configurazione.
func buildEngine(cfg *config.Config) (agent.Engine, error) {
	return buildEngineNamed(cfg, cfg.Engine)
}
