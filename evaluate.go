package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"snake-agents/agent"
	"snake-agents/config"
	"snake-agents/game"
	"snake-agents/qlearning"
)

// engineResult raccoglie gli esiti delle partite di un motore durante
// una valutazione comparativa.
type engineResult struct {
	Name   string
	Scores []int
	Steps  []int
}

// Best restituisce il punteggio migliore registrato.
func (r *engineResult) Best() int {
	best := 0
	for _, s := range r.Scores {
		if s > best {
			best = s
		}
	}
	return best
}

// MeanScore restituisce il punteggio medio.
func (r *engineResult) MeanScore() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	scores := make([]float64, len(r.Scores))
	for i, s := range r.Scores {
		scores[i] = float64(s)
	}
	return stat.Mean(scores, nil)
}

// MeanSteps restituisce la durata media delle partite in tick.
func (r *engineResult) MeanSteps() float64 {
	if len(r.Steps) == 0 {
		return 0
	}
	steps := make([]float64, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = float64(s)
	}
	return stat.Mean(steps, nil)
}

// MedianScore restituisce la mediana dei punteggi.
func (r *engineResult) MedianScore() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	scores := make([]float64, len(r.Scores))
	for i, s := range r.Scores {
		scores[i] = float64(s)
	}
	sort.Float64s(scores)
	return stat.Quantile(0.5, stat.Empirical, scores, nil)
}

// evaluate confronta tutti i motori disponibili sulle stesse condizioni
// di partita. Ogni motore gioca nel proprio goroutine con la propria
// partita: i tick restano sequenziali, la concorrenza è solo tra motori
// indipendenti.
func evaluate(cfg *config.Config, log *slog.Logger) error {
	names := []string{
		config.EngineReflex,
		config.EngineGoal,
		config.EngineUtility,
		config.EngineModel,
		config.EnginePolicy,
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []*engineResult
	)

	for _, name := range names {
		eng, err := buildEngineNamed(cfg, name)
		if err != nil {
			// Senza policy addestrata il confronto prosegue con gli
			// altri motori.
			log.Warn("engine skipped", "engine", name, "error", err)
			continue
		}

		wg.Add(1)
		go func(name string, eng agent.Engine) {
			defer wg.Done()

			result := &engineResult{Name: name}
			for i := 0; i < cfg.Play.Games; i++ {
				g := game.NewGame(cfg.Board.Width, cfg.Board.Height)
				if cfg.Apples.Randomized {
					// Stesso seme per ogni motore alla stessa partita:
					// condizioni identiche per tutti.
					g.RandomizeApples(cfg.Apples.Seed + uint64(i))
				}

				runGame(g, eng, cfg.Play.MaxSteps)

				result.Scores = append(result.Scores, g.Score())
				result.Steps = append(result.Steps, g.Steps())
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(name, eng)
	}

	wg.Wait()

	if len(results) == 0 {
		return fmt.Errorf("no engine available for evaluation")
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].MeanScore() > results[j].MeanScore()
	})

	for _, r := range results {
		log.Info("engine evaluated",
			"engine", r.Name,
			"games", len(r.Scores),
			"best", r.Best(),
			"avg", r.MeanScore(),
			"median", r.MedianScore(),
			"avg_steps", r.MeanSteps(),
		)
	}

	return nil
}

// buildEngineNamed istanzia un motore per nome, indipendentemente dal
// motore selezionato in configurazione.
func buildEngineNamed(cfg *config.Config, name string) (agent.Engine, error) {
	switch name {
	case config.EngineReflex:
		return agent.NewReflex(), nil
	case config.EngineGoal:
		return agent.NewGoal(), nil
	case config.EngineUtility:
		return agent.NewUtility(), nil
	case config.EngineModel:
		return agent.NewModel(), nil
	case config.EnginePolicy:
		policy, err := qlearning.LoadPolicy(filepath.Join(cfg.DataDir, qlearning.PolicyFile))
		if err != nil {
			return nil, fmt.Errorf("no trained policy to load: %w", err)
		}
		return policy, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}
