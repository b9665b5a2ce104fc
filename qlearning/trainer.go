package qlearning

import (
	"log/slog"
	"path/filepath"

	"snake-agents/game"
	"snake-agents/telemetry"
)

// Reward shaping: collisione, mela mangiata, vicinanza alla mela,
// penalità di passo per incoraggiare l'efficienza.
const (
	CollisionPenalty   = -100.0
	AppleReward        = 50.0
	ProximityReward    = 1.0
	StepPenalty        = -1.0
	ProximityThreshold = 100.0 // in pixel
)

// TrainerConfig raccoglie i parametri del loop di training.
type TrainerConfig struct {
	Episodes        int
	MaxSteps        int // tetto di passi per episodio, contro le traiettorie infinite
	CheckpointEvery int
	Width           int
	Height          int
	DataDir         string
}

// Trainer esegue il loop di training offline: molti episodi simulati,
// un aggiornamento TD per transizione, persistenza di tabella e
// statistiche solo ai confini di episodio.
type Trainer struct {
	agent *Agent
	stats *Stats
	cfg   TrainerConfig
	log   *slog.Logger

	csv     *telemetry.Writer
	pending []telemetry.EpisodeRecord
}

// NewTrainer crea un trainer con un agente nuovo e statistiche vuote.
func NewTrainer(agent *Agent, cfg TrainerConfig, log *slog.Logger) (*Trainer, error) {
	csv, err := telemetry.NewWriter(filepath.Join(cfg.DataDir, "training.csv"))
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = slog.Default()
	}

	return &Trainer{
		agent: agent,
		stats: NewStats(),
		cfg:   cfg,
		log:   log,
		csv:   csv,
	}, nil
}

// Stats restituisce le statistiche correnti del training.
func (t *Trainer) Stats() *Stats {
	return t.stats
}

// Run esegue tutti gli episodi configurati e salva lo stato finale.
func (t *Trainer) Run() error {
	defer t.csv.Close()

	for episode := 0; episode < t.cfg.Episodes; episode++ {
		score, steps := t.runEpisode()

		t.stats.Record(episode, score, t.agent.States(), t.agent.Epsilon)
		t.agent.IncrementEpisode()

		t.pending = append(t.pending, telemetry.EpisodeRecord{
			Episode:      episode,
			Score:        score,
			Steps:        steps,
			Epsilon:      t.agent.Epsilon,
			States:       t.agent.States(),
			AverageScore: t.stats.AverageScore,
			BestScore:    t.stats.BestScore,
		})

		if t.cfg.CheckpointEvery > 0 && (episode+1)%t.cfg.CheckpointEvery == 0 {
			if err := t.checkpoint(); err != nil {
				return err
			}
			t.log.Info("training checkpoint",
				"episode", episode,
				"score", score,
				"best", t.stats.BestScore,
				"avg", t.stats.AverageScore,
				"epsilon", t.agent.Epsilon,
				"states", t.agent.States(),
			)
		}
	}

	return t.checkpoint()
}

// runEpisode gioca un episodio completo e restituisce punteggio e passi
// eseguiti. L'aggiornamento della transizione t avviene quando lo stato
// di t+1 è noto; la transizione terminale usa lo stato successivo alla
// collisione con la penalità piena.
func (t *Trainer) runEpisode() (score, steps int) {
	g := game.NewGame(t.cfg.Width, t.cfg.Height)

	var prevState State
	var prevAction Action
	havePrev := false
	prevScore := 0

	for steps = 0; steps < t.cfg.MaxSteps; steps++ {
		current := EncodeState(g)

		if havePrev {
			t.agent.Update(prevState, prevAction, t.stepReward(g, prevScore), current)
		}

		action := t.agent.ChooseAction(current)
		g.ApplyDirection(AbsoluteDirection(g.CurrentDirection(), action))

		prevScore = g.Score()
		result := g.Step()

		if result.Status == game.Ended {
			final := EncodeState(g)
			t.agent.Update(current, action, CollisionPenalty, final)
			break
		}

		prevState = current
		prevAction = action
		havePrev = true
	}

	return g.Score(), steps
}

// stepReward calcola la ricompensa della transizione precedente:
// premio per la mela, piccolo premio in prossimità, altrimenti la
// penalità di passo.
func (t *Trainer) stepReward(g *game.Game, prevScore int) float64 {
	if g.Score() > prevScore {
		return AppleReward
	}

	if g.EuclideanDistance(g.Head(), g.Apple()) < ProximityThreshold {
		return ProximityReward
	}

	return StepPenalty
}

// checkpoint salva tabella, statistiche e telemetria. Viene chiamato
// solo tra un episodio e l'altro, mai a metà aggiornamento: un run
// interrotto non corrompe niente di persistito.
func (t *Trainer) checkpoint() error {
	if err := SaveTable(filepath.Join(t.cfg.DataDir, PolicyFile), t.agent.Table); err != nil {
		return err
	}

	if err := t.stats.Save(filepath.Join(t.cfg.DataDir, StatsFile)); err != nil {
		return err
	}

	if err := t.csv.Append(t.pending); err != nil {
		return err
	}
	t.pending = t.pending[:0]

	return nil
}
