package qlearning

import (
	"golang.org/x/exp/rand"
)

// Parametri di apprendimento di default.
const (
	DefaultLearningRate   = 0.15
	DefaultDiscount       = 0.95
	DefaultInitialEpsilon = 0.9
	DefaultFinalEpsilon   = 0.01
	DefaultDecayEpisodes  = 1000
)

// QTable mappa ogni stato discreto ai valori delle tre azioni relative.
// Uno stato mai visto vale [0, 0, 0]: il valore zero della entry.
type QTable map[State][NumActions]float64

// Agent rappresenta un agente di Q-learning tabellare.
type Agent struct {
	Table          QTable
	LearningRate   float64
	Discount       float64
	Epsilon        float64
	InitialEpsilon float64
	FinalEpsilon   float64
	DecayEpisodes  int
	Episode        int

	rng *rand.Rand
}

// NewAgent crea un nuovo agente con i parametri di default e una
// tabella vuota.
func NewAgent(seed int64) *Agent {
	return &Agent{
		Table:          make(QTable),
		LearningRate:   DefaultLearningRate,
		Discount:       DefaultDiscount,
		Epsilon:        DefaultInitialEpsilon,
		InitialEpsilon: DefaultInitialEpsilon,
		FinalEpsilon:   DefaultFinalEpsilon,
		DecayEpisodes:  DefaultDecayEpisodes,
		rng:            rand.New(rand.NewSource(uint64(seed))),
	}
}

// ChooseAction seleziona un'azione con la politica epsilon-greedy:
// esplorazione casuale con probabilità epsilon, altrimenti l'azione con
// il valore Q massimo.
func (a *Agent) ChooseAction(s State) Action {
	if a.rng.Float64() < a.Epsilon {
		return Action(a.rng.Intn(NumActions))
	}
	return a.BestAction(s)
}

// BestAction restituisce l'azione con il valore Q più alto per lo stato
// dato. A parità di valore vince l'indice più basso. Lo stato viene
// materializzato nella tabella, come fa l'inferenza pura.
func (a *Agent) BestAction(s State) Action {
	if _, exists := a.Table[s]; !exists {
		a.Table[s] = [NumActions]float64{}
	}

	values := a.Table[s]
	best := Action(0)
	for act := 1; act < NumActions; act++ {
		if values[act] > values[best] {
			best = Action(act)
		}
	}
	return best
}

// MaxValue restituisce il massimo valore Q per uno stato dato.
func (a *Agent) MaxValue(s State) float64 {
	values := a.Table[s]
	max := values[0]
	for act := 1; act < NumActions; act++ {
		if values[act] > max {
			max = values[act]
		}
	}
	return max
}

// Update applica l'aggiornamento one-step del Q-learning:
// Q(s,a) = Q(s,a) + α [r + γ * max_a' Q(s',a') - Q(s,a)]
func (a *Agent) Update(s State, act Action, reward float64, next State) {
	values := a.Table[s]
	current := values[act]
	values[act] = current + a.LearningRate*(reward+a.Discount*a.MaxValue(next)-current)
	a.Table[s] = values
}

// DecayEpsilon aggiorna epsilon con il decadimento lineare: da
// InitialEpsilon a FinalEpsilon in DecayEpisodes episodi, poi resta al
// minimo.
func (a *Agent) DecayEpsilon() {
	if a.Episode < a.DecayEpisodes {
		progress := float64(a.Episode) / float64(a.DecayEpisodes)
		a.Epsilon = a.InitialEpsilon - (a.InitialEpsilon-a.FinalEpsilon)*progress
	} else {
		a.Epsilon = a.FinalEpsilon
	}
}

// IncrementEpisode incrementa il contatore degli episodi di training e
// aggiorna epsilon di conseguenza.
func (a *Agent) IncrementEpisode() {
	a.Episode++
	a.DecayEpsilon()
}

// States restituisce il numero di stati distinti visitati.
func (a *Agent) States() int {
	return len(a.Table)
}
