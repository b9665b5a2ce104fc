package qlearning

import (
	"snake-agents/game"
)

// Policy è il motore decisionale di inferenza: politica puramente
// greedy sulla tabella caricata da disco, nessuna esplorazione e
// nessun aggiornamento.
type Policy struct {
	table QTable
}

// LoadPolicy carica una policy addestrata. Senza un file valido non
// esiste politica da eseguire: per una partita di sola inferenza
// l'errore è fatale.
func LoadPolicy(path string) (*Policy, error) {
	table, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	return &Policy{table: table}, nil
}

// NewPolicy costruisce una policy da una tabella già in memoria.
func NewPolicy(table QTable) *Policy {
	return &Policy{table: table}
}

// States restituisce il numero di stati della tabella caricata.
func (p *Policy) States() int {
	return len(p.table)
}

// Decide sceglie sempre l'azione con il valore Q massimo per lo stato
// corrente; a parità vince l'indice più basso. Lo stato viene
// codificato dalla stessa identica funzione usata in training.
func (p *Policy) Decide(g *game.Game) (game.Direction, error) {
	s := EncodeState(g)
	values := p.table[s]

	best := 0
	for act := 1; act < NumActions; act++ {
		if values[act] > values[best] {
			best = act
		}
	}

	return AbsoluteDirection(g.CurrentDirection(), Action(best)), nil
}
