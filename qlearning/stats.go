package qlearning

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ScoreHistoryCap limita la storia dei punteggi alle ultime partite.
const ScoreHistoryCap = 100

// Stats raccoglie le statistiche di training dell'agente: contatore
// episodi, miglior punteggio, media mobile e storia recente dei
// punteggi (più recente in coda).
type Stats struct {
	Episode      int     `json:"episode"`
	BestScore    int     `json:"best_score"`
	AverageScore float64 `json:"average_score"`
	TotalStates  int     `json:"total_states"`
	Epsilon      float64 `json:"epsilon"`
	ScoreHistory []int   `json:"scores_history"`
}

// NewStats crea statistiche vuote.
func NewStats() *Stats {
	return &Stats{
		ScoreHistory: make([]int, 0, ScoreHistoryCap),
	}
}

// Record registra l'esito di un episodio e aggiorna gli aggregati.
func (s *Stats) Record(episode, score, states int, epsilon float64) {
	s.Episode = episode
	s.TotalStates = states
	s.Epsilon = epsilon

	if score > s.BestScore {
		s.BestScore = score
	}

	s.ScoreHistory = append(s.ScoreHistory, score)
	if len(s.ScoreHistory) > ScoreHistoryCap {
		s.ScoreHistory = s.ScoreHistory[1:]
	}

	recent := make([]float64, len(s.ScoreHistory))
	for i, v := range s.ScoreHistory {
		recent[i] = float64(v)
	}
	s.AverageScore = stat.Mean(recent, nil)
}

// MedianScore restituisce la mediana della storia recente dei punteggi.
func (s *Stats) MedianScore() float64 {
	if len(s.ScoreHistory) == 0 {
		return 0
	}

	sorted := make([]float64, len(s.ScoreHistory))
	for i, v := range s.ScoreHistory {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// Save salva le statistiche su file in formato JSON.
func (s *Stats) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling stats: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing stats file: %w", err)
	}

	return nil
}

// LoadStats carica le statistiche da file.
func LoadStats(path string) (*Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stats file: %w", err)
	}

	stats := NewStats()
	if err := json.Unmarshal(data, stats); err != nil {
		return nil, fmt.Errorf("unmarshaling stats: %w", err)
	}

	return stats, nil
}
