package qlearning

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Nomi di default dei file di persistenza.
const (
	PolicyFile = "qtable.json"
	StatsFile  = "training_stats.json"
)

// policyRecord è la forma su disco di una riga della tabella: lo stato
// con i suoi cinque campi espliciti e i tre valori delle azioni. Niente
// tuple stringificate da ri-parsare: il caricamento ricostruisce lo
// stesso identico State usato come chiave in memoria.
type policyRecord struct {
	State  State               `json:"state"`
	Values [NumActions]float64 `json:"values"`
}

// SaveTable serializza la tabella Q in una lista ordinata di record.
// L'ordinamento rende il file stabile tra salvataggi successivi.
func SaveTable(path string, table QTable) error {
	records := make([]policyRecord, 0, len(table))
	for s, values := range table {
		records = append(records, policyRecord{State: s, Values: values})
	}

	sort.Slice(records, func(i, j int) bool {
		return stateLess(records[i].State, records[j].State)
	})

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling policy: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating policy directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing policy file: %w", err)
	}

	return nil
}

// LoadTable ricostruisce la tabella Q dal file di policy. Un file
// mancante o corrotto è un errore: sta al chiamante decidere se è
// fatale (inferenza) o irrilevante (training, che parte da zero).
func LoadTable(path string) (QTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}

	var records []policyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshaling policy: %w", err)
	}

	table := make(QTable, len(records))
	for _, r := range records {
		table[r.State] = r.Values
	}

	return table, nil
}

// stateLess definisce un ordine totale sugli stati per la
// serializzazione deterministica.
func stateLess(a, b State) bool {
	ak := [5]int{boolToInt(a.DangerStraight), boolToInt(a.DangerRight), boolToInt(a.DangerLeft), a.AppleDir, a.DistBucket}
	bk := [5]int{boolToInt(b.DangerStraight), boolToInt(b.DangerRight), boolToInt(b.DangerLeft), b.AppleDir, b.DistBucket}
	for i := range ak {
		if ak[i] != bk[i] {
			return ak[i] < bk[i]
		}
	}
	return false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
