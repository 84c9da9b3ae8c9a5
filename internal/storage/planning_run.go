package storage

import "time"

// PlanningRun: запись журнала о завершённом прогоне планирования палет.
type PlanningRun struct {
	ID            int64     `json:"id"`
	RunID         string    `json:"run_id"`
	ZkoID         int64     `json:"zko_id"`
	Operator      string    `json:"operator"`
	State         string    `json:"state"`
	Overwrite     bool      `json:"nadpisz_istniejace"`
	MaxHeightMM   int       `json:"max_wysokosc_mm"`
	MaxPieces     int       `json:"max_formatek_na_palete"`
	PalletCount   int       `json:"liczba_palet"`
	TotalPieces   int       `json:"total_sztuk"`
	InitialStatus string    `json:"status_poczatkowy,omitempty"`
	FinalStatus   string    `json:"status_koncowy,omitempty"`
	Message       string    `json:"komunikat,omitempty"`
	Error         string    `json:"error,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

type RunFilter struct {
	ZkoID int64
	Limit int
}
