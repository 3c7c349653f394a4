package storage

import (
	"fmt"
	"time"
)

// StrategyStats contains aggregated statistics for one strategy on a map.
type StrategyStats struct {
	Strategy   string
	Runs       int
	Finished   int
	BestPath   int // Shortest path among finished runs, -1 if none
	AvgSteps   float64
	AvgVisited float64
	LastRun    time.Time
}

// StrategyStats retrieves per-strategy statistics for a map, sorted by
// strategy. An empty mapID aggregates over all maps.
func (s *Store) StrategyStats(mapID string) ([]StrategyStats, error) {
	rows, err := s.db.Query(
		`SELECT strategy,
		        COUNT(*),
		        SUM(CASE WHEN status = 'Finished' THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN status = 'Finished' THEN path_len END), -1),
		        AVG(steps),
		        AVG(visited),
		        MAX(created_at)
		 FROM runs
		 WHERE ? = '' OR map_id = ?
		 GROUP BY strategy
		 ORDER BY strategy`,
		mapID, mapID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get strategy stats: %w", err)
	}
	defer rows.Close()

	var stats []StrategyStats
	for rows.Next() {
		var st StrategyStats
		var lastRun any
		if err := rows.Scan(&st.Strategy, &st.Runs, &st.Finished, &st.BestPath,
			&st.AvgSteps, &st.AvgVisited, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
