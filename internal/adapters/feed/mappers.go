package feed

import (
	"math"

	"automix-bot/internal/core/domain"
)

func toSnapshot(r Response) *domain.RankingSnapshot {
	rows := make([]domain.RankingRow, len(r.Rank))
	for i, e := range r.Rank {
		rows[i] = toRow(e)
	}
	return &domain.RankingSnapshot{
		Rows:       rows,
		LastUpdate: r.LastUpdate,
	}
}

// maxCount bounds decoded counters so oversized feed values cannot wrap.
const maxCount = math.MaxInt32

func toRow(e Entry) domain.RankingRow {
	row := domain.RankingRow{
		Name:   e.Name,
		Points: toCount(e.Points),
		Kills:  toCount(e.Kills),
		Deaths: toCount(e.Deaths),
	}
	if e.KDR.Valid {
		v := e.KDR.Value
		row.KDR = &v
	}
	return row
}

func toCount(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= maxCount:
		return maxCount
	case v <= -maxCount:
		return -maxCount
	}
	return int(math.Round(v))
}
