package status

import (
	"fmt"
	"strings"

	"automix-bot/internal/core/domain"
)

// MaxLabelRunes is Discord's channel name limit.
const MaxLabelRunes = 100

// Label renders the channel name for a status: "Name: active/max", or
// "Name: ?/?" when the server could not be queried.
func Label(s domain.ServerStatus) string {
	var label string
	if s.Online {
		label = fmt.Sprintf("%s: %d/%d", s.Endpoint.DisplayName, s.Active, s.Max)
	} else {
		label = fmt.Sprintf("%s: ?/?", s.Endpoint.DisplayName)
	}

	runes := []rune(label)
	if len(runes) > MaxLabelRunes {
		return string(runes[:MaxLabelRunes])
	}
	return label
}

// CountActive counts players whose name is not the excluded spectator. The
// comparison is exact but case-insensitive.
func CountActive(players []domain.Player, excluded string) int {
	active := 0
	for _, p := range players {
		if excluded != "" && strings.EqualFold(p.Name, excluded) {
			continue
		}
		active++
	}
	return active
}
