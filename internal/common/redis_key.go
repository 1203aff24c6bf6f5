package common

import "fmt"

func RedisKeyLeaderboard(tournamentID string) string {
	return fmt.Sprintf("leaderboard:%s", tournamentID)
}
