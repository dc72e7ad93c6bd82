package metrics

import "mcts/game"

// MatchUpSummary tallies the games of one match up. Agent1 and Agent2 are the match up's agents
// regardless of which seat they played in a given game, except in self-play where Agent1 is
// player 1.
type MatchUpSummary struct {
	MatchUp    int
	Agent1     int
	Agent2     int
	Agent1Wins int
	Agent2Wins int
	Draws      int
	Undecided  int
}

func (s MatchUpSummary) Games() int {
	return s.Agent1Wins + s.Agent2Wins + s.Draws + s.Undecided
}

// WinRate is Agent1's score share with draws counted as half a win.
func (s MatchUpSummary) WinRate() float64 {
	if s.Games() == 0 {
		return 0
	}
	return (float64(s.Agent1Wins) + float64(s.Draws)/2) / float64(s.Games())
}

// Summarize tallies records per match up. agents[i] names the two agents of match up i.
func Summarize(records []GameRecord, agents [][2]int) []MatchUpSummary {
	summaries := make([]MatchUpSummary, len(agents))
	for i, pair := range agents {
		summaries[i] = MatchUpSummary{MatchUp: i, Agent1: pair[0], Agent2: pair[1]}
	}

	for _, record := range records {
		if record.MatchUp < 0 || record.MatchUp >= len(summaries) {
			continue
		}
		s := &summaries[record.MatchUp]
		switch record.Winner {
		case game.InProgress:
			s.Undecided++
		case game.Draw:
			s.Draws++
		default:
			winner := record.Agent2
			if record.Winner == 1 {
				winner = record.Agent1
			}
			// Self-play match ups are tallied by seat
			if s.Agent1 == s.Agent2 && record.Winner == 1 || s.Agent1 != s.Agent2 && winner == s.Agent1 {
				s.Agent1Wins++
			} else {
				s.Agent2Wins++
			}
		}
	}
	return summaries
}
