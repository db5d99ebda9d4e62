package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MatchupQuote prices one head-to-head matchup from a completed run:
// win probability and American-odds moneyline for each side, plus an
// optional over/under total line priced from the combined distribution.
type MatchupQuote struct {
	RunID         uuid.UUID `db:"run_id" json:"run_id"`
	Season        int       `db:"season" json:"season"`
	Week          int       `db:"week" json:"week"`
	HomeTeamID    string    `db:"home_team_id" json:"home_team_id"`
	AwayTeamID    string    `db:"away_team_id" json:"away_team_id"`
	HomeWinProb   float64   `db:"home_win_prob" json:"home_win_prob"`
	AwayWinProb   float64   `db:"away_win_prob" json:"away_win_prob"`
	HomeMoneyline int       `db:"home_moneyline" json:"home_moneyline"`
	AwayMoneyline int       `db:"away_moneyline" json:"away_moneyline"`
	TotalLine     *float64  `db:"total_line" json:"total_line,omitempty"`
	OverPrice     *int      `db:"over_price" json:"over_price,omitempty"`
	UnderPrice    *int      `db:"under_price" json:"under_price,omitempty"`
	TieTrials     int       `db:"tie_trials" json:"tie_trials"`
}

// MarketFactKind enumerates league-wide single-team markets.
type MarketFactKind string

const (
	MarketFactHighestScorer MarketFactKind = "highest_scorer"
	MarketFactLowestScorer  MarketFactKind = "lowest_scorer"
)

// MarketFact is a league-wide probability not tied to an opponent, e.g. the
// chance a team posts the week's highest total.
type MarketFact struct {
	RunID       uuid.UUID      `db:"run_id" json:"run_id"`
	Season      int            `db:"season" json:"season"`
	Week        int            `db:"week" json:"week"`
	Kind        MarketFactKind `db:"kind" json:"kind"`
	TeamID      string         `db:"team_id" json:"team_id"`
	Probability float64        `db:"probability" json:"probability"`
	Moneyline   int            `db:"moneyline" json:"moneyline"`
}

// FormatMoneyline renders an American-odds price with its explicit sign.
func FormatMoneyline(price int) string {
	if price > 0 {
		return fmt.Sprintf("+%d", price)
	}
	return fmt.Sprintf("%d", price)
}

// MoneylineDecimal converts an American-odds price to decimal odds.
func MoneylineDecimal(price int) (decimal.Decimal, error) {
	if price == 0 {
		return decimal.Zero, fmt.Errorf("invalid moneyline: cannot be 0")
	}
	hundred := decimal.NewFromInt(100)
	if price > 0 {
		return decimal.NewFromInt(int64(price)).Div(hundred).Add(decimal.NewFromInt(1)), nil
	}
	return hundred.Div(decimal.NewFromInt(int64(-price))).Add(decimal.NewFromInt(1)), nil
}

// PotentialPayout returns the total return (stake plus winnings) for a stake
// placed at an American-odds price, rounded to the cent.
func PotentialPayout(price int, stake decimal.Decimal) (decimal.Decimal, error) {
	dec, err := MoneylineDecimal(price)
	if err != nil {
		return decimal.Zero, err
	}
	return stake.Mul(dec).Round(2), nil
}
