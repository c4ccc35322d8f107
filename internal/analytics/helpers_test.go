package analytics

import (
	"time"

	"MatchBoard/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func link(id int64) *int64 { return &id }

type outcome int

const (
	win outcome = iota
	loss
	draw
	unknown
)

func match(id int64, team string, o outcome, gf, ga int) model.MatchRecord {
	m := model.MatchRecord{
		MatchID:        id,
		AgeGroup:       "U10",
		Team:           team,
		Competition:    "Friendly",
		MatchDate:      day("2024-09-01").AddDate(0, 0, int(id)),
		MVGoals:        gf,
		OppGoals:       ga,
		LocationName:   "Home Ground",
		Lat:            53.40,
		Lon:            -2.30,
		LocationColour: "#E5AD32",
	}
	switch o {
	case win:
		m.MVWin = 1
	case loss:
		m.OppWin = 1
	case draw:
		m.Draw = 1
	case unknown:
		m.Unknown = 1
	}
	return m
}

// sampleTable 两个年龄组、三支球队、一对关联比赛
func sampleTable() []model.MatchRecord {
	a := match(1, "U10 Reds", win, 3, 1)
	b := match(2, "U10 Reds", draw, 2, 2)
	c := match(3, "U12 Blues", loss, 0, 2)
	c.AgeGroup = "U12"
	c.Competition = "League: Div 1"
	d := match(5, "U12 Blues", win, 4, 0)
	d.AgeGroup = "U12"
	d.Competition = "League: Div 1"
	d.LinkedMatchID = link(9)
	e := match(9, "U12 Whites", loss, 0, 4)
	e.AgeGroup = "U12"
	e.Competition = "League: Div 1"
	e.LinkedMatchID = link(5)
	f := match(11, "U10 Greens", unknown, 0, 0)
	return []model.MatchRecord{e, a, f, c, b, d}
}
