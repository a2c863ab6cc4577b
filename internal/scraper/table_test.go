package scraper

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/plk-schedule/internal/fixture"
)

func TestTableExtract_ScheduledRow(t *testing.T) {
	s := NewTableStrategy(testRules(t))
	seg := Segment{
		Round: 7,
		Rows: []Row{
			{{Text: "Team C"}, {Text: "Team D"}, {Text: "11.01 15:30"}, {Text: ""}, {Text: ""}},
		},
	}

	fixtures := s.Extract(seg)
	require.Len(t, fixtures, 1)
	f := fixtures[0]

	assert.Equal(t, fixture.StatusScheduled, f.Status)
	assert.Nil(t, f.TV)
	assert.Nil(t, f.Score)
	assert.Nil(t, f.Winner)
	assert.Equal(t, "2026-01-11T15:30:00+01:00", f.Start.String())
}

func TestTableExtract_SkipsNoise(t *testing.T) {
	s := NewTableStrategy(testRules(t))
	seg := Segment{
		Round: 1,
		Rows: []Row{
			{{Text: "Gospodarz"}, {Text: "Gość"}, {Text: "Data spotkania"}, {Text: "TV"}, {Text: "Wynik"}},
			{{Text: "Gospodarze:"}, {Text: "Goście:"}, {Text: "11.01 15:30"}},
			{{Text: ""}},
			{{Text: "Team A"}, {Text: "Team B"}},
			{{Text: "Team A"}, {Text: ""}, {Text: "11.01 15:30"}},
			{{Text: "Team A"}, {Text: "Team B"}, {Text: "TBD"}},
			{{Text: "Team A"}, {Text: "Team B"}, {Text: "12.01 18:00"}},
		},
	}

	fixtures := s.Extract(seg)
	require.Len(t, fixtures, 1)
	assert.Equal(t, 12, fixtures[0].Start.Time().Day())
}

func TestCellBroadcast(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"alt text preferred", Cell{Text: "TV", Alts: []string{"Polsat Sport"}}, "Polsat Sport"},
		{"several logos joined", Cell{Alts: []string{"Polsat Sport", "Emocje.tv"}}, "Polsat Sport / Emocje.tv"},
		{"placeholder alt falls back to text", Cell{Text: "YouTube PLK", Alts: []string{"tv", ""}}, "YouTube PLK"},
		{"plain text", Cell{Text: "Polsat Sport Extra"}, "Polsat Sport Extra"},
		{"empty", Cell{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellBroadcast(tt.cell))
		})
	}
}

func TestTableStrategy_SampleLayout(t *testing.T) {
	data, err := os.ReadFile("testdata/schedule_table.html")
	require.NoError(t, err)
	doc := mustDoc(t, string(data))
	rules := testRules(t)

	assert.Equal(t, "table", Detect(doc, rules).Name())

	s := NewTableStrategy(rules)
	segments, err := s.Segments(doc)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, 5, segments[0].Round)
	assert.Equal(t, 6, segments[1].Round)
	assert.Len(t, segments[0].Rows, 5)

	fixtures := s.Extract(segments[0])
	require.Len(t, fixtures, 3)

	assert.Equal(t, "Team C", fixtures[0].Home)
	assert.Equal(t, fixture.StatusScheduled, fixtures[0].Status)

	played := fixtures[1]
	require.NotNil(t, played.TV)
	assert.Equal(t, "Polsat Sport / Emocje.tv", *played.TV)
	require.NotNil(t, played.Winner)
	assert.Equal(t, "Trefl Sopot", *played.Winner)

	tie := fixtures[2]
	require.NotNil(t, tie.TV)
	assert.Equal(t, "YouTube PLK", *tie.TV)
	assert.Equal(t, fixture.StatusPlayed, tie.Status)
	assert.Nil(t, tie.Winner, "tied fixture has no winner")

	assert.Empty(t, s.Extract(segments[1]))
}

func TestParseFixtures_RoundLabelOutsideHeading(t *testing.T) {
	html := `
		<div class="round-title">14 kolejka</div>
		<table>
			<tr><td>Team A</td><td>Team B</td><td>23.12/ 17:30</td>
				<td><img alt="Polsat Sport 1"><img alt="Emocje TV"></td><td>85:79</td></tr>
			<tr><td>Team C</td><td>Team D</td><td>24.12 18:00</td>
				<td><img alt="Polsat Sport 1"></td><td></td></tr>
		</table>
	`
	s := newTestScraper(t, "https://test.example.com")

	fixtures, err := s.ParseFixtures(mustDoc(t, html))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	assert.Equal(t, 14, fixtures[0].Round)
	require.NotNil(t, fixtures[0].TV, "broadcaster logos must survive")
	assert.Equal(t, "Polsat Sport 1 / Emocje TV", *fixtures[0].TV)
	require.NotNil(t, fixtures[0].Score)
	assert.Equal(t, 85, fixtures[0].Score.Home)

	require.NotNil(t, fixtures[1].TV)
	assert.Equal(t, "Polsat Sport 1", *fixtures[1].TV)
	assert.Nil(t, fixtures[1].Score)
}

func TestParseFixtures_TableFallsBackToText(t *testing.T) {
	// round label only appears inside the table, so no table is claimed by a round
	html := `
		<table>
			<tr><td colspan="5">5 kolejka</td></tr>
			<tr><td>Team C</td><td>Team D</td><td>11.01 15:30</td><td></td><td></td></tr>
			<tr><td>Trefl Sopot</td><td>Legia Warszawa</td><td>23.12/ 17:30</td><td>Polsat Sport</td><td>85:79</td></tr>
		</table>
	`
	s := newTestScraper(t, "https://test.example.com")

	fixtures, err := s.ParseFixtures(mustDoc(t, html))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, 5, fixtures[0].Round)
	assert.Nil(t, fixtures[0].Score)
	require.NotNil(t, fixtures[1].Score)
	assert.Equal(t, 85, fixtures[1].Score.Home)
	require.NotNil(t, fixtures[1].TV)
	assert.Equal(t, "Polsat Sport", *fixtures[1].TV)
}
