// Package testutil seeds throwaway SQLite shot warehouses for tests.
package testutil

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"shotboard/internal/shared/database"

	_ "github.com/glebarez/go-sqlite"
)

const schema = `
CREATE TABLE teams (
	team_id   INTEGER PRIMARY KEY,
	team_name TEXT NOT NULL
);
CREATE TABLE players (
	player_id   INTEGER PRIMARY KEY,
	player_name TEXT NOT NULL
);
CREATE TABLE games (
	game_id   TEXT PRIMARY KEY,
	game_date TEXT NOT NULL
);
CREATE TABLE shots (
	shot_id       INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id       TEXT NOT NULL REFERENCES games(game_id),
	team_id       INTEGER NOT NULL REFERENCES teams(team_id),
	player_id     INTEGER NOT NULL REFERENCES players(player_id),
	shot_type     TEXT NOT NULL,
	shot_made     INTEGER NOT NULL,
	loc_x         REAL,
	loc_y         REAL,
	zone_name     TEXT,
	shot_distance REAL
);
CREATE TABLE stadiums (
	stadium_name TEXT PRIMARY KEY,
	latitude     REAL NOT NULL,
	longitude    REAL NOT NULL
);
`

const (
	TwoPoint   = "2PT Field Goal"
	ThreePoint = "3PT Field Goal"
)

// Shot is one row for the shots table. Nil pointers store NULL.
type Shot struct {
	GameID   string
	TeamID   int64
	PlayerID int64
	Type     string
	Made     bool
	X, Y     *float64
	Zone     string
	Distance *float64
}

type Fixture struct {
	t    testing.TB
	DB   *sql.DB
	Path string
}

// NewFixture creates an empty warehouse in a temp dir. A file is used
// instead of :memory: so every pooled connection sees the same data.
func NewFixture(t testing.TB) *Fixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nba_shots.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite fixture: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}

	return &Fixture{t: t, DB: db, Path: path}
}

func (f *Fixture) exec(query string, args ...any) {
	f.t.Helper()
	if _, err := f.DB.Exec(query, args...); err != nil {
		f.t.Fatalf("fixture insert failed: %v\n%s", err, query)
	}
}

func (f *Fixture) Team(id int64, name string) *Fixture {
	f.exec("INSERT INTO teams (team_id, team_name) VALUES (?, ?)", id, name)
	return f
}

func (f *Fixture) Player(id int64, name string) *Fixture {
	f.exec("INSERT INTO players (player_id, player_name) VALUES (?, ?)", id, name)
	return f
}

func (f *Fixture) Game(id, date string) *Fixture {
	f.exec("INSERT INTO games (game_id, game_date) VALUES (?, ?)", id, date)
	return f
}

func (f *Fixture) Stadium(name string, lat, lon float64) *Fixture {
	f.exec("INSERT INTO stadiums (stadium_name, latitude, longitude) VALUES (?, ?, ?)", name, lat, lon)
	return f
}

// Shots inserts n copies of s.
func (f *Fixture) Shots(n int, s Shot) *Fixture {
	made := 0
	if s.Made {
		made = 1
	}
	for i := 0; i < n; i++ {
		f.exec(`INSERT INTO shots (game_id, team_id, player_id, shot_type, shot_made, loc_x, loc_y, zone_name, shot_distance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.GameID, s.TeamID, s.PlayerID, s.Type, made, nullable(s.X), nullable(s.Y), s.Zone, nullable(s.Distance))
	}
	return f
}

// Store wraps the fixture database in the data store adapter.
func (f *Fixture) Store() *database.Store {
	return database.NewStore(f.DB, database.SQLite, nil, DiscardLogger())
}

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Float(v float64) *float64 {
	return &v
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// Team and player ids of the sample warehouse.
const (
	HawksID   int64 = 1610612737
	CelticsID int64 = 1610612738
	RoguesID  int64 = 1610619999

	TraeYoungID   int64 = 1629027
	DejounteID    int64 = 1627749
	JaysonTatumID int64 = 1628369
	JaylenBrownID int64 = 1627759
	BenchWarmerID int64 = 1999999
)

// Sample seeds a small two-season warehouse:
//
//	Hawks made shots: 7 two-pointers, 3 three-pointers (Trae 4+3, Dejounte 3).
//	Hawks misses: 2 threes with no location or distance (2023-04-05),
//	one mid-range miss with no distance (2023-02-10) and one miss after
//	the default date window (2023-09-20).
//	Celtics: Tatum 2 made corner threes, Brown 1 mid-range miss.
//	Rogues: a team with no shots at all; Bench Warmer has no shots.
func Sample(t testing.TB) *Fixture {
	f := NewFixture(t)

	f.Team(HawksID, "Atlanta Hawks").
		Team(CelticsID, "Boston Celtics").
		Team(RoguesID, "Gotham Rogues")

	f.Player(TraeYoungID, "Trae Young").
		Player(DejounteID, "Dejounte Murray").
		Player(JaysonTatumID, "Jayson Tatum").
		Player(JaylenBrownID, "Jaylen Brown").
		Player(BenchWarmerID, "Bench Warmer")

	f.Game("0022200001", "2022-10-19").
		Game("0022200002", "2022-12-15").
		Game("0022200003", "2023-02-10").
		Game("0022200004", "2023-04-05").
		Game("0022300001", "2023-09-20").
		Game("0022200005", "2022-11-02")

	f.Stadium("TD Garden", 42.3662, -71.0621).
		Stadium("State Farm Arena", 33.7573, -84.3963)

	f.Shots(4, Shot{GameID: "0022200001", TeamID: HawksID, PlayerID: TraeYoungID, Type: TwoPoint, Made: true,
		X: Float(0), Y: Float(5), Zone: "Restricted Area", Distance: Float(2)})
	f.Shots(3, Shot{GameID: "0022200002", TeamID: HawksID, PlayerID: DejounteID, Type: TwoPoint, Made: true,
		X: Float(10), Y: Float(120), Zone: "Mid-Range", Distance: Float(15)})
	f.Shots(3, Shot{GameID: "0022200003", TeamID: HawksID, PlayerID: TraeYoungID, Type: ThreePoint, Made: true,
		X: Float(-100), Y: Float(240), Zone: "Above the Break 3", Distance: Float(26)})
	f.Shots(1, Shot{GameID: "0022200003", TeamID: HawksID, PlayerID: DejounteID, Type: TwoPoint, Made: false,
		Zone: "Mid-Range"})
	f.Shots(2, Shot{GameID: "0022200004", TeamID: HawksID, PlayerID: TraeYoungID, Type: ThreePoint, Made: false,
		Zone: "Above the Break 3"})
	f.Shots(1, Shot{GameID: "0022300001", TeamID: HawksID, PlayerID: TraeYoungID, Type: TwoPoint, Made: false,
		X: Float(30), Y: Float(90), Zone: "Mid-Range", Distance: Float(10)})

	f.Shots(2, Shot{GameID: "0022200005", TeamID: CelticsID, PlayerID: JaysonTatumID, Type: ThreePoint, Made: true,
		X: Float(-220), Y: Float(10), Zone: "Left Corner 3", Distance: Float(23)})
	f.Shots(1, Shot{GameID: "0022200005", TeamID: CelticsID, PlayerID: JaylenBrownID, Type: TwoPoint, Made: false,
		X: Float(50), Y: Float(100), Zone: "Mid-Range", Distance: Float(12)})

	return f
}
