package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSong(t *testing.T) {
	t.Run("Label", func(t *testing.T) {
		tc := []struct {
			name string
			song Song
			want string
		}{
			{name: "fresh song", song: Song{Name: "a"}, want: "0/0 wins"},
			{name: "some record", song: Song{Name: "b", Wins: 3, Appearances: 5}, want: "3/5 wins"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.song.Label(); got != tt.want {
					t.Errorf("Label() = %q, want %q", got, tt.want)
				}
			})
		}
	})

	t.Run("Decode", func(t *testing.T) {
		var songs []Song
		body := `[{"name":"Rock & Roll","wins":2,"appearances":4,"winRate":0.5}]`
		if err := json.Unmarshal([]byte(body), &songs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(songs) != 1 || songs[0].Name != "Rock & Roll" || songs[0].Wins != 2 || songs[0].Appearances != 4 {
			t.Errorf("unexpected decode result: %+v", songs)
		}
	})
}

func TestPair(t *testing.T) {
	t.Run("UnmarshalJSON", func(t *testing.T) {
		tc := []struct {
			name    string
			body    string
			want    Pair
			wantErr bool
		}{
			{name: "two names", body: `["A","B"]`, want: Pair{Left: "A", Right: "B"}},
			{name: "one name", body: `["A"]`, wantErr: true},
			{name: "three names", body: `["A","B","C"]`, wantErr: true},
			{name: "object", body: `{"left":"A"}`, wantErr: true},
			{name: "numbers", body: `[1,2]`, wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				var p Pair
				err := json.Unmarshal([]byte(tt.body), &p)
				if (err != nil) != tt.wantErr {
					t.Fatalf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
				}
				if !tt.wantErr && p != tt.want {
					t.Errorf("UnmarshalJSON() = %+v, want %+v", p, tt.want)
				}
			})
		}
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		data, err := json.Marshal(Pair{Left: "A", Right: "B"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `["A","B"]` {
			t.Errorf("expected [\"A\",\"B\"], got %s", data)
		}
	})

	t.Run("Ballot", func(t *testing.T) {
		p := Pair{Left: "A", Right: "B"}

		if got := p.Ballot(true); got != (VoteRequest{Selected: "A", Other: "B"}) {
			t.Errorf("left ballot = %+v", got)
		}
		if got := p.Ballot(false); got != (VoteRequest{Selected: "B", Other: "A"}) {
			t.Errorf("right ballot = %+v", got)
		}
	})

	t.Run("IsZero", func(t *testing.T) {
		if !(Pair{}).IsZero() {
			t.Error("empty pair should be zero")
		}
		if (Pair{Left: "A", Right: "B"}).IsZero() {
			t.Error("loaded pair should not be zero")
		}
	})
}

func TestVoteRequest(t *testing.T) {
	data, err := json.Marshal(VoteRequest{Selected: "A", Other: "B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"selected":"A","other":"B"}` {
		t.Errorf("unexpected body: %s", data)
	}
}

func TestPersistedSong(t *testing.T) {
	t.Run("WinRate", func(t *testing.T) {
		s := NewPersistedSong(1, "song")
		if s.WinRate() != 0 {
			t.Errorf("expected 0 win rate for unplayed song, got %v", s.WinRate())
		}

		s.SetCounters(2, 3)
		if math.Abs(s.WinRate()-2.0/3.0) > 1e-9 {
			t.Errorf("expected 2/3 win rate, got %v", s.WinRate())
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name        string
			songName    string
			wins        int
			appearances int
			wantErr     bool
		}{
			{name: "valid", songName: "song", wins: 1, appearances: 2},
			{name: "blank name", songName: "  ", wantErr: true},
			{name: "negative", songName: "song", wins: -1, appearances: 0, wantErr: true},
			{name: "wins above appearances", songName: "song", wins: 3, appearances: 2, wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				s := NewPersistedSong(1, tt.songName)
				s.SetCounters(tt.wins, tt.appearances)
				if err := s.Validate(); (err != nil) != tt.wantErr {
					t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("Conversions", func(t *testing.T) {
		s := NewPersistedSong(1, "song")
		s.SetCounters(1, 4)

		song := s.Song()
		if song.Name != "song" || song.Wins != 1 || song.Appearances != 4 || song.WinRate != 0.25 {
			t.Errorf("unexpected song: %+v", song)
		}

		row := s.LeaderboardRow()
		if row.Name != "song" || row.WinRate != 0.25 {
			t.Errorf("unexpected row: %+v", row)
		}
	})
}
