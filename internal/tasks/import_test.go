package tasks

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/versus/internal/shared"
	tu "github.com/desertthunder/versus/internal/testing"
)

// rejectingAPI fails AddSong for names already present.
type rejectingAPI struct {
	tu.MockVotingAPI
	mu    sync.Mutex
	known map[string]bool
}

func (r *rejectingAPI) AddSong(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.known[name] {
		return errors.New("Song exists or invalid name")
	}
	r.known[name] = true
	return nil
}

func TestImporter(t *testing.T) {
	t.Run("Adds Trimmed Names And Skips Blanks", func(t *testing.T) {
		api := &tu.MockVotingAPI{}
		names := []string{"  One  ", "", "   ", "Two", "Three\t"}

		result, err := NewImporter(api).Import(context.Background(), nil, names, ImportOpts{NumWorkers: 2, RateLimit: 1000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Total != 5 || result.Added != 3 || result.Skipped != 2 || result.Failed != 0 {
			t.Errorf("unexpected counts %+v", result)
		}

		want := []string{"One", "Two", "Three"}
		for i, res := range result.Results {
			if res.Name != want[i] || !res.Success {
				t.Errorf("result %d = %+v, want %s success", i, res, want[i])
			}
		}

		added := api.Added()
		if len(added) != 3 {
			t.Fatalf("expected 3 AddSong calls, got %v", added)
		}
		for _, n := range added {
			if n != strings.TrimSpace(n) || n == "" {
				t.Errorf("untrimmed name sent: %q", n)
			}
		}
	})

	t.Run("Collects Failures Per Name", func(t *testing.T) {
		api := &rejectingAPI{known: map[string]bool{"Existing": true}}
		names := []string{"Existing", "Fresh", "Fresh"}

		result, err := NewImporter(api).Import(context.Background(), nil, names, ImportOpts{NumWorkers: 1, RateLimit: 1000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Added != 1 || result.Failed != 2 {
			t.Errorf("expected 1 added and 2 failed, got %+v", result)
		}
		if result.Results[0].Success || result.Results[0].Error == nil {
			t.Errorf("expected first name to fail, got %+v", result.Results[0])
		}
		if !result.Results[1].Success {
			t.Errorf("expected second name to succeed, got %+v", result.Results[1])
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		api := &tu.MockVotingAPI{}
		result, err := NewImporter(api).Import(context.Background(), nil, nil, ImportOpts{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 0 || len(api.Calls()) != 0 {
			t.Errorf("expected no calls, got %v", api.Calls())
		}
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		api := &tu.MockVotingAPI{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewImporter(api).Import(ctx, nil, []string{"A", "B"}, ImportOpts{NumWorkers: 1, RateLimit: 1000})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(api.Added()) != 0 {
			t.Errorf("expected no adds after cancel, got %v", api.Added())
		}
	})

	t.Run("Nil API", func(t *testing.T) {
		_, err := NewImporter(nil).Import(context.Background(), nil, []string{"A"}, ImportOpts{})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("Progress", func(t *testing.T) {
		api := &tu.MockVotingAPI{}
		progress := make(chan ProgressUpdate, 20)

		_, err := NewImporter(api).Import(context.Background(), progress, []string{"A", "B"}, ImportOpts{NumWorkers: 1, RateLimit: 1000})
		close(progress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count := 0
		for u := range progress {
			if u.Phase != ImportSongs {
				t.Errorf("unexpected phase %s", u.Phase)
			}
			count++
		}
		if count != 4 {
			t.Errorf("expected 4 updates, got %d", count)
		}
	})
}

func TestReadNames(t *testing.T) {
	input := "# favourites\nOne\n\n  Two  \n#skip\nRock & Roll\n"

	names, err := ReadNames(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"One", "Two", "Rock & Roll"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
