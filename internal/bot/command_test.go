package bot

import (
	"testing"

	"github.com/maevebot/maeve/internal/domain"
	"github.com/maevebot/maeve/internal/services"
)

func catalogFixture() []domain.Movie {
	return []domain.Movie{
		{ID: 1, Title: "Iron Man", ReleaseYear: 2008, SortOrder: 1, Franchise: "mcu"},
		{ID: 2, Title: "Iron Man 2", ReleaseYear: 2010, SortOrder: 2, Franchise: "mcu"},
		{ID: 3, Title: "Thor", ReleaseYear: 2011, SortOrder: 3, Franchise: "mcu"},
	}
}

func TestAll_RegistryShape(t *testing.T) {
	cmds := All(&services.ProgressService{}, nil)

	// Seven fixed commands plus one listing per franchise.
	want := 7 + len(domain.Franchises)
	if len(cmds) != want {
		t.Fatalf("registry size = %d, want %d", len(cmds), want)
	}

	seen := map[string]bool{}
	for _, c := range cmds {
		def := c.Definition()
		if def.Name == "" || def.Description == "" {
			t.Errorf("command %T has incomplete definition: %+v", c, def)
		}
		if seen[def.Name] {
			t.Errorf("duplicate command name %q", def.Name)
		}
		seen[def.Name] = true
	}
	for _, f := range domain.Franchises {
		if !seen[f.Command] {
			t.Errorf("missing listing command %q", f.Command)
		}
	}
}

func TestFranchiseChoices(t *testing.T) {
	choices := franchiseChoices()
	if len(choices) != len(domain.Franchises) {
		t.Fatalf("choices = %d, want %d", len(choices), len(domain.Franchises))
	}
	if choices[0].Name != "MCU" || choices[0].Value != "mcu" {
		t.Errorf("first choice = %+v", choices[0])
	}
}

func TestMovieChoices_FilterAndLabel(t *testing.T) {
	movies := catalogFixture()

	all := movieChoices(movies, "")
	if len(all) != 3 {
		t.Fatalf("unfiltered choices = %d, want 3", len(all))
	}
	if all[0].Name != "1. Iron Man (2008)" {
		t.Errorf("label = %q", all[0].Name)
	}
	if all[0].Value != "Iron Man" {
		t.Errorf("value = %v", all[0].Value)
	}

	iron := movieChoices(movies, "IRON")
	if len(iron) != 2 {
		t.Fatalf("filtered choices = %d, want 2", len(iron))
	}

	none := movieChoices(movies, "avengers")
	if len(none) != 0 {
		t.Fatalf("unmatched filter yielded %d choices", len(none))
	}
}

func TestMovieChoices_Cap(t *testing.T) {
	movies := make([]domain.Movie, 40)
	for i := range movies {
		movies[i] = domain.Movie{
			ID:          uint(i + 1),
			Title:       "Movie",
			ReleaseYear: 2000 + i,
			SortOrder:   i + 1,
			Franchise:   "mcu",
		}
	}
	choices := movieChoices(movies, "")
	if len(choices) != maxChoices {
		t.Fatalf("choices = %d, want cap %d", len(choices), maxChoices)
	}
}
