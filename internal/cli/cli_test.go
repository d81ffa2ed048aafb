package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/pokedex/pkg/errors"
	"github.com/matzehuels/pokedex/pkg/pokeapitest"
	"github.com/matzehuels/pokedex/pkg/pokedex"
)

type result struct {
	stdout string
	stderr string
	log    string
}

// runCLI executes the root command with a config pointing at srv. extra is
// appended to the generated config file.
func runCLI(t *testing.T, srv *pokeapitest.Server, extra string, args ...string) (result, error) {
	t.Helper()

	cfg := fmt.Sprintf("base_url = %q\n\n[cache]\nbackend = \"none\"\n", srv.BaseURL())
	if extra != "" {
		cfg = fmt.Sprintf("base_url = %q\n\n%s", srv.BaseURL(), extra)
	}
	path := writeFile(t, "config.toml", cfg)

	var logBuf, stdout, stderr bytes.Buffer
	c := New(&logBuf, LogDebug)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", path}, args...))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), log: logBuf.String()}, err
}

func TestListCommand(t *testing.T) {
	srv := pokeapitest.New(t)

	res, err := runCLI(t, srv, "", "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	for _, name := range []string{"ivysaur", "charizard", "metapod", "page 1/20"} {
		if !strings.Contains(res.stdout, name) {
			t.Errorf("list output missing %q:\n%s", name, res.stdout)
		}
	}
	if strings.Contains(res.stdout, "bulbasaur") {
		t.Error("page 1 starts at offset 1 and should not include #1 bulbasaur")
	}
	if !strings.Contains(res.log, "page complete") {
		t.Errorf("debug log missing fetch hook output:\n%s", res.log)
	}
}

func TestListCommandStridePaging(t *testing.T) {
	srv := pokeapitest.New(t)
	cfg := "paging = \"stride\"\n\n[cache]\nbackend = \"none\"\n"

	res, err := runCLI(t, srv, cfg, "list", "--page", "2")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	for _, name := range []string{"metapod", "pikachu", "pichu"} {
		if !strings.Contains(res.stdout, name) {
			t.Errorf("stride page 2 missing %q:\n%s", name, res.stdout)
		}
	}
	if strings.Contains(res.stdout, "caterpie") {
		t.Error("stride page 2 should not repeat #10 caterpie")
	}
}

func TestListCommandTypeFilter(t *testing.T) {
	srv := pokeapitest.New(t)

	res, err := runCLI(t, srv, "", "list", "--page", "1", "--type", "water")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	for _, name := range []string{"squirtle", "wartortle", "blastoise"} {
		if !strings.Contains(res.stdout, name) {
			t.Errorf("filtered output missing %s", name)
		}
	}
	if strings.Contains(res.stdout, "ivysaur") {
		t.Error("filtered output contains a grass Pokémon")
	}
	if !strings.Contains(res.stdout, "7 hidden by water") {
		t.Errorf("filtered output missing stats line:\n%s", res.stdout)
	}

	res, err = runCLI(t, srv, "", "list", "--type", "dragon")
	if err != nil {
		t.Fatalf("list --type dragon error: %v", err)
	}
	if !strings.Contains(res.stdout, "No dragon Pokémon on page 1") {
		t.Errorf("empty filter output = %q", res.stdout)
	}
}

func TestListCommandInvalidPage(t *testing.T) {
	srv := pokeapitest.New(t)

	for _, page := range []string{"0", "21", "-3"} {
		_, err := runCLI(t, srv, "", "list", "--page="+page)
		if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
			t.Errorf("list --page %s error = %v, want INVALID_INPUT", page, err)
		}
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("invalid pages issued %d requests", n)
	}
}

func TestListCommandUpstreamFailure(t *testing.T) {
	srv := pokeapitest.New(t)
	srv.Fail("/pokemon/7", 500)

	_, err := runCLI(t, srv, "", "list")
	if got := perrors.GetCode(err); got != perrors.ErrCodeNetwork {
		t.Errorf("list error code = %q (%v), want NETWORK_ERROR", got, err)
	}
}

func TestTypesCommand(t *testing.T) {
	srv := pokeapitest.New(t)

	res, err := runCLI(t, srv, "", "types")
	if err != nil {
		t.Fatalf("types error: %v", err)
	}
	want := "bug\nfire\nflying\ngrass\npoison\nwater\n"
	if diff := cmp.Diff(want, res.stdout); diff != "" {
		t.Errorf("types output mismatch (-want +got):\n%s", diff)
	}
}

func TestShowCommand(t *testing.T) {
	srv := pokeapitest.New(t)

	res, err := runCLI(t, srv, "", "show", "bulbasaur")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	for _, want := range []string{"#001 bulbasaur", "overgrow", "grass", "ivysaur", "venusaur", pokeapitest.SpriteURL(3)} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestShowCommandEvolutionFailureKeepsDetail(t *testing.T) {
	srv := pokeapitest.New(t)
	srv.Fail("/pokemon-species/2", 500)

	res, err := runCLI(t, srv, "", "show", "bulbasaur")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	if !strings.Contains(res.stdout, "overgrow") {
		t.Error("detail missing after evolution failure")
	}
	if !strings.Contains(res.stdout, iconError) {
		t.Errorf("evolution failure not reported:\n%s", res.stdout)
	}
}

func TestShowCommandInvalidName(t *testing.T) {
	srv := pokeapitest.New(t)

	_, err := runCLI(t, srv, "", "show", "Bulbasaur")
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("show error = %v, want INVALID_INPUT", err)
	}
}

func TestEvolutionsCommandJSON(t *testing.T) {
	srv := pokeapitest.New(t)

	res, err := runCLI(t, srv, "", "evolutions", "eevee", "--format", "json")
	if err != nil {
		t.Fatalf("evolutions error: %v", err)
	}

	var got []pokedex.EvolutionRecord
	if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, res.stdout)
	}
	want := []pokedex.EvolutionRecord{
		{Name: "eevee", Image: pokeapitest.SpriteURL(133)},
		{Name: "vaporeon", Image: pokeapitest.SpriteURL(134)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("evolutions mismatch (-want +got):\n%s", diff)
	}
}

func TestEvolutionsCommandDOT(t *testing.T) {
	srv := pokeapitest.New(t)

	res, err := runCLI(t, srv, "", "evolutions", "jolteon", "--format", "dot", "--detailed")
	if err != nil {
		t.Fatalf("evolutions error: %v", err)
	}
	for _, want := range []string{"digraph evolutions", `"jolteon`, "style=dashed", "stage: 2", pokeapitest.SpriteURL(134)} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("DOT output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestEvolutionsCommandOutputFile(t *testing.T) {
	srv := pokeapitest.New(t)
	out := filepath.Join(t.TempDir(), "pichu.txt")

	res, err := runCLI(t, srv, "", "evolutions", "pikachu", "-o", out)
	if err != nil {
		t.Fatalf("evolutions error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file: %v", err)
	}
	for _, name := range []string{"1. pichu", "2. pikachu", "3. raichu"} {
		if !strings.Contains(string(data), name) {
			t.Errorf("file missing %q:\n%s", name, data)
		}
	}
	if res.stdout != "" {
		t.Errorf("stdout should be empty when -o is set, got %q", res.stdout)
	}
	if !strings.Contains(res.stderr, out) {
		t.Errorf("stderr should name the output file, got %q", res.stderr)
	}
}

func TestEvolutionsCommandErrors(t *testing.T) {
	srv := pokeapitest.New(t)

	tests := []struct {
		name string
		args []string
		want perrors.Code
	}{
		{"bad format", []string{"evolutions", "eevee", "--format", "xml"}, perrors.ErrCodeInvalidInput},
		{"unknown pokemon", []string{"evolutions", "missingno"}, perrors.ErrCodeNotFound},
		{"invalid name", []string{"evolutions", "mr mime"}, perrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, srv, "", tt.args...)
			if got := perrors.GetCode(err); got != tt.want {
				t.Errorf("error code = %q (%v), want %q", got, err, tt.want)
			}
		})
	}
}

func TestConfigCommands(t *testing.T) {
	srv := pokeapitest.New(t)

	res, err := runCLI(t, srv, "", "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	for _, want := range []string{fmt.Sprintf("base_url = %q", srv.BaseURL()), `backend = "none"`} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, res.stdout)
		}
	}

	res, err = runCLI(t, srv, "", "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(res.stdout), "config.toml") {
		t.Errorf("config path = %q", res.stdout)
	}
}

func TestCacheCommands(t *testing.T) {
	srv := pokeapitest.New(t)
	dir := t.TempDir()
	fileCache := fmt.Sprintf("[cache]\nbackend = \"file\"\ndir = %q\n", dir)

	res, err := runCLI(t, srv, fileCache, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if strings.TrimSpace(res.stdout) != dir {
		t.Errorf("cache path = %q, want %q", res.stdout, dir)
	}

	if _, err := runCLI(t, srv, fileCache, "list"); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if _, err := runCLI(t, srv, fileCache, "list"); err != nil {
		t.Fatalf("second list error: %v", err)
	}
	if hits := srv.Hits("/pokemon/2"); hits != 1 {
		t.Errorf("cached list fetched /pokemon/2 %d times, want 1", hits)
	}

	res, err = runCLI(t, srv, fileCache, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(res.stdout, "Cleared 11 cached entries") {
		t.Errorf("cache clear output = %q", res.stdout)
	}
}

func TestCacheClearNonFileBackend(t *testing.T) {
	srv := pokeapitest.New(t)

	res, err := runCLI(t, srv, "[cache]\nbackend = \"none\"\n", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(res.stdout, `cache.backend is "none"`) {
		t.Errorf("cache clear output = %q", res.stdout)
	}
}

func TestCompletionCommand(t *testing.T) {
	srv := pokeapitest.New(t)

	res, err := runCLI(t, srv, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(res.stdout, "pokedex") {
		t.Error("bash completion does not mention pokedex")
	}
}
