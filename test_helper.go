package billfold

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// Command holds a command and its expected output.
type Command struct {
	Cmd      string
	Expected string
}

// buildBf builds the bf command and returns the path to the executable.
func buildBf(t *testing.T, tmp string) string {
	t.Helper()

	output := filepath.Join(tmp, "bf")

	// Build the bf command
	buildCmd := exec.Command("go", "build", "-o", output, "./bf/")
	err := buildCmd.Run()
	if err != nil {
		t.Fatalf("failed to build bf command: %v", err)
	}

	return output
}

// parseTestableCommands parses a markdown file to extract commands and their expected outputs.
func parseTestableCommands(t *testing.T, file string) []Command {
	t.Helper()

	// Read the file
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	// Parse the file
	repo := string(content)
	re := regexp.MustCompile("(?m)```bash\\n(bf.*?)\\n```\\n\\n```console\n((.|\\n)*?)```")
	matches := re.FindAllStringSubmatch(repo, -1)

	var commands []Command
	for _, match := range matches {
		commands = append(commands, Command{Cmd: match[1], Expected: match[2]})
	}

	return commands
}

// runTestableCommands runs the testable commands from a given markdown file.
// The commands share one temp folder, so the ledger builds up from one
// example to the next the way it would in a user's shell.
func runTestableCommands(t *testing.T, file string) {
	t.Helper()

	tmp := t.TempDir()
	bfPath := buildBf(t, tmp)

	commands := parseTestableCommands(t, file)

	for _, cmd := range commands {
		args := strings.Fields(cmd.Cmd)
		t.Log("Running command:", bfPath, args)
		command := exec.Command(bfPath, args[1:]...)
		command.Dir = tmp
		// Pin the clock and neutralize any ledger path inherited from the
		// developer's shell, so the expected outputs are stable.
		command.Env = append(os.Environ(), "BILLFOLD_TESTING_NOW=2025-03-10 12:00:00", "BILLFOLD_LEDGER=")
		output, err := command.CombinedOutput()
		if err != nil {
			t.Fatalf("failed to run command: %v, output: \n%s", err, output)
		}
		result := string(output)
		// replace tabs with spaces for consistent comparison
		result = strings.ReplaceAll(result, "\t", "        ")

		if cmd.Expected != result {
			t.Errorf("expected output:\n%q\nbut got:\n%q", cmd.Expected, result)
		}
	}
}
