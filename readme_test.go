package billfold

import (
	"testing"
)

// This file tests the examples in the README.md file.
//
// To add a new testable example to the README.md file, you need to follow these steps:
//
// 1.  Add the command to the README.md file, wrapped in a ```bash ... ``` block.
// 2.  Add the expected output of the command, wrapped in a ```console ... ``` block.
//
// The test will automatically parse the README.md file, run the commands, and compare the output with the expected output.

func TestReadme(t *testing.T) {
	runTestableCommands(t, "README.md")
}
