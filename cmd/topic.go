package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"billfold/docs"

	"github.com/google/subcommands"
)

// topicCmd implements the "topic" subcommand to display documentation.
type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "display a documentation topic" }
func (*topicCmd) Usage() string {
	return `topic [<name>|*]:
  Displays the named documentation topic. Without a name it displays
  the topic index; '*' displays every topic.
`
}

func (*topicCmd) SetFlags(_ *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := "readme"
	if f.NArg() > 0 {
		name = f.Arg(0)
	}

	content, err := docs.GetTopic(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(content)
	return subcommands.ExitSuccess
}
