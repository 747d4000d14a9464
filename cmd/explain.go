package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// explainCmd asks Gemini for a short narrative about a comparison.
type explainCmd struct {
	compare compareCmd
	model   string
}

func (*explainCmd) Name() string     { return "explain" }
func (*explainCmd) Synopsis() string { return "narrate a comparison with the AI assistant" }
func (*explainCmd) Usage() string {
	return `mcr explain [-above-ground <tonnes>] [token...]

  Runs the same comparison as 'compare' and asks Gemini for a short,
  plain-language narrative of the result. Requires GEMINI_API_KEY.
`
}

func (c *explainCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.compare.aboveGround, "above-ground", "", "Override the above-ground gold estimate, in tonnes")
	f.StringVar(&c.model, "model", "gemini-2.5-flash", "Gemini model to use")
}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	results, err := c.compare.run(ctx, f.Args())
	if err != nil {
		return fail(err)
	}

	var prompt strings.Builder
	prompt.WriteString("Explain the following market capitalization comparison to a curious newcomer, in at most three short paragraphs. Mention what the ratio means in practical terms.\n\n")
	prompt.WriteString(comparisonPlain(results))
	for _, r := range results {
		fmt.Fprintf(&prompt, "%s market cap: %s, %s market cap: %s, ratio %s\n",
			r.Numerator.Asset, r.Numerator.MarketCap,
			r.Denominator.Asset, r.Denominator.MarketCap,
			r.Ratio)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail(fmt.Errorf("initializing Gemini's client: %w", err))
	}
	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt.String()), nil)
	if err != nil {
		return fail(fmt.Errorf("generating the narrative: %w", err))
	}
	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
