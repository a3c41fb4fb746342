package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/instagram"
	"github.com/jonathan/archinews-creator/internal/session"
	"github.com/jonathan/archinews-creator/internal/types"
)

var hashtagsCmd = &cobra.Command{
	Use:   "hashtags",
	Short: "Generate Instagram hashtags from the long website copy",
	Long:  "Generates up to 15 hashtags from the long website copy and appends the ticked custom hashtags. The result is written as one space-separated line.",
	Args:  cobra.NoArgs,
	RunE:  runHashtags,
}

var (
	hashtagsContentFile string
	hashtagsCustom      []string
	hashtagsTicked      []string
	hashtagsOutputFile  string
	hashtagsAPIKey      string
)

func init() {
	hashtagsCmd.Flags().StringVarP(&hashtagsContentFile, "content", "c", "", "Path to GeneratedContent JSON file (required)")
	hashtagsCmd.Flags().StringSliceVar(&hashtagsCustom, "custom", nil, "Custom hashtag to offer in addition to the defaults (repeatable)")
	hashtagsCmd.Flags().StringSliceVar(&hashtagsTicked, "tick", instagram.DefaultCustomHashtags, "Offered custom hashtag to append (repeatable)")
	hashtagsCmd.Flags().StringVarP(&hashtagsOutputFile, "out", "o", "hashtags.txt", "Output text file")
	hashtagsCmd.Flags().StringVar(&hashtagsAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	mustMarkRequired(hashtagsCmd, "content")

	rootCmd.AddCommand(hashtagsCmd)
}

// customHashtags offers custom on top of the defaults and ticks the offered
// tags named in ticked. A missing leading '#' is added.
func customHashtags(custom, ticked []string) *session.State {
	st := session.New(nil)
	for _, tag := range custom {
		st.AddCustomHashtag(tag)
	}
	normalized := make([]string, 0, len(ticked))
	for _, tag := range ticked {
		tag = strings.TrimSpace(tag)
		if tag != "" && !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		normalized = append(normalized, tag)
	}
	st.TickHashtags(normalized)
	return st
}

func runHashtags(cmd *cobra.Command, _ []string) error {
	var generated types.GeneratedContent
	if err := readJSONFile(hashtagsContentFile, "content", &generated); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cmd.Context(), cfg, hashtagsAPIKey)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	st := customHashtags(hashtagsCustom, hashtagsTicked)
	st.SetAutoHashtags(instagram.NewHashtagGenerator(client, newLogger(cfg)).Generate(cmd.Context(), generated.LongFormText()))
	if len(st.Hashtags.Auto) == 0 {
		_, _ = fmt.Fprintln(os.Stderr, instagram.NoHashtagsNotice)
	}

	if err := writeOutput(hashtagsOutputFile, []byte(st.HashtagText())); err != nil {
		return err
	}
	if p := printer(cfg); p != nil {
		p.PrintHashtags(st.FinalHashtags())
	}
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", hashtagsOutputFile)
	return nil
}
