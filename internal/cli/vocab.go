package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Work with shingles vocabulary files",
}

var vocabShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the shingle→index mapping of a vocabulary file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read vocabulary file: %w", err)
		}
		var vocab map[string]int
		if err := json.Unmarshal(data, &vocab); err != nil {
			return fmt.Errorf("failed to parse vocabulary file: %w", err)
		}

		shingles := make([]string, 0, len(vocab))
		for s := range vocab {
			shingles = append(shingles, s)
		}
		sort.Slice(shingles, func(i, j int) bool {
			return vocab[shingles[i]] < vocab[shingles[j]]
		})

		fmt.Printf("%d shingles:\n", len(vocab))
		for _, s := range shingles {
			fmt.Printf("  %6d  %s\n", vocab[s], s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(vocabShowCmd)
}
