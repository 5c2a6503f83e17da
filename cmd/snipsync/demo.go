package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/snipsync/snipsync/announce"
)

var demoAnswer uint64

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "run the counting demo the example docs quote",
	Long: `Counts from 0 up to the answer, announcing every value that is not
it, then announces the answer. The tagged source of this demo lives in
examples/answer and is what the example documentation syncs against.`,
	Run: func(cmd *cobra.Command, args []string) {
		announce.Announce(os.Stdout, demoAnswer)
	},
}

func init() {
	demoCmd.Flags().Uint64Var(&demoAnswer, "answer", announce.Answer, "the answer to count up to")
}
