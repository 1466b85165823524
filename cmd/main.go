package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Liunian06/LNChat-sub000/cmd/service"
)

func main() {
	root := &cobra.Command{
		Use:   "lnchat",
		Short: "lnchat service",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("empty command")
		},
	}

	root.AddCommand(service.NewCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
