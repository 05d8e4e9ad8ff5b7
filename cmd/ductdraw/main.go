package main

import (
	"fmt"
	"os"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
