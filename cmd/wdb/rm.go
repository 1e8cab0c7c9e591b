package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/lasserre/wildebeest/internal/catalog"
)

func cmdRm(cat *catalog.Catalog, args []string) {
	if len(args) < 1 || args[0] != "build" {
		usage()
		os.Exit(1)
	}
	var force bool
	for _, a := range args[1:] {
		if a == "-f" {
			force = true
		}
	}

	e := loadExp(cat, "")
	buildFolder := e.BuildFolder()

	if !force {
		fmt.Printf("Delete %s ? [y/N] ", buildFolder)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if answer != "y\n" && answer != "Y\n" {
			fmt.Println("Aborted.")
			return
		}
	}

	if err := os.RemoveAll(buildFolder); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Removed %s\n", buildFolder)
}
