package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/lasserre/wildebeest/internal/catalog"
)

func cmdLs(cat *catalog.Catalog, args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	switch args[0] {
	case "lists":
		printSorted(cat.ProjectLists.Names())
	case "recipes":
		var listName string
		for i := 1; i < len(args); i++ {
			if args[i] == "-l" && i+1 < len(args) {
				i++
				listName = args[i]
			}
		}
		if listName != "" {
			recipes, err := cat.ProjectList(listName)
			if err != nil {
				fail("%v", err)
			}
			for _, r := range recipes {
				fmt.Println(r.Name)
			}
			return
		}
		printSorted(cat.Recipes.Names())
	case "exps":
		printSorted(cat.Experiments.Names())
	case "alg":
		e := loadExp(cat, "")
		for i, s := range e.Algorithm.Steps {
			side := "host"
			if s.RunInDocker {
				side = "docker"
			}
			fmt.Printf("%2d  %-20s  %s\n", i, s.Name, side)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func printSorted(names []string) {
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}
